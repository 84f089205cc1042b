package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, closeLog := New(Options{File: path})

	log.Info("spot toggled")
	log.Debug("hidden at info level")
	closeLog()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"msg":"spot toggled"`)
	assert.NotContains(t, string(raw), "hidden at info level")
}

func TestVerboseEnablesDebug(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	log, closeLog := New(Options{File: path, Verbose: true})
	log.Debug("now visible")
	closeLog()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "now visible")
}
