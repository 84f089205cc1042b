package kv

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStoreGetSet(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "kv.db")

	st, err := OpenSQLite(path)
	require.NoError(t, err)

	_, ok, err := st.Get(ctx, "@missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, st.Set(ctx, "@k", `["a"]`))
	require.NoError(t, st.Set(ctx, "@k", `["b"]`))

	v, ok, err := st.Get(ctx, "@k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["b"]`, v)
	require.NoError(t, st.Close())

	// values survive reopening the file
	st, err = OpenSQLite(path)
	require.NoError(t, err)
	defer st.Close()

	v, ok, err = st.Get(ctx, "@k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["b"]`, v)
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, ok, _ := m.Get(ctx, "x")
	assert.False(t, ok)

	require.NoError(t, m.Set(ctx, "x", "1"))
	v, ok, err := m.Get(ctx, "x")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "1", v)
}
