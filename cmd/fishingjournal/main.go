package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/faideww/fishing-journal/internal/diary"
	"github.com/faideww/fishing-journal/internal/kv"
	"github.com/faideww/fishing-journal/internal/logging"
	"github.com/faideww/fishing-journal/internal/saved"
	"github.com/faideww/fishing-journal/internal/spot"
)

// app owns the stores for the lifetime of one command.
type app struct {
	config   *Config
	log      *zap.Logger
	closeLog func()
	db       *kv.SQLiteStore
	catalog  *spot.Catalog
	saved    *saved.Store
	journal  *diary.Store
}

func (a *app) open(ctx context.Context, verbose bool) error {
	config, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.config = config
	a.log, a.closeLog = logging.New(logging.Options{Verbose: verbose, File: config.LogFile})

	a.catalog, err = spot.LoadCatalog(config.CatalogPath)
	if err != nil {
		return fmt.Errorf("failed to load catalog: %w", err)
	}

	a.db, err = kv.OpenSQLite(config.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	a.saved = saved.New(a.db, a.log)
	a.journal = diary.New(a.db, a.log)
	a.saved.Initialize(ctx)
	a.journal.Initialize(ctx)

	a.log.Debug("app opened",
		zap.String("db", config.DBPath),
		zap.Int("spots", a.catalog.Count()))
	return nil
}

// ready waits for both stores to finish loading. Only the CLI needs this:
// it reads right after starting, where the bot has a human in the loop.
func (a *app) ready(ctx context.Context) error {
	for _, ch := range []<-chan struct{}{a.saved.Ready(), a.journal.Ready()} {
		select {
		case <-ch:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (a *app) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []error
	if a.saved != nil {
		errs = append(errs, a.saved.Close(ctx))
	}
	if a.journal != nil {
		errs = append(errs, a.journal.Close(ctx))
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.closeLog != nil {
		a.closeLog()
	}
	*a = app{}
	return errors.Join(errs...)
}

// newRootCmd builds the command tree. The caller closes a once Execute
// returns, since cobra skips post-run hooks when a command fails.
func newRootCmd(a *app) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "fishingjournal",
		Short:         "Fishing spots, forecasts and a catch journal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.open(cmd.Context(), verbose); err != nil {
				return err
			}
			return a.ready(cmd.Context())
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		botCmd(a),
		spotsCmd(a),
		spotCmd(a),
		saveCmd(a),
		savedCmd(a),
		forecastCmd(a),
		tipsCmd(),
		journalCmd(a),
	)
	return root
}

func main() {
	a := &app{}
	err := newRootCmd(a).ExecuteContext(context.Background())
	if cerr := a.close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
