// Package cli implements forumctl, the local single-user client. Every
// invocation opens the configured blob store, runs one flow and closes it,
// so the stored session carries across invocations like a page reload.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sethvargo/go-envconfig"
	"github.com/spf13/cobra"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/service"
	"github.com/fsociety/forum/internal/infrastructure/db"
	"github.com/fsociety/forum/internal/pkg/config"
	"github.com/fsociety/forum/pkg/logger"
)

type options struct {
	lookuper envconfig.Lookuper

	dbPath   string
	backend  string
	logLevel string
}

// NewRootCommand builds the forumctl command tree. Configuration is read
// through l, then overridden by flags.
func NewRootCommand(l envconfig.Lookuper) *cobra.Command {
	opts := &options{lookuper: l}

	root := &cobra.Command{
		Use:           "forumctl",
		Short:         "Local client for the fsociety forum",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite file (overrides SQLITE_PATH)")
	root.PersistentFlags().StringVar(&opts.backend, "backend", "", "store backend: sqlite, memory, redis, mongo (overrides STORE_BACKEND)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level written to stderr (overrides LOG_LEVEL)")

	root.AddCommand(
		newRegisterCommand(opts),
		newLoginCommand(opts),
		newLogoutCommand(opts),
		newWhoamiCommand(opts),
		newPostCommand(opts),
		newFeedCommand(opts),
		newShowCommand(opts),
		newUserAddCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
	)
	return root
}

// Execute runs forumctl with the process environment.
func Execute(ctx context.Context) error {
	return NewRootCommand(envconfig.OsLookuper()).ExecuteContext(ctx)
}

func (o *options) config(ctx context.Context) (*config.Config, error) {
	cfg, err := config.LoadWith(ctx, o.lookuper)
	if err != nil {
		return nil, err
	}
	if o.dbPath != "" {
		cfg.SQLite.Path = o.dbPath
	}
	if o.backend != "" {
		cfg.Store.Backend = o.backend
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// withForum opens the store, loads the forum, runs fn and closes the store.
func (o *options) withForum(cmd *cobra.Command, fn func(ctx context.Context, f *service.Forum) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := o.config(ctx)
	if err != nil {
		return err
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Output: cmd.ErrOrStderr()})
	log := logger.Component("forumctl")

	backend, err := db.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	defer func() {
		if err := backend.Close(context.Background()); err != nil {
			log.Warn().Err(err).Msg("close store")
		}
	}()

	f, err := service.Open(ctx, backend, service.Options{Prefix: cfg.Store.KeyPrefix, Log: log})
	if err != nil {
		return err
	}
	return describe(fn(ctx, f))
}

// describe prefixes the client-facing message to the errors the browser
// client reported to the user.
func describe(err error) error {
	if err == nil {
		return nil
	}
	if msg, ok := domain.Message(err); ok {
		return fmt.Errorf("%s: %w", msg, err)
	}
	if errors.Is(err, domain.ErrForbidden) {
		return fmt.Errorf("admin privileges required: %w", err)
	}
	return err
}
