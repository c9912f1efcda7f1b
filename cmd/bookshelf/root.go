package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/bookshelf/internal/config"
	dbRedis "github.com/kailas-cloud/bookshelf/internal/db/redis"
	logpkg "github.com/kailas-cloud/bookshelf/internal/logger"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	env    string
	path   string
	cfg    config.Config
	logger *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           "bookshelf",
		Short:         "bookshelf serves CRUD and compound queries over a book index",
		SilenceErrors: true,
		SilenceUsage:  true,
		Example: `
  # Serve with config/local.yaml
  bookshelf serve

  # Serve with an explicit config file
  ENV=prod bookshelf serve --config /etc/bookshelf/prod.yaml

  # Create the search index and exit
  bookshelf index create
`,
	}
	cmd.PersistentFlags().StringVar(&a.env, "env", config.GetEnv(), "environment name (local, dev, docker, prod)")
	cmd.PersistentFlags().StringVar(&a.path, "config", "", "config file path (defaults to config/<env>.yaml)")

	cmd.AddCommand(newServeCommand(a))
	cmd.AddCommand(newIndexCommand(a))
	cmd.AddCommand(newVersionCommand())
	return cmd
}

// load reads the configuration and builds the logger.
func (a *app) load() error {
	var (
		cfg config.Config
		err error
	)
	if a.path != "" {
		cfg, err = config.LoadFile(a.path)
	} else {
		cfg, err = config.Load(a.env)
	}
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	logger, err := logpkg.NewLogger(a.env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	a.logger = logger
	return nil
}

// openStore connects to Redis and waits until it answers.
func (a *app) openStore(ctx context.Context) (*dbRedis.Store, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    a.cfg.Database.Addrs,
		Username: a.cfg.Database.Username,
		Password: a.cfg.Database.Password,
		DB:       a.cfg.Database.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("create database store: %w", err)
	}
	if err := store.WaitForReady(ctx, a.cfg.ReadinessTimeout()); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return store, nil
}
