package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	bookrepo "github.com/kailas-cloud/bookshelf/internal/repository/book"
)

func newIndexCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Manage the book search index",
	}
	cmd.AddCommand(newIndexCreateCommand(a))
	cmd.AddCommand(newIndexDropCommand(a))
	return cmd
}

func newIndexCreateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create",
		Short: "Create the book index if it does not exist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			ks := a.cfg.Keyspace()
			created, err := bookrepo.New(store, ks).EnsureIndex(cmd.Context())
			if err != nil {
				return fmt.Errorf("create index: %w", err)
			}
			a.logger.Info("Index ready", zap.String("index", ks.IndexName()), zap.Bool("created", created))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s created=%t\n", ks.IndexName(), created)
			return err
		},
	}
}

func newIndexDropCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "drop",
		Short: "Drop the book index, keeping the documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(); err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			store, err := a.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			ks := a.cfg.Keyspace()
			if err := bookrepo.New(store, ks).DropIndex(cmd.Context()); err != nil {
				return fmt.Errorf("drop index: %w", err)
			}
			a.logger.Info("Index dropped", zap.String("index", ks.IndexName()))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s dropped\n", ks.IndexName())
			return err
		},
	}
}
