package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"pkt.systems/sndbq/internal/appconfig"
	"pkt.systems/sndbq/internal/store"
)

func newMigrateCmd() *cobra.Command {
	var cfgPath string
	var seedPath string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the local SQLite store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := appconfig.Load(cfgPath)
			if err != nil {
				return err
			}
			if cfg.Database.Driver != "sqlite3" {
				return fmt.Errorf("migrate applies to the sqlite3 driver, config uses %q", cfg.Database.Driver)
			}
			return migrateStore(cmd.Context(), storeConfig(cfg), seedPath)
		},
	}
	cmd.Flags().StringVarP(&cfgPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&seedPath, "seed", "", "YAML file with status records to insert")
	return cmd
}

// migrateStore opens the store, which applies pending migrations, and
// optionally loads seed records.
func migrateStore(ctx context.Context, cfg store.Config, seedPath string) error {
	logger := pslog.Ctx(ctx)
	db, err := store.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()
	logger.Info("store migrated", "path", cfg.Path)
	if seedPath == "" {
		return nil
	}
	f, err := os.Open(seedPath)
	if err != nil {
		return fmt.Errorf("open seed: %w", err)
	}
	defer func() { _ = f.Close() }()
	records, err := store.LoadSeed(f)
	if err != nil {
		return err
	}
	for _, rec := range records {
		if err := db.InsertStatus(ctx, rec); err != nil {
			return err
		}
	}
	logger.Info("store seeded", "path", seedPath, "records", len(records))
	return nil
}
