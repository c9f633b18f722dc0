package main

import (
	"bytes"
	_ "embed"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AppleDinger/Kartavya-Police-App/config"
	"github.com/AppleDinger/Kartavya-Police-App/module/core"
)

//go:embed goa.yaml
var defaultFixture []byte

var (
	resetFlag   bool
	fixtureFlag string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		db, err := config.NewPostgres(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := core.Migrate(ctx, db, resetFlag); err != nil {
			return err
		}
		logger.Info("schema ready", zap.Bool("reset", resetFlag))
		return nil
	},
}

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load officers, teams and deployments from a YAML fixture",
	Long:  "Load command staff and field teams. Without --fixture the bundled Goa fixture (North and South teams) is used.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cfg, logger, err := setup()
		if err != nil {
			return err
		}

		data, err := readFixture(fixtureFlag)
		if err != nil {
			return err
		}

		db, err := config.NewPostgres(ctx, cfg)
		if err != nil {
			return err
		}
		defer func() { _ = db.Close() }()

		if err := core.Migrate(ctx, db, resetFlag); err != nil {
			return err
		}
		if err := core.NewSeeder(db, logger).Seed(ctx, data); err != nil {
			return err
		}
		logger.Info("fixture loaded", zap.Int("teams", len(data.Teams)))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&resetFlag, "reset", false, "drop all tables before migrating")
	loadCmd.Flags().BoolVar(&resetFlag, "reset", false, "drop all tables before loading")
	loadCmd.Flags().StringVar(&fixtureFlag, "fixture", "", "path to a YAML fixture")
}

func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	logger, err := config.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

func readFixture(path string) (*core.SeedData, error) {
	var r io.Reader = bytes.NewReader(defaultFixture)
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, eris.Wrap(err, "open fixture")
		}
		defer f.Close()
		r = f
	}
	return core.ParseSeed(r)
}
