package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/mahjong-time/cmd/cli/commands"
	"github.com/jakechorley/mahjong-time/internal/config"
	"github.com/jakechorley/mahjong-time/pkg/memstore"
	"github.com/jakechorley/mahjong-time/pkg/postgres"
	"github.com/jakechorley/mahjong-time/pkg/utils/logging"
)

var env string

func main() {
	app := &commands.AppContext{Ctx: context.Background()}

	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Mahjong Time - find when the whole table is free",
		Long:  `A service and CLI for collecting player availability and computing the times everyone is free.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "dev", "Environment (dev, test, prod, etc.)")

	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ViewMonthCmd(app))
	rootCmd.AddCommand(commands.SetAvailabilityCmd(app))
	rootCmd.AddCommand(commands.SubmitTimeCmd(app))
	rootCmd.AddCommand(commands.CommonTimesCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp loads configuration, sets up the logger and opens the database
func initApp(app *commands.AppContext) error {
	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	app.Cfg = cfg

	app.Logger, err = logging.InitLogger(env, cfg.LogDir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	app.Logger.Info("Starting application", zap.String("environment", env))

	if cfg.DatabaseURL == "" {
		app.Logger.Debug("Using in-memory store")
		app.Database = memstore.New()
		return nil
	}

	app.Logger.Info("Connecting to database")
	pg, err := postgres.NewDB(app.Ctx, cfg.DatabaseURL, app.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.Database = pg
	app.Persistent = true
	app.Logger.Info("Database initialized successfully")

	return nil
}
