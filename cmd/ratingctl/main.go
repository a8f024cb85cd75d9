package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xhrissun/rhrmpsb-system-sub000/cmd/ratingctl/commands"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/config"
	"github.com/xhrissun/rhrmpsb-system-sub000/internal/logger"
)

var (
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "ratingctl",
		Short:         "Administer competency ratings",
		Long:          `A CLI tool for running migrations, inspecting scores and rankings, reviewing the rating log and simulating score sheets.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ScoresCmd(app))
	rootCmd.AddCommand(commands.RankCmd(app))
	rootCmd.AddCommand(commands.AuditStatsCmd(app))
	rootCmd.AddCommand(commands.SimulateCmd(app))
	rootCmd.AddCommand(commands.TokenCmd(app))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if app.Logger != nil {
			app.Logger.Error("Command failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		app.Close()
		os.Exit(1)
	}
}

// initApp loads configuration and the logger. The database is opened lazily
// by the commands that need it.
func initApp(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewCLI(cfg.Log.Level, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Ctx = ctx
	app.Cfg = cfg
	app.Logger = log
	app.Logger.Debug("Configuration loaded",
		zap.String("env", cfg.App.Env),
		zap.String("rounding_mode", cfg.Scoring.RoundingMode),
	)
	return nil
}
