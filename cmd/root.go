package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evroute/app"
	"github.com/kilianp07/evroute/config"
	"github.com/kilianp07/evroute/infra/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "evroute",
	Short: "EV route planning service",
	Long: `evroute plans battery-feasible routes for electric vehicles and
compares search strategies against each other.

Run without a subcommand to start the API server: it loads the configured
road network and charging stations, serves POST /api/compare for
multi-strategy comparisons and forwards results to the configured metrics
sinks and MQTT topic. Use "plan" for a one-shot comparison from the
command line and "stations ls" to inspect the charging registry.`,
	RunE: run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func run(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	return svc.Run(ctx)
}
