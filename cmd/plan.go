package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evroute/app"
	"github.com/kilianp07/evroute/config"
	"github.com/kilianp07/evroute/core/compare"
	"github.com/kilianp07/evroute/core/model"
)

var (
	planStart      string
	planEnd        string
	planProfile    string
	planStrategies []string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Run a one-shot route comparison",
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().StringVar(&planStart, "start", "", "start node ID")
	planCmd.Flags().StringVar(&planEnd, "end", "", "end node ID")
	planCmd.Flags().StringVar(&planProfile, "profile", "balanced", "driver profile (eco|balanced|aggressive)")
	planCmd.Flags().StringSliceVar(&planStrategies, "strategy", []string{"uniform-cost", "astar"}, "strategies to compare")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
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
		if cerr := svc.Close(); cerr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "service close: %v\n", cerr)
		}
	}()

	if planStart == "" || planEnd == "" {
		return fmt.Errorf("--start and --end are required")
	}
	vehicle, err := model.DefaultProfile(model.ProfileKind(planProfile))
	if err != nil {
		return err
	}
	var kinds []model.StrategyKind
	for _, s := range planStrategies {
		kind, err := model.ParseStrategy(s)
		if err != nil {
			return err
		}
		kinds = append(kinds, kind)
	}

	res, err := svc.Planner.Compare(ctx, compare.Request{
		StartNode:  model.NodeID(planStart),
		EndNode:    model.NodeID(planEnd),
		Vehicle:    vehicle,
		Strategies: kinds,
	})
	if err != nil {
		return err
	}
	printComparison(cmd, res)
	return nil
}

func printComparison(cmd *cobra.Command, res model.ComparisonResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "request %s: %s -> %s\n", res.RequestID, res.Start, res.End)
	for name, slot := range res.ResultsByName() {
		if slot.Route == nil {
			fmt.Fprintf(out, "  %-13s failed: %s (%d expansions, %s)\n",
				name, slot.Err, slot.Expansions, slot.SearchTime.Round(time.Millisecond))
			continue
		}
		r := slot.Route
		fmt.Fprintf(out, "  %-13s %.1f km, %s, %.1f kWh, %d stops (%d expansions, %s)\n",
			name,
			r.TotalDistanceM/1000,
			r.TotalTime.Round(time.Second),
			r.TotalEnergyKWh,
			r.ChargingStops,
			slot.Expansions,
			slot.SearchTime.Round(time.Millisecond))
	}
	if res.BestByTime != "" {
		fmt.Fprintf(out, "best: time=%s energy=%s distance=%s\n",
			res.BestByTime, res.BestByEnergy, res.BestByDistance)
	}
}
