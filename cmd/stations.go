package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evroute/config"
	"github.com/kilianp07/evroute/core/charging"
	"github.com/kilianp07/evroute/core/model"
	"github.com/kilianp07/evroute/core/network"
)

var stationsCmd = &cobra.Command{
	Use:   "stations",
	Short: "Charging station commands",
}

var stationsLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List registered charging stations",
	RunE:  runStationsLs,
}

func init() {
	stationsCmd.AddCommand(stationsLsCmd)
	rootCmd.AddCommand(stationsCmd)
}

func runStationsLs(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var (
		net      *network.Network
		stations []model.ChargingStation
	)
	if cfg.Network.Dataset == "" {
		net, stations = network.Amsterdam()
	} else {
		net, stations, err = network.Load(cfg.Network.Dataset)
		if err != nil {
			return fmt.Errorf("load dataset: %w", err)
		}
	}
	reg, err := charging.NewRegistry(net, stations)
	if err != nil {
		return err
	}
	for _, s := range reg.Stations() {
		state := "unavailable"
		if s.Available {
			state = "available"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-20s %6.0f kW  %s\n", s.NodeID, s.PowerKW, state)
	}
	return nil
}
