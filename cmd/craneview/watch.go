package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/portworks/craneview/internal/livesync"
	"github.com/portworks/craneview/internal/metrics"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream the fleet board in the terminal",
		Long:  "Prints the fleet summary whenever a new lift, delay, or roster change lands. Ctrl+C to stop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatchFleet(cmd, configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	return cmd
}

func runWatchFleet(cmd *cobra.Command, configPath string) error {
	st, err := storeFromConfig(configPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Watching fleet activity... (Ctrl+C to stop)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	views := livesync.BuildViews(st, livesync.ViewOpts{})
	views.Start(ctx)
	defer views.Close()

	fleet := views.Get(livesync.ViewFleet)
	sub := fleet.Watch()
	defer sub.Unsubscribe()

	for {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-sub.C():
			if !ok {
				return nil
			}
			if snap, ok := fleet.Snapshot().(metrics.FleetSummary); ok {
				printFleet(out, snap)
			}
		}
	}
}

func printFleet(out io.Writer, fleet metrics.FleetSummary) {
	fmt.Fprintf(out, "[%s] %d lifts, target met %d%%, %dm delayed, %d/%d operators active\n",
		fleet.Date, fleet.TotalLifts, fleet.TargetMetPercent,
		fleet.TotalDelayMinutes, fleet.ActiveOperators, fleet.TotalOperators)
	for _, op := range fleet.Operators {
		if !op.Active {
			continue
		}
		fmt.Fprintf(out, "  %s: %d lifts, %d/hr, %d%% efficiency\n",
			op.FullName, op.TotalLifts, op.AvgLiftsPerHour, op.EfficiencyPercent)
	}
}
