package main

import (
	"context"
	"fmt"
	"time"

	"github.com/portworks/craneview/internal/store"
	"github.com/portworks/craneview/internal/submit"
	"github.com/spf13/cobra"
)

// storeFromConfig opens the configured database and wraps it in a Store.
func storeFromConfig(configPath string) (*store.Store, error) {
	_, gormDB, err := connectFromConfig(configPath)
	if err != nil {
		return nil, err
	}
	return store.New(gormDB), nil
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func today() string {
	return time.Now().Format("2006-01-02")
}

func newLiftCmd() *cobra.Command {
	var (
		configPath string
		operator   string
		date       string
		hour       string
		count      int
	)

	cmd := &cobra.Command{
		Use:   "lift",
		Short: "Log an hourly lift count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLift(cmd, configPath, operator, date, hour, count)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	cmd.Flags().StringVar(&operator, "operator", "", "operator ID")
	cmd.Flags().StringVar(&date, "date", "", "log date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&hour, "hour", "", "hour slot HH:MM")
	cmd.Flags().IntVar(&count, "count", -1, "lifts completed in the hour")
	cmd.MarkFlagRequired("operator")
	cmd.MarkFlagRequired("hour")
	cmd.MarkFlagRequired("count")
	return cmd
}

func runLift(cmd *cobra.Command, configPath, operator, date, hour string, count int) error {
	st, err := storeFromConfig(configPath)
	if err != nil {
		return err
	}
	if date == "" {
		date = today()
	}

	gate := submit.NewGate(st)
	log, err := gate.Lift(cmdContext(cmd), submit.LiftInput{
		OperatorID: operator,
		LogDate:    date,
		HourSlot:   hour,
		LiftsCount: count,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	mark := "missed target"
	if log.TargetMet {
		mark = "target met"
	}
	fmt.Fprintf(out, "Logged %d lifts for %s at %s on %s (%s)\n",
		log.LiftsCount, log.OperatorID, log.HourSlot, log.LogDate, mark)
	return nil
}
