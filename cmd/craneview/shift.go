package main

import (
	"fmt"

	"github.com/portworks/craneview/internal/submit"
	"github.com/spf13/cobra"
)

func newShiftCmd() *cobra.Command {
	var (
		configPath string
		operator   string
		date       string
		start      string
		end        string
	)

	cmd := &cobra.Command{
		Use:   "shift",
		Short: "Record a work shift",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShift(cmd, configPath, operator, date, start, end)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	cmd.Flags().StringVar(&operator, "operator", "", "operator ID")
	cmd.Flags().StringVar(&date, "date", "", "shift date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&start, "start", "", "shift start HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "shift end HH:MM")
	cmd.MarkFlagRequired("operator")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func runShift(cmd *cobra.Command, configPath, operator, date, start, end string) error {
	st, err := storeFromConfig(configPath)
	if err != nil {
		return err
	}
	if date == "" {
		date = today()
	}

	gate := submit.NewGate(st)
	shift, err := gate.Shift(cmdContext(cmd), submit.ShiftInput{
		OperatorID: operator,
		ShiftDate:  date,
		StartTime:  start,
		EndTime:    end,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded shift %s-%s for %s on %s\n",
		shift.StartTime, shift.EndTime, shift.OperatorID, shift.ShiftDate)
	return nil
}
