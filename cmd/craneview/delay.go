package main

import (
	"fmt"

	"github.com/portworks/craneview/internal/models"
	"github.com/portworks/craneview/internal/submit"
	"github.com/spf13/cobra"
)

func newDelayCmd() *cobra.Command {
	var (
		configPath string
		operator   string
		date       string
		start      string
		end        string
		reason     string
		notes      string
	)

	cmd := &cobra.Command{
		Use:   "delay",
		Short: "Report an operational delay",
		Long:  delayLong(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelay(cmd, configPath, operator, date, start, end, reason, notes)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	cmd.Flags().StringVar(&operator, "operator", "", "operator ID")
	cmd.Flags().StringVar(&date, "date", "", "delay date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&start, "start", "", "delay start HH:MM")
	cmd.Flags().StringVar(&end, "end", "", "delay end HH:MM")
	cmd.Flags().StringVar(&reason, "reason", "", "delay reason")
	cmd.Flags().StringVar(&notes, "notes", "", "optional notes")
	cmd.MarkFlagRequired("operator")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	cmd.MarkFlagRequired("reason")
	return cmd
}

func delayLong() string {
	s := "Records a delay window against an operator's day. Valid reasons:\n"
	for _, r := range models.DelayReasons {
		s += fmt.Sprintf("  %s (%s)\n", r, r.Label())
	}
	return s
}

func runDelay(cmd *cobra.Command, configPath, operator, date, start, end, reason, notes string) error {
	st, err := storeFromConfig(configPath)
	if err != nil {
		return err
	}
	if date == "" {
		date = today()
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	gate := submit.NewGate(st)
	rec, err := gate.Delay(cmdContext(cmd), submit.DelayInput{
		OperatorID: operator,
		DelayDate:  date,
		DelayStart: start,
		DelayEnd:   end,
		Reason:     models.DelayReason(reason),
		Notes:      notesPtr,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Recorded %dm %s delay for %s on %s\n",
		rec.DurationMinutes, rec.Reason.Label(), rec.OperatorID, rec.DelayDate)
	return nil
}
