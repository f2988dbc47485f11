package main

import (
	"fmt"
	"time"

	"github.com/portworks/craneview/internal/digest"
	"github.com/spf13/cobra"
)

func newDigestCmd() *cobra.Command {
	var (
		configPath string
		date       string
	)

	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the digest for a day",
		Long:  "Builds the daily fleet digest and prints it. Useful for previewing what the scheduler would post.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDigest(cmd, configPath, date)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	cmd.Flags().StringVar(&date, "date", "", "digest date YYYY-MM-DD (default yesterday)")
	return cmd
}

func runDigest(cmd *cobra.Command, configPath, date string) error {
	st, err := storeFromConfig(configPath)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if date == "" {
		date = today()
		// The scheduler posts yesterday's digest; match it.
		if prev := previousDate(date); prev != "" {
			date = prev
		}
	}

	report, err := digest.Build(cmdContext(cmd), st, date)
	if err != nil {
		return err
	}
	if report == nil {
		fmt.Fprintf(out, "No activity on %s, nothing to post.\n", date)
		return nil
	}

	msg := digest.Format(report)
	fmt.Fprintln(out, msg.Title)
	fmt.Fprintln(out, msg.Body)
	return nil
}

// previousDate returns the day before d, or "" if d is unparseable.
func previousDate(d string) string {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		return ""
	}
	return t.AddDate(0, 0, -1).Format("2006-01-02")
}
