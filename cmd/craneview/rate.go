package main

import (
	"fmt"

	"github.com/portworks/craneview/internal/metrics"
	"github.com/portworks/craneview/internal/submit"
	"github.com/spf13/cobra"
)

func newRateCmd() *cobra.Command {
	var (
		configPath string
		operator   string
		ratedBy    string
		rating     int
		date       string
		comments   string
	)

	cmd := &cobra.Command{
		Use:   "rate",
		Short: "Record a supervisor performance rating",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRate(cmd, configPath, operator, ratedBy, rating, date, comments)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "craneview.yaml", "path to Craneview config file")
	cmd.Flags().StringVar(&operator, "operator", "", "operator ID")
	cmd.Flags().StringVar(&ratedBy, "by", "", "rating supervisor ID")
	cmd.Flags().IntVar(&rating, "rating", 0, "rating 1-5")
	cmd.Flags().StringVar(&date, "date", "", "rating date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&comments, "comments", "", "optional comments")
	cmd.MarkFlagRequired("operator")
	cmd.MarkFlagRequired("rating")
	return cmd
}

func runRate(cmd *cobra.Command, configPath, operator, ratedBy string, rating int, date, comments string) error {
	st, err := storeFromConfig(configPath)
	if err != nil {
		return err
	}
	if date == "" {
		date = today()
	}

	var byPtr, commentsPtr *string
	if ratedBy != "" {
		byPtr = &ratedBy
	}
	if comments != "" {
		commentsPtr = &comments
	}

	gate := submit.NewGate(st)
	r, err := gate.Rating(cmdContext(cmd), submit.RatingInput{
		OperatorID: operator,
		RatedBy:    byPtr,
		Rating:     rating,
		RatingDate: date,
		Comments:   commentsPtr,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Rated %s %d/5 on %s\n", r.OperatorID, r.Rating, r.RatingDate)

	history, err := st.RatingsForOperators(cmdContext(cmd), []string{r.OperatorID})
	if err != nil {
		return err
	}
	sum := 0
	for _, h := range history {
		sum += h.Rating
	}
	fmt.Fprintf(out, "Average: %.1f over %d ratings\n",
		metrics.AvgRating(sum, len(history)), len(history))
	return nil
}
