package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"github.com/templui/goalpost/internal/analytics"
	"github.com/templui/goalpost/internal/repository"
	"github.com/templui/goalpost/internal/seed"
	"github.com/templui/goalpost/internal/service"
)

func ReportCmd() *cobra.Command {
	var goalType string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the analytics report for the seed data",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := service.ParseGoalType(goalType)
			if err != nil {
				return err
			}

			store := repository.NewStore(seed.Load())
			report, _ := service.NewAnalyticsService(store).Report(parsed)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			writeReport(cmd.OutOrStdout(), report)
			return nil
		},
	}

	cmd.Flags().StringVar(&goalType, "type", "all", "goal type filter: all, personal or team")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")
	return cmd
}

func writeReport(w io.Writer, r analytics.Report) {
	fmt.Fprintf(w, "Goals:            %d\n", r.TotalGoals)
	fmt.Fprintf(w, "Overall progress: %d%%\n", r.OverallProgress)
	fmt.Fprintf(w, "Personal / team:  %d / %d\n", r.GoalTypes.Personal, r.GoalTypes.Team)
	fmt.Fprintf(w, "Milestones:       %d completed, %d remaining\n", r.Milestones.Completed, r.Milestones.Remaining)
	fmt.Fprintln(w)
	for _, b := range r.Buckets {
		fmt.Fprintf(w, "%-12s %3d-%-3d %s %d\n", b.Label, b.Min, b.Max, strings.Repeat("#", b.Count), b.Count)
	}
}
