package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarsuraksha/hz/internal/output"
	"github.com/sagarsuraksha/hz/internal/report"
)

// dashboardCmd summarizes the report collection
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Show report statistics and recent activity (admin only)",
	Long: `Show count summaries over the report collection: total, one bucket per
status, one per priority, and the priority distribution as shares of the
total. The recent-reports section lists the ten newest.

Examples:
  hz dashboard
  hz dashboard --format json`,
	RunE: runDashboard,
}

// dashboardView is the structured payload for yaml/json output.
type dashboardView struct {
	Stats  report.Stats    `json:"stats" yaml:"stats"`
	Recent []report.Report `json:"recent" yaml:"recent"`
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if _, err := requireReviewer(env); err != nil {
		return err
	}

	reports, err := env.Reports.List()
	if err != nil {
		return err
	}

	stats := report.Aggregate(reports)
	recent := report.Filter(reports, report.Criteria{})
	if len(recent) > 10 {
		recent = recent[:10]
	}

	format, err := resolveFormat(env.Cfg)
	if err != nil {
		return err
	}
	if format == output.FormatTable {
		printDashboard(stats, recent)
		return nil
	}
	return output.Render(os.Stdout, format, dashboardView{Stats: stats, Recent: recent})
}

func printDashboard(stats report.Stats, recent []report.Report) {
	fmt.Printf("Total reports:  %d\n", stats.Total)
	fmt.Printf("  pending:        %d\n", stats.Pending)
	fmt.Printf("  investigating:  %d\n", stats.Investigating)
	fmt.Printf("  resolved:       %d\n", stats.Resolved)
	fmt.Println()
	fmt.Printf("Priority distribution:\n")
	fmt.Printf("  high:    %d (%.0f%%)\n", stats.High, stats.PriorityShare(report.PriorityHigh))
	fmt.Printf("  medium:  %d (%.0f%%)\n", stats.Medium, stats.PriorityShare(report.PriorityMedium))
	fmt.Printf("  low:     %d (%.0f%%)\n", stats.Low, stats.PriorityShare(report.PriorityLow))

	if len(recent) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Recent reports:")
	for _, r := range recent {
		fmt.Printf("  [%s/%s] %s (%s)\n", r.Status, r.Priority, r.Title, r.Timestamp.Format("2006-01-02 15:04"))
	}
}
