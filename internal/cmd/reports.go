package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sagarsuraksha/hz/internal/output"
	"github.com/sagarsuraksha/hz/internal/report"
)

// reportsCmd lists and triages the report collection
var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List and triage hazard reports (admin only)",
	Long: `List the report collection, newest first, optionally narrowed by status,
priority, and a case-insensitive text search over title and description.
All criteria combine with AND.

Subcommands change a single report's triage fields:
  hz reports status <id> <pending|investigating|resolved>
  hz reports priority <id> <low|medium|high>

Examples:
  hz reports
  hz reports --status pending --priority high
  hz reports --search "oil" --format table
  hz reports status 0189-… resolved`,
	RunE: runReportsList,
}

var (
	reportsStatus   string
	reportsPriority string
	reportsSearch   string
)

// reportsStatusCmd updates one report's status
var reportsStatusCmd = &cobra.Command{
	Use:   "status <id> <status>",
	Short: "Set a report's status",
	Args:  cobra.ExactArgs(2),
	RunE:  runReportsStatus,
}

// reportsPriorityCmd updates one report's priority
var reportsPriorityCmd = &cobra.Command{
	Use:   "priority <id> <priority>",
	Short: "Set a report's priority",
	Args:  cobra.ExactArgs(2),
	RunE:  runReportsPriority,
}

func init() {
	rootCmd.AddCommand(reportsCmd)
	reportsCmd.AddCommand(reportsStatusCmd)
	reportsCmd.AddCommand(reportsPriorityCmd)

	reportsCmd.Flags().StringVar(&reportsStatus, "status", "all", "Filter by status: all | pending | investigating | resolved")
	reportsCmd.Flags().StringVar(&reportsPriority, "priority", "all", "Filter by priority: all | low | medium | high")
	reportsCmd.Flags().StringVar(&reportsSearch, "search", "", "Search title and description")
}

func runReportsList(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if _, err := requireReviewer(env); err != nil {
		return err
	}

	if err := validateCriterion(reportsStatus, func(s string) error {
		_, err := report.ParseStatus(s)
		return err
	}); err != nil {
		return err
	}
	if err := validateCriterion(reportsPriority, func(s string) error {
		_, err := report.ParsePriority(s)
		return err
	}); err != nil {
		return err
	}

	all, err := env.Reports.List()
	if err != nil {
		return err
	}

	matched := report.Filter(all, report.Criteria{
		Status:   reportsStatus,
		Priority: reportsPriority,
		Search:   reportsSearch,
	})

	format, err := resolveFormat(env.Cfg)
	if err != nil {
		return err
	}
	if format == output.FormatTable {
		printReportTable(matched, len(all))
		return nil
	}
	return output.Render(os.Stdout, format, matched)
}

// validateCriterion accepts the "all" sentinel (and empty) or a parseable
// enum value, so typos fail loudly instead of silently matching nothing.
func validateCriterion(value string, parse func(string) error) error {
	if value == "" || value == report.CriterionAll {
		return nil
	}
	return parse(value)
}

func printReportTable(matched []report.Report, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tPRIORITY\tLOCATION\tTIME")
	for _, r := range matched {
		loc := "-"
		if r.Location != nil {
			loc = fmt.Sprintf("%.4f, %.4f", r.Location.Latitude, r.Location.Longitude)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Title, r.Status, r.Priority, loc, r.Timestamp.Format("2006-01-02 15:04"))
	}
	w.Flush()
	fmt.Printf("Showing %d of %d reports\n", len(matched), total)
}

func runReportsStatus(cmd *cobra.Command, args []string) error {
	status, err := report.ParseStatus(args[1])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if _, err := requireReviewer(env); err != nil {
		return err
	}

	if err := env.Reports.UpdateStatus(args[0], status); err != nil {
		return err
	}
	fmt.Printf("Report %s status set to %s.\n", args[0], status)
	return nil
}

func runReportsPriority(cmd *cobra.Command, args []string) error {
	priority, err := report.ParsePriority(args[1])
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if _, err := requireReviewer(env); err != nil {
		return err
	}

	if err := env.Reports.UpdatePriority(args[0], priority); err != nil {
		return err
	}
	fmt.Printf("Report %s priority set to %s.\n", args[0], priority)
	return nil
}
