// Package cmd contains all CLI commands for hz.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	// Version is the current version of hz
	Version = "0.1.0"

	// Global flags
	verbose      bool
	configPath   string
	forAgents    bool
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "hz",
	Short: "Geotagged hazard incident reporting and triage",
	Long: `hz records and triages geotagged hazard incident reports.

Citizens submit reports (title, description, coordinates, media attachments);
officials triage them by status and priority, filter and search the
collection, and read count summaries and map marker descriptors. State lives
in an embedded database under .hz/ next to your working directory; there is
no server.

Roles:
  citizen   may submit new reports (hz report)
  admin     may list, triage, and review reports (hz reports, hz dashboard)

Output Format:
  Commands print YAML by default. Use --format to switch to JSON or a
  compact table.

Examples:
  hz init                                # Create .hz/ and the store
  hz login --name Asha --role citizen    # Declare who you are
  hz report "Oil spill near coast" --locate
  hz login --name Rao --role admin
  hz reports --status pending --search oil
  hz reports status <id> investigating
  hz dashboard
  hz map --format json

See 'hz <command> --help' for command-specific options.`,
	Version: Version,
	RunE:    runRoot,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: .hz/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format: yaml (default) | json | table")
	rootCmd.Flags().BoolVar(&forAgents, "for-agents", false, "Output machine-readable capability discovery JSON")

	// Set custom help function to intercept --for-agents flag
	originalHelp := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		if forAgents {
			outputAgentHelp(cmd)
			return
		}
		originalHelp(cmd, args)
	})
}

// CommandInfo represents a command for agent discovery
type CommandInfo struct {
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Usage       string        `json:"usage"`
	Flags       []FlagInfo    `json:"flags,omitempty"`
	Subcommands []CommandInfo `json:"subcommands,omitempty"`
	Examples    []string      `json:"examples,omitempty"`
}

// FlagInfo represents a command flag for agent discovery
type FlagInfo struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand,omitempty"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Default     string `json:"default,omitempty"`
}

// outputAgentHelp outputs machine-readable JSON describing all commands
func outputAgentHelp(cmd *cobra.Command) {
	root := buildCommandInfo(cmd.Root())

	payload := map[string]interface{}{
		"version":      Version,
		"commands":     root.Subcommands,
		"global_flags": root.Flags,
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.Encode(payload)
}

// buildCommandInfo recursively builds command information for agent discovery
func buildCommandInfo(cmd *cobra.Command) CommandInfo {
	info := CommandInfo{
		Name:        cmd.Name(),
		Description: cmd.Short,
		Usage:       cmd.UseLine(),
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		info.Flags = append(info.Flags, FlagInfo{
			Name:        f.Name,
			Shorthand:   f.Shorthand,
			Description: f.Usage,
			Type:        f.Value.Type(),
			Default:     f.DefValue,
		})
	})

	for _, sub := range cmd.Commands() {
		if !sub.Hidden {
			info.Subcommands = append(info.Subcommands, buildCommandInfo(sub))
		}
	}

	if cmd.Example != "" {
		for _, line := range strings.Split(cmd.Example, "\n") {
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				info.Examples = append(info.Examples, trimmed)
			}
		}
	}

	return info
}

// runRoot is the home surface: a one-glance status line for whoever is
// logged in, without requiring any role.
func runRoot(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	sess, err := env.Sessions.Current()
	if err != nil {
		return err
	}
	if sess == nil {
		fmt.Println("Not logged in. Run 'hz login --name <you> --role citizen|admin'.")
	} else {
		fmt.Printf("Logged in as %s (%s).\n", sess.Name, sess.Role)
	}

	reports, err := env.Reports.List()
	if err != nil {
		return err
	}
	fmt.Printf("%d report(s) on file.\n", len(reports))
	return nil
}
