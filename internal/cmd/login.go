package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarsuraksha/hz/internal/session"
)

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Declare your name and role",
	Long: `Declare who you are and what you do. There is no password; the role is
self-declared and only controls which commands apply.

Roles:
  citizen   may submit new hazard reports
  admin     may list, triage, and review reports

Logging in again overwrites the previous session.

Examples:
  hz login --name Asha --role citizen
  hz login --name Rao --role admin`,
	RunE: runLogin,
}

var (
	loginName string
	loginRole string
)

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the active session",
	RunE:  runLogout,
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the active session",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().StringVar(&loginName, "name", "", "Your name (required)")
	loginCmd.Flags().StringVar(&loginRole, "role", "", "Your role: citizen | admin (required)")
	loginCmd.MarkFlagRequired("name")
	loginCmd.MarkFlagRequired("role")
}

func runLogin(cmd *cobra.Command, args []string) error {
	role, err := session.ParseRole(loginRole)
	if err != nil {
		return err
	}

	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	sess, err := env.Sessions.Login(loginName, role)
	if err != nil {
		return err
	}

	fmt.Printf("Logged in as %s (%s).\n", sess.Name, sess.Role)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	env, err := openEnv()
	if err != nil {
		return err
	}
	defer env.Close()

	if err := env.Sessions.Logout(); err != nil {
		return err
	}
	fmt.Println("Logged out.")
	return nil
}

func runWhoami(cmd *cobra.Command, args []string) error {
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
		fmt.Println("Not logged in.")
		return nil
	}
	fmt.Printf("%s (%s)\n", sess.Name, sess.Role)
	return nil
}
