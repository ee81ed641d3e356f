package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in and save the token",
	Long: `Log in to the OpenList server and save the token for later
commands. Other commands log in on their own when needed; use this to
switch users or refresh an expired token.`,
	Args: cobra.NoArgs,
	RunE: runLoginCmd,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved token",
	Args:  cobra.NoArgs,
	RunE:  runLogoutCmd,
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd)
}

func runLoginCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.login(cmd.Context()); err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(a.out, map[string]string{
			"server":     a.cfg.Server.URL,
			"username":   a.cfg.Server.Username,
			"token_file": a.tokens.Path,
		})
	}
	fmt.Fprintf(a.out, "Logged in to %s as %s\n", a.cfg.Server.URL, a.cfg.Server.Username)
	return nil
}

func runLogoutCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.tokens.Clear(); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}
