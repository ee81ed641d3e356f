package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/episoder/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config syntax, field values and environment variable substitution without contacting the server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a configuration file",
	Long: `Create a configuration file, asking for the server address and
username. With --defaults the commented example config is written as is.

The default path is $XDG_CONFIG_HOME/episoder/config.toml.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd, configInitCmd)

	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
	configInitCmd.Flags().Bool("defaults", false, "Write the example config without prompting")
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := configPath
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		found, err := config.Discover()
		if err != nil {
			return err
		}
		path = found
	}

	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return invalidConfig(configErr)
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			fmt.Fprintf(w, "  - %s\n", m)
		}
		fmt.Fprintln(w)
	}

	if len(e.Errors) > 0 {
		fmt.Fprintln(w, "Validation errors:")
		for _, err := range e.Errors {
			fmt.Fprintf(w, "  - %s\n", err)
		}
		fmt.Fprintln(w)
	}
}

// invalidConfig names the failing keys, or the missing variables when
// substitution stopped before validation.
func invalidConfig(e *config.ConfigError) error {
	if keys := e.Keys(); len(keys) > 0 {
		return fmt.Errorf("configuration invalid: %s", strings.Join(keys, ", "))
	}
	return fmt.Errorf("configuration invalid: %d unresolved environment variable(s)", len(e.Missing))
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	user := cfg.Server.Username
	if user == "" {
		user = "(prompted)"
	}
	password := "(prompted)"
	if cfg.Server.Password != "" {
		password = "(set)"
	}
	files := "video only"
	if cfg.Naming.AllFiles {
		files = "all"
	}

	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Server:     %s (timeout %s)\n", cfg.Server.URL, cfg.Server.Timeout)
	fmt.Fprintf(w, "  User:       %s, password %s\n", user, password)
	fmt.Fprintf(w, "  Token:      %s\n", cfg.Auth.TokenFile)
	fmt.Fprintf(w, "  Template:   %s\n", cfg.NamingTemplate())
	fmt.Fprintf(w, "  Files:      %s\n", files)
	fmt.Fprintf(w, "  Log level:  %s\n", cfg.Log.Level)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	defaults, _ := cmd.Flags().GetBool("defaults")

	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	if defaults {
		if err := config.WriteDefault(path); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	}

	fmt.Fprintln(promptOut, "episoder setup")
	fmt.Fprintln(promptOut)

	cfg := config.Default()
	var err error
	if cfg.Server.URL, err = promptWithDefault("OpenList server URL", cfg.Server.URL); err != nil {
		return err
	}
	if cfg.Server.Username, err = promptWithDefault("Username", ""); err != nil {
		return err
	}
	preset, err := promptWithDefault("Naming preset (dotted, verbose)", "dotted")
	if err != nil {
		return err
	}
	cfg.Naming.Preset = preset

	if errs := cfg.Validate(); len(errs) > 0 {
		configErr := &config.ConfigError{Path: path, Errors: errs}
		printConfigErrors(cmd.OutOrStdout(), configErr)
		return invalidConfig(configErr)
	}
	if err := cfg.Write(path); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
