package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	configPath string
	serverURL  string
	username   string
	logLevel   string
	jsonOutput bool
)

var rootCmd = &cobra.Command{
	Use:   "episoder",
	Short: "Batch-rename TV episode files on an OpenList server",
	Long: `episoder - batch-rename TV episode files on an OpenList server

Lists a remote directory, works out a standard name for every episode
file, shows the plan and renames everything in one request once you
confirm.

Naming modes:
  rename auto     extract title/season/episode from each filename
  rename manual   type each new name yourself
  rename seq      number files in order under one title and season
  rename regex    rewrite names with a regular expression`,
	SilenceUsage: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: discovered)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "OpenList server URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&username, "user", "u", "", "OpenList username (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	rootCmd.SilenceErrors = true
	rootCmd.Version = version
	rootCmd.SetVersionTemplate("episoder {{.Version}}\n")
}
