package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/episoder/pkg/episode"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <filename>...",
	Short: "Show how filenames are read (local, no server needed)",
	Long: `Extract title, season and episode from filenames and show the name
the template would give them.

Examples:
  episoder parse "Show.S01E05.mkv"
  episoder parse --preset verbose "Show 1x05.mkv" "Show - 06.mkv"
  episoder parse --file names.txt --json`,
	RunE: runParseCmd,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	addTemplateFlags(parseCmd)
	parseCmd.Flags().StringP("file", "f", "", "Read filenames from file (one per line)")
}

type parseResult struct {
	Filename string `json:"filename"`
	Rule     string `json:"rule"`
	Title    string `json:"title"`
	Season   string `json:"season"`
	Episode  string `json:"episode"`
	Name     string `json:"name"`
	Error    string `json:"error,omitempty"`
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	inputFile, _ := cmd.Flags().GetString("file")

	names := args
	if inputFile != "" {
		fromFile, err := readNameFile(inputFile)
		if err != nil {
			return fmt.Errorf("reading file: %w", err)
		}
		names = append(names, fromFile...)
	}
	if len(names) == 0 {
		return fmt.Errorf("usage: episoder parse <filename>... or episoder parse --file <names.txt>")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tmpl, err := namingTemplate(cmd, cfg)
	if err != nil {
		return err
	}

	results := make([]parseResult, len(names))
	for i, name := range names {
		results[i] = parseName(name, tmpl)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, results)
	}
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printParseResult(out, r)
	}
	return nil
}

func parseName(filename, tmpl string) parseResult {
	info, rule, ok := episode.Match(filename)
	if !ok {
		rule = "fallback"
	}
	_, ext := episode.SplitExt(filename)
	name, err := episode.Render(info, tmpl)

	r := parseResult{
		Filename: filename,
		Rule:     rule,
		Title:    info.Title,
		Season:   info.Season,
		Episode:  info.Episode,
		Name:     name + ext,
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

func printParseResult(w io.Writer, r parseResult) {
	fmt.Fprintf(w, "%s\n", r.Filename)
	fmt.Fprintf(w, "  Rule:     %s\n", r.Rule)
	fmt.Fprintf(w, "  Title:    %s\n", r.Title)
	fmt.Fprintf(w, "  Season:   %s\n", r.Season)
	fmt.Fprintf(w, "  Episode:  %s\n", r.Episode)
	fmt.Fprintf(w, "  New name: %s\n", r.Name)
	if r.Error != "" {
		fmt.Fprintf(w, "  Warning:  %s\n", r.Error)
	}
}

// readNameFile reads filenames from a file, one per line.
// Empty lines and lines starting with # are skipped.
func readNameFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	return names, scanner.Err()
}
