package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vmunix/episoder/internal/config"
	"github.com/vmunix/episoder/internal/plan"
	"github.com/vmunix/episoder/internal/session"
	"github.com/vmunix/episoder/pkg/episode"
)

var renameCmd = &cobra.Command{
	Use:   "rename",
	Short: "Batch-rename files in a remote directory",
	Long: `Batch-rename the files of a remote directory.

Every mode builds a plan first and shows it; nothing is renamed until you
confirm (or pass --yes). Only video files are considered unless --all is
given. Markers in the plan:
  !  two files would get the same name, or the name is already taken
  =  the name would not change
  ?  the template could not render this file; a fallback name is used`,
}

var renameAutoCmd = &cobra.Command{
	Use:   "auto <dir>",
	Short: "Name files from the title, season and episode in their names",
	Long: `Extract title, season and episode from each filename and render
them through a naming template.

Examples:
  episoder rename auto /tv/Show
  episoder rename auto --preset verbose /tv/Show
  episoder rename auto --template "{title} - {season}x{episode:02d}" /tv/Show
  episoder rename auto --dry-run --json /tv/Show`,
	Args: cobra.ExactArgs(1),
	RunE: runRenameAuto,
}

var renameManualCmd = &cobra.Command{
	Use:   "manual <dir>",
	Short: "Type each new name yourself (Enter skips a file)",
	Args:  cobra.ExactArgs(1),
	RunE:  runRenameManual,
}

var renameSeqCmd = &cobra.Command{
	Use:   "seq <dir>",
	Short: "Number files in listing order under one title and season",
	Long: `Give every file the same title and season and number the episodes
in listing order, ignoring any numbers already in the names.

Examples:
  episoder rename seq --title "My Show" --season 2 /tv/MyShow/S2
  episoder rename seq --title "My Show" --start 13 /tv/MyShow/part2`,
	Args: cobra.ExactArgs(1),
	RunE: runRenameSeq,
}

var renameRegexCmd = &cobra.Command{
	Use:   "regex <dir> <pattern> <replacement>",
	Short: "Rewrite names with a regular expression",
	Long: `Replace every match of pattern in each filename. The replacement
may reference groups as $1 or ${name}. Files the pattern does not change
are left out of the plan.

Examples:
  episoder rename regex /tv/Show '\[.*?\]\s*' ''
  episoder rename regex /tv/Show '^(.+)\.E(\d+)' '${1}.S01E$2'`,
	Args: cobra.ExactArgs(3),
	RunE: runRenameRegex,
}

func init() {
	rootCmd.AddCommand(renameCmd)
	renameCmd.AddCommand(renameAutoCmd, renameManualCmd, renameSeqCmd, renameRegexCmd)

	renameCmd.PersistentFlags().Bool("all", false, "Include non-video files")
	renameCmd.PersistentFlags().BoolP("yes", "y", false, "Rename without asking")
	renameCmd.PersistentFlags().Bool("dry-run", false, "Show the plan and stop")

	addTemplateFlags(renameAutoCmd)
	addTemplateFlags(renameSeqCmd)

	renameSeqCmd.Flags().String("title", "", "Series title (prompted when empty)")
	renameSeqCmd.Flags().String("season", "1", "Season number")
	renameSeqCmd.Flags().String("start", "1", "First episode number")
}

func addTemplateFlags(cmd *cobra.Command) {
	cmd.Flags().String("preset", "", "Naming preset: dotted, verbose")
	cmd.Flags().String("template", "", "Naming template, e.g. {title}.S{season}E{episode:02d}")
}

// namingTemplate picks --template, then --preset, then the config, and
// checks the result parses.
func namingTemplate(cmd *cobra.Command, cfg *config.Config) (string, error) {
	tmpl := cfg.NamingTemplate()
	if preset, _ := cmd.Flags().GetString("preset"); preset != "" {
		t, ok := episode.Presets[preset]
		if !ok {
			return "", fmt.Errorf("unknown preset %q (available: dotted, verbose)", preset)
		}
		tmpl = t
	}
	if t, _ := cmd.Flags().GetString("template"); t != "" {
		tmpl = t
	}

	if _, err := episode.ParseTemplate(tmpl); err != nil {
		return "", err
	}
	return tmpl, nil
}

type renameOptions struct {
	all    bool
	yes    bool
	dryRun bool
}

func renameFlags(cmd *cobra.Command) renameOptions {
	all, _ := cmd.Flags().GetBool("all")
	yes, _ := cmd.Flags().GetBool("yes")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	return renameOptions{all: all, yes: yes, dryRun: dryRun}
}

func runRenameAuto(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	tmpl, err := namingTemplate(cmd, a.cfg)
	if err != nil {
		return err
	}
	return a.renameBatch(cmd.Context(), args[0], plan.Auto{Template: tmpl}, renameFlags(cmd))
}

func runRenameManual(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}

	return a.renameBatch(cmd.Context(), args[0], &manualPrompt{}, renameFlags(cmd))
}

// manualPrompt asks for each new name in turn. After the first failed read
// (EOF, interrupt) it stops asking and reports the error through Err.
type manualPrompt struct {
	err error
}

// Propose implements plan.Strategy.
func (m *manualPrompt) Propose(i int, f plan.File) (plan.Entry, bool) {
	if m.err != nil {
		return plan.Entry{}, false
	}
	fmt.Fprintf(promptOut, "\n%s\n", f.Name)
	name, err := promptWithDefault("  new name (Enter to skip)", "")
	if err != nil {
		m.err = err
		return plan.Entry{}, false
	}
	return plan.ManualFunc(func(plan.File) string { return name }).Propose(i, f)
}

func (m *manualPrompt) Err() error {
	return m.err
}

func runRenameSeq(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	tmpl, err := namingTemplate(cmd, a.cfg)
	if err != nil {
		return err
	}

	title, _ := cmd.Flags().GetString("title")
	if strings.TrimSpace(title) == "" {
		if title, err = promptRequired("Series title"); err != nil {
			return err
		}
	}
	season, _ := cmd.Flags().GetString("season")
	start, _ := cmd.Flags().GetString("start")

	s := plan.Sequential{
		Title:    strings.TrimSpace(title),
		Season:   plan.NormalizeNumber(season, 1),
		Start:    plan.NormalizeNumber(start, 1),
		Template: tmpl,
	}
	return a.renameBatch(cmd.Context(), args[0], s, renameFlags(cmd))
}

func runRenameRegex(cmd *cobra.Command, args []string) error {
	s, err := plan.NewRegex(args[1], args[2])
	if err != nil {
		return err
	}
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	return a.renameBatch(cmd.Context(), args[0], s, renameFlags(cmd))
}

// renameBatch lists dir, builds a plan with s and applies it.
func (a *app) renameBatch(ctx context.Context, dir string, s plan.Strategy, opts renameOptions) error {
	if err := a.connect(ctx); err != nil {
		return err
	}
	sess := session.New(a.client, a.client, a.log)

	videoOnly := !(opts.all || a.cfg.Naming.AllFiles)
	files, err := sess.Files(ctx, dir, videoOnly, a.videoExtensions())
	if err != nil {
		return err
	}

	p := plan.Build(files, s)
	if f, ok := s.(interface{ Err() error }); ok {
		if err := f.Err(); err != nil {
			return fmt.Errorf("reading new names: %w", err)
		}
	}
	collisions := p.Collisions(files)

	outcome, err := sess.Apply(ctx, dir, p, a.confirmer(p.Len(), collisions, opts))
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(a.out, renameResultJSON{
			Dir:     dir,
			Outcome: outcome.String(),
			DryRun:  opts.dryRun,
			Entries: planToJSON(p, collisions),
		})
	}

	switch outcome {
	case session.OutcomeApplied:
		fmt.Fprintf(a.out, "Renamed %d file(s) in %s\n", p.Len(), dir)
	case session.OutcomeNothingToDo:
		if len(files) == 0 {
			fmt.Fprintf(a.out, "No files to rename in %s\n", dir)
		} else {
			fmt.Fprintln(a.out, "Nothing to rename.")
		}
	case session.OutcomeCancelled:
		if opts.dryRun {
			fmt.Fprintln(a.out, "Dry run: nothing renamed.")
		} else {
			fmt.Fprintln(a.out, "Cancelled.")
		}
	}
	return nil
}

// confirmer shows the plan and decides whether it goes ahead. Conflicting
// targets always need an explicit answer. With --json stdout carries only
// the result document, so an interactive prompt shows the table on stderr.
func (a *app) confirmer(n int, collisions map[string][]string, opts renameOptions) session.Confirmer {
	return func(p *plan.Plan) (bool, error) {
		if !jsonOutput {
			printPlan(a.out, p, collisions)
		}
		if opts.dryRun {
			return false, nil
		}
		if opts.yes {
			if len(collisions) > 0 {
				return false, fmt.Errorf("%d conflicting target name(s); rerun without --yes to review", len(collisions))
			}
			return true, nil
		}
		if jsonOutput {
			printPlan(promptOut, p, collisions)
		}
		return promptConfirm(fmt.Sprintf("Rename %d file(s)?", n))
	}
}

func (a *app) videoExtensions() []string {
	if len(a.cfg.Naming.VideoExtensions) == 0 {
		return nil
	}
	return a.cfg.Naming.VideoExtensions
}
