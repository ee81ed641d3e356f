package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vmunix/episoder/internal/plan"
	"github.com/vmunix/episoder/internal/session"
)

var mvCmd = &cobra.Command{
	Use:   "mv <dir> <name> <new-name>",
	Short: "Rename a single file or directory",
	Long: `Rename one entry of a remote directory. When name does not exist,
the closest names in the directory are suggested.

Example:
  episoder mv /tv/Show "Show 1x01.mkv" "Show.S01E01.mkv"`,
	Args: cobra.ExactArgs(3),
	RunE: runMvCmd,
}

func init() {
	rootCmd.AddCommand(mvCmd)
	mvCmd.Flags().BoolP("yes", "y", false, "Rename without asking")
}

func runMvCmd(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	yes, _ := cmd.Flags().GetBool("yes")
	return a.moveOne(cmd.Context(), args[0], args[1], args[2], yes)
}

func (a *app) moveOne(ctx context.Context, dir, name, newName string, yes bool) error {
	if err := a.connect(ctx); err != nil {
		return err
	}
	sess := session.New(a.client, a.client, a.log)

	obj, err := sess.Resolve(ctx, dir, name)
	if err != nil {
		return err
	}

	outcome, err := sess.RenameOne(ctx, dir, obj.Name, newName, func(p *plan.Plan) (bool, error) {
		e := p.Entries[0]
		fmt.Fprintf(a.out, "%s -> %s\n", e.Old, e.New)
		if yes {
			return true, nil
		}
		return promptConfirm("Rename?")
	})
	if err != nil {
		return err
	}

	switch outcome {
	case session.OutcomeApplied:
		fmt.Fprintln(a.out, "Renamed.")
	case session.OutcomeNothingToDo:
		fmt.Fprintln(a.out, "Name unchanged.")
	case session.OutcomeCancelled:
		fmt.Fprintln(a.out, "Cancelled.")
	}
	return nil
}
