package main

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/vmunix/episoder/internal/openlist"
	"github.com/vmunix/episoder/internal/session"
	"golang.org/x/sync/errgroup"
)

// maxConcurrentLists bounds parallel directory listings.
const maxConcurrentLists = 4

var lsCmd = &cobra.Command{
	Use:   "ls [path...]",
	Short: "List remote directories",
	Long: `List one or more remote directories. Several paths are fetched
concurrently.

Examples:
  episoder ls
  episoder ls /tv/Show /tv/Other
  episoder ls --json /tv`,
	RunE: runLsCmd,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

type listing struct {
	Path    string            `json:"path"`
	Entries []openlist.Object `json:"entries"`
}

func runLsCmd(cmd *cobra.Command, args []string) error {
	paths := args
	if len(paths) == 0 {
		paths = []string{"/"}
	}

	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	if err := a.connect(cmd.Context()); err != nil {
		return err
	}

	results, err := listAll(cmd.Context(), a.client, paths)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(a.out, results)
	}
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(a.out)
			}
			fmt.Fprintf(a.out, "%s:\n", r.Path)
		}
		printListing(a.out, r.Entries)
	}
	return nil
}

// listAll lists paths concurrently. Results keep the order of paths; the
// first failure cancels the rest.
func listAll(ctx context.Context, l session.Lister, paths []string) ([]listing, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLists)

	results := make([]listing, len(paths))
	for i, p := range paths {
		g.Go(func() error {
			objs, err := l.List(ctx, p)
			if err != nil {
				return err
			}
			results[i] = listing{Path: p, Entries: objs}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// printListing prints directories first, then files, each group in
// server order.
func printListing(w io.Writer, objs []openlist.Object) {
	if len(objs) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}

	sorted := make([]openlist.Object, len(objs))
	copy(sorted, objs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].IsDir && !sorted[j].IsDir
	})

	var dirs, files int
	var total int64
	for _, o := range sorted {
		kind, size, name := "-", formatSize(o.Size), o.Name
		if o.IsDir {
			kind, size, name = "d", "", o.Name+"/"
			dirs++
		} else {
			files++
			total += o.Size
		}
		modified := ""
		if !o.Modified.IsZero() {
			modified = humanize.Time(o.Modified)
		}
		fmt.Fprintf(w, "%s %10s  %-16s %s\n", kind, size, modified, name)
	}
	fmt.Fprintf(w, "%d dir(s), %d file(s), %s\n", dirs, files, formatSize(total))
}
