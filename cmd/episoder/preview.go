package main

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/vmunix/episoder/internal/plan"
	"golang.org/x/text/width"
)

// maxOldWidth caps the old-name column; longer names are shortened.
const maxOldWidth = 60

const (
	markCollision = "!"
	markUnchanged = "="
	markDegraded  = "?"
)

// printPlan renders the plan as an aligned old -> new table. Columns are
// padded by display width so that CJK names line up.
func printPlan(w io.Writer, p *plan.Plan, collisions map[string][]string) {
	oldWidth := len("OLD NAME")
	for _, e := range p.Entries {
		oldWidth = max(oldWidth, displayWidth(e.Old))
	}
	oldWidth = min(oldWidth, maxOldWidth)

	fmt.Fprintf(w, "   %-4s %s    %s\n", "#", padRight("OLD NAME", oldWidth), "NEW NAME")
	fmt.Fprintln(w, strings.Repeat("-", 10+oldWidth+len("NEW NAME")))

	var nCollide, nSame, nDegraded int
	for i, e := range p.Entries {
		mark := " "
		switch {
		case plan.IsCollision(collisions, e):
			mark = markCollision
			nCollide++
		case e.New == e.Old:
			mark = markUnchanged
			nSame++
		case e.Err != nil:
			mark = markDegraded
			nDegraded++
		}
		fmt.Fprintf(w, "%s  %-4d %s -> %s\n", mark, i+1, padRight(truncateName(e.Old, oldWidth), oldWidth), e.New)
	}

	fmt.Fprintf(w, "\n%d file(s)", p.Len())
	if nCollide > 0 {
		fmt.Fprintf(w, ", %s %d name collision(s)", markCollision, nCollide)
	}
	if nSame > 0 {
		fmt.Fprintf(w, ", %s %d unchanged", markUnchanged, nSame)
	}
	if nDegraded > 0 {
		fmt.Fprintf(w, ", %s %d could not be rendered (fallback name used)", markDegraded, nDegraded)
	}
	fmt.Fprintln(w)

	targets := make([]string, 0, len(collisions))
	for target := range collisions {
		targets = append(targets, target)
	}
	sort.Strings(targets)
	for _, target := range targets {
		fmt.Fprintf(w, "  %s %q <- %s\n", markCollision, target, strings.Join(collisions[target], ", "))
	}
}

// displayWidth returns the number of terminal columns s occupies.
func displayWidth(s string) int {
	n := 0
	for _, r := range s {
		switch width.LookupRune(r).Kind() {
		case width.EastAsianWide, width.EastAsianFullwidth:
			n += 2
		default:
			n++
		}
	}
	return n
}

func padRight(s string, cols int) string {
	if pad := cols - displayWidth(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// truncateName shortens s to at most cols display columns, keeping the
// end (where the episode number and extension usually are).
func truncateName(s string, cols int) string {
	if displayWidth(s) <= cols {
		return s
	}
	if cols <= 3 {
		return strings.Repeat(".", max(cols, 0))
	}
	runes := []rune(s)
	n := 3
	i := len(runes)
	for i > 0 {
		rw := displayWidth(string(runes[i-1]))
		if n+rw > cols {
			break
		}
		n += rw
		i--
	}
	return "..." + string(runes[i:])
}

func formatSize(bytes int64) string {
	if bytes < 0 {
		return fmt.Sprintf("%d B", bytes)
	}
	return humanize.IBytes(uint64(bytes))
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type planEntryJSON struct {
	Old       string `json:"src_name"`
	New       string `json:"new_name"`
	Title     string `json:"title,omitempty"`
	Season    string `json:"season,omitempty"`
	Episode   string `json:"episode,omitempty"`
	Unchanged bool   `json:"unchanged,omitempty"`
	Collision bool   `json:"collision,omitempty"`
	Error     string `json:"error,omitempty"`
}

type renameResultJSON struct {
	Dir     string          `json:"dir"`
	Outcome string          `json:"outcome"`
	DryRun  bool            `json:"dry_run,omitempty"`
	Entries []planEntryJSON `json:"entries"`
}

func planToJSON(p *plan.Plan, collisions map[string][]string) []planEntryJSON {
	out := make([]planEntryJSON, 0, p.Len())
	for _, e := range p.Entries {
		j := planEntryJSON{
			Old:       e.Old,
			New:       e.New,
			Unchanged: e.New == e.Old,
			Collision: plan.IsCollision(collisions, e),
		}
		if e.Info != nil {
			j.Title, j.Season, j.Episode = e.Info.Title, e.Info.Season, e.Info.Episode
		}
		if e.Err != nil {
			j.Error = e.Err.Error()
		}
		out = append(out, j)
	}
	return out
}
