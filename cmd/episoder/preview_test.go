package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/episoder/internal/plan"
	"github.com/vmunix/episoder/pkg/episode"
)

func TestDisplayWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"Show.S01E01.mkv", 15},
		{"進撃の巨人", 10},
		{"ｆｕｌｌ", 8},
		{"Pokémon", 7},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, displayWidth(tt.in))
		})
	}
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab  ", padRight("ab", 4))
	assert.Equal(t, "進撃", padRight("進撃", 4))
	assert.Equal(t, "進撃  ", padRight("進撃", 6))
	assert.Equal(t, "toolong", padRight("toolong", 3))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "short.mkv", truncateName("short.mkv", 20))
	assert.Equal(t, "...E01.mkv", truncateName("Very.Long.Show.Name.S01E01.mkv", 10))
	assert.Equal(t, "...", truncateName("abcdef", 3))
	assert.Equal(t, "...巨人.mkv", truncateName("進撃の巨人.mkv", 11))
	assert.LessOrEqual(t, displayWidth(truncateName("進撃の巨人.mkv", 10)), 10)
}

func TestPrintPlan_Markers(t *testing.T) {
	files := plan.Files("Show.S01E01.mkv", "Show 1x01.mkv", "Show 1x02.mkv", "Other.mkv")
	p := &plan.Plan{Entries: []plan.Entry{
		{Old: "Show.S01E01.mkv", New: "Show.S01E01.mkv"},
		{Old: "Show 1x01.mkv", New: "Show.S01E01.mkv"},
		{Old: "Show 1x02.mkv", New: "Show.S01E02.mkv"},
		{Old: "Other.mkv", New: "Other.S01E01.mkv", Err: &episode.TemplateError{Template: "x", Pos: -1, Reason: "bad"}},
	}}

	var buf bytes.Buffer
	printPlan(&buf, p, p.Collisions(files))
	out := buf.String()
	lines := strings.Split(out, "\n")

	assert.True(t, strings.HasPrefix(lines[0], "   #"), "header: %q", lines[0])
	assert.True(t, strings.HasPrefix(lines[2], markUnchanged+"  1 "), "unchanged: %q", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], markCollision+"  2 "), "collision: %q", lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "   3 "), "plain: %q", lines[4])
	assert.True(t, strings.HasPrefix(lines[5], markDegraded+"  4 "), "degraded: %q", lines[5])
	assert.Contains(t, out, "4 file(s), ! 1 name collision(s), = 1 unchanged, ? 1 could not be rendered")
}

func TestPrintPlan_AlignsWideNames(t *testing.T) {
	p := &plan.Plan{Entries: []plan.Entry{
		{Old: "進撃の巨人 01.mkv", New: "進撃の巨人.S01E01.mkv"},
		{Old: "ab.mkv", New: "ab.S01E01.mkv"},
	}}

	var buf bytes.Buffer
	printPlan(&buf, p, nil)
	lines := strings.Split(buf.String(), "\n")

	arrow := func(line string) int {
		i := strings.Index(line, " -> ")
		require.GreaterOrEqual(t, i, 0, "no arrow in %q", line)
		return displayWidth(line[:i])
	}
	assert.Equal(t, arrow(lines[2]), arrow(lines[3]))
}

func TestPlanToJSON(t *testing.T) {
	info := episode.Info{Title: "Show", Season: "1", Episode: "02"}
	p := &plan.Plan{Entries: []plan.Entry{
		{Old: "a.mkv", New: "Show.S01E02.mkv", Info: &info},
		{Old: "b.mkv", New: "b.mkv", Err: errors.New("boom")},
	}}

	got := planToJSON(p, nil)
	require.Len(t, got, 2)
	assert.Equal(t, planEntryJSON{Old: "a.mkv", New: "Show.S01E02.mkv", Title: "Show", Season: "1", Episode: "02"}, got[0])
	assert.Equal(t, planEntryJSON{Old: "b.mkv", New: "b.mkv", Unchanged: true, Error: "boom"}, got[1])
}
