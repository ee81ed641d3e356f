// internal/plan/build.go
package plan

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vmunix/episoder/pkg/episode"
)

// Strategy proposes a new name for the i-th distinct file of a batch.
// ok is false when the file should be left out of the plan.
type Strategy interface {
	Propose(i int, f File) (e Entry, ok bool)
}

// Build applies s to files in order. Duplicate names are kept once.
// Build has no side effects: the same inputs always give the same plan.
func Build(files []File, s Strategy) *Plan {
	p := &Plan{Entries: make([]Entry, 0, len(files))}
	seen := make(map[string]bool, len(files))

	i := 0
	for _, f := range files {
		if seen[f.Name] {
			continue
		}
		seen[f.Name] = true

		e, ok := s.Propose(i, f)
		i++
		if !ok {
			continue
		}
		e.Old = f.Name
		p.Entries = append(p.Entries, e)
	}
	return p
}

// Auto extracts metadata from each filename and renders it.
type Auto struct {
	Template string
}

// Propose implements Strategy.
func (a Auto) Propose(_ int, f File) (Entry, bool) {
	info := episode.Extract(f.Name)
	name, err := episode.Render(info, a.template())
	return Entry{New: name + f.Ext, Info: &info, Err: err}, true
}

func (a Auto) template() string {
	if a.Template == "" {
		return episode.DefaultTemplate
	}
	return a.Template
}

// Manual takes explicit new names keyed by the old name. Files without a
// name, or with a blank one, are skipped.
type Manual struct {
	Names map[string]string
}

// Propose implements Strategy.
func (m Manual) Propose(_ int, f File) (Entry, bool) {
	name := strings.TrimSpace(m.Names[f.Name])
	if name == "" {
		return Entry{}, false
	}
	return Entry{New: name}, true
}

// ManualFunc asks fn for each new name, in input order. A blank answer
// skips the file.
type ManualFunc func(f File) string

// Propose implements Strategy.
func (fn ManualFunc) Propose(_ int, f File) (Entry, bool) {
	name := strings.TrimSpace(fn(f))
	if name == "" {
		return Entry{}, false
	}
	return Entry{New: name}, true
}

// Sequential names every file with the same title and season and numbers
// episodes from Start, one per file in input order. Numbers embedded in
// the original names are ignored.
type Sequential struct {
	Title    string
	Season   int
	Start    int
	Template string
}

// Propose implements Strategy.
func (s Sequential) Propose(i int, f File) (Entry, bool) {
	info := episode.Info{
		Title:   s.Title,
		Season:  strconv.Itoa(s.Season),
		Episode: strconv.Itoa(s.Start + i),
	}
	tmpl := s.Template
	if tmpl == "" {
		tmpl = episode.DefaultTemplate
	}
	name, err := episode.Render(info, tmpl)
	return Entry{New: name + f.Ext, Info: &info, Err: err}, true
}

// Regex rewrites names with a regular expression replacement. Names the
// pattern leaves unchanged are skipped.
type Regex struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewRegex compiles pattern. The replacement may reference groups as $1
// or ${name}.
func NewRegex(pattern, replacement string) (Regex, error) {
	if pattern == "" {
		return Regex{}, fmt.Errorf("empty pattern")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return Regex{}, fmt.Errorf("compile pattern: %w", err)
	}
	return Regex{Pattern: re, Replacement: replacement}, nil
}

// Propose implements Strategy.
func (r Regex) Propose(_ int, f File) (Entry, bool) {
	name := r.Pattern.ReplaceAllString(f.Name, r.Replacement)
	if name == f.Name || strings.TrimSpace(name) == "" {
		return Entry{}, false
	}
	return Entry{New: name}, true
}

// NormalizeNumber reads a user-entered number. Anything that is not a
// plain run of digits gives def.
func NormalizeNumber(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return def
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
