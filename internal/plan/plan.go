// Package plan assembles rename plans: ordered old-name to new-name
// mappings over a batch of files in one directory.
package plan

import (
	"github.com/vmunix/episoder/pkg/episode"
)

// File is one input file: its full name and the extension split off it.
type File struct {
	Name string
	Ext  string
}

// NewFile builds a File from a filename.
func NewFile(name string) File {
	_, ext := episode.SplitExt(name)
	return File{Name: name, Ext: ext}
}

// Files builds Files from filenames, keeping their order.
func Files(names ...string) []File {
	files := make([]File, len(names))
	for i, n := range names {
		files[i] = NewFile(n)
	}
	return files
}

// Entry is one proposed rename.
type Entry struct {
	Old  string
	New  string
	Info *episode.Info // nil for strategies that do not use metadata
	Err  error         // set when rendering degraded to the fallback name
}

// Plan is an ordered set of renames. Old names are unique.
type Plan struct {
	Entries []Entry
}

// Len returns the number of entries.
func (p *Plan) Len() int {
	return len(p.Entries)
}

// Empty reports whether there is nothing to rename.
func (p *Plan) Empty() bool {
	return len(p.Entries) == 0
}

// Pair is one old/new name mapping.
type Pair struct {
	Old string `json:"src_name"`
	New string `json:"new_name"`
}

// Mapping returns the plan as ordered pairs.
func (p *Plan) Mapping() []Pair {
	pairs := make([]Pair, len(p.Entries))
	for i, e := range p.Entries {
		pairs[i] = Pair{Old: e.Old, New: e.New}
	}
	return pairs
}

// Unchanged returns entries whose new name equals the old one.
func (p *Plan) Unchanged() []Entry {
	var out []Entry
	for _, e := range p.Entries {
		if e.New == e.Old {
			out = append(out, e)
		}
	}
	return out
}

// Degraded returns entries whose name fell back after a rendering error.
func (p *Plan) Degraded() []Entry {
	var out []Entry
	for _, e := range p.Entries {
		if e.Err != nil {
			out = append(out, e)
		}
	}
	return out
}

// Collisions maps each contested target name to the names that would
// end up there. The server applies a batch in order, so a target is
// contested when several entries claim it, or when it names an input file
// that is still in place at that point: one the plan leaves alone, or one
// renamed only by a later entry. existing is the full input set the plan
// was built from.
func (p *Plan) Collisions(existing []File) map[string][]string {
	// index of the entry that moves each input out of the way
	movedAt := make(map[string]int, len(p.Entries))
	for i, e := range p.Entries {
		if e.New != e.Old {
			movedAt[e.Old] = i
		}
	}

	claims := make(map[string][]string)
	firstClaim := make(map[string]int)
	for i, e := range p.Entries {
		if e.New == e.Old {
			continue
		}
		if _, ok := claims[e.New]; !ok {
			firstClaim[e.New] = i
		}
		claims[e.New] = append(claims[e.New], e.Old)
	}

	out := make(map[string][]string)
	for _, f := range existing {
		srcs, ok := claims[f.Name]
		if !ok {
			continue
		}
		if at, moved := movedAt[f.Name]; !moved || at > firstClaim[f.Name] {
			out[f.Name] = append([]string{f.Name}, srcs...)
		}
	}
	for target, srcs := range claims {
		if len(srcs) > 1 {
			if _, done := out[target]; !done {
				out[target] = srcs
			}
		}
	}
	return out
}

// IsCollision reports whether the entry's target is contested.
func IsCollision(collisions map[string][]string, e Entry) bool {
	_, ok := collisions[e.New]
	return ok && e.New != e.Old
}
