// Package session runs rename sessions against a remote directory: list,
// plan, confirm, dispatch.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/hbollon/go-edlib"
	"github.com/vmunix/episoder/internal/openlist"
	"github.com/vmunix/episoder/internal/plan"
)

//go:generate mockgen -source=session.go -destination=mocks/session.go -package=mocks

// Lister lists a remote directory.
type Lister interface {
	List(ctx context.Context, path string) ([]openlist.Object, error)
}

// Dispatcher performs renames on the remote store.
type Dispatcher interface {
	BatchRename(ctx context.Context, srcDir string, objs []openlist.RenameObject) error
	Rename(ctx context.Context, path, name string) error
}

// Confirmer shows a plan to the operator and reports whether to go ahead.
type Confirmer func(p *plan.Plan) (bool, error)

// Outcome is how a session ended.
type Outcome int

const (
	OutcomeApplied     Outcome = iota
	OutcomeNothingToDo         // empty plan, nothing dispatched
	OutcomeCancelled           // operator declined
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeNothingToDo:
		return "nothing to do"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// ErrNotFound indicates a named entry is not in the directory.
var ErrNotFound = errors.New("not found")

// suggestThreshold is the minimum Jaro-Winkler similarity for a suggestion.
const suggestThreshold = 0.75

// NotFoundError carries the closest names for a missing entry.
type NotFoundError struct {
	Name        string
	Dir         string
	Suggestions []string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%q not found in %s", e.Name, e.Dir)
	if len(e.Suggestions) > 0 {
		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(quoteAll(e.Suggestions), ", "))
	}
	return msg
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// Session ties a lister and a dispatcher together.
type Session struct {
	lister     Lister
	dispatcher Dispatcher
	log        *slog.Logger
}

// New creates a session. A nil logger uses slog.Default().
func New(lister Lister, dispatcher Dispatcher, log *slog.Logger) *Session {
	if log == nil {
		log = slog.Default()
	}
	return &Session{
		lister:     lister,
		dispatcher: dispatcher,
		log:        log.With("component", "session"),
	}
}

// Files returns the files (not directories) of dir in listing order. With
// videoOnly set, only names whose extension is in exts are kept; a nil
// exts means the default video extensions.
func (s *Session) Files(ctx context.Context, dir string, videoOnly bool, exts []string) ([]plan.File, error) {
	objs, err := s.lister.List(ctx, dir)
	if err != nil {
		return nil, err
	}

	files := make([]plan.File, 0, len(objs))
	for _, o := range objs {
		if o.IsDir {
			continue
		}
		files = append(files, plan.NewFile(o.Name))
	}
	if videoOnly {
		files = plan.FilterVideos(files, exts)
	}

	s.log.Debug("listed files", "dir", dir, "entries", len(objs), "files", len(files), "video_only", videoOnly)
	return files, nil
}

// Apply confirms and dispatches p for dir. An empty plan is never
// dispatched and never shown.
func (s *Session) Apply(ctx context.Context, dir string, p *plan.Plan, confirm Confirmer) (Outcome, error) {
	if p.Empty() {
		s.log.Info("nothing to rename", "dir", dir)
		return OutcomeNothingToDo, nil
	}

	ok, err := confirm(p)
	if err != nil {
		return OutcomeCancelled, fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		s.log.Info("rename cancelled", "dir", dir, "entries", p.Len())
		return OutcomeCancelled, nil
	}

	pairs := p.Mapping()
	objs := make([]openlist.RenameObject, len(pairs))
	for i, pair := range pairs {
		objs[i] = openlist.RenameObject{SrcName: pair.Old, NewName: pair.New}
	}

	if err := s.dispatcher.BatchRename(ctx, dir, objs); err != nil {
		return OutcomeApplied, fmt.Errorf("dispatch %d renames: %w", len(objs), err)
	}

	s.log.Info("renamed files", "dir", dir, "count", len(objs))
	return OutcomeApplied, nil
}

// RenameOne renames a single entry of dir after confirmation.
func (s *Session) RenameOne(ctx context.Context, dir, oldName, newName string, confirm Confirmer) (Outcome, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return OutcomeNothingToDo, errors.New("new name must not be empty")
	}
	if newName == oldName {
		return OutcomeNothingToDo, nil
	}

	p := &plan.Plan{Entries: []plan.Entry{{Old: oldName, New: newName}}}
	ok, err := confirm(p)
	if err != nil {
		return OutcomeCancelled, fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		return OutcomeCancelled, nil
	}

	if err := s.dispatcher.Rename(ctx, path.Join(dir, oldName), newName); err != nil {
		return OutcomeApplied, err
	}

	s.log.Info("renamed entry", "dir", dir, "from", oldName, "to", newName)
	return OutcomeApplied, nil
}

// Resolve finds the entry called name in dir. When there is none it
// returns a *NotFoundError listing similar names.
func (s *Session) Resolve(ctx context.Context, dir, name string) (openlist.Object, error) {
	objs, err := s.lister.List(ctx, dir)
	if err != nil {
		return openlist.Object{}, err
	}

	for _, o := range objs {
		if o.Name == name {
			return o, nil
		}
	}

	names := make([]string, len(objs))
	for i, o := range objs {
		names[i] = o.Name
	}
	return openlist.Object{}, &NotFoundError{Name: name, Dir: dir, Suggestions: Suggest(name, names, 3)}
}

// Suggest returns up to limit candidates similar to name, best first.
func Suggest(name string, candidates []string, limit int) []string {
	type scored struct {
		name  string
		score float32
	}

	needle := foldName(name)
	var matches []scored
	for _, c := range candidates {
		score := edlib.JaroWinklerSimilarity(needle, foldName(c))
		if score >= suggestThreshold {
			matches = append(matches, scored{name: c, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	out := make([]string, 0, min(limit, len(matches)))
	for i := 0; i < len(matches) && i < limit; i++ {
		out = append(out, matches[i].name)
	}
	return out
}

func quoteAll(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = fmt.Sprintf("%q", s)
	}
	return out
}
