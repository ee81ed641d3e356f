package episode

import (
	"fmt"
	"strconv"
	"strings"
)

// Naming presets.
const (
	PresetDotted  = "{title}.S{season}E{episode:02d}"
	PresetVerbose = "Season_{season}_Episode_{episode:02d}_{title}"

	DefaultTemplate = PresetDotted
)

// Presets maps preset names to their templates.
var Presets = map[string]string{
	"dotted":  PresetDotted,
	"verbose": PresetVerbose,
}

// defaultEpisodeWidth applies to a bare {episode}.
const defaultEpisodeWidth = 2

// maxEpisodeWidth is the longest name most filesystems accept.
const maxEpisodeWidth = 255

// TemplateError reports a malformed template or a value the template
// cannot render.
type TemplateError struct {
	Template string
	Pos      int // byte offset into Template, -1 when not positional
	Reason   string
}

func (e *TemplateError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("template %q: %s", e.Template, e.Reason)
	}
	return fmt.Sprintf("template %q: %s at offset %d", e.Template, e.Reason, e.Pos)
}

type field int

const (
	fieldLiteral field = iota
	fieldTitle
	fieldSeason
	fieldEpisode
)

var fieldNames = map[string]field{
	"title":   fieldTitle,
	"season":  fieldSeason,
	"episode": fieldEpisode,
}

type segment struct {
	field   field
	literal string
	width   int
	zero    bool
}

// Template is a parsed naming template. It only substitutes {title},
// {season} and {episode}; nothing in it is ever evaluated.
type Template struct {
	raw      string
	segments []segment
}

// String returns the template source.
func (t *Template) String() string {
	return t.raw
}

// ParseTemplate parses s. Literal braces are written {{ and }}. Only
// {episode} accepts a format spec: d, Nd (space padded) or 0Nd (zero
// padded).
func ParseTemplate(s string) (*Template, error) {
	t := &Template{raw: s}
	var lit strings.Builder

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{field: fieldLiteral, literal: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '}':
			if i+1 < len(s) && s[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, &TemplateError{Template: s, Pos: i, Reason: "single '}'"}
		case '{':
			if i+1 < len(s) && s[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(s[i:], '}')
			if end < 0 {
				return nil, &TemplateError{Template: s, Pos: i, Reason: "unterminated placeholder"}
			}
			seg, err := parsePlaceholder(s, i, s[i+1:i+end])
			if err != nil {
				return nil, err
			}
			flush()
			t.segments = append(t.segments, seg)
			i += end
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return t, nil
}

func parsePlaceholder(tmpl string, pos int, body string) (segment, error) {
	name, spec, hasSpec := strings.Cut(body, ":")
	f, ok := fieldNames[name]
	if !ok {
		return segment{}, &TemplateError{Template: tmpl, Pos: pos, Reason: fmt.Sprintf("unknown placeholder {%s}", name)}
	}
	seg := segment{field: f}
	if f == fieldEpisode {
		seg.width = defaultEpisodeWidth
		seg.zero = true
	}
	if !hasSpec {
		return seg, nil
	}
	if f != fieldEpisode {
		return segment{}, &TemplateError{Template: tmpl, Pos: pos, Reason: fmt.Sprintf("format spec not allowed on {%s}", name)}
	}

	digits, ok := strings.CutSuffix(spec, "d")
	if !ok {
		return segment{}, &TemplateError{Template: tmpl, Pos: pos, Reason: fmt.Sprintf("unsupported format spec %q", spec)}
	}
	seg.width, seg.zero = 0, false
	if digits == "" {
		return seg, nil
	}
	if strings.HasPrefix(digits, "0") {
		seg.zero = true
	}
	w, err := strconv.Atoi(digits)
	if err != nil || w < 0 || strings.ContainsAny(digits, "+-") {
		return segment{}, &TemplateError{Template: tmpl, Pos: pos, Reason: fmt.Sprintf("unsupported format spec %q", spec)}
	}
	if w > maxEpisodeWidth {
		return segment{}, &TemplateError{Template: tmpl, Pos: pos, Reason: fmt.Sprintf("episode width %d exceeds %d", w, maxEpisodeWidth)}
	}
	seg.width = w
	return seg, nil
}

// Execute renders info through the template. It fails when the episode
// is not a non-negative integer.
func (t *Template) Execute(info Info) (string, error) {
	ep, err := strconv.Atoi(strings.TrimSpace(info.Episode))
	if err != nil || ep < 0 {
		return "", &TemplateError{Template: t.raw, Pos: -1, Reason: fmt.Sprintf("episode %q is not a non-negative integer", info.Episode)}
	}
	title := SanitizeTitle(strings.TrimSpace(info.Title))
	season := padSeason(info.Season)

	var b strings.Builder
	for _, seg := range t.segments {
		switch seg.field {
		case fieldLiteral:
			b.WriteString(seg.literal)
		case fieldTitle:
			b.WriteString(title)
		case fieldSeason:
			b.WriteString(season)
		case fieldEpisode:
			if seg.zero {
				fmt.Fprintf(&b, "%0*d", seg.width, ep)
			} else {
				fmt.Fprintf(&b, "%*d", seg.width, ep)
			}
		}
	}
	return b.String(), nil
}

// padSeason left-pads s with zeros to two characters.
func padSeason(s string) string {
	if s == "" {
		s = "1"
	}
	if len(s) >= 2 {
		return s
	}
	return strings.Repeat("0", 2-len(s)) + s
}

// Render parses tmpl and executes it for info. On failure it returns the
// sanitized title as a degraded name together with the error, so a batch
// can keep going and report the entry.
func Render(info Info, tmpl string) (string, error) {
	t, err := ParseTemplate(tmpl)
	if err != nil {
		return Fallback(info), err
	}
	name, err := t.Execute(info)
	if err != nil {
		return Fallback(info), err
	}
	return name, nil
}

// Fallback is the name used when a template cannot be rendered.
func Fallback(info Info) string {
	title := strings.TrimSpace(info.Title)
	if title == "" {
		return "Unknown"
	}
	return SanitizeTitle(title)
}
