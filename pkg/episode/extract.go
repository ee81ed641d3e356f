// Package episode extracts show/season/episode metadata from loosely
// formatted media filenames and renders normalized names from templates.
package episode

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/width"
)

// separators are trimmed from both ends of a captured title, along with
// any Unicode space (the ideographic space U+3000 is common in CJK names).
const separators = "._-"

// Info is the episode metadata inferred from (or assigned to) a file.
// Season and Episode keep the digitClass as captured, with full-width digitClass
// narrowed to ASCII; Render normalizes them.
type Info struct {
	Title   string `json:"title"`
	Season  string `json:"season"`
	Episode string `json:"episode"`
}

// Rule pairs a compiled pattern with the function that turns its
// submatches into an Info. Rules are evaluated in order by [Match];
// first match wins.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Extract func(m []string) Info
}

// Pattern fragments. Full-width digits and Unicode spaces are accepted so
// that names typed with a CJK input method still parse.
const (
	sepClass   = `[\s\p{Zs}._-]*`
	digitClass = `[0-9０-９]`
)

// Rules is the ordered rule table. The patterns overlap, so order decides
// rather than specificity: "Show.102" is read by sxe as season 10,
// episode 2, and compact only sees names that sxe already rejected.
var Rules = []Rule{
	{
		// S01E01, 1x01, "Title S1 E2"
		Name:    "sxe",
		Pattern: regexp.MustCompile(`(?i)(.+?)` + sepClass + `S?(` + digitClass + `+)` + sepClass + `(?:E|X)?(` + digitClass + `+)`),
		Extract: seasonEpisode,
	},
	{
		// 10102: season digits followed by a two-digit episode
		Name:    "compact",
		Pattern: regexp.MustCompile(`(?i)(.+?)` + sepClass + `(` + digitClass + `+)` + sepClass + `(` + digitClass + `{2})`),
		Extract: seasonEpisode,
	},
	{
		Name:    "ep",
		Pattern: regexp.MustCompile(`(?i)(.+?)` + sepClass + `EP?` + sepClass + `(` + digitClass + `+)`),
		Extract: episodeOnly,
	},
	{
		// "Title 3 of 10"
		Name:    "part-of",
		Pattern: regexp.MustCompile(`(?i)(.+?)` + sepClass + `(` + digitClass + `+)` + sepClass + `of` + sepClass + digitClass + `+`),
		Extract: episodeOnly,
	},
}

func seasonEpisode(m []string) Info {
	return Info{Title: trimTitle(m[1]), Season: width.Narrow.String(m[2]), Episode: width.Narrow.String(m[3])}
}

func episodeOnly(m []string) Info {
	return Info{Title: trimTitle(m[1]), Season: "1", Episode: width.Narrow.String(m[2])}
}

func trimTitle(s string) string {
	return strings.TrimFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
	})
}

// Extract parses filename into episode metadata. It never fails: when no
// rule matches, the whole stem becomes the title of season 1, episode 1.
func Extract(filename string) Info {
	info, _, _ := Match(filename)
	return info
}

// Match is Extract that also reports which rule produced the result.
// ok is false when the fallback was used.
func Match(filename string) (info Info, rule string, ok bool) {
	for _, r := range Rules {
		m := r.Pattern.FindStringSubmatch(filename)
		if m == nil {
			continue
		}
		info = r.Extract(m)
		if info.Title == "" {
			continue
		}
		return info, r.Name, true
	}

	stem, _ := SplitExt(filename)
	return Info{Title: stem, Season: "1", Episode: "1"}, "", false
}

// SplitExt splits name into stem and extension (with its leading dot).
// Leading dots do not start an extension, so ".hidden" has none.
func SplitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || strings.Trim(name[:i], ".") == "" {
		return name, ""
	}
	return name[:i], name[i:]
}
