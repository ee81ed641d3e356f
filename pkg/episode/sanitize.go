// pkg/episode/sanitize.go
package episode

import "regexp"

// unsafeChars are characters not allowed in filenames on common filesystems.
var unsafeChars = regexp.MustCompile(`[<>:"/\\|?*]`)

// SanitizeTitle replaces filesystem-unsafe characters with '_'.
// Every other character, whitespace included, is left alone.
func SanitizeTitle(title string) string {
	return unsafeChars.ReplaceAllString(title, "_")
}
