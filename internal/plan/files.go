// internal/plan/files.go
package plan

import "strings"

// DefaultVideoExtensions are the extensions treated as video files.
var DefaultVideoExtensions = []string{
	".mp4", ".mkv", ".avi", ".mov", ".wmv", ".flv", ".webm",
	".m4v", ".mpg", ".mpeg", ".ts", ".m2ts", ".vob", ".iso",
}

// IsVideo reports whether name has one of the default video extensions.
func IsVideo(name string) bool {
	return hasExt(NewFile(name), DefaultVideoExtensions)
}

// FilterVideos keeps the files whose extension is in exts, compared
// case-insensitively. A nil exts means DefaultVideoExtensions.
func FilterVideos(files []File, exts []string) []File {
	if exts == nil {
		exts = DefaultVideoExtensions
	}
	var out []File
	for _, f := range files {
		if hasExt(f, exts) {
			out = append(out, f)
		}
	}
	return out
}

func hasExt(f File, exts []string) bool {
	if f.Ext == "" {
		return false
	}
	for _, e := range exts {
		if strings.EqualFold(f.Ext, e) {
			return true
		}
	}
	return false
}
