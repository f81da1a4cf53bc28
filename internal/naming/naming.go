// Package naming derives filesystem-safe artifact filenames from container
// and volume names.
package naming

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// timestampLayout is second-resolution and sorts lexicographically
const timestampLayout = "20060102_150405"

// Sanitize strips every character that is not alphanumeric, underscore or
// hyphen, then trims trailing whitespace. The result may be empty; callers
// must tolerate an empty segment. Sanitize is idempotent.
func Sanitize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	return strings.TrimRightFunc(b.String(), unicode.IsSpace)
}

// ArtifactName composes the filename for one backup artifact:
//
//	<kind>_backup_<safe(container)>[_<safe(extra)>]_<YYYYMMDD_HHMMSS>.<ext>.gz
//
// extra is typically a volume name and may be empty. Pure function of its
// inputs; no filesystem access.
func ArtifactName(kind, containerName, extra, ext string, t time.Time) string {
	parts := []string{kind, "backup", Sanitize(containerName)}
	if extra != "" {
		parts = append(parts, Sanitize(extra))
	}
	parts = append(parts, t.Format(timestampLayout))

	return fmt.Sprintf("%s.%s.gz", strings.Join(parts, "_"), ext)
}
