// Package media stores uploaded audio blobs under a server-local upload area
// keyed by sanitized filename and streams them back.
package media

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename strips path components and unsafe runes from a submitted
// filename. The result contains only [A-Za-z0-9._-] and never a traversal
// segment; an empty result means the name is unusable.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name = b.String()
	name = strings.Trim(name, ".")
	return name
}
