package models

import (
	"path/filepath"
	"strings"
)

// Link is the href of one published cost report.
type Link string

// BaseName is the last path segment of the link.
func (l Link) BaseName() string {
	s := string(l)
	return s[strings.LastIndex(s, "/")+1:]
}

// LocalPath places the link's base name under dir. Spaces anywhere in the
// resulting path become underscores.
func (l Link) LocalPath(dir string) string {
	return strings.ReplaceAll(filepath.Join(dir, l.BaseName()), " ", "_")
}
