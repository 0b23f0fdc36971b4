package system

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchGlob reports whether name matches pattern. Patterns use doublestar syntax
// ("**", character classes and {a,b} alternation). A pattern without a slash matches
// the base name at any depth.
func MatchGlob(pattern, name string) bool {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	if pattern == "" {
		return false
	}

	if !strings.Contains(pattern, "/") {
		name = path.Base(name)
	} else if !strings.HasPrefix(pattern, "/") {
		name = strings.TrimPrefix(name, "/")
	}

	ok, err := doublestar.Match(pattern, name)
	return err == nil && ok
}

// MatchAny reports whether name matches any of patterns.
func MatchAny(patterns []string, name string) bool {
	for _, p := range patterns {
		if MatchGlob(p, name) {
			return true
		}
	}
	return false
}
