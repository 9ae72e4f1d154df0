package walker

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchesInclude returns true if the given relative path matches any of the
// include patterns. If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if the given relative path matches any of the
// exclude patterns. If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny checks if relPath matches any of the given glob patterns,
// using doublestar for ** support. Matching is case-insensitive so that
// "**/*.pdf" admits "MENU.PDF", consistent with the extension check. A
// pattern also matches when it matches the bare filename, so
// "report*.pdf" works for nested files.
func matchesAny(relPath string, patterns []string) bool {
	normalized := strings.ToLower(filepath.ToSlash(relPath))

	for _, pattern := range patterns {
		pattern = strings.ToLower(filepath.ToSlash(pattern))

		if matched, err := doublestar.PathMatch(pattern, normalized); err == nil && matched {
			return true
		}

		base := filepath.Base(normalized)
		if matched, err := doublestar.PathMatch(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}
