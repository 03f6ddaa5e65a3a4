package fs

import (
	"path/filepath"
	"strings"
)

// defaultSkipPatterns are always applied regardless of config. They cover
// camera and OS system folders that never contain user photos.
var defaultSkipPatterns = []string{
	".Trashes",
	".Spotlight-V100",
	".fseventsd",
	".stfolder", // Syncthing
	"PRIVATE",   // camera system folder
	"AVF_INFO",  // Sony AVCHD info
	"THMBNL",    // Sony thumbnails
}

// SkipMatcher checks file and directory basenames against a set of glob
// patterns. Matched entries are excluded from enumeration; a matched
// directory is skipped whole.
type SkipMatcher struct {
	patterns []string
}

// NewSkipMatcher creates a SkipMatcher from raw pattern strings, combined
// with the built-in defaults. Blank lines and lines starting with '#' are
// skipped.
func NewSkipMatcher(rawPatterns []string) *SkipMatcher {
	patterns := make([]string, 0, len(defaultSkipPatterns)+len(rawPatterns))
	patterns = append(patterns, defaultSkipPatterns...)
	for _, raw := range rawPatterns {
		raw = strings.TrimSpace(raw)
		if raw == "" || strings.HasPrefix(raw, "#") {
			continue
		}
		patterns = append(patterns, raw)
	}
	return &SkipMatcher{patterns: patterns}
}

// Match reports whether the given basename should be skipped.
func (m *SkipMatcher) Match(basename string) bool {
	for _, p := range m.patterns {
		matched, err := filepath.Match(p, basename)
		if err != nil {
			// Malformed pattern, treat as non-matching.
			continue
		}
		if matched {
			return true
		}
	}
	return false
}
