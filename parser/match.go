package parser

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar"
	"github.com/misha-mad/vercel-rpc-sub000/errors"
)

// DefaultInclude matches every Rust file under the input directory.
var DefaultInclude = []string{"**/*.rs"}

// Matcher selects source files by slash-separated path relative to the input
// directory: a file is selected when it is a .rs file, matches any include
// pattern, and matches no exclude pattern. Patterns support "**".
type Matcher struct {
	include []string
	exclude []string
}

// NewMatcher builds a matcher. An empty include list means DefaultInclude.
func NewMatcher(include, exclude []string) *Matcher {
	if len(include) == 0 {
		include = DefaultInclude
	}
	return &Matcher{include: include, exclude: exclude}
}

// Match reports whether rel is selected. A malformed pattern is an
// ErrInvalidConfig error.
func (m *Matcher) Match(rel string) (bool, error) {
	rel = filepath.ToSlash(rel)
	if !strings.HasSuffix(rel, ".rs") {
		return false, nil
	}
	included, err := matchAny(m.include, rel)
	if err != nil || !included {
		return false, err
	}
	excluded, err := matchAny(m.exclude, rel)
	if err != nil {
		return false, err
	}
	return !excluded, nil
}

func matchAny(patterns []string, rel string) (bool, error) {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, rel)
		if err != nil {
			return false, errors.WithHint(
				errors.NewInvalidConfigError("invalid glob pattern %q", p),
				"check the [input] include and exclude patterns in rpc.config.toml")
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
