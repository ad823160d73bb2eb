package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoFiles is returned when ResolveFiles is called without patterns.
var ErrNoFiles = errors.New("no file patterns provided")

// ResolveFiles expands paths and glob patterns into a list of regular files.
// Arguments keep the order they were given in; the matches of a single glob
// are sorted. A file named twice is only returned once.
func ResolveFiles(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoFiles
	}

	var files []string
	seen := make(map[string]struct{})
	add := func(path string) error {
		info, err := os.Stat(path)
		if err != nil {
			return err
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", path)
		}
		if _, ok := seen[path]; ok {
			return nil
		}
		seen[path] = struct{}{}
		files = append(files, path)
		return nil
	}

	for _, pattern := range patterns {
		if !hasGlobMeta(pattern) {
			if err := add(pattern); err != nil {
				return nil, err
			}
			continue
		}

		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no matches for pattern %q", pattern)
		}
		sort.Strings(matches)
		for _, match := range matches {
			if err := add(match); err != nil {
				return nil, err
			}
		}
	}

	return files, nil
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[")
}
