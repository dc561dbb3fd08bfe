package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// expandPath resolves an input to file paths. Globs are matched,
// directories contribute their regular files (not recursively) and
// anything else is returned as is.
func expandPath(input string) ([]string, error) {
	if strings.ContainsAny(input, "*?[") {
		matches, err := filepath.Glob(input)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", input, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", input)
		}
		sort.Strings(matches)
		return matches, nil
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{input}, nil
	}

	entries, err := os.ReadDir(input)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.Type().IsRegular() && !strings.HasPrefix(e.Name(), ".") {
			paths = append(paths, filepath.Join(input, e.Name()))
		}
	}
	return paths, nil
}
