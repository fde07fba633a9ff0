package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SourceExt is the extension of program files.
const SourceExt = ".sal"

// SourceFiles expands [build].sources relative to the project root.
// A pattern naming a directory collects every .sal file below it; the
// result is sorted and free of duplicates.
func (m *Manifest) SourceFiles() ([]string, error) {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, pattern := range m.Config.Build.Sources {
		full := filepath.Join(m.Root, filepath.FromSlash(pattern))
		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, fmt.Errorf("%s: bad source pattern %q: %w", m.Path, pattern, err)
		}
		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				return nil, err
			}
			if !info.IsDir() {
				if strings.HasSuffix(match, SourceExt) {
					add(match)
				}
				continue
			}
			err = filepath.WalkDir(match, func(path string, d fs.DirEntry, walkErr error) error {
				if walkErr != nil {
					return walkErr
				}
				if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
					add(path)
				}
				return nil
			})
			if err != nil {
				return nil, fmt.Errorf("%s: walk %q: %w", m.Path, match, err)
			}
		}
	}
	slices.Sort(out)
	return out, nil
}
