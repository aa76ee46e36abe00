// Package walk collects formattable script files from directory trees.
package walk

import (
	"fmt"
	"os"
	"path/filepath"
)

// Collect returns every file under dir whose path satisfies matches, in
// lexical walk order. Hidden directories such as .git are skipped, except
// when dir itself is hidden.
func Collect(dir string, matches func(string) bool) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != dir && isHiddenDir(filepath.Base(path)) {
				return filepath.SkipDir
			}

			return nil
		}

		if matches(path) {
			files = append(files, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	return files, nil
}

// isHiddenDir returns true for directories that start with a dot (e.g. .git),
// except for "." and ".." which are filesystem navigation entries.
func isHiddenDir(name string) bool {
	return len(name) > 1 && name[0] == '.'
}
