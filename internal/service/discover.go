package service

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bnema/batchenc/internal/domain"
)

const DefaultInputFilter = "*.MOV"

// DiscoverInputs lists the files in dir whose base name matches pattern,
// case-insensitively. Subdirectories are walked only when recursive is set.
// Results are sorted for a deterministic processing order.
func DiscoverInputs(dir, pattern string, recursive bool) ([]string, error) {
	if pattern == "" {
		pattern = DefaultInputFilter
	}
	pattern = strings.ToLower(pattern)
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", pattern, err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInputDirNotFound, dir)
	}

	var files []string
	err = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && !recursive {
				return filepath.SkipDir
			}
			return nil
		}
		if ok, _ := filepath.Match(pattern, strings.ToLower(d.Name())); ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInputDirNotFound, dir)
		}
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	if len(files) == 0 {
		return nil, domain.ErrNoFiles
	}
	sort.Strings(files)
	return files, nil
}
