package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// expandPaths resolves glob patterns and drops excluded and duplicate
// paths. Plain paths are kept even if they don't exist, so the tracker
// can report them.
func expandPaths(args []string, excludes []string) ([]string, error) {
	paths := make([]string, 0, len(args))

	for _, arg := range args {
		if !isPattern(arg) {
			paths = append(paths, arg)
			continue
		}

		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("%w: bad pattern %q: %w", ErrValidationFailed, arg, err)
		}
		paths = append(paths, matches...)
	}

	for _, exclude := range excludes {
		if !doublestar.ValidatePathPattern(exclude) {
			return nil, fmt.Errorf("%w: bad exclude pattern %q", ErrValidationFailed, exclude)
		}
	}

	paths = lo.Filter(paths, func(path string, _ int) bool {
		return !isExcluded(path, excludes)
	})

	return lo.Uniq(paths), nil
}

func isPattern(path string) bool {
	return strings.ContainsAny(path, "*?[{")
}

func isExcluded(path string, excludes []string) bool {
	clean := filepath.Clean(path)
	base := filepath.Base(clean)

	return lo.SomeBy(excludes, func(exclude string) bool {
		if ok, _ := doublestar.PathMatch(exclude, clean); ok {
			return true
		}
		ok, _ := doublestar.PathMatch(exclude, base)
		return ok
	})
}
