package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/ludo-technologies/dupedir/domain"
)

// PathWalkerImpl implements domain.PathWalker on the local filesystem
type PathWalkerImpl struct {
	logger *slog.Logger
}

// NewPathWalker creates a walker logging skipped directories to logger
func NewPathWalker(logger *slog.Logger) *PathWalkerImpl {
	return &PathWalkerImpl{logger: loggerOrDiscard(logger)}
}

// ValidateRoots checks that every root exists and is a directory
func (w *PathWalkerImpl) ValidateRoots(roots []string) error {
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return domain.NewFileNotFoundError(root, err)
			}
			return domain.NewInvalidInputError(fmt.Sprintf("cannot access path: %s", root), err)
		}
		if !info.IsDir() {
			return domain.NewInvalidInputError(fmt.Sprintf("not a directory: %s", root), nil)
		}
	}
	return nil
}

// ValidatePatterns reports the first malformed doublestar pattern
func ValidatePatterns(includePatterns, excludePatterns []string) error {
	for _, p := range append(append([]string{}, includePatterns...), excludePatterns...) {
		if !doublestar.ValidatePattern(p) {
			return domain.NewInvalidInputError(fmt.Sprintf("invalid pattern: %s", p), nil)
		}
	}
	return nil
}

// Walk yields the absolute path of every regular file below roots.
// Symbolic links are never followed; a root that is itself a link is
// resolved once. Unreadable directories are logged and skipped.
func (w *PathWalkerImpl) Walk(ctx context.Context, roots []string, includePatterns, excludePatterns []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, root := range roots {
			w.logger.Info("Scanning files listing from " + root)
			if !w.walkRoot(ctx, root, includePatterns, excludePatterns, yield) {
				return
			}
		}
	}
}

// walkRoot returns false when iteration must stop
func (w *PathWalkerImpl) walkRoot(ctx context.Context, root string, includePatterns, excludePatterns []string, yield func(string) bool) bool {
	base, err := filepath.Abs(root)
	if err != nil {
		w.logger.Warn("Skipping directory", "path", root, "error", err)
		return true
	}
	if resolved, err := filepath.EvalSymlinks(base); err == nil {
		base = resolved
	}

	stopped := false
	walkErr := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if ctx.Err() != nil {
			stopped = true
			return filepath.SkipAll
		}
		if err != nil {
			w.logger.Warn("Skipping unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		rel := relativeSlashPath(base, path)
		if d.IsDir() {
			if path != base && matchesAny(excludePatterns, rel, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		// Links, sockets, devices and pipes are not files of the directory
		if !d.Type().IsRegular() {
			return nil
		}
		if matchesAny(excludePatterns, rel, d.Name()) {
			return nil
		}
		if len(includePatterns) > 0 && !matchesAny(includePatterns, rel, d.Name()) {
			return nil
		}

		if !yield(path) {
			stopped = true
			return filepath.SkipAll
		}
		return nil
	})
	if walkErr != nil {
		w.logger.Warn("Directory walk aborted", "path", base, "error", walkErr)
	}
	return !stopped
}

func relativeSlashPath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

// matchesAny matches patterns against the root-relative path and the base name
func matchesAny(patterns []string, rel, name string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
