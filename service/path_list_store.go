package service

import (
	"bufio"
	"errors"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ludo-technologies/dupedir/domain"
)

const maxListingLine = 1 << 20

// PathListStoreImpl implements domain.PathListStore with plain text files
type PathListStoreImpl struct {
	logger *slog.Logger
}

// NewPathListStore creates a store logging to logger
func NewPathListStore(logger *slog.Logger) *PathListStoreImpl {
	return &PathListStoreImpl{logger: loggerOrDiscard(logger)}
}

// Store writes paths sorted and de-duplicated to file, one per line
func (s *PathListStoreImpl) Store(file string, paths iter.Seq[string]) (int, error) {
	all := slices.Sorted(paths)
	all = slices.Compact(all)

	s.logger.Info("Storing files listing in " + file)

	if dir := filepath.Dir(file); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, domain.NewListingError(file, err)
		}
	}

	f, err := os.Create(file)
	if err != nil {
		return 0, domain.NewListingError(file, err)
	}

	w := bufio.NewWriter(f)
	for _, p := range all {
		if _, err := w.WriteString(p + "\n"); err != nil {
			f.Close()
			return 0, domain.NewListingError(file, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return 0, domain.NewListingError(file, err)
	}
	if err := f.Close(); err != nil {
		return 0, domain.NewListingError(file, err)
	}
	return len(all), nil
}

// Load reads each listing in order. Lines are trimmed; blank lines and lines
// starting with '#' are skipped; relative paths are made absolute.
func (s *PathListStoreImpl) Load(files ...string) ([]string, error) {
	var paths []string
	for _, file := range files {
		s.logger.Info("Loading files listing from " + file)
		loaded, err := s.loadOne(file)
		if err != nil {
			return nil, err
		}
		paths = append(paths, loaded...)
	}
	return paths, nil
}

func (s *PathListStoreImpl) loadOne(file string) ([]string, error) {
	f, err := os.Open(file)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewFileNotFoundError(file, err)
		}
		return nil, domain.NewListingError(file, err)
	}
	defer f.Close()

	var paths []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxListingLine)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		abs, err := filepath.Abs(line)
		if err != nil {
			s.logger.Debug("Ignoring malformed path", "path", line, "error", err)
			continue
		}
		paths = append(paths, abs)
	}
	if err := scanner.Err(); err != nil {
		return nil, domain.NewListingError(file, err)
	}
	return paths, nil
}
