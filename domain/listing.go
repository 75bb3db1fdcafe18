package domain

import (
	"context"
	"iter"
)

// ListRequest represents a request to scan directories and store the file listing
type ListRequest struct {
	Roots           []string `json:"roots"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`
	OutputPath      string   `json:"output_path"`
}

// Validate validates a list request
func (req *ListRequest) Validate() error {
	if len(req.Roots) == 0 {
		return NewValidationError("no directories to scan")
	}
	if req.OutputPath == "" {
		return NewValidationError("output path is required")
	}
	return nil
}

// ListResponse reports the result of storing a file listing
type ListResponse struct {
	OutputPath string `json:"output_path"`
	Scanned    int    `json:"scanned"`
	Stored     int    `json:"stored"`
}

// PathWalker enumerates the regular files below a set of directories
type PathWalker interface {
	// ValidateRoots checks that every root exists and is a directory
	ValidateRoots(roots []string) error

	// Walk yields the absolute path of every regular file below roots.
	// Symbolic links are never followed and unreadable directories are
	// skipped. Iteration stops early when ctx is done.
	Walk(ctx context.Context, roots []string, includePatterns, excludePatterns []string) iter.Seq[string]
}

// PathListStore persists file listings as text, one absolute path per line
type PathListStore interface {
	// Store writes paths sorted and de-duplicated to file and returns the
	// number of lines written
	Store(file string, paths iter.Seq[string]) (int, error)

	// Load reads every listing in order, skipping blank and '#' lines
	Load(files ...string) ([]string, error)
}
