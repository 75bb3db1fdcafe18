package domain

import (
	"context"
	"fmt"
	"io"
	"iter"
)

// DuplicateDir is one reported pair of likely duplicate directories
type DuplicateDir struct {
	Path1 string `json:"path1" yaml:"path1" csv:"path1"`
	Path2 string `json:"path2" yaml:"path2" csv:"path2"`

	// Files and HierarchyFiles are the direct and subtree file counts of each side
	Files1          int64 `json:"files1" yaml:"files1" csv:"files1"`
	HierarchyFiles1 int64 `json:"hierarchy_files1" yaml:"hierarchy_files1" csv:"hierarchy_files1"`
	Files2          int64 `json:"files2" yaml:"files2" csv:"files2"`
	HierarchyFiles2 int64 `json:"hierarchy_files2" yaml:"hierarchy_files2" csv:"hierarchy_files2"`

	CommonFiles          int `json:"common_files" yaml:"common_files" csv:"common_files"`
	CommonFilesHierarchy int `json:"common_files_hierarchy" yaml:"common_files_hierarchy" csv:"common_files_hierarchy"`

	Overlap float64 `json:"overlap" yaml:"overlap" csv:"overlap"`
	Score   float64 `json:"score" yaml:"score" csv:"score"`
}

// Percent returns the overlap as a percentage
func (d *DuplicateDir) Percent() float64 {
	return d.Overlap * 100
}

// String returns a short description of the pair
func (d *DuplicateDir) String() string {
	return fmt.Sprintf("%s <-> %s (score: %.2f, overlap: %.0f%%)", d.Path1, d.Path2, d.Score, d.Percent())
}

// DuplicateStatistics summarizes one duplicate detection run
type DuplicateStatistics struct {
	FilesIndexed    int `json:"files_indexed" yaml:"files_indexed"`
	PathsRejected   int `json:"paths_rejected" yaml:"paths_rejected"`
	FileNames       int `json:"file_names" yaml:"file_names"`
	Directories     int `json:"directories" yaml:"directories"`
	CandidatePairs  int `json:"candidate_pairs" yaml:"candidate_pairs"`
	AggregatedPairs int `json:"aggregated_pairs" yaml:"aggregated_pairs"`
	RankedPairs     int `json:"ranked_pairs" yaml:"ranked_pairs"`
	ReportedPairs   int `json:"reported_pairs" yaml:"reported_pairs"`
}

// DuplicateRequest represents a request for duplicate directory detection
type DuplicateRequest struct {
	// Input: directories to scan and/or stored path listings to load
	Roots           []string `json:"roots"`
	ListFiles       []string `json:"list_files"`
	IncludePatterns []string `json:"include_patterns"`
	ExcludePatterns []string `json:"exclude_patterns"`

	// Analysis configuration
	AggregateHierarchy bool `json:"aggregate_hierarchy"`
	MinSharedFiles     int  `json:"min_shared_files"`
	MaxCandidateDirs   int  `json:"max_candidate_dirs"`

	// Output configuration
	MaxResults   int          `json:"max_results"`
	SortBy       SortCriteria `json:"sort_by"`
	OutputFormat OutputFormat `json:"output_format"`
	OutputWriter io.Writer    `json:"-"`
	OutputPath   string       `json:"output_path,omitempty"`

	// Configuration file
	ConfigPath string `json:"config_path,omitempty"`
}

// Validate validates a duplicate request
func (req *DuplicateRequest) Validate() error {
	if len(req.Roots) == 0 && len(req.ListFiles) == 0 {
		return NewValidationError("no directories to scan and no files listing to load")
	}

	if req.MinSharedFiles < 1 {
		return NewValidationError(fmt.Sprintf("min_shared_files must be >= 1, got %d", req.MinSharedFiles))
	}

	if req.MaxCandidateDirs < MinMaxCandidateDirs {
		return NewValidationError(fmt.Sprintf("max_candidate_dirs must be >= %d, got %d", MinMaxCandidateDirs, req.MaxCandidateDirs))
	}

	if req.MaxResults < 0 {
		return NewValidationError("max_results cannot be negative")
	}

	if _, err := ParseOutputFormat(string(req.OutputFormat)); err != nil {
		return err
	}

	if _, err := ParseSortCriteria(string(req.SortBy)); err != nil {
		return err
	}

	if req.OutputWriter == nil && req.OutputPath == "" {
		return NewValidationError("output writer or output path is required")
	}

	return nil
}

// SharedFiles returns the shared count the request ranks on for d
func (req *DuplicateRequest) SharedFiles(d *DuplicateDir) int {
	if req.AggregateHierarchy {
		return d.CommonFilesHierarchy
	}
	return d.CommonFiles
}

// DefaultDuplicateRequest returns a default duplicate request
func DefaultDuplicateRequest() *DuplicateRequest {
	return &DuplicateRequest{
		AggregateHierarchy: false,
		MinSharedFiles:     DefaultMinSharedFiles,
		MaxCandidateDirs:   DefaultMaxCandidateDirs,
		MaxResults:         DefaultMaxResults,
		SortBy:             DefaultSortBy,
		OutputFormat:       DefaultOutputFormat,
	}
}

// DuplicateResponse represents the response from duplicate detection
type DuplicateResponse struct {
	Duplicates []DuplicateDir       `json:"duplicates" yaml:"duplicates"`
	Statistics *DuplicateStatistics `json:"statistics" yaml:"statistics"`

	// Metadata
	AggregateHierarchy bool   `json:"aggregate_hierarchy" yaml:"aggregate_hierarchy"`
	MinSharedFiles     int    `json:"min_shared_files" yaml:"min_shared_files"`
	Duration           int64  `json:"duration_ms" yaml:"duration_ms"`
	GeneratedAt        string `json:"generated_at" yaml:"generated_at"`
	Version            string `json:"version" yaml:"version"`
}

// DuplicateService defines the interface for duplicate directory detection
type DuplicateService interface {
	// FindDuplicates indexes every path of paths and ranks the directory pairs
	FindDuplicates(ctx context.Context, req *DuplicateRequest, paths iter.Seq[string]) (*DuplicateResponse, error)
}

// DuplicateOutputFormatter formats duplicate detection results
type DuplicateOutputFormatter interface {
	// Write formats response in format onto writer
	Write(response *DuplicateResponse, format OutputFormat, writer io.Writer) error
}

// DuplicateConfigurationLoader loads duplicate detection defaults from configuration files
type DuplicateConfigurationLoader interface {
	// LoadConfig loads configuration from an explicit file
	LoadConfig(path string) (*DuplicateRequest, error)

	// LoadDefaultConfig discovers configuration from targetDir upwards,
	// falling back to built-in defaults
	LoadDefaultConfig(targetDir string) (*DuplicateRequest, error)

	// MergeConfig overlays the command line request onto base
	MergeConfig(base *DuplicateRequest, override *DuplicateRequest) *DuplicateRequest
}
