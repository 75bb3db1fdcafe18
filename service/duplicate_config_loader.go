package service

import (
	"github.com/ludo-technologies/dupedir/domain"
	"github.com/ludo-technologies/dupedir/internal/config"
)

// Flag names of the find command consulted when merging
const (
	FlagMinShared = "min-shared"
	FlagMaxDirs   = "max-dirs"
	FlagHierarchy = "hierarchy"
	FlagTop       = "top"
	FlagSort      = "sort"
	FlagInclude   = "include"
	FlagExclude   = "exclude"
	FlagFormat    = "format"
)

// formatFlags are the flags selecting an output format
var formatFlags = []string{FlagFormat, "json", "csv", "yaml"}

// DuplicateConfigurationLoaderImpl turns .dupedir.toml and --config files
// into duplicate requests, and overlays explicitly set flags on them.
type DuplicateConfigurationLoaderImpl struct {
	flagTracker *config.FlagTracker
}

// NewDuplicateConfigurationLoader creates a loader; explicitFlags names the
// command-line flags the user set
func NewDuplicateConfigurationLoader(explicitFlags map[string]bool) *DuplicateConfigurationLoaderImpl {
	return &DuplicateConfigurationLoaderImpl{
		flagTracker: config.NewFlagTrackerWithFlags(explicitFlags),
	}
}

// LoadConfig loads an explicit configuration file
func (l *DuplicateConfigurationLoaderImpl) LoadConfig(path string) (*domain.DuplicateRequest, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return l.configToRequest(cfg), nil
}

// LoadDefaultConfig discovers .dupedir.toml from targetDir upwards
func (l *DuplicateConfigurationLoaderImpl) LoadDefaultConfig(targetDir string) (*domain.DuplicateRequest, error) {
	cfg, err := config.LoadConfigWithTarget("", targetDir)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration", err)
	}
	return l.configToRequest(cfg), nil
}

// MergeConfig overlays the command-line request on the configured one.
// Input selections from the command line replace configured inputs as a
// whole; other settings only replace configured values when their flag
// was set.
func (l *DuplicateConfigurationLoaderImpl) MergeConfig(base *domain.DuplicateRequest, override *domain.DuplicateRequest) *domain.DuplicateRequest {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	merged := *base
	ft := l.flagTracker

	if len(override.Roots) > 0 || len(override.ListFiles) > 0 {
		merged.Roots = override.Roots
		merged.ListFiles = override.ListFiles
	}
	merged.IncludePatterns = ft.MergeStringSlice(merged.IncludePatterns, override.IncludePatterns, FlagInclude)
	merged.ExcludePatterns = ft.MergeStringSlice(merged.ExcludePatterns, override.ExcludePatterns, FlagExclude)

	merged.MinSharedFiles = config.Merge(ft, merged.MinSharedFiles, override.MinSharedFiles, FlagMinShared)
	merged.MaxCandidateDirs = config.Merge(ft, merged.MaxCandidateDirs, override.MaxCandidateDirs, FlagMaxDirs)
	merged.AggregateHierarchy = config.Merge(ft, merged.AggregateHierarchy, override.AggregateHierarchy, FlagHierarchy)
	merged.MaxResults = config.Merge(ft, merged.MaxResults, override.MaxResults, FlagTop)
	merged.SortBy = config.Merge(ft, merged.SortBy, override.SortBy, FlagSort)

	if ft.WasSet(formatFlags...) && override.OutputFormat != "" {
		merged.OutputFormat = override.OutputFormat
	}

	// Destinations are decided by the command
	if override.OutputWriter != nil {
		merged.OutputWriter = override.OutputWriter
	}
	if override.OutputPath != "" {
		merged.OutputPath = override.OutputPath
	}
	if override.ConfigPath != "" {
		merged.ConfigPath = override.ConfigPath
	}

	return &merged
}

func (l *DuplicateConfigurationLoaderImpl) configToRequest(cfg *config.Config) *domain.DuplicateRequest {
	req := domain.DefaultDuplicateRequest()

	req.Roots = cfg.Input.Paths
	req.ListFiles = cfg.Input.ListFiles
	req.IncludePatterns = cfg.Input.IncludePatterns
	req.ExcludePatterns = cfg.Input.ExcludePatterns

	req.MinSharedFiles = cfg.Analysis.MinSharedFiles
	req.MaxCandidateDirs = cfg.Analysis.MaxCandidateDirs
	req.AggregateHierarchy = cfg.Analysis.AggregateHierarchy

	req.MaxResults = cfg.Output.MaxResults
	// Both were validated when the configuration was loaded
	req.OutputFormat, _ = domain.ParseOutputFormat(cfg.Output.Format)
	req.SortBy, _ = domain.ParseSortCriteria(cfg.Output.SortBy)

	return req
}
