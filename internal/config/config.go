package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/dupedir/domain"
	"github.com/spf13/viper"
)

// ConfigFileName is the file discovered by walking up from the target directory
const ConfigFileName = ".dupedir.toml"

// EnvPrefix prefixes environment overrides of explicit config files,
// e.g. DUPEDIR_ANALYSIS_MIN_SHARED_FILES=5
const EnvPrefix = "DUPEDIR"

// Config represents the main configuration structure
type Config struct {
	// Input holds the default scan roots, listings and path filters
	Input InputConfig `mapstructure:"input" toml:"input" yaml:"input"`

	// Analysis holds duplicate detection settings
	Analysis AnalysisConfig `mapstructure:"analysis" toml:"analysis" yaml:"analysis"`

	// Output holds output formatting configuration
	Output OutputConfig `mapstructure:"output" toml:"output" yaml:"output"`
}

// InputConfig holds input selection configuration
type InputConfig struct {
	// Paths are the directories scanned when none are given on the command line
	Paths []string `mapstructure:"paths" toml:"paths" yaml:"paths"`

	// ListFiles are stored listings loaded when none are given on the command line
	ListFiles []string `mapstructure:"list_files" toml:"list_files" yaml:"list_files"`

	// IncludePatterns keeps only files matching one of these doublestar patterns
	IncludePatterns []string `mapstructure:"include_patterns" toml:"include_patterns" yaml:"include_patterns"`

	// ExcludePatterns drops files and directories matching one of these patterns
	ExcludePatterns []string `mapstructure:"exclude_patterns" toml:"exclude_patterns" yaml:"exclude_patterns"`
}

// AnalysisConfig holds duplicate detection configuration
type AnalysisConfig struct {
	MinSharedFiles     int  `mapstructure:"min_shared_files" toml:"min_shared_files" yaml:"min_shared_files"`
	MaxCandidateDirs   int  `mapstructure:"max_candidate_dirs" toml:"max_candidate_dirs" yaml:"max_candidate_dirs"`
	AggregateHierarchy bool `mapstructure:"aggregate_hierarchy" toml:"aggregate_hierarchy" yaml:"aggregate_hierarchy"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml, csv
	Format string `mapstructure:"format" toml:"format" yaml:"format"`

	// SortBy specifies how to sort results: score, shared, path
	SortBy string `mapstructure:"sort_by" toml:"sort_by" yaml:"sort_by"`

	// MaxResults limits the report to the best pairs; 0 reports all
	MaxResults int `mapstructure:"max_results" toml:"max_results" yaml:"max_results"`

	// Directory receives timestamped report files
	Directory string `mapstructure:"directory" toml:"directory" yaml:"directory"`
}

// DefaultConfig returns the built-in configuration
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			Paths:           []string{},
			ListFiles:       []string{},
			IncludePatterns: []string{},
			ExcludePatterns: []string{},
		},
		Analysis: AnalysisConfig{
			MinSharedFiles:     domain.DefaultMinSharedFiles,
			MaxCandidateDirs:   domain.DefaultMaxCandidateDirs,
			AggregateHierarchy: false,
		},
		Output: OutputConfig{
			Format:     string(domain.DefaultOutputFormat),
			SortBy:     string(domain.DefaultSortBy),
			MaxResults: domain.DefaultMaxResults,
			Directory:  "",
		},
	}
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Analysis.MinSharedFiles < 1 {
		return fmt.Errorf("analysis.min_shared_files must be >= 1, got %d", c.Analysis.MinSharedFiles)
	}

	if c.Analysis.MaxCandidateDirs < domain.MinMaxCandidateDirs {
		return fmt.Errorf("analysis.max_candidate_dirs must be >= %d, got %d",
			domain.MinMaxCandidateDirs, c.Analysis.MaxCandidateDirs)
	}

	if c.Output.MaxResults < 0 {
		return fmt.Errorf("output.max_results cannot be negative, got %d", c.Output.MaxResults)
	}

	if _, err := domain.ParseOutputFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}

	if _, err := domain.ParseSortCriteria(c.Output.SortBy); err != nil {
		return fmt.Errorf("output.sort_by: %w", err)
	}

	return nil
}

// LoadConfig reads an explicit configuration file in any format viper
// understands (toml, yaml, json). DUPEDIR_<SECTION>_<KEY> environment
// variables override file values.
func LoadConfig(configPath string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := DefaultConfig()
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}

	return config, nil
}

// newViper creates a viper instance knowing every key, so that environment
// overrides apply even to keys absent from the file.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultConfig()
	v.SetDefault("input.paths", defaults.Input.Paths)
	v.SetDefault("input.list_files", defaults.Input.ListFiles)
	v.SetDefault("input.include_patterns", defaults.Input.IncludePatterns)
	v.SetDefault("input.exclude_patterns", defaults.Input.ExcludePatterns)
	v.SetDefault("analysis.min_shared_files", defaults.Analysis.MinSharedFiles)
	v.SetDefault("analysis.max_candidate_dirs", defaults.Analysis.MaxCandidateDirs)
	v.SetDefault("analysis.aggregate_hierarchy", defaults.Analysis.AggregateHierarchy)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.sort_by", defaults.Output.SortBy)
	v.SetDefault("output.max_results", defaults.Output.MaxResults)
	v.SetDefault("output.directory", defaults.Output.Directory)
	return v
}

// LoadConfigWithTarget loads configPath when given; otherwise it discovers
// .dupedir.toml from targetPath (or the working directory) upwards and
// falls back to defaults when none exists.
func LoadConfigWithTarget(configPath, targetPath string) (*Config, error) {
	if configPath != "" {
		return LoadConfig(configPath)
	}

	startDir, err := discoveryStart(targetPath)
	if err != nil {
		return nil, err
	}

	config, _, err := NewTomlConfigLoader().LoadConfig(startDir)
	if err != nil {
		return nil, err
	}
	return config, nil
}

func discoveryStart(targetPath string) (string, error) {
	if targetPath == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		return cwd, nil
	}

	abs, err := filepath.Abs(targetPath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", targetPath, err)
	}
	if info, err := os.Stat(abs); err == nil && !info.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}
