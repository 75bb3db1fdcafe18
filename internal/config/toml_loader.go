package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// dupedirTomlConfig mirrors .dupedir.toml. Scalars are pointers so that
// keys absent from the file keep their defaults.
type dupedirTomlConfig struct {
	Input    tomlInputConfig    `toml:"input"`
	Analysis tomlAnalysisConfig `toml:"analysis"`
	Output   tomlOutputConfig   `toml:"output"`
}

type tomlInputConfig struct {
	Paths           []string `toml:"paths"`
	ListFiles       []string `toml:"list_files"`
	IncludePatterns []string `toml:"include_patterns"`
	ExcludePatterns []string `toml:"exclude_patterns"`
}

type tomlAnalysisConfig struct {
	MinSharedFiles     *int  `toml:"min_shared_files"`
	MaxCandidateDirs   *int  `toml:"max_candidate_dirs"`
	AggregateHierarchy *bool `toml:"aggregate_hierarchy"`
}

type tomlOutputConfig struct {
	Format     string `toml:"format"`
	SortBy     string `toml:"sort_by"`
	MaxResults *int   `toml:"max_results"`
	Directory  string `toml:"directory"`
}

// TomlConfigLoader discovers and loads .dupedir.toml files
type TomlConfigLoader struct{}

// NewTomlConfigLoader creates a new TOML configuration loader
func NewTomlConfigLoader() *TomlConfigLoader {
	return &TomlConfigLoader{}
}

// LoadConfig loads the nearest .dupedir.toml at or above startDir.
// It returns the defaults and an empty path when there is none.
func (l *TomlConfigLoader) LoadConfig(startDir string) (*Config, string, error) {
	configPath, err := l.FindConfigFile(startDir)
	if err != nil {
		return DefaultConfig(), "", nil
	}

	config, err := l.LoadFile(configPath)
	if err != nil {
		return nil, configPath, err
	}
	return config, configPath, nil
}

// LoadFile parses one .dupedir.toml and merges it into the defaults
func (l *TomlConfigLoader) LoadFile(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	var parsed dupedirTomlConfig
	if err := toml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse toml config %s: %w", configPath, err)
	}

	config := DefaultConfig()
	l.merge(config, &parsed)

	// Relative listings and roots are relative to the config file
	baseDir := filepath.Dir(configPath)
	config.Input.Paths = resolveAgainst(baseDir, config.Input.Paths)
	config.Input.ListFiles = resolveAgainst(baseDir, config.Input.ListFiles)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}
	return config, nil
}

// FindConfigFile walks up the directory tree to find .dupedir.toml
func (l *TomlConfigLoader) FindConfigFile(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}
	for {
		configPath := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(configPath); err == nil && !info.IsDir() {
			return configPath, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return "", os.ErrNotExist
}

func (l *TomlConfigLoader) merge(config *Config, parsed *dupedirTomlConfig) {
	if len(parsed.Input.Paths) > 0 {
		config.Input.Paths = parsed.Input.Paths
	}
	if len(parsed.Input.ListFiles) > 0 {
		config.Input.ListFiles = parsed.Input.ListFiles
	}
	if len(parsed.Input.IncludePatterns) > 0 {
		config.Input.IncludePatterns = parsed.Input.IncludePatterns
	}
	if len(parsed.Input.ExcludePatterns) > 0 {
		config.Input.ExcludePatterns = parsed.Input.ExcludePatterns
	}

	if parsed.Analysis.MinSharedFiles != nil {
		config.Analysis.MinSharedFiles = *parsed.Analysis.MinSharedFiles
	}
	if parsed.Analysis.MaxCandidateDirs != nil {
		config.Analysis.MaxCandidateDirs = *parsed.Analysis.MaxCandidateDirs
	}
	if parsed.Analysis.AggregateHierarchy != nil {
		config.Analysis.AggregateHierarchy = *parsed.Analysis.AggregateHierarchy
	}

	if parsed.Output.Format != "" {
		config.Output.Format = parsed.Output.Format
	}
	if parsed.Output.SortBy != "" {
		config.Output.SortBy = parsed.Output.SortBy
	}
	if parsed.Output.MaxResults != nil {
		config.Output.MaxResults = *parsed.Output.MaxResults
	}
	if parsed.Output.Directory != "" {
		config.Output.Directory = parsed.Output.Directory
	}
}

func resolveAgainst(baseDir string, paths []string) []string {
	resolved := make([]string, 0, len(paths))
	for _, p := range paths {
		if !filepath.IsAbs(p) {
			p = filepath.Join(baseDir, p)
		}
		resolved = append(resolved, p)
	}
	return resolved
}
