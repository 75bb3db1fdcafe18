package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/ludo-technologies/dupedir/domain"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// DefaultConfigValues holds the values rendered into the init template
type DefaultConfigValues struct {
	MinSharedFiles      int
	MaxCandidateDirs    int
	MinMaxCandidateDirs int
	MaxResults          int
	OutputFormat        string
	SortBy              string
	ReportDirectory     string
	ListingFile         string
}

func newDefaultConfigValues() DefaultConfigValues {
	return DefaultConfigValues{
		MinSharedFiles:      domain.DefaultMinSharedFiles,
		MaxCandidateDirs:    domain.DefaultMaxCandidateDirs,
		MinMaxCandidateDirs: domain.MinMaxCandidateDirs,
		MaxResults:          domain.DefaultMaxResults,
		OutputFormat:        string(domain.DefaultOutputFormat),
		SortBy:              string(domain.DefaultSortBy),
		ReportDirectory:     domain.DefaultReportDirectory,
		ListingFile:         domain.DefaultListingFile,
	}
}

// GenerateDefaultConfigTOML renders the commented .dupedir.toml written by `dupedir init`
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("failed to render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered template back into a Config
func LoadDefaultConfigFromTOML() (*Config, error) {
	configTOML, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	var parsed dupedirTomlConfig
	if err := toml.Unmarshal([]byte(configTOML), &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse default config template: %w", err)
	}

	config := DefaultConfig()
	NewTomlConfigLoader().merge(config, &parsed)
	return config, nil
}

// GenerateDefaultConfigYAML renders the defaults as YAML, usable with --config
func GenerateDefaultConfigYAML() (string, error) {
	config, err := LoadDefaultConfigFromTOML()
	if err != nil {
		return "", err
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return "", fmt.Errorf("failed to marshal default config: %w", err)
	}
	return "# dupedir configuration (use with --config)\n" + string(data), nil
}
