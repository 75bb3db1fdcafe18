package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/dupedir/domain"
)

// generateTimestampedFileName generates a filename with timestamp suffix
func generateTimestampedFileName(prefix, extension string) string {
	timestamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", prefix, timestamp, extension)
}

// resolveOutputDirectory returns configured when set, otherwise the
// default report directory under the working directory
func resolveOutputDirectory(configured string) string {
	if configured != "" {
		return configured
	}
	cwd, err := os.Getwd()
	if err != nil {
		return domain.DefaultReportDirectory
	}
	return filepath.Join(cwd, domain.DefaultReportDirectory)
}

// generateOutputFilePath returns a new timestamped report path, creating its directory
func generateOutputFilePath(configuredDir, extension string) (string, error) {
	outputDir := resolveOutputDirectory(configuredDir)
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", domain.NewOutputError(fmt.Sprintf("failed to create output directory %s", outputDir), err)
	}
	return filepath.Join(outputDir, generateTimestampedFileName("dupedir", extension)), nil
}

// targetFrom picks the path .dupedir.toml discovery starts from
func targetFrom(roots, listFiles []string) string {
	if len(roots) > 0 {
		return roots[0]
	}
	if len(listFiles) > 0 {
		return listFiles[0]
	}
	return ""
}
