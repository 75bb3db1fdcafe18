package service

import (
	"fmt"

	"github.com/ludo-technologies/dupedir/domain"
)

// OutputFormatResolver resolves output format and file extension from flags.
type OutputFormatResolver struct{}

func NewOutputFormatResolver() *OutputFormatResolver { return &OutputFormatResolver{} }

// Determine evaluates format flags and returns the selected format and extension.
// At most one of json/csv/yaml may be true; if none are true, fallback is used
// (text when empty).
func (r *OutputFormatResolver) Determine(json, csv, yaml bool, fallback string) (domain.OutputFormat, string, error) {
	formatCount := 0
	var format domain.OutputFormat

	if json {
		formatCount++
		format = domain.OutputFormatJSON
	}
	if csv {
		formatCount++
		format = domain.OutputFormatCSV
	}
	if yaml {
		formatCount++
		format = domain.OutputFormatYAML
	}

	if formatCount > 1 {
		return "", "", fmt.Errorf("only one output format flag can be specified")
	}
	if formatCount == 0 {
		parsed, err := domain.ParseOutputFormat(fallback)
		if err != nil {
			return "", "", err
		}
		format = parsed
	}
	if format == domain.OutputFormatText {
		return format, "", nil
	}
	return format, format.Extension(), nil
}
