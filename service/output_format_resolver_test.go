package service

import (
	"testing"

	"github.com/ludo-technologies/dupedir/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormatResolver_Determine(t *testing.T) {
	tests := []struct {
		name            string
		json, csv, yaml bool
		fallback        string
		wantFormat      domain.OutputFormat
		wantExt         string
		wantErr         bool
	}{
		{name: "default text", wantFormat: domain.OutputFormatText},
		{name: "json flag", json: true, wantFormat: domain.OutputFormatJSON, wantExt: "json"},
		{name: "csv flag", csv: true, wantFormat: domain.OutputFormatCSV, wantExt: "csv"},
		{name: "yaml flag", yaml: true, wantFormat: domain.OutputFormatYAML, wantExt: "yaml"},
		{name: "fallback from config", fallback: "yml", wantFormat: domain.OutputFormatYAML, wantExt: "yaml"},
		{name: "flag beats fallback", csv: true, fallback: "json", wantFormat: domain.OutputFormatCSV, wantExt: "csv"},
		{name: "two flags", json: true, yaml: true, wantErr: true},
		{name: "bad fallback", fallback: "xml", wantErr: true},
	}

	resolver := NewOutputFormatResolver()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, ext, err := resolver.Determine(tt.json, tt.csv, tt.yaml, tt.fallback)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFormat, format)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}
