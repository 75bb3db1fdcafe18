package service

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCount(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{7, "7"},
		{999, "999"},
		{1000, "1,000"},
		{12345, "12,345"},
		{1234567, "1,234,567"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatCount(tt.in))
	}
	assert.Equal(t, "100,000", FormatCount(100000))
}

func TestFormatFixed(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00.00"},
		{0.5, "00.50"},
		{1.6020599913279623, "01.60"},
		{12.346, "12.35"},
		{100, "100.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFixed(tt.in))
	}
}

func TestFormatUtils_Headers(t *testing.T) {
	u := NewFormatUtils()

	assert.Equal(t, "Title\n"+strings.Repeat("=", HeaderWidth)+"\n\n", u.FormatMainHeader("Title"))
	assert.Equal(t, "SUMMARY\n-------\n", u.FormatSectionHeader("Summary"))
	assert.Equal(t, "  Mode: direct\n", u.FormatLabelWithIndent(SectionPadding, "Mode", "direct"))
	assert.Equal(t, "42ms", u.FormatDuration(42))
}

func TestWriteJSONAndEncodeJSON(t *testing.T) {
	value := map[string]int{"pairs": 2}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, value))
	assert.Equal(t, "{\n  \"pairs\": 2\n}\n", buf.String())

	encoded, err := EncodeJSON(value)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"pairs\": 2\n}", encoded)
}

func TestWriteYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, map[string][]string{"dirs": {"/a", "/b"}}))
	assert.Equal(t, "dirs:\n  - /a\n  - /b\n", buf.String())
}
