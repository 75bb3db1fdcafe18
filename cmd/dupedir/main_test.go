package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ludo-technologies/dupedir/domain"
	"github.com/ludo-technologies/dupedir/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func makeTree(t *testing.T, files ...string) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, nil, 0o644))
	}
	return root
}

// duplicatedTree holds two copies of the same album and an unrelated directory
func duplicatedTree(t *testing.T) string {
	return makeTree(t,
		"music/album/01.flac", "music/album/02.flac", "music/album/03.flac", "music/album/cover.jpg",
		"backup/album-copy/01.flac", "backup/album-copy/02.flac", "backup/album-copy/03.flac",
		"docs/notes.txt",
	)
}

func TestVersionCommand(t *testing.T) {
	out, _, err := runCommand(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, version.Short()+"\n", out)

	out, _, err = runCommand(t, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "dupedir "))
}

func TestFindCommand_Text(t *testing.T) {
	root := duplicatedTree(t)

	out, stderr, err := runCommand(t, "find", "--no-progress", root)
	require.NoError(t, err)

	// backup/ is walked first, so its directory comes first in the pair
	record := "{01.48} 100.00% [3 / 0] - [3 / 3] " + filepath.Join(root, "backup", "album-copy") +
		" - [4 / 4] " + filepath.Join(root, "music", "album")
	assert.Contains(t, out, record)
	assert.Contains(t, out, "1 pairs reported (min 3 shared files)")
	assert.Contains(t, stderr, "Scanning files listing from "+root)
	assert.Contains(t, stderr, "Finding duplicates over 5 file names in")
}

func TestFindCommand_JSONToStdout(t *testing.T) {
	root := duplicatedTree(t)

	out, _, err := runCommand(t, "find", "--no-progress", "--dir", root, "--json", "--output", "-", "--hierarchy")
	require.NoError(t, err)

	var resp domain.DuplicateResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.True(t, resp.AggregateHierarchy)
	require.NotEmpty(t, resp.Duplicates)
	assert.Equal(t, 3, resp.Duplicates[0].CommonFilesHierarchy)
}

func TestFindCommand_ReportFile(t *testing.T) {
	root := duplicatedTree(t)
	report := filepath.Join(t.TempDir(), "out", "report.csv")

	_, stderr, err := runCommand(t, "find", "--no-progress", root, "--csv", "-o", report)
	require.NoError(t, err)

	data, err := os.ReadFile(report)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "path1,path2,"))
	assert.Contains(t, stderr, "CSV report generated: "+report)
}

func TestListThenFind(t *testing.T) {
	root := duplicatedTree(t)
	listing := filepath.Join(t.TempDir(), "files.txt")

	out, _, err := runCommand(t, "list", root, "-o", listing)
	require.NoError(t, err)
	assert.Equal(t, "Stored 8 paths in "+listing+" (8 files scanned)\n", out)

	out, _, err = runCommand(t, "find", "--no-progress", "--load", listing, "--min-shared", "1", "--sort", "path")
	require.NoError(t, err)
	assert.Contains(t, out, filepath.Join(root, "music", "album"))
}

func TestFindCommand_ConfigDiscovery(t *testing.T) {
	root := duplicatedTree(t)
	config := "[analysis]\nmin_shared_files = 4\n"
	require.NoError(t, os.WriteFile(filepath.Join(root, ".dupedir.toml"), []byte(config), 0o644))

	out, _, err := runCommand(t, "find", "--no-progress", root)
	require.NoError(t, err)
	assert.Contains(t, out, "No duplicate directories found.")

	// An explicit flag wins over the configuration file
	out, _, err = runCommand(t, "find", "--no-progress", root, "--min-shared", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "1 pairs reported (min 3 shared files)")
}

func TestFindCommand_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode domain.Code
	}{
		{name: "no input", args: []string{"find"}, wantCode: domain.ErrCodeInvalidInput},
		{name: "missing directory", args: []string{"find", "/definitely/not/here"}, wantCode: domain.ErrCodeFileNotFound},
		{name: "bad sort", args: []string{"find", ".", "--sort", "size"}, wantCode: domain.ErrCodeInvalidInput},
		{name: "bad max dirs", args: []string{"find", ".", "--max-dirs", "1"}, wantCode: domain.ErrCodeInvalidInput},
		{name: "two formats", args: []string{"find", ".", "--json", "--yaml"}, wantCode: domain.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := runCommand(t, append(tt.args, "--no-progress")...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, domain.ErrorCode(err))
		})
	}
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, domain.NewFileNotFoundError("/x", nil), true)

	out := buf.String()
	assert.Contains(t, out, "Error: Failed to read input directories or listings\n")
	assert.Contains(t, out, "file not found: /x")
	assert.Contains(t, out, "Suggestions:")

	buf.Reset()
	printError(&buf, errors.New("odd"), false)
	assert.Equal(t, "Error: odd\n", buf.String())
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	tomlPath := filepath.Join(dir, ".dupedir.toml")

	_, _, err := runCommand(t, "init", "--config", tomlPath)
	require.NoError(t, err)
	data, err := os.ReadFile(tomlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "min_shared_files = 3")

	_, _, err = runCommand(t, "init", "--config", tomlPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = runCommand(t, "init", "--config", tomlPath, "--force")
	require.NoError(t, err)

	yamlPath := filepath.Join(dir, "dupedir.yaml")
	_, _, err = runCommand(t, "init", "--yaml", "--config", yamlPath)
	require.NoError(t, err)
	data, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "min_shared_files: 3")
}

func TestGenerateOutputFilePath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := generateOutputFilePath(dir, "json")
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Regexp(t, `^dupedir_\d{8}_\d{6}\.json$`, filepath.Base(path))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
