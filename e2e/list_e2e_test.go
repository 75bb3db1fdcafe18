package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestListE2EThenFind stores a listing and analyzes it without rescanning
func TestListE2EThenFind(t *testing.T) {
	binaryPath := buildDupedirBinary(t)
	testDir := photoTree(t)
	listing := filepath.Join(t.TempDir(), "files.txt")

	list := exec.Command(binaryPath, "list", "--output", listing, testDir)
	var stdout, stderr bytes.Buffer
	list.Stdout = &stdout
	list.Stderr = &stderr
	if err := list.Run(); err != nil {
		t.Fatalf("list failed: %v\nStderr: %s", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Stored 9 paths in "+listing) {
		t.Errorf("unexpected list output: %s", stdout.String())
	}

	content, err := os.ReadFile(listing)
	if err != nil {
		t.Fatalf("read listing: %v", err)
	}
	if got := strings.Count(string(content), "\n"); got != 9 {
		t.Errorf("listing has %d lines, want 9", got)
	}

	// The tree is gone, the listing still answers
	if err := os.RemoveAll(filepath.Join(testDir, "photos")); err != nil {
		t.Fatal(err)
	}

	find := exec.Command(binaryPath, "find", "--no-progress", "--load", listing)
	stdout.Reset()
	stderr.Reset()
	find.Stdout = &stdout
	find.Stderr = &stderr
	if err := find.Run(); err != nil {
		t.Fatalf("find failed: %v\nStderr: %s", err, stderr.String())
	}
	if !strings.Contains(stdout.String(), filepath.Join(testDir, "photos", "2023")) {
		t.Errorf("find over the listing should report photos/2023, got:\n%s", stdout.String())
	}
}
