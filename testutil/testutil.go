package testutil

import (
	"os"
	"strconv"
	"strings"
	"testing"
)

// WriteIntsFile writes values to a temporary file, separated by sep, and
// returns its path. The file is removed when the test finishes.
func WriteIntsFile(t testing.TB, values []int32, sep string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), "ints_*.txt")
	if err != nil {
		t.Fatalf("Failed to create temp input file: %v", err)
	}
	defer tmpFile.Close()

	var content strings.Builder
	for i, v := range values {
		if i > 0 {
			content.WriteString(sep)
		}
		content.WriteString(strconv.FormatInt(int64(v), 10))
	}
	content.WriteString("\n")

	if _, err := tmpFile.WriteString(content.String()); err != nil {
		t.Fatalf("Failed to write to temp input file: %v", err)
	}

	return tmpFile.Name()
}

// WriteFile writes raw content to a temporary file and returns its path
func WriteFile(t testing.TB, pattern, content string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp(t.TempDir(), pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer tmpFile.Close()

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}
	return tmpFile.Name()
}

// TempFilePath returns a cross-platform temporary file path
// with the given pattern. Does not create the file.
func TempFilePath(t *testing.T, pattern string) string {
	t.Helper()

	tmpFile, err := os.CreateTemp("", pattern)
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	path := tmpFile.Name()
	tmpFile.Close()
	os.Remove(path) // Remove immediately, just need the path
	t.Cleanup(func() { os.Remove(path) })

	return path
}
