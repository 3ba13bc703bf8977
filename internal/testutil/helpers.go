package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Lyrics used across package tests. Each line ends in a word whose
// fallback key rhymes with its partner.
const (
	CoupletLyrics = "אני הולך לשוק\nוקונה שם חלוק\nהיא שרה בלילה\nעל גג של הבית שלה"
	LatinLyrics   = "hello world\nno hebrew here"
)

// CreateTestFile creates a test file with content
func CreateTestFile(t *testing.T, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// WriteLyricsFile writes lyrics to name inside a fresh temp directory and
// returns the full path.
func WriteLyricsFile(t *testing.T, name, lyrics string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	CreateTestFile(t, path, []byte(lyrics))
	return path
}

// AssertFileExists checks if a file exists
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertContains checks that output contains every expected substring.
func AssertContains(t *testing.T, output string, expected ...string) {
	t.Helper()

	for _, substring := range expected {
		if !strings.Contains(output, substring) {
			t.Errorf("Output does not contain expected substring %q:\n%s", substring, output)
		}
	}
}
