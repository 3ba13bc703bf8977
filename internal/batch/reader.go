package batch

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// songSeparator on a line of its own starts a new song.
const songSeparator = "---"

// SongEntry is one song of a batch file.
type SongEntry struct {
	Title  string
	Lyrics string
}

// ReadBatchFile reads all songs of a file. Files ending in .html or .htm
// are converted to text before splitting.
func ReadBatchFile(filename string) ([]SongEntry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}

	text := string(content)
	if IsHTML(filename) {
		text, err = HTMLToText(bytes.NewReader(content))
		if err != nil {
			return nil, err
		}
	}

	return SplitSongs(text), nil
}

// IsHTML reports whether filename has an HTML extension.
func IsHTML(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm":
		return true
	}
	return false
}

// SplitSongs splits text into songs. Songs without any non-blank line are
// skipped; untitled songs are named by their position among the kept
// songs ("Song 1", "Song 2", ...).
func SplitSongs(text string) []SongEntry {
	var (
		entries []SongEntry
		current []string
	)

	flush := func() {
		entry, ok := parseSong(current, len(entries)+1)
		if ok {
			entries = append(entries, entry)
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if strings.TrimSpace(line) == songSeparator {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()

	return entries
}

func parseSong(lines []string, position int) (SongEntry, bool) {
	title := ""
	body := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if title == "" && len(body) == 0 && strings.HasPrefix(trimmed, "#") {
			title = strings.TrimSpace(strings.TrimPrefix(trimmed, "#"))
			continue
		}
		if trimmed == "" && len(body) == 0 {
			continue
		}
		body = append(body, line)
	}

	lyrics := strings.TrimSpace(strings.Join(body, "\n"))
	if lyrics == "" {
		return SongEntry{}, false
	}

	if title == "" {
		title = fmt.Sprintf("Song %d", position)
	}

	return SongEntry{Title: title, Lyrics: lyrics}, true
}
