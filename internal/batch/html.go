package batch

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockElements end a line of text.
const blockElements = "p, div, li, pre, h1, h2, h3, h4, h5, h6, tr"

// HTMLToText flattens an HTML lyric page. Line breaks and block ends
// become newlines, <hr> separates songs, scripts and styles are dropped.
func HTMLToText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("hr").ReplaceWithHtml("\n" + songSeparator + "\n")
	doc.Find(blockElements).AppendHtml("\n")

	var lines []string
	for _, line := range strings.Split(doc.Text(), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
