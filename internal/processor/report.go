package processor

import (
	"fmt"
	"sort"
	"strings"
)

// writeText prints a human readable report of one song.
func (p *Processor) writeText(report SongReport) {
	fmt.Fprintf(p.out, "=== %s ===\n", report.Title)
	if report.Result == nil {
		fmt.Fprintf(p.out, "[ERROR] %s\n\n", report.Error)
		return
	}

	res := report.Result
	fmt.Fprintf(p.out, "Lines processed: %d\n", res.Statistics.TotalLines)
	fmt.Fprintf(p.out, "Total words: %d\n", res.Statistics.TotalWords)
	fmt.Fprintf(p.out, "Rhyme scheme: %s\n", res.RhymeScheme)
	fmt.Fprintf(p.out, "Unique rhymes: %d\n", res.Statistics.UniqueRhymes)

	if len(res.RhymeGroups) == 0 {
		fmt.Fprintln(p.out, "\nNo rhyme groups detected")
	} else {
		fmt.Fprintln(p.out, "\nRhyme groups:")
		// Letters are single runes in code point order, so a plain string
		// sort follows the order they were handed out in.
		letters := make([]string, 0, len(res.RhymeGroups))
		for letter := range res.RhymeGroups {
			letters = append(letters, letter)
		}
		sort.Strings(letters)
		for _, letter := range letters {
			fmt.Fprintf(p.out, "  %s: %s\n", letter, strings.Join(res.RhymeGroups[letter], ", "))
		}
	}

	fmt.Fprintln(p.out, "\nLines:")
	for _, line := range res.Lines {
		group := line.RhymeGroup
		if group == "" {
			group = " "
		}
		fmt.Fprintf(p.out, "  %d. [%s] %s\n", line.Number, group, line.Text)
	}
	fmt.Fprintln(p.out)
}

// writeSummary prints the batch totals.
func (p *Processor) writeSummary(reports []SongReport) {
	analyzed, failed := 0, 0
	for _, report := range reports {
		if report.Result != nil {
			analyzed++
		} else {
			failed++
		}
	}

	fmt.Fprintf(p.out, "=== Batch Summary ===\n")
	fmt.Fprintf(p.out, "Total songs: %d\n", len(reports))
	fmt.Fprintf(p.out, "Analyzed: %d\n", analyzed)
	if failed > 0 {
		fmt.Fprintf(p.out, "Errors: %d\n", failed)
	}
	fmt.Fprintf(p.out, "=====================\n")
}
