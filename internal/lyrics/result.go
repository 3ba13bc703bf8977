package lyrics

import (
	"errors"
	"fmt"
)

// ErrNoHebrewText is returned when normalization leaves no lines. The
// message is shown to API clients as is.
var ErrNoHebrewText = errors.New("No valid Hebrew text found in lyrics")

// ErrAnalysisFailed matches every *AnalysisError.
var ErrAnalysisFailed = errors.New("analysis failed")

// AnalysisError reports an unexpected fault during analysis. Reason never
// contains raw panic text.
type AnalysisError struct {
	Reason string
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("Analysis failed: %s", e.Reason)
}

func (e *AnalysisError) Unwrap() error {
	return ErrAnalysisFailed
}

// NoRhyme labels a line whose end word has no rhyme partner.
const NoRhyme = "-"

// WordPhonetic pairs a word with its phonetic key.
type WordPhonetic struct {
	Text     string `json:"text"`
	Phonetic string `json:"phonetic"`
}

// Line is one normalized lyric line.
type Line struct {
	Number     int            `json:"line_number"`
	Text       string         `json:"text"`
	Words      []WordPhonetic `json:"words"`
	EndWord    *WordPhonetic  `json:"end_word"`
	RhymeGroup string         `json:"rhyme_group,omitempty"`
}

// Statistics summarizes a result.
type Statistics struct {
	TotalLines   int `json:"total_lines"`
	TotalWords   int `json:"total_words"`
	UniqueRhymes int `json:"unique_rhymes"`
}

// Result is the full analysis of one lyric text.
type Result struct {
	Lines       []Line              `json:"lines"`
	RhymeScheme string              `json:"rhyme_scheme"`
	RhymeGroups map[string][]string `json:"rhyme_groups"`
	Statistics  Statistics          `json:"statistics"`
}
