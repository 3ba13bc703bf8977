package lyrics

import (
	"context"
	"log/slog"
	"runtime/debug"
	"slices"
	"strings"

	"codeberg.org/snonux/rapwiz/internal/phonetic"
	"codeberg.org/snonux/rapwiz/internal/rhyme"
)

// Analyzer runs the lyric pipeline. It holds no per-call state and is safe
// for concurrent use.
type Analyzer struct {
	transcriber phonetic.Transcriber
	threshold   float64
	stripNiqqud bool
	logger      *slog.Logger
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithThreshold sets the minimum similarity for two end words to rhyme.
func WithThreshold(threshold float64) Option {
	return func(a *Analyzer) {
		a.threshold = threshold
	}
}

// WithStripNiqqud removes vowel points before extraction.
func WithStripNiqqud(strip bool) Option {
	return func(a *Analyzer) {
		a.stripNiqqud = strip
	}
}

// WithLogger sets the logger used for recovered faults. Nil keeps the
// default logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// NewAnalyzer creates an analyzer around a transcriber. A nil transcriber
// means the built-in fallback.
func NewAnalyzer(transcriber phonetic.Transcriber, opts ...Option) *Analyzer {
	if transcriber == nil {
		transcriber = phonetic.NewFallback()
	}

	a := &Analyzer{
		transcriber: transcriber,
		threshold:   rhyme.DefaultThreshold,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("component", "analyzer")

	return a
}

// Transcriber returns the transcriber chosen at start-up.
func (a *Analyzer) Transcriber() phonetic.Transcriber {
	return a.transcriber
}

// Analyze detects the rhyme scheme of text. It returns ErrNoHebrewText
// when no line survives normalization, and an *AnalysisError if anything
// unexpected goes wrong. The context only bounds external G2P calls.
func (a *Analyzer) Analyze(ctx context.Context, text string) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.ErrorContext(ctx, "analysis panicked",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())))
			result = nil
			err = &AnalysisError{Reason: "unexpected internal error"}
		}
	}()

	if a.stripNiqqud {
		text = StripNiqqud(text)
	}

	normalized := Normalize(text)
	if len(normalized) == 0 {
		return nil, ErrNoHebrewText
	}

	// Memoize per call so a repeated word always gets the same key, even
	// from a non-deterministic model.
	keys := make(map[string]string)
	transcribe := func(word string) string {
		if key, ok := keys[word]; ok {
			return key
		}
		key := a.transcriber.Transcribe(ctx, word)
		keys[word] = key
		return key
	}

	result = &Result{
		Lines:       make([]Line, 0, len(normalized)),
		RhymeGroups: make(map[string][]string),
		Statistics:  Statistics{TotalLines: len(normalized)},
	}

	var (
		endEntries []rhyme.Entry
		endLines   []int
	)

	for i, text := range normalized {
		line := Line{
			Number: i + 1,
			Text:   text,
			Words:  []WordPhonetic{},
		}

		extracted := ExtractWords(text)
		for _, word := range extracted {
			if IsStopWord(word) {
				continue
			}
			line.Words = append(line.Words, WordPhonetic{Text: word, Phonetic: transcribe(word)})
		}

		// A line ending in a stop-word has no end word, even when earlier
		// words would qualify.
		if n := len(extracted); n > 0 && !IsStopWord(extracted[n-1]) {
			end := line.Words[len(line.Words)-1]
			line.EndWord = &end
			endEntries = append(endEntries, rhyme.Entry{Word: end.Text, Key: end.Phonetic})
			endLines = append(endLines, i)
		}

		result.Statistics.TotalWords += len(line.Words)
		result.Lines = append(result.Lines, line)
	}

	groups := rhyme.Cluster(endEntries, a.threshold)
	letters := make(map[int]string)

	var scheme strings.Builder
	for idx, lineIdx := range endLines {
		label := NoRhyme
		if g := groups[idx]; g != rhyme.NoGroup {
			letter, ok := letters[g]
			if !ok {
				letter = Letter(len(letters))
				letters[g] = letter
			}
			label = letter

			word := endEntries[idx].Word
			if !slices.Contains(result.RhymeGroups[letter], word) {
				result.RhymeGroups[letter] = append(result.RhymeGroups[letter], word)
			}
		}

		result.Lines[lineIdx].RhymeGroup = label
		scheme.WriteString(label)
	}

	result.RhymeScheme = scheme.String()
	result.Statistics.UniqueRhymes = len(letters)

	return result, nil
}
