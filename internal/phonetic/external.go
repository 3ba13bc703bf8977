package phonetic

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// G2P is an external grapheme-to-phoneme model.
type G2P interface {
	Phonemes(ctx context.Context, word string) ([]string, error)
	Name() string
}

// External transcribes through a G2P model. Any failure for a word, an
// empty answer or a panic inside the model, yields the fallback key for
// that word only.
type External struct {
	model  G2P
	logger *slog.Logger
}

// NewExternal wraps a loaded model.
func NewExternal(model G2P, logger *slog.Logger) *External {
	if logger == nil {
		logger = slog.Default()
	}
	return &External{
		model:  model,
		logger: logger.With("component", "phonetic"),
	}
}

// Transcribe joins the model's phonemes with single spaces.
func (e *External) Transcribe(ctx context.Context, word string) string {
	phonemes, err := e.phonemes(ctx, word)
	if err != nil {
		e.logger.DebugContext(ctx, "g2p failed, using fallback",
			slog.String("word", word),
			slog.String("model", e.model.Name()),
			slog.Any("error", err))
		return Key(word)
	}

	tokens := make([]string, 0, len(phonemes))
	for _, p := range phonemes {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	if len(tokens) == 0 {
		e.logger.DebugContext(ctx, "g2p returned no phonemes, using fallback",
			slog.String("word", word))
		return Key(word)
	}

	return strings.Join(tokens, " ")
}

func (e *External) phonemes(ctx context.Context, word string) (phonemes []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("g2p panic: %v", r)
		}
	}()
	return e.model.Phonemes(ctx, word)
}

// Name describes the model and its fallback.
func (e *External) Name() string {
	return fmt.Sprintf("%s (fallback: builtin)", e.model.Name())
}

// Available is true; External is only built around a loaded model.
func (e *External) Available() bool {
	return true
}
