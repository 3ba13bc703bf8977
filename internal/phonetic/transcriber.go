package phonetic

import (
	"context"
	"log/slog"
)

// selfTestWord is transcribed by SelfTest to check the pipeline end to end.
const selfTestWord = "שלום"

// Transcriber produces a phonetic key for a single Hebrew word. It never
// fails; implementations absorb errors and return a best-effort key.
type Transcriber interface {
	Transcribe(ctx context.Context, word string) string
	Name() string
	// Available reports whether an external model backs this transcriber.
	Available() bool
}

// New selects the transcriber for the process lifetime. The external
// variant is used only when a model is present and its initialization
// succeeded; otherwise words go through the built-in table.
func New(model G2P, available bool, logger *slog.Logger) Transcriber {
	if model == nil || !available {
		return NewFallback()
	}
	return NewExternal(model, logger)
}

// SelfTest transcribes a known word and reports whether a non-empty key
// came back.
func SelfTest(ctx context.Context, t Transcriber) bool {
	return t.Transcribe(ctx, selfTestWord) != ""
}
