package phonetic

import (
	"context"
	"errors"
	"testing"

	"codeberg.org/snonux/rapwiz/internal/testutil"
)

func TestExternalTranscribe(t *testing.T) {
	model := &testutil.MockG2P{
		ModelName: "mock-g2p",
		Responses: map[string][]string{
			"שלום":  {"ʃ", "a", "l", "o", "m"},
			"שמיים": {},
			"לילה":  {" ", "l", "", "ai la"},
		},
		Errors: map[string]error{
			"חלוק": errors.New("model unavailable"),
		},
		PanicOn: map[string]bool{
			"בית": true,
		},
	}
	ext := NewExternal(model, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		word string
		want string
	}{
		{name: "joins phonemes", word: "שלום", want: "ʃ a l o m"},
		{name: "error falls back", word: "חלוק", want: Key("חלוק")},
		{name: "empty answer falls back", word: "שמיים", want: Key("שמיים")},
		{name: "blank tokens dropped", word: "לילה", want: "l ai la"},
		{name: "panic falls back", word: "בית", want: Key("בית")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ext.Transcribe(ctx, tt.word); got != tt.want {
				t.Errorf("Transcribe(%q) = %q, want %q", tt.word, got, tt.want)
			}
		})
	}
}

func TestExternalMetadata(t *testing.T) {
	ext := NewExternal(&testutil.MockG2P{ModelName: "openai/gpt-4o-mini"}, nil)

	if !ext.Available() {
		t.Error("external transcriber should report availability")
	}
	if ext.Name() != "openai/gpt-4o-mini (fallback: builtin)" {
		t.Errorf("unexpected name: %s", ext.Name())
	}
	if !SelfTest(context.Background(), ext) {
		t.Error("SelfTest failed for external transcriber")
	}
}

func TestNewSelectsVariant(t *testing.T) {
	model := &testutil.MockG2P{}

	tests := []struct {
		name      string
		model     G2P
		available bool
		wantExt   bool
	}{
		{name: "no model", model: nil, available: false, wantExt: false},
		{name: "model not initialized", model: model, available: false, wantExt: false},
		{name: "nil model flagged available", model: nil, available: true, wantExt: false},
		{name: "loaded model", model: model, available: true, wantExt: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := New(tt.model, tt.available, nil)
			_, isExt := tr.(*External)
			if isExt != tt.wantExt {
				t.Errorf("New() returned %T, want external=%v", tr, tt.wantExt)
			}
			if tr.Available() != tt.wantExt {
				t.Errorf("Available() = %v, want %v", tr.Available(), tt.wantExt)
			}
		})
	}
}
