package phonetic

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/genai"
)

// GeminiModel asks a Google Gemini model for phonemes.
type GeminiModel struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiModel creates a Gemini API client.
func NewGeminiModel(ctx context.Context, apiKey, model string, timeout time.Duration) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModel{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Name returns the provider and model.
func (m *GeminiModel) Name() string {
	return "gemini/" + m.model
}

// Phonemes requests the transcription of one word.
func (m *GeminiModel) Phonemes(ctx context.Context, word string) ([]string, error) {
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	temperature := float32(0.1)
	prompt := g2pSystemPrompt + "\n\n" + g2pUserPrompt(word)

	resp, err := m.client.Models.GenerateContent(ctx, m.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature: &temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini API error: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("no response from Gemini")
	}

	return parsePhonemes(text), nil
}
