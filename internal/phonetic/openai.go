package phonetic

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
)

const g2pSystemPrompt = "You are a Hebrew phonetics expert. You transcribe single Hebrew words into IPA phonemes. Answer with the phonemes only, separated by single spaces, without brackets, slashes or explanations."

func g2pUserPrompt(word string) string {
	return fmt.Sprintf("Transcribe the Hebrew word '%s' as it is pronounced in modern Israeli Hebrew.", word)
}

// OpenAIModel asks an OpenAI chat model for phonemes.
type OpenAIModel struct {
	apiKey  string
	model   string
	timeout time.Duration
	client  *openai.Client
}

// NewOpenAIModel creates a model client using the public OpenAI endpoint.
func NewOpenAIModel(apiKey, model string, timeout time.Duration) *OpenAIModel {
	return NewOpenAIModelWithBaseURL(apiKey, "", model, timeout)
}

// NewOpenAIModelWithBaseURL creates a model client talking to an
// OpenAI-compatible endpoint. An empty baseURL keeps the default.
func NewOpenAIModelWithBaseURL(apiKey, baseURL, model string, timeout time.Duration) *OpenAIModel {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIModel{
		apiKey:  apiKey,
		model:   model,
		timeout: timeout,
		client:  openai.NewClientWithConfig(cfg),
	}
}

// Name returns the provider and model.
func (m *OpenAIModel) Name() string {
	return "openai/" + m.model
}

// Phonemes requests the transcription of one word.
func (m *OpenAIModel) Phonemes(ctx context.Context, word string) ([]string, error) {
	if m.apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key not configured")
	}

	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model: m.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: g2pSystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: g2pUserPrompt(word),
			},
		},
		Temperature: 0.1,
		MaxTokens:   60,
	}

	resp, err := m.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return parsePhonemes(resp.Choices[0].Message.Content), nil
}

// parsePhonemes splits a model answer into phoneme tokens. Models tend to
// wrap IPA in slashes or brackets even when told not to.
func parsePhonemes(answer string) []string {
	answer = strings.TrimSpace(answer)
	if i := strings.IndexByte(answer, '\n'); i >= 0 {
		answer = answer[:i]
	}
	answer = strings.Map(func(r rune) rune {
		switch r {
		case '/', '[', ']', '.', ',':
			return ' '
		}
		return r
	}, answer)
	return strings.Fields(strings.ToLower(answer))
}
