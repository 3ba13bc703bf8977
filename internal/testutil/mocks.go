package testutil

import (
	"context"
	"fmt"
	"sync"
)

// MockG2P mocks an external grapheme-to-phoneme model. Words missing from
// Responses and Errors get DefaultError, or else a single token equal to
// the word itself.
type MockG2P struct {
	ModelName    string
	Responses    map[string][]string
	Errors       map[string]error
	DefaultError error
	PanicOn      map[string]bool

	mu    sync.Mutex
	calls []string
}

// Phonemes mocks a model lookup.
func (m *MockG2P) Phonemes(ctx context.Context, word string) ([]string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, word)
	m.mu.Unlock()

	if m.PanicOn[word] {
		panic(fmt.Sprintf("mock g2p panic for %s", word))
	}

	if err, ok := m.Errors[word]; ok {
		return nil, err
	}

	if phonemes, ok := m.Responses[word]; ok {
		return phonemes, nil
	}

	if m.DefaultError != nil {
		return nil, m.DefaultError
	}

	return []string{word}, nil
}

// Name returns the mock model name.
func (m *MockG2P) Name() string {
	if m.ModelName == "" {
		return "mock"
	}
	return m.ModelName
}

// Calls returns the words requested so far, in order.
func (m *MockG2P) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallCount returns how often word was requested.
func (m *MockG2P) CallCount(word string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, c := range m.calls {
		if c == word {
			count++
		}
	}
	return count
}
