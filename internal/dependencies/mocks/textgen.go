package mocks

import (
	"context"

	"github.com/cluequest/cluequest-go/internal/dependencies/textgen"
)

// MockGenerator is a mock implementation of textgen.Generator for testing
type MockGenerator struct {
	// Responses is a queue of texts to return from Complete
	Responses []string
	respIndex int

	// Err, when set, is returned by every Complete call
	Err error

	// Prompts records every prompt passed to Complete
	Prompts []string
}

// Ensure MockGenerator implements Generator
var _ textgen.Generator = (*MockGenerator)(nil)

// NewMockGenerator creates a new MockGenerator
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Complete returns the next queued response, or empty string if none remain
func (g *MockGenerator) Complete(ctx context.Context, prompt string) (string, error) {
	g.Prompts = append(g.Prompts, prompt)
	if g.Err != nil {
		return "", g.Err
	}
	if g.respIndex >= len(g.Responses) {
		return "", nil
	}
	resp := g.Responses[g.respIndex]
	g.respIndex++
	return resp, nil
}

// QueueResponse adds texts to the response queue
func (g *MockGenerator) QueueResponse(texts ...string) {
	g.Responses = append(g.Responses, texts...)
}

// Reset clears queued responses, the scripted error, and recorded prompts
func (g *MockGenerator) Reset() {
	g.Responses = nil
	g.respIndex = 0
	g.Err = nil
	g.Prompts = nil
}
