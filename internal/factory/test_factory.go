package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/cluequest/cluequest-go/internal/dependencies/mocks"
	"github.com/cluequest/cluequest-go/internal/services/account"
	"github.com/cluequest/cluequest-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockRandom    *mocks.MockRandom
	MockGenerator *mocks.MockGenerator
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockGenerator := mocks.NewMockGenerator()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, mockRandom, mockGenerator, account.DefaultConfig(), logger)

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockRandom:    mockRandom,
		MockGenerator: mockGenerator,
	}
}
