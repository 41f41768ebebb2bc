package mock

import "context"

// MockNarrator is a test double for ai.Narrator.
// It allows custom behavior injection via function fields.
type MockNarrator struct {
	// NarrateFunc is called by Narrate if set.
	// If nil, returns a canned reply.
	NarrateFunc func(ctx context.Context, promptContext string) (string, error)

	callCount int

	// LastContext records the prompt context of the most recent call,
	// so tests can assert on what the composer built.
	LastContext string
}

// NewMockNarrator creates a mock narrator with default behavior.
func NewMockNarrator() *MockNarrator {
	return &MockNarrator{}
}

// Narrate returns the injected behavior or a canned reply.
func (m *MockNarrator) Narrate(ctx context.Context, promptContext string) (string, error) {
	m.callCount++
	m.LastContext = promptContext

	if m.NarrateFunc != nil {
		return m.NarrateFunc(ctx, promptContext)
	}

	return "Ecco i risultati della ricerca nel nostro catalogo.", nil
}

// CallCount returns the number of times Narrate was called.
func (m *MockNarrator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockNarrator) Reset() {
	m.callCount = 0
	m.NarrateFunc = nil
	m.LastContext = ""
}
