package mock

import "github.com/poiesic/librosearch/ai"

// MockProvider aggregates the mock services behind the ai.Provider
// interface for tests that need the full collaborator set.
type MockProvider struct {
	embedder   *MockEmbedder
	classifier *MockClassifier
	narrator   *MockNarrator
}

// NewMockProvider creates a provider backed by default mocks.
// Returns the interface since it is the primary entry point; use the
// GetMock* accessors to reach the concrete types for assertions.
func NewMockProvider() ai.Provider {
	return &MockProvider{
		embedder:   NewMockEmbedder(),
		classifier: NewMockClassifier(),
		narrator:   NewMockNarrator(),
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// Classifier returns the mock classification service.
func (p *MockProvider) Classifier() ai.Classifier {
	return p.classifier
}

// Narrator returns the mock narration service.
func (p *MockProvider) Narrator() ai.Narrator {
	return p.narrator
}

// Close is a no-op.
func (p *MockProvider) Close() error {
	return nil
}

// GetMockEmbedder returns the concrete embedder for assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockClassifier returns the concrete classifier for assertions.
func (p *MockProvider) GetMockClassifier() *MockClassifier {
	return p.classifier
}

// GetMockNarrator returns the concrete narrator for assertions.
func (p *MockProvider) GetMockNarrator() *MockNarrator {
	return p.narrator
}
