package mock

import (
	"context"

	"github.com/poiesic/librosearch/ai"
)

// MockClassifier is a test double for ai.Classifier.
// It allows custom behavior injection via function fields.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	// If nil, the default classifies everything as a thematic search
	// echoing the query text.
	ClassifyFunc func(ctx context.Context, query string, image []byte, prior *ai.PriorContext) (*ai.Classification, error)

	callCount int
}

// NewMockClassifier creates a mock classifier with default behavior.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{}
}

// Classify returns the injected behavior or the thematic default.
func (m *MockClassifier) Classify(ctx context.Context, query string, image []byte, prior *ai.PriorContext) (*ai.Classification, error) {
	m.callCount++

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, query, image, prior)
	}

	return &ai.Classification{Tipo: ai.TipoTematica, Tema: query}, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockClassifier) Reset() {
	m.callCount = 0
	m.ClassifyFunc = nil
}
