package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity
// search. Implementations must be thread-safe for concurrent use.
// The embedding dimension is fixed across calls and must match the
// dimension of the stored document vectors.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates embeddings for multiple texts in a batch.
	// The returned slice preserves input order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Classifier turns a free-text query into a raw tagged classification.
// Implementations must be thread-safe for concurrent use.
//
// The result is a wire-level structure; callers are expected to resolve it
// into a closed intent (including follow-up resolution against the prior
// turn) before acting on it. Any error returned here is advisory: callers
// degrade to a thematic search rather than failing the request.
type Classifier interface {
	// Classify analyzes the query, the optional raw image payload, and the
	// optional prior-turn context, and returns the model's classification.
	Classify(ctx context.Context, query string, image []byte, prior *PriorContext) (*Classification, error)
}

// Narrator produces the natural-language reply for a prepared prompt
// context. Implementations must be thread-safe for concurrent use.
type Narrator interface {
	// Narrate generates the reply text. Citation placeholders in the
	// output are expected but not guaranteed; callers must tolerate their
	// absence.
	Narrate(ctx context.Context, promptContext string) (string, error)
}

// Provider aggregates the AI services for convenient initialization and
// lifecycle management. The returned services share configuration and are
// constructed once per process lifetime, never per request.
type Provider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Classifier returns the query classification service.
	Classifier() Classifier

	// Narrator returns the narration service.
	Narrator() Narrator

	// Close releases resources held by the provider and its services.
	Close() error
}
