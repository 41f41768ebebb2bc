package storage

import (
	"context"

	"github.com/poiesic/librosearch/core"
)

// TierQuery carries the inputs shared by all classified name queries: the
// forward/reversed name patterns and the optional narrowing filters.
// The publication-type filter is NOT applied here; it zeroes whole tiers
// after retrieval and never reaches the store.
type TierQuery struct {
	Patterns core.Patterns
	Filters  core.FilterSet
}

// BookRepository provides read access to the book catalog.
// Implementations must be thread-safe; a single repository is opened per
// process lifetime and shared across requests.
//
// Every query method orders its results by year descending (most recent
// first, unknown years last) unless documented otherwise.
type BookRepository interface {
	// MonographsTitled returns tier 1: books with exactly one artist link
	// matching the name whose title also matches the name.
	MonographsTitled(ctx context.Context, q TierQuery) ([]core.Book, error)

	// Monographs returns tier 2: books with exactly one matching artist
	// link whose title does NOT match the name. Mutually exclusive with
	// tier 1 by construction.
	Monographs(ctx context.Context, q TierQuery) ([]core.Book, error)

	// Collectives returns tier 3: books with more than one artist link,
	// at least one matching the name.
	Collectives(ctx context.Context, q TierQuery) ([]core.Book, error)

	// ByAuthor returns tier 4: books whose author link matches the name,
	// independent of artist-link state.
	ByAuthor(ctx context.Context, q TierQuery) ([]core.Book, error)

	// Mentions returns tier 5: books whose title or description matches
	// the name, excluding the given ids, capped at limit results.
	Mentions(ctx context.Context, q TierQuery, exclude []core.BookID, limit int) ([]core.Book, error)

	// ByTitle returns books whose title matches the patterns. Used by the
	// direct title mode and the exact-title intent.
	ByTitle(ctx context.Context, q TierQuery) ([]core.Book, error)

	// NearestByEmbedding ranks books by vector distance to the query
	// embedding, returning at most limit results with similarity scores.
	// Books with no stored vector are excluded entirely.
	NearestByEmbedding(ctx context.Context, vector []float32, limit int) ([]core.SemanticResult, error)

	// HashedByTitle returns books with a stored perceptual hash whose
	// title matches the patterns. ImageHash is populated on the results.
	HashedByTitle(ctx context.Context, patterns core.Patterns) ([]core.Book, error)

	// HashedByArtist returns books with a stored perceptual hash whose
	// artist link matches the patterns. ImageHash is populated.
	HashedByArtist(ctx context.Context, patterns core.Patterns) ([]core.Book, error)

	// GetBooks retrieves books by id, preserving the order of ids.
	// Missing ids are skipped without error.
	GetBooks(ctx context.Context, ids ...core.BookID) ([]core.Book, error)

	// Close closes the storage backend and releases resources.
	Close() error
}

// BackfillRepository provides the write access the backfill process needs
// to populate embeddings and cover-image hashes. The search path never
// writes.
type BackfillRepository interface {
	BookRepository

	// BooksMissingEmbedding returns up to limit books without a stored
	// embedding, oldest ids first for stable resumption.
	BooksMissingEmbedding(ctx context.Context, limit int) ([]core.Book, error)

	// BooksMissingImageHash returns up to limit books that have a cover
	// image reference but no stored perceptual hash.
	BooksMissingImageHash(ctx context.Context, limit int) ([]core.Book, error)

	// UpdateEmbedding stores the embedding vector for a book.
	UpdateEmbedding(ctx context.Context, id core.BookID, vector []float32) error

	// UpdateImageHash stores the perceptual hash for a book's cover.
	UpdateImageHash(ctx context.Context, id core.BookID, hash uint64) error
}
