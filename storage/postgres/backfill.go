package postgres

import (
	"context"
	"fmt"

	"github.com/pgvector/pgvector-go"

	"github.com/poiesic/librosearch/core"
)

// BooksMissingEmbedding returns up to limit books without a stored
// embedding, oldest ids first so an interrupted run resumes where it
// stopped.
func (r *Repository) BooksMissingEmbedding(ctx context.Context, limit int) ([]core.Book, error) {
	query := `SELECT ` + bookColumns + `
FROM public.books b
WHERE b.embedding IS NULL
ORDER BY b.id
LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying books missing embedding: %w", err)
	}
	return collectBooks(rows)
}

// BooksMissingImageHash returns up to limit books that reference a cover
// image but have no stored perceptual hash.
func (r *Repository) BooksMissingImageHash(ctx context.Context, limit int) ([]core.Book, error) {
	query := `SELECT ` + bookColumns + `
FROM public.books b
WHERE b.image_hash IS NULL
  AND b.permalinkimmagine IS NOT NULL
  AND b.permalinkimmagine <> ''
ORDER BY b.id
LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying books missing image hash: %w", err)
	}
	return collectBooks(rows)
}

// UpdateEmbedding stores the embedding vector for a book.
func (r *Repository) UpdateEmbedding(ctx context.Context, id core.BookID, vector []float32) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE public.books SET embedding = $1 WHERE id = $2`,
		pgvector.NewVector(vector), int64(id))
	if err != nil {
		return fmt.Errorf("updating embedding for book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("embedding update matched no row", "book_id", id)
	}
	return nil
}

// UpdateImageHash stores the perceptual hash for a book's cover. The
// unsigned hash is persisted through its signed BIGINT bit pattern.
func (r *Repository) UpdateImageHash(ctx context.Context, id core.BookID, hash uint64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE public.books SET image_hash = $1 WHERE id = $2`,
		int64(hash), int64(id))
	if err != nil {
		return fmt.Errorf("updating image hash for book %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		r.logger.Warn("image hash update matched no row", "book_id", id)
	}
	return nil
}
