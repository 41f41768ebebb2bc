package backfill

import (
	"context"
	"fmt"
)

// Embeddings scans for books without a stored vector and embeds them in
// batches until the catalog is covered. Returns how many books were
// embedded. Any storage or exhausted-retry failure aborts the run; the
// next run resumes from the first still-missing id.
func (b *Backfiller) Embeddings(ctx context.Context) (int, error) {
	processed := 0
	for {
		books, err := b.repo.BooksMissingEmbedding(ctx, b.batchSize)
		if err != nil {
			return processed, fmt.Errorf("scanning for missing embeddings: %w", err)
		}
		if len(books) == 0 {
			b.logger.Info("embedding backfill complete", "books", processed)
			return processed, nil
		}

		texts := make([]string, len(books))
		for i := range books {
			texts[i] = embedText(&books[i])
		}

		var vectors [][]float32
		err = RetryWithBackoff(ctx, func() error {
			var embedErr error
			vectors, embedErr = b.embedder.EmbedTexts(ctx, texts)
			return embedErr
		}, b.maxRetries, b.retryBaseDelay)
		if err != nil {
			return processed, fmt.Errorf("embedding batch after %d attempts: %w", b.maxRetries, err)
		}
		if len(vectors) != len(books) {
			return processed, fmt.Errorf("embedding count mismatch: expected %d, got %d", len(books), len(vectors))
		}

		for i := range books {
			if err := b.repo.UpdateEmbedding(ctx, books[i].ID, vectors[i]); err != nil {
				return processed, fmt.Errorf("storing embedding for book %d: %w", books[i].ID, err)
			}
			processed++
		}
		b.logger.Info("embedded batch", "books", len(books), "total", processed)
	}
}
