package backfill

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/imagehash"
)

// CoverHashes scans for books with a cover reference but no stored
// perceptual hash and computes them, downloading covers concurrently.
// Unreachable or undecodable covers are logged and skipped; a batch in
// which nothing succeeds ends the run, otherwise permanently broken
// covers would be rescanned forever. Returns how many hashes were
// stored.
func (b *Backfiller) CoverHashes(ctx context.Context) (int, error) {
	processed := 0
	for {
		books, err := b.repo.BooksMissingImageHash(ctx, b.batchSize)
		if err != nil {
			return processed, fmt.Errorf("scanning for missing cover hashes: %w", err)
		}
		if len(books) == 0 {
			b.logger.Info("cover hash backfill complete", "books", processed)
			return processed, nil
		}

		tracker := NewProgressTracker(b.progressWriter, len(books), 10)
		tracker.Start()

		var (
			wg       sync.WaitGroup
			updated  atomic.Int64
			firstErr error
			errOnce  sync.Once
		)
		for i := range books {
			book := books[i]
			wg.Add(1)
			submitErr := b.pool.Submit(func() {
				defer wg.Done()
				defer tracker.Increment(1)

				if err := b.hashCover(ctx, &book); err != nil {
					b.logger.Warn("skipping cover",
						"book_id", book.ID, "url", book.CoverURL, "err", err)
					return
				}
				updated.Add(1)
			})
			if submitErr != nil {
				wg.Done()
				errOnce.Do(func() { firstErr = submitErr })
			}
		}
		wg.Wait()
		tracker.Finish()

		if firstErr != nil {
			return processed, firstErr
		}
		processed += int(updated.Load())
		if updated.Load() == 0 {
			b.logger.Warn("no cover in batch could be hashed, stopping",
				"batch", len(books))
			return processed, nil
		}
		b.logger.Info("hashed batch",
			"books", updated.Load(), "skipped", len(books)-int(updated.Load()), "total", processed)
	}
}

// hashCover downloads one cover, hashes it and stores the result.
// Storage failures are returned like fetch failures; the caller decides
// whether the run continues.
func (b *Backfiller) hashCover(ctx context.Context, book *core.Book) error {
	data, err := b.fetcher.Fetch(ctx, book.CoverURL)
	if err != nil {
		return fmt.Errorf("fetching cover: %w", err)
	}
	hash, err := imagehash.AverageHash(data)
	if err != nil {
		return fmt.Errorf("hashing cover: %w", err)
	}
	if err := b.repo.UpdateImageHash(ctx, book.ID, hash); err != nil {
		return fmt.Errorf("storing hash: %w", err)
	}
	return nil
}
