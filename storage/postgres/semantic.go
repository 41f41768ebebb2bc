package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pgvector/pgvector-go"

	"github.com/poiesic/librosearch/core"
)

// NearestByEmbedding ranks books by cosine distance to the query vector.
// Books with no stored embedding are excluded entirely: absence of a
// vector is a backfill gap, not a zero-similarity match.
func (r *Repository) NearestByEmbedding(ctx context.Context, vector []float32, limit int) ([]core.SemanticResult, error) {
	query := `SELECT ` + bookColumns + `, 1 - (b.embedding <=> $1) AS similarity
FROM public.books b
WHERE b.embedding IS NOT NULL
ORDER BY b.embedding <=> $1
LIMIT $2`

	rows, err := r.pool.Query(ctx, query, pgvector.NewVector(vector), limit)
	if err != nil {
		return nil, fmt.Errorf("querying nearest neighbours: %w", err)
	}
	defer rows.Close()

	var results []core.SemanticResult
	for rows.Next() {
		var (
			b                      core.Book
			titolo, editore, descr *string
			anno                   *int
			prezzo                 *float64
			pagine                 *int
			lingua, cover, isbn    *string
			similarity             float64
		)
		if err := rows.Scan(&b.ID, &titolo, &editore, &anno, &descr, &prezzo, &pagine, &lingua, &cover, &isbn, &similarity); err != nil {
			return nil, fmt.Errorf("scanning semantic result: %w", err)
		}
		b.Title = deref(titolo)
		b.Publisher = deref(editore)
		if anno != nil {
			b.Year = strconv.Itoa(*anno)
		}
		b.Description = deref(descr)
		if prezzo != nil {
			b.Price = *prezzo
		}
		if pagine != nil {
			b.Pages = *pagine
		}
		b.Language = deref(lingua)
		b.CoverURL = deref(cover)
		b.ISBN = deref(isbn)

		results = append(results, core.SemanticResult{Book: b, Similarity: similarity})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading semantic rows: %w", err)
	}
	return results, nil
}
