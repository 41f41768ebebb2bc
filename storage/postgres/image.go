// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package postgres

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/poiesic/librosearch/core"
)

// HashedByTitle returns books with a stored cover hash whose title
// matches the patterns.
func (r *Repository) HashedByTitle(ctx context.Context, patterns core.Patterns) ([]core.Book, error) {
	var w whereBuilder
	w.addPatternMatch("LOWER(b.titolo)", patterns)
	w.add("b.image_hash IS NOT NULL")

	query := fmt.Sprintf(`SELECT %s, b.image_hash
FROM public.books b
%s
%s`, bookColumns, w.clause(), orderByYear)

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("querying hashed books by title: %w", err)
	}
	return collectHashedBooks(rows)
}

// HashedByArtist returns books with a stored cover hash whose artist link
// matches the patterns.
func (r *Repository) HashedByArtist(ctx context.Context, patterns core.Patterns) ([]core.Book, error) {
	var w whereBuilder
	w.addPatternMatch("LOWER(ba.artist)", patterns)
	w.add("b.image_hash IS NOT NULL")

	query := fmt.Sprintf(`SELECT DISTINCT %s, b.image_hash
FROM public.books b
JOIN public.book_artists ba ON ba.book_id = b.id
%s
%s`, bookColumns, w.clause(), orderByYear)

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("querying hashed books by artist: %w", err)
	}
	return collectHashedBooks(rows)
}

// collectHashedBooks scans rows of the base projection extended with the
// image_hash column. Hashes are stored as BIGINT; the bit pattern is
// reinterpreted as the unsigned 64-bit perceptual hash.
func collectHashedBooks(rows pgx.Rows) ([]core.Book, error) {
	defer rows.Close()

	var books []core.Book
	for rows.Next() {
		var (
			b                      core.Book
			titolo, editore, descr *string
			anno                   *int
			prezzo                 *float64
			pagine                 *int
			lingua, cover, isbn    *string
			hash                   *int64
		)
		if err := rows.Scan(&b.ID, &titolo, &editore, &anno, &descr, &prezzo, &pagine, &lingua, &cover, &isbn, &hash); err != nil {
			return nil, fmt.Errorf("scanning hashed book: %w", err)
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
		if hash != nil {
			h := uint64(*hash)
			b.ImageHash = &h
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading hashed rows: %w", err)
	}
	return books, nil
}
