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

	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/storage"
)

// artistLinkCount is the per-book cardinality of the artist association;
// exactly one link marks a monograph, more than one a collective.
const artistLinkCount = `(SELECT COUNT(*) FROM public.book_artists ba2 WHERE ba2.book_id = b.id)`

const orderByYear = "ORDER BY b.anno DESC NULLS LAST"

// MonographsTitled returns tier 1: single-artist books whose artist and
// title both match the name patterns.
func (r *Repository) MonographsTitled(ctx context.Context, q storage.TierQuery) ([]core.Book, error) {
	var w whereBuilder
	w.addPatternMatch("LOWER(ba.artist)", q.Patterns)
	w.addPatternMatch("LOWER(b.titolo)", q.Patterns)
	w.add(artistLinkCount + " = 1")
	w.addFilters(q.Filters)

	return r.queryArtistJoin(ctx, &w)
}

// Monographs returns tier 2: single-artist books whose artist matches but
// whose title does not.
func (r *Repository) Monographs(ctx context.Context, q storage.TierQuery) ([]core.Book, error) {
	var w whereBuilder
	w.addPatternMatch("LOWER(ba.artist)", q.Patterns)
	w.addPatternExclude("LOWER(b.titolo)", q.Patterns)
	w.add(artistLinkCount + " = 1")
	w.addFilters(q.Filters)

	return r.queryArtistJoin(ctx, &w)
}

// Collectives returns tier 3: books with more than one artist link, at
// least one matching the name patterns.
func (r *Repository) Collectives(ctx context.Context, q storage.TierQuery) ([]core.Book, error) {
	var w whereBuilder
	w.addPatternMatch("LOWER(ba.artist)", q.Patterns)
	w.add(artistLinkCount + " > 1")
	w.addFilters(q.Filters)

	return r.queryArtistJoin(ctx, &w)
}

// ByAuthor returns tier 4: books whose author link matches the name
// patterns, regardless of artist links.
func (r *Repository) ByAuthor(ctx context.Context, q storage.TierQuery) ([]core.Book, error) {
	var w whereBuilder
	w.addPatternMatch("LOWER(bau.author)", q.Patterns)
	w.addFilters(q.Filters)

	query := fmt.Sprintf(`SELECT DISTINCT %s
FROM public.books b
JOIN public.book_authors bau ON b.id = bau.book_id
%s
%s`, bookColumns, w.clause(), orderByYear)

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("querying author tier: %w", err)
	}
	return collectBooks(rows)
}

// Mentions returns tier 5: books whose title or description matches the
// name patterns, excluding ids already found in tiers 1-4, capped at
// limit results.
func (r *Repository) Mentions(ctx context.Context, q storage.TierQuery, exclude []core.BookID, limit int) ([]core.Book, error) {
	var w whereBuilder
	w.add(fmt.Sprintf(
		"(LOWER(b.descrizione) LIKE %s OR LOWER(b.descrizione) LIKE %s OR LOWER(b.titolo) LIKE %s OR LOWER(b.titolo) LIKE %s)",
		w.bind(q.Patterns.Forward), w.bind(q.Patterns.Reversed),
		w.bind(q.Patterns.Forward), w.bind(q.Patterns.Reversed),
	))
	if len(exclude) > 0 {
		raw := make([]int64, len(exclude))
		for i, id := range exclude {
			raw[i] = int64(id)
		}
		w.add("NOT (b.id = ANY(" + w.bind(raw) + "))")
	}
	w.addFilters(q.Filters)

	query := fmt.Sprintf(`SELECT %s
FROM public.books b
%s
%s
LIMIT %s`, bookColumns, w.clause(), orderByYear, w.bind(limit))

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("querying mention tier: %w", err)
	}
	return collectBooks(rows)
}

// ByTitle returns books whose title matches the patterns.
func (r *Repository) ByTitle(ctx context.Context, q storage.TierQuery) ([]core.Book, error) {
	var w whereBuilder
	w.addPatternMatch("LOWER(b.titolo)", q.Patterns)
	w.addFilters(q.Filters)

	query := fmt.Sprintf(`SELECT %s
FROM public.books b
%s
%s`, bookColumns, w.clause(), orderByYear)

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("querying by title: %w", err)
	}
	return collectBooks(rows)
}

// queryArtistJoin runs the shared artist-join shape of tiers 1-3.
func (r *Repository) queryArtistJoin(ctx context.Context, w *whereBuilder) ([]core.Book, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %s
FROM public.books b
JOIN public.book_artists ba ON b.id = ba.book_id
%s
%s`, bookColumns, w.clause(), orderByYear)

	rows, err := r.pool.Query(ctx, query, w.args...)
	if err != nil {
		return nil, fmt.Errorf("querying artist tier: %w", err)
	}
	return collectBooks(rows)
}
