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


// Package postgres implements the storage interfaces against PostgreSQL
// with the pgvector extension.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/storage"
)

// bookColumns is the projection shared by every catalog query.
const bookColumns = `b.id, b.titolo, b.editore, b.anno, b.descrizione,
	b.prezzo_def_euro_web, b.pagine, b.lingua, b.permalinkimmagine, b.isbn_expo`

// Repository implements storage.BackfillRepository over a pgx pool.
// The pool is opened once per process lifetime and shared across requests.
type Repository struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

var _ storage.BackfillRepository = (*Repository)(nil)

// New opens a connection pool against the given DSN and verifies it with
// a ping. The caller owns the returned repository and must Close it.
func New(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &Repository{
		pool:   pool,
		logger: slog.Default().With("component", "postgres"),
	}, nil
}

// Close releases the connection pool.
func (r *Repository) Close() error {
	r.pool.Close()
	return nil
}

// GetBooks retrieves books by id, preserving the order of ids.
func (r *Repository) GetBooks(ctx context.Context, ids ...core.BookID) ([]core.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	raw := make([]int64, len(ids))
	for i, id := range ids {
		raw[i] = int64(id)
	}

	query := `SELECT ` + bookColumns + ` FROM public.books b WHERE b.id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, raw)
	if err != nil {
		return nil, fmt.Errorf("querying books by id: %w", err)
	}
	books, err := collectBooks(rows)
	if err != nil {
		return nil, err
	}

	// Restore caller order; ANY() gives no ordering guarantee.
	byID := make(map[core.BookID]core.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}
	ordered := make([]core.Book, 0, len(books))
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			ordered = append(ordered, b)
		}
	}
	return ordered, nil
}

// collectBooks scans all rows of a base-projection query.
func collectBooks(rows pgx.Rows) ([]core.Book, error) {
	defer rows.Close()

	var books []core.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}
	return books, nil
}

// scanBook scans one row of the base projection. Catalog data is sparse,
// so every column except id is nullable.
func scanBook(rows pgx.Rows) (core.Book, error) {
	var (
		b      core.Book
		titolo, editore, descr *string
		anno   *int
		prezzo *float64
		pagine *int
		lingua, cover, isbn *string
	)
	if err := rows.Scan(&b.ID, &titolo, &editore, &anno, &descr, &prezzo, &pagine, &lingua, &cover, &isbn); err != nil {
		return core.Book{}, fmt.Errorf("scanning book: %w", err)
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
	return b, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
