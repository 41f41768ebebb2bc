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


package backfill

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/librosearch/ai"
	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/storage"
)

const (
	defaultBatchSize      = 64
	defaultMaxRetries     = 3
	defaultRetryBaseDelay = time.Second
	maxCoverBytes         = 20 << 20
)

// CoverFetcher retrieves cover image bytes by URL.
type CoverFetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// httpFetcher fetches covers over plain HTTP.
type httpFetcher struct {
	client *http.Client
}

func (f *httpFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching cover: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxCoverBytes))
}

// Backfiller recomputes the derived search columns over the catalog.
type Backfiller struct {
	repo           storage.BackfillRepository
	embedder       ai.Embedder
	fetcher        CoverFetcher
	pool           *ants.Pool
	batchSize      int
	maxRetries     int
	retryBaseDelay time.Duration
	progressWriter io.Writer
	logger         *slog.Logger
}

// Option configures a Backfiller.
type Option func(*Backfiller) error

// WithPoolSize sets the worker pool size for concurrent cover downloads.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *Backfiller) error {
		if size < 1 {
			size = 1
		}
		if b.pool != nil {
			b.pool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		b.pool = pool
		return nil
	}
}

// WithBatchSize sets how many books one scan processes.
func WithBatchSize(size int) Option {
	return func(b *Backfiller) error {
		if size > 0 {
			b.batchSize = size
		}
		return nil
	}
}

// WithRetryPolicy sets the retry budget for embedding API calls.
func WithRetryPolicy(maxRetries int, baseDelay time.Duration) Option {
	return func(b *Backfiller) error {
		if maxRetries > 0 {
			b.maxRetries = maxRetries
		}
		if baseDelay > 0 {
			b.retryBaseDelay = baseDelay
		}
		return nil
	}
}

// WithCoverFetcher replaces the HTTP cover fetcher.
func WithCoverFetcher(fetcher CoverFetcher) Option {
	return func(b *Backfiller) error {
		if fetcher != nil {
			b.fetcher = fetcher
		}
		return nil
	}
}

// WithProgressWriter sets where progress lines go. Default os.Stderr.
func WithProgressWriter(w io.Writer) Option {
	return func(b *Backfiller) error {
		if w != nil {
			b.progressWriter = w
		}
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *Backfiller) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// NewBackfiller creates a backfiller over the repository and provider.
func NewBackfiller(repo storage.BackfillRepository, provider ai.Provider, opts ...Option) (*Backfiller, error) {
	if repo == nil {
		return nil, ErrRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	b := &Backfiller{
		repo:           repo,
		embedder:       provider.Embedder(),
		fetcher:        &httpFetcher{client: &http.Client{Timeout: 30 * time.Second}},
		pool:           pool,
		batchSize:      defaultBatchSize,
		maxRetries:     defaultMaxRetries,
		retryBaseDelay: defaultRetryBaseDelay,
		progressWriter: os.Stderr,
		logger:         slog.Default().With("component", "backfill"),
	}

	for _, opt := range opts {
		if err := opt(b); err != nil {
			pool.Release()
			return nil, err
		}
	}

	return b, nil
}

// Close releases the worker pool.
func (b *Backfiller) Close() error {
	b.pool.Release()
	return nil
}

// embedText composes the text a book is embedded from. The same shape
// the catalog was originally vectorized with: title, description and
// imprint on one line.
func embedText(b *core.Book) string {
	var sb strings.Builder
	sb.WriteString(b.Title)
	if b.Description != "" {
		sb.WriteString(". ")
		sb.WriteString(b.Description)
	}
	if b.Publisher != "" || b.Year != "" {
		sb.WriteString(" (")
		sb.WriteString(strings.TrimSpace(b.Publisher + " " + b.Year))
		sb.WriteString(")")
	}
	return sb.String()
}
