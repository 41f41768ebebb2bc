package backfill

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/librosearch/ai/mock"
	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/storage"
)

// fakeBackfillRepo tracks missing-column queues and applied updates.
type fakeBackfillRepo struct {
	mu             sync.Mutex
	missingEmbed   []core.Book
	missingHash    []core.Book
	embeddings     map[core.BookID][]float32
	hashes         map[core.BookID]uint64
	scanErr        error
	updateEmbedErr error
}

var _ storage.BackfillRepository = (*fakeBackfillRepo)(nil)

func newFakeBackfillRepo() *fakeBackfillRepo {
	return &fakeBackfillRepo{
		embeddings: make(map[core.BookID][]float32),
		hashes:     make(map[core.BookID]uint64),
	}
}

func (f *fakeBackfillRepo) BooksMissingEmbedding(_ context.Context, limit int) ([]core.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.scanErr != nil {
		return nil, f.scanErr
	}
	if limit > len(f.missingEmbed) {
		limit = len(f.missingEmbed)
	}
	return append([]core.Book(nil), f.missingEmbed[:limit]...), nil
}

func (f *fakeBackfillRepo) BooksMissingImageHash(_ context.Context, limit int) ([]core.Book, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit > len(f.missingHash) {
		limit = len(f.missingHash)
	}
	return append([]core.Book(nil), f.missingHash[:limit]...), nil
}

func (f *fakeBackfillRepo) UpdateEmbedding(_ context.Context, id core.BookID, vector []float32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateEmbedErr != nil {
		return f.updateEmbedErr
	}
	f.embeddings[id] = vector
	for i, b := range f.missingEmbed {
		if b.ID == id {
			f.missingEmbed = append(f.missingEmbed[:i], f.missingEmbed[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeBackfillRepo) UpdateImageHash(_ context.Context, id core.BookID, hash uint64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hashes[id] = hash
	for i, b := range f.missingHash {
		if b.ID == id {
			f.missingHash = append(f.missingHash[:i], f.missingHash[i+1:]...)
			break
		}
	}
	return nil
}

// The read side of BookRepository is unused by the backfiller.
func (f *fakeBackfillRepo) MonographsTitled(context.Context, storage.TierQuery) ([]core.Book, error) {
	return nil, nil
}
func (f *fakeBackfillRepo) Monographs(context.Context, storage.TierQuery) ([]core.Book, error) {
	return nil, nil
}
func (f *fakeBackfillRepo) Collectives(context.Context, storage.TierQuery) ([]core.Book, error) {
	return nil, nil
}
func (f *fakeBackfillRepo) ByAuthor(context.Context, storage.TierQuery) ([]core.Book, error) {
	return nil, nil
}
func (f *fakeBackfillRepo) Mentions(context.Context, storage.TierQuery, []core.BookID, int) ([]core.Book, error) {
	return nil, nil
}
func (f *fakeBackfillRepo) ByTitle(context.Context, storage.TierQuery) ([]core.Book, error) {
	return nil, nil
}
func (f *fakeBackfillRepo) NearestByEmbedding(context.Context, []float32, int) ([]core.SemanticResult, error) {
	return nil, nil
}
func (f *fakeBackfillRepo) HashedByTitle(context.Context, core.Patterns) ([]core.Book, error) {
	return nil, nil
}
func (f *fakeBackfillRepo) HashedByArtist(context.Context, core.Patterns) ([]core.Book, error) {
	return nil, nil
}
func (f *fakeBackfillRepo) GetBooks(context.Context, ...core.BookID) ([]core.Book, error) {
	return nil, nil
}
func (f *fakeBackfillRepo) Close() error { return nil }

// fakeFetcher serves canned cover bytes by URL.
type fakeFetcher struct {
	covers map[string][]byte
}

func (f *fakeFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	data, ok := f.covers[url]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func coverPNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			if x < 8 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newTestBackfiller(t *testing.T, repo storage.BackfillRepository, opts ...Option) *Backfiller {
	t.Helper()

	opts = append([]Option{
		WithProgressWriter(io.Discard),
		WithRetryPolicy(2, time.Millisecond),
		WithBatchSize(2),
	}, opts...)
	b, err := NewBackfiller(repo, mock.NewMockProvider(), opts...)
	require.NoError(t, err)
	t.Cleanup(func() { b.Close() })
	return b
}

func TestNewBackfillerValidation(t *testing.T) {
	t.Run("missing repository", func(t *testing.T) {
		_, err := NewBackfiller(nil, mock.NewMockProvider())
		assert.ErrorIs(t, err, ErrRepositoryRequired)
	})

	t.Run("missing provider", func(t *testing.T) {
		_, err := NewBackfiller(newFakeBackfillRepo(), nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})
}

func TestEmbeddingsBackfill(t *testing.T) {
	repo := newFakeBackfillRepo()
	for i := 1; i <= 5; i++ {
		repo.missingEmbed = append(repo.missingEmbed, core.Book{
			ID:    core.BookID(i),
			Title: "Libro", Description: "catalogo d'arte",
		})
	}

	b := newTestBackfiller(t, repo)
	processed, err := b.Embeddings(context.Background())
	require.NoError(t, err)

	// Batch size 2 needs three scans to drain five books.
	assert.Equal(t, 5, processed)
	assert.Len(t, repo.embeddings, 5)
	assert.Empty(t, repo.missingEmbed)
}

func TestEmbeddingsBackfillScanFailureAborts(t *testing.T) {
	repo := newFakeBackfillRepo()
	repo.scanErr = errors.New("database gone")

	b := newTestBackfiller(t, repo)
	_, err := b.Embeddings(context.Background())
	assert.ErrorContains(t, err, "database gone")
}

func TestEmbeddingsBackfillUpdateFailureAborts(t *testing.T) {
	repo := newFakeBackfillRepo()
	repo.missingEmbed = []core.Book{{ID: 1, Title: "Libro"}}
	repo.updateEmbedErr = errors.New("write refused")

	b := newTestBackfiller(t, repo)
	_, err := b.Embeddings(context.Background())
	assert.ErrorContains(t, err, "write refused")
}

func TestCoverHashesBackfill(t *testing.T) {
	cover := coverPNG(t)
	repo := newFakeBackfillRepo()
	repo.missingHash = []core.Book{
		{ID: 1, Title: "Uno", CoverURL: "https://img/1.png"},
		{ID: 2, Title: "Due", CoverURL: "https://img/2.png"},
		{ID: 3, Title: "Tre", CoverURL: "https://img/missing.png"}, // 404s
	}

	b := newTestBackfiller(t, repo, WithCoverFetcher(&fakeFetcher{covers: map[string][]byte{
		"https://img/1.png": cover,
		"https://img/2.png": cover,
	}}))

	processed, err := b.CoverHashes(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, processed)
	assert.Len(t, repo.hashes, 2)
	assert.Contains(t, repo.hashes, core.BookID(1))
	assert.Contains(t, repo.hashes, core.BookID(2))
	// The broken cover stays missing and ended the run instead of
	// looping on it.
	assert.Len(t, repo.missingHash, 1)
}

func TestCoverHashesAllBrokenStops(t *testing.T) {
	repo := newFakeBackfillRepo()
	repo.missingHash = []core.Book{
		{ID: 1, CoverURL: "https://img/broken.png"},
	}

	b := newTestBackfiller(t, repo, WithCoverFetcher(&fakeFetcher{covers: map[string][]byte{
		"https://img/broken.png": []byte("not an image"),
	}}))

	processed, err := b.CoverHashes(context.Background())
	require.NoError(t, err)
	assert.Zero(t, processed)
	assert.Empty(t, repo.hashes)
}

func TestEmbedText(t *testing.T) {
	b := &core.Book{Title: "Kodachrome", Description: "prima edizione", Publisher: "Punto e Virgola", Year: "1978"}
	assert.Equal(t, "Kodachrome. prima edizione (Punto e Virgola 1978)", embedText(b))

	bare := &core.Book{Title: "Kodachrome"}
	assert.Equal(t, "Kodachrome", embedText(bare))
}
