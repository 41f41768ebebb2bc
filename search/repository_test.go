package search

import (
	"context"

	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/storage"
)

// fakeRepo is an in-memory BookRepository returning canned tier results
// and recording what the engine asked for.
type fakeRepo struct {
	monographsTitled []core.Book
	monographs       []core.Book
	collectives      []core.Book
	byAuthor         []core.Book
	mentions         []core.Book
	byTitle          []core.Book
	hashedTitle      []core.Book
	hashedArtist     []core.Book
	semantic         []core.SemanticResult

	err error

	lastTierQuery   storage.TierQuery
	mentionsExclude []core.BookID
	mentionsLimit   int
	semanticVector  []float32
	semanticLimit   int
}

var _ storage.BookRepository = (*fakeRepo)(nil)

func (f *fakeRepo) MonographsTitled(_ context.Context, q storage.TierQuery) ([]core.Book, error) {
	f.lastTierQuery = q
	return f.monographsTitled, f.err
}

func (f *fakeRepo) Monographs(_ context.Context, q storage.TierQuery) ([]core.Book, error) {
	return f.monographs, f.err
}

func (f *fakeRepo) Collectives(_ context.Context, q storage.TierQuery) ([]core.Book, error) {
	return f.collectives, f.err
}

func (f *fakeRepo) ByAuthor(_ context.Context, q storage.TierQuery) ([]core.Book, error) {
	f.lastTierQuery = q
	return f.byAuthor, f.err
}

func (f *fakeRepo) Mentions(_ context.Context, q storage.TierQuery, exclude []core.BookID, limit int) ([]core.Book, error) {
	f.mentionsExclude = exclude
	f.mentionsLimit = limit
	return f.mentions, f.err
}

func (f *fakeRepo) ByTitle(_ context.Context, q storage.TierQuery) ([]core.Book, error) {
	f.lastTierQuery = q
	return f.byTitle, f.err
}

func (f *fakeRepo) NearestByEmbedding(_ context.Context, vector []float32, limit int) ([]core.SemanticResult, error) {
	f.semanticVector = vector
	f.semanticLimit = limit
	return f.semantic, f.err
}

func (f *fakeRepo) HashedByTitle(_ context.Context, _ core.Patterns) ([]core.Book, error) {
	return f.hashedTitle, f.err
}

func (f *fakeRepo) HashedByArtist(_ context.Context, _ core.Patterns) ([]core.Book, error) {
	return f.hashedArtist, f.err
}

func (f *fakeRepo) GetBooks(_ context.Context, ids ...core.BookID) ([]core.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	byID := make(map[core.BookID]core.Book)
	for _, tier := range [][]core.Book{
		f.monographsTitled, f.monographs, f.collectives, f.byAuthor,
		f.mentions, f.byTitle, f.hashedTitle, f.hashedArtist,
	} {
		for _, b := range tier {
			byID[b.ID] = b
		}
	}
	var books []core.Book
	for _, id := range ids {
		if b, ok := byID[id]; ok {
			books = append(books, b)
		}
	}
	return books, nil
}

func (f *fakeRepo) Close() error { return nil }

func book(id core.BookID, title string) core.Book {
	return core.Book{ID: id, Title: title, Publisher: "Electa", Year: "1999", Language: "Italiano"}
}
