package search

import (
	"context"

	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/session"
)

// themeSearch embeds the theme text and ranks the catalog by vector
// similarity.
func (s *Searcher) themeSearch(ctx context.Context, theme string, limit int, monitor Monitor) (*Response, *session.Context, error) {
	embedding, err := s.embedder.EmbedText(ctx, theme)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", theme, "err", err)
		return nil, nil, err
	}

	results, err := s.books.NearestByEmbedding(ctx, embedding, limit)
	if err != nil {
		return nil, nil, err
	}
	monitor.AfterSemanticSearch(results)

	reply, err := s.narrateSemantic(ctx, theme, results)
	if err != nil {
		return nil, nil, err
	}
	books := make([]core.Book, len(results))
	for i, r := range results {
		books[i] = r.Book
	}
	reply = s.linkify(reply, books)

	items := make([]ResultItem, len(results))
	for i, r := range results {
		items[i] = ResultItem{Book: r.Book, Similarity: r.Similarity}
	}
	resp := &Response{
		SearchType: core.IntentTheme.String(),
		Reply:      reply,
		Results:    items,
	}
	turn := &session.Context{
		SearchType: core.IntentTheme.String(),
		Theme:      theme,
		ResultIDs:  resultIDs(items),
	}
	return resp, turn, nil
}
