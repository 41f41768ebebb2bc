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


package search

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/librosearch/ai"
	"github.com/poiesic/librosearch/ai/mock"
	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/session"
)

func newTestSearcher(t *testing.T, repo *fakeRepo) (*Searcher, *mock.MockProvider) {
	t.Helper()

	sessions, err := session.NewStore(session.DriverMemory)
	require.NoError(t, err)
	t.Cleanup(func() { sessions.Close() })

	provider := mock.NewMockProvider().(*mock.MockProvider)
	s, err := NewSearcher(repo, sessions, provider)
	require.NoError(t, err)
	return s, provider
}

func TestNewSearcherValidation(t *testing.T) {
	sessions, err := session.NewStore(session.DriverMemory)
	require.NoError(t, err)
	defer sessions.Close()
	provider := mock.NewMockProvider()

	t.Run("missing repository", func(t *testing.T) {
		_, err := NewSearcher(nil, sessions, provider)
		assert.ErrorIs(t, err, ErrBookRepositoryRequired)
	})

	t.Run("missing session store", func(t *testing.T) {
		_, err := NewSearcher(&fakeRepo{}, nil, provider)
		assert.ErrorIs(t, err, ErrSessionStoreRequired)
	})

	t.Run("missing provider", func(t *testing.T) {
		_, err := NewSearcher(&fakeRepo{}, sessions, nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})
}

func TestSearchRejectsEmptyInput(t *testing.T) {
	repo := &fakeRepo{}
	s, provider := newTestSearcher(t, repo)

	_, err := s.Search(context.Background(), &Request{Query: "   "})
	assert.ErrorIs(t, err, ErrMissingInput)

	// Rejection happens before any collaborator call.
	assert.Zero(t, provider.GetMockClassifier().CallCount())
	assert.Zero(t, provider.GetMockNarrator().CallCount())
}

func TestSearchUnknownMode(t *testing.T) {
	s, _ := newTestSearcher(t, &fakeRepo{})

	_, err := s.Search(context.Background(), &Request{Query: "x", Mode: "telepathy"})
	assert.ErrorIs(t, err, ErrUnknownMode)
}

// Query "Bruce Nauman": the classifier marks it a name search, the five
// tiers run with forward and reversed patterns, and the counts sum.
func TestSearchNameEndToEnd(t *testing.T) {
	repo := &fakeRepo{
		monographsTitled: []core.Book{book(1, "Bruce Nauman. Topological Gardens")},
		monographs:       []core.Book{book(2, "Raw Materials"), book(3, "Make Me Think Me")},
		collectives:      []core.Book{book(4, "Minimalism and After")},
		byAuthor:         []core.Book{book(5, "Please Pay Attention Please")},
		mentions:         []core.Book{book(6, "Video Art in the Seventies")},
	}
	s, provider := newTestSearcher(t, repo)
	provider.GetMockClassifier().ClassifyFunc = func(_ context.Context, query string, _ []byte, _ *ai.PriorContext) (*ai.Classification, error) {
		return &ai.Classification{Tipo: ai.TipoNome, Nome: "Bruce Nauman"}, nil
	}

	resp, err := s.Search(context.Background(), &Request{Query: "Bruce Nauman"})
	require.NoError(t, err)

	assert.Equal(t, "nome", resp.SearchType)
	assert.Equal(t, "Bruce Nauman", resp.SearchedFor)
	assert.Equal(t, "%bruce nauman%", repo.lastTierQuery.Patterns.Forward)
	assert.Equal(t, "%nauman bruce%", repo.lastTierQuery.Patterns.Reversed)

	require.NotNil(t, resp.Counts)
	assert.Equal(t, 3, resp.Counts.Monographs)
	assert.Equal(t, 1, resp.Counts.Collectives)
	assert.Equal(t, 1, resp.Counts.AsAuthor)
	assert.Equal(t, 1, resp.Counts.Mentions)
	assert.Equal(t, 6, resp.Counts.Total)
	assert.Equal(t,
		resp.Counts.Monographs+resp.Counts.Collectives+resp.Counts.AsAuthor+resp.Counts.Mentions,
		resp.Counts.Total)

	// Tier 5's exclusion set is the id union of tiers 1 to 4.
	assert.ElementsMatch(t,
		[]core.BookID{1, 2, 3, 4, 5}, repo.mentionsExclude)
	assert.Equal(t, mentionLimit, repo.mentionsLimit)

	// Merged list keeps relevance order.
	require.Len(t, resp.Results, 6)
	assert.Equal(t, 1, resp.Results[0].Ranking)
	assert.Equal(t, core.BucketMonographTitled, resp.Results[0].Bucket)
	assert.Equal(t, core.BucketMention, resp.Results[5].Bucket)

	require.NotNil(t, resp.Facets)
	assert.NotEmpty(t, resp.SessionID)
}

// Query "solo in inglese" after a Luigi Ghirri turn: the followup is
// resolved to the prior name with the English filter applied everywhere.
func TestSearchFollowupEndToEnd(t *testing.T) {
	repo := &fakeRepo{
		monographs: []core.Book{book(10, "Kodachrome")},
	}
	s, provider := newTestSearcher(t, repo)

	sessionID := session.NewID()
	require.NoError(t, s.sessions.Put(context.Background(), &session.Context{
		ID:         sessionID,
		SearchType: "nome",
		Name:       "Luigi Ghirri",
	}))

	provider.GetMockClassifier().ClassifyFunc = func(_ context.Context, _ string, _ []byte, prior *ai.PriorContext) (*ai.Classification, error) {
		// The classifier sees the prior turn and flags a refinement.
		require.NotNil(t, prior)
		require.Equal(t, "Luigi Ghirri", prior.PreviousName)
		return &ai.Classification{Tipo: ai.TipoSeguito, Lingua: "EN"}, nil
	}

	resp, err := s.Search(context.Background(), &Request{
		Query:     "solo in inglese",
		SessionID: sessionID,
	})
	require.NoError(t, err)

	assert.Equal(t, "nome", resp.SearchType)
	assert.Equal(t, "Luigi Ghirri", resp.SearchedFor)
	assert.Equal(t, "%luigi ghirri%", repo.lastTierQuery.Patterns.Forward)
	assert.Equal(t, "EN", repo.lastTierQuery.Filters.Language)
	assert.Equal(t, sessionID, resp.SessionID)
}

// Unparseable classifier output degrades to a thematic search of the
// exact raw query text.
func TestSearchClassifierFailureFallsBackToTheme(t *testing.T) {
	repo := &fakeRepo{
		semantic: []core.SemanticResult{
			{Book: book(20, "Arte Povera"), Similarity: 0.91},
		},
	}
	s, provider := newTestSearcher(t, repo)
	provider.GetMockClassifier().ClassifyFunc = func(_ context.Context, _ string, _ []byte, _ *ai.PriorContext) (*ai.Classification, error) {
		return nil, assert.AnError
	}

	var embedded string
	provider.GetMockEmbedder().EmbedTextFunc = func(_ context.Context, text string) ([]float32, error) {
		embedded = text
		return []float32{0.1, 0.2}, nil
	}

	query := "libri con copertine strane ((("
	resp, err := s.Search(context.Background(), &Request{Query: query})
	require.NoError(t, err)

	assert.Equal(t, "tematica", resp.SearchType)
	assert.Equal(t, query, embedded)
	assert.Equal(t, s.semanticLimit, repo.semanticLimit)
	require.Len(t, resp.Results, 1)
	assert.InDelta(t, 0.91, resp.Results[0].Similarity, 1e-9)
}

func TestSearchDirectArtistModeSkipsClassifier(t *testing.T) {
	repo := &fakeRepo{
		monographsTitled: []core.Book{book(1, "Alighiero Boetti")},
	}
	s, provider := newTestSearcher(t, repo)

	resp, err := s.Search(context.Background(), &Request{
		Query: "Alighiero Boetti",
		Mode:  ModeArtist,
	})
	require.NoError(t, err)

	assert.Zero(t, provider.GetMockClassifier().CallCount())
	assert.Equal(t, "nome", resp.SearchType)
	assert.Equal(t, "%alighiero boetti%", repo.lastTierQuery.Patterns.Forward)
}

func TestSearchCommentMode(t *testing.T) {
	repo := &fakeRepo{
		byTitle: []core.Book{book(7, "Vitalità del negativo")},
	}
	s, provider := newTestSearcher(t, repo)

	t.Run("requires book ids", func(t *testing.T) {
		_, err := s.Search(context.Background(), &Request{Query: "x", Mode: ModeComment})
		assert.ErrorIs(t, err, ErrNoBookIDs)
	})

	t.Run("narrates the given list", func(t *testing.T) {
		resp, err := s.Search(context.Background(), &Request{
			Query:   "dimmi di più su questo catalogo",
			Mode:    ModeComment,
			BookIDs: []core.BookID{7},
		})
		require.NoError(t, err)

		assert.Equal(t, "commento", resp.SearchType)
		require.Len(t, resp.Results, 1)
		assert.Equal(t, core.BookID(7), resp.Results[0].ID)
		assert.Contains(t, provider.GetMockNarrator().LastContext, "Vitalità del negativo")
	})
}

func TestSearchRefineMode(t *testing.T) {
	english := book(30, "Landscapes")
	english.Language = "English"
	english.Year = "2001"
	italian := book(31, "Paesaggi")

	repo := &fakeRepo{byTitle: []core.Book{english, italian}}
	s, _ := newTestSearcher(t, repo)

	t.Run("without prior results", func(t *testing.T) {
		_, err := s.Search(context.Background(), &Request{Query: "solo in inglese", Mode: ModeRefine})
		assert.ErrorIs(t, err, ErrNoPreviousResults)
	})

	t.Run("filters stored results", func(t *testing.T) {
		sessionID := session.NewID()
		require.NoError(t, s.sessions.Put(context.Background(), &session.Context{
			ID:         sessionID,
			SearchType: "tematica",
			Theme:      "paesaggio italiano",
			ResultIDs:  []core.BookID{30, 31},
		}))

		resp, err := s.Search(context.Background(), &Request{
			Query:     "solo in inglese",
			Mode:      ModeRefine,
			SessionID: sessionID,
			Filters:   core.FilterSet{Language: "EN"},
		})
		require.NoError(t, err)

		require.Len(t, resp.Results, 1)
		assert.Equal(t, core.BookID(30), resp.Results[0].ID)
	})
}

func TestSearchStoresTurnForFollowup(t *testing.T) {
	repo := &fakeRepo{monographs: []core.Book{book(2, "Raw Materials")}}
	s, provider := newTestSearcher(t, repo)
	provider.GetMockClassifier().ClassifyFunc = func(_ context.Context, _ string, _ []byte, _ *ai.PriorContext) (*ai.Classification, error) {
		return &ai.Classification{Tipo: ai.TipoNome, Nome: "Bruce Nauman"}, nil
	}

	resp, err := s.Search(context.Background(), &Request{Query: "Bruce Nauman"})
	require.NoError(t, err)

	stored, err := s.sessions.Get(context.Background(), resp.SessionID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "nome", stored.SearchType)
	assert.Equal(t, "Bruce Nauman", stored.Name)
	assert.Equal(t, []core.BookID{2}, stored.ResultIDs)
}
