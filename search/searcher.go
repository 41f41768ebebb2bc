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
	"log/slog"
	"strings"

	"github.com/poiesic/librosearch/ai"
	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/session"
	"github.com/poiesic/librosearch/storage"
)

const (
	// mentionLimit caps tier 5 at the store.
	mentionLimit = 50
	// maxMergedMentions caps the mention bucket's contribution to the
	// merged result list; the full count still appears in conteggi.
	maxMergedMentions = 20
	// defaultSemanticLimit is the semantic result count when the caller
	// does not set one.
	defaultSemanticLimit = 10
)

// Direct search modes bypass the classifier.
const (
	ModeArtist  = "artist"  // five-tier name search on the given query
	ModeAuthor  = "author"  // author-link search only
	ModeTitle   = "title"   // title substring search only
	ModeComment = "comment" // narrate over a caller-provided book list
	ModeRefine  = "refine"  // re-filter the previous turn's results
)

// Request is the caller-facing search input.
type Request struct {
	Query     string         `json:"query"`
	Limit     int            `json:"limit,omitempty"`
	Filters   core.FilterSet `json:"filtri,omitempty"`
	SessionID string         `json:"session_id,omitempty"`
	Image     []byte         `json:"immagine,omitempty"`
	Mode      string         `json:"mode,omitempty"`
	BookIDs   []core.BookID  `json:"book_ids,omitempty"`
}

// ResultItem is one entry of the response result list. The annotation
// fields are populated by the strategy that produced the entry.
type ResultItem struct {
	core.Book
	Ranking    int     `json:"ranking,omitempty"`
	Bucket     string  `json:"tipo,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
	Distance   *int    `json:"distanza,omitempty"`
	ImageMatch bool    `json:"image_match,omitempty"`
	Confidence string  `json:"confidenza,omitempty"`
}

// Response is the composed search reply.
type Response struct {
	SessionID   string       `json:"session_id,omitempty"`
	SearchType  string       `json:"tipo_ricerca"`
	SearchedFor string       `json:"nome_cercato,omitempty"`
	Reply       string       `json:"risposta"`
	Results     []ResultItem `json:"risultati"`
	Counts      *core.Counts `json:"conteggi,omitempty"`
	Facets      *core.Facets `json:"faccette,omitempty"`
	BestMatch   *ResultItem  `json:"best_match,omitempty"`
}

// Searcher orchestrates classification, retrieval and narration.
type Searcher struct {
	books         storage.BookRepository
	sessions      session.Store
	embedder      ai.Embedder
	classifier    ai.Classifier
	narrator      ai.Narrator
	logger        *slog.Logger
	semanticLimit int
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// WithSemanticLimit sets the default semantic result count.
func WithSemanticLimit(limit int) Option {
	return func(s *Searcher) error {
		if limit > 0 {
			s.semanticLimit = limit
		}
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(
	books storage.BookRepository,
	sessions session.Store,
	provider ai.Provider,
	opts ...Option,
) (*Searcher, error) {
	if books == nil {
		return nil, ErrBookRepositoryRequired
	}
	if sessions == nil {
		return nil, ErrSessionStoreRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	s := &Searcher{
		books:         books,
		sessions:      sessions,
		embedder:      provider.Embedder(),
		classifier:    provider.Classifier(),
		narrator:      provider.Narrator(),
		logger:        slog.Default().With("component", "search"),
		semanticLimit: defaultSemanticLimit,
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search handles one conversational turn.
func (s *Searcher) Search(ctx context.Context, req *Request) (*Response, error) {
	return s.SearchWithMonitor(ctx, req, nil)
}

// SearchWithMonitor handles one turn with stage callbacks.
// The monitor receives intermediate results as each stage completes.
func (s *Searcher) SearchWithMonitor(ctx context.Context, req *Request, monitor Monitor) (*Response, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	// Malformed input is rejected before any collaborator or storage
	// call is made.
	if strings.TrimSpace(req.Query) == "" && len(req.Image) == 0 {
		return nil, ErrMissingInput
	}
	monitor.Start(req.Query)

	sessionID := req.SessionID
	var prior *session.Context
	if sessionID == "" {
		sessionID = session.NewID()
	} else {
		stored, err := s.sessions.Get(ctx, sessionID)
		if err != nil {
			// A lost session degrades to a first turn.
			s.logger.Warn("failed to load session", "session_id", sessionID, "err", err)
		} else {
			prior = stored
		}
	}

	var (
		resp *Response
		turn *session.Context
		err  error
	)
	switch req.Mode {
	case "":
		resp, turn, err = s.conversational(ctx, req, prior, monitor)
	case ModeArtist:
		resp, turn, err = s.nameSearch(ctx, req.Query, req.Filters, monitor)
	case ModeAuthor:
		resp, turn, err = s.authorSearch(ctx, req.Query, req.Filters)
	case ModeTitle:
		resp, turn, err = s.titleSearch(ctx, req.Query, req.Filters)
	case ModeComment:
		resp, err = s.commentSearch(ctx, req)
	case ModeRefine:
		resp, turn, err = s.refineSearch(ctx, req, prior)
	default:
		return nil, ErrUnknownMode
	}
	if err != nil {
		return nil, err
	}

	resp.SessionID = sessionID
	if turn != nil {
		turn.ID = sessionID
		turn.Query = req.Query
		if prior != nil {
			turn.CreatedAt = prior.CreatedAt
		}
		if storeErr := s.sessions.Put(ctx, turn); storeErr != nil {
			// Next turn loses followup context but this one succeeded.
			s.logger.Warn("failed to store session", "session_id", sessionID, "err", storeErr)
		}
	}

	monitor.Finish(resp)
	return resp, nil
}

// conversational classifies the query and dispatches to the matching
// retrieval strategy.
func (s *Searcher) conversational(ctx context.Context, req *Request, prior *session.Context, monitor Monitor) (*Response, *session.Context, error) {
	intent := s.resolveIntent(ctx, req.Query, req.Image, prior)
	monitor.AfterClassification(&intent)

	// Explicit caller filters win over classified ones.
	filters := req.Filters.Merge(intent.Filters)

	if len(req.Image) > 0 {
		return s.imageSearch(ctx, req.Image, intent, monitor)
	}

	switch intent.Kind {
	case core.IntentName:
		return s.nameSearch(ctx, intent.Name, filters, monitor)
	case core.IntentTitle:
		return s.titleSearch(ctx, intent.Title, filters)
	default:
		limit := req.Limit
		if limit <= 0 {
			limit = s.semanticLimit
		}
		return s.themeSearch(ctx, intent.Theme, limit, monitor)
	}
}

// commentSearch narrates over a caller-provided book list. It stores no
// session turn; commenting does not change the conversation subject.
func (s *Searcher) commentSearch(ctx context.Context, req *Request) (*Response, error) {
	if len(req.BookIDs) == 0 {
		return nil, ErrNoBookIDs
	}
	books, err := s.books.GetBooks(ctx, req.BookIDs...)
	if err != nil {
		return nil, err
	}

	reply, err := s.narrateComment(ctx, req.Query, books)
	if err != nil {
		return nil, err
	}
	reply = s.linkify(reply, books)

	items := make([]ResultItem, len(books))
	for i, b := range books {
		items[i] = ResultItem{Book: b}
	}
	return &Response{
		SearchType: "commento",
		Reply:      reply,
		Results:    items,
	}, nil
}

// refineSearch re-filters the previous turn's stored results under the
// request's filters, without a new retrieval pass.
func (s *Searcher) refineSearch(ctx context.Context, req *Request, prior *session.Context) (*Response, *session.Context, error) {
	if prior == nil || len(prior.ResultIDs) == 0 {
		return nil, nil, ErrNoPreviousResults
	}

	books, err := s.books.GetBooks(ctx, prior.ResultIDs...)
	if err != nil {
		return nil, nil, err
	}

	filters := req.Filters.Merge(prior.Filters)
	var kept []core.Book
	for _, b := range books {
		if matchesFilters(&b, filters) {
			kept = append(kept, b)
		}
	}

	reply, err := s.narrateComment(ctx, req.Query, kept)
	if err != nil {
		return nil, nil, err
	}
	reply = s.linkify(reply, kept)

	items := make([]ResultItem, len(kept))
	ids := make([]core.BookID, len(kept))
	for i, b := range kept {
		items[i] = ResultItem{Book: b}
		ids[i] = b.ID
	}

	turn := &session.Context{
		SearchType: prior.SearchType,
		Name:       prior.Name,
		Title:      prior.Title,
		Theme:      prior.Theme,
		Filters:    filters,
		ResultIDs:  ids,
	}
	return &Response{
		SearchType: prior.SearchType,
		Reply:      reply,
		Results:    items,
	}, turn, nil
}

// matchesFilters applies language and year narrowing in memory, the same
// predicates the store applies in SQL.
func matchesFilters(b *core.Book, f core.FilterSet) bool {
	if f.Language != "" &&
		!strings.Contains(strings.ToLower(b.Language), strings.ToLower(f.Language)) {
		return false
	}
	if f.YearMin != 0 || f.YearMax != 0 {
		year, ok := b.ParsedYear()
		if !ok {
			return false
		}
		if f.YearMin != 0 && year < f.YearMin {
			return false
		}
		if f.YearMax != 0 && year > f.YearMax {
			return false
		}
	}
	return true
}

func resultIDs(items []ResultItem) []core.BookID {
	ids := make([]core.BookID, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}
