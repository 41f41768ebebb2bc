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

	"golang.org/x/sync/errgroup"

	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/session"
	"github.com/poiesic/librosearch/storage"
)

// nameSearch runs the five-tier retrieval for a person name, applies the
// publication-type filter, computes facets and narrates the result.
func (s *Searcher) nameSearch(ctx context.Context, name string, filters core.FilterSet, monitor Monitor) (*Response, *session.Context, error) {
	if err := core.ValidateName(name); err != nil {
		return nil, nil, err
	}

	set, err := s.retrieveTiers(ctx, name, filters)
	if err != nil {
		return nil, nil, err
	}
	applyTypeFilter(set, filters.Type)
	monitor.AfterTierRetrieval(set)

	facets := computeFacets(set)
	counts := set.Counts()

	reply, err := s.narrateName(ctx, name, set)
	if err != nil {
		return nil, nil, err
	}
	reply = s.linkifyRanked(reply, set)

	merged := set.Merged(maxMergedMentions)
	items := make([]ResultItem, len(merged))
	for i, r := range merged {
		items[i] = ResultItem{Book: r.Book, Ranking: r.Ranking, Bucket: r.Bucket}
	}

	resp := &Response{
		SearchType:  core.IntentName.String(),
		SearchedFor: name,
		Reply:       reply,
		Results:     items,
		Counts:      &counts,
		Facets:      &facets,
	}
	turn := &session.Context{
		SearchType: core.IntentName.String(),
		Name:       name,
		Filters:    filters,
		ResultIDs:  resultIDs(items),
	}
	return resp, turn, nil
}

// retrieveTiers issues the five classified queries. Tiers 1 to 4 are
// independent reads and run in parallel; tier 5 needs their id union as
// its exclusion set, so it runs after they complete.
func (s *Searcher) retrieveTiers(ctx context.Context, name string, filters core.FilterSet) (*core.ResultSet, error) {
	q := storage.TierQuery{
		Patterns: core.NamePatterns(name),
		Filters:  filters,
	}

	var t1, t2, t3, t4 []core.Book
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		t1, err = s.books.MonographsTitled(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		t2, err = s.books.Monographs(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		t3, err = s.books.Collectives(gctx, q)
		return err
	})
	g.Go(func() (err error) {
		t4, err = s.books.ByAuthor(gctx, q)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	exclude := make([]core.BookID, 0, len(t1)+len(t2)+len(t3)+len(t4))
	seen := make(map[core.BookID]bool)
	for _, tier := range [][]core.Book{t1, t2, t3, t4} {
		for _, b := range tier {
			if !seen[b.ID] {
				seen[b.ID] = true
				exclude = append(exclude, b.ID)
			}
		}
	}

	t5, err := s.books.Mentions(ctx, q, exclude, mentionLimit)
	if err != nil {
		return nil, err
	}

	return &core.ResultSet{
		MonographsTitled: rank(t1, 1, core.BucketMonographTitled),
		Monographs:       rank(t2, 2, core.BucketMonograph),
		Collectives:      rank(t3, 3, core.BucketCollective),
		AsAuthor:         rank(t4, 4, core.BucketAuthor),
		Mentions:         rank(t5, 5, core.BucketMention),
	}, nil
}

func rank(books []core.Book, ranking int, bucket string) []core.RankedResult {
	if len(books) == 0 {
		return nil
	}
	ranked := make([]core.RankedResult, len(books))
	for i, b := range books {
		ranked[i] = core.RankedResult{Book: b, Ranking: ranking, Bucket: bucket}
	}
	return ranked
}

// authorSearch runs only the author-link tier, for the direct author mode.
func (s *Searcher) authorSearch(ctx context.Context, name string, filters core.FilterSet) (*Response, *session.Context, error) {
	if err := core.ValidateName(name); err != nil {
		return nil, nil, err
	}

	books, err := s.books.ByAuthor(ctx, storage.TierQuery{
		Patterns: core.NamePatterns(name),
		Filters:  filters,
	})
	if err != nil {
		return nil, nil, err
	}

	set := &core.ResultSet{AsAuthor: rank(books, 4, core.BucketAuthor)}
	counts := set.Counts()

	reply, err := s.narrateName(ctx, name, set)
	if err != nil {
		return nil, nil, err
	}
	reply = s.linkifyRanked(reply, set)

	items := make([]ResultItem, len(books))
	for i, b := range books {
		items[i] = ResultItem{Book: b, Ranking: 4, Bucket: core.BucketAuthor}
	}
	resp := &Response{
		SearchType:  core.BucketAuthor,
		SearchedFor: name,
		Reply:       reply,
		Results:     items,
		Counts:      &counts,
	}
	turn := &session.Context{
		SearchType: core.IntentName.String(),
		Name:       name,
		Filters:    filters,
		ResultIDs:  resultIDs(items),
	}
	return resp, turn, nil
}

// titleSearch answers an exact-title intent or the direct title mode.
func (s *Searcher) titleSearch(ctx context.Context, title string, filters core.FilterSet) (*Response, *session.Context, error) {
	if err := core.ValidateName(title); err != nil {
		return nil, nil, err
	}

	books, err := s.books.ByTitle(ctx, storage.TierQuery{
		Patterns: core.NamePatterns(title),
		Filters:  filters,
	})
	if err != nil {
		return nil, nil, err
	}

	reply, err := s.narrateTitles(ctx, title, books)
	if err != nil {
		return nil, nil, err
	}
	reply = s.linkify(reply, books)

	items := make([]ResultItem, len(books))
	for i, b := range books {
		items[i] = ResultItem{Book: b}
	}
	resp := &Response{
		SearchType:  core.IntentTitle.String(),
		SearchedFor: title,
		Reply:       reply,
		Results:     items,
	}
	turn := &session.Context{
		SearchType: core.IntentTitle.String(),
		Title:      title,
		Filters:    filters,
		ResultIDs:  resultIDs(items),
	}
	return resp, turn, nil
}
