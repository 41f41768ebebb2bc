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
	"sort"

	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/imagehash"
	"github.com/poiesic/librosearch/session"
)

const (
	// matchThreshold is the maximum Hamming distance counted as a match.
	matchThreshold = 25
	// highConfidenceThreshold separates high from medium confidence.
	highConfidenceThreshold = 15
)

// imageSearch matches an uploaded cover image against the catalog. The
// classifier's title or name guess scopes the candidate set; the hash
// comparison ranks it.
func (s *Searcher) imageSearch(ctx context.Context, image []byte, intent core.Intent, monitor Monitor) (*Response, *session.Context, error) {
	queryHash, hashErr := imagehash.AverageHash(image)
	if hashErr != nil {
		// A broken upload degrades to text-only matching; every
		// candidate gets the sentinel distance.
		s.logger.Warn("failed to hash uploaded image",
			"fingerprint", core.Fingerprint(image), "err", hashErr)
	}

	subject := intent.Subject()
	candidates, err := s.imageCandidates(ctx, subject)
	if err != nil {
		return nil, nil, err
	}

	scored := make([]core.ImageCandidate, len(candidates))
	for i, b := range candidates {
		distance := core.HashUnknown
		if hashErr == nil && b.ImageHash != nil {
			distance = imagehash.Distance(queryHash, *b.ImageHash)
		}
		scored[i] = core.ImageCandidate{
			Book:       b,
			Distance:   distance,
			ImageMatch: distance <= matchThreshold,
			Confidence: confidence(distance),
		}
	}

	// Matching candidates first by ascending distance; the rest keep
	// their discovery order. Stable sort preserves first-encountered
	// wins on equal distances.
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].ImageMatch != scored[j].ImageMatch {
			return scored[i].ImageMatch
		}
		if scored[i].ImageMatch {
			return scored[i].Distance < scored[j].Distance
		}
		return false
	})
	monitor.AfterImageMatch(scored)

	var best *core.ImageCandidate
	if len(scored) > 0 && scored[0].ImageMatch {
		best = &scored[0]
	}

	reply, err := s.narrateImage(ctx, subject, scored, best)
	if err != nil {
		return nil, nil, err
	}
	books := make([]core.Book, len(scored))
	for i, c := range scored {
		books[i] = c.Book
	}
	reply = s.linkify(reply, books)

	items := make([]ResultItem, len(scored))
	for i, c := range scored {
		d := c.Distance
		items[i] = ResultItem{
			Book:       c.Book,
			Distance:   &d,
			ImageMatch: c.ImageMatch,
			Confidence: c.Confidence,
		}
	}
	resp := &Response{
		SearchType:  "immagine",
		SearchedFor: subject,
		Reply:       reply,
		Results:     items,
	}
	if best != nil {
		b := items[0]
		resp.BestMatch = &b
	}

	turn := &session.Context{
		SearchType: intent.Kind.String(),
		Name:       intent.Name,
		Title:      intent.Title,
		Theme:      intent.Theme,
		Filters:    intent.Filters,
		ResultIDs:  resultIDs(items),
	}
	return resp, turn, nil
}

// imageCandidates collects hash-bearing books whose title or artist
// matches the classifier's guess, deduplicated by id with the first
// occurrence winning.
func (s *Searcher) imageCandidates(ctx context.Context, subject string) ([]core.Book, error) {
	if subject == "" {
		return nil, nil
	}
	patterns := core.NamePatterns(subject)

	byTitle, err := s.books.HashedByTitle(ctx, patterns)
	if err != nil {
		return nil, err
	}
	byArtist, err := s.books.HashedByArtist(ctx, patterns)
	if err != nil {
		return nil, err
	}

	seen := make(map[core.BookID]bool, len(byTitle)+len(byArtist))
	candidates := make([]core.Book, 0, len(byTitle)+len(byArtist))
	for _, b := range append(byTitle, byArtist...) {
		if !seen[b.ID] {
			seen[b.ID] = true
			candidates = append(candidates, b)
		}
	}
	return candidates, nil
}

func confidence(distance int) string {
	switch {
	case distance <= highConfidenceThreshold:
		return core.ConfidenceHigh
	case distance <= matchThreshold:
		return core.ConfidenceMedium
	default:
		return core.ConfidenceLow
	}
}
