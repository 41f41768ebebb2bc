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
	"strings"

	"github.com/poiesic/librosearch/ai"
	"github.com/poiesic/librosearch/core"
	"github.com/poiesic/librosearch/session"
)

// placeholderNames are values the classifier emits when a followup query
// refers to the previous subject without naming it. They are treated as
// "no name supplied" and replaced by the prior turn's name.
var placeholderNames = map[string]bool{
	"stesso":     true,
	"stessa":     true,
	"same":       true,
	"precedente": true,
}

// resolveIntent classifies the query and resolves the result into the
// closed intent set. Classification is advisory: every failure path
// degrades to a thematic search of the raw query, never an error. A
// followup classification is resolved against the prior turn and leaves
// here as a name intent; no caller ever observes one.
func (s *Searcher) resolveIntent(ctx context.Context, query string, image []byte, prior *session.Context) core.Intent {
	cls, err := s.classifier.Classify(ctx, query, image, priorContext(prior))
	if err != nil {
		s.logger.Warn("classification failed, falling back to theme", "query", query, "err", err)
		return themeFallback(query)
	}
	if cls == nil {
		return themeFallback(query)
	}

	switch cls.Tipo {
	case ai.TipoNome:
		if strings.TrimSpace(cls.Nome) == "" {
			return themeFallback(query)
		}
		return core.Intent{
			Kind:    core.IntentName,
			Name:    strings.TrimSpace(cls.Nome),
			Filters: classifiedFilters(s.logger.Warn, cls),
		}

	case ai.TipoTitolo:
		if strings.TrimSpace(cls.Titolo) == "" {
			return themeFallback(query)
		}
		return core.Intent{
			Kind:  core.IntentTitle,
			Title: strings.TrimSpace(cls.Titolo),
		}

	case ai.TipoTematica:
		theme := strings.TrimSpace(cls.Tema)
		if theme == "" {
			theme = query
		}
		return core.Intent{
			Kind:    core.IntentTheme,
			Theme:   theme,
			Filters: classifiedFilters(s.logger.Warn, cls),
		}

	case ai.TipoSeguito:
		return s.resolveFollowup(query, cls, prior)

	default:
		// TipoErrore or anything unrecognized: the model could not make
		// sense of the input, but the raw text is still searchable.
		return themeFallback(query)
	}
}

// resolveFollowup merges a followup classification with the prior turn.
// The new turn's fields win; the prior turn fills what is missing.
func (s *Searcher) resolveFollowup(query string, cls *ai.Classification, prior *session.Context) core.Intent {
	name := strings.TrimSpace(cls.Nome)
	if placeholderNames[strings.ToLower(name)] {
		name = ""
	}
	if name == "" && !prior.Empty() {
		name = prior.Name
	}
	if name == "" {
		// Followup with nothing to follow up on.
		s.logger.Warn("followup without prior subject, falling back to theme", "query", query)
		return themeFallback(query)
	}

	filters := classifiedFilters(s.logger.Warn, cls)
	if !prior.Empty() {
		filters = filters.Merge(prior.Filters)
	}
	return core.Intent{
		Kind:    core.IntentName,
		Name:    name,
		Filters: filters,
	}
}

func themeFallback(query string) core.Intent {
	return core.Intent{Kind: core.IntentTheme, Theme: query}
}

// classifiedFilters lifts the classifier's flat filter fields into a
// FilterSet. Unrecognized publication types are dropped with a warning
// rather than failing the search.
func classifiedFilters(warn func(msg string, args ...any), cls *ai.Classification) core.FilterSet {
	f := core.FilterSet{
		Language: strings.ToUpper(strings.TrimSpace(cls.Lingua)),
		YearMin:  cls.AnnoMin,
		YearMax:  cls.AnnoMax,
	}
	if raw := strings.TrimSpace(cls.TipoPubblicazione); raw != "" {
		if t, ok := core.NormalizePublicationType(raw); ok {
			f.Type = t
		} else {
			warn("ignoring unknown publication type", "value", raw)
		}
	}
	return f
}

// priorContext converts a stored session turn into the classifier's
// prior-turn view.
func priorContext(prior *session.Context) *ai.PriorContext {
	if prior.Empty() {
		return nil
	}
	return &ai.PriorContext{
		PreviousName:              prior.Name,
		PreviousLingua:            prior.Filters.Language,
		PreviousAnnoMin:           prior.Filters.YearMin,
		PreviousAnnoMax:           prior.Filters.YearMax,
		PreviousTipoPubblicazione: string(prior.Filters.Type),
	}
}
