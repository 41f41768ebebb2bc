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
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/poiesic/librosearch/core"
)

const catalogLinkTemplate = "https://catalogo.librarte.it/books/%d"

// Per-bucket sample sizes bounding the narration prompt.
const (
	bucketSampleSize = 5
	authorSampleSize = 3
	themeSampleSize  = 7
)

// citationRe matches the structured citation placeholder [[id|text]].
var citationRe = regexp.MustCompile(`\[\[(\d+)\|([^\]]+)\]\]`)

func anchor(id core.BookID, label string) string {
	return fmt.Sprintf(`<a href="%s" target="_blank">%s</a>`,
		fmt.Sprintf(catalogLinkTemplate, id), label)
}

// linkify resolves citation placeholders against the shown books, then
// opportunistically links literal quoted titles. Both passes match
// literal text only; titles are never reinterpreted as patterns.
func (s *Searcher) linkify(text string, books []core.Book) string {
	byID := make(map[core.BookID]core.Book, len(books))
	for _, b := range books {
		byID[b.ID] = b
	}

	text = citationRe.ReplaceAllStringFunc(text, func(m string) string {
		groups := citationRe.FindStringSubmatch(m)
		id, err := strconv.ParseInt(groups[1], 10, 64)
		if err != nil {
			return groups[2]
		}
		if _, ok := byID[core.BookID(id)]; !ok {
			// The model cited a book it was not shown; keep the text,
			// drop the link.
			return groups[2]
		}
		return anchor(core.BookID(id), groups[2])
	})

	for _, b := range books {
		if b.Title == "" {
			continue
		}
		link := anchor(b.ID, b.Title)
		text = strings.ReplaceAll(text, `"`+b.Title+`"`, link)
		text = strings.ReplaceAll(text, "«"+b.Title+"»", link)
	}
	return text
}

// linkifyRanked is linkify over every tier of a result set.
func (s *Searcher) linkifyRanked(text string, set *core.ResultSet) string {
	all := set.All()
	books := make([]core.Book, len(all))
	for i, r := range all {
		books[i] = r.Book
	}
	return s.linkify(text, books)
}

// bookLine renders one catalog entry for the narration prompt. The id
// lets the model emit [[id|titolo]] citations.
func bookLine(b *core.Book) string {
	return fmt.Sprintf("- [%d] %q (%s, %s)", b.ID, b.Title, b.Publisher, b.Year)
}

func rankedLines(results []core.RankedResult, max int) string {
	if len(results) > max {
		results = results[:max]
	}
	lines := make([]string, len(results))
	for i := range results {
		lines[i] = bookLine(&results[i].Book)
	}
	return strings.Join(lines, "\n")
}

const citationInstruction = "Quando citi un titolo usa il formato [[id|titolo]], dove id è il numero tra parentesi quadre dell'elenco."

// narrateName builds the bookseller prompt for a name search and invokes
// the narrator. An empty result set short-circuits to a fixed sentence.
func (s *Searcher) narrateName(ctx context.Context, name string, set *core.ResultSet) (string, error) {
	if set.Total() == 0 {
		return fmt.Sprintf("Non ho trovato pubblicazioni relative a %s nel catalogo.", name), nil
	}

	var sections []string
	if len(set.MonographsTitled) > 0 {
		sections = append(sections, fmt.Sprintf(
			"MONOGRAFIE DEDICATE - titolo con nome artista (%d titoli):\n%s",
			len(set.MonographsTitled), rankedLines(set.MonographsTitled, bucketSampleSize)))
	}
	if len(set.Monographs) > 0 {
		sections = append(sections, fmt.Sprintf(
			"ALTRE MONOGRAFIE (%d titoli):\n%s",
			len(set.Monographs), rankedLines(set.Monographs, bucketSampleSize)))
	}
	if len(set.Collectives) > 0 {
		sections = append(sections, fmt.Sprintf(
			"CATALOGHI COLLETTIVI con l'artista (%d titoli):\n%s",
			len(set.Collectives), rankedLines(set.Collectives, bucketSampleSize)))
	}
	if len(set.AsAuthor) > 0 {
		sections = append(sections, fmt.Sprintf(
			"LIBRI SCRITTI DALL'ARTISTA (%d titoli):\n%s",
			len(set.AsAuthor), rankedLines(set.AsAuthor, authorSampleSize)))
	}
	if len(set.Mentions) > 0 {
		sections = append(sections, fmt.Sprintf(
			"ALTRI LIBRI che menzionano l'artista: %d titoli", len(set.Mentions)))
	}

	prompt := fmt.Sprintf(`Sei un libraio specializzato in arte contemporanea. L'utente cerca pubblicazioni su: %s

LIBRI DISPONIBILI NEL NOSTRO CATALOGO:
%s

TOTALE: %d pubblicazioni in vendita

Scrivi una risposta in 3-4 paragrafi separati da righe vuote.

Primo paragrafo: sintesi dei titoli disponibili (quante monografie, cataloghi collettivi, ecc.)

Secondo paragrafo: descrivi le monografie più significative disponibili, con titolo tra virgolette, editore e anno.

Terzo paragrafo: menzione dei cataloghi collettivi più rilevanti, con titolo tra virgolette.

%s
Tono: professionale ma commerciale, stai presentando libri in vendita.
Rispondi nella lingua dell'utente.`,
		name, strings.Join(sections, "\n\n"), set.Total(), citationInstruction)

	return s.narrator.Narrate(ctx, prompt)
}

// narrateSemantic builds the archivist prompt for a thematic search.
func (s *Searcher) narrateSemantic(ctx context.Context, query string, results []core.SemanticResult) (string, error) {
	if len(results) == 0 {
		return "Nessun risultato trovato per questa ricerca.", nil
	}

	sampled := results
	if len(sampled) > themeSampleSize {
		sampled = sampled[:themeSampleSize]
	}
	lines := make([]string, len(sampled))
	for i := range sampled {
		lines[i] = bookLine(&sampled[i].Book)
	}

	prompt := fmt.Sprintf(`Sei un archivista specializzato in libri d'arte, fotografia e pubblicazioni rare.
L'utente cerca: %q

Risultati dal catalogo:
%s

Scrivi 3-4 paragrafi separati da righe vuote.
Tono professionale, da biblioteca di ricerca.
Cita i titoli tra virgolette.
%s
Rispondi nella lingua dell'utente.`, query, strings.Join(lines, "\n"), citationInstruction)

	return s.narrator.Narrate(ctx, prompt)
}

// narrateTitles answers an exact-title lookup.
func (s *Searcher) narrateTitles(ctx context.Context, title string, books []core.Book) (string, error) {
	if len(books) == 0 {
		return "Nessun risultato trovato per questa ricerca.", nil
	}

	sampled := books
	if len(sampled) > themeSampleSize {
		sampled = sampled[:themeSampleSize]
	}
	lines := make([]string, len(sampled))
	for i := range sampled {
		lines[i] = bookLine(&sampled[i])
	}

	prompt := fmt.Sprintf(`Sei un libraio specializzato in arte contemporanea. L'utente cerca il titolo: %q

Edizioni corrispondenti nel catalogo:
%s

Scrivi 1-2 paragrafi presentando le edizioni trovate, con titolo tra virgolette, editore e anno.
%s
Rispondi nella lingua dell'utente.`, title, strings.Join(lines, "\n"), citationInstruction)

	return s.narrator.Narrate(ctx, prompt)
}

// narrateComment comments on a caller-selected list of books.
func (s *Searcher) narrateComment(ctx context.Context, query string, books []core.Book) (string, error) {
	if len(books) == 0 {
		return "Nessun risultato trovato per questa ricerca.", nil
	}

	lines := make([]string, len(books))
	for i := range books {
		lines[i] = bookLine(&books[i])
	}

	request := strings.TrimSpace(query)
	if request == "" {
		request = "Presenta questi libri."
	}
	prompt := fmt.Sprintf(`Sei un libraio specializzato in arte contemporanea. L'utente chiede: %q

Libri selezionati dal catalogo:
%s

Scrivi 2-3 paragrafi commentando i libri elencati, con titolo tra virgolette, editore e anno.
%s
Rispondi nella lingua dell'utente.`, request, strings.Join(lines, "\n"), citationInstruction)

	return s.narrator.Narrate(ctx, prompt)
}

// narrateImage presents the outcome of an image match.
func (s *Searcher) narrateImage(ctx context.Context, subject string, candidates []core.ImageCandidate, best *core.ImageCandidate) (string, error) {
	if len(candidates) == 0 {
		return "Nessun risultato trovato per questa ricerca.", nil
	}

	sampled := candidates
	if len(sampled) > themeSampleSize {
		sampled = sampled[:themeSampleSize]
	}
	lines := make([]string, len(sampled))
	for i := range sampled {
		lines[i] = bookLine(&sampled[i].Book)
	}

	var bestNote string
	if best != nil {
		bestNote = fmt.Sprintf(
			"La copertina caricata corrisponde con buona probabilità a [%d] %q (confidenza: %s).\n\n",
			best.ID, best.Title, best.Confidence)
	}

	prompt := fmt.Sprintf(`Sei un libraio specializzato in arte contemporanea. L'utente ha caricato la foto di una copertina, probabilmente legata a: %q

%sCandidati dal catalogo:
%s

Scrivi 1-2 paragrafi: se c'è una corrispondenza probabile presentala per prima, poi elenca le alternative, con titolo tra virgolette, editore e anno.
%s
Rispondi nella lingua dell'utente.`, subject, bestNote, strings.Join(lines, "\n"), citationInstruction)

	return s.narrator.Narrate(ctx, prompt)
}
