package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/librosearch/ai"
)

const classificationResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "tipo": {"type": "string", "enum": ["nome", "tematica", "titolo", "seguito", "errore"]},
    "nome": {"type": "string"},
    "titolo": {"type": "string"},
    "tema": {"type": "string"},
    "lingua": {"type": "string"},
    "anno_min": {"type": "integer"},
    "anno_max": {"type": "integer"},
    "tipo_pubblicazione": {"type": "string", "enum": ["monografia", "collettiva", "autore"]}
  },
  "required": ["tipo"],
  "additionalProperties": false
}`

const classificationPrompt = `Analizza una query di ricerca libri per un catalogo di libri d'arte e fotografia.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

` + classificationResponseSchema + `

Regole:
- Se la query cerca libri DI o SU una persona specifica (artista, fotografo, autore, critico): tipo "nome", estrai il nome in "nome".
- Se la query cerca un libro con un titolo preciso (anche dedotto da un'immagine di copertina): tipo "titolo", metti il titolo in "titolo".
- Se la query raffina la ricerca del turno precedente ("solo in inglese", "anche le collettive", "dopo il 1990"): tipo "seguito", compila SOLO i campi nuovi.
- Altrimenti: tipo "tematica", descrizione breve in "tema".
- Se non riesci a leggere il testo o l'immagine: tipo "errore".
- "lingua" usa i codici IT, EN, DE, FR quando riconoscibili.
- Non inventare campi; ometti quelli non richiesti dalla query.

Esempi:
"tutti i libri di Bruce Nauman" -> {"tipo": "nome", "nome": "Bruce Nauman"}
"fotografia giapponese anni 70" -> {"tipo": "tematica", "tema": "fotografia giapponese anni 70"}
"cataloghi di Luigi Ghirri dopo il 1980" -> {"tipo": "nome", "nome": "Luigi Ghirri", "anno_min": 1980}
"avete Kodachrome?" -> {"tipo": "titolo", "titolo": "Kodachrome"}
"solo in inglese" -> {"tipo": "seguito", "lingua": "EN"}
"solo le monografie" -> {"tipo": "seguito", "tipo_pubblicazione": "monografia"}
"arte concettuale" -> {"tipo": "tematica", "tema": "arte concettuale"}`

// buildClassificationInput renders the user message for a classification
// call: the raw query plus, when present, the prior turn's search so the
// model can mark refinements as "seguito".
func buildClassificationInput(query string, prior *ai.PriorContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %q", query)

	if prior == nil || prior.PreviousName == "" {
		return b.String()
	}

	fmt.Fprintf(&b, "\nRicerca precedente: %q", prior.PreviousName)
	if prior.PreviousLingua != "" {
		fmt.Fprintf(&b, ", lingua %s", prior.PreviousLingua)
	}
	if prior.PreviousAnnoMin != 0 {
		fmt.Fprintf(&b, ", dal %d", prior.PreviousAnnoMin)
	}
	if prior.PreviousAnnoMax != 0 {
		fmt.Fprintf(&b, ", fino al %d", prior.PreviousAnnoMax)
	}
	if prior.PreviousTipoPubblicazione != "" {
		fmt.Fprintf(&b, ", tipo %s", prior.PreviousTipoPubblicazione)
	}
	return b.String()
}
