package ai

// Classification discriminator values. The classifier answers in the
// catalog's wire language; Seguito and Errore never survive resolution.
const (
	TipoNome     = "nome"     // person-name search
	TipoTematica = "tematica" // thematic search
	TipoTitolo   = "titolo"   // exact-title lookup
	TipoSeguito  = "seguito"  // follow-up refinement of the previous turn
	TipoErrore   = "errore"   // model could not read the text or image
)

// Classification is the raw tagged structure returned by the classifier.
// Exactly one of Nome, Titolo, Tema carries the payload for its Tipo;
// filter fields are optional and flat, mirroring the model's JSON.
type Classification struct {
	Tipo              string `json:"tipo"`
	Nome              string `json:"nome,omitempty"`
	Titolo            string `json:"titolo,omitempty"`
	Tema              string `json:"tema,omitempty"`
	Lingua            string `json:"lingua,omitempty"`
	AnnoMin           int    `json:"anno_min,omitempty"`
	AnnoMax           int    `json:"anno_max,omitempty"`
	TipoPubblicazione string `json:"tipo_pubblicazione,omitempty"`
}

// PriorContext carries the previous turn's resolved search so the
// classifier can interpret follow-up queries ("solo in inglese",
// "anche le collettive").
type PriorContext struct {
	PreviousName              string
	PreviousLingua            string
	PreviousAnnoMin           int
	PreviousAnnoMax           int
	PreviousTipoPubblicazione string
}
