package core

// IntentKind discriminates the closed set of resolved query intents.
// A follow-up classification never reaches this type: it is resolved into
// IntentName against the prior turn before any downstream code sees it.
type IntentKind int

const (
	// IntentTitle is an exact-title lookup.
	IntentTitle IntentKind = iota + 1
	// IntentName is a person-name search across the five relevance tiers.
	IntentName
	// IntentTheme is a thematic search answered by semantic retrieval.
	IntentTheme
)

// String returns the wire tag of the intent kind.
func (k IntentKind) String() string {
	switch k {
	case IntentTitle:
		return "titolo"
	case IntentName:
		return "nome"
	case IntentTheme:
		return "tematica"
	default:
		return "unknown"
	}
}

// Intent is a resolved, classified query.
// Exactly one of Title, Name, Theme carries the payload for its kind.
type Intent struct {
	Kind    IntentKind
	Title   string
	Name    string
	Theme   string
	Filters FilterSet
}

// Subject returns the payload text for the intent's kind.
func (i *Intent) Subject() string {
	switch i.Kind {
	case IntentTitle:
		return i.Title
	case IntentName:
		return i.Name
	default:
		return i.Theme
	}
}
