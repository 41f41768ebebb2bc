package session

import (
	"time"

	"github.com/google/uuid"

	"github.com/poiesic/librosearch/core"
)

// Context is the state of a conversation that survives between turns.
// The searcher writes it after every completed search and reads it back
// when the classifier marks a query as a followup.
type Context struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Query is the raw text of the previous turn.
	Query string `json:"query,omitempty"`

	// SearchType is the previous turn's resolved intent discriminator:
	// "nome", "titolo" or "tematica".
	SearchType string `json:"search_type,omitempty"`

	// Subject fields of the previous turn. At most one is set,
	// matching SearchType.
	Name  string `json:"name,omitempty"`
	Title string `json:"title,omitempty"`
	Theme string `json:"theme,omitempty"`

	Filters core.FilterSet `json:"filters,omitempty"`

	// ResultIDs are the book ids shown in the previous response, in
	// display order. A followup narrows within them when possible.
	ResultIDs []core.BookID `json:"result_ids,omitempty"`
}

// NewID returns a fresh session identifier.
func NewID() string {
	return uuid.NewString()
}

// Empty reports whether the context carries no prior turn.
func (c *Context) Empty() bool {
	return c == nil || c.SearchType == ""
}
