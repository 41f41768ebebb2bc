package session

import "context"

// Store persists conversation contexts keyed by session id.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get retrieves a context by id. A missing session returns
	// (nil, nil); the searcher treats it as a first turn.
	Get(ctx context.Context, id string) (*Context, error)

	// Put stores the context under its ID, overwriting any previous
	// turn. Drivers with expiry reset the TTL on every write.
	Put(ctx context.Context, data *Context) error

	// Delete removes a session. Deleting a missing session is not an
	// error.
	Delete(ctx context.Context, id string) error

	// Close releases driver resources.
	Close() error
}
