package expiry

import "context"

// Store is a string key/value capability holding persisted expiry timestamps.
// Implementations must be safe for concurrent use.
type Store interface {
	// Get returns the value stored under key or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}

// Backend names the store a tracker reads from and writes to.
type Backend string

const (
	// BackendLocal persists across restarts and is shared by every tracker using the same store.
	BackendLocal Backend = "localStorage"
	// BackendSession lives as long as the hosting process.
	BackendSession Backend = "sessionStorage"
)

// Valid reports whether b is one of the known backends.
func (b Backend) Valid() bool {
	return b == BackendLocal || b == BackendSession
}

// Stores holds the capabilities behind both backends.
// Either may be nil; a tracker configured for a nil store behaves as if its backend were invalid.
type Stores struct {
	Local   Store
	Session Store
}

// resolve picks the store for b, or nil when b is unknown or unwired.
func (s Stores) resolve(b Backend) Store {
	switch b {
	case BackendLocal:
		return s.Local
	case BackendSession:
		return s.Session
	default:
		return nil
	}
}

func (s Stores) all() []Store {
	all := make([]Store, 0, 2)
	if s.Local != nil {
		all = append(all, s.Local)
	}
	if s.Session != nil {
		all = append(all, s.Session)
	}
	return all
}
