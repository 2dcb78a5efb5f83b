package journal

import (
	"context"
	"errors"
	"sync"
)

// ErrConcurrencyConflict is returned by Append when the expected version
// does not match the stream's current version.
var ErrConcurrencyConflict = errors.New("journal: expected version does not match stream version")

// Filter selects records for ReadAll. Zero values match everything.
type Filter struct {
	// Stream restricts results to one stream.
	Stream string

	// Types restricts results to the listed event kinds.
	Types []string
}

func (f Filter) matches(r *Record) bool {
	if f.Stream != "" && r.Stream != f.Stream {
		return false
	}
	if len(f.Types) > 0 {
		found := false
		for _, t := range f.Types {
			if r.Type == t {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Store is an append-only record store with optimistic concurrency.
type Store interface {
	// Append adds records to a stream. expectedVersion is the current
	// version of the stream (-1 for a new stream); on mismatch it returns
	// ErrConcurrencyConflict. Returns the new stream version.
	Append(ctx context.Context, stream string, expectedVersion int, recs []*Record) (int, error)

	// Read returns a stream's records from fromVersion onward, in order.
	Read(ctx context.Context, stream string, fromVersion int) ([]*Record, error)

	// ReadAll returns records across streams matching the filter, in
	// append order.
	ReadAll(ctx context.Context, f Filter) ([]*Record, error)

	// StreamVersion returns the stream's current version, -1 if the
	// stream does not exist.
	StreamVersion(ctx context.Context, stream string) (int, error)

	// DeleteStream removes a stream and all its records.
	DeleteStream(ctx context.Context, stream string) error

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Record
	order   []*Record // global append order for ReadAll
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		streams: make(map[string][]*Record),
	}
}

// Append adds records to a stream.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, recs []*Record) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := len(s.streams[stream]) - 1
	if current != expectedVersion {
		return -1, ErrConcurrencyConflict
	}

	version := current
	for _, r := range recs {
		version++
		r.Stream = stream
		r.Version = version
		s.streams[stream] = append(s.streams[stream], r)
		s.order = append(s.order, r)
	}
	return version, nil
}

// Read returns a stream's records from fromVersion onward.
func (s *MemoryStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, r := range s.streams[stream] {
		if r.Version >= fromVersion {
			out = append(out, r)
		}
	}
	return out, nil
}

// ReadAll returns records matching the filter in append order.
func (s *MemoryStore) ReadAll(ctx context.Context, f Filter) ([]*Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Record
	for _, r := range s.order {
		if f.matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// StreamVersion returns the stream's current version, -1 if absent.
func (s *MemoryStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[stream]) - 1, nil
}

// DeleteStream removes a stream and its records.
func (s *MemoryStore) DeleteStream(ctx context.Context, stream string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.streams, stream)
	kept := s.order[:0]
	for _, r := range s.order {
		if r.Stream != stream {
			kept = append(kept, r)
		}
	}
	s.order = kept
	return nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error { return nil }

// Ensure MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
