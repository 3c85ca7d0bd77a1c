// Package eventstore persists ledger activity as versioned event streams
// with optimistic concurrency, so a deployment can restore its activity log
// after a restart. Backends: in-memory and SQLite.
package eventstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrConcurrencyConflict is returned when an append's expected version does
// not match the stream's current version.
var ErrConcurrencyConflict = errors.New("eventstore: stream version conflict")

// Event is a single persisted record. Version is assigned by the store on
// append.
type Event struct {
	ID        string          `json:"id"`
	Stream    string          `json:"stream"`
	Version   int             `json:"version"`
	Type      string          `json:"type"`
	Data      json.RawMessage `json:"data,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewEvent creates an event with a fresh id, marshaling data as JSON.
func NewEvent(stream, eventType string, data any) (*Event, error) {
	var raw json.RawMessage
	if data != nil {
		b, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("eventstore: marshaling event data: %w", err)
		}
		raw = b
	}
	return &Event{
		ID:        uuid.New().String(),
		Stream:    stream,
		Type:      eventType,
		Data:      raw,
		Timestamp: time.Now().UTC(),
	}, nil
}

// Store persists versioned event streams.
type Store interface {
	// Append adds events to a stream. expectedVersion is the version of the
	// last event already in the stream, or -1 for a new stream; a mismatch
	// fails with ErrConcurrencyConflict and appends nothing. Returns the
	// stream's new latest version.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns the events of a stream with version >= fromVersion, in
	// version order.
	Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error)

	// Version returns the latest version of a stream, or -1 if it is empty.
	Version(ctx context.Context, stream string) (int, error)

	// Streams returns the names of all non-empty streams, sorted.
	Streams(ctx context.Context) ([]string, error)

	// Close releases the store's resources.
	Close() error
}

// MemoryStore is an in-memory Store for tests and ephemeral deployments.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append implements Store.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if len(events) == 0 {
		return s.Version(ctx, stream)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := len(s.streams[stream]) - 1
	if current != expectedVersion {
		return 0, ErrConcurrencyConflict
	}

	version := current
	for _, ev := range events {
		version++
		stored := *ev
		stored.Stream = stream
		stored.Version = version
		s.streams[stream] = append(s.streams[stream], &stored)
	}
	return version, nil
}

// Read implements Store.
func (s *MemoryStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, ev := range s.streams[stream] {
		if ev.Version >= fromVersion {
			copied := *ev
			out = append(out, &copied)
		}
	}
	return out, nil
}

// Version implements Store.
func (s *MemoryStore) Version(ctx context.Context, stream string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[stream]) - 1, nil
}

// Streams implements Store.
func (s *MemoryStore) Streams(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.streams))
	for name, events := range s.streams {
		if len(events) > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Close implements Store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
