package eventstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/assetlab-xyz/go-assetledger/ledger"
)

// payload is the persisted form of a ledger event's body.
type payload struct {
	Actor      string            `json:"actor"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Recorder mirrors ledger events into a stream. It satisfies
// ledger.EventSink; attach it alongside (or instead of) the in-memory
// activity log to make activity durable.
//
// The sink interface cannot report errors, so append failures are logged and
// the recorder resynchronizes its version on the next event.
type Recorder struct {
	mu      sync.Mutex
	store   Store
	stream  string
	version int
	logger  zerolog.Logger
}

// NewRecorder creates a recorder for a stream, picking up the stream's
// current version.
func NewRecorder(ctx context.Context, store Store, stream string, logger zerolog.Logger) (*Recorder, error) {
	version, err := store.Version(ctx, stream)
	if err != nil {
		return nil, fmt.Errorf("eventstore: reading stream %q: %w", stream, err)
	}
	return &Recorder{
		store:   store,
		stream:  stream,
		version: version,
		logger:  logger,
	}, nil
}

// Append implements ledger.EventSink.
func (r *Recorder) Append(ev ledger.Event) {
	stored, err := NewEvent(r.stream, string(ev.Type), payload{
		Actor:      string(ev.Actor),
		Attributes: ev.Attributes,
		Timestamp:  ev.Timestamp,
	})
	if err != nil {
		r.logger.Error().Err(err).Str("type", string(ev.Type)).Msg("encoding ledger event")
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	version, err := r.store.Append(context.Background(), r.stream, r.version, []*Event{stored})
	if err != nil {
		r.logger.Error().Err(err).
			Str("stream", r.stream).
			Str("type", string(ev.Type)).
			Msg("persisting ledger event")
		if v, verr := r.store.Version(context.Background(), r.stream); verr == nil {
			r.version = v
		}
		return
	}
	r.version = version
}

// Replay decodes a stream back into ledger events, in version order.
func Replay(ctx context.Context, store Store, stream string) ([]ledger.Event, error) {
	stored, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, fmt.Errorf("eventstore: reading stream %q: %w", stream, err)
	}

	out := make([]ledger.Event, 0, len(stored))
	for _, ev := range stored {
		var p payload
		if len(ev.Data) > 0 {
			if err := json.Unmarshal(ev.Data, &p); err != nil {
				return nil, fmt.Errorf("eventstore: decoding event %d of %q: %w", ev.Version, stream, err)
			}
		}
		out = append(out, ledger.Event{
			Type:       ledger.EventType(ev.Type),
			Actor:      ledger.Address(p.Actor),
			Attributes: p.Attributes,
			Timestamp:  p.Timestamp,
		})
	}
	return out, nil
}
