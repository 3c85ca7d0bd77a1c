// Package eventlog keeps the append-only activity log of a ledger deployment.
// It implements ledger.EventSink: every mutation lands here synchronously,
// receives a sequence number, and is fanned out to subscribers. JSONL and CSV
// codecs support export to and import from activity feed collaborators.
package eventlog

import (
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/asaskevich/EventBus"

	"github.com/assetlab-xyz/go-assetledger/ledger"
)

// Entry is a single recorded ledger event.
type Entry struct {
	Seq        uint64            `json:"seq"`
	Type       string            `json:"type"`
	Actor      string            `json:"actor"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// AssetID returns the asset id attribute and whether the entry carries one.
func (e Entry) AssetID() (ledger.AssetID, bool) {
	s, ok := e.Attributes["assetId"]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return ledger.AssetID(id), true
}

const (
	topicPrefix = "ledger:"
	topicAll    = "ledger:*"
)

// Log is an append-only, in-memory activity log with synchronous fan-out.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	nextSeq uint64
	bus     EventBus.Bus
}

// New creates an empty log.
func New() *Log {
	return &Log{bus: EventBus.New()}
}

// Append records a ledger event. It satisfies ledger.EventSink; the sequence
// number is assigned here, in arrival order.
func (l *Log) Append(ev ledger.Event) {
	l.mu.Lock()
	e := Entry{
		Seq:        l.nextSeq,
		Type:       string(ev.Type),
		Actor:      string(ev.Actor),
		Attributes: ev.Attributes,
		Timestamp:  ev.Timestamp,
	}
	l.nextSeq++
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	l.bus.Publish(topicPrefix+e.Type, e)
	l.bus.Publish(topicAll, e)
}

// Restore loads previously exported entries, replacing current contents.
// Sequence numbering continues after the highest restored entry.
func (l *Log) Restore(entries []Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = make([]Entry, len(entries))
	copy(l.entries, entries)
	sort.Slice(l.entries, func(i, j int) bool { return l.entries[i].Seq < l.entries[j].Seq })
	l.nextSeq = 0
	if n := len(l.entries); n > 0 {
		l.nextSeq = l.entries[n-1].Seq + 1
	}
}

// Entries returns a copy of all recorded entries in sequence order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// ByType returns the entries of one event type.
func (l *Log) ByType(typ ledger.EventType) []Entry {
	return l.filter(func(e Entry) bool { return e.Type == string(typ) })
}

// ByAsset returns the entries carrying the given asset id.
func (l *Log) ByAsset(id ledger.AssetID) []Entry {
	return l.filter(func(e Entry) bool {
		got, ok := e.AssetID()
		return ok && got == id
	})
}

// ByActor returns the entries performed by an address.
func (l *Log) ByActor(actor ledger.Address) []Entry {
	return l.filter(func(e Entry) bool { return e.Actor == string(actor) })
}

func (l *Log) filter(keep func(Entry) bool) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Entry
	for _, e := range l.entries {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// Subscribe registers a callback for one event type. Callbacks run
// synchronously on the appending goroutine.
func (l *Log) Subscribe(typ ledger.EventType, fn func(Entry)) error {
	return l.bus.Subscribe(topicPrefix+string(typ), fn)
}

// SubscribeAll registers a callback for every event type.
func (l *Log) SubscribeAll(fn func(Entry)) error {
	return l.bus.Subscribe(topicAll, fn)
}

// Unsubscribe removes a callback previously registered for an event type.
func (l *Log) Unsubscribe(typ ledger.EventType, fn func(Entry)) error {
	return l.bus.Unsubscribe(topicPrefix+string(typ), fn)
}

// Summary holds basic statistics over the recorded activity.
type Summary struct {
	Entries   int
	ByType    map[string]int
	Actors    int
	StartTime time.Time
	EndTime   time.Time
}

// Summarize computes summary statistics for the log.
func (l *Log) Summarize() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Summary{
		Entries: len(l.entries),
		ByType:  make(map[string]int),
	}
	actors := make(map[string]bool)
	for i, e := range l.entries {
		s.ByType[e.Type]++
		if e.Actor != "" {
			actors[e.Actor] = true
		}
		if i == 0 || e.Timestamp.Before(s.StartTime) {
			s.StartTime = e.Timestamp
		}
		if i == 0 || e.Timestamp.After(s.EndTime) {
			s.EndTime = e.Timestamp
		}
	}
	s.Actors = len(actors)
	return s
}
