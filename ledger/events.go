package ledger

import "time"

// EventType names a ledger notification.
type EventType string

// Event types emitted by the registry, token, and NFT ledgers.
const (
	EventAssetRegistered      EventType = "AssetRegistered"
	EventAssetVerified        EventType = "AssetVerified"
	EventOwnershipTransferred EventType = "OwnershipTransferred"
	EventTokensMinted         EventType = "TokensMinted"
	EventTokensBurned         EventType = "TokensBurned"
	EventTransfer             EventType = "Transfer"
	EventApproval             EventType = "Approval"
	EventApprovalForAll       EventType = "ApprovalForAll"
	EventUnitMinted           EventType = "Minted"
)

// Event is a structured notification written synchronously within each
// mutating call. It is the ledger's sole outward notification path.
type Event struct {
	Type       EventType
	Actor      Address
	Attributes map[string]string
	Timestamp  time.Time
}

// EventSink receives events as they are emitted. Append is called
// synchronously within the mutating operation, after its state transition
// has committed.
type EventSink interface {
	Append(Event)
}

// emit sends an event to the sink, if one is attached.
func emit(sink EventSink, typ EventType, actor Address, attrs map[string]string) {
	if sink == nil {
		return
	}
	sink.Append(Event{
		Type:       typ,
		Actor:      actor,
		Attributes: attrs,
		Timestamp:  time.Now().UTC(),
	})
}
