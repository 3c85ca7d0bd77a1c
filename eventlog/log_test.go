package eventlog_test

import (
	"bytes"
	"testing"

	"github.com/assetlab-xyz/go-assetledger/eventlog"
	"github.com/assetlab-xyz/go-assetledger/ledger"
)

const (
	admin = ledger.Address("0x00000000000000000000000000000000000000aa")
	addr1 = ledger.Address("0x0000000000000000000000000000000000000001")
	addr2 = ledger.Address("0x0000000000000000000000000000000000000002")
)

// populated returns a log wired to a registry with some recorded activity.
func populated(t *testing.T) *eventlog.Log {
	t.Helper()
	log := eventlog.New()
	r := ledger.NewRegistry(admin, ledger.WithRegistryEvents(log))

	id, err := r.RegisterAsset(addr1, ledger.RegisterAssetParams{
		Name:         "Lakehouse",
		Description:  "3BR lakefront",
		AssetType:    "property",
		GovernmentID: "GOV-001",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if err := r.VerifyAsset(admin, id); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if err := r.TransferOwnership(addr1, id, addr2); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	return log
}

func TestLogAppend(t *testing.T) {
	log := populated(t)

	entries := log.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Seq != uint64(i) {
			t.Errorf("entry %d: expected seq %d, got %d", i, i, e.Seq)
		}
	}
	want := []string{"AssetRegistered", "AssetVerified", "OwnershipTransferred"}
	for i, typ := range want {
		if entries[i].Type != typ {
			t.Errorf("entry %d: expected %s, got %s", i, typ, entries[i].Type)
		}
	}
}

func TestLogFilters(t *testing.T) {
	log := populated(t)

	if got := log.ByType(ledger.EventAssetVerified); len(got) != 1 {
		t.Errorf("expected 1 AssetVerified entry, got %d", len(got))
	}
	if got := log.ByAsset(0); len(got) != 3 {
		t.Errorf("expected 3 entries for asset 0, got %d", len(got))
	}
	if got := log.ByAsset(1); len(got) != 0 {
		t.Errorf("expected no entries for asset 1, got %d", len(got))
	}
	if got := log.ByActor(addr1); len(got) != 2 {
		t.Errorf("expected 2 entries by addr1, got %d", len(got))
	}
}

func TestLogSubscribe(t *testing.T) {
	log := eventlog.New()
	r := ledger.NewRegistry(admin, ledger.WithRegistryEvents(log))

	var seen []string
	if err := log.SubscribeAll(func(e eventlog.Entry) {
		seen = append(seen, e.Type)
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	var verified int
	if err := log.Subscribe(ledger.EventAssetVerified, func(e eventlog.Entry) {
		verified++
	}); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}

	id, _ := r.RegisterAsset(addr1, ledger.RegisterAssetParams{
		Name:         "Lakehouse",
		Description:  "3BR lakefront",
		AssetType:    "property",
		GovernmentID: "GOV-001",
	})
	r.VerifyAsset(admin, id)

	if len(seen) != 2 {
		t.Errorf("expected 2 notifications, got %v", seen)
	}
	if verified != 1 {
		t.Errorf("expected 1 AssetVerified notification, got %d", verified)
	}
}

func TestLogSummarize(t *testing.T) {
	log := populated(t)
	s := log.Summarize()

	if s.Entries != 3 {
		t.Errorf("expected 3 entries, got %d", s.Entries)
	}
	if s.ByType["AssetRegistered"] != 1 || s.ByType["OwnershipTransferred"] != 1 {
		t.Errorf("unexpected type counts: %v", s.ByType)
	}
	if s.Actors != 2 {
		t.Errorf("expected 2 actors, got %d", s.Actors)
	}
	if s.EndTime.Before(s.StartTime) {
		t.Error("end time before start time")
	}
}

func TestJSONLRoundTrip(t *testing.T) {
	log := populated(t)

	var buf bytes.Buffer
	if err := log.WriteJSONLTo(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	entries, err := eventlog.ReadJSONLReader(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[0].Type != "AssetRegistered" {
		t.Errorf("expected AssetRegistered, got %s", entries[0].Type)
	}
	if entries[2].Attributes["to"] != string(addr2) {
		t.Errorf("attributes lost: %v", entries[2].Attributes)
	}

	restored := eventlog.New()
	restored.Restore(entries)
	if restored.Len() != 3 {
		t.Errorf("expected 3 restored entries, got %d", restored.Len())
	}
}

func TestCSVRoundTrip(t *testing.T) {
	log := populated(t)

	var buf bytes.Buffer
	if err := log.WriteCSVTo(&buf); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	entries, err := eventlog.ReadCSVReader(&buf)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	for i, e := range entries {
		if e.Seq != uint64(i) {
			t.Errorf("entry %d: expected seq %d, got %d", i, i, e.Seq)
		}
	}
	id, ok := entries[1].AssetID()
	if !ok || id != 0 {
		t.Errorf("asset id lost in round trip: %v %v", id, ok)
	}
}

func TestRestoreContinuesSequence(t *testing.T) {
	log := eventlog.New()
	log.Restore([]eventlog.Entry{{Seq: 4, Type: "AssetRegistered"}})

	r := ledger.NewRegistry(admin, ledger.WithRegistryEvents(log))
	r.RegisterAsset(addr1, ledger.RegisterAssetParams{
		Name:         "Lakehouse",
		Description:  "3BR lakefront",
		AssetType:    "property",
		GovernmentID: "GOV-001",
	})

	entries := log.Entries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Seq != 5 {
		t.Errorf("expected seq 5 after restore, got %d", entries[1].Seq)
	}
}
