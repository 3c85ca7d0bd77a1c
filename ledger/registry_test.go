package ledger_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/assetlab-xyz/go-assetledger/ledger"
)

const (
	admin = ledger.Address("0x00000000000000000000000000000000000000aa")
	addr1 = ledger.Address("0x0000000000000000000000000000000000000001")
	addr2 = ledger.Address("0x0000000000000000000000000000000000000002")
	addr3 = ledger.Address("0x0000000000000000000000000000000000000003")
)

// captureSink records emitted events for assertions.
type captureSink struct {
	mu     sync.Mutex
	events []ledger.Event
}

func (c *captureSink) Append(e ledger.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureSink) types() []ledger.EventType {
	c.mu.Lock()
	defer c.mu.Unlock()
	types := make([]ledger.EventType, len(c.events))
	for i, e := range c.events {
		types[i] = e.Type
	}
	return types
}

func validParams() ledger.RegisterAssetParams {
	return ledger.RegisterAssetParams{
		Name:         "Lakehouse",
		Description:  "3BR lakefront",
		AssetType:    "property",
		GovernmentID: "GOV-001",
		MetadataRef:  "ipfs://QmExample",
	}
}

func TestRegisterAsset(t *testing.T) {
	t.Run("SequentialIDs", func(t *testing.T) {
		r := ledger.NewRegistry(admin)

		for want := ledger.AssetID(0); want < 5; want++ {
			id, err := r.RegisterAsset(addr1, validParams())
			if err != nil {
				t.Fatalf("register failed: %v", err)
			}
			if id != want {
				t.Errorf("expected id %d, got %d", want, id)
			}
		}
		if r.AssetCount() != 5 {
			t.Errorf("expected 5 assets, got %d", r.AssetCount())
		}
	})

	t.Run("InitialState", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		id, err := r.RegisterAsset(addr1, validParams())
		if err != nil {
			t.Fatalf("register failed: %v", err)
		}

		a, err := r.GetAsset(id)
		if err != nil {
			t.Fatalf("get failed: %v", err)
		}
		if a.Owner != addr1 {
			t.Errorf("expected owner %s, got %s", addr1, a.Owner)
		}
		if a.Verified {
			t.Error("new asset must not be verified")
		}
		if a.Name != "Lakehouse" || a.GovernmentID != "GOV-001" {
			t.Errorf("asset fields not recorded: %+v", a)
		}
	})

	t.Run("Validation", func(t *testing.T) {
		long := func(n int) string {
			b := make([]byte, n)
			for i := range b {
				b[i] = 'x'
			}
			return string(b)
		}

		cases := []struct {
			name   string
			mutate func(*ledger.RegisterAssetParams)
		}{
			{"EmptyName", func(p *ledger.RegisterAssetParams) { p.Name = "" }},
			{"LongName", func(p *ledger.RegisterAssetParams) { p.Name = long(101) }},
			{"EmptyDescription", func(p *ledger.RegisterAssetParams) { p.Description = "" }},
			{"LongDescription", func(p *ledger.RegisterAssetParams) { p.Description = long(257) }},
			{"EmptyType", func(p *ledger.RegisterAssetParams) { p.AssetType = "" }},
			{"LongType", func(p *ledger.RegisterAssetParams) { p.AssetType = long(51) }},
			{"EmptyGovernmentID", func(p *ledger.RegisterAssetParams) { p.GovernmentID = "" }},
			{"LongGovernmentID", func(p *ledger.RegisterAssetParams) { p.GovernmentID = long(51) }},
			{"LongMetadataRef", func(p *ledger.RegisterAssetParams) { p.MetadataRef = long(101) }},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				r := ledger.NewRegistry(admin)
				p := validParams()
				tc.mutate(&p)
				if _, err := r.RegisterAsset(addr1, p); !errors.Is(err, ledger.ErrValidation) {
					t.Errorf("expected ErrValidation, got %v", err)
				}
				if r.AssetCount() != 0 {
					t.Error("failed registration must not create an asset")
				}
			})
		}
	})

	t.Run("EmptyMetadataRefAllowed", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		p := validParams()
		p.MetadataRef = ""
		if _, err := r.RegisterAsset(addr1, p); err != nil {
			t.Errorf("empty metadata ref should be allowed: %v", err)
		}
	})

	t.Run("ZeroCaller", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		if _, err := r.RegisterAsset(ledger.ZeroAddress, validParams()); !errors.Is(err, ledger.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("EmitsEvent", func(t *testing.T) {
		sink := &captureSink{}
		r := ledger.NewRegistry(admin, ledger.WithRegistryEvents(sink))
		if _, err := r.RegisterAsset(addr1, validParams()); err != nil {
			t.Fatalf("register failed: %v", err)
		}

		if len(sink.events) != 1 {
			t.Fatalf("expected 1 event, got %d", len(sink.events))
		}
		e := sink.events[0]
		if e.Type != ledger.EventAssetRegistered {
			t.Errorf("expected AssetRegistered, got %s", e.Type)
		}
		if e.Attributes["assetId"] != "0" || e.Attributes["owner"] != string(addr1) {
			t.Errorf("unexpected attributes: %v", e.Attributes)
		}
	})
}

func TestVerifyAsset(t *testing.T) {
	t.Run("SetsVerified", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		id, _ := r.RegisterAsset(addr1, validParams())

		if err := r.VerifyAsset(admin, id); err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		a, _ := r.GetAsset(id)
		if !a.Verified {
			t.Error("asset should be verified")
		}
		if !r.IsVerified(id) {
			t.Error("IsVerified should report true")
		}
	})

	t.Run("UnknownID", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		if err := r.VerifyAsset(admin, 999); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		sink := &captureSink{}
		r := ledger.NewRegistry(admin, ledger.WithRegistryEvents(sink))
		id, _ := r.RegisterAsset(addr1, validParams())

		for i := 0; i < 3; i++ {
			if err := r.VerifyAsset(admin, id); err != nil {
				t.Fatalf("verify %d failed: %v", i, err)
			}
		}
		a, _ := r.GetAsset(id)
		if !a.Verified {
			t.Error("asset should stay verified")
		}
		// Only the first transition emits AssetVerified.
		verified := 0
		for _, typ := range sink.types() {
			if typ == ledger.EventAssetVerified {
				verified++
			}
		}
		if verified != 1 {
			t.Errorf("expected 1 AssetVerified event, got %d", verified)
		}
	})

	t.Run("RequiresVerifier", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		id, _ := r.RegisterAsset(addr1, validParams())

		if err := r.VerifyAsset(addr2, id); !errors.Is(err, ledger.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
		if r.IsVerified(id) {
			t.Error("failed verify must not change state")
		}

		if err := r.AddVerifier(admin, addr2); err != nil {
			t.Fatalf("add verifier failed: %v", err)
		}
		if err := r.VerifyAsset(addr2, id); err != nil {
			t.Errorf("authorized verifier rejected: %v", err)
		}
	})

	t.Run("AddVerifierAdminOnly", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		if err := r.AddVerifier(addr1, addr2); !errors.Is(err, ledger.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestTransferOwnership(t *testing.T) {
	t.Run("UpdatesOwner", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		id, _ := r.RegisterAsset(addr1, validParams())

		if err := r.TransferOwnership(addr1, id, addr2); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
		a, _ := r.GetAsset(id)
		if a.Owner != addr2 {
			t.Errorf("expected owner %s, got %s", addr2, a.Owner)
		}
	})

	t.Run("NotOwner", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		id, _ := r.RegisterAsset(addr1, validParams())

		if err := r.TransferOwnership(addr2, id, addr3); !errors.Is(err, ledger.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
		a, _ := r.GetAsset(id)
		if a.Owner != addr1 {
			t.Error("failed transfer must not change owner")
		}
	})

	t.Run("ZeroNewOwner", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		id, _ := r.RegisterAsset(addr1, validParams())

		if err := r.TransferOwnership(addr1, id, ledger.ZeroAddress); !errors.Is(err, ledger.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("UnknownID", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		if err := r.TransferOwnership(addr1, 7, addr2); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("MaintainsOwnerIndex", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		id0, _ := r.RegisterAsset(addr1, validParams())
		id1, _ := r.RegisterAsset(addr1, validParams())

		if got := r.AssetsOf(addr1); len(got) != 2 {
			t.Fatalf("expected 2 assets, got %v", got)
		}

		if err := r.TransferOwnership(addr1, id0, addr2); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
		if got := r.AssetsOf(addr1); len(got) != 1 || got[0] != id1 {
			t.Errorf("expected [%d] for addr1, got %v", id1, got)
		}
		if got := r.AssetsOf(addr2); len(got) != 1 || got[0] != id0 {
			t.Errorf("expected [%d] for addr2, got %v", id0, got)
		}
	})

	t.Run("EmitsEvent", func(t *testing.T) {
		sink := &captureSink{}
		r := ledger.NewRegistry(admin, ledger.WithRegistryEvents(sink))
		id, _ := r.RegisterAsset(addr1, validParams())

		if err := r.TransferOwnership(addr1, id, addr2); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
		last := sink.events[len(sink.events)-1]
		if last.Type != ledger.EventOwnershipTransferred {
			t.Fatalf("expected OwnershipTransferred, got %s", last.Type)
		}
		if last.Attributes["from"] != string(addr1) || last.Attributes["to"] != string(addr2) {
			t.Errorf("unexpected attributes: %v", last.Attributes)
		}
	})
}

func TestGetAssetUnknown(t *testing.T) {
	r := ledger.NewRegistry(admin)
	if _, err := r.GetAsset(42); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
