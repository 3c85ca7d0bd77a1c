package ledger_test

import (
	"errors"
	"testing"

	"github.com/assetlab-xyz/go-assetledger/ledger"
)

func TestNFTMetadata(t *testing.T) {
	n := ledger.NewNFT()
	if n.Name() != "Asset NFT" {
		t.Errorf("expected name Asset NFT, got %s", n.Name())
	}
	if n.Symbol() != "ANFT" {
		t.Errorf("expected symbol ANFT, got %s", n.Symbol())
	}
}

func TestNFTMint(t *testing.T) {
	t.Run("AssignsOwner", func(t *testing.T) {
		n := ledger.NewNFT()
		if err := n.MintAsset(admin, addr1, 1, "property", "PROP123", "ipfs://QmExample"); err != nil {
			t.Fatalf("mint failed: %v", err)
		}

		owner, err := n.OwnerOf(1)
		if err != nil {
			t.Fatalf("ownerOf failed: %v", err)
		}
		if owner != addr1 {
			t.Errorf("expected owner %s, got %s", addr1, owner)
		}

		assetType, governmentID, verified, err := n.AssetDetails(1)
		if err != nil {
			t.Fatalf("details failed: %v", err)
		}
		if assetType != "property" || governmentID != "PROP123" {
			t.Errorf("unexpected details: %s %s", assetType, governmentID)
		}
		if verified {
			t.Error("new unit must not be verified")
		}

		uri, err := n.TokenURI(1)
		if err != nil || uri != "ipfs://QmExample" {
			t.Errorf("expected token uri, got %q (%v)", uri, err)
		}
	})

	t.Run("AlreadyExists", func(t *testing.T) {
		n := ledger.NewNFT()
		if err := n.Mint(admin, addr1, 0); err != nil {
			t.Fatalf("first mint failed: %v", err)
		}
		if err := n.Mint(admin, addr1, 0); !errors.Is(err, ledger.ErrAlreadyExists) {
			t.Errorf("expected ErrAlreadyExists, got %v", err)
		}
		if n.TokenCount() != 1 {
			t.Errorf("expected 1 unit, got %d", n.TokenCount())
		}
	})

	t.Run("ZeroRecipient", func(t *testing.T) {
		n := ledger.NewNFT()
		if err := n.Mint(admin, ledger.ZeroAddress, 0); !errors.Is(err, ledger.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("EmitsEvent", func(t *testing.T) {
		sink := &captureSink{}
		n := ledger.NewNFT(ledger.WithNFTEvents(sink))
		if err := n.Mint(admin, addr1, 3); err != nil {
			t.Fatalf("mint failed: %v", err)
		}
		if len(sink.events) != 1 || sink.events[0].Type != ledger.EventUnitMinted {
			t.Fatalf("expected Minted event, got %v", sink.types())
		}
		if sink.events[0].Attributes["owner"] != string(addr1) {
			t.Errorf("unexpected attributes: %v", sink.events[0].Attributes)
		}
	})
}

func TestNFTOwnerOfUnminted(t *testing.T) {
	n := ledger.NewNFT()
	if _, err := n.OwnerOf(5); !errors.Is(err, ledger.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestNFTVerify(t *testing.T) {
	t.Run("SetsOwnFlag", func(t *testing.T) {
		n := ledger.NewNFT()
		n.MintAsset(admin, addr1, 1, "property", "PROP123", "")

		if err := n.VerifyAsset(admin, 1); err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		_, _, verified, _ := n.AssetDetails(1)
		if !verified {
			t.Error("unit should be verified")
		}
		// Idempotent.
		if err := n.VerifyAsset(admin, 1); err != nil {
			t.Errorf("re-verify should be a no-op: %v", err)
		}
	})

	t.Run("Unminted", func(t *testing.T) {
		n := ledger.NewNFT()
		if err := n.VerifyAsset(admin, 999); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DelegatesToRegistry", func(t *testing.T) {
		r := ledger.NewRegistry(admin)
		id, _ := r.RegisterAsset(addr1, validParams())
		n := ledger.NewNFT(ledger.WithNFTRegistry(r))
		n.MintAsset(admin, addr1, id, "property", "GOV-001", "")

		if n.IsVerified(id) {
			t.Error("unverified registry asset reported verified")
		}
		if err := r.VerifyAsset(admin, id); err != nil {
			t.Fatalf("verify failed: %v", err)
		}
		if !n.IsVerified(id) {
			t.Error("registry verification not reflected")
		}
		_, _, verified, _ := n.AssetDetails(id)
		if !verified {
			t.Error("details should report registry verification")
		}
	})
}

func TestNFTTransferFrom(t *testing.T) {
	t.Run("OwnerTransfers", func(t *testing.T) {
		n := ledger.NewNFT()
		n.Mint(admin, addr1, 0)

		if err := n.TransferFrom(addr1, addr1, addr2, 0); err != nil {
			t.Fatalf("transfer failed: %v", err)
		}
		owner, _ := n.OwnerOf(0)
		if owner != addr2 {
			t.Errorf("expected owner %s, got %s", addr2, owner)
		}
	})

	t.Run("StrangerRejected", func(t *testing.T) {
		n := ledger.NewNFT()
		n.Mint(admin, addr1, 0)

		if err := n.TransferFrom(addr3, addr1, addr2, 0); !errors.Is(err, ledger.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
		owner, _ := n.OwnerOf(0)
		if owner != addr1 {
			t.Error("failed transfer must not change ownership")
		}
	})

	t.Run("FromMismatch", func(t *testing.T) {
		n := ledger.NewNFT()
		n.Mint(admin, addr1, 0)

		if err := n.TransferFrom(addr1, addr2, addr3, 0); !errors.Is(err, ledger.ErrUnauthorized) {
			t.Errorf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("ApprovedTransfers", func(t *testing.T) {
		n := ledger.NewNFT()
		n.Mint(admin, addr1, 0)

		if err := n.Approve(addr1, addr2, 0); err != nil {
			t.Fatalf("approve failed: %v", err)
		}
		if err := n.TransferFrom(addr2, addr1, addr3, 0); err != nil {
			t.Fatalf("approved transfer failed: %v", err)
		}
		owner, _ := n.OwnerOf(0)
		if owner != addr3 {
			t.Errorf("expected owner %s, got %s", addr3, owner)
		}
		// Approval cleared: addr2 cannot move it again.
		if err := n.TransferFrom(addr2, addr3, addr1, 0); !errors.Is(err, ledger.ErrUnauthorized) {
			t.Errorf("expected cleared approval, got %v", err)
		}
	})

	t.Run("OperatorTransfers", func(t *testing.T) {
		n := ledger.NewNFT()
		n.Mint(admin, addr1, 0)
		n.Mint(admin, addr1, 1)

		if err := n.SetApprovalForAll(addr1, addr2, true); err != nil {
			t.Fatalf("setApprovalForAll failed: %v", err)
		}
		if err := n.TransferFrom(addr2, addr1, addr3, 0); err != nil {
			t.Fatalf("operator transfer failed: %v", err)
		}
		if err := n.TransferFrom(addr2, addr1, addr3, 1); err != nil {
			t.Fatalf("operator transfer failed: %v", err)
		}

		if err := n.SetApprovalForAll(addr1, addr2, false); err != nil {
			t.Fatalf("revoke failed: %v", err)
		}
	})

	t.Run("ZeroRecipient", func(t *testing.T) {
		n := ledger.NewNFT()
		n.Mint(admin, addr1, 0)
		if err := n.TransferFrom(addr1, addr1, ledger.ZeroAddress, 0); !errors.Is(err, ledger.ErrValidation) {
			t.Errorf("expected ErrValidation, got %v", err)
		}
	})

	t.Run("Unminted", func(t *testing.T) {
		n := ledger.NewNFT()
		if err := n.TransferFrom(addr1, addr1, addr2, 9); !errors.Is(err, ledger.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestNFTSingleOwnerInvariant(t *testing.T) {
	n := ledger.NewNFT()
	holders := []ledger.Address{addr1, addr2, addr3}
	n.Mint(admin, addr1, 0)
	n.Mint(admin, addr2, 1)

	moves := []struct {
		caller, from, to ledger.Address
		id               ledger.AssetID
	}{
		{addr1, addr1, addr2, 0},
		{addr2, addr2, addr3, 1},
		{addr2, addr2, addr1, 0},
		{addr1, addr2, addr3, 0}, // fails: from mismatch
	}
	for _, m := range moves {
		_ = n.TransferFrom(m.caller, m.from, m.to, m.id)

		for _, id := range []ledger.AssetID{0, 1} {
			owner, err := n.OwnerOf(id)
			if err != nil {
				t.Fatalf("ownerOf(%d) failed: %v", id, err)
			}
			count := 0
			for _, h := range holders {
				for _, held := range n.AssetsOf(h) {
					if held == id {
						count++
					}
				}
			}
			if count != 1 {
				t.Fatalf("asset %d indexed under %d owners", id, count)
			}
			found := false
			for _, held := range n.AssetsOf(owner) {
				if held == id {
					found = true
				}
			}
			if !found {
				t.Fatalf("asset %d missing from owner index of %s", id, owner)
			}
		}
	}
}

func TestNFTAssetsOfIndex(t *testing.T) {
	n := ledger.NewNFT()
	n.Mint(admin, addr1, 2)
	n.Mint(admin, addr1, 0)
	n.Mint(admin, addr2, 1)

	got := n.AssetsOf(addr1)
	if len(got) != 2 || got[0] != 0 || got[1] != 2 {
		t.Errorf("expected [0 2], got %v", got)
	}
	if n.TokenCount() != 3 {
		t.Errorf("expected 3 units, got %d", n.TokenCount())
	}

	n.TransferFrom(addr1, addr1, addr2, 2)
	got = n.AssetsOf(addr2)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected [1 2], got %v", got)
	}
}
