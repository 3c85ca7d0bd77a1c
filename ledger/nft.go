package ledger

import (
	"fmt"
	"sort"
	"sync"
)

// UnitDetails is the read-only detail tuple carried by a non-fungible unit.
type UnitDetails struct {
	AssetType    string
	GovernmentID string
	TokenURI     string
}

// NFT tracks at most one non-fungible ownership unit per asset id.
//
// When constructed with WithNFTRegistry, verification state is read from the
// registry; otherwise the NFT keeps its own monotonic verified flag, matching
// a standalone deployment where the token gates on the NFT directly.
type NFT struct {
	mu sync.Mutex

	name   string
	symbol string

	registry VerificationSource

	owners    map[AssetID]Address
	approved  map[AssetID]Address
	operators map[Address]map[Address]bool
	byOwner   map[Address]map[AssetID]struct{}
	details   map[AssetID]UnitDetails
	verified  map[AssetID]bool

	events EventSink
}

// NFTOption configures an NFT ledger.
type NFTOption func(*NFT)

// WithNFTEvents attaches an event sink to the NFT ledger.
func WithNFTEvents(sink EventSink) NFTOption {
	return func(n *NFT) { n.events = sink }
}

// WithNFTRegistry delegates verification state to the registry.
func WithNFTRegistry(source VerificationSource) NFTOption {
	return func(n *NFT) { n.registry = source }
}

// NewNFT creates an empty non-fungible ledger.
func NewNFT(opts ...NFTOption) *NFT {
	n := &NFT{
		name:      "Asset NFT",
		symbol:    "ANFT",
		owners:    make(map[AssetID]Address),
		approved:  make(map[AssetID]Address),
		operators: make(map[Address]map[Address]bool),
		byOwner:   make(map[Address]map[AssetID]struct{}),
		details:   make(map[AssetID]UnitDetails),
		verified:  make(map[AssetID]bool),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Name returns the collection name.
func (n *NFT) Name() string { return n.name }

// Symbol returns the collection symbol.
func (n *NFT) Symbol() string { return n.symbol }

// Mint creates the unit for an asset id and assigns it to the recipient.
// Fails with ErrAlreadyExists if the unit already has an owner.
func (n *NFT) Mint(caller, to Address, id AssetID) error {
	return n.MintAsset(caller, to, id, "", "", "")
}

// MintAsset mints the unit for an asset id with its detail tuple attached.
func (n *NFT) MintAsset(caller, to Address, id AssetID, assetType, governmentID, tokenURI string) error {
	if to.IsZero() {
		return fmt.Errorf("%w: recipient address is zero", ErrValidation)
	}
	if len(assetType) > MaxAssetTypeLen {
		return fmt.Errorf("%w: asset type exceeds %d characters", ErrValidation, MaxAssetTypeLen)
	}
	if len(governmentID) > MaxGovernmentIDLen {
		return fmt.Errorf("%w: government id exceeds %d characters", ErrValidation, MaxGovernmentIDLen)
	}
	if len(tokenURI) > MaxMetadataRefLen {
		return fmt.Errorf("%w: token uri exceeds %d characters", ErrValidation, MaxMetadataRefLen)
	}

	n.mu.Lock()
	if _, ok := n.owners[id]; ok {
		n.mu.Unlock()
		return fmt.Errorf("%w: unit for asset %d", ErrAlreadyExists, id)
	}
	n.owners[id] = to
	n.details[id] = UnitDetails{
		AssetType:    assetType,
		GovernmentID: governmentID,
		TokenURI:     tokenURI,
	}
	n.indexOwner(to, id)
	n.mu.Unlock()

	emit(n.events, EventUnitMinted, caller, map[string]string{
		"assetId": formatAssetID(id),
		"owner":   string(to),
	})
	return nil
}

// VerifyAsset sets the unit's own verified flag. It applies to standalone
// deployments; when a registry is attached the registry's flag is the one
// reads report. Fails with ErrNotFound for an unminted unit; verifying an
// already verified unit is a no-op.
func (n *NFT) VerifyAsset(caller Address, id AssetID) error {
	n.mu.Lock()
	if _, ok := n.owners[id]; !ok {
		n.mu.Unlock()
		return fmt.Errorf("%w: token does not exist", ErrNotFound)
	}
	if n.verified[id] {
		n.mu.Unlock()
		return nil
	}
	n.verified[id] = true
	n.mu.Unlock()

	emit(n.events, EventAssetVerified, caller, map[string]string{
		"assetId": formatAssetID(id),
	})
	return nil
}

// IsVerified reports the unit's verification state, delegating to the
// registry when one is attached. It satisfies VerificationSource so a token
// ledger can gate on the NFT directly.
func (n *NFT) IsVerified(id AssetID) bool {
	if n.registry != nil {
		return n.registry.IsVerified(id)
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.verified[id]
}

// OwnerOf returns the current holder of the unit for an asset id.
func (n *NFT) OwnerOf(id AssetID) (Address, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	owner, ok := n.owners[id]
	if !ok {
		return "", fmt.Errorf("%w: token does not exist", ErrNotFound)
	}
	return owner, nil
}

// TokenURI returns the metadata reference of a minted unit.
func (n *NFT) TokenURI(id AssetID) (string, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if _, ok := n.owners[id]; !ok {
		return "", fmt.Errorf("%w: token does not exist", ErrNotFound)
	}
	return n.details[id].TokenURI, nil
}

// AssetDetails returns the detail tuple (assetType, governmentID, verified)
// of a minted unit.
func (n *NFT) AssetDetails(id AssetID) (string, string, bool, error) {
	n.mu.Lock()
	_, ok := n.owners[id]
	d := n.details[id]
	own := n.verified[id]
	n.mu.Unlock()
	if !ok {
		return "", "", false, fmt.Errorf("%w: token does not exist", ErrNotFound)
	}
	verified := own
	if n.registry != nil {
		verified = n.registry.IsVerified(id)
	}
	return d.AssetType, d.GovernmentID, verified, nil
}

// Approve authorizes an address to transfer a single unit. Only the owner or
// one of the owner's operators may approve.
func (n *NFT) Approve(caller, to Address, id AssetID) error {
	n.mu.Lock()
	owner, ok := n.owners[id]
	if !ok {
		n.mu.Unlock()
		return fmt.Errorf("%w: token does not exist", ErrNotFound)
	}
	if caller != owner && !n.operators[owner][caller] {
		n.mu.Unlock()
		return fmt.Errorf("%w: %s cannot approve asset %d", ErrUnauthorized, caller, id)
	}
	if to.IsZero() {
		delete(n.approved, id)
	} else {
		n.approved[id] = to
	}
	n.mu.Unlock()

	emit(n.events, EventApproval, caller, map[string]string{
		"assetId":  formatAssetID(id),
		"approved": string(to),
	})
	return nil
}

// SetApprovalForAll authorizes or revokes an operator for all of the
// caller's units.
func (n *NFT) SetApprovalForAll(caller, operator Address, approved bool) error {
	if operator.IsZero() {
		return fmt.Errorf("%w: operator address is zero", ErrValidation)
	}

	n.mu.Lock()
	ops, ok := n.operators[caller]
	if !ok {
		ops = make(map[Address]bool)
		n.operators[caller] = ops
	}
	if approved {
		ops[operator] = true
	} else {
		delete(ops, operator)
	}
	n.mu.Unlock()

	emit(n.events, EventApprovalForAll, caller, map[string]string{
		"owner":    string(caller),
		"operator": string(operator),
		"approved": fmt.Sprintf("%t", approved),
	})
	return nil
}

// TransferFrom moves the unit for an asset id from one address to another.
// The caller must be the holder, the approved address, or an operator of the
// holder, and from must match the current holder. Any approval is cleared.
func (n *NFT) TransferFrom(caller, from, to Address, id AssetID) error {
	if to.IsZero() {
		return fmt.Errorf("%w: recipient address is zero", ErrValidation)
	}

	n.mu.Lock()
	owner, ok := n.owners[id]
	if !ok {
		n.mu.Unlock()
		return fmt.Errorf("%w: token does not exist", ErrNotFound)
	}
	if owner != from {
		n.mu.Unlock()
		return fmt.Errorf("%w: %s does not hold asset %d", ErrUnauthorized, from, id)
	}
	if caller != owner && n.approved[id] != caller && !n.operators[owner][caller] {
		n.mu.Unlock()
		return fmt.Errorf("%w: %s cannot transfer asset %d", ErrUnauthorized, caller, id)
	}
	delete(n.approved, id)
	n.unindexOwner(from, id)
	n.owners[id] = to
	n.indexOwner(to, id)
	n.mu.Unlock()

	emit(n.events, EventTransfer, caller, map[string]string{
		"assetId": formatAssetID(id),
		"from":    string(from),
		"to":      string(to),
	})
	return nil
}

// TokenCount returns the number of minted units.
func (n *NFT) TokenCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.owners)
}

// AssetsOf returns the asset ids whose units an address holds, ascending.
// The index is maintained on mint and transfer rather than by scanning.
func (n *NFT) AssetsOf(owner Address) []AssetID {
	n.mu.Lock()
	defer n.mu.Unlock()
	ids := make([]AssetID, 0, len(n.byOwner[owner]))
	for id := range n.byOwner[owner] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (n *NFT) indexOwner(owner Address, id AssetID) {
	set, ok := n.byOwner[owner]
	if !ok {
		set = make(map[AssetID]struct{})
		n.byOwner[owner] = set
	}
	set[id] = struct{}{}
}

func (n *NFT) unindexOwner(owner Address, id AssetID) {
	if set, ok := n.byOwner[owner]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(n.byOwner, owner)
		}
	}
}
