package ledger

import (
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// Registry owns the canonical record of every registered asset. It assigns
// sequential ids, tracks ownership, and is the single source of truth for
// verification state.
type Registry struct {
	mu sync.Mutex

	admin     Address
	verifiers map[Address]bool

	assets  map[AssetID]*Asset
	byOwner map[Address]map[AssetID]struct{}
	nextID  AssetID

	events EventSink
	now    func() time.Time
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithRegistryEvents attaches an event sink to the registry.
func WithRegistryEvents(sink EventSink) RegistryOption {
	return func(r *Registry) { r.events = sink }
}

// NewRegistry creates an empty registry. The admin address may verify assets
// and authorize further verifiers.
func NewRegistry(admin Address, opts ...RegistryOption) *Registry {
	r := &Registry{
		admin:     admin,
		verifiers: make(map[Address]bool),
		assets:    make(map[AssetID]*Asset),
		byOwner:   make(map[Address]map[AssetID]struct{}),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RegisterAssetParams carries the descriptive fields of a new asset.
type RegisterAssetParams struct {
	Name         string
	Description  string
	AssetType    string
	GovernmentID string
	MetadataRef  string // content address of off-chain metadata; may be empty
}

func (p RegisterAssetParams) validate() error {
	switch {
	case p.Name == "" || len(p.Name) > MaxNameLen:
		return fmt.Errorf("%w: name must be 1-%d characters", ErrValidation, MaxNameLen)
	case p.Description == "" || len(p.Description) > MaxDescriptionLen:
		return fmt.Errorf("%w: description must be 1-%d characters", ErrValidation, MaxDescriptionLen)
	case p.AssetType == "" || len(p.AssetType) > MaxAssetTypeLen:
		return fmt.Errorf("%w: asset type must be 1-%d characters", ErrValidation, MaxAssetTypeLen)
	case p.GovernmentID == "" || len(p.GovernmentID) > MaxGovernmentIDLen:
		return fmt.Errorf("%w: government id must be 1-%d characters", ErrValidation, MaxGovernmentIDLen)
	case len(p.MetadataRef) > MaxMetadataRefLen:
		return fmt.Errorf("%w: metadata ref exceeds %d characters", ErrValidation, MaxMetadataRefLen)
	}
	return nil
}

// RegisterAsset records a new asset owned by the caller and returns its id.
// Ids are strictly increasing and never reused. The asset starts unverified.
func (r *Registry) RegisterAsset(caller Address, p RegisterAssetParams) (AssetID, error) {
	if caller.IsZero() {
		return 0, fmt.Errorf("%w: caller address is zero", ErrValidation)
	}
	if err := p.validate(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	id := r.nextID
	r.nextID++
	a := &Asset{
		ID:           id,
		Name:         p.Name,
		Description:  p.Description,
		AssetType:    p.AssetType,
		GovernmentID: p.GovernmentID,
		MetadataRef:  p.MetadataRef,
		Owner:        caller,
		Verified:     false,
		RegisteredAt: r.now().UTC(),
	}
	r.assets[id] = a
	r.indexOwner(caller, id)
	r.mu.Unlock()

	emit(r.events, EventAssetRegistered, caller, map[string]string{
		"assetId": formatAssetID(id),
		"owner":   string(caller),
		"name":    p.Name,
	})
	return id, nil
}

// VerifyAsset marks an asset eligible for token issuance. Only the admin or
// an authorized verifier may call it. Verification is monotonic: verifying an
// already verified asset is a no-op.
func (r *Registry) VerifyAsset(caller Address, id AssetID) error {
	r.mu.Lock()
	a, ok := r.assets[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: asset %d", ErrNotFound, id)
	}
	if caller != r.admin && !r.verifiers[caller] {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s is not a verifier", ErrUnauthorized, caller)
	}
	if a.Verified {
		r.mu.Unlock()
		return nil
	}
	a.Verified = true
	r.mu.Unlock()

	emit(r.events, EventAssetVerified, caller, map[string]string{
		"assetId": formatAssetID(id),
	})
	return nil
}

// AddVerifier authorizes an address to verify assets. Admin only.
func (r *Registry) AddVerifier(caller, verifier Address) error {
	if verifier.IsZero() {
		return fmt.Errorf("%w: verifier address is zero", ErrValidation)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if caller != r.admin {
		return fmt.Errorf("%w: %s is not the admin", ErrUnauthorized, caller)
	}
	r.verifiers[verifier] = true
	return nil
}

// TransferOwnership moves an asset to a new owner. Only the current owner may
// transfer, and the new owner must be a non-zero address.
func (r *Registry) TransferOwnership(caller Address, id AssetID, newOwner Address) error {
	if newOwner.IsZero() {
		return fmt.Errorf("%w: new owner address is zero", ErrValidation)
	}

	r.mu.Lock()
	a, ok := r.assets[id]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("%w: asset %d", ErrNotFound, id)
	}
	if a.Owner != caller {
		r.mu.Unlock()
		return fmt.Errorf("%w: %s does not own asset %d", ErrUnauthorized, caller, id)
	}
	prev := a.Owner
	r.unindexOwner(prev, id)
	a.Owner = newOwner
	r.indexOwner(newOwner, id)
	r.mu.Unlock()

	emit(r.events, EventOwnershipTransferred, caller, map[string]string{
		"assetId": formatAssetID(id),
		"from":    string(prev),
		"to":      string(newOwner),
	})
	return nil
}

// GetAsset returns a copy of the asset record.
func (r *Registry) GetAsset(id AssetID) (Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	if !ok {
		return Asset{}, fmt.Errorf("%w: asset %d", ErrNotFound, id)
	}
	return *a, nil
}

// AssetsOf returns the ids owned by an address, ascending. The index is
// maintained incrementally on register and transfer, so this is not a scan.
func (r *Registry) AssetsOf(owner Address) []AssetID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]AssetID, 0, len(r.byOwner[owner]))
	for id := range r.byOwner[owner] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// AssetCount returns the number of registered assets.
func (r *Registry) AssetCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.assets)
}

// IsVerified reports whether an asset exists and has been verified.
// It satisfies VerificationSource for the token ledger.
func (r *Registry) IsVerified(id AssetID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.assets[id]
	return ok && a.Verified
}

func (r *Registry) indexOwner(owner Address, id AssetID) {
	set, ok := r.byOwner[owner]
	if !ok {
		set = make(map[AssetID]struct{})
		r.byOwner[owner] = set
	}
	set[id] = struct{}{}
}

func (r *Registry) unindexOwner(owner Address, id AssetID) {
	if set, ok := r.byOwner[owner]; ok {
		delete(set, id)
		if len(set) == 0 {
			delete(r.byOwner, owner)
		}
	}
}

func formatAssetID(id AssetID) string {
	return strconv.FormatUint(uint64(id), 10)
}
