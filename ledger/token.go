package ledger

import (
	"fmt"
	"sync"

	"github.com/holiman/uint256"
)

// VerificationSource answers whether an asset is verified. The registry is
// the canonical implementation; the token ledger consults it instead of
// keeping its own copy of the flag.
type VerificationSource interface {
	IsVerified(id AssetID) bool
}

// Token is the fungible unit ledger. Balances are global to the token;
// minting is gated per asset on the verification source, and issuance per
// asset is tracked so the registry linkage stays observable.
type Token struct {
	mu sync.Mutex

	name     string
	symbol   string
	decimals uint8

	source VerificationSource

	balances    map[Address]*uint256.Int
	allowances  map[Address]map[Address]*uint256.Int
	totalSupply *uint256.Int
	issued      map[AssetID]*uint256.Int

	events EventSink
}

// TokenOption configures a Token.
type TokenOption func(*Token)

// WithTokenEvents attaches an event sink to the token ledger.
func WithTokenEvents(sink EventSink) TokenOption {
	return func(t *Token) { t.events = sink }
}

// WithTokenName overrides the default name and symbol.
func WithTokenName(name, symbol string) TokenOption {
	return func(t *Token) {
		t.name = name
		t.symbol = symbol
	}
}

// NewToken creates an empty fungible ledger gated on the given verification
// source.
func NewToken(source VerificationSource, opts ...TokenOption) *Token {
	t := &Token{
		name:        "Asset Token",
		symbol:      "AST",
		decimals:    Decimals,
		source:      source,
		balances:    make(map[Address]*uint256.Int),
		allowances:  make(map[Address]map[Address]*uint256.Int),
		totalSupply: new(uint256.Int),
		issued:      make(map[AssetID]*uint256.Int),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the token name.
func (t *Token) Name() string { return t.name }

// Symbol returns the token symbol.
func (t *Token) Symbol() string { return t.symbol }

// Decimals returns the fixed-point scale of amounts.
func (t *Token) Decimals() uint8 { return t.decimals }

// MintTokens issues amount base units to the recipient against a verified
// asset. Fails with ErrPrecondition while the asset is unverified.
func (t *Token) MintTokens(caller, to Address, id AssetID, amount *uint256.Int) error {
	if to.IsZero() {
		return fmt.Errorf("%w: recipient address is zero", ErrValidation)
	}
	if amount == nil || amount.IsZero() {
		return fmt.Errorf("%w: amount is zero", ErrValidation)
	}
	if t.source == nil || !t.source.IsVerified(id) {
		return fmt.Errorf("%w: asset must be verified", ErrPrecondition)
	}

	t.mu.Lock()
	supply, overflow := new(uint256.Int).AddOverflow(t.totalSupply, amount)
	if overflow {
		t.mu.Unlock()
		return fmt.Errorf("%w: total supply overflow", ErrValidation)
	}
	t.totalSupply = supply
	t.credit(to, amount)
	t.addIssued(id, amount)
	t.mu.Unlock()

	emit(t.events, EventTokensMinted, caller, map[string]string{
		"assetId": formatAssetID(id),
		"to":      string(to),
		"amount":  amount.Dec(),
	})
	return nil
}

// Transfer moves amount base units from the caller to the recipient.
func (t *Token) Transfer(caller, to Address, amount *uint256.Int) error {
	if to.IsZero() {
		return fmt.Errorf("%w: recipient address is zero", ErrValidation)
	}
	if amount == nil || amount.IsZero() {
		return fmt.Errorf("%w: amount is zero", ErrValidation)
	}

	t.mu.Lock()
	if err := t.debit(caller, amount); err != nil {
		t.mu.Unlock()
		return err
	}
	t.credit(to, amount)
	t.mu.Unlock()

	emit(t.events, EventTransfer, caller, map[string]string{
		"from":   string(caller),
		"to":     string(to),
		"amount": amount.Dec(),
	})
	return nil
}

// Approve sets the allowance a spender may transfer on the caller's behalf.
func (t *Token) Approve(caller, spender Address, amount *uint256.Int) error {
	if spender.IsZero() {
		return fmt.Errorf("%w: spender address is zero", ErrValidation)
	}
	if amount == nil {
		amount = new(uint256.Int)
	}

	t.mu.Lock()
	byOwner, ok := t.allowances[caller]
	if !ok {
		byOwner = make(map[Address]*uint256.Int)
		t.allowances[caller] = byOwner
	}
	byOwner[spender] = new(uint256.Int).Set(amount)
	t.mu.Unlock()

	emit(t.events, EventApproval, caller, map[string]string{
		"owner":   string(caller),
		"spender": string(spender),
		"amount":  amount.Dec(),
	})
	return nil
}

// Allowance returns the remaining amount a spender may transfer for an owner.
func (t *Token) Allowance(owner, spender Address) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if a, ok := t.allowances[owner][spender]; ok {
		return new(uint256.Int).Set(a)
	}
	return new(uint256.Int)
}

// TransferFrom moves amount base units from one account to another, spending
// the caller's allowance.
func (t *Token) TransferFrom(caller, from, to Address, amount *uint256.Int) error {
	if to.IsZero() {
		return fmt.Errorf("%w: recipient address is zero", ErrValidation)
	}
	if amount == nil || amount.IsZero() {
		return fmt.Errorf("%w: amount is zero", ErrValidation)
	}

	t.mu.Lock()
	allowed, ok := t.allowances[from][caller]
	if !ok || allowed.Lt(amount) {
		t.mu.Unlock()
		return fmt.Errorf("%w: insufficient allowance for %s", ErrUnauthorized, caller)
	}
	if err := t.debit(from, amount); err != nil {
		t.mu.Unlock()
		return err
	}
	allowed.Sub(allowed, amount)
	t.credit(to, amount)
	t.mu.Unlock()

	emit(t.events, EventTransfer, caller, map[string]string{
		"from":   string(from),
		"to":     string(to),
		"amount": amount.Dec(),
	})
	return nil
}

// BurnTokens destroys amount base units from the caller's balance, reducing
// total supply by the same amount.
func (t *Token) BurnTokens(caller Address, amount *uint256.Int) error {
	if amount == nil || amount.IsZero() {
		return fmt.Errorf("%w: amount is zero", ErrValidation)
	}

	t.mu.Lock()
	if err := t.debit(caller, amount); err != nil {
		t.mu.Unlock()
		return err
	}
	t.totalSupply = new(uint256.Int).Sub(t.totalSupply, amount)
	t.mu.Unlock()

	emit(t.events, EventTokensBurned, caller, map[string]string{
		"from":   string(caller),
		"amount": amount.Dec(),
	})
	return nil
}

// BalanceOf returns the balance of an address in base units.
func (t *Token) BalanceOf(addr Address) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if b, ok := t.balances[addr]; ok {
		return new(uint256.Int).Set(b)
	}
	return new(uint256.Int)
}

// TotalSupply returns the total base units in circulation.
func (t *Token) TotalSupply() *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return new(uint256.Int).Set(t.totalSupply)
}

// IssuedFor returns the cumulative base units minted against an asset.
func (t *Token) IssuedFor(id AssetID) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	if v, ok := t.issued[id]; ok {
		return new(uint256.Int).Set(v)
	}
	return new(uint256.Int)
}

// credit adds to an address balance. Caller holds the lock.
func (t *Token) credit(addr Address, amount *uint256.Int) {
	b, ok := t.balances[addr]
	if !ok {
		b = new(uint256.Int)
		t.balances[addr] = b
	}
	b.Add(b, amount)
}

// debit subtracts from an address balance. Caller holds the lock.
func (t *Token) debit(addr Address, amount *uint256.Int) error {
	b, ok := t.balances[addr]
	if !ok || b.Lt(amount) {
		return fmt.Errorf("%w: %s holds less than %s", ErrInsufficientBalance, addr, amount.Dec())
	}
	b.Sub(b, amount)
	return nil
}

// addIssued accumulates per-asset issuance. Caller holds the lock.
func (t *Token) addIssued(id AssetID, amount *uint256.Int) {
	v, ok := t.issued[id]
	if !ok {
		v = new(uint256.Int)
		t.issued[id] = v
	}
	v.Add(v, amount)
}
