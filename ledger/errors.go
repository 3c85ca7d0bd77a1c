package ledger

import "errors"

// Error kinds surfaced by ledger operations. Callers inspect them with
// errors.Is; every failure wraps exactly one kind.
var (
	// ErrValidation marks malformed or out-of-bound input: empty or
	// over-length strings, zero addresses, zero amounts.
	ErrValidation = errors.New("ledger: invalid input")

	// ErrNotFound marks a reference to an unknown asset id or unminted unit.
	ErrNotFound = errors.New("ledger: not found")

	// ErrUnauthorized marks a caller lacking the right to perform the
	// mutation: not the owner, not approved, not a verifier.
	ErrUnauthorized = errors.New("ledger: unauthorized")

	// ErrPrecondition marks a valid request the current ledger state
	// forbids, such as minting against an unverified asset.
	ErrPrecondition = errors.New("ledger: precondition failed")

	// ErrInsufficientBalance marks a transfer or burn exceeding the
	// available balance.
	ErrInsufficientBalance = errors.New("ledger: insufficient balance")

	// ErrAlreadyExists marks an attempt to mint a non-fungible unit that
	// already has an owner.
	ErrAlreadyExists = errors.New("ledger: already exists")
)
