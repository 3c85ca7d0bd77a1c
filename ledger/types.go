// Package ledger implements the asset lifecycle core: a registry of physical
// assets, a fungible token whose minting is gated on asset verification, and
// a non-fungible unit tracking one ownership token per asset.
//
// Every mutating operation is atomic: inputs are validated and preconditions
// checked before any state is touched, so a failed call leaves no partial
// writes. Amounts are 18-decimal fixed-point values held as uint256.
package ledger

import (
	"fmt"
	"strings"
	"time"

	"github.com/holiman/uint256"
)

// Address identifies an account, as attributed by the execution environment.
// The ledger performs no authentication of its own.
type Address string

// ZeroAddress is the null account. It is never a valid owner or recipient.
const ZeroAddress Address = "0x0000000000000000000000000000000000000000"

// IsZero reports whether the address is empty or the null account.
func (a Address) IsZero() bool {
	return a == "" || strings.EqualFold(string(a), string(ZeroAddress))
}

// AssetID identifies a registered asset. IDs are assigned sequentially from
// zero and never reused.
type AssetID uint64

// Decimals is the fixed-point scale of all fungible amounts.
const Decimals = 18

// Validation bounds for asset fields.
const (
	MaxNameLen         = 100
	MaxDescriptionLen  = 256
	MaxAssetTypeLen    = 50
	MaxGovernmentIDLen = 50
	MaxMetadataRefLen  = 100
)

// Asset is the canonical record of a registered physical asset.
type Asset struct {
	ID           AssetID
	Name         string
	Description  string
	AssetType    string
	GovernmentID string
	MetadataRef  string
	Owner        Address
	Verified     bool
	RegisteredAt time.Time
}

// Units returns n whole tokens in base units (n * 10^18).
func Units(n uint64) *uint256.Int {
	scale := new(uint256.Int).Exp(uint256.NewInt(10), uint256.NewInt(Decimals))
	return new(uint256.Int).Mul(uint256.NewInt(n), scale)
}

// ParseAmount parses a decimal string of base units.
func ParseAmount(s string) (*uint256.Int, error) {
	v, err := uint256.FromDecimal(s)
	if err != nil {
		return nil, fmt.Errorf("%w: amount %q: %v", ErrValidation, s, err)
	}
	return v, nil
}
