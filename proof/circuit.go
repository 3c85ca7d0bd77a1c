// Package proof generates Groth16 proofs that ledger state transitions
// conserve value. Balances before and after a transition are public; the
// moved amount stays private, so an auditor can check conservation without
// learning transaction sizes.
package proof

import (
	"github.com/consensys/gnark/frontend"
)

// TransferCircuit proves that a balance transfer conserves value: the
// sender's decrease equals the receiver's increase, and the sender held at
// least the moved amount.
type TransferCircuit struct {
	FromBefore frontend.Variable `gnark:",public"`
	ToBefore   frontend.Variable `gnark:",public"`
	FromAfter  frontend.Variable `gnark:",public"`
	ToAfter    frontend.Variable `gnark:",public"`

	Amount frontend.Variable
}

// Define declares the conservation constraints.
func (c *TransferCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(api.Add(c.FromAfter, c.Amount), c.FromBefore)
	api.AssertIsEqual(c.ToAfter, api.Add(c.ToBefore, c.Amount))
	api.AssertIsLessOrEqual(c.Amount, c.FromBefore)
	return nil
}

// MintCircuit proves that an issuance grows supply and the recipient's
// balance by the same amount.
type MintCircuit struct {
	SupplyBefore frontend.Variable `gnark:",public"`
	SupplyAfter  frontend.Variable `gnark:",public"`
	ToBefore     frontend.Variable `gnark:",public"`
	ToAfter      frontend.Variable `gnark:",public"`

	Amount frontend.Variable
}

// Define declares the issuance constraints.
func (c *MintCircuit) Define(api frontend.API) error {
	api.AssertIsEqual(c.SupplyAfter, api.Add(c.SupplyBefore, c.Amount))
	api.AssertIsEqual(c.ToAfter, api.Add(c.ToBefore, c.Amount))
	return nil
}
