// Package solidity generates the on-chain Solidity counterparts of the
// ledger: a registry, a fungible token, and a non-fungible token contract.
// The contracts are described by a declarative model and rendered to source,
// so the Go ledger and the chain deployment stay in lockstep.
package solidity

import (
	"fmt"
	"regexp"
	"strings"
)

// Contract describes one Solidity contract to render.
type Contract struct {
	Name   string
	Notice string
	Fields []Field
	Events []Event
	Ctor   *Constructor
	Funcs  []Function
}

// Field is a contract-level state variable. Types use Go map notation
// (map[address]uint256) and are converted to Solidity mappings on render.
type Field struct {
	Name   string
	Type   string
	Public bool
}

// Param is a function or event parameter.
type Param struct {
	Name    string
	Type    string
	Indexed bool
}

// Event is an emitted log entry.
type Event struct {
	Name   string
	Params []Param
}

// Require is a guard rendered as a require statement.
type Require struct {
	Cond string
	Msg  string
}

// Constructor holds the deployment parameters and body.
type Constructor struct {
	Params []Param
	Body   []string
}

// Function is one external or view entry point. Body lines are emitted
// verbatim after the guards.
type Function struct {
	Name     string
	Params   []Param
	Returns  string
	View     bool
	Requires []Require
	Body     []string
}

var mapRe = regexp.MustCompile(`^map\[([^\]]+)\](.+)$`)

// toSolidityType converts Go map notation to a Solidity mapping type,
// recursively for nested maps. Scalar types pass through.
func toSolidityType(t string) string {
	m := mapRe.FindStringSubmatch(t)
	if len(m) != 3 {
		return t
	}
	return fmt.Sprintf("mapping(%s => %s)", m[1], toSolidityType(m[2]))
}

func formatParams(params []Param, withIndexed bool) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		typ := toSolidityType(p.Type)
		if withIndexed && p.Indexed {
			typ += " indexed"
		}
		parts = append(parts, typ+" "+p.Name)
	}
	return strings.Join(parts, ", ")
}
