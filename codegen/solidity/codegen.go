package solidity

import (
	"fmt"
	"strings"
)

// Generate renders a contract model to Solidity source.
func Generate(c *Contract) string {
	g := &generator{contract: c}
	return g.generate()
}

// GenerateAll renders every asset contract into one deployable file.
func GenerateAll() string {
	var b strings.Builder
	b.WriteString(header())
	for i, c := range []*Contract{AssetRegistry(), AssetNFT(), AssetToken()} {
		if i > 0 {
			b.WriteString("\n")
		}
		g := &generator{contract: c}
		g.writeContract(&b)
	}
	return b.String()
}

type generator struct {
	contract *Contract
}

func header() string {
	return "// SPDX-License-Identifier: MIT\npragma solidity ^0.8.20;\n\n"
}

func (g *generator) generate() string {
	var b strings.Builder
	b.WriteString(header())
	g.writeContract(&b)
	return b.String()
}

func (g *generator) writeContract(b *strings.Builder) {
	c := g.contract

	fmt.Fprintf(b, "/// @title %s\n", c.Name)
	if c.Notice != "" {
		fmt.Fprintf(b, "/// @notice %s\n", c.Notice)
	}
	fmt.Fprintf(b, "contract %s {\n", c.Name)

	b.WriteString("    // ============ State ============\n\n")
	for _, f := range c.Fields {
		visibility := "internal"
		if f.Public {
			visibility = "public"
		}
		fmt.Fprintf(b, "    %s %s %s;\n", toSolidityType(f.Type), visibility, f.Name)
	}
	b.WriteString("\n")

	if len(c.Events) > 0 {
		b.WriteString("    // ============ Events ============\n\n")
		for _, ev := range c.Events {
			fmt.Fprintf(b, "    event %s(%s);\n", ev.Name, formatParams(ev.Params, true))
		}
		b.WriteString("\n")
	}

	if c.Ctor != nil {
		b.WriteString("    // ============ Constructor ============\n\n")
		fmt.Fprintf(b, "    constructor(%s) {\n", formatParams(c.Ctor.Params, false))
		for _, line := range c.Ctor.Body {
			fmt.Fprintf(b, "        %s\n", line)
		}
		b.WriteString("    }\n\n")
	}

	b.WriteString("    // ============ Functions ============\n\n")
	for _, fn := range c.Funcs {
		g.writeFunction(b, fn)
	}

	b.WriteString("}\n")
}

func (g *generator) writeFunction(b *strings.Builder, fn Function) {
	mutability := ""
	if fn.View {
		mutability = " view"
	}
	returns := ""
	if fn.Returns != "" {
		returns = fmt.Sprintf(" returns (%s)", fn.Returns)
	}
	fmt.Fprintf(b, "    function %s(%s) external%s%s {\n",
		fn.Name, formatParams(fn.Params, false), mutability, returns)

	for _, req := range fn.Requires {
		fmt.Fprintf(b, "        require(%s, \"%s\");\n", req.Cond, req.Msg)
	}
	if len(fn.Requires) > 0 && len(fn.Body) > 0 {
		b.WriteString("\n")
	}
	for _, line := range fn.Body {
		fmt.Fprintf(b, "        %s\n", line)
	}
	b.WriteString("    }\n\n")
}
