package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/assetlab-xyz/go-assetledger/codegen/solidity"
)

func contracts(args []string) error {
	fs := flag.NewFlagSet("contracts", flag.ExitOnError)
	output := fs.String("output", "", "Output file (default stdout)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: assetledger contracts [options]

Emit the Solidity sources for the AssetRegistry, AssetNFT, and AssetToken
contracts.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	sol := solidity.GenerateAll()
	if *output == "" {
		fmt.Print(sol)
		return nil
	}
	if err := os.WriteFile(*output, []byte(sol), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", *output, err)
	}
	fmt.Printf("wrote %d bytes to %s\n", len(sol), *output)
	return nil
}
