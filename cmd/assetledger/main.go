package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	run := func(fn func([]string) error) {
		if err := fn(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	switch command {
	case "serve":
		run(serve)
	case "register":
		run(register)
	case "verify":
		run(verify)
	case "transfer":
		run(transferOwnership)
	case "asset":
		run(asset)
	case "assets":
		run(assets)
	case "mint":
		run(mint)
	case "send":
		run(send)
	case "burn":
		run(burn)
	case "approve":
		run(approve)
	case "balance":
		run(balance)
	case "supply":
		run(supply)
	case "nft-mint":
		run(nftMint)
	case "nft-transfer":
		run(nftTransfer)
	case "nft-owner":
		run(nftOwner)
	case "activity":
		run(activity)
	case "export":
		run(export)
	case "contracts":
		run(contracts)
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("assetledger version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`assetledger - asset tokenization ledger

Usage:
  assetledger <command> [options]

Server:
  serve         Run the ledger HTTP API

Assets:
  register      Register a new asset
  verify        Mark an asset as verified
  transfer      Transfer asset ownership
  asset         Show one asset record
  assets        List assets held by an address

Tokens:
  mint          Issue tokens against a verified asset
  send          Transfer tokens to another address
  burn          Destroy tokens from the caller's balance
  approve       Grant a spending allowance
  balance       Show an address's token balance
  supply        Show total token supply

Ownership units:
  nft-mint      Mint the ownership unit for an asset
  nft-transfer  Move an ownership unit
  nft-owner     Show the holder and details of a unit

Activity:
  activity      Show the recorded ledger activity
  export        Export activity as JSONL or CSV

Tooling:
  contracts     Emit the Solidity contract sources
  help          Show this help message
  version       Show version information

Examples:
  # Start a server backed by SQLite
  assetledger serve --listen :8080 --db ledger.db --admin 0x...aa

  # Register and verify an asset
  assetledger register --caller 0x...01 --name "Lakehouse" --type property --gov GOV-001
  assetledger verify --caller 0x...aa --id 0

  # Issue tokens once verified
  assetledger mint --caller 0x...aa --to 0x...01 --id 0 --amount 100000000000000000000

The server address is taken from --addr or ASSETLEDGER_ADDR; the caller
address from --caller or ASSETLEDGER_CALLER.

For command-specific help, run:
  assetledger <command> --help`)
}
