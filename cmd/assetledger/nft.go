package main

import (
	"flag"
	"fmt"
)

func nftMint(args []string) error {
	fs := flag.NewFlagSet("nft-mint", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	caller := fs.String("caller", "", "Caller address")
	to := fs.String("to", "", "Recipient address")
	id := fs.Uint64("id", 0, "Asset id")
	assetType := fs.String("type", "", "Asset type")
	gov := fs.String("gov", "", "Government-issued identifier")
	uri := fs.String("uri", "", "Token URI (e.g. ipfs://...)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	from, err := callerAddr(*caller)
	if err != nil {
		return err
	}

	err = postJSON(serverAddr(*addr), "/v1/nft/mint", from, map[string]any{
		"to":           *to,
		"assetId":      *id,
		"assetType":    *assetType,
		"governmentId": *gov,
		"tokenUri":     *uri,
	}, nil)
	if err != nil {
		return err
	}
	fmt.Printf("minted unit for asset %d to %s\n", *id, *to)
	return nil
}

func nftTransfer(args []string) error {
	fs := flag.NewFlagSet("nft-transfer", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	caller := fs.String("caller", "", "Caller address (holder, approved, or operator)")
	fromAddr := fs.String("from", "", "Current holder address")
	to := fs.String("to", "", "Recipient address")
	id := fs.Uint64("id", 0, "Asset id")

	if err := fs.Parse(args); err != nil {
		return err
	}
	from, err := callerAddr(*caller)
	if err != nil {
		return err
	}

	err = postJSON(serverAddr(*addr), "/v1/nft/transfer", from, map[string]any{
		"from":    *fromAddr,
		"to":      *to,
		"assetId": *id,
	}, nil)
	if err != nil {
		return err
	}
	fmt.Printf("unit for asset %d transferred to %s\n", *id, *to)
	return nil
}

func nftOwner(args []string) error {
	fs := flag.NewFlagSet("nft-owner", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	id := fs.Uint64("id", 0, "Asset id")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var resp struct {
		Owner        string `json:"owner"`
		AssetType    string `json:"assetType"`
		GovernmentID string `json:"governmentId"`
		Verified     bool   `json:"verified"`
	}
	if err := getJSON(serverAddr(*addr), fmt.Sprintf("/v1/nft/owner?assetId=%d", *id), &resp); err != nil {
		return err
	}

	status := "unverified"
	if resp.Verified {
		status = "verified"
	}
	fmt.Printf("asset %d  %s\n", *id, status)
	fmt.Printf("  holder: %s\n", resp.Owner)
	fmt.Printf("  type:   %s\n", resp.AssetType)
	fmt.Printf("  gov:    %s\n", resp.GovernmentID)
	return nil
}
