package main

import (
	"flag"
	"fmt"
	"os"
)

func register(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	caller := fs.String("caller", "", "Caller address")
	name := fs.String("name", "", "Asset name")
	desc := fs.String("desc", "", "Asset description")
	assetType := fs.String("type", "", "Asset type (property, vehicle, ...)")
	gov := fs.String("gov", "", "Government-issued identifier")
	meta := fs.String("meta", "", "Metadata reference (e.g. ipfs://...)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: assetledger register [options]

Register a new asset. The caller becomes the initial owner.

Options:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	from, err := callerAddr(*caller)
	if err != nil {
		return err
	}

	var resp struct {
		AssetID uint64 `json:"assetId"`
	}
	err = postJSON(serverAddr(*addr), "/v1/assets", from, map[string]string{
		"name":         *name,
		"description":  *desc,
		"assetType":    *assetType,
		"governmentId": *gov,
		"metadataRef":  *meta,
	}, &resp)
	if err != nil {
		return err
	}
	fmt.Printf("registered asset %d\n", resp.AssetID)
	return nil
}

func verify(args []string) error {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	caller := fs.String("caller", "", "Caller address (admin or verifier)")
	id := fs.Uint64("id", 0, "Asset id")

	if err := fs.Parse(args); err != nil {
		return err
	}
	from, err := callerAddr(*caller)
	if err != nil {
		return err
	}

	err = postJSON(serverAddr(*addr), "/v1/assets/verify", from, map[string]uint64{"assetId": *id}, nil)
	if err != nil {
		return err
	}
	fmt.Printf("asset %d verified\n", *id)
	return nil
}

func transferOwnership(args []string) error {
	fs := flag.NewFlagSet("transfer", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	caller := fs.String("caller", "", "Caller address (current owner)")
	id := fs.Uint64("id", 0, "Asset id")
	to := fs.String("to", "", "New owner address")

	if err := fs.Parse(args); err != nil {
		return err
	}
	from, err := callerAddr(*caller)
	if err != nil {
		return err
	}

	err = postJSON(serverAddr(*addr), "/v1/assets/transfer", from, map[string]any{
		"assetId":  *id,
		"newOwner": *to,
	}, nil)
	if err != nil {
		return err
	}
	fmt.Printf("asset %d transferred to %s\n", *id, *to)
	return nil
}

type assetRecord struct {
	ID           uint64 `json:"assetId"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	AssetType    string `json:"assetType"`
	GovernmentID string `json:"governmentId"`
	MetadataRef  string `json:"metadataRef"`
	Owner        string `json:"owner"`
	Verified     bool   `json:"verified"`
}

func printAsset(a assetRecord) {
	status := "unverified"
	if a.Verified {
		status = "verified"
	}
	fmt.Printf("asset %d  %-12s  %s\n", a.ID, status, a.Name)
	fmt.Printf("  type:  %s\n", a.AssetType)
	fmt.Printf("  gov:   %s\n", a.GovernmentID)
	fmt.Printf("  owner: %s\n", a.Owner)
	if a.MetadataRef != "" {
		fmt.Printf("  meta:  %s\n", a.MetadataRef)
	}
	if a.Description != "" {
		fmt.Printf("  %s\n", a.Description)
	}
}

func asset(args []string) error {
	fs := flag.NewFlagSet("asset", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	id := fs.Uint64("id", 0, "Asset id")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var a assetRecord
	if err := getJSON(serverAddr(*addr), fmt.Sprintf("/v1/assets/%d", *id), &a); err != nil {
		return err
	}
	printAsset(a)
	return nil
}

func assets(args []string) error {
	fs := flag.NewFlagSet("assets", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	owner := fs.String("owner", "", "Owner address")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *owner == "" {
		return fmt.Errorf("owner address required")
	}

	var resp struct {
		Assets []assetRecord `json:"assets"`
	}
	if err := getJSON(serverAddr(*addr), "/v1/assets?owner="+*owner, &resp); err != nil {
		return err
	}
	if len(resp.Assets) == 0 {
		fmt.Println("no assets")
		return nil
	}
	for _, a := range resp.Assets {
		printAsset(a)
	}
	return nil
}
