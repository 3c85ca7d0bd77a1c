package main

import (
	"flag"
	"fmt"
	"os"
)

func mint(args []string) error {
	fs := flag.NewFlagSet("mint", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	caller := fs.String("caller", "", "Caller address")
	to := fs.String("to", "", "Recipient address")
	id := fs.Uint64("id", 0, "Backing asset id (must be verified)")
	amount := fs.String("amount", "", "Amount in base units (18 decimals)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: assetledger mint [options]

Issue tokens against a verified asset.

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
		Balance string `json:"balance"`
	}
	err = postJSON(serverAddr(*addr), "/v1/tokens/mint", from, map[string]any{
		"to":      *to,
		"assetId": *id,
		"amount":  *amount,
	}, &resp)
	if err != nil {
		return err
	}
	fmt.Printf("minted; %s now holds %s\n", *to, resp.Balance)
	return nil
}

func send(args []string) error {
	fs := flag.NewFlagSet("send", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	caller := fs.String("caller", "", "Caller address")
	to := fs.String("to", "", "Recipient address")
	amount := fs.String("amount", "", "Amount in base units")

	if err := fs.Parse(args); err != nil {
		return err
	}
	from, err := callerAddr(*caller)
	if err != nil {
		return err
	}

	var resp struct {
		Balance string `json:"balance"`
	}
	err = postJSON(serverAddr(*addr), "/v1/tokens/transfer", from, map[string]string{
		"to":     *to,
		"amount": *amount,
	}, &resp)
	if err != nil {
		return err
	}
	fmt.Printf("sent; remaining balance %s\n", resp.Balance)
	return nil
}

func burn(args []string) error {
	fs := flag.NewFlagSet("burn", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	caller := fs.String("caller", "", "Caller address")
	amount := fs.String("amount", "", "Amount in base units")

	if err := fs.Parse(args); err != nil {
		return err
	}
	from, err := callerAddr(*caller)
	if err != nil {
		return err
	}

	var resp struct {
		Balance string `json:"balance"`
	}
	err = postJSON(serverAddr(*addr), "/v1/tokens/burn", from, map[string]string{
		"amount": *amount,
	}, &resp)
	if err != nil {
		return err
	}
	fmt.Printf("burned; remaining balance %s\n", resp.Balance)
	return nil
}

func approve(args []string) error {
	fs := flag.NewFlagSet("approve", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	caller := fs.String("caller", "", "Caller address")
	spender := fs.String("spender", "", "Spender address")
	amount := fs.String("amount", "", "Allowance in base units")

	if err := fs.Parse(args); err != nil {
		return err
	}
	from, err := callerAddr(*caller)
	if err != nil {
		return err
	}

	var resp struct {
		Allowance string `json:"allowance"`
	}
	err = postJSON(serverAddr(*addr), "/v1/tokens/approve", from, map[string]string{
		"spender": *spender,
		"amount":  *amount,
	}, &resp)
	if err != nil {
		return err
	}
	fmt.Printf("approved; %s may spend %s\n", *spender, resp.Allowance)
	return nil
}

func balance(args []string) error {
	fs := flag.NewFlagSet("balance", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")
	address := fs.String("address", "", "Holder address")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *address == "" {
		return fmt.Errorf("holder address required")
	}

	var resp struct {
		Balance string `json:"balance"`
	}
	if err := getJSON(serverAddr(*addr), "/v1/tokens/balance?address="+*address, &resp); err != nil {
		return err
	}
	fmt.Println(resp.Balance)
	return nil
}

func supply(args []string) error {
	fs := flag.NewFlagSet("supply", flag.ExitOnError)
	addr := fs.String("addr", "", "Server address")

	if err := fs.Parse(args); err != nil {
		return err
	}

	var resp struct {
		TotalSupply string `json:"totalSupply"`
	}
	if err := getJSON(serverAddr(*addr), "/v1/tokens/supply", &resp); err != nil {
		return err
	}
	fmt.Println(resp.TotalSupply)
	return nil
}
