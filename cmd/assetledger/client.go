package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

const defaultServerAddr = "http://localhost:8080"

// serverAddr resolves the API base URL from the flag, the environment, or
// the default, in that order.
func serverAddr(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("ASSETLEDGER_ADDR"); env != "" {
		return env
	}
	return defaultServerAddr
}

// callerAddr resolves the caller address from the flag or the environment.
func callerAddr(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv("ASSETLEDGER_CALLER"); env != "" {
		return env, nil
	}
	return "", fmt.Errorf("caller address required (--caller or ASSETLEDGER_CALLER)")
}

type apiError struct {
	Message string `json:"error"`
	Kind    string `json:"kind"`
}

// postJSON sends a mutation to the API and decodes the response into out.
func postJSON(addr, path, caller string, body, out any) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, addr+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Caller", caller)
	return doRequest(req, out)
}

// getJSON fetches a read-only endpoint and decodes the response into out.
func getJSON(addr, path string, out any) error {
	req, err := http.NewRequest(http.MethodGet, addr+path, nil)
	if err != nil {
		return err
	}
	return doRequest(req, out)
}

func doRequest(req *http.Request, out any) error {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Message != "" {
			return fmt.Errorf("%s (%s)", apiErr.Message, apiErr.Kind)
		}
		return fmt.Errorf("server returned %s", resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
