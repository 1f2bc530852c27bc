package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"namechain/crypto"
)

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	configPath := filepath.Join(t.TempDir(), "namechain.toml")

	code := run([]string{"--config", configPath, "frobnicate"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Unknown command") {
		t.Fatalf("expected usage on stderr, got %s", stderr.String())
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	configPath := filepath.Join(t.TempDir(), "namechain.toml")

	code := run([]string{"--config", configPath, "help"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), "full-claim") {
		t.Fatalf("expected command list, got %s", stdout.String())
	}
}

func TestRunWithoutCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run(nil, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Fatalf("expected usage on stderr, got %s", stderr.String())
	}
}

func TestClaimResumesFromFlags(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/chain/height":
			_, _ = w.Write([]byte(`{"height":101}`))
		case "/tx/name/claim":
			_, _ = w.Write([]byte(`{"tx":"tx_claim","tx_hash":"th_claim"}`))
		case "/tx":
			_, _ = w.Write([]byte(`{}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	dir := t.TempDir()
	keystorePath := filepath.Join(dir, "wallet.key")
	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	if err := crypto.SaveToKeystore(keystorePath, key, "pass"); err != nil {
		t.Fatalf("save keystore: %v", err)
	}
	configPath := filepath.Join(dir, "namechain.toml")
	contents := fmt.Sprintf("NodeURL = %q\nKeystorePath = %q\n", server.URL, keystorePath)
	if err := os.WriteFile(configPath, []byte(contents), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("NAMECHAIN_PASSPHRASE", "pass")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--config", configPath, "claim",
		"--name", "alice.test", "--salt", "42", "--height", "100"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d: %s", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "claimed alice.test") {
		t.Fatalf("expected claim confirmation, got %s", stdout.String())
	}
}

func TestClaimRequiresPreclaimEvidence(t *testing.T) {
	var stdout, stderr bytes.Buffer
	configPath := filepath.Join(t.TempDir(), "namechain.toml")

	code := run([]string{"--config", configPath, "claim", "--name", "alice.test"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "--salt") {
		t.Fatalf("expected flag hint, got %s", stderr.String())
	}
}

func TestStatusRequiresName(t *testing.T) {
	var stdout, stderr bytes.Buffer
	configPath := filepath.Join(t.TempDir(), "namechain.toml")

	code := run([]string{"--config", configPath, "status"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "--name") {
		t.Fatalf("expected flag hint, got %s", stderr.String())
	}
}
