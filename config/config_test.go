package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namechain.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.FileExists(t, path)
	require.Equal(t, "http://localhost:3013", cfg.NodeURL)
	require.Equal(t, cfg.NodeURL, cfg.InternalNodeURL)
	require.Equal(t, filepath.Join(filepath.Dir(path), "wallet.key"), cfg.KeystorePath)
	require.Equal(t, uint64(50), cfg.DefaultNameTTL)
	require.Equal(t, uint64(1), cfg.PreclaimFee)
}

func TestLoadExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namechain.toml")
	contents := `
NodeURL = "https://node.example:3013"
InternalNodeURL = "https://node.example:3113"
KeystorePath = "/secrets/wallet.key"
ClaimFee = 7
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://node.example:3013", cfg.NodeURL)
	require.Equal(t, "https://node.example:3113", cfg.InternalNodeURL)
	require.Equal(t, "/secrets/wallet.key", cfg.KeystorePath)
	require.Equal(t, uint64(7), cfg.ClaimFee)
	// Unset fields still receive defaults.
	require.Equal(t, uint64(1), cfg.PreclaimFee)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "namechain.toml")
	require.NoError(t, os.WriteFile(path, []byte("NodeEndpoint = \"typo\"\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown keys")
}
