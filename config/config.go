package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Config is the client configuration consumed by the CLI.
type Config struct {
	NodeURL         string  `toml:"NodeURL"`
	InternalNodeURL string  `toml:"InternalNodeURL"`
	KeystorePath    string  `toml:"KeystorePath"`
	DefaultNameTTL  uint64  `toml:"DefaultNameTTL"`
	PreclaimFee     uint64  `toml:"PreclaimFee"`
	ClaimFee        uint64  `toml:"ClaimFee"`
	UpdateFee       uint64  `toml:"UpdateFee"`
	TransferFee     uint64  `toml:"TransferFee"`
	RevokeFee       uint64  `toml:"RevokeFee"`
	RequestRate     float64 `toml:"RequestRate"`
}

// Load reads the configuration from path, creating a default file when none
// exists. Unknown keys fail loudly rather than being silently ignored.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("config file %s contains unknown keys: %s", path, strings.Join(keys, ", "))
	}

	applyDefaults(cfg, path)
	return cfg, nil
}

func applyDefaults(cfg *Config, path string) {
	if strings.TrimSpace(cfg.NodeURL) == "" {
		cfg.NodeURL = "http://localhost:3013"
	}
	if strings.TrimSpace(cfg.InternalNodeURL) == "" {
		cfg.InternalNodeURL = cfg.NodeURL
	}
	if strings.TrimSpace(cfg.KeystorePath) == "" {
		cfg.KeystorePath = defaultKeystorePath(path)
	}
	if cfg.DefaultNameTTL == 0 {
		cfg.DefaultNameTTL = 50
	}
	if cfg.PreclaimFee == 0 {
		cfg.PreclaimFee = 1
	}
	if cfg.ClaimFee == 0 {
		cfg.ClaimFee = 1
	}
	if cfg.UpdateFee == 0 {
		cfg.UpdateFee = 1
	}
	if cfg.TransferFee == 0 {
		cfg.TransferFee = 1
	}
	if cfg.RevokeFee == 0 {
		cfg.RevokeFee = 1
	}
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := &Config{}
	applyDefaults(cfg, path)
	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}

func defaultKeystorePath(configPath string) string {
	return filepath.Join(filepath.Dir(configPath), "wallet.key")
}
