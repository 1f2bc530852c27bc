package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"namechain/config"
	"namechain/crypto"
	"namechain/gateway"
	"namechain/names"
	"namechain/observability/logging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	logging.Setup("namechain-cli", os.Getenv("NAMECHAIN_ENV"))

	fs := flag.NewFlagSet("namechain-cli", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var configPath, nodeURL string
	fs.StringVar(&configPath, "config", "./namechain.toml", "path to the client configuration file")
	fs.StringVar(&nodeURL, "node", "", "node base URL, overrides the configuration file")
	fs.Usage = func() { fmt.Fprintln(stderr, usage()) }
	if err := fs.Parse(args); err != nil {
		return 1
	}
	rest := fs.Args()
	if len(rest) < 1 {
		fmt.Fprintln(stderr, usage())
		return 1
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error: load config: %v\n", err)
		return 1
	}
	if trimmed := strings.TrimSpace(nodeURL); trimmed != "" {
		cfg.NodeURL = trimmed
		cfg.InternalNodeURL = trimmed
	}

	switch rest[0] {
	case "generate-key":
		return runGenerateKey(rest[1:], cfg, stdout, stderr)
	case "status":
		return runStatus(rest[1:], cfg, stdout, stderr)
	case "preclaim":
		return runPreclaim(rest[1:], cfg, stdout, stderr)
	case "claim":
		return runClaim(rest[1:], cfg, stdout, stderr)
	case "full-claim":
		return runFullClaim(rest[1:], cfg, stdout, stderr)
	case "update":
		return runUpdate(rest[1:], cfg, stdout, stderr)
	case "transfer":
		return runTransfer(rest[1:], cfg, stdout, stderr)
	case "revoke":
		return runRevoke(rest[1:], cfg, stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprintln(stdout, usage())
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", rest[0])
		fmt.Fprintln(stderr, usage())
		return 1
	}
}

func usage() string {
	return strings.TrimSpace(`Usage:
  namechain-cli [--config path] [--node url] <command> [flags]

Commands:
  generate-key              Generate a signing key and save it to the keystore
  status --name <domain>    Query the registry status of a name
  preclaim --name <domain>  Submit the blinded commitment for a name
  claim --name <domain> --salt <n> --height <n>
                            Reveal and claim a name preclaimed earlier
  full-claim --name <domain>
                            Check availability, preclaim, then claim (blocking)
  update --name <domain> --target <id>
                            Point a claimed name at an account or oracle
  transfer --name <domain> --recipient <ak_...>
                            Transfer ownership of a claimed name
  revoke --name <domain>    Revoke a claimed name
`)
}

// newName wires a state machine with the gateway and keystore-backed signer
// from the configuration.
func newName(cfg *config.Config, domain string, opts ...names.NameOption) (*names.Name, error) {
	node, err := gateway.New(cfg.NodeURL,
		gateway.WithInternalURL(cfg.InternalNodeURL),
		gateway.WithRateLimit(cfg.RequestRate),
	)
	if err != nil {
		return nil, err
	}
	key, err := loadKey(cfg)
	if err != nil {
		return nil, err
	}
	return names.New(domain, node, key, opts...)
}

func loadKey(cfg *config.Config) (*crypto.PrivateKey, error) {
	passphrase, err := passphrase("Keystore passphrase: ")
	if err != nil {
		return nil, err
	}
	return crypto.LoadFromKeystore(cfg.KeystorePath, passphrase)
}

// passphrase reads the keystore passphrase from NAMECHAIN_PASSPHRASE when
// set, otherwise prompts on the terminal without echo.
func passphrase(prompt string) (string, error) {
	if pass, ok := os.LookupEnv("NAMECHAIN_PASSPHRASE"); ok {
		return pass, nil
	}
	fmt.Fprint(os.Stderr, prompt)
	raw, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("read passphrase: %w", err)
	}
	return string(raw), nil
}
