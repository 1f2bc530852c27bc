package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"namechain/config"
	"namechain/crypto"
)

func runGenerateKey(args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate-key", flag.ContinueOnError)
	fs.SetOutput(stderr)
	force := fs.Bool("force", false, "overwrite an existing keystore file")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stderr, "Error: unexpected positional arguments")
		return 1
	}

	if _, err := os.Stat(cfg.KeystorePath); err == nil && !*force {
		fmt.Fprintf(stderr, "Error: keystore %s already exists; pass --force to replace it\n", cfg.KeystorePath)
		return 1
	}

	pass, err := passphrase("New keystore passphrase: ")
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	key, err := crypto.GeneratePrivateKey()
	if err != nil {
		fmt.Fprintf(stderr, "Error: generate key: %v\n", err)
		return 1
	}
	if err := crypto.SaveToKeystore(cfg.KeystorePath, key, pass); err != nil {
		fmt.Fprintf(stderr, "Error: save keystore: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "generated key %s\nsaved to %s\n", key.Address(), cfg.KeystorePath)
	return 0
}
