package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"namechain/config"
	"namechain/names"
	"namechain/oracle"
)

// claimWaitTimeout bounds the blocking wait for the commit-reveal window.
const claimWaitTimeout = 10 * time.Minute

func nameFlag(fs *flag.FlagSet) *string {
	return fs.String("name", "", "domain to operate on")
}

func parseNameArgs(cmd string, fs *flag.FlagSet, args []string, stderr io.Writer, domain *string) bool {
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		return false
	}
	if fs.NArg() > 0 {
		fmt.Fprintln(stderr, "Error: unexpected positional arguments")
		return false
	}
	if strings.TrimSpace(*domain) == "" {
		fmt.Fprintf(stderr, "Error: %s requires --name\n", cmd)
		return false
	}
	return true
}

func runStatus(args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	domain := nameFlag(fs)
	if !parseNameArgs("status", fs, args, stderr, domain) {
		return 1
	}
	name, err := newName(cfg, *domain)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := name.RefreshStatus(context.Background()); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "%s: %s", name.Domain(), name.Status())
	if name.Status() == names.StatusClaimed {
		fmt.Fprintf(stdout, " (ttl %d)", name.NameTTL())
		for kind, target := range name.Pointers() {
			fmt.Fprintf(stdout, "\n  %s -> %s", kind, target)
		}
	}
	fmt.Fprintln(stdout)
	return 0
}

func runPreclaim(args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("preclaim", flag.ContinueOnError)
	domain := nameFlag(fs)
	fee := fs.Uint64("fee", cfg.PreclaimFee, "preclaim transaction fee")
	if !parseNameArgs("preclaim", fs, args, stderr, domain) {
		return 1
	}
	name, err := newName(cfg, *domain)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	result, err := name.Preclaim(context.Background(), *fee)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	height, _ := name.PreclaimedBlockHeight()
	fmt.Fprintf(stdout, "preclaimed %s: tx %s salt %d height %d\n", name.Domain(), result.TxHash, result.Salt, height)
	fmt.Fprintf(stdout, "claim after the next block with: claim --name %s --salt %d --height %d\n", name.Domain(), result.Salt, height)
	return 0
}

func runClaim(args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("claim", flag.ContinueOnError)
	domain := nameFlag(fs)
	fee := fs.Uint64("fee", cfg.ClaimFee, "claim transaction fee")
	salt := fs.Uint64("salt", 0, "salt reported by preclaim")
	height := fs.Uint64("height", 0, "chain height reported by preclaim")
	if !parseNameArgs("claim", fs, args, stderr, domain) {
		return 1
	}
	provided := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { provided[f.Name] = true })
	if !provided["salt"] || !provided["height"] {
		fmt.Fprintln(stderr, "Error: claim requires --salt and --height from the earlier preclaim")
		return 1
	}
	name, err := newName(cfg, *domain, names.WithPreclaimRecord(*height, *salt))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	result, err := name.Claim(context.Background(), *fee)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "claimed %s: tx %s\n", name.Domain(), result.TxHash)
	return 0
}

func runFullClaim(args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("full-claim", flag.ContinueOnError)
	domain := nameFlag(fs)
	preclaimFee := fs.Uint64("preclaim-fee", cfg.PreclaimFee, "preclaim transaction fee")
	claimFee := fs.Uint64("claim-fee", cfg.ClaimFee, "claim transaction fee")
	if !parseNameArgs("full-claim", fs, args, stderr, domain) {
		return 1
	}
	name, err := newName(cfg, *domain)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	ctx, cancel := context.WithTimeout(context.Background(), claimWaitTimeout)
	defer cancel()
	result, err := name.FullClaimBlocking(ctx, *preclaimFee, *claimFee)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "claimed %s: tx %s\n", name.Domain(), result.TxHash)
	return 0
}

func runUpdate(args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	domain := nameFlag(fs)
	target := fs.String("target", "", "pointer target (ak_ account or ok_ oracle)")
	ttl := fs.Uint64("ttl", cfg.DefaultNameTTL, "new name TTL in blocks")
	fee := fs.Uint64("fee", cfg.UpdateFee, "update transaction fee")
	if !parseNameArgs("update", fs, args, stderr, domain) {
		return 1
	}
	trimmed := strings.TrimSpace(*target)
	if trimmed == "" {
		fmt.Fprintln(stderr, "Error: update requires --target")
		return 1
	}
	name, err := newName(cfg, *domain)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	ctx := context.Background()
	if err := name.RefreshStatus(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	var pointerTarget names.Target = names.Account(trimmed)
	if strings.HasPrefix(trimmed, "ok_") {
		pointerTarget = oracle.Oracle{ID: trimmed}
	}
	if err := name.UpdatePointers(ctx, pointerTarget, *ttl, *fee); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "updated %s -> %s\n", name.Domain(), trimmed)
	return 0
}

func runTransfer(args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("transfer", flag.ContinueOnError)
	domain := nameFlag(fs)
	recipient := fs.String("recipient", "", "ak_ identifier of the new owner")
	fee := fs.Uint64("fee", cfg.TransferFee, "transfer transaction fee")
	if !parseNameArgs("transfer", fs, args, stderr, domain) {
		return 1
	}
	trimmed := strings.TrimSpace(*recipient)
	if trimmed == "" {
		fmt.Fprintln(stderr, "Error: transfer requires --recipient")
		return 1
	}
	name, err := newName(cfg, *domain)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	ctx := context.Background()
	if err := name.RefreshStatus(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := name.Transfer(ctx, trimmed, *fee); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "transferred %s to %s\n", name.Domain(), trimmed)
	return 0
}

func runRevoke(args []string, cfg *config.Config, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("revoke", flag.ContinueOnError)
	domain := nameFlag(fs)
	fee := fs.Uint64("fee", cfg.RevokeFee, "revoke transaction fee")
	if !parseNameArgs("revoke", fs, args, stderr, domain) {
		return 1
	}
	name, err := newName(cfg, *domain)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	ctx := context.Background()
	if err := name.RefreshStatus(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if err := name.Revoke(ctx, *fee); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprintf(stdout, "revoked %s\n", name.Domain())
	return 0
}
