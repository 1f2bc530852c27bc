// Package names drives the commit-reveal lifecycle of a registry name:
// availability check, preclaim, block-height-gated claim, and post-claim
// pointer updates, ownership transfer, and revocation.
//
// A Name is a client-side cache of last-known registry state. It is driven
// sequentially by one logical caller; concurrent use of the same instance
// must be serialized externally.
package names

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"

	"namechain/codec"
)

// Name is the claim state machine for a single domain. All remote calls go
// through the NodeClient and Signer supplied at construction.
type Name struct {
	domain string
	node   NodeClient
	signer Signer

	status   Status
	preclaim *preclaimRecord
	nameTTL  uint64
	pointers map[codec.PointerKind]string
}

// preclaimRecord is the evidence of a successful preclaim. Claim demands it
// as a value-level precondition.
type preclaimRecord struct {
	Height     uint64
	Salt       uint64
	Commitment string
}

// NameOption customises construction of a Name.
type NameOption func(*Name)

// WithPreclaimRecord seeds the preclaim evidence from an earlier session so
// a claim can resume in a fresh process. Height and salt must be the values
// reported by the preclaim that submitted the commitment; the status starts
// as PRECLAIMED.
func WithPreclaimRecord(height, salt uint64) NameOption {
	return func(n *Name) {
		n.preclaim = &preclaimRecord{Height: height, Salt: salt}
		n.status = StatusPreclaimed
	}
}

// New validates the domain and binds the state machine to its
// collaborators. The initial status is UNKNOWN until refreshed.
func New(domain string, node NodeClient, signer Signer, opts ...NameOption) (*Name, error) {
	if err := codec.ValidateName(domain); err != nil {
		return nil, err
	}
	if node == nil {
		return nil, errors.New("names: nil node client")
	}
	if signer == nil {
		return nil, errors.New("names: nil signer")
	}
	name := &Name{
		domain:   domain,
		node:     node,
		signer:   signer,
		status:   StatusUnknown,
		pointers: map[codec.PointerKind]string{},
	}
	for _, opt := range opts {
		opt(name)
	}
	return name, nil
}

// Domain returns the domain this instance was constructed for.
func (n *Name) Domain() string { return n.domain }

// Status returns the last locally observed lifecycle state.
func (n *Name) Status() Status { return n.status }

// NameHash returns the canonical nm_ identifier for the domain.
func (n *Name) NameHash() string { return codec.EncodeName(n.domain) }

// NameTTL returns the validity horizon reported by the registry, 0 until
// claimed.
func (n *Name) NameTTL() uint64 { return n.nameTTL }

// Pointers returns a copy of the last known pointer mapping.
func (n *Name) Pointers() map[codec.PointerKind]string {
	out := make(map[codec.PointerKind]string, len(n.pointers))
	for k, v := range n.pointers {
		out[k] = v
	}
	return out
}

// PreclaimedBlockHeight reports the chain height recorded by a successful
// preclaim.
func (n *Name) PreclaimedBlockHeight() (uint64, bool) {
	if n.preclaim == nil {
		return 0, false
	}
	return n.preclaim.Height, true
}

// PreclaimSalt reports the salt chosen by a successful preclaim.
func (n *Name) PreclaimSalt() (uint64, bool) {
	if n.preclaim == nil {
		return 0, false
	}
	return n.preclaim.Salt, true
}

// RefreshStatus re-derives the local status from the registry. A NotFound
// answer marks the name AVAILABLE only from UNKNOWN: an in-flight preclaim
// or claim is never downgraded by a stale remote view.
func (n *Name) RefreshStatus(ctx context.Context) error {
	record, err := n.node.LookupName(ctx, n.domain)
	if err != nil {
		if errors.Is(err, ErrNameNotFound) {
			if n.status == StatusUnknown {
				n.status = StatusAvailable
			}
			return nil
		}
		return err
	}
	n.status = StatusClaimed
	n.nameTTL = record.NameTTL
	n.pointers = make(map[codec.PointerKind]string, len(record.Pointers))
	for k, v := range record.Pointers {
		n.pointers[k] = v
	}
	return nil
}

// IsAvailable refreshes the status and reports whether the name can be
// preclaimed.
func (n *Name) IsAvailable(ctx context.Context) (bool, error) {
	if err := n.RefreshStatus(ctx); err != nil {
		return false, err
	}
	return n.status == StatusAvailable, nil
}

// IsClaimed refreshes the status and reports whether the registry has an
// entry for the name.
func (n *Name) IsClaimed(ctx context.Context) (bool, error) {
	if err := n.RefreshStatus(ctx); err != nil {
		return false, err
	}
	return n.status == StatusClaimed, nil
}

// PreclaimOption customises a single preclaim call.
type PreclaimOption func(*preclaimOptions)

type preclaimOptions struct {
	salt    uint64
	hasSalt bool
}

// WithSalt pins the blinding salt instead of drawing a random one.
func WithSalt(salt uint64) PreclaimOption {
	return func(o *preclaimOptions) {
		o.salt = salt
		o.hasSalt = true
	}
}

// PreclaimResult reports the submitted commitment transaction and the salt
// that must be revealed by the claim.
type PreclaimResult struct {
	TxHash string
	Salt   uint64
}

// ClaimResult reports the submitted reveal transaction and its salt.
type ClaimResult struct {
	TxHash string
	Salt   uint64
}

// Preclaim submits the blinded commitment for the domain. On success the
// status becomes PRECLAIMED and the recorded block height gates the claim.
func (n *Name) Preclaim(ctx context.Context, fee uint64, opts ...PreclaimOption) (*PreclaimResult, error) {
	var po preclaimOptions
	for _, opt := range opts {
		opt(&po)
	}

	height, err := n.node.ChainHeight(ctx)
	if err != nil {
		return nil, err
	}
	salt := po.salt
	if !po.hasSalt {
		if salt, err = randomSalt(); err != nil {
			return nil, err
		}
	}

	reply, err := n.node.Commitment(ctx, n.domain, salt)
	if err != nil {
		return nil, err
	}
	if reply.Commitment == "" {
		return nil, newRegistryError(ErrPreclaimFailed, reply.Raw)
	}

	// The commitment request may have landed on a later block than the
	// first height read. Re-read and keep the larger value so the claim
	// gate never opens before the block the commitment observed.
	after, err := n.node.ChainHeight(ctx)
	if err != nil {
		return nil, err
	}
	if after > height {
		height = after
	}

	tx, err := n.node.SubmitPreclaim(ctx, PreclaimTx{
		Commitment: reply.Commitment,
		Fee:        fee,
		Account:    n.signer.Address(),
	})
	if err != nil {
		return nil, err
	}
	signed, _, err := n.signer.SignTransaction(tx.Tx)
	if err != nil {
		return nil, err
	}
	if err := n.node.BroadcastSigned(ctx, signed); err != nil {
		return nil, err
	}

	n.preclaim = &preclaimRecord{Height: height, Salt: salt, Commitment: reply.Commitment}
	n.status = StatusPreclaimed
	return &PreclaimResult{TxHash: tx.TxHash, Salt: salt}, nil
}

// Claim reveals the domain and salt. It requires a prior preclaim on this
// instance and at least one block between commitment and reveal; revealing
// in the commitment's own block would let an observer copy the salt and
// front-run the claim.
func (n *Name) Claim(ctx context.Context, fee uint64) (*ClaimResult, error) {
	if n.preclaim == nil {
		return nil, ErrMissingPreclaim
	}

	height, err := n.node.ChainHeight(ctx)
	if err != nil {
		return nil, err
	}
	if height <= n.preclaim.Height {
		return nil, fmt.Errorf("%w: preclaimed at height %d, chain at %d", ErrTooEarlyClaim, n.preclaim.Height, height)
	}

	tx, err := n.node.SubmitClaim(ctx, ClaimTx{
		Account:  n.signer.Address(),
		Name:     codec.EncodeName(n.domain),
		NameSalt: n.preclaim.Salt,
		Fee:      fee,
	})
	if err != nil {
		return nil, err
	}
	signed, _, err := n.signer.SignTransaction(tx.Tx)
	if err != nil {
		return nil, err
	}
	if err := n.node.BroadcastSigned(ctx, signed); err != nil {
		return nil, err
	}

	n.status = StatusClaimed
	return &ClaimResult{TxHash: tx.TxHash, Salt: n.preclaim.Salt}, nil
}

// ClaimBlocking claims the name, and on a too-early reveal waits for the
// next block boundary and retries exactly once. Cancellation is the
// caller's context.
func (n *Name) ClaimBlocking(ctx context.Context, fee uint64) (*ClaimResult, error) {
	result, err := n.Claim(ctx, fee)
	if err == nil || !errors.Is(err, ErrTooEarlyClaim) {
		return result, err
	}
	if _, err := n.node.WaitForNextBlock(ctx); err != nil {
		return nil, err
	}
	return n.Claim(ctx, fee)
}

// FullClaimBlocking runs the whole sequence: availability check, preclaim,
// blocking claim.
func (n *Name) FullClaimBlocking(ctx context.Context, preclaimFee, claimFee uint64) (*ClaimResult, error) {
	available, err := n.IsAvailable(ctx)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotAvailable, n.domain, n.status)
	}
	if _, err := n.Preclaim(ctx, preclaimFee); err != nil {
		return nil, err
	}
	return n.ClaimBlocking(ctx, claimFee)
}

// UpdatePointers points the claimed name at target. Exactly one pointer is
// set per call; the previous mapping is replaced, not merged. The name must
// be claimed, and the target must resolve to a registered identifier.
func (n *Name) UpdatePointers(ctx context.Context, target Target, ttl, fee uint64) error {
	if n.status != StatusClaimed {
		return fmt.Errorf("%w: cannot update %s while %s", ErrNotClaimed, n.domain, n.status)
	}

	id, err := target.PointerTarget()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	pointer, err := codec.ParsePointer(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTarget, err)
	}
	encoded, err := json.Marshal(map[string]string{pointer.Kind.Key(): pointer.Target})
	if err != nil {
		return err
	}

	reply, err := n.node.SubmitUpdate(ctx, UpdateTx{
		NameHash: n.NameHash(),
		NameTTL:  n.nameTTL,
		TTL:      ttl,
		Pointers: string(encoded),
		Fee:      fee,
	})
	if err != nil {
		return err
	}
	if reply.NameHash == "" {
		return newRegistryError(ErrUpdateFailed, reply.Raw)
	}
	n.pointers = map[codec.PointerKind]string{pointer.Kind: pointer.Target}
	return nil
}

// Transfer hands ownership of the claimed name to recipient. Local status
// becomes TRANSFERRED after the registry acknowledges the transaction.
func (n *Name) Transfer(ctx context.Context, recipient string, fee uint64) error {
	if n.status != StatusClaimed {
		return fmt.Errorf("%w: cannot transfer %s while %s", ErrNotClaimed, n.domain, n.status)
	}
	if err := codec.ValidateAddress(recipient); err != nil {
		return err
	}

	reply, err := n.node.SubmitTransfer(ctx, TransferTx{
		NameHash:  n.NameHash(),
		Recipient: recipient,
		Fee:       fee,
	})
	if err != nil {
		return err
	}
	if reply.NameHash == "" {
		return newRegistryError(ErrTransferFailed, reply.Raw)
	}
	n.status = StatusTransferred
	return nil
}

// Revoke permanently releases the claimed name. Local status becomes
// REVOKED after the registry acknowledges the transaction; on rejection the
// status is left unchanged.
func (n *Name) Revoke(ctx context.Context, fee uint64) error {
	if n.status != StatusClaimed {
		return fmt.Errorf("%w: cannot revoke %s while %s", ErrNotClaimed, n.domain, n.status)
	}

	reply, err := n.node.SubmitRevoke(ctx, RevokeTx{NameHash: n.NameHash(), Fee: fee})
	if err != nil {
		return err
	}
	if reply.NameHash == "" {
		return newRegistryError(ErrRevokeFailed, reply.Raw)
	}
	n.status = StatusRevoked
	return nil
}

// randomSalt draws a uniformly random 64-bit blinding salt.
func randomSalt() (uint64, error) {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("names: draw salt: %w", err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}
