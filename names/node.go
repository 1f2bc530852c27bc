package names

import (
	"context"
	"encoding/json"

	"namechain/codec"
)

// NameRecord is a registry entry for a claimed name. Pointers are classified
// at the gateway boundary.
type NameRecord struct {
	NameTTL  uint64
	Pointers map[codec.PointerKind]string
	Raw      json.RawMessage
}

// CommitmentReply carries the registry-issued commitment for a
// (domain, salt) pair. Commitment is empty when the response lacked one.
type CommitmentReply struct {
	Commitment string
	Raw        json.RawMessage
}

// TxReply is the node's answer to a transaction build or submission
// request. Tx holds the unsigned transaction encoding when the endpoint
// returns one; NameHash echoes the name identifier on the endpoints that use
// it as their success marker.
type TxReply struct {
	TxHash   string
	Tx       string
	NameHash string
	Raw      json.RawMessage
}

// PreclaimTx is the payload for the commitment phase.
type PreclaimTx struct {
	Commitment string `json:"commitment"`
	Fee        uint64 `json:"fee"`
	Account    string `json:"account"`
}

// ClaimTx reveals the domain and salt, redeeming the earlier commitment.
type ClaimTx struct {
	Account  string `json:"account"`
	Name     string `json:"name"`
	NameSalt uint64 `json:"name_salt"`
	Fee      uint64 `json:"fee"`
}

// UpdateTx replaces the pointer mapping of a claimed name.
type UpdateTx struct {
	NameHash string `json:"name_hash"`
	NameTTL  uint64 `json:"name_ttl"`
	TTL      uint64 `json:"ttl"`
	Pointers string `json:"pointers"`
	Fee      uint64 `json:"fee"`
}

// TransferTx hands ownership of a claimed name to a recipient.
type TransferTx struct {
	NameHash  string `json:"name_hash"`
	Recipient string `json:"recipient_pubkey"`
	Fee       uint64 `json:"fee"`
}

// RevokeTx permanently releases a claimed name.
type RevokeTx struct {
	NameHash string `json:"name_hash"`
	Fee      uint64 `json:"fee"`
}

// NodeClient is the node gateway contract the state machine drives. All
// calls are synchronous; blocking is bounded only by the supplied context.
// LookupName reports an absent entry as ErrNameNotFound.
type NodeClient interface {
	LookupName(ctx context.Context, domain string) (*NameRecord, error)
	ChainHeight(ctx context.Context) (uint64, error)
	Commitment(ctx context.Context, domain string, salt uint64) (*CommitmentReply, error)
	SubmitPreclaim(ctx context.Context, tx PreclaimTx) (*TxReply, error)
	SubmitClaim(ctx context.Context, tx ClaimTx) (*TxReply, error)
	SubmitUpdate(ctx context.Context, tx UpdateTx) (*TxReply, error)
	SubmitTransfer(ctx context.Context, tx TransferTx) (*TxReply, error)
	SubmitRevoke(ctx context.Context, tx RevokeTx) (*TxReply, error)
	BroadcastSigned(ctx context.Context, signed []byte) error
	WaitForNextBlock(ctx context.Context) (uint64, error)
}

// Signer turns an unsigned transaction encoding into a broadcastable signed
// envelope.
type Signer interface {
	Address() string
	SignTransaction(tx string) (signed []byte, signature string, err error)
}
