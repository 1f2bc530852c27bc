package crypto

import (
	"crypto/ecdsa"
	"crypto/rand"
	"encoding/json"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"namechain/codec"
)

// PrivateKey wraps a secp256k1 signing key. It implements the signer
// contract consumed by the name claim state machine.
type PrivateKey struct {
	*ecdsa.PrivateKey
}

// PublicKey wraps the public half of a signing key.
type PublicKey struct {
	*ecdsa.PublicKey
}

// GeneratePrivateKey creates a fresh signing key.
func GeneratePrivateKey() (*PrivateKey, error) {
	key, err := ecdsa.GenerateKey(ethcrypto.S256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key}, nil
}

// PrivateKeyFromBytes reconstructs a key from its raw byte representation.
func PrivateKeyFromBytes(b []byte) (*PrivateKey, error) {
	key, err := ethcrypto.ToECDSA(b)
	if err != nil {
		return nil, err
	}
	return &PrivateKey{key}, nil
}

// Bytes returns the raw byte representation of the private key.
func (k *PrivateKey) Bytes() []byte {
	return ethcrypto.FromECDSA(k.PrivateKey)
}

func (k *PrivateKey) PubKey() *PublicKey {
	return &PublicKey{&k.PrivateKey.PublicKey}
}

// Address renders the account identifier for the key.
func (k *PrivateKey) Address() string {
	return k.PubKey().Address()
}

// Address renders the ak_ identifier for the public key.
func (p *PublicKey) Address() string {
	return codec.Encode(codec.AccountPrefix, ethcrypto.CompressPubkey(p.PublicKey))
}

// SignedTx is the envelope broadcast to the node after signing.
type SignedTx struct {
	Tx        string `json:"tx"`
	Signature string `json:"signature"`
}

// SignTransaction signs the unsigned transaction encoding returned by the
// node and produces the broadcastable envelope together with the sg_
// signature.
func (k *PrivateKey) SignTransaction(tx string) ([]byte, string, error) {
	digest := ethcrypto.Keccak256([]byte(tx))
	sig, err := ethcrypto.Sign(digest, k.PrivateKey)
	if err != nil {
		return nil, "", fmt.Errorf("crypto: sign transaction: %w", err)
	}
	signature := codec.Encode(codec.SignaturePrefix, sig)
	envelope, err := json.Marshal(SignedTx{Tx: tx, Signature: signature})
	if err != nil {
		return nil, "", fmt.Errorf("crypto: encode signed tx: %w", err)
	}
	return envelope, signature, nil
}

// Verify checks a sg_ signature over tx against the public key.
func (p *PublicKey) Verify(tx, signature string) (bool, error) {
	sig, err := codec.Decode(codec.SignaturePrefix, signature)
	if err != nil {
		return false, err
	}
	if len(sig) != 65 {
		return false, fmt.Errorf("crypto: signature must be 65 bytes, got %d", len(sig))
	}
	digest := ethcrypto.Keccak256([]byte(tx))
	return ethcrypto.VerifySignature(ethcrypto.CompressPubkey(p.PublicKey), digest, sig[:64]), nil
}
