package crypto

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"namechain/codec"
)

func TestAddressRendering(t *testing.T) {
	key, err := GeneratePrivateKey()
	require.NoError(t, err)

	addr := key.Address()
	require.True(t, strings.HasPrefix(addr, codec.AccountPrefix))
	require.NoError(t, codec.ValidateAddress(addr))

	payload, err := codec.Decode(codec.AccountPrefix, addr)
	require.NoError(t, err)
	require.Len(t, payload, 33)
}

func TestPrivateKeyBytesRoundTrip(t *testing.T) {
	key, err := GeneratePrivateKey()
	require.NoError(t, err)

	restored, err := PrivateKeyFromBytes(key.Bytes())
	require.NoError(t, err)
	require.Equal(t, key.Address(), restored.Address())
}

func TestSignTransaction(t *testing.T) {
	key, err := GeneratePrivateKey()
	require.NoError(t, err)

	envelope, signature, err := key.SignTransaction("tx_unsigned_payload")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(signature, codec.SignaturePrefix))

	var signed SignedTx
	require.NoError(t, json.Unmarshal(envelope, &signed))
	require.Equal(t, "tx_unsigned_payload", signed.Tx)
	require.Equal(t, signature, signed.Signature)

	ok, err := key.PubKey().Verify("tx_unsigned_payload", signature)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = key.PubKey().Verify("tx_other_payload", signature)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyRejectsMalformedSignature(t *testing.T) {
	key, err := GeneratePrivateKey()
	require.NoError(t, err)

	_, err = key.PubKey().Verify("tx", "not_a_signature")
	require.Error(t, err)
}
