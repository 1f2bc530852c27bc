package codec

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParsePointerClassifies(t *testing.T) {
	ptr, err := ParsePointer("ak_2kKasd")
	require.NoError(t, err)
	require.Equal(t, PointerAccount, ptr.Kind)
	require.Equal(t, "account_pubkey", ptr.Kind.Key())

	ptr, err = ParsePointer("ok_9ce3fa")
	require.NoError(t, err)
	require.Equal(t, PointerOracle, ptr.Kind)
	require.Equal(t, "oracle_pubkey", ptr.Kind.Key())

	_, err = ParsePointer("bob.test")
	require.ErrorIs(t, err, ErrInvalidAddress)
}

func TestPointerKindFromKey(t *testing.T) {
	require.Equal(t, PointerAccount, PointerKindFromKey("account_pubkey"))
	require.Equal(t, PointerOracle, PointerKindFromKey("oracle_pubkey"))
	require.Equal(t, PointerUnknown, PointerKindFromKey("channel"))
}
