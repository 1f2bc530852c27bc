package codec

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeNameDeterministic(t *testing.T) {
	first := EncodeName("alice.test")
	second := EncodeName("alice.test")
	require.Equal(t, first, second)
	require.True(t, strings.HasPrefix(first, NamePrefix))
}

func TestEncodeNameRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		base := rapid.StringMatching(`[a-z0-9][a-z0-9-]{0,30}`).Draw(t, "base")
		suffix := rapid.SampledFrom([]string{".chain", ".test"}).Draw(t, "suffix")
		domain := base + suffix

		encoded := EncodeName(domain)
		decoded, err := DecodeName(encoded)
		require.NoError(t, err)
		require.Equal(t, domain, decoded)
	})
}

func TestEncodeNameInjective(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := rapid.StringMatching(`[a-z0-9]{1,24}`).Draw(t, "a") + ".test"
		b := rapid.StringMatching(`[a-z0-9]{1,24}`).Draw(t, "b") + ".test"
		if a == b {
			t.Skip("identical domains")
		}
		require.NotEqual(t, EncodeName(a), EncodeName(b))
	})
}

func TestValidateNameSuffixes(t *testing.T) {
	cases := []struct {
		domain string
		ok     bool
	}{
		{"alice.test", true},
		{"alice.chain", true},
		{"a.test", true},
		{".test", true},
		{"alice.aet", false},
		{"alice", false},
		{"", false},
		{"alice.test.com", false},
	}
	for _, tc := range cases {
		err := ValidateName(tc.domain)
		if tc.ok {
			require.NoError(t, err, tc.domain)
			require.True(t, IsName(tc.domain), tc.domain)
		} else {
			require.ErrorIs(t, err, ErrInvalidName, tc.domain)
			require.False(t, IsName(tc.domain), tc.domain)
		}
	}
}

func TestValidateNameMatchesSuffixRule(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		value := rapid.StringMatching(`[ -~]{0,40}`).Draw(t, "value")
		want := strings.HasSuffix(value, ".chain") || strings.HasSuffix(value, ".test")
		require.Equal(t, want, IsName(value), value)
	})
}

func TestValidateAddress(t *testing.T) {
	require.NoError(t, ValidateAddress("ak_2kKasd"))
	require.NoError(t, ValidateAddress("ok_9ce3fa"))
	require.ErrorIs(t, ValidateAddress("nm_hash"), ErrInvalidAddress)
	require.ErrorIs(t, ValidateAddress("bob.test"), ErrInvalidAddress)
	require.False(t, IsAddress(""))
}

func TestIsPointerTarget(t *testing.T) {
	require.True(t, IsPointerTarget("ak_2kKasd"))
	require.True(t, IsPointerTarget("ok_9ce3fa"))
	require.True(t, IsPointerTarget("bob.test"))
	require.False(t, IsPointerTarget("bob"))
	require.False(t, IsPointerTarget("th_abc"))
}

func TestDecodeRejectsTampering(t *testing.T) {
	encoded := EncodeName("alice.test")

	_, err := Decode(AccountPrefix, encoded)
	require.ErrorIs(t, err, ErrInvalidAddress)

	payload := strings.TrimPrefix(encoded, NamePrefix)
	flipped := NamePrefix + payload[:len(payload)-1] + pick(payload[len(payload)-1])
	_, err = DecodeName(flipped)
	require.Error(t, err)
}

// pick returns a base58 character distinct from c.
func pick(c byte) string {
	if c == '2' {
		return "3"
	}
	return "2"
}
