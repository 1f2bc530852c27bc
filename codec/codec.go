package codec

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
)

// Identifier prefixes used on the wire. The prefix names the object type and
// is separated from the base58check payload by an underscore.
const (
	AccountPrefix   = "ak_"
	OraclePrefix    = "ok_"
	NamePrefix      = "nm_"
	SignaturePrefix = "sg_"
	TxHashPrefix    = "th_"
)

// nameSuffixes lists the top-level suffixes the registry accepts.
var nameSuffixes = []string{".chain", ".test"}

var (
	// ErrInvalidName is returned when a domain does not satisfy the
	// registry's naming rules.
	ErrInvalidName = errors.New("codec: invalid name")
	// ErrInvalidAddress is returned when a value carries none of the
	// accepted identifier prefixes.
	ErrInvalidAddress = errors.New("codec: invalid address")
	// ErrChecksum is returned when a base58check payload fails
	// verification.
	ErrChecksum = errors.New("codec: checksum mismatch")
)

// checksum returns the first four bytes of a double sha256 digest.
func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:4]
}

// Encode renders payload as prefix + base58check. Distinct payloads always
// produce distinct encodings.
func Encode(prefix string, payload []byte) string {
	buf := make([]byte, 0, len(payload)+4)
	buf = append(buf, payload...)
	buf = append(buf, checksum(payload)...)
	return prefix + base58.Encode(buf)
}

// Decode strips the expected prefix, decodes the base58 payload and verifies
// its checksum.
func Decode(prefix, value string) ([]byte, error) {
	if !strings.HasPrefix(value, prefix) {
		return nil, fmt.Errorf("%w: expected prefix %q", ErrInvalidAddress, prefix)
	}
	decoded := base58.Decode(strings.TrimPrefix(value, prefix))
	if len(decoded) < 4 {
		return nil, fmt.Errorf("%w: payload too short", ErrChecksum)
	}
	payload, sum := decoded[:len(decoded)-4], decoded[len(decoded)-4:]
	if !bytes.Equal(sum, checksum(payload)) {
		return nil, ErrChecksum
	}
	return payload, nil
}

// EncodeName maps a domain to its canonical on-chain identifier.
func EncodeName(domain string) string {
	return Encode(NamePrefix, []byte(domain))
}

// DecodeName recovers the domain from a nm_ identifier.
func DecodeName(value string) (string, error) {
	payload, err := Decode(NamePrefix, value)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// ValidateName checks the domain against the registry's naming rules.
func ValidateName(domain string) error {
	for _, suffix := range nameSuffixes {
		if strings.HasSuffix(domain, suffix) {
			return nil
		}
	}
	return fmt.Errorf("%w: %q must end in one of %s", ErrInvalidName, domain, strings.Join(nameSuffixes, ", "))
}

// IsName reports whether domain satisfies the naming rules without raising.
func IsName(domain string) bool {
	return ValidateName(domain) == nil
}

// ValidateAddress checks that value carries an account or oracle identifier
// prefix.
func ValidateAddress(value string) error {
	if strings.HasPrefix(value, AccountPrefix) || strings.HasPrefix(value, OraclePrefix) {
		return nil
	}
	return fmt.Errorf("%w: %q must start with %s or %s", ErrInvalidAddress, value, AccountPrefix, OraclePrefix)
}

// IsAddress reports whether value is a syntactically valid address.
func IsAddress(value string) bool {
	return ValidateAddress(value) == nil
}

// IsPointerTarget reports whether value can be used as a pointer target.
// Pointers may target an address or another name.
func IsPointerTarget(value string) bool {
	return IsAddress(value) || IsName(value)
}
