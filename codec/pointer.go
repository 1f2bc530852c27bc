package codec

import (
	"fmt"
	"strings"
)

// PointerKind enumerates the kinds of identifier a claimed name may resolve
// to.
type PointerKind uint8

const (
	PointerUnknown PointerKind = iota
	PointerAccount
	PointerOracle
)

// Wire keys under which pointer targets appear in the registry's pointer
// mapping.
const (
	accountPointerKey = "account_pubkey"
	oraclePointerKey  = "oracle_pubkey"
)

func (k PointerKind) String() string {
	switch k {
	case PointerAccount:
		return "account"
	case PointerOracle:
		return "oracle"
	default:
		return "unknown"
	}
}

// Key returns the wire key for the pointer kind.
func (k PointerKind) Key() string {
	switch k {
	case PointerAccount:
		return accountPointerKey
	case PointerOracle:
		return oraclePointerKey
	default:
		return ""
	}
}

// Pointer is a classified pointer target. Classification happens once, at
// the registry boundary.
type Pointer struct {
	Kind   PointerKind
	Target string
}

// ParsePointer classifies target by its identifier prefix.
func ParsePointer(target string) (Pointer, error) {
	switch {
	case strings.HasPrefix(target, AccountPrefix):
		return Pointer{Kind: PointerAccount, Target: target}, nil
	case strings.HasPrefix(target, OraclePrefix):
		return Pointer{Kind: PointerOracle, Target: target}, nil
	default:
		return Pointer{}, fmt.Errorf("%w: pointer target %q", ErrInvalidAddress, target)
	}
}

// PointerKindFromKey maps a wire key back to its kind. Unrecognized keys map
// to PointerUnknown.
func PointerKindFromKey(key string) PointerKind {
	switch key {
	case accountPointerKey:
		return PointerAccount
	case oraclePointerKey:
		return PointerOracle
	default:
		return PointerUnknown
	}
}
