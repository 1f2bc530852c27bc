// Package oracle models the oracle subsystem only as far as names need it:
// a registered oracle can be used as a pointer target.
package oracle

import (
	"errors"

	"namechain/codec"
)

// ErrUnregistered is returned when an oracle without an assigned identifier
// is used as a pointer target.
var ErrUnregistered = errors.New("oracle: not registered")

// Oracle is a reference to an oracle on the registry. ID is the ok_
// identifier assigned at registration and is empty until then.
type Oracle struct {
	ID string
}

// PointerTarget returns the oracle's identifier, satisfying the pointer
// target contract of the names package.
func (o Oracle) PointerTarget() (string, error) {
	if o.ID == "" {
		return "", ErrUnregistered
	}
	if err := codec.ValidateAddress(o.ID); err != nil {
		return "", err
	}
	return o.ID, nil
}
