package names

import "namechain/codec"

// Target is anything a claimed name can point at. Implementations return
// the identifier to store in the pointer mapping, or an error when the
// entity cannot be targeted yet.
type Target interface {
	PointerTarget() (string, error)
}

// Account is an ak_ identifier used directly as a pointer target.
type Account string

func (a Account) PointerTarget() (string, error) {
	if err := codec.ValidateAddress(string(a)); err != nil {
		return "", err
	}
	return string(a), nil
}
