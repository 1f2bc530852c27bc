package names

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNameNotFound is the contract error a NodeClient returns when the
	// registry has no entry for a domain.
	ErrNameNotFound = errors.New("names: name not found")
	// ErrNotAvailable is returned when an operation requires the name to
	// be available and it is not.
	ErrNotAvailable = errors.New("names: name not available")
	// ErrNotClaimed is returned when a mutation requires the name to be
	// claimed first.
	ErrNotClaimed = errors.New("names: name not claimed")
	// ErrMissingPreclaim is returned when claim is invoked without a prior
	// successful preclaim on this instance.
	ErrMissingPreclaim = errors.New("names: claim requires a prior preclaim")
	// ErrTooEarlyClaim is returned when the reveal is attempted before at
	// least one block has elapsed since the commitment.
	ErrTooEarlyClaim = errors.New("names: commit-reveal window not yet open")
	// ErrInvalidTarget is returned when a pointer target cannot be used,
	// e.g. an oracle that has not been registered yet.
	ErrInvalidTarget = errors.New("names: invalid pointer target")

	// Registry rejections. Each is surfaced wrapped in a *RegistryError
	// carrying the raw response for diagnostics.
	ErrPreclaimFailed = errors.New("names: preclaim rejected by registry")
	ErrUpdateFailed   = errors.New("names: update rejected by registry")
	ErrTransferFailed = errors.New("names: transfer rejected by registry")
	ErrRevokeFailed   = errors.New("names: revoke rejected by registry")
)

// RegistryError reports a registry response that lacked its expected success
// marker. Response holds the raw payload so the failure can be diagnosed
// without a second query.
type RegistryError struct {
	err      error
	Response json.RawMessage
}

func newRegistryError(err error, response json.RawMessage) *RegistryError {
	return &RegistryError{err: err, Response: response}
}

func (e *RegistryError) Error() string {
	body := strings.TrimSpace(string(e.Response))
	if body == "" {
		return e.err.Error()
	}
	return fmt.Sprintf("%v: %s", e.err, body)
}

func (e *RegistryError) Unwrap() error { return e.err }
