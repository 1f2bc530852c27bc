package names

// Status enumerates the lifecycle states of a name as last observed by this
// client. Transitions are one-directional except that UNKNOWN and AVAILABLE
// are re-derived from the registry on every refresh.
type Status uint8

const (
	StatusUnknown Status = iota
	StatusAvailable
	StatusPreclaimed
	StatusClaimed
	StatusTransferred
	StatusRevoked
)

func (s Status) String() string {
	switch s {
	case StatusUnknown:
		return "UNKNOWN"
	case StatusAvailable:
		return "AVAILABLE"
	case StatusPreclaimed:
		return "PRECLAIMED"
	case StatusClaimed:
		return "CLAIMED"
	case StatusTransferred:
		return "TRANSFERRED"
	case StatusRevoked:
		return "REVOKED"
	default:
		return "UNKNOWN"
	}
}
