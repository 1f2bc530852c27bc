package names

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	cases := map[Status]string{
		StatusUnknown:     "UNKNOWN",
		StatusAvailable:   "AVAILABLE",
		StatusPreclaimed:  "PRECLAIMED",
		StatusClaimed:     "CLAIMED",
		StatusTransferred: "TRANSFERRED",
		StatusRevoked:     "REVOKED",
		Status(99):        "UNKNOWN",
	}
	for status, want := range cases {
		require.Equal(t, want, status.String())
	}
}
