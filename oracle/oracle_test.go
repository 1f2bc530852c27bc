package oracle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"namechain/codec"
)

func TestPointerTarget(t *testing.T) {
	target, err := Oracle{ID: "ok_weather"}.PointerTarget()
	require.NoError(t, err)
	require.Equal(t, "ok_weather", target)
}

func TestPointerTargetUnregistered(t *testing.T) {
	_, err := Oracle{}.PointerTarget()
	require.ErrorIs(t, err, ErrUnregistered)
}

func TestPointerTargetBadIdentifier(t *testing.T) {
	_, err := Oracle{ID: "weather"}.PointerTarget()
	require.ErrorIs(t, err, codec.ErrInvalidAddress)
}
