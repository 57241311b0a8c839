package pietrzak

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHalvingStepEven(t *testing.T) {
	half, next := halvingStep(66)
	require.Equal(t, uint64(33), half)
	require.Equal(t, uint64(34), next)
}

func TestHalvingStepConvergesToTwo(t *testing.T) {
	current := uint64(1000)
	rounds := 0
	for current > 2 {
		_, next := halvingStep(current)
		current = next
		rounds++
		require.Less(t, rounds, 64)
	}
	require.Equal(t, uint64(2), current)
}
