package discriminant

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quilibrium-labs/classgroup-vdf/internal/bigintcodec"
)

func TestCreateProperties(t *testing.T) {
	d := Create([]byte("integration-test-seed"), 256)

	require.True(t, d.Sign() < 0)

	mod8 := new(big.Int).Mod(d, big.NewInt(8))
	require.Equal(t, big.NewInt(1), mod8)

	negD := new(big.Int).Neg(d)
	bitLen := bigintcodec.BitLen(d)
	require.GreaterOrEqual(t, bitLen, 255)
	require.LessOrEqual(t, bitLen, 256)

	require.True(t, bigintcodec.IsProbablePrime(negD, 10))
}

func TestCreateDeterministic(t *testing.T) {
	a := Create([]byte("same-seed"), 128)
	b := Create([]byte("same-seed"), 128)
	require.Equal(t, a, b)
}

func TestCreateVariesWithSeed(t *testing.T) {
	a := Create([]byte("seed-one"), 128)
	b := Create([]byte("seed-two"), 128)
	require.NotEqual(t, a, b)
}
