package wesolowski

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quilibrium-labs/classgroup-vdf/internal/bigintcodec"
)

func TestApproximateParametersPositive(t *testing.T) {
	l, k, _ := ApproximateParameters(10000)
	require.GreaterOrEqual(t, l, 1)
	require.GreaterOrEqual(t, k, 1)
}

func TestHashPrimeIsPrime(t *testing.T) {
	b := HashPrime([]byte("x"), []byte("y"))
	require.True(t, bigintcodec.IsProbablePrime(b, 2))
}

func TestHashPrimeDeterministic(t *testing.T) {
	a := HashPrime([]byte("x"), []byte("y"))
	b := HashPrime([]byte("x"), []byte("y"))
	require.Equal(t, a, b)
}

func TestGetBlockWithinRange(t *testing.T) {
	b := big.NewInt(97)
	block := GetBlock(0, 3, 20, b)
	require.True(t, block.Sign() >= 0)
	require.True(t, block.Cmp(big.NewInt(8)) < 0)
}
