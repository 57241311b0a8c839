package classgroup

import (
	"context"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

// d256 is the well-known 256-bit discriminant used throughout the VDF test
// suite: D = -94244082954491557865740412536462075406760295174154720908408968004709609548271.
func d256(t *testing.T) *big.Int {
	t.Helper()
	d, ok := new(big.Int).SetString("-94244082954491557865740412536462075406760295174154720908408968004709609548271", 10)
	require.True(t, ok)
	return d
}

func checkDiscriminant(t *testing.T, f Form) {
	t.Helper()
	disc := new(big.Int).Sub(new(big.Int).Mul(f.B, f.B), new(big.Int).Mul(big.NewInt(4), new(big.Int).Mul(f.A, f.C)))
	require.Equal(t, f.D, disc)
}

func TestFromABAndReduceInvariant(t *testing.T) {
	d := d256(t)
	x, err := FromAB(big.NewInt(2), big.NewInt(1), d)
	require.NoError(t, err)
	checkDiscriminant(t, x)
	require.True(t, x.A.Sign() > 0)
	require.True(t, new(big.Int).Abs(x.B).Cmp(x.A) <= 0)
	require.True(t, x.A.Cmp(x.C) <= 0)
}

func TestReduceIdempotent(t *testing.T) {
	d := d256(t)
	x, err := FromAB(big.NewInt(2), big.NewInt(1), d)
	require.NoError(t, err)
	require.True(t, x.Equal(x.Reduce()))
	require.True(t, x.Reduce().Equal(x.Reduce().Reduce()))
}

func TestIdentityComposition(t *testing.T) {
	d := d256(t)
	x, err := FromAB(big.NewInt(2), big.NewInt(1), d)
	require.NoError(t, err)
	id := Identity(d)

	left, err := id.Compose(x)
	require.NoError(t, err)
	right, err := x.Compose(id)
	require.NoError(t, err)

	require.True(t, x.Equal(left))
	require.True(t, x.Equal(right))
}

func TestSquareEqualsSelfCompose(t *testing.T) {
	d := d256(t)
	x, err := FromAB(big.NewInt(2), big.NewInt(1), d)
	require.NoError(t, err)

	sq, err := x.Square()
	require.NoError(t, err)
	comp, err := x.Compose(x)
	require.NoError(t, err)

	require.True(t, sq.Equal(comp))
	checkDiscriminant(t, sq)
}

func TestRepeatedSquareMatchesFold(t *testing.T) {
	d := d256(t)
	x, err := FromAB(big.NewInt(2), big.NewInt(1), d)
	require.NoError(t, err)

	rs, err := x.RepeatedSquare(5)
	require.NoError(t, err)

	folded := x
	for i := 0; i < 5; i++ {
		folded, err = folded.Square()
		require.NoError(t, err)
	}

	require.True(t, rs.Equal(folded))
}

func TestPowEdgeCases(t *testing.T) {
	d := d256(t)
	x, err := FromAB(big.NewInt(2), big.NewInt(1), d)
	require.NoError(t, err)

	p0, err := x.Pow(big.NewInt(0))
	require.NoError(t, err)
	require.True(t, p0.Equal(Identity(d)))

	p1, err := x.Pow(big.NewInt(1))
	require.NoError(t, err)
	require.True(t, p1.Equal(x))

	idPow, err := Identity(d).Pow(big.NewInt(37))
	require.NoError(t, err)
	require.True(t, idPow.Equal(Identity(d)))

	p4, err := x.Pow(big.NewInt(4))
	require.NoError(t, err)
	rs4, err := x.RepeatedSquare(2)
	require.NoError(t, err)
	require.True(t, p4.Equal(rs4))
}

func TestSerializeRoundTrip(t *testing.T) {
	d := d256(t)
	x, err := FromAB(big.NewInt(2), big.NewInt(1), d)
	require.NoError(t, err)

	sq, err := x.Square()
	require.NoError(t, err)

	size := DefaultSize(d)
	buf, err := sq.Serialize(size)
	require.NoError(t, err)
	require.Len(t, buf, 2*size)

	back, err := Deserialize(buf, d)
	require.NoError(t, err)
	require.True(t, sq.Equal(back))
}

func TestIterateSquarings(t *testing.T) {
	d := d256(t)
	x, err := FromAB(big.NewInt(2), big.NewInt(1), d)
	require.NoError(t, err)

	powers, err := IterateSquarings(context.Background(), x, []int{0, 3, 3, 1})
	require.NoError(t, err)
	require.Len(t, powers, 3)

	rs1, _ := x.RepeatedSquare(1)
	rs3, _ := x.RepeatedSquare(3)
	require.True(t, powers[0].Equal(x))
	require.True(t, powers[1].Equal(rs1))
	require.True(t, powers[3].Equal(rs3))
}

func TestIterateSquaringsEmpty(t *testing.T) {
	d := d256(t)
	x, err := FromAB(big.NewInt(2), big.NewInt(1), d)
	require.NoError(t, err)

	powers, err := IterateSquarings(context.Background(), x, nil)
	require.NoError(t, err)
	require.Empty(t, powers)
}
