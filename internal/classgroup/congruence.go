package classgroup

import (
	"math/big"

	"github.com/quilibrium-labs/classgroup-vdf/internal/bigintcodec"
)

// SolveLinearCongruence solves a*mu ≡ b (mod m) for mu, returning the
// modulus v = m/gcd(a,m) of the solution family. It fails loudly (via
// ErrNonExactDivision) rather than truncating when b is not a multiple of
// gcd(a,m) — this is the primary correctness gate composition relies on.
func SolveLinearCongruence(a, b, m *big.Int) (mu, v *big.Int, err error) {
	g, d, _ := bigintcodec.ExtGCD(a, m)
	if g.Sign() == 0 {
		return nil, nil, ErrNonExactDivision
	}

	q, err := exactDiv(b, g)
	if err != nil {
		return nil, nil, err
	}

	s := new(big.Int).Mul(q, d)
	s.Mod(s, m)

	t := floorDiv(m, g)

	return s, t, nil
}
