package bigintcodec

import (
	"math/big"

	"github.com/pkg/errors"
)

// ModPow computes base^exp mod m, always returning a non-negative result.
func ModPow(base, exp, mod *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, mod)
}

// ExtGCD returns (g, x, y) such that g = a*x + b*y and g >= 0.
func ExtGCD(a, b *big.Int) (g, x, y *big.Int) {
	r0, r1 := new(big.Int).Set(a), new(big.Int).Set(b)
	s0, s1 := big.NewInt(1), big.NewInt(0)
	t0, t1 := big.NewInt(0), big.NewInt(1)

	if r0.Sign() < 0 {
		r0.Neg(r0)
		s0.Neg(s0)
		t0.Neg(t0)
	}
	if r1.Sign() < 0 {
		r1.Neg(r1)
		s1.Neg(s1)
		t1.Neg(t1)
	}

	if r0.Cmp(r1) < 0 {
		r0, r1 = r1, r0
		s0, s1 = s1, s0
		t0, t1 = t1, t0
	}

	for r1.Sign() != 0 {
		q, r := new(big.Int).QuoRem(r0, r1, new(big.Int))
		r0, r1 = r1, r
		s0, s1 = s1, new(big.Int).Sub(s0, new(big.Int).Mul(q, s1))
		t0, t1 = t1, new(big.Int).Sub(t0, new(big.Int).Mul(q, t1))
	}

	if r0.Sign() < 0 {
		r0.Neg(r0)
		s0.Neg(s0)
		t0.Neg(t0)
	}

	return r0, s0, t0
}

// ModInverse returns a^-1 mod m, failing when gcd(a, m) != 1.
func ModInverse(a, m *big.Int) (*big.Int, error) {
	g, x, _ := ExtGCD(a, m)
	if g.Cmp(bigOne) != 0 {
		return nil, errors.Errorf("bigintcodec: %s has no inverse mod %s", a.String(), m.String())
	}
	return x.Mod(x, m), nil
}

// firstPrimes is a deterministic set of Miller-Rabin witnesses, used in
// increasing order so that IsProbablePrime(n, k) always exercises the same k
// bases for a given n regardless of caller.
var firstPrimes = []int64{
	2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59, 61, 67, 71,
	73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127, 131, 137, 139, 149, 151,
	157, 163, 167, 173, 179, 181, 191, 193, 197, 199, 211, 223, 227, 229,
}

// IsProbablePrime runs trial division against firstPrimes, then Miller-Rabin
// with the first k entries of firstPrimes as deterministic witnesses.
func IsProbablePrime(n *big.Int, k int) bool {
	if n.Sign() <= 0 || n.Cmp(big.NewInt(1)) == 0 {
		return false
	}
	if n.Cmp(big.NewInt(4)) < 0 {
		return true // 2, 3
	}
	if n.Bit(0) == 0 {
		return false
	}

	for _, p := range firstPrimes {
		bp := big.NewInt(p)
		if n.Cmp(bp) == 0 {
			return true
		}
		if new(big.Int).Mod(n, bp).Sign() == 0 {
			return false
		}
	}

	if k > len(firstPrimes) {
		k = len(firstPrimes)
	}
	return millerRabin(n, firstPrimes[:k])
}

func millerRabin(n *big.Int, witnesses []int64) bool {
	nMinus1 := new(big.Int).Sub(n, bigOne)
	d := new(big.Int).Set(nMinus1)
	r := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		r++
	}

	for _, w := range witnesses {
		a := big.NewInt(w)
		if a.Cmp(nMinus1) >= 0 {
			continue
		}
		x := ModPow(a, d, n)
		if x.Cmp(bigOne) == 0 || x.Cmp(nMinus1) == 0 {
			continue
		}
		composite := true
		for i := 0; i < r-1; i++ {
			x.Mul(x, x)
			x.Mod(x, n)
			if x.Cmp(nMinus1) == 0 {
				composite = false
				break
			}
		}
		if composite {
			return false
		}
	}
	return true
}
