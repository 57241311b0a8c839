package classgroup

import "math/big"

// Compose implements NUCOMP-style composition of two forms sharing the same
// discriminant, returning the reduced product.
func (f Form) Compose(other Form) (Form, error) {
	x := f.Reduce()
	y := other.Reduce()

	g := floorDiv(new(big.Int).Add(x.B, y.B), bigTwo)
	h := floorDiv(new(big.Int).Sub(y.B, x.B), bigTwo)

	w := gcdAny(x.A, gcdAny(y.A, g))
	j := new(big.Int).Set(w)

	s, err := exactDiv(x.A, w)
	if err != nil {
		return Form{}, err
	}
	t, err := exactDiv(y.A, w)
	if err != nil {
		return Form{}, err
	}
	u, err := exactDiv(g, w)
	if err != nil {
		return Form{}, err
	}

	rhs0 := new(big.Int).Add(new(big.Int).Mul(h, u), new(big.Int).Mul(s, x.C))
	mu0, v, err := SolveLinearCongruence(new(big.Int).Mul(t, u), rhs0, new(big.Int).Mul(s, t))
	if err != nil {
		return Form{}, err
	}

	rhs1 := new(big.Int).Sub(h, new(big.Int).Mul(t, mu0))
	n, _, err := SolveLinearCongruence(new(big.Int).Mul(t, v), rhs1, s)
	if err != nil {
		return Form{}, err
	}

	k := new(big.Int).Add(mu0, new(big.Int).Mul(v, n))

	l, err := exactDiv(new(big.Int).Sub(new(big.Int).Mul(k, t), h), s)
	if err != nil {
		return Form{}, err
	}

	tuk := new(big.Int).Mul(t, u)
	tuk.Mul(tuk, k)
	tuk.Sub(tuk, new(big.Int).Mul(h, u))
	tuk.Sub(tuk, new(big.Int).Mul(s, x.C))
	m, err := exactDiv(tuk, new(big.Int).Mul(s, t))
	if err != nil {
		return Form{}, err
	}

	A := new(big.Int).Mul(s, t)
	B := new(big.Int).Sub(new(big.Int).Mul(j, u), new(big.Int).Add(new(big.Int).Mul(k, t), new(big.Int).Mul(l, s)))
	C := new(big.Int).Sub(new(big.Int).Mul(k, l), new(big.Int).Mul(j, m))

	return Form{A: A, B: B, C: C, D: f.D}.Reduce(), nil
}

var bigTwo = big.NewInt(2)

// Square composes f with itself.
func (f Form) Square() (Form, error) {
	return f.Compose(f)
}
