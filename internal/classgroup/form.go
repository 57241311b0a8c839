// Package classgroup implements binary quadratic form arithmetic over the
// class group of a fixed negative discriminant: composition, squaring,
// reduction and the wire codec used by both VDF constructions.
package classgroup

import (
	"math/big"

	"github.com/pkg/errors"
)

// Form is a binary quadratic form (A, B, C) with invariant B^2 - 4AC = D.
// Its three coefficients are treated as immutable once constructed; every
// operation returns a new Form rather than mutating the receiver.
type Form struct {
	A, B, C, D *big.Int
}

// ErrNonExactDivision signals that a division required to stay exact by the
// arithmetic (composition, congruence solving) left a non-zero remainder —
// an invariant breach, not a user error.
var ErrNonExactDivision = errors.New("classgroup: non-exact division")

// FromAB derives C = (B^2 - D) / 4A (which must divide exactly) and returns
// the reduced form.
func FromAB(a, b, d *big.Int) (Form, error) {
	if a.Sign() == 0 {
		return Form{}, errors.New("classgroup: a must be non-zero")
	}
	z := new(big.Int).Sub(new(big.Int).Mul(b, b), d)
	denom := new(big.Int).Mul(a, big.NewInt(4))
	c, err := exactDiv(z, denom)
	if err != nil {
		return Form{}, errors.Wrap(ErrNonExactDivision, "classgroup: b^2 - D not divisible by 4a")
	}
	return Form{A: new(big.Int).Set(a), B: new(big.Int).Set(b), C: c, D: d}.Reduce(), nil
}

// Identity returns the principal form for discriminant d.
func Identity(d *big.Int) Form {
	f, _ := FromAB(big.NewInt(1), big.NewInt(1), d)
	return f
}

// Normalize replaces B by its representative in (-A, A] modulo 2A and
// recomputes C to match.
func (f Form) Normalize() Form {
	a, b, c := f.A, f.B, f.C

	negA := new(big.Int).Neg(a)
	if b.Cmp(negA) > 0 && b.Cmp(a) <= 0 {
		return f
	}

	r := floorDiv(new(big.Int).Sub(a, b), new(big.Int).Mul(big.NewInt(2), a))

	newB := new(big.Int).Add(b, new(big.Int).Mul(new(big.Int).Mul(big.NewInt(2), r), a))

	newC := new(big.Int).Add(c, new(big.Int).Mul(new(big.Int).Mul(a, r), r))
	newC.Add(newC, new(big.Int).Mul(b, r))

	return Form{A: a, B: newB, C: newC, D: f.D}
}

// Reduce returns the canonical reduced representative of f's class.
func (f Form) Reduce() Form {
	g := f.Normalize()
	a, b, c := g.A, g.B, g.C

	for a.Cmp(c) > 0 || (a.Cmp(c) == 0 && b.Sign() < 0) {
		s := floorDiv(new(big.Int).Add(c, b), new(big.Int).Mul(big.NewInt(2), c))

		newA := new(big.Int).Set(c)

		newB := new(big.Int).Neg(b)
		newB.Add(newB, new(big.Int).Mul(new(big.Int).Mul(big.NewInt(2), s), c))

		newC := new(big.Int).Mul(c, s)
		newC.Mul(newC, s)
		newC.Sub(newC, new(big.Int).Mul(b, s))
		newC.Add(newC, a)

		a, b, c = newA, newB, newC
	}

	return Form{A: a, B: b, C: c, D: g.D}.Normalize()
}

// Equal compares reduced forms field-by-field, including D.
func (f Form) Equal(other Form) bool {
	x, y := f.Reduce(), other.Reduce()
	return x.A.Cmp(y.A) == 0 && x.B.Cmp(y.B) == 0 && x.C.Cmp(y.C) == 0 && x.D.Cmp(y.D) == 0
}

// Inverse returns the group inverse of f: (A, -B, C) reduced.
func (f Form) Inverse() Form {
	return Form{A: f.A, B: new(big.Int).Neg(f.B), C: f.C, D: f.D}.Reduce()
}

// Pow raises f to exponent e (which may be negative — computed via the
// inverse form) using left-to-right square-and-multiply over |e|'s bits.
func (f Form) Pow(e *big.Int) (Form, error) {
	if e.Sign() < 0 {
		return f.Inverse().Pow(new(big.Int).Neg(e))
	}
	if e.Sign() == 0 {
		return Identity(f.D), nil
	}
	if e.Cmp(bigOne) == 0 {
		return f, nil
	}

	result := Identity(f.D)
	for i := e.BitLen() - 1; i >= 0; i-- {
		var err error
		result, err = result.Square()
		if err != nil {
			return Form{}, err
		}
		if e.Bit(i) == 1 {
			result, err = result.Compose(f)
			if err != nil {
				return Form{}, err
			}
		}
	}
	return result, nil
}

// PowInt64 is Pow specialized to a small non-negative exponent, used by the
// Wesolowski windowed evaluator where exponents are bounded by 2^k.
func (f Form) PowInt64(e int64) (Form, error) {
	return f.Pow(big.NewInt(e))
}

// RepeatedSquare applies Square n times.
func (f Form) RepeatedSquare(n int) (Form, error) {
	cur := f
	for i := 0; i < n; i++ {
		var err error
		cur, err = cur.Square()
		if err != nil {
			return Form{}, err
		}
	}
	return cur, nil
}

var bigOne = big.NewInt(1)

func floorDiv(x, y *big.Int) *big.Int {
	r := new(big.Int)
	q, _ := new(big.Int).QuoRem(x, y, r)
	if (r.Sign() > 0 && y.Sign() < 0) || (r.Sign() < 0 && y.Sign() > 0) {
		q.Sub(q, bigOne)
	}
	return q
}

func exactDiv(x, y *big.Int) (*big.Int, error) {
	q, r := new(big.Int).QuoRem(x, y, new(big.Int))
	if r.Sign() != 0 {
		return nil, ErrNonExactDivision
	}
	return q, nil
}

// gcdAny is math/big's GCD generalized to accept zero or negative operands,
// since Go's big.Int.GCD requires both inputs strictly positive.
func gcdAny(a, b *big.Int) *big.Int {
	if a.Sign() == 0 {
		return new(big.Int).Abs(b)
	}
	if b.Sign() == 0 {
		return new(big.Int).Abs(a)
	}
	return new(big.Int).GCD(nil, nil, new(big.Int).Abs(a), new(big.Int).Abs(b))
}
