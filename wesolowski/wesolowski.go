// Package wesolowski implements the Wesolowski verifiable delay function: a
// single group-element proof pi such that pi^B * x^r = y, where B is a
// Fiat-Shamir prime challenge and r = 2^t mod B.
package wesolowski

import (
	"context"
	"math"
	"math/big"

	"github.com/pkg/errors"

	"github.com/quilibrium-labs/classgroup-vdf/internal/classgroup"
	"github.com/quilibrium-labs/classgroup-vdf/internal/discriminant"
	"github.com/quilibrium-labs/classgroup-vdf/internal/vdferrors"
)

// VDF is the Wesolowski construction, parameterized by the bit length used
// to derive the class group's discriminant from a challenge.
type VDF struct {
	IntSizeBits int
}

// New returns a Wesolowski VDF deriving its discriminant at intSizeBits.
func New(intSizeBits int) VDF {
	return VDF{IntSizeBits: intSizeBits}
}

// CheckDifficulty rejects a zero iteration count; any t >= 1 is otherwise
// valid since the proof is a single group element regardless of t.
func (VDF) CheckDifficulty(t uint64) error {
	if t == 0 {
		return errors.Wrap(vdferrors.ErrInvalidIterations, "wesolowski: t must be at least 1")
	}
	return nil
}

// resolveDiscriminant returns d unchanged if the caller supplied one, else
// derives it deterministically from challenge.
func (v VDF) resolveDiscriminant(challenge []byte, d *big.Int) *big.Int {
	if d != nil {
		return d
	}
	return discriminant.Create(challenge, uint32(v.IntSizeBits))
}

// initialX is the fixed generator form (a=2, b=1). Never transmitted on the
// wire: both prover and verifier derive it from the challenge alone.
func initialX(d *big.Int) classgroup.Form {
	f, _ := classgroup.FromAB(big.NewInt(2), big.NewInt(1), d)
	return f
}

// Solve computes y = x^(2^t) under the discriminant derived from challenge
// and the Wesolowski proof pi such that pi^B * x^r = y. The returned blob is
// y.Serialize() || pi.Serialize(), 4*size bytes total.
func (v VDF) Solve(ctx context.Context, challenge []byte, t uint64, d *big.Int) ([]byte, error) {
	if err := v.CheckDifficulty(t); err != nil {
		return nil, err
	}

	d = v.resolveDiscriminant(challenge, d)
	x := initialX(d)
	size := classgroup.DefaultSize(d)

	l, k, _ := ApproximateParameters(t)
	loopCount := int(math.Ceil(float64(t) / float64(k*l)))

	cacheIdx := make([]int, 0, loopCount+2)
	for i := 0; i <= loopCount; i++ {
		cacheIdx = append(cacheIdx, i*k*l)
	}
	cacheIdx = append(cacheIdx, int(t))

	powers, err := classgroup.IterateSquarings(ctx, x, cacheIdx)
	if err != nil {
		return nil, err
	}
	y := powers[int(t)]

	xBytes, err := x.Serialize(size)
	if err != nil {
		return nil, err
	}
	yBytes, err := y.Serialize(size)
	if err != nil {
		return nil, err
	}

	b := HashPrime(xBytes, yBytes)
	identity := classgroup.Identity(d)

	pi, err := EvalOptimized(identity, x, b, t, k, l, powers)
	if err != nil {
		return nil, err
	}
	piBytes, err := pi.Serialize(size)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, 4*size)
	out = append(out, yBytes...)
	out = append(out, piBytes...)
	return out, nil
}

// Verify checks a Wesolowski proof against challenge and t. proof must be
// exactly 4*size bytes: y.Serialize() followed by pi.Serialize().
func (v VDF) Verify(challenge []byte, t uint64, proof []byte, d *big.Int) error {
	if err := v.CheckDifficulty(t); err != nil {
		return err
	}

	d = v.resolveDiscriminant(challenge, d)
	size := classgroup.DefaultSize(d)
	if len(proof) != 4*size {
		return vdferrors.ErrInvalidProof
	}

	yBytes := proof[:2*size]
	piBytes := proof[2*size:]

	x := initialX(d)
	xBytes, err := x.Serialize(size)
	if err != nil {
		return vdferrors.ErrInvalidProof
	}

	y, err := classgroup.Deserialize(yBytes, d)
	if err != nil {
		return vdferrors.ErrInvalidProof
	}
	pi, err := classgroup.Deserialize(piBytes, d)
	if err != nil {
		return vdferrors.ErrInvalidProof
	}

	b := HashPrime(xBytes, yBytes)
	r := new(big.Int).Exp(big.NewInt(2), new(big.Int).SetUint64(t), b)

	piB, err := pi.Pow(b)
	if err != nil {
		return vdferrors.ErrInvalidProof
	}
	xR, err := x.Pow(r)
	if err != nil {
		return vdferrors.ErrInvalidProof
	}
	check, err := piB.Compose(xR)
	if err != nil {
		return vdferrors.ErrInvalidProof
	}

	if !check.Equal(y) {
		return vdferrors.ErrInvalidProof
	}
	return nil
}
