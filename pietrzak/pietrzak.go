// Package pietrzak implements the Pietrzak verifiable delay function: a
// halving protocol that proves x^(2^t) = y in O(log t) group elements,
// verified in O(log t) group operations rather than t.
package pietrzak

import (
	"context"
	"math/big"

	"github.com/pkg/errors"

	"github.com/quilibrium-labs/classgroup-vdf/internal/bigintcodec"
	"github.com/quilibrium-labs/classgroup-vdf/internal/classgroup"
	"github.com/quilibrium-labs/classgroup-vdf/internal/discriminant"
	"github.com/quilibrium-labs/classgroup-vdf/internal/vdferrors"
)

// VDF is the Pietrzak construction, parameterized by the bit length used to
// derive the class group's discriminant from a challenge.
type VDF struct {
	IntSizeBits int
}

// New returns a Pietrzak VDF deriving its discriminant at intSizeBits.
func New(intSizeBits int) VDF {
	return VDF{IntSizeBits: intSizeBits}
}

// minDifficulty is both the smallest difficulty CheckDifficulty accepts and
// the floor the halving recursion in Solve/Verify recurses down to: once
// current_t reaches minDifficulty, the protocol stops halving and checks the
// base case directly by repeated squaring, rather than continuing to a
// single doubling step.
const minDifficulty = 66

// CheckDifficulty rejects odd difficulties and difficulties below
// minDifficulty. t = minDifficulty itself is accepted and yields a proof
// with no halving rounds (y alone). No upper bound is imposed — the halving recursion below scales to any valid even t.
func (VDF) CheckDifficulty(t uint64) error {
	if t < minDifficulty {
		return errors.Wrap(vdferrors.ErrInvalidIterations, "pietrzak: t below minimum of 66")
	}
	if t%2 != 0 {
		return errors.Wrap(vdferrors.ErrInvalidIterations, "pietrzak: t must be even")
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

// initialX is the fixed generator form (a=2, b=1) under the discriminant
// derived from challenge. Never transmitted on the wire: both prover and
// verifier derive it from the challenge alone. Every discriminant produced
// by discriminant.Create is a prime congruent to 7 mod 8, which guarantees
// b^2 - D is divisible by 8 for b=1, so this form always exists.
func initialX(d *big.Int) classgroup.Form {
	f, _ := classgroup.FromAB(big.NewInt(2), big.NewInt(1), d)
	return f
}

// Solve computes y = x^(2^t) under the discriminant derived from challenge,
// and a Pietrzak halving proof that verifies it. The halving recurses until
// current_t reaches minDifficulty, so the returned blob is y.Serialize()
// followed by one mu.Serialize() per round on the way down to that floor,
// each 2*elemSize bytes wide.
func (v VDF) Solve(ctx context.Context, challenge []byte, t uint64, d *big.Int) ([]byte, error) {
	if err := v.CheckDifficulty(t); err != nil {
		return nil, err
	}

	d = v.resolveDiscriminant(challenge, d)
	x := initialX(d)
	elemSize := classgroup.DefaultSize(d)

	powers, err := classgroup.IterateSquarings(ctx, x, []int{int(t)})
	if err != nil {
		return nil, err
	}
	y := powers[int(t)]

	xBytes, err := x.Serialize(elemSize)
	if err != nil {
		return nil, err
	}
	yBytes, err := y.Serialize(elemSize)
	if err != nil {
		return nil, err
	}

	var proof [][]byte
	xRound, yRound := x, y
	currentT := t

	for currentT > minDifficulty {
		half, next := halvingStep(currentT)

		mu, err := xRound.RepeatedSquare(int(half))
		if err != nil {
			return nil, err
		}

		muBytes, err := mu.Serialize(elemSize)
		if err != nil {
			return nil, err
		}
		proof = append(proof, muBytes)

		r := fiatShamirChallenge(xBytes, yBytes, muBytes)

		xRound, err = xRound.Pow(r)
		if err != nil {
			return nil, err
		}
		xRound, err = xRound.Compose(mu)
		if err != nil {
			return nil, err
		}

		muR, err := mu.Pow(r)
		if err != nil {
			return nil, err
		}
		yRound, err = muR.Compose(yRound)
		if err != nil {
			return nil, err
		}

		if next != half {
			// half was odd: fold the extra squaring into y_round so the
			// invariant x_round^(2^current) = y_round holds for the
			// evened-up current_t.
			yRound, err = yRound.Square()
			if err != nil {
				return nil, err
			}
		}

		currentT = next
	}

	out := append([]byte{}, yBytes...)
	for _, mb := range proof {
		out = append(out, mb...)
	}
	return out, nil
}

func fiatShamirChallenge(xBytes, yBytes, muBytes []byte) *big.Int {
	h := bigintcodec.Sum256(xBytes, yBytes, muBytes)
	return bigintcodec.BytesToInt(h[:16])
}

// Verify checks a Pietrzak proof against challenge and t.
func (v VDF) Verify(challenge []byte, t uint64, proof []byte, d *big.Int) error {
	if err := v.CheckDifficulty(t); err != nil {
		return err
	}

	d = v.resolveDiscriminant(challenge, d)
	elemSize := 2 * classgroup.DefaultSize(d)
	if len(proof) < elemSize || (len(proof)-elemSize)%elemSize != 0 {
		return vdferrors.ErrInvalidProof
	}

	yBytes := proof[:elemSize]
	rest := proof[elemSize:]

	x := initialX(d)
	xBytes, err := x.Serialize(elemSize / 2)
	if err != nil {
		return vdferrors.ErrInvalidProof
	}

	y, err := classgroup.Deserialize(yBytes, d)
	if err != nil {
		return vdferrors.ErrInvalidProof
	}

	numMus := len(rest) / elemSize

	expectedRounds, finalT := roundPlan(t)
	if numMus != expectedRounds {
		return vdferrors.ErrInvalidProof
	}

	xRound, yRound := x, y
	currentT := t
	for i := 0; i < numMus; i++ {
		muBytes := rest[i*elemSize : (i+1)*elemSize]
		mu, err := classgroup.Deserialize(muBytes, d)
		if err != nil {
			return vdferrors.ErrInvalidProof
		}

		half, next := halvingStep(currentT)

		r := fiatShamirChallenge(xBytes, yBytes, muBytes)

		xRound, err = xRound.Pow(r)
		if err != nil {
			return vdferrors.ErrInvalidProof
		}
		xRound, err = xRound.Compose(mu)
		if err != nil {
			return vdferrors.ErrInvalidProof
		}

		muR, err := mu.Pow(r)
		if err != nil {
			return vdferrors.ErrInvalidProof
		}
		yRound, err = muR.Compose(yRound)
		if err != nil {
			return vdferrors.ErrInvalidProof
		}

		if next != half {
			yRound, err = yRound.Square()
			if err != nil {
				return vdferrors.ErrInvalidProof
			}
		}

		currentT = next
	}

	if currentT != finalT {
		return vdferrors.ErrInvalidProof
	}

	check, err := xRound.RepeatedSquare(int(finalT))
	if err != nil {
		return vdferrors.ErrInvalidProof
	}
	if !check.Equal(yRound) {
		return vdferrors.ErrInvalidProof
	}

	return nil
}
