// Package vdf exposes the Pietrzak and Wesolowski verifiable delay function
// constructions behind one capability interface.
package vdf

import (
	"context"
	"math/big"

	"github.com/quilibrium-labs/classgroup-vdf/internal/vdferrors"
	"github.com/quilibrium-labs/classgroup-vdf/pietrzak"
	"github.com/quilibrium-labs/classgroup-vdf/wesolowski"
)

// ErrInvalidIterations is returned by CheckDifficulty when t violates a
// construction's constraints.
var ErrInvalidIterations = vdferrors.ErrInvalidIterations

// ErrInvalidProof is returned by Verify for a malformed or invalid proof.
var ErrInvalidProof = vdferrors.ErrInvalidProof

// Construction is implemented by both VDF constructions. d may be nil, in
// which case it is derived deterministically from challenge.
type Construction interface {
	CheckDifficulty(t uint64) error
	Solve(ctx context.Context, challenge []byte, t uint64, d *big.Int) ([]byte, error)
	Verify(challenge []byte, t uint64, proof []byte, d *big.Int) error
}

// Pietrzak returns a Construction using the halving protocol, deriving its
// discriminant at intSizeBits when none is supplied to Solve/Verify.
func Pietrzak(intSizeBits int) Construction {
	return pietrzak.New(intSizeBits)
}

// Wesolowski returns a Construction using the prime-challenge windowed
// evaluator, deriving its discriminant at intSizeBits when none is supplied
// to Solve/Verify.
func Wesolowski(intSizeBits int) Construction {
	return wesolowski.New(intSizeBits)
}
