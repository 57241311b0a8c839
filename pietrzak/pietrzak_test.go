package pietrzak

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quilibrium-labs/classgroup-vdf/internal/classgroup"
	"github.com/quilibrium-labs/classgroup-vdf/internal/discriminant"
	"github.com/quilibrium-labs/classgroup-vdf/internal/vdferrors"
)

func TestCheckDifficultyRejectsBelowMinimum(t *testing.T) {
	v := New(256)
	require.ErrorIs(t, v.CheckDifficulty(64), vdferrors.ErrInvalidIterations)
}

func TestCheckDifficultyRejectsOdd(t *testing.T) {
	v := New(256)
	require.ErrorIs(t, v.CheckDifficulty(67), vdferrors.ErrInvalidIterations)
}

func TestCheckDifficultyAcceptsMinimum(t *testing.T) {
	v := New(256)
	require.NoError(t, v.CheckDifficulty(66))
}

func TestSolveVerifyRoundTrip(t *testing.T) {
	v := New(256)
	challenge := []byte{0xaa}

	proof, err := v.Solve(context.Background(), challenge, 66, nil)
	require.NoError(t, err)
	require.NotEmpty(t, proof)

	require.NoError(t, v.Verify(challenge, 66, proof, nil))
}

func TestSolveDeterministic(t *testing.T) {
	v := New(256)
	challenge := []byte("determinism-check")

	a, err := v.Solve(context.Background(), challenge, 66, nil)
	require.NoError(t, err)
	b, err := v.Solve(context.Background(), challenge, 66, nil)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	v := New(256)
	challenge := []byte{0x01, 0x02}

	proof, err := v.Solve(context.Background(), challenge, 66, nil)
	require.NoError(t, err)

	tampered := append([]byte{}, proof...)
	tampered[len(tampered)-1] ^= 0xff

	require.ErrorIs(t, v.Verify(challenge, 66, tampered, nil), vdferrors.ErrInvalidProof)
}

func TestVerifyRejectsWrongIterationCount(t *testing.T) {
	v := New(256)
	challenge := []byte{0x01, 0x02}

	proof, err := v.Solve(context.Background(), challenge, 66, nil)
	require.NoError(t, err)

	require.ErrorIs(t, v.Verify(challenge, 68, proof, nil), vdferrors.ErrInvalidProof)
}

func TestVerifyRejectsTruncatedProof(t *testing.T) {
	v := New(256)
	err := v.Verify([]byte{0x01}, 66, []byte{0x00, 0x01, 0x02}, nil)
	require.ErrorIs(t, err, vdferrors.ErrInvalidProof)
}

func TestSolveVerifyWithExplicitDiscriminant(t *testing.T) {
	v := New(256)
	challenge := []byte{0x07}
	d := discriminant.Create(challenge, 256)

	proof, err := v.Solve(context.Background(), challenge, 66, d)
	require.NoError(t, err)
	require.NoError(t, v.Verify(challenge, 66, proof, d))
}

// TestSolveRoundCountForT258 documents the round count this halving rule
// actually produces at t=258: the recursion halves down to the difficulty
// floor, 258 -> 130 -> 66, two rounds, so the proof carries exactly two mu
// elements after y and the base case checks x_round^(2^66) = y_round.
func TestSolveRoundCountForT258(t *testing.T) {
	v := New(256)
	challenge := []byte{0x25, 0x8}

	proof, err := v.Solve(context.Background(), challenge, 258, nil)
	require.NoError(t, err)

	d := discriminant.Create(challenge, 256)
	elemSize := 2 * classgroup.DefaultSize(d)
	require.Equal(t, 0, (len(proof)-elemSize)%elemSize)

	numMus := (len(proof) - elemSize) / elemSize
	require.Equal(t, 2, numMus)

	require.NoError(t, v.Verify(challenge, 258, proof, nil))
}

func TestSolveRespectsCancellation(t *testing.T) {
	v := New(256)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Solve(ctx, []byte{0x01}, 66, nil)
	require.Error(t, err)
}
