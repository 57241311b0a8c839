package wesolowski

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/quilibrium-labs/classgroup-vdf/internal/vdferrors"
)

func TestCheckDifficultyRejectsZero(t *testing.T) {
	v := New(256)
	require.ErrorIs(t, v.CheckDifficulty(0), vdferrors.ErrInvalidIterations)
}

func TestCheckDifficultyAcceptsOne(t *testing.T) {
	v := New(256)
	require.NoError(t, v.CheckDifficulty(1))
}

func TestSolveVerifyRoundTrip(t *testing.T) {
	v := New(256)
	challenge := []byte{0xaa}

	proof, err := v.Solve(context.Background(), challenge, 66, nil)
	require.NoError(t, err)
	require.NotEmpty(t, proof)
	require.Equal(t, 0, len(proof)%4)

	require.NoError(t, v.Verify(challenge, 66, proof, nil))
}

func TestSolveDeterministic(t *testing.T) {
	v := New(256)
	challenge := []byte("determinism-check")

	a, err := v.Solve(context.Background(), challenge, 40, nil)
	require.NoError(t, err)
	b, err := v.Solve(context.Background(), challenge, 40, nil)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	v := New(256)
	challenge := []byte{0x01, 0x02}

	proof, err := v.Solve(context.Background(), challenge, 40, nil)
	require.NoError(t, err)

	tampered := append([]byte{}, proof...)
	tampered[len(tampered)-1] ^= 0xff

	require.ErrorIs(t, v.Verify(challenge, 40, tampered, nil), vdferrors.ErrInvalidProof)
}

func TestVerifyRejectsWrongIterationCount(t *testing.T) {
	v := New(256)
	challenge := []byte{0x01, 0x02}

	proof, err := v.Solve(context.Background(), challenge, 40, nil)
	require.NoError(t, err)

	require.ErrorIs(t, v.Verify(challenge, 41, proof, nil), vdferrors.ErrInvalidProof)
}

func TestVerifyRejectsWrongLength(t *testing.T) {
	v := New(256)
	err := v.Verify([]byte{0x01}, 40, []byte{0x00, 0x01, 0x02}, nil)
	require.ErrorIs(t, err, vdferrors.ErrInvalidProof)
}

func TestSolveRespectsCancellation(t *testing.T) {
	v := New(256)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Solve(ctx, []byte{0x01}, 66, nil)
	require.Error(t, err)
}
