package classgroup

import (
	"math/big"

	"github.com/quilibrium-labs/classgroup-vdf/internal/bigintcodec"
)

// DefaultSize returns the per-coordinate wire width for a discriminant of
// the given magnitude: floor((bitlen(-D) + 16) / 16) bytes.
func DefaultSize(d *big.Int) int {
	return (bigintcodec.BitLen(d) + 16) >> 4
}

// Serialize encodes the reduced form's A and B coordinates, each right
// aligned into size bytes, two's-complement big-endian. The total length is
// 2*size; C is never serialized since it is recoverable from A, B and D.
func (f Form) Serialize(size int) ([]byte, error) {
	r := f.Reduce()

	aBytes, err := bigintcodec.IntToBytes(r.A, size)
	if err != nil {
		return nil, err
	}
	bBytes, err := bigintcodec.IntToBytes(r.B, size)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, 2*size)
	copy(buf[:size], aBytes)
	copy(buf[size:], bBytes)
	return buf, nil
}

// Deserialize splits buf in half, decodes A and B, and reconstructs C under
// discriminant d.
func Deserialize(buf []byte, d *big.Int) (Form, error) {
	if len(buf)%2 != 0 {
		return Form{}, ErrNonExactDivision
	}
	half := len(buf) / 2
	a := bigintcodec.BytesToInt(buf[:half])
	b := bigintcodec.BytesToInt(buf[half:])
	if a.Sign() == 0 {
		return Form{}, ErrNonExactDivision
	}
	return FromAB(a, b, d)
}
