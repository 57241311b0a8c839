// Package bigintcodec implements the two's-complement wire codec and the
// small number-theoretic primitives shared by the class group and both VDF
// constructions.
package bigintcodec

import (
	"math/big"

	"github.com/pkg/errors"
)

var bigOne = big.NewInt(1)

// BytesToInt interprets buf as a two's-complement big-endian signed integer.
// An empty buffer denotes zero.
func BytesToInt(buf []byte) *big.Int {
	if len(buf) == 0 {
		return big.NewInt(0)
	}
	if buf[0]&0x80 == 0 {
		return new(big.Int).SetBytes(buf)
	}
	inverted := make([]byte, len(buf))
	for i, b := range buf {
		inverted[i] = b ^ 0xff
	}
	n := new(big.Int).SetBytes(inverted)
	return n.Sub(n.Neg(n), bigOne)
}

// IntToBytes writes v right-aligned into width bytes, two's-complement
// big-endian. It fails if v does not fit in width bytes.
func IntToBytes(v *big.Int, width int) ([]byte, error) {
	raw := encodeTwosComplement(v)
	if len(raw) > width {
		return nil, errors.Errorf("bigintcodec: %s does not fit in %d bytes", v.String(), width)
	}
	return signExtend(raw, width), nil
}

// U64ToBytes emits the 8-byte big-endian unsigned encoding of n.
//
// The shifted value here must be a local accumulator, never the caller's
// argument in place — reusing n directly makes every subsequent shift act on
// an already-shifted value and the Fiat-Shamir counter in HashPrime stops
// advancing.
func U64ToBytes(n uint64) [8]byte {
	var buf [8]byte
	acc := n
	for i := 7; i >= 0; i-- {
		buf[i] = byte(acc)
		acc >>= 8
	}
	return buf
}

// BitLen returns the number of bits in |n|; 0 for n == 0.
func BitLen(n *big.Int) int {
	return new(big.Int).Abs(n).BitLen()
}

func encodeTwosComplement(n *big.Int) []byte {
	switch n.Sign() {
	case 0:
		return []byte{}
	case 1:
		raw := n.Bytes()
		if raw[0]&0x80 == 0 {
			return raw
		}
		buf := make([]byte, len(raw)+1)
		copy(buf[1:], raw)
		return buf
	default:
		nMinus1 := new(big.Int).Neg(n)
		nMinus1.Sub(nMinus1, bigOne)
		raw := nMinus1.Bytes()
		if len(raw) == 0 {
			return []byte{0xff}
		}
		for i := range raw {
			raw[i] ^= 0xff
		}
		if raw[0]&0x80 != 0 {
			return raw
		}
		buf := make([]byte, len(raw)+1)
		buf[0] = 0xff
		copy(buf[1:], raw)
		return buf
	}
}

func signExtend(raw []byte, width int) []byte {
	if len(raw) >= width {
		return raw
	}
	buf := make([]byte, width)
	offset := width - len(raw)
	if len(raw) > 0 && raw[0]&0x80 != 0 {
		for i := 0; i < offset; i++ {
			buf[i] = 0xff
		}
	}
	copy(buf[offset:], raw)
	return buf
}
