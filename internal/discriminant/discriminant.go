// Package discriminant deterministically derives a negative fundamental
// discriminant D = -p, p ≡ 7 (mod 8) prime, from a seed and a target bit
// length.
package discriminant

import (
	"encoding/binary"
	"math/big"

	"github.com/quilibrium-labs/classgroup-vdf/internal/bigintcodec"
)

var big8 = big.NewInt(8)
var big7 = big.NewInt(7)

// Create returns D = -p for the smallest prime p ≡ 7 (mod 8) reachable from
// (seed, bits) by the deterministic search below. Deterministic in
// (seed, bits); has no failure mode (the sieve simply widens its window
// until it finds a hit).
func Create(seed []byte, bits uint32) *big.Int {
	n := seedToCandidateBase(seed, bits)

	for {
		sieve := markComposites(n)

		for i, marked := range sieve {
			if marked {
				continue
			}
			candidate := new(big.Int).Add(n, new(big.Int).Mul(residueModulus, big.NewInt(int64(i))))
			if new(big.Int).Mod(candidate, big8).Cmp(big7) != 0 {
				continue
			}
			if bigintcodec.IsProbablePrime(candidate, 2) {
				return new(big.Int).Neg(candidate)
			}
		}

		n.Add(n, new(big.Int).Mul(residueModulus, big.NewInt(windowSize)))
	}
}

// seedToCandidateBase runs the SHA-256 counter-mode entropy expansion,
// shapes it to exactly bits bits with the top bit forced, then nudges it to
// the residue class selected by the entropy's trailing 16 bits.
func seedToCandidateBase(seed []byte, bits uint32) *big.Int {
	byteCount := ((bits + 7) >> 3) + 2
	entropy := expandEntropy(seed, byteCount)

	n := new(big.Int).SetBytes(entropy[:len(entropy)-2])
	extra := uint(bits) & 7
	n.Rsh(n, (8-extra)&7)
	n.SetBit(n, int(bits-1), 1)

	idx := binary.BigEndian.Uint16(entropy[len(entropy)-2:])
	r := residues[int(idx)%len(residues)]

	n.Sub(n, new(big.Int).Mod(n, residueModulus))
	n.Add(n, big.NewInt(r))

	return n
}

// expandEntropy expands seed via SHA-256 counter mode: seed || u16(counter),
// hashed and concatenated, until at least byteCount bytes are produced.
func expandEntropy(seed []byte, byteCount uint32) []byte {
	out := make([]byte, 0, byteCount+32)
	input := make([]byte, len(seed)+2)
	copy(input, seed)

	var counter uint16
	for uint32(len(out)) <= byteCount {
		binary.BigEndian.PutUint16(input[len(seed):], counter)
		h := bigintcodec.Sum256(input)
		out = append(out, h[:]...)
		counter++
	}

	return out[:byteCount]
}
