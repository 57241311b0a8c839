package discriminant

import "math/big"

// smallOddPrimes are multiplied together to form the residue modulus M.
// Their product bounds how finely the sieve window (see sieve.go) needs to
// stride: any prime in this list is handled by direct modular reduction
// rather than by the small-prime sieve table.
var smallOddPrimes = []int64{3, 5, 7, 11, 13, 17, 19, 23, 29}

// residueModulus M: the residues table below enumerates values in [0, M)
// congruent to 7 mod 8, used to bias the discriminant search away from
// always landing on the same residue class for a given seed.
var residueModulus = func() *big.Int {
	m := big.NewInt(1)
	for _, p := range smallOddPrimes {
		m.Mul(m, big.NewInt(p))
	}
	return m
}()

// residueTableSize bounds how many residues get precomputed; the seed's
// trailing 16 bits index into this table modulo its length.
const residueTableSize = 4096

// residues holds values r in [0, residueModulus) with r ≡ 7 (mod 8) and
// gcd(r, residueModulus) == 1, computed once at package init.
var residues = buildResidues()

func buildResidues() []int64 {
	m := residueModulus.Int64()
	out := make([]int64, 0, residueTableSize)
	for r := int64(7); r < m && len(out) < residueTableSize; r += 8 {
		if isCoprimeToModulus(r) {
			out = append(out, r)
		}
	}
	return out
}

func isCoprimeToModulus(r int64) bool {
	for _, p := range smallOddPrimes {
		if r%p == 0 {
			return false
		}
	}
	return true
}
