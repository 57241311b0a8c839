package discriminant

import "math/big"

// windowSize is the number of consecutive candidates n, n+M, n+2M, ...
// examined per sieve pass, matching the "65536 candidates" window in the
// discriminant search.
const windowSize = 1 << 16

// sievePrimeBound caps the small-prime table used to mark composites within
// a window; primes dividing residueModulus are skipped since they can never
// divide a value congruent to a residue coprime to M.
const sievePrimeBound = 1 << 17

type sieveEntry struct {
	p int64
	q int64 // M^-1 mod p
}

var sieveTable = buildSieveTable()

func buildSieveTable() []sieveEntry {
	primes := sieveOfEratosthenes(sievePrimeBound)
	table := make([]sieveEntry, 0, len(primes))
	m := residueModulus
	for _, p := range primes {
		if !isCoprimeToModulus(p) {
			continue
		}
		bp := big.NewInt(p)
		inv := new(big.Int).ModInverse(m, bp)
		if inv == nil {
			continue
		}
		table = append(table, sieveEntry{p: p, q: inv.Int64()})
	}
	return table
}

func sieveOfEratosthenes(n int64) []int64 {
	composite := make([]bool, n+1)
	var primes []int64
	for i := int64(2); i <= n; i++ {
		if composite[i] {
			continue
		}
		primes = append(primes, i)
		for j := i * i; j <= n; j += i {
			composite[j] = true
		}
	}
	return primes
}

// markComposites flags, within a window of windowSize candidates starting
// at n (n + i*M for i in [0, windowSize)), every index known to be
// divisible by a small prime.
func markComposites(n *big.Int) []bool {
	sieve := make([]bool, windowSize)
	negN := new(big.Int).Neg(n)

	for _, entry := range sieveTable {
		bp := big.NewInt(entry.p)
		// i such that n + i*M ≡ 0 (mod p)  =>  i ≡ -n * M^-1 (mod p)
		i := new(big.Int).Mod(negN, bp)
		i.Mul(i, big.NewInt(entry.q))
		i.Mod(i, bp)

		idx := i.Int64()
		for idx < windowSize {
			sieve[idx] = true
			idx += entry.p
		}
	}

	return sieve
}
