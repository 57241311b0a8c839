package wesolowski

import (
	"math"
	"math/big"

	"github.com/quilibrium-labs/classgroup-vdf/internal/bigintcodec"
	"github.com/quilibrium-labs/classgroup-vdf/internal/classgroup"
)

// ApproximateParameters picks (L, k, w) for the windowed evaluator from the
// iteration count t, trading prover memory (L class-group elements cached
// per k*L iterations) against proof-generation time. w is not consumed by
// EvalOptimized; Solve discards it.
func ApproximateParameters(t uint64) (l, k, w int) {
	logMemory := math.Log(10000000) / math.Log(2)
	logT := math.Log(float64(t)) / math.Log(2)

	l = 1
	if logT-logMemory > 0 {
		l = int(math.Ceil(math.Pow(2, logMemory-20)))
	}

	intermediate := float64(t) * math.Log(2) / float64(2*l)
	k = int(math.Max(math.Round(math.Log(intermediate)-math.Log(math.Log(intermediate))+0.25), 1))

	// 1/w approximates the proportion of total solve time spent on the proof.
	w = int(math.Floor(float64(t)/(float64(t)/float64(k)+float64(l)*math.Pow(2, float64(k+1)))) - 2)

	return l, k, w
}

// HashPrime derives the Fiat-Shamir prime challenge B from seedParts: it
// hashes an incrementing counter alongside them until the first 16 bytes of
// the digest, read as an unsigned big-endian integer, are prime. Counter encoding uses bigintcodec.U64ToBytes rather
// than shifting a caller-owned buffer directly, since a counter encoder that
// mutates its argument in place repeats the same bytes forever and the
// primality loop never terminates.
func HashPrime(seedParts ...[]byte) *big.Int {
	var counter uint64
	z := new(big.Int)
	for {
		cBuf := bigintcodec.U64ToBytes(counter)

		parts := make([][]byte, 0, len(seedParts)+2)
		parts = append(parts, []byte("prime"), cBuf[:])
		parts = append(parts, seedParts...)

		h := bigintcodec.Sum256(parts...)
		z.SetBytes(h[:16])

		if bigintcodec.IsProbablePrime(z, 2) {
			return z
		}
		counter++
	}
}

// GetBlock returns the ith k-bit digit of floor(2^t / B) in base 2^k, i.e.
// floor(2^k * (2^(t - k*(i+1)) mod B) / B).
func GetBlock(i, k int, t uint64, b *big.Int) *big.Int {
	shift := int64(t) - int64(k)*int64(i+1)
	p1 := new(big.Int).Lsh(big.NewInt(1), uint(k))
	p2 := new(big.Int).Exp(big.NewInt(2), big.NewInt(shift), b)
	num := new(big.Int).Mul(p1, p2)
	return floorDivPositive(num, b)
}

func floorDivPositive(x, y *big.Int) *big.Int {
	q := new(big.Int)
	q.Div(x, y)
	return q
}

// EvalOptimized computes h^(floor(2^t / B)) using the precomputed power
// table C = {h^(2^(i*k*l)) : i in [0, ceil(t/(k*l))]} via the windowed
// long-division method: split the exponent's base-2^k digits into two
// halves of k1, k0 bits and fold each half's contribution with a single
// group multiplication per distinct half-digit value.
func EvalOptimized(identity, h classgroup.Form, b *big.Int, t uint64, k, l int, powers map[int]classgroup.Form) (classgroup.Form, error) {
	k1 := k / 2
	k0 := k - k1

	x := identity

	for j := l - 1; j >= 0; j-- {
		var err error
		x, err = x.PowInt64(int64(1) << uint(k))
		if err != nil {
			return classgroup.Form{}, err
		}

		bLimit := int64(1) << uint(k)
		ys := make([]classgroup.Form, bLimit)
		for i := range ys {
			ys[i] = identity
		}

		loopCount := int(math.Ceil(float64(t) / float64(k*l)))
		for i := 0; i < loopCount; i++ {
			if int64(t)-int64(k)*(int64(i*l+j+1)) < 0 {
				continue
			}
			block := GetBlock(i*l+j, k, t, b).Int64()
			p, ok := powers[i*k*l]
			if !ok {
				continue
			}
			ys[block], err = ys[block].Compose(p)
			if err != nil {
				return classgroup.Form{}, err
			}
		}

		for b1 := int64(0); b1 < int64(1)<<uint(k1); b1++ {
			z := identity
			for b0 := int64(0); b0 < int64(1)<<uint(k0); b0++ {
				idx := b1<<uint(k0) + b0
				z, err = z.Compose(ys[idx])
				if err != nil {
					return classgroup.Form{}, err
				}
			}
			c, err := z.PowInt64(b1 << uint(k0))
			if err != nil {
				return classgroup.Form{}, err
			}
			x, err = x.Compose(c)
			if err != nil {
				return classgroup.Form{}, err
			}
		}

		for b0 := int64(0); b0 < int64(1)<<uint(k0); b0++ {
			z := identity
			for b1 := int64(0); b1 < int64(1)<<uint(k1); b1++ {
				idx := b1<<uint(k0) + b0
				z, err = z.Compose(ys[idx])
				if err != nil {
					return classgroup.Form{}, err
				}
			}
			d, err := z.PowInt64(b0)
			if err != nil {
				return classgroup.Form{}, err
			}
			x, err = x.Compose(d)
			if err != nil {
				return classgroup.Form{}, err
			}
		}
	}

	return x, nil
}
