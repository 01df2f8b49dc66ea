package games

import (
	"crypto/rand"
	"math/big"
)

// Source is the uniform entropy a game draws outcomes from. Substituting a
// deterministic Source makes every generator reproducible in tests.
type Source interface {
	// Float64 returns a uniform random float in [0, 1).
	Float64() float64
	// Intn returns a uniform random int in [0, n).
	Intn(n int) int
}

// CryptoSource draws from crypto/rand (CSPRNG). The zero value is ready to use.
type CryptoSource struct{}

const float64Bits = 53

func (CryptoSource) Float64() float64 {
	max := big.NewInt(1 << float64Bits)
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0
	}
	return float64(v.Int64()) / (1 << float64Bits)
}

func (CryptoSource) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	v, err := rand.Int(rand.Reader, max)
	if err != nil {
		return 0
	}
	return int(v.Int64())
}
