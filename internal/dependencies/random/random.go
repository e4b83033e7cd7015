package random

import (
	"crypto/rand"
	"math/big"
)

// MaxSeed bounds generated puzzle seeds so they stay short enough to share
const MaxSeed = 1<<31 - 1

// Random is the randomness used for IDs, tokens, seeds, placement and colours
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string

	// Seed returns a puzzle seed in [0, MaxSeed)
	Seed() int64
}

// CryptoRandom draws from crypto/rand. Used for anything a player must not guess.
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

func (r *CryptoRandom) Intn(n int) int {
	return int(cryptoInt63n(int64(n)))
}

func (r *CryptoRandom) String(length int, alphabet string) string {
	return pick(length, alphabet, r.Intn)
}

func (r *CryptoRandom) Seed() int64 {
	return cryptoInt63n(MaxSeed)
}

func cryptoInt63n(n int64) int64 {
	if n <= 0 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(n))
	if err != nil {
		return 0
	}
	return result.Int64()
}

// pick builds a string of length runes drawn from alphabet
func pick(length int, alphabet string, intn func(int) int) string {
	letters := []rune(alphabet)
	if length <= 0 || len(letters) == 0 {
		return ""
	}
	result := make([]rune, length)
	for i := range result {
		result[i] = letters[intn(len(letters))]
	}
	return string(result)
}
