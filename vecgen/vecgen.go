// Package vecgen produces pseudo-random test vectors of 10^k signed 32-bit
// integers for tests and benchmarks.
package vecgen

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

// MaxExponent is the largest supported exponent, 10^9 values.
const MaxExponent = 9

var ErrExponentTooLarge = errors.New("exponent too large")

// Size returns 10^zeroes, or 0 when zeroes is 0.
func Size(zeroes uint32) (int, error) {
	if zeroes == 0 {
		return 0, nil
	}
	if zeroes > MaxExponent {
		return 0, fmt.Errorf("%w: %d > %d", ErrExponentTooLarge, zeroes, MaxExponent)
	}
	n := 1
	for i := uint32(0); i < zeroes; i++ {
		n *= 10
	}
	return n, nil
}

// Generator draws vectors from its own source. It is not safe for concurrent use.
type Generator struct {
	rng *rand.Rand
}

// New returns a Generator whose output is fully determined by seed.
func New(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Vector returns 10^zeroes random values covering the whole int32 range.
// E.g. Vector(6) returns one million integers. Vector(0) returns an empty slice.
func (g *Generator) Vector(zeroes uint32) ([]int32, error) {
	n, err := Size(zeroes)
	if err != nil {
		return nil, err
	}
	out := make([]int32, n)
	for i := range out {
		out[i] = int32(g.rng.Uint32())
	}
	return out, nil
}

// GenerateVector is Vector on a generator seeded from the clock.
// It panics if zeroes exceeds MaxExponent.
func GenerateVector(zeroes uint32) []int32 {
	v, err := New(time.Now().UnixNano()).Vector(zeroes)
	if err != nil {
		panic(err)
	}
	return v
}
