package stock

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Source yields uniform draws in [0,1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// SourceFunc adapts a plain function to Source
type SourceFunc func() float64

// Float64 implements Source
func (f SourceFunc) Float64() float64 {
	return f()
}

// Constant returns a source that always yields v
func Constant(v float64) Source {
	return SourceFunc(func() float64 { return v })
}

// Sequence returns a source that replays draws in order, repeating the last one.
func Sequence(draws ...float64) Source {
	i := 0
	return SourceFunc(func() float64 {
		if len(draws) == 0 {
			return 0
		}
		v := draws[min(i, len(draws)-1)]
		i++
		return v
	})
}

// NewSeededSource returns a deterministic source for the given seed.
// Not safe for concurrent use.
func NewSeededSource(seed int64) *rand.Rand {
	// #nosec G404 -- stock rolls are game randomness, not secrets
	return rand.New(rand.NewPCG(seedWord(seed, "stock"), seedWord(seed, "qty")))
}

// NewSource returns a source seeded from crypto/rand
func NewSource() (*rand.Rand, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewSeededSource(seed), nil
}

// NewSeed generates a random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}
