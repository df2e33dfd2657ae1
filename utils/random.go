package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"

	"github.com/pkg/errors"
)

// NewSeed generates a non-zero random seed using crypto/rand.
func NewSeed() (int64, error) {
	var b [8]byte
	for {
		if _, err := crand.Read(b[:]); err != nil {
			return 0, errors.Wrap(err, "[NewSeed] failed to read random seed")
		}
		if seed := int64(binary.LittleEndian.Uint64(b[:])); seed != 0 {
			return seed, nil
		}
	}
}

// NewRandomSource returns a PRNG for seed along with the seed actually used.
// A zero seed is replaced with a fresh one so that runs can be replayed from logs.
func NewRandomSource(seed int64) (*rand.Rand, int64, error) {
	if seed == 0 {
		var err error
		if seed, err = NewSeed(); err != nil {
			return nil, 0, err
		}
	}
	return rand.New(rand.NewSource(seed)), seed, nil
}
