package util

import (
	"math/rand"
	"time"
)

// New returns a deterministic source for seed; 0 picks one from the clock.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
