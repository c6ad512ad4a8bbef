package minimax

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is a process-wide random source safe for use by concurrent rounds.
type Source struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSource seeds once; a zero seed is replaced by the current time.
func NewSource(seed uint64) *Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint: gosec // it's ok
	}

	return &Source{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), //nolint: gosec // game tie-breaks only
	}
}

func (that *Source) IntN(n int) int {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.IntN(n)
}
