package dice

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_roller.go github.com/KirkDiggler/midnight/internal/dice Roller

// Roller is the entropy source behind every die the roll engine draws
type Roller interface {
	// Roll returns a uniform value in [1, sides]
	Roll(sides int) int
}

// Config for dice roller
type Config struct {
	// Optional seed for testing
	Seed int64
}

// randomRoller draws from math/rand, guarded so HTTP and socket handlers can share it
type randomRoller struct {
	mu     sync.Mutex
	random *rand.Rand
}

// New creates a new dice roller
func New(cfg *Config) *randomRoller {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &randomRoller{
		random: rand.New(rand.NewSource(seed)),
	}
}

// Roll generates a random dice roll with the specified number of sides
func (r *randomRoller) Roll(sides int) int {
	if sides < 1 {
		return 1
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.random.Intn(sides) + 1
}
