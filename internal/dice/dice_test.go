package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRollStaysInRange(t *testing.T) {
	roller := New(&Config{Seed: 42})

	for _, sides := range []int{2, 4, 6, 8, 10, 12, 20, 100} {
		for i := 0; i < 500; i++ {
			v := roller.Roll(sides)
			assert.GreaterOrEqual(t, v, 1)
			assert.LessOrEqual(t, v, sides)
		}
	}
}

func TestSeededRollersAgree(t *testing.T) {
	a := New(&Config{Seed: 7})
	b := New(&Config{Seed: 7})

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Roll(20), b.Roll(20))
	}
}

func TestRollWithoutSides(t *testing.T) {
	roller := New(nil)
	assert.Equal(t, 1, roller.Roll(0))
}
