package roll

import (
	"testing"

	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormula(t *testing.T) {
	cases := []struct {
		text     string
		count    int
		sides    int
		modifier int
	}{
		{text: "2d6+3", count: 2, sides: 6, modifier: 3},
		{text: "d20", count: 1, sides: 20, modifier: 0},
		{text: "D20", count: 1, sides: 20, modifier: 0},
		{text: "4d8-2", count: 4, sides: 8, modifier: -2},
		{text: " 1d100 ", count: 1, sides: 100, modifier: 0},
		{text: "3D10+0", count: 3, sides: 10, modifier: 0},
	}

	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			req, ok := ParseFormula(tc.text)
			require.True(t, ok)
			assert.Equal(t, tc.count, req.DiceCount)
			assert.Equal(t, tc.sides, req.DiceSides)
			assert.Equal(t, tc.modifier, req.Modifier)
			assert.Equal(t, models.AdvantageModeNormal, req.AdvantageMode)
		})
	}
}

func TestParseFormulaRejects(t *testing.T) {
	for _, text := range []string{"garbage", "", "2d", "d", "2x6", "2d6+", "2d6 + 3", "-1d6", "2d6+3d4", "99999999999999999999d6", "0d6", "1d1", "1d0"} {
		t.Run(text, func(t *testing.T) {
			req, ok := ParseFormula(text)
			assert.False(t, ok)
			assert.Nil(t, req)
		})
	}
}

func TestFormatFormula(t *testing.T) {
	assert.Equal(t, "2d6+3", FormatFormula(&models.RollRequest{DiceCount: 2, DiceSides: 6, Modifier: 3}))
	assert.Equal(t, "1d20", FormatFormula(&models.RollRequest{DiceCount: 1, DiceSides: 20}))
	assert.Equal(t, "1d20-1 (disadvantage)", FormatFormula(&models.RollRequest{
		DiceCount: 1, DiceSides: 20, Modifier: -1, AdvantageMode: models.AdvantageModeDisadvantage,
	}))
	assert.Equal(t, "1d20+5 (advantage)", FormatFormula(&models.RollRequest{
		DiceCount: 1, DiceSides: 20, Modifier: 5, AdvantageMode: models.AdvantageModeAdvantage,
	}))
}
