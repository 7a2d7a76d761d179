package roll

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/KirkDiggler/midnight/internal/models"
)

var formulaPattern = regexp.MustCompile(`(?i)^(\d+)?d(\d+)([+-]\d+)?$`)

// ParseFormula parses "NdS+M" style formulas. The count defaults to 1 and the
// modifier to 0. It returns false for anything that does not match or asks
// for fewer than one die or fewer than MinDiceSides sides, which callers
// treat as a no-op rather than an error.
func ParseFormula(text string) (*models.RollRequest, bool) {
	matches := formulaPattern.FindStringSubmatch(strings.TrimSpace(text))
	if matches == nil {
		return nil, false
	}

	count := 1
	if matches[1] != "" {
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return nil, false
		}
		count = n
	}
	if count < 1 {
		return nil, false
	}

	sides, err := strconv.Atoi(matches[2])
	if err != nil || sides < MinDiceSides {
		return nil, false
	}

	modifier := 0
	if matches[3] != "" {
		m, err := strconv.Atoi(matches[3])
		if err != nil {
			return nil, false
		}
		modifier = m
	}

	return &models.RollRequest{
		DiceCount:     count,
		DiceSides:     sides,
		Modifier:      modifier,
		AdvantageMode: models.AdvantageModeNormal,
	}, true
}

// FormatFormula renders a request for display, e.g. "1d20+3 (advantage)"
func FormatFormula(req *models.RollRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%dd%d", req.DiceCount, req.DiceSides)
	if req.Modifier != 0 {
		fmt.Fprintf(&b, "%+d", req.Modifier)
	}

	switch req.AdvantageMode {
	case models.AdvantageModeAdvantage:
		b.WriteString(" (advantage)")
	case models.AdvantageModeDisadvantage:
		b.WriteString(" (disadvantage)")
	}

	return b.String()
}
