package models

import (
	"time"
)

// AdvantageMode selects how many dice are kept after the extra die is drawn
type AdvantageMode string

const (
	// AdvantageModeDisadvantage rolls one extra die and keeps the lowest
	AdvantageModeDisadvantage AdvantageMode = "disadvantage"

	// AdvantageModeNormal keeps every die rolled
	AdvantageModeNormal AdvantageMode = "normal"

	// AdvantageModeAdvantage rolls one extra die and keeps the highest
	AdvantageModeAdvantage AdvantageMode = "advantage"
)

// IsValid reports whether the mode is one of the known modes
func (m AdvantageMode) IsValid() bool {
	switch m {
	case AdvantageModeDisadvantage, AdvantageModeNormal, AdvantageModeAdvantage:
		return true
	}
	return false
}

// RollRequest describes a roll before any dice are drawn
type RollRequest struct {
	// DiceSides is the die type, e.g. 20 for a d20
	DiceSides int `json:"diceSides"`

	// DiceCount is the number of dice requested, before the advantage die
	DiceCount int `json:"diceCount"`

	// Modifier is added to the kept total
	Modifier int `json:"modifier"`

	// AdvantageMode defaults to normal when empty
	AdvantageMode AdvantageMode `json:"advantageMode,omitempty"`
}

// Die is a single drawn die in draw order
type Die struct {
	Value   int  `json:"value"`
	Dropped bool `json:"dropped"`
}

// RollResult is an immutable resolved roll
type RollResult struct {
	// ID is the unique identifier for the roll
	ID string `json:"id"`

	DiceSides     int           `json:"diceSides"`
	DiceCount     int           `json:"diceCount"`
	Modifier      int           `json:"modifier"`
	AdvantageMode AdvantageMode `json:"advantageMode"`

	// AllRolls holds every die drawn, in draw order
	AllRolls []int `json:"allRolls"`

	// KeptRolls counts toward the total, highest first under advantage or disadvantage
	KeptRolls []int `json:"keptRolls"`

	// DroppedRolls is the complement of KeptRolls within AllRolls
	DroppedRolls []int `json:"droppedRolls"`

	// Dice marks which drawn die was dropped, by draw position
	Dice []Die `json:"dice"`

	// Total is sum(KeptRolls) + Modifier
	Total int `json:"total"`

	// Formula is a display rendering of the request
	Formula string `json:"formula"`

	// Timestamp is when the roll was made
	Timestamp time.Time `json:"timestamp"`

	// Roller is the display or character name supplied by the caller
	Roller string `json:"roller"`
}
