package roll

import (
	"context"
	"sort"

	"github.com/KirkDiggler/midnight/internal/common/clock"
	"github.com/KirkDiggler/midnight/internal/common/uuid"
	"github.com/KirkDiggler/midnight/internal/dice"
	"github.com/KirkDiggler/midnight/internal/models"
)

// service implements the Service interface
type service struct {
	maxDice       int
	diceRoller    dice.Roller
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new roll service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	maxDice := cfg.MaxDice
	if maxDice <= 0 {
		maxDice = DefaultMaxDice
	}

	return &service{
		maxDice:       maxDice,
		diceRoller:    cfg.DiceRoller,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// Roll resolves a roll request into a stamped result
func (s *service) Roll(ctx context.Context, input *RollInput) (*RollOutput, error) {
	if input == nil || input.Request == nil {
		return nil, ErrNilInput
	}

	result, err := Resolve(input.Request, s.diceRoller, s.maxDice)
	if err != nil {
		return nil, err
	}

	result.ID = s.uuidGenerator.NewUUID()
	result.Timestamp = s.clock.Now()
	result.Roller = input.Roller

	return &RollOutput{
		Result: result,
	}, nil
}

// RollFormula parses and resolves a typed formula
func (s *service) RollFormula(ctx context.Context, input *RollFormulaInput) (*RollFormulaOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	req, ok := ParseFormula(input.Formula)
	if !ok || req.DiceCount > s.maxDice {
		return &RollFormulaOutput{Parsed: false}, nil
	}
	if input.AdvantageMode != "" {
		req.AdvantageMode = input.AdvantageMode
	}

	out, err := s.Roll(ctx, &RollInput{
		Request: req,
		Roller:  input.Roller,
	})
	if err != nil {
		return nil, err
	}

	return &RollFormulaOutput{
		Parsed: true,
		Result: out.Result,
	}, nil
}

// taggedDie remembers where a value was drawn so equal faces stay distinguishable
type taggedDie struct {
	index int
	value int
}

// Resolve draws the dice for req from roller and partitions them into kept and
// dropped sets. Under advantage or disadvantage one extra die is drawn and the
// lowest or highest die is discarded; equal faces are kept in draw order.
// ID, Timestamp and Roller are left for the caller to stamp.
func Resolve(req *models.RollRequest, roller dice.Roller, maxDice int) (*models.RollResult, error) {
	mode := req.AdvantageMode
	if mode == "" {
		mode = models.AdvantageModeNormal
	}
	if req.DiceSides < MinDiceSides || req.DiceCount < 1 || !mode.IsValid() {
		return nil, ErrInvalidRequest
	}
	if maxDice > 0 && req.DiceCount > maxDice {
		return nil, ErrInvalidRequest
	}

	actualCount := req.DiceCount
	if mode != models.AdvantageModeNormal {
		actualCount++
	}

	all := make([]int, actualCount)
	for i := range all {
		all[i] = roller.Roll(req.DiceSides)
	}

	dieMarks := make([]models.Die, actualCount)
	for i, v := range all {
		dieMarks[i] = models.Die{Value: v}
	}

	var kept, dropped []int
	if mode == models.AdvantageModeNormal {
		kept = append([]int{}, all...)
		dropped = []int{}
	} else {
		tagged := make([]taggedDie, actualCount)
		for i, v := range all {
			tagged[i] = taggedDie{index: i, value: v}
		}

		if mode == models.AdvantageModeAdvantage {
			sort.SliceStable(tagged, func(i, j int) bool { return tagged[i].value > tagged[j].value })
		} else {
			sort.SliceStable(tagged, func(i, j int) bool { return tagged[i].value < tagged[j].value })
		}

		keep := tagged[:req.DiceCount]
		drop := tagged[req.DiceCount:]

		// kept dice display highest first regardless of mode
		if mode == models.AdvantageModeDisadvantage {
			keep = append([]taggedDie{}, keep...)
			sort.SliceStable(keep, func(i, j int) bool { return keep[i].value > keep[j].value })
		}

		kept = make([]int, 0, len(keep))
		for _, d := range keep {
			kept = append(kept, d.value)
		}
		dropped = make([]int, 0, len(drop))
		for _, d := range drop {
			dropped = append(dropped, d.value)
			dieMarks[d.index].Dropped = true
		}
	}

	total := req.Modifier
	for _, v := range kept {
		total += v
	}

	normalized := *req
	normalized.AdvantageMode = mode

	return &models.RollResult{
		DiceSides:     req.DiceSides,
		DiceCount:     req.DiceCount,
		Modifier:      req.Modifier,
		AdvantageMode: mode,
		AllRolls:      all,
		KeptRolls:     kept,
		DroppedRolls:  dropped,
		Dice:          dieMarks,
		Total:         total,
		Formula:       FormatFormula(&normalized),
	}, nil
}
