package messaging

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/KirkDiggler/midnight/internal/dice"
	"github.com/KirkDiggler/midnight/internal/models"
)

// critSides is the die whose natural faces earn flavor text
const critSides = 20

// service implements the Service interface
type service struct {
	// Picks flavor lines
	diceRoller dice.Roller
}

// New creates a new messaging service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.DiceRoller == nil {
		return nil, ErrNilDiceRoller
	}

	return &service{
		diceRoller: cfg.DiceRoller,
	}, nil
}

// GetRollResultMessage returns the feed line for a roll, plus flavor on a natural 20 or 1
func (s *service) GetRollResultMessage(ctx context.Context, input *GetRollResultMessageInput) (*GetRollResultMessageOutput, error) {
	if input == nil || input.Roll == nil {
		return nil, ErrNilInput
	}

	roll := input.Roll
	name := roll.Roller
	if name == "" {
		name = "Someone"
	}
	if input.IsPersonalMessage {
		name = "You"
	}

	out := &GetRollResultMessageOutput{
		Line:           fmt.Sprintf("%s rolled %s: %s = %d", name, roll.Formula, renderDice(roll), roll.Total),
		IsCriticalHit:  isCriticalHit(roll),
		IsCriticalFail: isCriticalFail(roll),
	}

	switch {
	case out.IsCriticalHit:
		titles := []string{
			"NATURAL 20!",
			"Critical!",
			"The Light answers!",
		}

		var messages []string
		if input.IsPersonalMessage {
			messages = []string{
				"The dark blinks first. Make it count.",
				"Whatever is watching from the shadows just took a step back.",
				"You found the crack in the night and pried it open.",
			}
		} else {
			messages = []string{
				fmt.Sprintf("%s found the crack in the night and pried it open.", name),
				fmt.Sprintf("The dark blinks first. %s makes it count.", name),
				fmt.Sprintf("Whatever is watching %s just took a step back.", name),
			}
		}

		out.Title = s.pick(titles)
		out.Message = s.pick(messages)

	case out.IsCriticalFail:
		titles := []string{
			"Natural 1.",
			"Critical fail!",
			"The night bites back.",
		}

		var messages []string
		if input.IsPersonalMessage {
			messages = []string{
				"Something out there heard that.",
				"The streetlight flickers. That is never a good sign.",
				"You reach for the Light and grab a fistful of nothing.",
			}
		} else {
			messages = []string{
				fmt.Sprintf("Something out there heard %s.", name),
				fmt.Sprintf("The streetlight flickers over %s. That is never a good sign.", name),
				fmt.Sprintf("%s reaches for the Light and grabs a fistful of nothing.", name),
			}
		}

		out.Title = s.pick(titles)
		out.Message = s.pick(messages)
	}

	return out, nil
}

// GetTurnMessage announces the active combatant
func (s *service) GetTurnMessage(ctx context.Context, input *GetTurnMessageInput) (*GetTurnMessageOutput, error) {
	if input == nil || input.Current == nil {
		return nil, ErrNilInput
	}

	current := input.Current

	var messages []string
	switch current.Type {
	case models.CombatantTypePC:
		messages = []string{
			fmt.Sprintf("%s, you're up.", current.Name),
			fmt.Sprintf("All eyes on %s.", current.Name),
			fmt.Sprintf("%s steps out of the shadows. Your move.", current.Name),
		}
	default:
		messages = []string{
			fmt.Sprintf("%s moves.", current.Name),
			fmt.Sprintf("%s stirs in the dark.", current.Name),
			fmt.Sprintf("It's %s's turn. Brace yourselves.", current.Name),
		}
	}

	message := s.pick(messages)
	if len(current.Conditions) > 0 {
		message = fmt.Sprintf("%s (%s)", message, strings.Join(current.Conditions, ", "))
	}
	if input.NewRound {
		message = "New round! " + message
	}

	return &GetTurnMessageOutput{
		Message: message,
	}, nil
}

// GetInitiativeMessage renders the order with a marker on the active combatant
func (s *service) GetInitiativeMessage(ctx context.Context, input *GetInitiativeMessageInput) (*GetInitiativeMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	state := input.State
	if state == nil || len(state.Combatants) == 0 {
		return &GetInitiativeMessageOutput{
			Title: "Initiative is empty",
			Lines: []string{},
		}, nil
	}

	title := "Initiative (not started)"
	if state.IsActive {
		title = "Initiative"
	}

	lines := make([]string, 0, len(state.Combatants))
	for i, c := range state.Combatants {
		if c == nil {
			continue
		}
		marker := "  "
		if state.IsActive && i == state.CurrentTurn {
			marker = "> "
		}

		var b strings.Builder
		fmt.Fprintf(&b, "%s%3d  %s [%s]", marker, c.Initiative, c.Name, c.Type)
		if c.HP != nil {
			if c.MaxHP != nil {
				fmt.Fprintf(&b, " %d/%d HP", *c.HP, *c.MaxHP)
			} else {
				fmt.Fprintf(&b, " %d HP", *c.HP)
			}
		}
		if len(c.Conditions) > 0 {
			fmt.Fprintf(&b, " {%s}", strings.Join(c.Conditions, ", "))
		}
		lines = append(lines, b.String())
	}

	return &GetInitiativeMessageOutput{
		Title: title,
		Lines: lines,
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	var message string
	switch input.ErrorType {
	case ErrorTypeBadFormula:
		message = "That formula didn't parse. Try something like 2d6+1 or d20."
	case ErrorTypeNotGM:
		message = "Only the GM can do that."
	case ErrorTypeDisconnected:
		message = "Lost the connection to the table."
	case ErrorTypeNoCampaign:
		message = "Join a campaign first."
	default:
		message = "Something went wrong."
	}

	if input.Detail != "" {
		message = fmt.Sprintf("%s (%s)", message, input.Detail)
	}

	return &GetErrorMessageOutput{
		Message: message,
	}, nil
}

func (s *service) pick(options []string) string {
	return options[s.diceRoller.Roll(len(options))-1]
}

// renderDice lists draws in order, dropped dice in parentheses
func renderDice(roll *models.RollResult) string {
	parts := make([]string, 0, len(roll.AllRolls))
	if len(roll.Dice) > 0 {
		for _, d := range roll.Dice {
			if d.Dropped {
				parts = append(parts, "("+strconv.Itoa(d.Value)+")")
			} else {
				parts = append(parts, strconv.Itoa(d.Value))
			}
		}
	} else {
		for _, v := range roll.AllRolls {
			parts = append(parts, strconv.Itoa(v))
		}
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// isCriticalHit is a single kept d20 showing 20
func isCriticalHit(roll *models.RollResult) bool {
	return roll.DiceSides == critSides && len(roll.KeptRolls) == 1 && roll.KeptRolls[0] == critSides
}

// isCriticalFail is a single kept d20 showing 1
func isCriticalFail(roll *models.RollResult) bool {
	return roll.DiceSides == critSides && len(roll.KeptRolls) == 1 && roll.KeptRolls[0] == 1
}
