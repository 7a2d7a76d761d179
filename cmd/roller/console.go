package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/KirkDiggler/midnight/internal/client"
	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/KirkDiggler/midnight/internal/services/initiative"
	"github.com/KirkDiggler/midnight/internal/services/messaging"
)

const helpText = `commands:
  /join <campaign>                      join a campaign room
  /leave                                leave the current room
  /roll <formula> [adv|dis]             roll and share, e.g. /roll 2d6+3
  <formula> [adv|dis]                   same as /roll
  /mine                                 your last rolls
  /feed                                 the table's recent rolls
  /init                                 show the turn order
  /request                              ask the GM for the current order
GM only:
  /add <name> <score> [pc|npc|monster] [hp]
  /remove <name|id>
  /hp <name|id> <hp>
  /cond <name|id> <condition>
  /uncond <name|id> <condition>
  /start  /next  /prev  /end
  /quit`

// console turns typed lines into session calls and renders what comes back
type console struct {
	session  *client.Session
	tracker  initiative.Service
	messages messaging.Service

	mu         sync.Mutex
	out        io.Writer
	campaignID string
}

type consoleConfig struct {
	Session    *client.Session
	Tracker    initiative.Service
	Messages   messaging.Service
	Out        io.Writer
	CampaignID string
}

func newConsole(cfg *consoleConfig) *console {
	return &console{
		session:    cfg.Session,
		tracker:    cfg.Tracker,
		messages:   cfg.Messages,
		out:        cfg.Out,
		campaignID: cfg.CampaignID,
	}
}

// errQuit ends the input loop
var errQuit = errors.New("quit")

// Handle processes one input line
func (c *console) Handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	if !strings.HasPrefix(line, "/") {
		return c.handleRoll(ctx, strings.Fields(line))
	}

	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "/help":
		c.printf("%s\n", helpText)
		return nil
	case "/quit", "/exit":
		return errQuit
	case "/join":
		return c.handleJoin(ctx, args)
	case "/leave":
		return c.handleLeave(ctx)
	case "/roll", "/r":
		return c.handleRoll(ctx, args)
	case "/mine":
		return c.handleHistory(ctx, c.session.OwnRolls(c.currentCampaign()), "your rolls")
	case "/feed":
		return c.handleHistory(ctx, c.session.Feed(c.currentCampaign()), "table feed")
	case "/init":
		state, _ := c.session.Initiative(c.currentCampaign())
		c.renderInitiative(ctx, state)
		return nil
	case "/request":
		return c.handleRequest(ctx)
	case "/add":
		return c.handleAdd(ctx, args)
	case "/remove", "/rm":
		return c.handleRemove(ctx, args)
	case "/hp":
		return c.handleHP(ctx, args)
	case "/cond":
		return c.handleCondition(ctx, args, true)
	case "/uncond":
		return c.handleCondition(ctx, args, false)
	case "/start", "/next", "/prev", "/end":
		return c.handleTurn(ctx, cmd)
	default:
		c.printf("unknown command %s, try /help\n", cmd)
		return nil
	}
}

func (c *console) handleJoin(ctx context.Context, args []string) error {
	if len(args) != 1 {
		c.printf("usage: /join <campaign>\n")
		return nil
	}

	previous := c.currentCampaign()
	if previous != "" && previous != args[0] {
		if err := c.session.Leave(ctx, previous); err != nil {
			return err
		}
	}

	if err := c.session.Join(ctx, args[0]); err != nil {
		return err
	}

	c.mu.Lock()
	c.campaignID = args[0]
	c.mu.Unlock()

	c.printf("joined %s\n", args[0])
	return nil
}

func (c *console) handleLeave(ctx context.Context) error {
	campaignID := c.currentCampaign()
	if campaignID == "" {
		c.showError(ctx, messaging.ErrorTypeNoCampaign, "")
		return nil
	}

	if err := c.session.Leave(ctx, campaignID); err != nil {
		return err
	}

	c.mu.Lock()
	c.campaignID = ""
	c.mu.Unlock()

	c.printf("left %s\n", campaignID)
	return nil
}

func (c *console) handleRoll(ctx context.Context, args []string) error {
	campaignID := c.currentCampaign()
	if campaignID == "" {
		c.showError(ctx, messaging.ErrorTypeNoCampaign, "")
		return nil
	}
	if len(args) == 0 {
		c.printf("usage: /roll <formula> [adv|dis]\n")
		return nil
	}

	mode := models.AdvantageModeNormal
	formula := args
	if len(args) > 1 {
		if m, ok := parseMode(args[len(args)-1]); ok {
			mode = m
			formula = args[:len(args)-1]
		}
	}

	result, ok, err := c.session.RollFormula(ctx, campaignID, strings.Join(formula, ""), mode)
	if err != nil && result == nil {
		c.showError(ctx, messaging.ErrorTypeBadFormula, err.Error())
		return nil
	}
	if !ok {
		c.showError(ctx, messaging.ErrorTypeBadFormula, strings.Join(formula, " "))
		return nil
	}

	c.renderRoll(ctx, result, true)
	return err
}

func (c *console) handleHistory(ctx context.Context, rolls []*models.RollResult, title string) error {
	c.printf("-- %s --\n", title)
	if len(rolls) == 0 {
		c.printf("(none)\n")
		return nil
	}

	for _, r := range rolls {
		out, err := c.messages.GetRollResultMessage(ctx, &messaging.GetRollResultMessageInput{Roll: r})
		if err != nil {
			return err
		}
		c.printf("%s\n", out.Line)
	}

	return nil
}

func (c *console) handleRequest(ctx context.Context) error {
	campaignID := c.currentCampaign()
	if campaignID == "" {
		c.showError(ctx, messaging.ErrorTypeNoCampaign, "")
		return nil
	}

	return c.session.RequestInitiative(ctx, campaignID)
}

func (c *console) handleAdd(ctx context.Context, args []string) error {
	if len(args) < 2 {
		c.printf("usage: /add <name> <score> [pc|npc|monster] [hp]\n")
		return nil
	}

	score, err := strconv.Atoi(args[1])
	if err != nil {
		c.printf("initiative score must be a number\n")
		return nil
	}

	combatant := &models.Combatant{
		Name:       args[0],
		Initiative: score,
		Type:       models.CombatantTypeNPC,
	}
	if len(args) > 2 {
		combatant.Type = models.CombatantType(strings.ToLower(args[2]))
	}
	if len(args) > 3 {
		hp, err := strconv.Atoi(args[3])
		if err != nil {
			c.printf("hp must be a number\n")
			return nil
		}
		combatant.HP = &hp
		combatant.MaxHP = &hp
	}

	return c.updateInitiative(ctx, func(state *models.InitiativeState) (*models.InitiativeState, error) {
		out, err := c.tracker.AddCombatant(ctx, &initiative.AddCombatantInput{
			State:     state,
			Combatant: combatant,
		})
		if err != nil {
			return nil, err
		}
		return out.State, nil
	})
}

func (c *console) handleRemove(ctx context.Context, args []string) error {
	if len(args) != 1 {
		c.printf("usage: /remove <name|id>\n")
		return nil
	}

	return c.updateInitiative(ctx, func(state *models.InitiativeState) (*models.InitiativeState, error) {
		target := findCombatant(state, args[0])
		if target == nil {
			return nil, initiative.ErrCombatantNotFound
		}

		out, err := c.tracker.RemoveCombatant(ctx, &initiative.RemoveCombatantInput{
			State:       state,
			CombatantID: target.ID,
		})
		if err != nil {
			return nil, err
		}
		return out.State, nil
	})
}

func (c *console) handleHP(ctx context.Context, args []string) error {
	if len(args) != 2 {
		c.printf("usage: /hp <name|id> <hp>\n")
		return nil
	}

	hp, err := strconv.Atoi(args[1])
	if err != nil {
		c.printf("hp must be a number\n")
		return nil
	}

	return c.updateInitiative(ctx, func(state *models.InitiativeState) (*models.InitiativeState, error) {
		target := findCombatant(state, args[0])
		if target == nil {
			return nil, initiative.ErrCombatantNotFound
		}

		updated := target.Clone()
		updated.HP = &hp
		if updated.MaxHP == nil {
			updated.MaxHP = &hp
		}

		out, err := c.tracker.UpdateCombatant(ctx, &initiative.UpdateCombatantInput{
			State:     state,
			Combatant: updated,
		})
		if err != nil {
			return nil, err
		}
		return out.State, nil
	})
}

func (c *console) handleCondition(ctx context.Context, args []string, add bool) error {
	if len(args) < 2 {
		c.printf("usage: /cond <name|id> <condition>\n")
		return nil
	}
	condition := strings.Join(args[1:], " ")

	return c.updateInitiative(ctx, func(state *models.InitiativeState) (*models.InitiativeState, error) {
		target := findCombatant(state, args[0])
		if target == nil {
			return nil, initiative.ErrCombatantNotFound
		}

		if add {
			out, err := c.tracker.AddCondition(ctx, &initiative.AddConditionInput{
				State:       state,
				CombatantID: target.ID,
				Condition:   condition,
			})
			if err != nil {
				return nil, err
			}
			return out.State, nil
		}

		out, err := c.tracker.RemoveCondition(ctx, &initiative.RemoveConditionInput{
			State:       state,
			CombatantID: target.ID,
			Condition:   condition,
		})
		if err != nil {
			return nil, err
		}
		return out.State, nil
	})
}

func (c *console) handleTurn(ctx context.Context, cmd string) error {
	var (
		current  *models.Combatant
		newRound bool
	)

	err := c.updateInitiative(ctx, func(state *models.InitiativeState) (*models.InitiativeState, error) {
		switch cmd {
		case "/start":
			out, err := c.tracker.StartCombat(ctx, &initiative.StartCombatInput{State: state})
			if err != nil {
				return nil, err
			}
			current = out.Current
			return out.State, nil
		case "/next":
			out, err := c.tracker.NextTurn(ctx, &initiative.NextTurnInput{State: state})
			if err != nil {
				return nil, err
			}
			current, newRound = out.Current, out.NewRound
			return out.State, nil
		case "/prev":
			out, err := c.tracker.PreviousTurn(ctx, &initiative.PreviousTurnInput{State: state})
			if err != nil {
				return nil, err
			}
			current = out.Current
			return out.State, nil
		default:
			out, err := c.tracker.EndCombat(ctx, &initiative.EndCombatInput{State: state})
			if err != nil {
				return nil, err
			}
			return out.State, nil
		}
	})
	if err != nil || current == nil {
		return err
	}

	msg, err := c.messages.GetTurnMessage(ctx, &messaging.GetTurnMessageInput{
		Current:  current,
		NewRound: newRound,
	})
	if err != nil {
		return err
	}
	c.printf("%s\n", msg.Message)

	return nil
}

// updateInitiative applies fn to the held snapshot and publishes the result.
// Tracker validation errors are shown, not returned.
func (c *console) updateInitiative(ctx context.Context, fn func(*models.InitiativeState) (*models.InitiativeState, error)) error {
	campaignID := c.currentCampaign()
	if campaignID == "" {
		c.showError(ctx, messaging.ErrorTypeNoCampaign, "")
		return nil
	}
	if !c.session.IsGM() {
		c.showError(ctx, messaging.ErrorTypeNotGM, "")
		return nil
	}

	state, ok := c.session.Initiative(campaignID)
	if !ok {
		state = &models.InitiativeState{}
	}

	next, err := fn(state)
	if err != nil {
		var trackerErr initiative.InitiativeError
		if errors.As(err, &trackerErr) {
			c.printf("%s\n", trackerErr.Error())
			return nil
		}
		return err
	}

	if err := c.session.PublishInitiative(ctx, campaignID, next); err != nil {
		if errors.Is(err, client.ErrNotGM) {
			c.showError(ctx, messaging.ErrorTypeNotGM, "")
			return nil
		}
		return err
	}

	c.renderInitiative(ctx, next)
	return nil
}

// OnRoll renders a roll relayed from another player
func (c *console) OnRoll(campaignID string, result *models.RollResult) {
	if campaignID != c.currentCampaign() {
		return
	}
	c.renderRoll(context.Background(), result, false)
}

// OnInitiative renders a snapshot pushed by the GM
func (c *console) OnInitiative(campaignID string, state *models.InitiativeState) {
	if campaignID != c.currentCampaign() {
		return
	}
	c.renderInitiative(context.Background(), state)
}

// OnError renders an error frame from the server
func (c *console) OnError(_ string, message string) {
	c.showError(context.Background(), messaging.ErrorTypeServer, message)
}

func (c *console) renderRoll(ctx context.Context, result *models.RollResult, personal bool) {
	out, err := c.messages.GetRollResultMessage(ctx, &messaging.GetRollResultMessageInput{
		Roll:              result,
		IsPersonalMessage: personal,
	})
	if err != nil {
		c.printf("%s\n", err)
		return
	}

	c.printf("%s\n", out.Line)
	if out.Title != "" {
		c.printf("  %s %s\n", out.Title, out.Message)
	}
}

func (c *console) renderInitiative(ctx context.Context, state *models.InitiativeState) {
	if state == nil {
		state = &models.InitiativeState{}
	}

	out, err := c.messages.GetInitiativeMessage(ctx, &messaging.GetInitiativeMessageInput{State: state})
	if err != nil {
		c.printf("%s\n", err)
		return
	}

	c.printf("== %s ==\n", out.Title)
	for _, line := range out.Lines {
		c.printf("%s\n", line)
	}
}

func (c *console) showError(ctx context.Context, errorType messaging.ErrorType, detail string) {
	out, err := c.messages.GetErrorMessage(ctx, &messaging.GetErrorMessageInput{
		ErrorType: errorType,
		Detail:    detail,
	})
	if err != nil {
		c.printf("%s\n", detail)
		return
	}
	c.printf("! %s\n", out.Message)
}

func (c *console) currentCampaign() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.campaignID
}

// printf serializes writes from the input loop and the session callbacks
func (c *console) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

// parseMode accepts adv/advantage and dis/disadvantage
func parseMode(s string) (models.AdvantageMode, bool) {
	switch strings.ToLower(s) {
	case "adv", "advantage":
		return models.AdvantageModeAdvantage, true
	case "dis", "disadvantage":
		return models.AdvantageModeDisadvantage, true
	case "normal":
		return models.AdvantageModeNormal, true
	}
	return "", false
}

// findCombatant matches by id first, then by case-insensitive name
func findCombatant(state *models.InitiativeState, ref string) *models.Combatant {
	for _, c := range state.Combatants {
		if c.ID == ref {
			return c
		}
	}
	for _, c := range state.Combatants {
		if strings.EqualFold(c.Name, ref) {
			return c
		}
	}
	return nil
}
