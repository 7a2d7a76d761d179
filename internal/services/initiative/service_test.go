package initiative

import (
	"context"
	"testing"

	uuidMocks "github.com/KirkDiggler/midnight/internal/common/uuid/mocks"
	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/KirkDiggler/midnight/internal/services/campaign"
	campaignMocks "github.com/KirkDiggler/midnight/internal/services/campaign/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type InitiativeServiceTestSuite struct {
	suite.Suite
	mockCtrl            *gomock.Controller
	mockCampaignService *campaignMocks.MockService
	mockUUID            *uuidMocks.MockUUID
	tracker             Service
	ctx                 context.Context

	// Ava 18, Goblin 14, Guard 10
	state *models.InitiativeState
}

func (s *InitiativeServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCampaignService = campaignMocks.NewMockService(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	tracker, err := New(&Config{
		CampaignService: s.mockCampaignService,
		UUIDGenerator:   s.mockUUID,
	})
	s.Require().NoError(err)
	s.tracker = tracker

	s.state = &models.InitiativeState{
		Combatants: []*models.Combatant{
			{ID: "ava", Name: "Ava", Initiative: 18, Type: models.CombatantTypePC, Conditions: []string{}},
			{ID: "goblin", Name: "Goblin", Initiative: 14, Type: models.CombatantTypeMonster, Conditions: []string{}},
			{ID: "guard", Name: "Guard", Initiative: 10, Type: models.CombatantTypeNPC, Conditions: []string{}},
		},
	}
}

func (s *InitiativeServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestInitiativeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(InitiativeServiceTestSuite))
}

func (s *InitiativeServiceTestSuite) names(state *models.InitiativeState) []string {
	out := make([]string, 0, len(state.Combatants))
	for _, c := range state.Combatants {
		out = append(out, c.Name)
	}
	return out
}

func (s *InitiativeServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{CampaignService: s.mockCampaignService})
	s.ErrorIs(err, ErrNilUUIDGenerator)

	tracker, err := New(&Config{UUIDGenerator: s.mockUUID})
	s.Require().NoError(err)
	_, err = tracker.ImportCharacter(s.ctx, &ImportCharacterInput{CharacterID: "char-1"})
	s.ErrorIs(err, ErrNilCampaignService)
}

func (s *InitiativeServiceTestSuite) TestAddCombatantSortsAndAssignsID() {
	s.mockUUID.EXPECT().NewUUID().Return("zombie")

	out, err := s.tracker.AddCombatant(s.ctx, &AddCombatantInput{
		State:     s.state,
		Combatant: &models.Combatant{Name: " Zombie ", Initiative: 12, Type: models.CombatantTypeMonster},
	})
	s.Require().NoError(err)
	s.Equal("zombie", out.Combatant.ID)
	s.Equal([]string{"Ava", "Goblin", "Zombie", "Guard"}, s.names(out.State))
	s.NotNil(out.Combatant.Conditions)

	// input state is untouched
	s.Len(s.state.Combatants, 3)
}

func (s *InitiativeServiceTestSuite) TestAddCombatantTiesKeepInsertionOrder() {
	out, err := s.tracker.AddCombatant(s.ctx, &AddCombatantInput{
		State:     s.state,
		Combatant: &models.Combatant{ID: "rat", Name: "Rat", Initiative: 14, Type: models.CombatantTypeMonster},
	})
	s.Require().NoError(err)
	s.Equal([]string{"Ava", "Goblin", "Rat", "Guard"}, s.names(out.State))
}

func (s *InitiativeServiceTestSuite) TestAddCombatantKeepsCurrentTurn() {
	s.state.IsActive = true
	s.state.CurrentTurn = 1 // Goblin

	out, err := s.tracker.AddCombatant(s.ctx, &AddCombatantInput{
		State:     s.state,
		Combatant: &models.Combatant{ID: "dragon", Name: "Dragon", Initiative: 25, Type: models.CombatantTypeMonster},
	})
	s.Require().NoError(err)
	s.Equal(2, out.State.CurrentTurn)
	s.Equal("Goblin", out.State.Current().Name)
	s.True(out.State.Valid())
}

func (s *InitiativeServiceTestSuite) TestAddCombatantValidation() {
	_, err := s.tracker.AddCombatant(s.ctx, &AddCombatantInput{
		State:     s.state,
		Combatant: &models.Combatant{Name: "  "},
	})
	s.ErrorIs(err, ErrInvalidCombatant)

	_, err = s.tracker.AddCombatant(s.ctx, &AddCombatantInput{
		State:     s.state,
		Combatant: &models.Combatant{Name: "Ghost", Type: "spirit"},
	})
	s.ErrorIs(err, ErrInvalidCombatant)

	_, err = s.tracker.AddCombatant(s.ctx, &AddCombatantInput{
		State:     s.state,
		Combatant: &models.Combatant{ID: "ava", Name: "Ava again"},
	})
	s.ErrorIs(err, ErrDuplicateCombatant)

	_, err = s.tracker.AddCombatant(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
}

func (s *InitiativeServiceTestSuite) TestAddCombatantToNilState() {
	out, err := s.tracker.AddCombatant(s.ctx, &AddCombatantInput{
		Combatant: &models.Combatant{ID: "ava", Name: "Ava", Initiative: 3},
	})
	s.Require().NoError(err)
	s.Len(out.State.Combatants, 1)
	s.Equal(models.CombatantTypeNPC, out.State.Combatants[0].Type)
	s.False(out.State.IsActive)
}

func (s *InitiativeServiceTestSuite) TestNullCombatantsAreDropped() {
	s.state.Combatants = append([]*models.Combatant{nil}, s.state.Combatants...)
	s.state.IsActive = true

	out, err := s.tracker.RemoveCombatant(s.ctx, &RemoveCombatantInput{State: s.state, CombatantID: "guard"})
	s.Require().NoError(err)
	s.Equal([]string{"Ava", "Goblin"}, s.names(out.State))
	s.True(out.State.Valid())

	next, err := s.tracker.NextTurn(s.ctx, &NextTurnInput{State: &models.InitiativeState{
		Combatants: []*models.Combatant{nil, s.state.Combatants[1], nil},
		IsActive:   true,
	}})
	s.Require().NoError(err)
	s.Equal("Ava", next.Current.Name)
	s.True(next.NewRound)
}

func (s *InitiativeServiceTestSuite) TestRemoveCombatantBeforeCurrent() {
	s.state.IsActive = true
	s.state.CurrentTurn = 2 // Guard

	out, err := s.tracker.RemoveCombatant(s.ctx, &RemoveCombatantInput{State: s.state, CombatantID: "ava"})
	s.Require().NoError(err)
	s.Equal(1, out.State.CurrentTurn)
	s.Equal("Guard", out.State.Current().Name)
}

func (s *InitiativeServiceTestSuite) TestRemoveCurrentLastCombatantWraps() {
	s.state.IsActive = true
	s.state.CurrentTurn = 2

	out, err := s.tracker.RemoveCombatant(s.ctx, &RemoveCombatantInput{State: s.state, CombatantID: "guard"})
	s.Require().NoError(err)
	s.Equal(0, out.State.CurrentTurn)
	s.Equal("Ava", out.State.Current().Name)
}

func (s *InitiativeServiceTestSuite) TestRemoveLastCombatantEndsCombat() {
	state := &models.InitiativeState{
		Combatants:  []*models.Combatant{{ID: "ava", Name: "Ava", Type: models.CombatantTypePC}},
		IsActive:    true,
		CurrentTurn: 0,
	}

	out, err := s.tracker.RemoveCombatant(s.ctx, &RemoveCombatantInput{State: state, CombatantID: "ava"})
	s.Require().NoError(err)
	s.Empty(out.State.Combatants)
	s.False(out.State.IsActive)
	s.Equal(0, out.State.CurrentTurn)
}

func (s *InitiativeServiceTestSuite) TestRemoveUnknownCombatant() {
	_, err := s.tracker.RemoveCombatant(s.ctx, &RemoveCombatantInput{State: s.state, CombatantID: "nobody"})
	s.ErrorIs(err, ErrCombatantNotFound)
}

func (s *InitiativeServiceTestSuite) TestUpdateCombatantClampsHP() {
	hp := 40
	maxHP := 22

	out, err := s.tracker.UpdateCombatant(s.ctx, &UpdateCombatantInput{
		State: s.state,
		Combatant: &models.Combatant{
			ID: "goblin", Name: "Goblin", Initiative: 14, Type: models.CombatantTypeMonster,
			HP: &hp, MaxHP: &maxHP, Conditions: []string{"prone"},
		},
	})
	s.Require().NoError(err)
	s.Equal(22, *out.Combatant.HP)
	s.Equal([]string{"prone"}, out.State.Combatants[1].Conditions)

	// caller's pointer is not modified
	s.Equal(40, hp)

	negative := -5
	out, err = s.tracker.UpdateCombatant(s.ctx, &UpdateCombatantInput{
		State:     s.state,
		Combatant: &models.Combatant{ID: "goblin", Name: "Goblin", Initiative: 14, HP: &negative, MaxHP: &maxHP},
	})
	s.Require().NoError(err)
	s.Equal(0, *out.Combatant.HP)
}

func (s *InitiativeServiceTestSuite) TestUpdateCombatantResortsAndFollowsTurn() {
	s.state.IsActive = true
	s.state.CurrentTurn = 0 // Ava

	out, err := s.tracker.UpdateCombatant(s.ctx, &UpdateCombatantInput{
		State:     s.state,
		Combatant: &models.Combatant{ID: "ava", Name: "Ava", Initiative: 5, Type: models.CombatantTypePC},
	})
	s.Require().NoError(err)
	s.Equal([]string{"Goblin", "Guard", "Ava"}, s.names(out.State))
	s.Equal("Ava", out.State.Current().Name)
}

func (s *InitiativeServiceTestSuite) TestUpdateUnknownCombatant() {
	_, err := s.tracker.UpdateCombatant(s.ctx, &UpdateCombatantInput{
		State:     s.state,
		Combatant: &models.Combatant{ID: "nobody", Name: "Nobody"},
	})
	s.ErrorIs(err, ErrCombatantNotFound)
}

func (s *InitiativeServiceTestSuite) TestConditions() {
	added, err := s.tracker.AddCondition(s.ctx, &AddConditionInput{State: s.state, CombatantID: "guard", Condition: "stunned"})
	s.Require().NoError(err)

	added, err = s.tracker.AddCondition(s.ctx, &AddConditionInput{State: added.State, CombatantID: "guard", Condition: "stunned"})
	s.Require().NoError(err)
	s.Equal([]string{"stunned"}, added.State.Combatants[2].Conditions)
	s.Empty(s.state.Combatants[2].Conditions)

	removed, err := s.tracker.RemoveCondition(s.ctx, &RemoveConditionInput{State: added.State, CombatantID: "guard", Condition: "stunned"})
	s.Require().NoError(err)
	s.Empty(removed.State.Combatants[2].Conditions)

	_, err = s.tracker.AddCondition(s.ctx, &AddConditionInput{State: s.state, CombatantID: "guard", Condition: " "})
	s.ErrorIs(err, ErrInvalidCondition)

	_, err = s.tracker.RemoveCondition(s.ctx, &RemoveConditionInput{State: s.state, CombatantID: "nobody", Condition: "prone"})
	s.ErrorIs(err, ErrCombatantNotFound)
}

func (s *InitiativeServiceTestSuite) TestStartCombat() {
	s.state.CurrentTurn = 2

	out, err := s.tracker.StartCombat(s.ctx, &StartCombatInput{State: s.state})
	s.Require().NoError(err)
	s.True(out.State.IsActive)
	s.Equal(0, out.State.CurrentTurn)
	s.Equal("Ava", out.Current.Name)
}

func (s *InitiativeServiceTestSuite) TestStartCombatEmpty() {
	_, err := s.tracker.StartCombat(s.ctx, &StartCombatInput{State: &models.InitiativeState{}})
	s.ErrorIs(err, ErrNoCombatants)
}

func (s *InitiativeServiceTestSuite) TestTurnsWrap() {
	started, err := s.tracker.StartCombat(s.ctx, &StartCombatInput{State: s.state})
	s.Require().NoError(err)

	state := started.State
	expected := []string{"Goblin", "Guard", "Ava"}
	for i, name := range expected {
		next, err := s.tracker.NextTurn(s.ctx, &NextTurnInput{State: state})
		s.Require().NoError(err)
		s.Equal(name, next.Current.Name)
		s.Equal(i == 2, next.NewRound)
		state = next.State
	}

	prev, err := s.tracker.PreviousTurn(s.ctx, &PreviousTurnInput{State: state})
	s.Require().NoError(err)
	s.Equal("Guard", prev.Current.Name)
	s.Equal(2, prev.State.CurrentTurn)
}

func (s *InitiativeServiceTestSuite) TestTurnsRequireActiveCombat() {
	_, err := s.tracker.NextTurn(s.ctx, &NextTurnInput{State: s.state})
	s.ErrorIs(err, ErrCombatNotActive)

	_, err = s.tracker.PreviousTurn(s.ctx, &PreviousTurnInput{State: s.state})
	s.ErrorIs(err, ErrCombatNotActive)
}

func (s *InitiativeServiceTestSuite) TestEndCombat() {
	s.state.IsActive = true
	s.state.CurrentTurn = 2

	out, err := s.tracker.EndCombat(s.ctx, &EndCombatInput{State: s.state})
	s.Require().NoError(err)
	s.False(out.State.IsActive)
	s.Equal(0, out.State.CurrentTurn)
	s.Len(out.State.Combatants, 3)
}

func (s *InitiativeServiceTestSuite) TestImportCharacter() {
	s.mockCampaignService.EXPECT().
		GetCharacter(s.ctx, &campaign.GetCharacterInput{CharacterID: "char-1"}).
		Return(&campaign.GetCharacterOutput{
			Character: &models.Character{ID: "char-1", Name: "Ava Sterling", HP: 9, MaxHP: 11},
		}, nil)

	out, err := s.tracker.ImportCharacter(s.ctx, &ImportCharacterInput{CharacterID: "char-1", Initiative: 16})
	s.Require().NoError(err)
	s.Equal("char-1", out.Combatant.ID)
	s.Equal("Ava Sterling", out.Combatant.Name)
	s.Equal(16, out.Combatant.Initiative)
	s.Equal(models.CombatantTypePC, out.Combatant.Type)
	s.Equal(9, *out.Combatant.HP)
	s.Equal(11, *out.Combatant.MaxHP)
}

func (s *InitiativeServiceTestSuite) TestImportMissingCharacter() {
	s.mockCampaignService.EXPECT().
		GetCharacter(s.ctx, gomock.Any()).
		Return(nil, campaign.ErrCharacterNotFound)

	_, err := s.tracker.ImportCharacter(s.ctx, &ImportCharacterInput{CharacterID: "missing"})
	s.ErrorIs(err, campaign.ErrCharacterNotFound)
}
