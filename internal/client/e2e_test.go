package client

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/midnight/internal/common/clock"
	"github.com/KirkDiggler/midnight/internal/common/uuid"
	diceMocks "github.com/KirkDiggler/midnight/internal/dice/mocks"
	"github.com/KirkDiggler/midnight/internal/handlers/ws"
	"github.com/KirkDiggler/midnight/internal/models"
	"github.com/KirkDiggler/midnight/internal/services/roll"
	"github.com/KirkDiggler/midnight/internal/services/room"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

// tableMember is a live session plus what its callbacks have seen
type tableMember struct {
	session *Session
	rolls   chan *models.RollResult
	states  chan *models.InitiativeState
}

type TableTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockDiceRoller *diceMocks.MockRoller
	rollService    roll.Service
	broadcaster    room.Broadcaster
	server         *httptest.Server
	ctx            context.Context
	cancel         context.CancelFunc
	logger         *slog.Logger
}

func (s *TableTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockDiceRoller = diceMocks.NewMockRoller(s.mockCtrl)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	s.ctx, s.cancel = context.WithCancel(context.Background())

	rollService, err := roll.New(&roll.Config{
		DiceRoller:    s.mockDiceRoller,
		Clock:         clock.New(),
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)
	s.rollService = rollService

	b, err := room.New(&room.Config{Logger: s.logger})
	s.Require().NoError(err)
	s.broadcaster = b
	go func() {
		_ = b.Run(s.ctx)
	}()

	handler, err := ws.New(&ws.Config{
		Broadcaster:   b,
		UUIDGenerator: uuid.New(),
		Logger:        s.logger,
	})
	s.Require().NoError(err)
	s.server = httptest.NewServer(handler)
}

func (s *TableTestSuite) TearDownTest() {
	s.cancel()
	s.server.Close()
	s.mockCtrl.Finish()
}

func TestTableTestSuite(t *testing.T) {
	suite.Run(t, new(TableTestSuite))
}

func (s *TableTestSuite) connect(user, name string, isGM bool) *tableMember {
	wsURL := "ws" + strings.TrimPrefix(s.server.URL, "http")
	conn, err := Dial(s.ctx, wsURL, user, name)
	s.Require().NoError(err)

	member := &tableMember{
		rolls:  make(chan *models.RollResult, 8),
		states: make(chan *models.InitiativeState, 8),
	}

	session, err := New(&Config{
		Transport:   conn,
		RollService: s.rollService,
		Name:        name,
		IsGM:        isGM,
		OnRoll: func(_ string, result *models.RollResult) {
			member.rolls <- result
		},
		OnInitiative: func(_ string, state *models.InitiativeState) {
			member.states <- state
		},
		Logger: s.logger,
	})
	s.Require().NoError(err)
	member.session = session

	go func() {
		_ = session.Run(s.ctx)
	}()
	return member
}

func (s *TableTestSuite) joinAll(campaignID string, members ...*tableMember) {
	for _, m := range members {
		s.Require().NoError(m.session.Join(s.ctx, campaignID))
	}
	s.waitForMembers(campaignID, len(members))
}

func (s *TableTestSuite) waitForMembers(campaignID string, n int) {
	s.Eventually(func() bool {
		out, err := s.broadcaster.Members(s.ctx, &room.MembersInput{CampaignID: campaignID})
		return err == nil && out.MemberCount == n
	}, 2*time.Second, 10*time.Millisecond)
}

func (s *TableTestSuite) TestAdvantageRollReachesTheTable() {
	gm := s.connect("gm-1", "Marcus", true)
	playerA := s.connect("player-a", "Ava", false)
	playerB := s.connect("player-b", "Bram", false)
	s.joinAll("camp-1", gm, playerA, playerB)

	gomock.InOrder(
		s.mockDiceRoller.EXPECT().Roll(20).Return(14),
		s.mockDiceRoller.EXPECT().Roll(20).Return(9),
	)

	result, ok, err := playerA.session.RollFormula(s.ctx, "camp-1", "1d20", models.AdvantageModeAdvantage)
	s.Require().NoError(err)
	s.Require().True(ok)
	s.Equal([]int{14, 9}, result.AllRolls)
	s.Equal([]int{14}, result.KeptRolls)
	s.Equal([]int{9}, result.DroppedRolls)
	s.Equal(14, result.Total)

	for _, receiver := range []*tableMember{gm, playerB} {
		select {
		case got := <-receiver.rolls:
			s.Equal(result.ID, got.ID)
			s.Equal(result.KeptRolls, got.KeptRolls)
			s.Equal(result.Total, got.Total)
			s.Equal("Ava", got.Roller)
			s.True(result.Timestamp.Equal(got.Timestamp))
		case <-time.After(2 * time.Second):
			s.Fail("roll was not delivered")
		}
	}

	select {
	case got := <-playerA.rolls:
		s.Failf("roll echoed back to roller", "roll %s", got.ID)
	case <-time.After(200 * time.Millisecond):
	}
	s.Len(playerA.session.Feed("camp-1"), 1)
	s.Len(playerA.session.OwnRolls("camp-1"), 1)
	s.Len(gm.session.OwnRolls("camp-1"), 0)
}

func (s *TableTestSuite) TestLateJoinerReceivesGMSnapshot() {
	gm := s.connect("gm-1", "Marcus", true)
	s.joinAll("camp-1", gm)

	state := &models.InitiativeState{
		Combatants: []*models.Combatant{
			{ID: "x", Name: "X", Initiative: 20, Type: models.CombatantTypePC, Conditions: []string{}},
			{ID: "y", Name: "Y", Initiative: 15, Type: models.CombatantTypeNPC, Conditions: []string{}},
			{ID: "z", Name: "Z", Initiative: 10, Type: models.CombatantTypeMonster, Conditions: []string{}},
		},
		CurrentTurn: 0,
		IsActive:    true,
	}
	s.Require().NoError(gm.session.PublishInitiative(s.ctx, "camp-1", state))

	// turns advance with nobody else listening
	for turn := 1; turn <= 4; turn++ {
		state.CurrentTurn = turn % len(state.Combatants)
		s.Require().NoError(gm.session.PublishInitiative(s.ctx, "camp-1", state))
	}

	playerC := s.connect("player-c", "Cass", false)
	s.joinAll("camp-1", gm, playerC)
	s.Require().NoError(playerC.session.RequestInitiative(s.ctx, "camp-1"))

	// an older snapshot may still be in flight when C joins; the replay is
	// the current one
	deadline := time.After(2 * time.Second)
	for replayed := false; !replayed; {
		select {
		case got := <-playerC.states:
			replayed = assert.ObjectsAreEqual(*state, *got)
		case <-deadline:
			s.FailNow("snapshot was not replayed")
		}
	}

	held, ok := playerC.session.Initiative("camp-1")
	s.Require().True(ok)
	s.Equal(1, held.CurrentTurn)
}
