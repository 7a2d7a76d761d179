package campaign

import (
	"context"
	"errors"
	"testing"
	"time"

	clockMocks "github.com/KirkDiggler/midnight/internal/common/clock/mocks"
	uuidMocks "github.com/KirkDiggler/midnight/internal/common/uuid/mocks"
	"github.com/KirkDiggler/midnight/internal/models"
	campaignRepo "github.com/KirkDiggler/midnight/internal/repositories/campaign"
	campaignMocks "github.com/KirkDiggler/midnight/internal/repositories/campaign/mocks"
	characterRepo "github.com/KirkDiggler/midnight/internal/repositories/character"
	characterMocks "github.com/KirkDiggler/midnight/internal/repositories/character/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CampaignServiceTestSuite struct {
	suite.Suite
	mockCtrl          *gomock.Controller
	mockCampaignRepo  *campaignMocks.MockRepository
	mockCharacterRepo *characterMocks.MockRepository
	mockClock         *clockMocks.MockClock
	mockUUID          *uuidMocks.MockUUID
	campaignService   Service
	ctx               context.Context

	testTime        time.Time
	testCreatedTime time.Time
	testCampaignID  string
	testCharacterID string
	testGMID        string

	expectedCampaign  *models.Campaign
	expectedCharacter *models.Character
}

func (s *CampaignServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockCampaignRepo = campaignMocks.NewMockRepository(s.mockCtrl)
	s.mockCharacterRepo = characterMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testCreatedTime = time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC)
	s.testCampaignID = "camp-1"
	s.testCharacterID = "char-1"
	s.testGMID = "gm-1"

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	s.expectedCampaign = &models.Campaign{
		ID:        s.testCampaignID,
		Name:      "Midnight Over Tulsa",
		GMID:      s.testGMID,
		PlayerIDs: []string{"player-1"},
		CreatedAt: s.testCreatedTime,
		UpdatedAt: s.testCreatedTime,
	}

	s.expectedCharacter = &models.Character{
		ID:         s.testCharacterID,
		CampaignID: s.testCampaignID,
		OwnerID:    "player-1",
		Name:       "Ava Sterling",
		Level:      2,
		Class:      "Seeker",
		Attributes: models.Attributes{Mind: 3, Body: 2, Soul: 1},
		HP:         9,
		MaxHP:      11,
		CreatedAt:  s.testCreatedTime,
		UpdatedAt:  s.testCreatedTime,
	}

	svc, err := New(&Config{
		CampaignRepo:  s.mockCampaignRepo,
		CharacterRepo: s.mockCharacterRepo,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.campaignService = svc
}

func (s *CampaignServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCampaignServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CampaignServiceTestSuite))
}

func (s *CampaignServiceTestSuite) TestNewValidatesConfig() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{CharacterRepo: s.mockCharacterRepo, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilCampaignRepo)

	_, err = New(&Config{CampaignRepo: s.mockCampaignRepo, Clock: s.mockClock, UUIDGenerator: s.mockUUID})
	s.ErrorIs(err, ErrNilCharacterRepo)
}

func (s *CampaignServiceTestSuite) TestGetCampaign() {
	s.mockCampaignRepo.EXPECT().
		GetCampaign(s.ctx, &campaignRepo.GetCampaignInput{CampaignID: s.testCampaignID}).
		Return(s.expectedCampaign, nil)

	out, err := s.campaignService.GetCampaign(s.ctx, &GetCampaignInput{CampaignID: s.testCampaignID})
	s.Require().NoError(err)
	s.Equal(s.expectedCampaign, out.Campaign)
}

func (s *CampaignServiceTestSuite) TestGetCampaignNotFound() {
	s.mockCampaignRepo.EXPECT().
		GetCampaign(s.ctx, gomock.Any()).
		Return(nil, campaignRepo.ErrCampaignNotFound)

	_, err := s.campaignService.GetCampaign(s.ctx, &GetCampaignInput{CampaignID: "missing"})
	s.ErrorIs(err, ErrCampaignNotFound)
}

func (s *CampaignServiceTestSuite) TestSaveNewCampaign() {
	s.mockUUID.EXPECT().NewUUID().Return("new-camp-id")
	s.mockCampaignRepo.EXPECT().
		SaveCampaign(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *campaignRepo.SaveCampaignInput) error {
			s.Equal("new-camp-id", input.Campaign.ID)
			s.Equal(s.testTime, input.Campaign.CreatedAt)
			s.Equal(s.testTime, input.Campaign.UpdatedAt)
			s.NotNil(input.Campaign.PlayerIDs)
			return nil
		})

	out, err := s.campaignService.SaveCampaign(s.ctx, &SaveCampaignInput{
		Campaign: &models.Campaign{Name: "  New Campaign ", GMID: s.testGMID},
	})
	s.Require().NoError(err)
	s.True(out.Created)
	s.Equal("New Campaign", out.Campaign.Name)
}

func (s *CampaignServiceTestSuite) TestSaveExistingCampaignKeepsCreatedAt() {
	s.mockCampaignRepo.EXPECT().
		GetCampaign(s.ctx, &campaignRepo.GetCampaignInput{CampaignID: s.testCampaignID}).
		Return(s.expectedCampaign, nil)
	s.mockCampaignRepo.EXPECT().SaveCampaign(s.ctx, gomock.Any()).Return(nil)

	update := *s.expectedCampaign
	update.Name = "Renamed"
	update.CreatedAt = time.Time{}

	out, err := s.campaignService.SaveCampaign(s.ctx, &SaveCampaignInput{Campaign: &update})
	s.Require().NoError(err)
	s.False(out.Created)
	s.Equal(s.testCreatedTime, out.Campaign.CreatedAt)
	s.Equal(s.testTime, out.Campaign.UpdatedAt)
	s.Equal("Renamed", out.Campaign.Name)
}

func (s *CampaignServiceTestSuite) TestSaveCampaignValidation() {
	_, err := s.campaignService.SaveCampaign(s.ctx, &SaveCampaignInput{Campaign: &models.Campaign{Name: "No GM"}})
	s.ErrorIs(err, ErrInvalidCampaign)

	_, err = s.campaignService.SaveCampaign(s.ctx, &SaveCampaignInput{Campaign: &models.Campaign{GMID: s.testGMID, Name: "  "}})
	s.ErrorIs(err, ErrInvalidCampaign)

	_, err = s.campaignService.SaveCampaign(s.ctx, nil)
	s.ErrorIs(err, ErrNilInput)
}

func (s *CampaignServiceTestSuite) TestDeleteCampaign() {
	s.mockCampaignRepo.EXPECT().
		DeleteCampaign(s.ctx, &campaignRepo.DeleteCampaignInput{CampaignID: s.testCampaignID}).
		Return(nil)

	out, err := s.campaignService.DeleteCampaign(s.ctx, &DeleteCampaignInput{CampaignID: s.testCampaignID})
	s.Require().NoError(err)
	s.True(out.Success)
}

func (s *CampaignServiceTestSuite) TestSaveCharacterRequiresCampaign() {
	s.mockCampaignRepo.EXPECT().
		GetCampaign(s.ctx, gomock.Any()).
		Return(nil, campaignRepo.ErrCampaignNotFound)

	_, err := s.campaignService.SaveCharacter(s.ctx, &SaveCharacterInput{
		Character: &models.Character{Name: "Ava", CampaignID: "missing"},
	})
	s.ErrorIs(err, ErrCampaignNotFound)
}

func (s *CampaignServiceTestSuite) TestSaveNewCharacter() {
	s.mockCampaignRepo.EXPECT().GetCampaign(s.ctx, gomock.Any()).Return(s.expectedCampaign, nil)
	s.mockUUID.EXPECT().NewUUID().Return("new-char-id")
	s.mockCharacterRepo.EXPECT().SaveCharacter(s.ctx, gomock.Any()).Return(nil)

	out, err := s.campaignService.SaveCharacter(s.ctx, &SaveCharacterInput{
		Character: &models.Character{Name: "Ava", CampaignID: s.testCampaignID, Level: 1},
	})
	s.Require().NoError(err)
	s.True(out.Created)
	s.Equal("new-char-id", out.Character.ID)
	s.Equal(s.testTime, out.Character.CreatedAt)
}

func (s *CampaignServiceTestSuite) TestSaveCharacterRepoFailure() {
	s.mockCampaignRepo.EXPECT().GetCampaign(s.ctx, gomock.Any()).Return(s.expectedCampaign, nil)
	s.mockCharacterRepo.EXPECT().
		GetCharacter(s.ctx, &characterRepo.GetCharacterInput{CharacterID: s.testCharacterID}).
		Return(s.expectedCharacter, nil)
	s.mockCharacterRepo.EXPECT().SaveCharacter(s.ctx, gomock.Any()).Return(errors.New("redis down"))

	_, err := s.campaignService.SaveCharacter(s.ctx, &SaveCharacterInput{Character: s.expectedCharacter})
	s.EqualError(err, "redis down")
}

func (s *CampaignServiceTestSuite) TestGetCharacterNotFound() {
	s.mockCharacterRepo.EXPECT().
		GetCharacter(s.ctx, gomock.Any()).
		Return(nil, characterRepo.ErrCharacterNotFound)

	_, err := s.campaignService.GetCharacter(s.ctx, &GetCharacterInput{CharacterID: "missing"})
	s.ErrorIs(err, ErrCharacterNotFound)
}

func (s *CampaignServiceTestSuite) TestListCharacters() {
	s.mockCharacterRepo.EXPECT().
		GetCharactersInCampaign(s.ctx, &characterRepo.GetCharactersInCampaignInput{CampaignID: s.testCampaignID}).
		Return(&characterRepo.GetCharactersInCampaignOutput{Characters: []*models.Character{s.expectedCharacter}}, nil)

	out, err := s.campaignService.ListCharacters(s.ctx, &ListCharactersInput{CampaignID: s.testCampaignID})
	s.Require().NoError(err)
	s.Len(out.Characters, 1)
}

func (s *CampaignServiceTestSuite) TestListCampaignsByGM() {
	s.mockCampaignRepo.EXPECT().
		GetCampaignsByGM(s.ctx, &campaignRepo.GetCampaignsByGMInput{GMID: s.testGMID}).
		Return(&campaignRepo.GetCampaignsByGMOutput{Campaigns: []*models.Campaign{s.expectedCampaign}}, nil)

	out, err := s.campaignService.ListCampaignsByGM(s.ctx, &ListCampaignsByGMInput{GMID: s.testGMID})
	s.Require().NoError(err)
	s.Equal([]*models.Campaign{s.expectedCampaign}, out.Campaigns)

	_, err = s.campaignService.ListCampaignsByGM(s.ctx, &ListCampaignsByGMInput{})
	s.ErrorIs(err, ErrNilInput)
}

func (s *CampaignServiceTestSuite) TestIsGameMaster() {
	s.mockCampaignRepo.EXPECT().GetCampaign(s.ctx, gomock.Any()).Return(s.expectedCampaign, nil).Times(2)

	out, err := s.campaignService.IsGameMaster(s.ctx, &IsGameMasterInput{CampaignID: s.testCampaignID, UserID: s.testGMID})
	s.Require().NoError(err)
	s.True(out.IsGameMaster)

	out, err = s.campaignService.IsGameMaster(s.ctx, &IsGameMasterInput{CampaignID: s.testCampaignID, UserID: "player-1"})
	s.Require().NoError(err)
	s.False(out.IsGameMaster)
}
