package campaign

// CampaignError is a custom error type for campaign-related errors
type CampaignError string

// Error implements the error interface
func (e CampaignError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrCampaignNotFound  CampaignError = "campaign not found"
	ErrCharacterNotFound CampaignError = "character not found"
	ErrInvalidCampaign   CampaignError = "campaign needs a name and a GM"
	ErrInvalidCharacter  CampaignError = "character needs a name and a campaign"
	ErrNilInput          CampaignError = "input cannot be nil"
	ErrNilConfig         CampaignError = "config cannot be nil"
	ErrNilCampaignRepo   CampaignError = "campaign repository cannot be nil"
	ErrNilCharacterRepo  CampaignError = "character repository cannot be nil"
	ErrNilClock          CampaignError = "clock cannot be nil"
	ErrNilUUIDGenerator  CampaignError = "UUID generator cannot be nil"
)
