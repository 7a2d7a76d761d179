package client

// ClientError represents an error in the client session
type ClientError string

func (e ClientError) Error() string {
	return string(e)
}

const (
	// ErrNilConfig is returned when the session config is nil
	ErrNilConfig ClientError = "config cannot be nil"

	// ErrNilTransport is returned when no transport is supplied
	ErrNilTransport ClientError = "transport cannot be nil"

	// ErrNilRollService is returned when no roll service is supplied
	ErrNilRollService ClientError = "roll service cannot be nil"

	// ErrEmptyCampaignID is returned when an operation names no campaign
	ErrEmptyCampaignID ClientError = "campaign id cannot be empty"

	// ErrNotGM is returned when a player tries to publish initiative
	ErrNotGM ClientError = "only the game master can publish initiative"

	// ErrNilState is returned when publishing a nil initiative state
	ErrNilState ClientError = "initiative state cannot be nil"

	// ErrInvalidState is returned when a state breaks the turn index invariant
	ErrInvalidState ClientError = "initiative state has an invalid turn index"
)
