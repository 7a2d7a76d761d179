package rest

// RestError represents an error building the REST handler
type RestError string

func (e RestError) Error() string {
	return string(e)
}

const (
	ErrNilConfig            RestError = "config cannot be nil"
	ErrNilCampaignService   RestError = "campaign service cannot be nil"
	ErrNilInitiativeService RestError = "initiative service cannot be nil"
	ErrNilRollService       RestError = "roll service cannot be nil"
	ErrNilBroadcaster       RestError = "broadcaster cannot be nil"
)
