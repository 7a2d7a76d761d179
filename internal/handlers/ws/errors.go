package ws

// WSError represents an error in the websocket handler
type WSError string

func (e WSError) Error() string {
	return string(e)
}

const (
	// ErrNilConfig is returned when the handler config is nil
	ErrNilConfig WSError = "config cannot be nil"

	// ErrNilBroadcaster is returned when the room broadcaster is nil
	ErrNilBroadcaster WSError = "broadcaster cannot be nil"

	// ErrNilCampaignService is returned when GM checks are on without a campaign service
	ErrNilCampaignService WSError = "campaign service cannot be nil when GM checks are enforced"

	// ErrNilUUIDGenerator is returned when the UUID generator is nil
	ErrNilUUIDGenerator WSError = "uuid generator cannot be nil"

	// ErrConnectionClosed is returned when sending to a closed connection
	ErrConnectionClosed WSError = "connection closed"

	// ErrSendBufferFull is returned when a slow client has fallen too far behind
	ErrSendBufferFull WSError = "send buffer full"
)
