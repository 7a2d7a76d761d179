package room

// RoomError is a custom error type for room-related errors
type RoomError string

// Error implements the error interface
func (e RoomError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrNilInput          RoomError = "input cannot be nil"
	ErrNilConnection     RoomError = "connection cannot be nil"
	ErrEmptyCampaignID   RoomError = "campaign ID cannot be empty"
	ErrNilRoll           RoomError = "roll cannot be nil"
	ErrNilState          RoomError = "initiative state cannot be nil"
	ErrBroadcasterClosed RoomError = "broadcaster is not running"
)
