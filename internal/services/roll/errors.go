package roll

// RollError is a custom error type for roll-related errors
type RollError string

// Error implements the error interface
func (e RollError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidRequest   RollError = "invalid roll request"
	ErrNilInput         RollError = "input cannot be nil"
	ErrNilConfig        RollError = "config cannot be nil"
	ErrNilDiceRoller    RollError = "dice roller cannot be nil"
	ErrNilClock         RollError = "clock cannot be nil"
	ErrNilUUIDGenerator RollError = "UUID generator cannot be nil"
)
