package messaging

// MessagingError represents an error in the messaging service
type MessagingError string

func (e MessagingError) Error() string {
	return string(e)
}

const (
	// ErrNilInput is returned when an input is nil
	ErrNilInput MessagingError = "input cannot be nil"

	// ErrNilConfig is returned when the config is nil
	ErrNilConfig MessagingError = "config cannot be nil"

	// ErrNilDiceRoller is returned when the dice roller is nil
	ErrNilDiceRoller MessagingError = "dice roller cannot be nil"
)
