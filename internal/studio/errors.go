package studio

import "errors"

var (
	// ErrUnsupportedAPIVersion indicates the studio reported an automation
	// API version this controller does not speak.
	ErrUnsupportedAPIVersion = errors.New("unsupported studio api version")
	// ErrCanceledByUser indicates the studio reported a user-initiated
	// cancellation during a CheckCancel poll.
	ErrCanceledByUser = errors.New("canceled by user")
)

// RemoteError reports a call the studio executed but refused, carrying the
// studio's message verbatim.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}
