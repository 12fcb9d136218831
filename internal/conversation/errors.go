package conversation

import "errors"

var (
	// ErrMatchNotFound is returned by stores when the match does not exist.
	ErrMatchNotFound = errors.New("match not found")
	// ErrNoAccess means the viewer is not a party to the match.
	ErrNoAccess = errors.New("not a party to this match")
	// ErrLoadFailed wraps any other failure while opening a conversation.
	ErrLoadFailed = errors.New("could not load conversation")
	// ErrNotReady is returned when sending on a conversation that did not open.
	ErrNotReady = errors.New("conversation is not open")
	// ErrEmptyBody rejects blank messages.
	ErrEmptyBody = errors.New("message body is empty")
	// ErrUnknownEntry means no entry carries the given local id.
	ErrUnknownEntry = errors.New("unknown message entry")
	// ErrNotRetryable means the entry is not in the failed state.
	ErrNotRetryable = errors.New("message is not in a failed state")
)
