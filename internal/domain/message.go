package domain

import "time"

// SenderRole designates which side of a match wrote a message.
type SenderRole string

const (
	SenderCompany SenderRole = "company"
	SenderCreator SenderRole = "creator"
)

// Message is an immutable entry in a match conversation.
type Message struct {
	ID         string
	MatchID    string
	SenderRole SenderRole
	Body       string
	CreatedAt  time.Time
}
