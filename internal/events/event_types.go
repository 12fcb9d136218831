package events

import (
	"time"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventBriefCreated        EventType = "brief_created"
	EventBriefClosed         EventType = "brief_closed"
	EventMatchCreated        EventType = "match_created"
	EventMatchStatusChanged  EventType = "match_status_changed"
	EventMessageSent         EventType = "message_sent"
	EventCreatorProfileSaved EventType = "creator_profile_saved"
)

// Actor identifies who caused an event.
type Actor struct {
	UserID string             `json:"user_id"`
	Role   *domain.SenderRole `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID         string      `json:"id"`
	Type       EventType   `json:"type"`
	ResourceID string      `json:"resource_id"`
	Actor      Actor       `json:"actor"`
	Timestamp  time.Time   `json:"timestamp"`
	Payload    interface{} `json:"payload"`
}

// BriefCreatedPayload payload.
type BriefCreatedPayload struct {
	CompanyID        string          `json:"company_id"`
	Title            string          `json:"title"`
	RoleTypeRequired domain.RoleType `json:"role_type_required"`
	Niches           []string        `json:"niches"`
}

// BriefClosedPayload payload.
type BriefClosedPayload struct {
	CompanyID string `json:"company_id"`
}

// MatchCreatedPayload payload. RecipientUserID owns the creator profile.
type MatchCreatedPayload struct {
	BriefID         string             `json:"brief_id"`
	BriefTitle      string             `json:"brief_title"`
	CreatorID       string             `json:"creator_id"`
	Status          domain.MatchStatus `json:"status"`
	RecipientUserID string             `json:"recipient_user_id"`
}

// MatchStatusChangedPayload payload.
type MatchStatusChangedPayload struct {
	OldStatus domain.MatchStatus `json:"old_status"`
	NewStatus domain.MatchStatus `json:"new_status"`
}

// MessageSentPayload payload. RecipientUserID owns the counterpart side of the match.
type MessageSentPayload struct {
	MessageID       string            `json:"message_id"`
	SenderRole      domain.SenderRole `json:"sender_role"`
	RecipientUserID string            `json:"recipient_user_id"`
	BodyPreview     string            `json:"body_preview"`
}

// CreatorProfileSavedPayload payload.
type CreatorProfileSavedPayload struct {
	CreatorID string `json:"creator_id"`
	Created   bool   `json:"created"`
}
