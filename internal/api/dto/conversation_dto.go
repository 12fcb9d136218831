package dto

import (
	"time"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// SendMessageRequest payload. The sender role is resolved by the server.
type SendMessageRequest struct {
	Body string `json:"body" validate:"required,notblank,max=5000"`
}

// MessageResponse is one persisted message.
type MessageResponse struct {
	ID         string            `json:"id"`
	MatchID    string            `json:"match_id"`
	SenderRole domain.SenderRole `json:"sender_role"`
	Body       string            `json:"body"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ConversationResponse is the match header, the viewer's role and the history, oldest first.
type ConversationResponse struct {
	Match       MatchPartiesResponse `json:"match"`
	Role        domain.SenderRole    `json:"role"`
	Counterpart string               `json:"counterpart"`
	Messages    []MessageResponse    `json:"messages"`
}

// NewMessageResponse maps a message.
func NewMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		MatchID:    m.MatchID,
		SenderRole: m.SenderRole,
		Body:       m.Body,
		CreatedAt:  m.CreatedAt,
	}
}

// NewMessagesResponse maps a history, never returning nil.
func NewMessagesResponse(messages []domain.Message) []MessageResponse {
	result := make([]MessageResponse, 0, len(messages))
	for i := range messages {
		result = append(result, NewMessageResponse(&messages[i]))
	}
	return result
}

// ToDomain converts the response back into the domain shape.
func (r MessageResponse) ToDomain() domain.Message {
	return domain.Message{
		ID:         r.ID,
		MatchID:    r.MatchID,
		SenderRole: r.SenderRole,
		Body:       r.Body,
		CreatedAt:  r.CreatedAt,
	}
}
