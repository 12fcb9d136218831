package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/conversation"
	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/events"
	"github.com/matchstack-dev/matchstack/internal/observability"
	"github.com/matchstack-dev/matchstack/internal/repository"
	apperrors "github.com/matchstack-dev/matchstack/pkg/util/errorutil"
)

// maxMessageLength bounds a message body in runes.
const maxMessageLength = 5000

// ConversationService authorizes and persists match conversations.
type ConversationService struct {
	matches  repository.MatchRepository
	messages repository.MessageRepository
	events   eventPublisher
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// ConversationDependencies bundles collaborators.
type ConversationDependencies struct {
	MatchRepo   repository.MatchRepository
	MessageRepo repository.MessageRepository
	Dispatcher  events.Dispatcher
	Metrics     *observability.Metrics
	Logger      *zap.Logger
}

// ConversationView is a match header plus its messages, oldest first.
type ConversationView struct {
	Parties  *domain.MatchParties
	Access   conversation.Access
	Messages []domain.Message
}

// Counterpart names the other side for the viewer.
func (v *ConversationView) Counterpart() string {
	return v.Access.Counterpart(v.Parties)
}

// NewConversationService constructs the service.
func NewConversationService(deps ConversationDependencies) *ConversationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConversationService{
		matches:  deps.MatchRepo,
		messages: deps.MessageRepo,
		events:   eventPublisher{dispatcher: deps.Dispatcher, logger: logger},
		metrics:  deps.Metrics,
		logger:   logger,
	}
}

// Open authorizes the viewer and loads the history. Messages are never read for a non-party.
func (s *ConversationService) Open(ctx context.Context, userID, matchID string) (*ConversationView, error) {
	parties, access, err := s.authorize(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}
	messages, err := s.messages.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	return &ConversationView{Parties: parties, Access: access, Messages: messages}, nil
}

// Parties returns the match header for a party of the match.
func (s *ConversationService) Parties(ctx context.Context, userID, matchID string) (*domain.MatchParties, conversation.Access, error) {
	return s.authorize(ctx, userID, matchID)
}

// Messages returns the history, oldest first, for a party of the match.
func (s *ConversationService) Messages(ctx context.Context, userID, matchID string) ([]domain.Message, error) {
	if _, _, err := s.authorize(ctx, userID, matchID); err != nil {
		return nil, err
	}
	return s.messages.ListByMatch(ctx, matchID)
}

// Send stores a message under the viewer's resolved role. The role is never taken from the caller.
func (s *ConversationService) Send(ctx context.Context, userID, matchID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, apperrors.NewValidationError("message body is empty", map[string]any{"body": "required"})
	}
	if len([]rune(body)) > maxMessageLength {
		return nil, apperrors.NewValidationError("message body is too long", map[string]any{"body": "max 5000 characters"})
	}

	parties, access, err := s.authorize(ctx, userID, matchID)
	if err != nil {
		return nil, err
	}
	role, _ := access.SenderRole()

	msg := &domain.Message{MatchID: matchID, SenderRole: role, Body: body}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.metrics.RecordMessage(string(role), false)
		s.logger.Error("message create failed", zap.String("match_id", matchID), zap.Error(err))
		return nil, err
	}
	s.metrics.RecordMessage(string(role), true)

	recipient := parties.CreatorOwnerID
	if access == conversation.AccessCreator {
		recipient = parties.CompanyOwnerID
	}
	s.events.publish(ctx, events.Event{
		Type:       events.EventMessageSent,
		ResourceID: matchID,
		Actor:      roleActor(userID, role),
		Payload: events.MessageSentPayload{
			MessageID:       msg.ID,
			SenderRole:      role,
			RecipientUserID: recipient,
			BodyPreview:     preview(body),
		},
	})
	return msg, nil
}

func (s *ConversationService) authorize(ctx context.Context, userID, matchID string) (*domain.MatchParties, conversation.Access, error) {
	parties, err := s.matches.GetWithParties(ctx, matchID)
	if err != nil {
		if isNotFound(err) {
			return nil, conversation.AccessNone, apperrors.NewMatchNotFound(matchID)
		}
		return nil, conversation.AccessNone, err
	}
	access := conversation.Resolve(parties, userID)
	if access == conversation.AccessNone {
		return nil, access, apperrors.NewNoAccess(matchID)
	}
	return parties, access, nil
}
