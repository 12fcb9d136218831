package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/events"
	"github.com/matchstack-dev/matchstack/internal/notify"
	"github.com/matchstack-dev/matchstack/internal/repository"
)

// Notification channels.
const (
	ChannelEmail   = "email"
	ChannelWebhook = "webhook"
)

// Notification is one outbound delivery derived from a domain event.
type Notification struct {
	Channel string
	Event   events.Event
	// RecipientUserID is resolved to an address at delivery time for email.
	RecipientUserID string
	Subject         string
	Body            string
}

// Mailer sends a plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// WebhookPoster posts a JSON document.
type WebhookPoster interface {
	Post(ctx context.Context, payload any) error
}

// NotificationService turns domain events into emails and webhook calls.
type NotificationService struct {
	dispatcher events.Dispatcher
	users      repository.UserRepository
	mailer     Mailer
	webhook    WebhookPoster
	logger     *zap.Logger
	enqueue    func(context.Context, Notification)
}

// NotificationDependencies bundles collaborators. A nil Mailer or WebhookPoster disables that channel.
type NotificationDependencies struct {
	Dispatcher events.Dispatcher
	UserRepo   repository.UserRepository
	Mailer     Mailer
	Webhook    WebhookPoster
	Logger     *zap.Logger
}

// NewNotificationService creates the service. Deliveries run inline until SetQueue is called.
func NewNotificationService(deps NotificationDependencies) *NotificationService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	n := &NotificationService{
		dispatcher: deps.Dispatcher,
		users:      deps.UserRepo,
		mailer:     deps.Mailer,
		webhook:    deps.Webhook,
		logger:     logger,
	}
	n.enqueue = func(ctx context.Context, note Notification) {
		if err := n.Deliver(ctx, note); err != nil {
			n.logger.Warn("notification delivery failed",
				zap.String("channel", note.Channel),
				zap.String("event_type", string(note.Event.Type)),
				zap.Error(err))
		}
	}
	return n
}

// SetQueue routes notifications to an asynchronous queue instead of delivering inline.
func (n *NotificationService) SetQueue(enqueue func(context.Context, Notification)) {
	if enqueue != nil {
		n.enqueue = enqueue
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventBriefCreated, n.handleWebhookOnly)
	n.dispatcher.Subscribe(events.EventBriefClosed, n.handleWebhookOnly)
	n.dispatcher.Subscribe(events.EventMatchStatusChanged, n.handleWebhookOnly)
	n.dispatcher.Subscribe(events.EventMatchCreated, n.handleMatchCreated)
	n.dispatcher.Subscribe(events.EventMessageSent, n.handleMessageSent)
	n.dispatcher.Subscribe(events.EventCreatorProfileSaved, n.handleCreatorProfileSaved)
}

func (n *NotificationService) handleWebhookOnly(ctx context.Context, event events.Event) error {
	n.logger.Info(string(event.Type), zap.String("resource_id", event.ResourceID))
	n.webhookFor(ctx, event)
	return nil
}

func (n *NotificationService) handleMatchCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MatchCreatedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	n.logger.Info("MatchCreated", zap.String("match_id", event.ResourceID), zap.String("status", string(payload.Status)))
	n.enqueue(ctx, Notification{
		Channel:         ChannelEmail,
		Event:           event,
		RecipientUserID: payload.RecipientUserID,
		Subject:         "A company is interested in you: " + payload.BriefTitle,
		Body: fmt.Sprintf("You have been matched with the brief %q (status: %s).\nOpen match %s to start the conversation.",
			payload.BriefTitle, payload.Status, event.ResourceID),
	})
	n.webhookFor(ctx, event)
	return nil
}

func (n *NotificationService) handleMessageSent(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.MessageSentPayload)
	if !ok {
		return fmt.Errorf("unexpected payload %T", event.Payload)
	}
	n.logger.Info("MessageSent", zap.String("match_id", event.ResourceID), zap.String("sender_role", string(payload.SenderRole)))
	n.enqueue(ctx, Notification{
		Channel:         ChannelEmail,
		Event:           event,
		RecipientUserID: payload.RecipientUserID,
		Subject:         "New message from the " + string(payload.SenderRole),
		Body:            payload.BodyPreview,
	})
	n.webhookFor(ctx, event)
	return nil
}

func (n *NotificationService) handleCreatorProfileSaved(_ context.Context, event events.Event) error {
	n.logger.Debug("CreatorProfileSaved", zap.String("creator_id", event.ResourceID))
	return nil
}

func (n *NotificationService) webhookFor(ctx context.Context, event events.Event) {
	if n.webhook == nil {
		return
	}
	n.enqueue(ctx, Notification{Channel: ChannelWebhook, Event: event})
}

// Deliver performs one notification. Disabled channels are skipped without error.
func (n *NotificationService) Deliver(ctx context.Context, note Notification) error {
	var err error
	switch note.Channel {
	case ChannelWebhook:
		if n.webhook == nil {
			return nil
		}
		err = n.webhook.Post(ctx, note.Event)
	case ChannelEmail:
		err = n.deliverEmail(ctx, note)
	default:
		return fmt.Errorf("unknown notification channel %q", note.Channel)
	}
	if errors.Is(err, notify.ErrDisabled) {
		return nil
	}
	return err
}

func (n *NotificationService) deliverEmail(ctx context.Context, note Notification) error {
	if n.mailer == nil || note.RecipientUserID == "" {
		return nil
	}
	user, err := n.users.GetByID(ctx, note.RecipientUserID)
	if err != nil {
		return fmt.Errorf("resolve recipient: %w", err)
	}
	n.logger.Debug("sending email",
		zap.String("event_type", string(note.Event.Type)),
		zap.String("recipient_user_id", note.RecipientUserID))
	return n.mailer.Send(ctx, user.Email, note.Subject, note.Body)
}
