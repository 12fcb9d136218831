package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/events"
	"github.com/matchstack-dev/matchstack/internal/notify"
	"github.com/matchstack-dev/matchstack/internal/service"
)

type sentMail struct {
	to, subject, body string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
}

func (m *fakeMailer) Send(_ context.Context, to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, sentMail{to: to, subject: subject, body: body})
	return nil
}

type fakeWebhook struct {
	mu    sync.Mutex
	posts []any
	err   error
}

func (w *fakeWebhook) Post(_ context.Context, payload any) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.posts = append(w.posts, payload)
	return w.err
}

type fakeUsers map[string]*domain.User

func (f fakeUsers) Create(context.Context, *domain.User) error { return nil }
func (f fakeUsers) Update(context.Context, *domain.User) error { return nil }
func (f fakeUsers) GetByEmail(context.Context, string) (*domain.User, error) {
	return nil, pgx.ErrNoRows
}
func (f fakeUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func TestNotificationWorker_DeliversQueuedEvents(t *testing.T) {
	dispatcher := events.NewInMemoryDispatcher()
	mailer := &fakeMailer{}
	hook := &fakeWebhook{}
	svc := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: dispatcher,
		UserRepo:   fakeUsers{"u-company": {ID: "u-company", Email: "owner@acme.test"}},
		Mailer:     mailer,
		Webhook:    hook,
	})

	w := StartNotificationWorker(svc, 2, 16, time.Second, zap.NewNop())
	require.NotNil(t, w)

	err := dispatcher.Publish(context.Background(), events.Event{
		ID:         "evt-1",
		Type:       events.EventMessageSent,
		ResourceID: "match-1",
		Payload: events.MessageSentPayload{
			MessageID:       "msg-1",
			SenderRole:      domain.SenderCreator,
			RecipientUserID: "u-company",
			BodyPreview:     "Happy to help",
		},
	})
	require.NoError(t, err)
	require.NoError(t, dispatcher.Publish(context.Background(), events.Event{
		ID: "evt-2", Type: events.EventBriefClosed, ResourceID: "brief-1",
		Payload: events.BriefClosedPayload{CompanyID: "c-1"},
	}))

	w.Stop()

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "owner@acme.test", mailer.sent[0].to)
	assert.Equal(t, "New message from the creator", mailer.sent[0].subject)
	assert.Equal(t, "Happy to help", mailer.sent[0].body)
	assert.Len(t, hook.posts, 2)
}

func TestNotificationWorker_EnqueueAfterStopIsDropped(t *testing.T) {
	svc := service.NewNotificationService(service.NotificationDependencies{
		Dispatcher: events.NewInMemoryDispatcher(),
		UserRepo:   fakeUsers{},
	})
	w := StartNotificationWorker(svc, 1, 1, 0, zap.NewNop())
	w.Stop()

	assert.NotPanics(t, func() {
		w.Enqueue(context.Background(), service.Notification{Channel: service.ChannelWebhook})
	})
	w.Stop()
}

func TestNotificationService_DisabledChannelsAreSkipped(t *testing.T) {
	svc := service.NewNotificationService(service.NotificationDependencies{
		UserRepo: fakeUsers{"u1": {ID: "u1", Email: "a@b.test"}},
		Webhook:  &fakeWebhook{err: notify.ErrDisabled},
	})

	err := svc.Deliver(context.Background(), service.Notification{
		Channel: service.ChannelEmail, RecipientUserID: "u1", Subject: "s", Body: "b",
	})
	assert.NoError(t, err)

	err = svc.Deliver(context.Background(), service.Notification{Channel: service.ChannelWebhook})
	assert.NoError(t, err)

	err = svc.Deliver(context.Background(), service.Notification{Channel: "pager"})
	assert.Error(t, err)
}
