package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchstack-dev/matchstack/internal/config"
)

func TestWebhookPostsJSON(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL, time.Second).Post(context.Background(), map[string]string{"type": "message_sent"})
	require.NoError(t, err)
	assert.Equal(t, "message_sent", got["type"])
}

func TestWebhookNon2xxIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewWebhook(srv.URL, time.Second).Post(context.Background(), map[string]string{})
	assert.ErrorContains(t, err, "502")
}

func TestDisabledChannels(t *testing.T) {
	assert.Nil(t, NewWebhook("", time.Second))
	assert.Nil(t, NewSMTPMailer(config.NotificationConfig{}))

	var w *Webhook
	assert.ErrorIs(t, w.Post(context.Background(), nil), ErrDisabled)
	var m *SMTPMailer
	assert.ErrorIs(t, m.Send(context.Background(), "a@example.com", "s", "b"), ErrDisabled)
}
