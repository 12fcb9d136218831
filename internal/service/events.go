package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/events"
)

const bodyPreviewLength = 120

// eventPublisher fills event metadata and publishes without failing the caller.
type eventPublisher struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

func (p eventPublisher) publish(ctx context.Context, event events.Event) {
	if p.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	if err := p.dispatcher.Publish(ctx, event); err != nil && p.logger != nil {
		p.logger.Warn("event handler failed",
			zap.String("event_type", string(event.Type)),
			zap.String("resource_id", event.ResourceID),
			zap.Error(err))
	}
}

func userActor(userID string) events.Actor {
	return events.Actor{UserID: userID}
}

func roleActor(userID string, role domain.SenderRole) events.Actor {
	return events.Actor{UserID: userID, Role: &role}
}

func isNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// normalizeTags trims, drops blanks and de-duplicates while keeping first-seen order.
func normalizeTags(values []string) []string {
	result := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}

func trimPtr(v *string) *string {
	if v == nil {
		return nil
	}
	t := strings.TrimSpace(*v)
	if t == "" {
		return nil
	}
	return &t
}

func preview(body string) string {
	runes := []rune(body)
	if len(runes) <= bodyPreviewLength {
		return body
	}
	return string(runes[:bodyPreviewLength]) + "…"
}
