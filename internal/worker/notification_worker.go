package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/matchstack-dev/matchstack/internal/service"
)

// NotificationWorker drains notifications on a fixed pool of goroutines.
type NotificationWorker struct {
	svc     *service.NotificationService
	logger  *zap.Logger
	timeout time.Duration

	mu     sync.RWMutex
	queue  chan service.Notification
	closed bool
	wg     sync.WaitGroup
}

// StartNotificationWorker registers notification handlers and starts the delivery pool.
func StartNotificationWorker(notificationService *service.NotificationService, workers, queueSize int, timeout time.Duration, logger *zap.Logger) *NotificationWorker {
	if notificationService == nil {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 64
	}
	w := &NotificationWorker{
		svc:     notificationService,
		logger:  logger,
		timeout: timeout,
		queue:   make(chan service.Notification, queueSize),
	}
	notificationService.SetQueue(w.Enqueue)
	notificationService.RegisterHandlers()

	for i := 0; i < workers; i++ {
		w.wg.Add(1)
		go w.run(i)
	}
	logger.Info("notification worker started", zap.Int("workers", workers), zap.Int("queue_size", queueSize))
	return w
}

// Enqueue hands a notification to the pool. When the queue is full or stopped it is dropped.
func (w *NotificationWorker) Enqueue(_ context.Context, note service.Notification) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if w.closed {
		return
	}
	select {
	case w.queue <- note:
	default:
		w.logger.Warn("notification queue full, dropping",
			zap.String("channel", note.Channel),
			zap.String("event_type", string(note.Event.Type)))
	}
}

// Stop rejects new notifications and waits for queued ones to finish.
func (w *NotificationWorker) Stop() {
	if w == nil {
		return
	}
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.queue)
	}
	w.mu.Unlock()
	w.wg.Wait()
}

func (w *NotificationWorker) run(id int) {
	defer w.wg.Done()
	for note := range w.queue {
		// Request contexts are gone by now; each delivery gets its own deadline.
		ctx := context.Background()
		var cancel context.CancelFunc = func() {}
		if w.timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, w.timeout)
		}
		if err := w.svc.Deliver(ctx, note); err != nil {
			w.logger.Warn("notification delivery failed",
				zap.Int("worker", id),
				zap.String("channel", note.Channel),
				zap.String("event_type", string(note.Event.Type)),
				zap.String("resource_id", note.Event.ResourceID),
				zap.Error(err))
		}
		cancel()
	}
}
