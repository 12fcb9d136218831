// Package conversation keeps the message list of one match conversation,
// including optimistic sends that are reconciled with the store.
package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

// TempIDPrefix marks identities generated locally for unsent messages.
// Persisted ids are UUIDs and never carry it.
const TempIDPrefix = "tmp_"

// DefaultTimeout bounds every store call made by a conversation.
const DefaultTimeout = 15 * time.Second

// Store is the data API a conversation reads from and writes to.
type Store interface {
	GetMatchWithParties(ctx context.Context, matchID string) (*domain.MatchParties, error)
	ListMessages(ctx context.Context, matchID string) ([]domain.Message, error)
	CreateMessage(ctx context.Context, matchID string, role domain.SenderRole, body string) (*domain.Message, error)
}

// State is the view state reached by Open.
type State int

const (
	StateLoading State = iota
	StateReady
	StateNotFound
	StateNoAccess
	StateLoadFailed
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateNotFound:
		return "not-found"
	case StateNoAccess:
		return "no-access"
	case StateLoadFailed:
		return "load-failed"
	}
	return "unknown"
}

// Option customises a Conversation.
type Option func(*Conversation)

// WithTimeout overrides DefaultTimeout. Zero disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Conversation) { c.timeout = d }
}

// WithClock sets the source of client-side timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Conversation) { c.now = now }
}

// WithIDGenerator replaces the temporary id generator.
func WithIDGenerator(gen func() string) Option {
	return func(c *Conversation) { c.newID = gen }
}

// WithObserver registers a callback invoked after an entry changes.
func WithObserver(fn func(Entry)) Option {
	return func(c *Conversation) { c.observer = fn }
}

// Conversation is owned by a single view. Its methods are safe for
// concurrent use so async sends may complete on other goroutines.
type Conversation struct {
	store    Store
	matchID  string
	userID   string
	timeout  time.Duration
	now      func() time.Time
	newID    func() string
	observer func(Entry)

	mu      sync.Mutex
	state   State
	parties *domain.MatchParties
	access  Access
	entries []Entry
}

// NewTempID returns a fresh temporary message identity.
func NewTempID() string {
	return TempIDPrefix + ulid.Make().String()
}

// IsTempID reports whether id was generated locally.
func IsTempID(id string) bool {
	return strings.HasPrefix(id, TempIDPrefix)
}

// Open resolves the viewer's access and loads the history of a match.
// The returned conversation is never nil; on error its State tells the
// terminal condition and the error matches ErrMatchNotFound, ErrNoAccess or
// ErrLoadFailed.
func Open(ctx context.Context, store Store, matchID, userID string, opts ...Option) (*Conversation, error) {
	c := &Conversation{
		store:   store,
		matchID: matchID,
		userID:  userID,
		timeout: DefaultTimeout,
		now:     time.Now,
		newID:   NewTempID,
		state:   StateLoading,
		access:  AccessNone,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, c.load(ctx)
}

func (c *Conversation) load(ctx context.Context) error {
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	parties, err := c.store.GetMatchWithParties(ctx, c.matchID)
	switch {
	case errors.Is(err, ErrMatchNotFound):
		c.setState(StateNotFound)
		return err
	case errors.Is(err, ErrNoAccess):
		c.setState(StateNoAccess)
		return err
	case err != nil:
		c.setState(StateLoadFailed)
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	access := Resolve(parties, c.userID)
	if access == AccessNone {
		c.mu.Lock()
		c.parties = parties
		c.state = StateNoAccess
		c.mu.Unlock()
		return ErrNoAccess
	}

	messages, err := c.store.ListMessages(ctx, c.matchID)
	if err != nil {
		c.setState(StateLoadFailed)
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.parties = parties
	c.access = access
	c.entries = historyEntries(messages)
	c.state = StateReady
	return nil
}

func historyEntries(messages []domain.Message) []Entry {
	entries := make([]Entry, 0, len(messages))
	for _, msg := range messages {
		entries = append(entries, Entry{LocalID: msg.ID, Message: msg, Delivery: Confirmed})
	}
	return entries
}

// State returns the current view state.
func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Access returns the viewer's resolved access.
func (c *Conversation) Access() Access {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.access
}

// Parties returns the match header, nil until the match was fetched.
func (c *Conversation) Parties() *domain.MatchParties {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.parties
}

// Entries returns a snapshot of the message list. It is empty unless the
// conversation is ready.
func (c *Conversation) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// IsMine reports whether the entry was written by the viewer's side.
func (c *Conversation) IsMine(e Entry) bool {
	role, ok := c.Access().SenderRole()
	return ok && e.Message.SenderRole == role
}

// Submit appends an optimistic pending entry and returns its local id.
// Nothing is sent to the store.
func (c *Conversation) Submit(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", ErrEmptyBody
	}

	c.mu.Lock()
	if c.state != StateReady {
		c.mu.Unlock()
		return "", ErrNotReady
	}
	role, _ := c.access.SenderRole()
	localID := c.newID()
	entry := Entry{
		LocalID: localID,
		Message: domain.Message{
			ID:         localID,
			MatchID:    c.matchID,
			SenderRole: role,
			Body:       body,
			CreatedAt:  c.now(),
		},
		Delivery: Pending,
	}
	c.entries = append(c.entries, entry)
	c.mu.Unlock()

	c.notify(entry)
	return localID, nil
}

// Send submits body and waits for the store to persist it. The returned
// local id identifies the entry whether or not persistence succeeded.
func (c *Conversation) Send(ctx context.Context, body string) (string, error) {
	localID, err := c.Submit(body)
	if err != nil {
		return "", err
	}
	return localID, c.deliver(ctx, localID)
}

// SendAsync submits body and persists it in the background. The entry is in
// the list when SendAsync returns. The channel yields the delivery result
// once and is then closed.
func (c *Conversation) SendAsync(ctx context.Context, body string) (string, <-chan error) {
	done := make(chan error, 1)
	localID, err := c.Submit(body)
	if err != nil {
		done <- err
		close(done)
		return "", done
	}
	go func() {
		done <- c.deliver(ctx, localID)
		close(done)
	}()
	return localID, done
}

// Retry re-sends the body of a failed entry, reusing the same entry.
func (c *Conversation) Retry(ctx context.Context, localID string) error {
	c.mu.Lock()
	idx := c.indexOf(localID)
	if idx < 0 {
		c.mu.Unlock()
		return ErrUnknownEntry
	}
	if c.entries[idx].Delivery != Failed {
		c.mu.Unlock()
		return ErrNotRetryable
	}
	c.entries[idx].Delivery = Pending
	c.entries[idx].Err = nil
	entry := c.entries[idx]
	c.mu.Unlock()

	c.notify(entry)
	return c.deliver(ctx, localID)
}

// Failed returns the local ids of entries awaiting a retry.
func (c *Conversation) Failed() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var ids []string
	for _, e := range c.entries {
		if e.Delivery == Failed {
			ids = append(ids, e.LocalID)
		}
	}
	return ids
}

// Refresh re-queries the history. Unconfirmed entries stay at the tail, as
// do local sends confirmed after the history was read.
func (c *Conversation) Refresh(ctx context.Context) error {
	if c.State() != StateReady {
		return ErrNotReady
	}
	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	messages, err := c.store.ListMessages(ctx, c.matchID)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	entries := historyEntries(messages)
	fetched := make(map[string]struct{}, len(messages))
	for _, msg := range messages {
		fetched[msg.ID] = struct{}{}
	}
	for _, e := range c.entries {
		if e.Optimistic() {
			entries = append(entries, e)
			continue
		}
		if _, ok := fetched[e.Message.ID]; !ok && IsTempID(e.LocalID) {
			entries = append(entries, e)
		}
	}
	c.entries = entries
	return nil
}

func (c *Conversation) deliver(ctx context.Context, localID string) error {
	c.mu.Lock()
	idx := c.indexOf(localID)
	if idx < 0 {
		c.mu.Unlock()
		return ErrUnknownEntry
	}
	pending := c.entries[idx].Message
	c.mu.Unlock()

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()
	saved, err := c.store.CreateMessage(ctx, c.matchID, pending.SenderRole, pending.Body)
	if err == nil && saved == nil {
		err = errors.New("store returned no message")
	}

	c.mu.Lock()
	idx = c.indexOf(localID)
	if idx < 0 {
		c.mu.Unlock()
		return ErrUnknownEntry
	}
	if err != nil {
		c.entries[idx].Delivery = Failed
		c.entries[idx].Err = err
	} else {
		c.entries[idx].Message = *saved
		c.entries[idx].Delivery = Confirmed
		c.entries[idx].Err = nil
		// A refresh that raced the send may already list the saved message.
		if dup := c.indexOf(saved.ID); dup >= 0 && dup != idx {
			c.entries = append(c.entries[:dup], c.entries[dup+1:]...)
			idx = c.indexOf(localID)
		}
	}
	entry := c.entries[idx]
	c.mu.Unlock()

	c.notify(entry)
	return err
}

func (c *Conversation) indexOf(localID string) int {
	for i := range c.entries {
		if c.entries[i].LocalID == localID {
			return i
		}
	}
	return -1
}

func (c *Conversation) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Conversation) notify(e Entry) {
	if c.observer != nil {
		c.observer(e)
	}
}

func (c *Conversation) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}
