package conversation

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchstack-dev/matchstack/internal/domain"
)

type mockStore struct {
	getMatchFn      func(ctx context.Context, matchID string) (*domain.MatchParties, error)
	listMessagesFn  func(ctx context.Context, matchID string) ([]domain.Message, error)
	createMessageFn func(ctx context.Context, matchID string, role domain.SenderRole, body string) (*domain.Message, error)
	listCalls       int
}

func (m *mockStore) GetMatchWithParties(ctx context.Context, matchID string) (*domain.MatchParties, error) {
	if m.getMatchFn != nil {
		return m.getMatchFn(ctx, matchID)
	}
	return nil, ErrMatchNotFound
}

func (m *mockStore) ListMessages(ctx context.Context, matchID string) ([]domain.Message, error) {
	m.listCalls++
	if m.listMessagesFn != nil {
		return m.listMessagesFn(ctx, matchID)
	}
	return nil, nil
}

func (m *mockStore) CreateMessage(ctx context.Context, matchID string, role domain.SenderRole, body string) (*domain.Message, error) {
	if m.createMessageFn != nil {
		return m.createMessageFn(ctx, matchID, role, body)
	}
	return nil, errors.New("not configured")
}

const (
	companyOwner = "user-company"
	creatorOwner = "user-creator"
	matchID      = "match-1"
)

func parties() *domain.MatchParties {
	return &domain.MatchParties{
		Match:          domain.Match{ID: matchID, BriefID: "brief-1", CreatorID: "creator-1", Status: domain.MatchStatusContacted},
		BriefTitle:     "Weekly AI newsletter",
		CompanyName:    "Acme",
		CompanyOwnerID: companyOwner,
		CreatorName:    "Ada",
		CreatorOwnerID: creatorOwner,
	}
}

func history() []domain.Message {
	base := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	return []domain.Message{
		{ID: "m1", MatchID: matchID, SenderRole: domain.SenderCompany, Body: "Hi there", CreatedAt: base},
		{ID: "m2", MatchID: matchID, SenderRole: domain.SenderCreator, Body: "Hello!", CreatedAt: base.Add(time.Minute)},
	}
}

func readyStore() *mockStore {
	return &mockStore{
		getMatchFn: func(context.Context, string) (*domain.MatchParties, error) { return parties(), nil },
		listMessagesFn: func(context.Context, string) ([]domain.Message, error) {
			return history(), nil
		},
	}
}

func fixedIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("%slocal-%d", TempIDPrefix, n)
	})
}

func TestResolve(t *testing.T) {
	p := parties()
	assert.Equal(t, AccessCompany, Resolve(p, companyOwner))
	assert.Equal(t, AccessCreator, Resolve(p, creatorOwner))
	assert.Equal(t, AccessNone, Resolve(p, "stranger"))
	assert.Equal(t, AccessNone, Resolve(p, ""))
	assert.Equal(t, AccessNone, Resolve(nil, companyOwner))

	role, ok := AccessCreator.SenderRole()
	assert.True(t, ok)
	assert.Equal(t, domain.SenderCreator, role)
	_, ok = AccessNone.SenderRole()
	assert.False(t, ok)

	assert.Equal(t, "Ada", AccessCompany.Counterpart(p))
	assert.Equal(t, "Acme", AccessCreator.Counterpart(p))
}

func TestOpenLoadsHistoryForParty(t *testing.T) {
	conv, err := Open(context.Background(), readyStore(), matchID, creatorOwner)
	require.NoError(t, err)

	assert.Equal(t, StateReady, conv.State())
	assert.Equal(t, AccessCreator, conv.Access())
	entries := conv.Entries()
	require.Len(t, entries, 2)
	assert.False(t, conv.IsMine(entries[0]))
	assert.True(t, conv.IsMine(entries[1]))
	for _, e := range entries {
		assert.Equal(t, Confirmed, e.Delivery)
		assert.False(t, e.Optimistic())
	}
}

func TestOpenNoAccessShowsNoMessages(t *testing.T) {
	store := readyStore()
	conv, err := Open(context.Background(), store, matchID, "stranger")

	require.ErrorIs(t, err, ErrNoAccess)
	assert.Equal(t, StateNoAccess, conv.State())
	assert.Empty(t, conv.Entries())
	assert.Zero(t, store.listCalls, "history must not be fetched for outsiders")

	_, err = conv.Submit("let me in")
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestOpenDistinguishesNotFoundFromNoAccess(t *testing.T) {
	conv, err := Open(context.Background(), &mockStore{}, "missing", companyOwner)
	require.ErrorIs(t, err, ErrMatchNotFound)
	assert.NotErrorIs(t, err, ErrNoAccess)
	assert.Equal(t, StateNotFound, conv.State())

	remoteDenied := &mockStore{getMatchFn: func(context.Context, string) (*domain.MatchParties, error) {
		return nil, fmt.Errorf("%w: forbidden", ErrNoAccess)
	}}
	conv, err = Open(context.Background(), remoteDenied, matchID, companyOwner)
	require.ErrorIs(t, err, ErrNoAccess)
	assert.Equal(t, StateNoAccess, conv.State())
}

func TestOpenLoadFailureIsTerminal(t *testing.T) {
	store := &mockStore{
		getMatchFn: func(context.Context, string) (*domain.MatchParties, error) { return parties(), nil },
		listMessagesFn: func(context.Context, string) ([]domain.Message, error) {
			return nil, errors.New("connection reset")
		},
	}
	conv, err := Open(context.Background(), store, matchID, companyOwner)
	require.ErrorIs(t, err, ErrLoadFailed)
	assert.Equal(t, StateLoadFailed, conv.State())
	assert.Equal(t, 1, store.listCalls)
}

func TestSendConfirmsInPlace(t *testing.T) {
	store := readyStore()
	serverTime := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	store.createMessageFn = func(_ context.Context, id string, role domain.SenderRole, body string) (*domain.Message, error) {
		assert.Equal(t, matchID, id)
		assert.Equal(t, domain.SenderCompany, role)
		assert.Equal(t, "Can you start Monday?", body)
		return &domain.Message{ID: "m3", MatchID: id, SenderRole: role, Body: body, CreatedAt: serverTime}, nil
	}

	conv, err := Open(context.Background(), store, matchID, companyOwner, fixedIDs())
	require.NoError(t, err)

	localID, err := conv.Send(context.Background(), "  Can you start Monday?  ")
	require.NoError(t, err)
	assert.Equal(t, TempIDPrefix+"local-1", localID)

	entries := conv.Entries()
	require.Len(t, entries, 3)
	last := entries[2]
	assert.Equal(t, localID, last.LocalID)
	assert.Equal(t, "m3", last.Message.ID)
	assert.Equal(t, serverTime, last.Message.CreatedAt)
	assert.Equal(t, Confirmed, last.Delivery)
	assert.True(t, conv.IsMine(last))
}

func TestSendAsyncAppendsBeforeStoreResolves(t *testing.T) {
	store := readyStore()
	release := make(chan struct{})
	store.createMessageFn = func(_ context.Context, id string, role domain.SenderRole, body string) (*domain.Message, error) {
		<-release
		return &domain.Message{ID: "m3", MatchID: id, SenderRole: role, Body: body, CreatedAt: time.Now()}, nil
	}
	clientTime := time.Date(2026, 1, 1, 11, 0, 0, 0, time.UTC)
	conv, err := Open(context.Background(), store, matchID, creatorOwner, fixedIDs(), WithClock(func() time.Time { return clientTime }))
	require.NoError(t, err)

	localID, done := conv.SendAsync(context.Background(), "On it")

	entries := conv.Entries()
	require.Len(t, entries, 3, "exactly one optimistic entry is appended immediately")
	pending := entries[2]
	assert.Equal(t, Pending, pending.Delivery)
	assert.True(t, pending.Optimistic())
	assert.True(t, IsTempID(pending.Message.ID))
	assert.Equal(t, clientTime, pending.Message.CreatedAt)
	assert.Equal(t, domain.SenderCreator, pending.Message.SenderRole)

	close(release)
	require.NoError(t, <-done)

	entries = conv.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, localID, entries[2].LocalID)
	assert.Equal(t, Confirmed, entries[2].Delivery)
	assert.Equal(t, "m3", entries[2].Message.ID)
}

func TestFailedSendStaysVisibleAndRetriesInPlace(t *testing.T) {
	store := readyStore()
	attempts := 0
	store.createMessageFn = func(_ context.Context, id string, role domain.SenderRole, body string) (*domain.Message, error) {
		attempts++
		if attempts < 3 {
			return nil, errors.New("network down")
		}
		return &domain.Message{ID: "m9", MatchID: id, SenderRole: role, Body: body, CreatedAt: time.Now()}, nil
	}
	conv, err := Open(context.Background(), store, matchID, companyOwner, fixedIDs())
	require.NoError(t, err)

	localID, err := conv.Send(context.Background(), "Draft attached")
	require.Error(t, err)

	entries := conv.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, Failed, entries[2].Delivery)
	assert.EqualError(t, entries[2].Err, "network down")
	assert.Equal(t, []string{localID}, conv.Failed())

	require.Error(t, conv.Retry(context.Background(), localID))
	entries = conv.Entries()
	require.Len(t, entries, 3, "a failed retry must not add an entry")
	assert.Equal(t, Failed, entries[2].Delivery)

	require.NoError(t, conv.Retry(context.Background(), localID))
	entries = conv.Entries()
	require.Len(t, entries, 3, "a successful retry replaces in place")
	assert.Equal(t, Confirmed, entries[2].Delivery)
	assert.Equal(t, "m9", entries[2].Message.ID)
	assert.Equal(t, "Draft attached", entries[2].Message.Body)
	assert.Nil(t, entries[2].Err)
	assert.Empty(t, conv.Failed())
	assert.Equal(t, 3, attempts)
}

func TestRetryGuards(t *testing.T) {
	store := readyStore()
	store.createMessageFn = func(_ context.Context, id string, role domain.SenderRole, body string) (*domain.Message, error) {
		return &domain.Message{ID: "m3", MatchID: id, SenderRole: role, Body: body}, nil
	}
	conv, err := Open(context.Background(), store, matchID, companyOwner)
	require.NoError(t, err)

	assert.ErrorIs(t, conv.Retry(context.Background(), "nope"), ErrUnknownEntry)
	assert.ErrorIs(t, conv.Retry(context.Background(), "m1"), ErrNotRetryable)

	_, err = conv.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyBody)
	assert.Len(t, conv.Entries(), 2)
}

func TestSendErrorDoesNotAffectOtherEntries(t *testing.T) {
	store := readyStore()
	store.createMessageFn = func(_ context.Context, id string, role domain.SenderRole, body string) (*domain.Message, error) {
		if body == "bad" {
			return nil, errors.New("rejected")
		}
		return &domain.Message{ID: "saved-" + body, MatchID: id, SenderRole: role, Body: body}, nil
	}
	conv, err := Open(context.Background(), store, matchID, companyOwner, fixedIDs())
	require.NoError(t, err)

	_, err = conv.Send(context.Background(), "bad")
	require.Error(t, err)
	_, err = conv.Send(context.Background(), "good")
	require.NoError(t, err)

	entries := conv.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, Confirmed, entries[0].Delivery)
	assert.Equal(t, Confirmed, entries[1].Delivery)
	assert.Equal(t, Failed, entries[2].Delivery)
	assert.Equal(t, Confirmed, entries[3].Delivery)
	assert.Equal(t, "saved-good", entries[3].Message.ID)
}

func TestRefreshKeepsUnconfirmedTail(t *testing.T) {
	store := readyStore()
	store.createMessageFn = func(context.Context, string, domain.SenderRole, string) (*domain.Message, error) {
		return nil, errors.New("offline")
	}
	conv, err := Open(context.Background(), store, matchID, companyOwner, fixedIDs())
	require.NoError(t, err)
	localID, _ := conv.Send(context.Background(), "queued")

	extra := domain.Message{ID: "m3", MatchID: matchID, SenderRole: domain.SenderCreator, Body: "Any update?"}
	store.listMessagesFn = func(context.Context, string) ([]domain.Message, error) {
		return append(history(), extra), nil
	}
	require.NoError(t, conv.Refresh(context.Background()))

	entries := conv.Entries()
	require.Len(t, entries, 4)
	assert.Equal(t, "m3", entries[2].Message.ID)
	assert.Equal(t, localID, entries[3].LocalID)
	assert.Equal(t, Failed, entries[3].Delivery)
}

func TestRefreshKeepsSendConfirmedWhileLoading(t *testing.T) {
	store := readyStore()
	store.createMessageFn = func(_ context.Context, id string, role domain.SenderRole, body string) (*domain.Message, error) {
		return &domain.Message{ID: "m3", MatchID: id, SenderRole: role, Body: body}, nil
	}
	conv, err := Open(context.Background(), store, matchID, companyOwner, fixedIDs())
	require.NoError(t, err)

	loading := make(chan struct{})
	release := make(chan struct{})
	store.listMessagesFn = func(context.Context, string) ([]domain.Message, error) {
		close(loading)
		<-release
		return history(), nil
	}
	refreshed := make(chan error, 1)
	go func() { refreshed <- conv.Refresh(context.Background()) }()

	<-loading
	localID, err := conv.Send(context.Background(), "just sent")
	require.NoError(t, err)
	require.Len(t, conv.Entries(), 3)
	close(release)
	require.NoError(t, <-refreshed)

	entries := conv.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, localID, entries[2].LocalID)
	assert.Equal(t, "m3", entries[2].Message.ID)
	assert.Equal(t, Confirmed, entries[2].Delivery)

	store.listMessagesFn = func(context.Context, string) ([]domain.Message, error) {
		return append(history(), domain.Message{ID: "m3", MatchID: matchID, SenderRole: domain.SenderCompany, Body: "just sent"}), nil
	}
	require.NoError(t, conv.Refresh(context.Background()))
	entries = conv.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, "m3", entries[2].Message.ID)
}

func TestObserverSeesTransitions(t *testing.T) {
	store := readyStore()
	store.createMessageFn = func(_ context.Context, id string, role domain.SenderRole, body string) (*domain.Message, error) {
		return &domain.Message{ID: "m3", MatchID: id, SenderRole: role, Body: body}, nil
	}
	var seen []Delivery
	conv, err := Open(context.Background(), store, matchID, companyOwner, WithObserver(func(e Entry) {
		seen = append(seen, e.Delivery)
	}))
	require.NoError(t, err)

	_, err = conv.Send(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []Delivery{Pending, Confirmed}, seen)
}

func TestStoreCallsAreBoundedByTimeout(t *testing.T) {
	store := readyStore()
	store.createMessageFn = func(ctx context.Context, _ string, _ domain.SenderRole, _ string) (*domain.Message, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	conv, err := Open(context.Background(), store, matchID, companyOwner, WithTimeout(10*time.Millisecond))
	require.NoError(t, err)

	_, err = conv.Send(context.Background(), "slow")
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, Failed, conv.Entries()[2].Delivery)
}

func TestTempIDsNeverLookPersisted(t *testing.T) {
	a, b := NewTempID(), NewTempID()
	assert.NotEqual(t, a, b)
	assert.True(t, IsTempID(a))
	assert.False(t, IsTempID("0b7e7a3c-2f4e-4d0a-9d6c-1f8f9a7b6c5d"))
}
