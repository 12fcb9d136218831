package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/matchstack-dev/matchstack/internal/domain"
	"github.com/matchstack-dev/matchstack/internal/events"
	"github.com/matchstack-dev/matchstack/internal/repository"
)

// world is an in-memory stand-in for the repositories, joined the way the SQL joins them.
type world struct {
	users     map[string]*domain.User
	resets    map[string]*repository.PasswordResetToken
	companies map[string]*domain.Company
	creators  map[string]*domain.Creator
	briefs    map[string]*domain.Brief
	matches   map[string]*domain.Match
	messages  []domain.Message
	recs      []domain.Recommendation

	creatorListCalls int
	recCalls         int
	messageErr       error
	clock            time.Time
}

func newWorld() *world {
	return &world{
		users:     map[string]*domain.User{},
		resets:    map[string]*repository.PasswordResetToken{},
		companies: map[string]*domain.Company{},
		creators:  map[string]*domain.Creator{},
		briefs:    map[string]*domain.Brief{},
		matches:   map[string]*domain.Match{},
		clock:     time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (w *world) tick() time.Time {
	w.clock = w.clock.Add(time.Second)
	return w.clock
}

type userRepo struct{ *world }

func (r userRepo) Create(_ context.Context, u *domain.User) error {
	u.ID = uuid.NewString()
	u.CreatedAt = r.tick()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r userRepo) Update(_ context.Context, u *domain.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return pgx.ErrNoRows
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r userRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type resetRepo struct{ *world }

func (r resetRepo) Create(_ context.Context, t *repository.PasswordResetToken) error {
	t.ID = uuid.NewString()
	t.CreatedAt = r.tick()
	cp := *t
	r.resets[t.Token] = &cp
	return nil
}

func (r resetRepo) GetByToken(_ context.Context, token string) (*repository.PasswordResetToken, error) {
	if t, ok := r.resets[token]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r resetRepo) MarkUsed(_ context.Context, id string) error {
	for _, t := range r.resets {
		if t.ID == id && t.UsedAt == nil {
			now := r.clock
			t.UsedAt = &now
			return nil
		}
	}
	return pgx.ErrNoRows
}

type companyRepo struct{ *world }

func (r companyRepo) Upsert(_ context.Context, c *domain.Company) error {
	for _, existing := range r.companies {
		if existing.UserID == c.UserID {
			c.ID = existing.ID
			c.CreatedAt = existing.CreatedAt
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
		c.CreatedAt = r.tick()
	}
	c.UpdatedAt = r.tick()
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r companyRepo) GetByID(_ context.Context, id string) (*domain.Company, error) {
	if c, ok := r.companies[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r companyRepo) GetByUserID(_ context.Context, userID string) (*domain.Company, error) {
	for _, c := range r.companies {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type creatorRepo struct{ *world }

func (r creatorRepo) Upsert(_ context.Context, c *domain.Creator) error {
	for _, existing := range r.creators {
		if existing.UserID == c.UserID {
			c.ID = existing.ID
			c.CreatedAt = existing.CreatedAt
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
		c.CreatedAt = r.tick()
		c.UpdatedAt = c.CreatedAt
	} else {
		c.UpdatedAt = r.tick()
	}
	cp := *c
	r.creators[c.ID] = &cp
	return nil
}

func (r creatorRepo) GetByID(_ context.Context, id string) (*domain.Creator, error) {
	if c, ok := r.creators[id]; ok {
		cp := *c
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r creatorRepo) GetByUserID(_ context.Context, userID string) (*domain.Creator, error) {
	for _, c := range r.creators {
		if c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r creatorRepo) List(_ context.Context, _ repository.CreatorQuery) ([]domain.Creator, error) {
	r.world.creatorListCalls++
	out := make([]domain.Creator, 0, len(r.creators))
	for _, c := range r.creators {
		out = append(out, *c)
	}
	return out, nil
}

type briefRepo struct{ *world }

func (r briefRepo) Create(_ context.Context, b *domain.Brief) error {
	b.ID = uuid.NewString()
	b.CreatedAt = r.tick()
	b.UpdatedAt = b.CreatedAt
	cp := *b
	r.briefs[b.ID] = &cp
	return nil
}

func (r briefRepo) GetByID(_ context.Context, id string) (*domain.Brief, error) {
	if b, ok := r.briefs[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r briefRepo) GetWithCompany(_ context.Context, id string) (*domain.BriefWithCompany, error) {
	b, ok := r.briefs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	c, ok := r.companies[b.CompanyID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &domain.BriefWithCompany{Brief: *b, Company: *c}, nil
}

func (r briefRepo) ListByCompany(_ context.Context, companyID string, status *domain.BriefStatus) ([]domain.Brief, error) {
	out := []domain.Brief{}
	for _, b := range r.briefs {
		if b.CompanyID == companyID && (status == nil || b.Status == *status) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r briefRepo) UpdateStatus(_ context.Context, id string, status domain.BriefStatus) error {
	b, ok := r.briefs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	b.Status = status
	return nil
}

type matchRepo struct{ *world }

func (r matchRepo) Upsert(_ context.Context, m *domain.Match, overwrite bool) (bool, error) {
	for _, existing := range r.matches {
		if existing.BriefID == m.BriefID && existing.CreatorID == m.CreatorID {
			if overwrite {
				existing.Status = m.Status
				existing.UpdatedAt = r.tick()
			}
			*m = *existing
			return false, nil
		}
	}
	m.ID = uuid.NewString()
	m.CreatedAt = r.tick()
	m.UpdatedAt = m.CreatedAt
	cp := *m
	r.matches[m.ID] = &cp
	return true, nil
}

func (r matchRepo) GetByID(_ context.Context, id string) (*domain.Match, error) {
	if m, ok := r.matches[id]; ok {
		cp := *m
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r matchRepo) GetWithParties(_ context.Context, id string) (*domain.MatchParties, error) {
	m, ok := r.matches[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	b := r.briefs[m.BriefID]
	c := r.companies[b.CompanyID]
	cr := r.creators[m.CreatorID]
	return &domain.MatchParties{
		Match:          *m,
		BriefTitle:     b.Title,
		CompanyID:      c.ID,
		CompanyName:    c.Name,
		CompanyOwnerID: c.UserID,
		CreatorName:    cr.Name,
		CreatorOwnerID: cr.UserID,
	}, nil
}

func (r matchRepo) ListByBrief(_ context.Context, briefID string) ([]domain.Match, error) {
	out := []domain.Match{}
	for _, m := range r.matches {
		if m.BriefID == briefID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r matchRepo) UpdateStatus(_ context.Context, id string, status domain.MatchStatus) error {
	m, ok := r.matches[id]
	if !ok {
		return pgx.ErrNoRows
	}
	m.Status = status
	return nil
}

type messageRepo struct{ *world }

func (r messageRepo) Create(_ context.Context, m *domain.Message) error {
	if r.messageErr != nil {
		return r.messageErr
	}
	m.ID = uuid.NewString()
	m.CreatedAt = r.tick()
	r.messages = append(r.messages, *m)
	return nil
}

func (r messageRepo) ListByMatch(_ context.Context, matchID string) ([]domain.Message, error) {
	out := []domain.Message{}
	for _, m := range r.messages {
		if m.MatchID == matchID {
			out = append(out, m)
		}
	}
	return out, nil
}

type recRepo struct{ *world }

func (r recRepo) ListForBrief(_ context.Context, briefID string, limit int) ([]domain.Recommendation, error) {
	r.world.recCalls++
	out := []domain.Recommendation{}
	if b, ok := r.briefs[briefID]; !ok || b.Status != domain.BriefStatusOpen {
		return out, nil
	}
	for _, rec := range r.recs {
		if rec.BriefID == briefID && len(out) < limit {
			out = append(out, rec)
		}
	}
	return out, nil
}

// memCache is a Cache held in process memory. TTLs are ignored.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	gens map[string]int64
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, gens: map[string]int64{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	raw, ok := c.data[key]
	c.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.data[key] = raw
	c.mu.Unlock()
	return nil
}

func (c *memCache) Generation(_ context.Context, name string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gens[name], nil
}

func (c *memCache) Bump(_ context.Context, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[name]++
	return nil
}

// recordingDispatcher keeps published events and forwards them to subscribers.
type recordingDispatcher struct {
	events.Dispatcher
	mu        sync.Mutex
	published []events.Event
}

func newRecordingDispatcher() *recordingDispatcher {
	return &recordingDispatcher{Dispatcher: events.NewInMemoryDispatcher()}
}

func (d *recordingDispatcher) Publish(ctx context.Context, event events.Event) error {
	d.mu.Lock()
	d.published = append(d.published, event)
	d.mu.Unlock()
	return d.Dispatcher.Publish(ctx, event)
}

func (d *recordingDispatcher) ofType(t events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, e := range d.published {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// marketplace wires every service against one world.
type marketplace struct {
	w             *world
	cache         *memCache
	dispatcher    *recordingDispatcher
	profiles      *ProfileService
	briefs        *BriefService
	matches       *MatchService
	conversations *ConversationService
	directory     *DirectoryService
	recs          *RecommendationService
}

func newMarketplace() *marketplace {
	w := newWorld()
	c := newMemCache()
	d := newRecordingDispatcher()
	briefs := NewBriefService(BriefDependencies{BriefRepo: briefRepo{w}, CompanyRepo: companyRepo{w}, Dispatcher: d})
	return &marketplace{
		w:          w,
		cache:      c,
		dispatcher: d,
		profiles: NewProfileService(ProfileDependencies{
			CompanyRepo: companyRepo{w}, CreatorRepo: creatorRepo{w}, Cache: c, Dispatcher: d,
		}),
		briefs: briefs,
		matches: NewMatchService(MatchDependencies{
			Briefs: briefs, MatchRepo: matchRepo{w}, CreatorRepo: creatorRepo{w}, Dispatcher: d,
		}),
		conversations: NewConversationService(ConversationDependencies{
			MatchRepo: matchRepo{w}, MessageRepo: messageRepo{w}, Dispatcher: d,
		}),
		directory: NewDirectoryService(DirectoryDependencies{
			CreatorRepo: creatorRepo{w}, Cache: c, TTL: time.Minute,
		}),
		recs: NewRecommendationService(RecommendationDependencies{
			Briefs: briefs, RecommendationRepo: recRepo{w}, Cache: c, TTL: time.Minute, Limit: 5,
		}),
	}
}
