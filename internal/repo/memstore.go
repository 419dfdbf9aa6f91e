package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// table is one entity type's arena: a monotonically increasing id counter
// and the rows keyed by id. The mutex covers both, so id assignment and
// insertion happen as one step.
type table[T any] struct {
	mu   sync.RWMutex
	next int64
	rows map[int64]T
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[int64]T)}
}

// insert assigns the next id, lets build produce the row and stores it.
func (t *table[T]) insert(build func(id int64) T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	row := build(t.next)
	t.rows[t.next] = row
	return row
}

func (t *table[T]) get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	return row, ok
}

// update applies fn to the stored row under the write lock. A missing row
// yields ErrNotFound; an error from fn leaves the row unchanged.
func (t *table[T]) update(id int64, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return row, ErrNotFound
	}
	if err := fn(&row); err != nil {
		return row, err
	}
	t.rows[id] = row
	return row, nil
}

// filter returns matching rows in ascending id order.
func (t *table[T]) filter(keep func(T) bool) []T {
	t.mu.RLock()
	ids := make([]int64, 0, len(t.rows))
	for id, row := range t.rows {
		if keep(row) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	out := make([]T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.rows[id])
	}
	t.mu.RUnlock()
	return out
}

// MemStore is the in-memory Store. It is safe for concurrent use; values are
// copied on the way in and out so callers never share state with the store.
type MemStore struct {
	now func() time.Time

	users     *table[domain.User]
	moods     *table[domain.MoodEntry]
	thoughts  *table[domain.ThoughtPost]
	selfCare  *table[domain.SelfCareChecklist]
	chats     *table[domain.ChatConversation]
	idem      *table[domain.Idempotency]
	usernames sync.Map // username -> id
	idemMu    sync.Mutex
}

// MemOption configures a MemStore.
type MemOption func(*MemStore)

// WithClock overrides the clock used to stamp createdAt/updatedAt/date.
func WithClock(now func() time.Time) MemOption {
	return func(m *MemStore) { m.now = now }
}

// NewMemStore returns an empty in-memory store.
func NewMemStore(opts ...MemOption) *MemStore {
	m := &MemStore{
		now:      func() time.Time { return time.Now().UTC() },
		users:    newTable[domain.User](),
		moods:    newTable[domain.MoodEntry](),
		thoughts: newTable[domain.ThoughtPost](),
		selfCare: newTable[domain.SelfCareChecklist](),
		chats:    newTable[domain.ChatConversation](),
		idem:     newTable[domain.Idempotency](),
	}
	for _, o := range opts {
		o(m)
	}
	return m
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error { return nil }

// stamp returns t in UTC, or the store clock when t is zero.
func (m *MemStore) stamp(t time.Time) time.Time {
	if t.IsZero() {
		return m.now().UTC()
	}
	return t.UTC()
}

// ---- users ----

func (m *MemStore) CreateUser(_ context.Context, u domain.User) (*domain.User, error) {
	// Reserve the username before assigning an id so two concurrent creates
	// with the same name cannot both succeed.
	key := u.Username
	if _, loaded := m.usernames.LoadOrStore(key, int64(0)); loaded {
		return nil, ErrDuplicate
	}
	row := m.users.insert(func(id int64) domain.User {
		u.ID = id
		u.CreatedAt = m.stamp(u.CreatedAt)
		return u
	})
	m.usernames.Store(key, row.ID)
	return &row, nil
}

func (m *MemStore) GetUser(_ context.Context, id int64) (*domain.User, error) {
	row, ok := m.users.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (m *MemStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	v, ok := m.usernames.Load(username)
	if !ok {
		return nil, ErrNotFound
	}
	id, _ := v.(int64)
	if id == 0 {
		// reserved by an in-flight create
		return nil, ErrNotFound
	}
	return m.GetUser(ctx, id)
}

// ---- mood entries ----

func (m *MemStore) CreateMoodEntry(_ context.Context, e domain.MoodEntry) (*domain.MoodEntry, error) {
	row := m.moods.insert(func(id int64) domain.MoodEntry {
		e.ID = id
		e.CreatedAt = m.stamp(e.CreatedAt)
		return e
	})
	return &row, nil
}

func (m *MemStore) GetMoodEntry(_ context.Context, id int64) (*domain.MoodEntry, error) {
	row, ok := m.moods.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (m *MemStore) ListMoodEntries(_ context.Context, userID int64, limit int) ([]domain.MoodEntry, error) {
	rows := m.moods.filter(func(e domain.MoodEntry) bool { return e.UserID == userID })
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	if n := clampLimit(limit, DefaultMoodLimit); len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

func (m *MemStore) ListMoodEntriesByRange(_ context.Context, userID int64, start, end time.Time) ([]domain.MoodEntry, error) {
	rows := m.moods.filter(func(e domain.MoodEntry) bool {
		return e.UserID == userID && !e.CreatedAt.Before(start) && !e.CreatedAt.After(end)
	})
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID < rows[j].ID
		}
		return rows[i].CreatedAt.Before(rows[j].CreatedAt)
	})
	return rows, nil
}

// ---- thought posts ----

func (m *MemStore) CreateThoughtPost(_ context.Context, p domain.ThoughtPost) (*domain.ThoughtPost, error) {
	row := m.thoughts.insert(func(id int64) domain.ThoughtPost {
		p.ID = id
		p.Likes = 0
		p.CreatedAt = m.stamp(p.CreatedAt)
		return p
	})
	return &row, nil
}

func (m *MemStore) GetThoughtPost(_ context.Context, id int64) (*domain.ThoughtPost, error) {
	row, ok := m.thoughts.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (m *MemStore) ListThoughtPosts(_ context.Context, limit int) ([]domain.ThoughtPost, error) {
	rows := m.thoughts.filter(func(domain.ThoughtPost) bool { return true })
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].CreatedAt.Equal(rows[j].CreatedAt) {
			return rows[i].ID > rows[j].ID
		}
		return rows[i].CreatedAt.After(rows[j].CreatedAt)
	})
	if n := clampLimit(limit, DefaultThoughtLimit); len(rows) > n {
		rows = rows[:n]
	}
	return rows, nil
}

func (m *MemStore) LikeThoughtPost(_ context.Context, id int64) (*domain.ThoughtPost, error) {
	row, err := m.thoughts.update(id, func(p *domain.ThoughtPost) error {
		p.Likes++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (m *MemStore) ThoughtPostsStats(_ context.Context) (count, totalLikes int64, latest *time.Time, err error) {
	for _, p := range m.thoughts.filter(func(domain.ThoughtPost) bool { return true }) {
		count++
		totalLikes += p.Likes
		if latest == nil || p.CreatedAt.After(*latest) {
			ts := p.CreatedAt
			latest = &ts
		}
	}
	return count, totalLikes, latest, nil
}

// ---- self-care ----

func (m *MemStore) CreateSelfCareChecklist(_ context.Context, c domain.SelfCareChecklist) (*domain.SelfCareChecklist, error) {
	row := m.selfCare.insert(func(id int64) domain.SelfCareChecklist {
		c.ID = id
		c.Date = m.stamp(c.Date)
		return c
	})
	return &row, nil
}

func (m *MemStore) GetSelfCareChecklist(_ context.Context, id int64) (*domain.SelfCareChecklist, error) {
	row, ok := m.selfCare.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &row, nil
}

func (m *MemStore) FindSelfCareChecklist(_ context.Context, userID int64, day time.Time) (*domain.SelfCareChecklist, error) {
	rows := m.selfCare.filter(func(c domain.SelfCareChecklist) bool {
		return c.UserID == userID && sameUTCDay(c.Date, day)
	})
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return &rows[0], nil
}

func (m *MemStore) UpdateSelfCareChecklist(_ context.Context, id int64, patch domain.SelfCarePatch) (*domain.SelfCareChecklist, error) {
	row, err := m.selfCare.update(id, func(c *domain.SelfCareChecklist) error {
		patch.Apply(c)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ---- chat conversations ----

func (m *MemStore) CreateConversation(_ context.Context, c domain.ChatConversation) (*domain.ChatConversation, error) {
	row := m.chats.insert(func(id int64) domain.ChatConversation {
		c.ID = id
		c.Messages = domain.CloneMessages(c.Messages)
		c.CreatedAt = m.stamp(c.CreatedAt)
		if c.UpdatedAt.IsZero() {
			c.UpdatedAt = c.CreatedAt
		}
		return c
	})
	return cloneConversation(row), nil
}

func (m *MemStore) GetConversation(_ context.Context, id int64) (*domain.ChatConversation, error) {
	row, ok := m.chats.get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return cloneConversation(row), nil
}

func (m *MemStore) GetConversationByUser(_ context.Context, userID int64) (*domain.ChatConversation, error) {
	rows := m.chats.filter(func(c domain.ChatConversation) bool { return c.UserID == userID })
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	latest := rows[0]
	for _, c := range rows[1:] {
		if !c.CreatedAt.Before(latest.CreatedAt) {
			latest = c
		}
	}
	return cloneConversation(latest), nil
}

func (m *MemStore) UpdateConversationMessages(_ context.Context, id, revision int64, msgs []domain.ChatMessage) (*domain.ChatConversation, error) {
	now := m.now().UTC()
	row, err := m.chats.update(id, func(c *domain.ChatConversation) error {
		if c.Revision != revision {
			return ErrConflict
		}
		c.Messages = domain.CloneMessages(msgs)
		c.Revision++
		c.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cloneConversation(row), nil
}

func cloneConversation(c domain.ChatConversation) *domain.ChatConversation {
	c.Messages = domain.CloneMessages(c.Messages)
	return &c
}

// ---- idempotency ----

func (m *MemStore) GetIdempotency(_ context.Context, scope, key string, now time.Time) (*domain.Idempotency, error) {
	rows := m.idem.filter(func(r domain.Idempotency) bool {
		return r.Scope == scope && r.Key == key && r.ExpiresAt.After(now)
	})
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	rec := rows[0]
	rec.Response = append([]byte(nil), rec.Response...)
	return &rec, nil
}

func (m *MemStore) CreateIdempotency(_ context.Context, rec domain.Idempotency) (*domain.Idempotency, error) {
	m.idemMu.Lock()
	defer m.idemMu.Unlock()

	// Expired records keep their (scope, key) slot, matching the unique index in SQL.
	if taken := m.idem.filter(func(r domain.Idempotency) bool { return r.Scope == rec.Scope && r.Key == rec.Key }); len(taken) > 0 {
		return nil, ErrDuplicate
	}
	row := m.idem.insert(func(id int64) domain.Idempotency {
		rec.ID = id
		rec.CreatedAt = m.stamp(rec.CreatedAt)
		rec.ExpiresAt = rec.ExpiresAt.UTC()
		rec.Response = append([]byte(nil), rec.Response...)
		return rec
	})
	return &row, nil
}

var _ Store = (*MemStore)(nil)
