// Package repo implements the data persistence layer for domain entities.
//
// Two implementations satisfy Store:
//   - MemStore: the default, process-local arena. State is lost on restart.
//   - SQLStore: GORM over a pure-Go SQLite database.
//
// Error semantics:
//   - A missing record is reported as ErrNotFound (never a nil pointer with a
//     nil error), so callers branch with errors.Is.
//   - A unique-key violation is reported as ErrDuplicate.
//   - Stores trust their callers: input validation happens above this layer.
//
// Ordering:
//   - Feeds (mood history, community board) are newest first.
//   - Time series (mood range queries) are oldest first.
package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound so both stores report absence the same way.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates a unique-key violation (username, idempotency key).
var ErrDuplicate = errors.New("duplicate")

// ErrConflict indicates a write based on a stale revision.
var ErrConflict = errors.New("revision conflict")

// Listing defaults and caps.
const (
	DefaultMoodLimit    = 7
	DefaultThoughtLimit = 10
	MaxListLimit        = 100
)

// UserStore persists accounts.
type UserStore interface {
	CreateUser(ctx context.Context, u domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// MoodStore persists mood entries.
type MoodStore interface {
	CreateMoodEntry(ctx context.Context, e domain.MoodEntry) (*domain.MoodEntry, error)
	GetMoodEntry(ctx context.Context, id int64) (*domain.MoodEntry, error)
	// ListMoodEntries returns the newest entries first; limit <= 0 means DefaultMoodLimit.
	ListMoodEntries(ctx context.Context, userID int64, limit int) ([]domain.MoodEntry, error)
	// ListMoodEntriesByRange returns entries with start <= createdAt <= end, oldest first.
	ListMoodEntriesByRange(ctx context.Context, userID int64, start, end time.Time) ([]domain.MoodEntry, error)
}

// ThoughtStore persists community board posts.
type ThoughtStore interface {
	// CreateThoughtPost stores p with zero likes regardless of p.Likes.
	CreateThoughtPost(ctx context.Context, p domain.ThoughtPost) (*domain.ThoughtPost, error)
	GetThoughtPost(ctx context.Context, id int64) (*domain.ThoughtPost, error)
	// ListThoughtPosts returns the newest posts first; limit <= 0 means DefaultThoughtLimit.
	ListThoughtPosts(ctx context.Context, limit int) ([]domain.ThoughtPost, error)
	// LikeThoughtPost increments likes by exactly one.
	LikeThoughtPost(ctx context.Context, id int64) (*domain.ThoughtPost, error)
	// ThoughtPostsStats returns the row count, the sum of likes and the newest
	// createdAt (nil when empty). Used for conditional GETs.
	ThoughtPostsStats(ctx context.Context) (count, totalLikes int64, latest *time.Time, err error)
}

// SelfCareStore persists daily checklists.
type SelfCareStore interface {
	CreateSelfCareChecklist(ctx context.Context, c domain.SelfCareChecklist) (*domain.SelfCareChecklist, error)
	GetSelfCareChecklist(ctx context.Context, id int64) (*domain.SelfCareChecklist, error)
	// FindSelfCareChecklist returns the first checklist of userID whose UTC
	// calendar date equals day's UTC calendar date.
	FindSelfCareChecklist(ctx context.Context, userID int64, day time.Time) (*domain.SelfCareChecklist, error)
	UpdateSelfCareChecklist(ctx context.Context, id int64, patch domain.SelfCarePatch) (*domain.SelfCareChecklist, error)
}

// ChatStore persists companion conversations.
type ChatStore interface {
	CreateConversation(ctx context.Context, c domain.ChatConversation) (*domain.ChatConversation, error)
	GetConversation(ctx context.Context, id int64) (*domain.ChatConversation, error)
	// GetConversationByUser returns the user's most recently created conversation.
	GetConversationByUser(ctx context.Context, userID int64) (*domain.ChatConversation, error)
	// UpdateConversationMessages replaces the message list, bumps updatedAt
	// and the revision. It returns ErrConflict when the stored revision is no
	// longer revision.
	UpdateConversationMessages(ctx context.Context, id, revision int64, msgs []domain.ChatMessage) (*domain.ChatConversation, error)
}

// IdempotencyStore persists replay records for unsafe requests.
type IdempotencyStore interface {
	// GetIdempotency returns a record that has not expired at now, or ErrNotFound.
	GetIdempotency(ctx context.Context, scope, key string, now time.Time) (*domain.Idempotency, error)
	// CreateIdempotency stores rec as given; the caller sets ExpiresAt. It
	// returns ErrDuplicate when (scope, key) is already taken.
	CreateIdempotency(ctx context.Context, rec domain.Idempotency) (*domain.Idempotency, error)
}

// Store is the full persistence contract used by the services.
type Store interface {
	UserStore
	MoodStore
	ThoughtStore
	SelfCareStore
	ChatStore
	IdempotencyStore
	Close() error
}

// clampLimit applies the default for non-positive limits and caps at MaxListLimit.
func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// dayBounds returns [00:00, next 00:00) of t's UTC calendar date.
func dayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// sameUTCDay reports whether a and b fall on the same UTC calendar date.
func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
