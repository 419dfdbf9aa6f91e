package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// eachStore runs fn against a fresh MemStore and a fresh SQLite-backed SQLStore.
func eachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := NewSQLStore(filepath.Join(t.TempDir(), "app.db"))
		require.NoError(t, err)
		// Release the file handle before TempDir cleanup (Windows needs this).
		t.Cleanup(func() { _ = s.Close() })
		fn(t, s)
	})
}

var base = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func TestStore_Users(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		name := "Ada"

		u1, err := s.CreateUser(ctx, domain.User{Username: "ada", Password: "h1", DisplayName: &name})
		require.NoError(t, err)
		u2, err := s.CreateUser(ctx, domain.User{Username: "bob", Password: "h2"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), u1.ID)
		assert.Equal(t, int64(2), u2.ID)
		assert.False(t, u1.CreatedAt.IsZero())

		_, err = s.CreateUser(ctx, domain.User{Username: "ada", Password: "h3"})
		assert.ErrorIs(t, err, ErrDuplicate)

		got, err := s.GetUser(ctx, u1.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada", got.Username)
		require.NotNil(t, got.DisplayName)
		assert.Equal(t, "Ada", *got.DisplayName)

		byName, err := s.GetUserByUsername(ctx, "bob")
		require.NoError(t, err)
		assert.Equal(t, u2.ID, byName.ID)

		_, err = s.GetUser(ctx, 999999)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetUserByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_MoodEntries_ListNewestFirstWithLimit(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for i := 0; i < 9; i++ {
			_, err := s.CreateMoodEntry(ctx, domain.MoodEntry{
				UserID:    1,
				Mood:      domain.MoodCalm,
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			})
			require.NoError(t, err)
		}
		_, err := s.CreateMoodEntry(ctx, domain.MoodEntry{UserID: 2, Mood: domain.MoodSad, CreatedAt: base})
		require.NoError(t, err)

		got, err := s.ListMoodEntries(ctx, 1, 0)
		require.NoError(t, err)
		require.Len(t, got, DefaultMoodLimit)
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i-1].CreatedAt.After(got[i].CreatedAt), "not newest first at %d", i)
		}
		assert.True(t, got[0].CreatedAt.Equal(base.Add(8*time.Hour)))

		got, err = s.ListMoodEntries(ctx, 1, 3)
		require.NoError(t, err)
		assert.Len(t, got, 3)

		none, err := s.ListMoodEntries(ctx, 999999, 0)
		require.NoError(t, err)
		assert.NotNil(t, none)
		assert.Empty(t, none)
	})
}

func TestStore_MoodEntries_RangeInclusiveOldestFirst(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		for _, off := range []time.Duration{-time.Hour, 0, time.Hour, 2 * time.Hour, 3 * time.Hour} {
			_, err := s.CreateMoodEntry(ctx, domain.MoodEntry{UserID: 7, Mood: domain.MoodHappy, CreatedAt: base.Add(off)})
			require.NoError(t, err)
		}

		got, err := s.ListMoodEntriesByRange(ctx, 7, base, base.Add(2*time.Hour))
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.True(t, got[0].CreatedAt.Equal(base))
		assert.True(t, got[2].CreatedAt.Equal(base.Add(2*time.Hour)))

		empty, err := s.ListMoodEntriesByRange(ctx, 7, base.Add(10*time.Hour), base.Add(20*time.Hour))
		require.NoError(t, err)
		assert.Empty(t, empty)

		inverted, err := s.ListMoodEntriesByRange(ctx, 7, base.Add(2*time.Hour), base)
		require.NoError(t, err)
		assert.Empty(t, inverted)
	})
}

func TestStore_ThoughtPosts_LikesAndOrdering(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		old, err := s.CreateThoughtPost(ctx, domain.ThoughtPost{UserID: 1, Content: "old", Likes: 99, CreatedAt: base})
		require.NoError(t, err)
		assert.Equal(t, int64(0), old.Likes, "likes must start at zero")
		fresh, err := s.CreateThoughtPost(ctx, domain.ThoughtPost{UserID: 2, Content: "fresh", CreatedAt: base.Add(time.Minute)})
		require.NoError(t, err)

		list, err := s.ListThoughtPosts(ctx, 0)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, fresh.ID, list[0].ID)

		for i := 0; i < 3; i++ {
			_, err = s.LikeThoughtPost(ctx, old.ID)
			require.NoError(t, err)
		}
		liked, err := s.GetThoughtPost(ctx, old.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), liked.Likes)

		_, err = s.LikeThoughtPost(ctx, 999999)
		assert.ErrorIs(t, err, ErrNotFound)

		count, total, latest, err := s.ThoughtPostsStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), count)
		assert.Equal(t, int64(3), total)
		require.NotNil(t, latest)
		assert.True(t, latest.Equal(base.Add(time.Minute)))
	})
}

func TestStore_ThoughtPosts_EmptyStats(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		count, total, latest, err := s.ThoughtPostsStats(context.Background())
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Zero(t, total)
		assert.Nil(t, latest)
	})
}

func TestStore_SelfCare_DayResolutionAndPatch(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		yesterday, err := s.CreateSelfCareChecklist(ctx, domain.SelfCareChecklist{UserID: 3, Water: true, Date: base.Add(-24 * time.Hour)})
		require.NoError(t, err)
		today, err := s.CreateSelfCareChecklist(ctx, domain.SelfCareChecklist{UserID: 3, Date: base})
		require.NoError(t, err)

		got, err := s.FindSelfCareChecklist(ctx, 3, base.Add(5*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, today.ID, got.ID)

		got, err = s.FindSelfCareChecklist(ctx, 3, base.Add(-20*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, yesterday.ID, got.ID)
		assert.True(t, got.Water)

		_, err = s.FindSelfCareChecklist(ctx, 3, base.Add(48*time.Hour))
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.FindSelfCareChecklist(ctx, 4, base)
		assert.ErrorIs(t, err, ErrNotFound)

		yes := true
		updated, err := s.UpdateSelfCareChecklist(ctx, today.ID, domain.SelfCarePatch{Exercise: &yes})
		require.NoError(t, err)
		assert.True(t, updated.Exercise)
		assert.False(t, updated.Water)

		no := false
		updated, err = s.UpdateSelfCareChecklist(ctx, yesterday.ID, domain.SelfCarePatch{Water: &no, Sleep: &yes})
		require.NoError(t, err)
		assert.False(t, updated.Water)
		assert.True(t, updated.Sleep)

		_, err = s.UpdateSelfCareChecklist(ctx, 999999, domain.SelfCarePatch{Water: &yes})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_Chat_LatestByUserAndUpdate(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()

		first, err := s.CreateConversation(ctx, domain.ChatConversation{
			UserID:    5,
			Messages:  []domain.ChatMessage{{Role: domain.RoleUser, Content: "old"}},
			CreatedAt: base,
		})
		require.NoError(t, err)
		second, err := s.CreateConversation(ctx, domain.ChatConversation{
			UserID:    5,
			Messages:  []domain.ChatMessage{{Role: domain.RoleUser, Content: "new"}},
			CreatedAt: base.Add(time.Hour),
		})
		require.NoError(t, err)
		assert.Greater(t, second.ID, first.ID)

		got, err := s.GetConversationByUser(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, second.ID, got.ID)

		_, err = s.GetConversationByUser(ctx, 6)
		assert.ErrorIs(t, err, ErrNotFound)

		msgs := append(got.Messages, domain.ChatMessage{Role: domain.RoleAssistant, Content: "hello"})
		updated, err := s.UpdateConversationMessages(ctx, second.ID, got.Revision, msgs)
		require.NoError(t, err)
		require.Len(t, updated.Messages, 2)
		assert.Equal(t, "new", updated.Messages[0].Content)
		assert.Equal(t, domain.RoleAssistant, updated.Messages[1].Role)
		assert.Equal(t, got.Revision+1, updated.Revision)
		assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

		// A writer still holding the old revision loses.
		_, err = s.UpdateConversationMessages(ctx, second.ID, got.Revision, got.Messages)
		assert.ErrorIs(t, err, ErrConflict)
		kept, err := s.GetConversation(ctx, second.ID)
		require.NoError(t, err)
		assert.Len(t, kept.Messages, 2, "stale write must not land")

		other, err := s.GetConversation(ctx, first.ID)
		require.NoError(t, err)
		assert.Len(t, other.Messages, 1, "other conversations untouched")

		_, err = s.UpdateConversationMessages(ctx, 999999, 0, msgs)
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = s.GetConversation(ctx, 999999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestStore_Idempotency(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		// The caller's clock decides expiry, even far from the store's own.
		now := time.Date(2031, 1, 1, 9, 0, 0, 0, time.UTC)
		rec := func(resourceID int64, body string) domain.Idempotency {
			return domain.Idempotency{
				Scope:      "chat:1:message",
				Key:        "k1",
				ResourceID: resourceID,
				Status:     200,
				Response:   []byte(body),
				CreatedAt:  now,
				ExpiresAt:  now.Add(time.Hour),
			}
		}

		created, err := s.CreateIdempotency(ctx, rec(1, `{"id":1,"messages":[]}`))
		require.NoError(t, err)
		assert.Equal(t, int64(1), created.ResourceID)

		_, err = s.CreateIdempotency(ctx, rec(2, `{"id":2}`))
		assert.ErrorIs(t, err, ErrDuplicate)

		got, err := s.GetIdempotency(ctx, "chat:1:message", "k1", now.Add(59*time.Minute))
		require.NoError(t, err)
		assert.Equal(t, 200, got.Status)
		assert.JSONEq(t, `{"id":1,"messages":[]}`, string(got.Response))
		assert.True(t, got.ExpiresAt.Equal(now.Add(time.Hour)))

		_, err = s.GetIdempotency(ctx, "chat:1:message", "k1", now.Add(2*time.Hour))
		assert.ErrorIs(t, err, ErrNotFound, "expired records are not served")

		_, err = s.GetIdempotency(ctx, "chat:2:message", "k1", now)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestSeedThoughtPosts(t *testing.T) {
	eachStore(t, func(t *testing.T, s Store) {
		ctx := context.Background()
		require.NoError(t, SeedThoughtPosts(ctx, s, base))

		list, err := s.ListThoughtPosts(ctx, 0)
		require.NoError(t, err)
		require.Len(t, list, 4)

		likes := []int64{}
		for _, p := range list {
			likes = append(likes, p.Likes)
			assert.Equal(t, int64(0), p.UserID)
		}
		assert.Equal(t, []int64{24, 18, 32, 45}, likes, "newest first")

		// Second call is a no-op on a populated board.
		require.NoError(t, SeedThoughtPosts(ctx, s, base))
		count, _, _, err := s.ThoughtPostsStats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), count)
	})
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, 7, clampLimit(0, 7))
	assert.Equal(t, 7, clampLimit(-3, 7))
	assert.Equal(t, 5, clampLimit(5, 7))
	assert.Equal(t, MaxListLimit, clampLimit(1000, 7))
}
