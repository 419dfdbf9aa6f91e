package services

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-wellness-backend/internal/domain"
	"github.com/tbourn/go-wellness-backend/internal/repo"
)

// MoodService records and reads mood entries.
type MoodService struct {
	Store repo.MoodStore
}

// NewMoodService returns a MoodService over s.
func NewMoodService(s repo.MoodStore) *MoodService {
	return &MoodService{Store: s}
}

// Record stores a mood for userID. A blank note is stored as null.
func (s *MoodService) Record(ctx context.Context, userID int64, mood domain.Mood, note *string) (*domain.MoodEntry, error) {
	ctx, span := otel.Tracer("services/MoodService").Start(ctx, "Record",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.String("mood", string(mood)),
		),
	)
	defer span.End()

	if !mood.Valid() {
		return nil, ErrInvalidMood
	}
	if note != nil && strings.TrimSpace(*note) == "" {
		note = nil
	}
	return s.Store.CreateMoodEntry(ctx, domain.MoodEntry{UserID: userID, Mood: mood, Note: note})
}

// Recent returns the user's newest entries, newest first.
func (s *MoodService) Recent(ctx context.Context, userID int64, limit int) ([]domain.MoodEntry, error) {
	ctx, span := otel.Tracer("services/MoodService").Start(ctx, "Recent",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	return s.Store.ListMoodEntries(ctx, userID, limit)
}

// Range returns the user's entries with start <= createdAt <= end, oldest
// first. An inverted range yields an empty list.
func (s *MoodService) Range(ctx context.Context, userID int64, start, end time.Time) ([]domain.MoodEntry, error) {
	ctx, span := otel.Tracer("services/MoodService").Start(ctx, "Range",
		trace.WithAttributes(
			attribute.Int64("user.id", userID),
			attribute.String("start", start.UTC().Format(time.RFC3339)),
			attribute.String("end", end.UTC().Format(time.RFC3339)),
		),
	)
	defer span.End()

	if end.Before(start) {
		return []domain.MoodEntry{}, nil
	}
	return s.Store.ListMoodEntriesByRange(ctx, userID, start, end)
}
