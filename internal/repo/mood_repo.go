// This file provides GORM repository functions for MoodEntry.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// CreateMoodEntry inserts e. CreatedAt defaults to now (UTC).
func CreateMoodEntry(ctx context.Context, db *gorm.DB, e domain.MoodEntry) (*domain.MoodEntry, error) {
	e.ID = 0
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	e.CreatedAt = e.CreatedAt.UTC()
	if err := db.WithContext(ctx).Create(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// GetMoodEntry fetches a mood entry by id, or ErrNotFound.
func GetMoodEntry(ctx context.Context, db *gorm.DB, id int64) (*domain.MoodEntry, error) {
	var e domain.MoodEntry
	if err := db.WithContext(ctx).First(&e, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// ListMoodEntries returns up to limit entries of userID, newest first.
// It returns an empty slice when the user has none.
func ListMoodEntries(ctx context.Context, db *gorm.DB, userID int64, limit int) ([]domain.MoodEntry, error) {
	out := []domain.MoodEntry{}
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		Limit(clampLimit(limit, DefaultMoodLimit)).
		Find(&out).Error
	return out, err
}

// ListMoodEntriesByRange returns entries of userID created within
// [start, end], oldest first.
func ListMoodEntriesByRange(ctx context.Context, db *gorm.DB, userID int64, start, end time.Time) ([]domain.MoodEntry, error) {
	out := []domain.MoodEntry{}
	err := db.WithContext(ctx).
		Where("user_id = ? AND created_at >= ? AND created_at <= ?", userID, start.UTC(), end.UTC()).
		Order("created_at asc").
		Order("id asc").
		Find(&out).Error
	return out, err
}
