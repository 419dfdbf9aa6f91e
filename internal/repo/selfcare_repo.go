// This file provides GORM repository functions for SelfCareChecklist.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// CreateSelfCareChecklist inserts c. Date defaults to now (UTC).
func CreateSelfCareChecklist(ctx context.Context, db *gorm.DB, c domain.SelfCareChecklist) (*domain.SelfCareChecklist, error) {
	c.ID = 0
	if c.Date.IsZero() {
		c.Date = time.Now()
	}
	c.Date = c.Date.UTC()
	if err := db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetSelfCareChecklist fetches a checklist by id, or ErrNotFound.
func GetSelfCareChecklist(ctx context.Context, db *gorm.DB, id int64) (*domain.SelfCareChecklist, error) {
	var c domain.SelfCareChecklist
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// FindSelfCareChecklist returns the first checklist of userID dated on day's
// UTC calendar date, or ErrNotFound.
func FindSelfCareChecklist(ctx context.Context, db *gorm.DB, userID int64, day time.Time) (*domain.SelfCareChecklist, error) {
	from, to := dayBounds(day)
	var c domain.SelfCareChecklist
	err := db.WithContext(ctx).
		Where("user_id = ? AND date >= ? AND date < ?", userID, from, to).
		Order("id asc").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateSelfCareChecklist merges the non-nil fields of patch into checklist id.
func UpdateSelfCareChecklist(ctx context.Context, db *gorm.DB, id int64, patch domain.SelfCarePatch) (*domain.SelfCareChecklist, error) {
	if patch.Empty() {
		return GetSelfCareChecklist(ctx, db, id)
	}
	res := db.WithContext(ctx).
		Model(&domain.SelfCareChecklist{}).
		Where("id = ?", id).
		Updates(patch.Columns())
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetSelfCareChecklist(ctx, db, id)
}
