// This file provides GORM repository functions for ThoughtPost.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// CreateThoughtPost inserts p with zero likes. CreatedAt defaults to now (UTC).
func CreateThoughtPost(ctx context.Context, db *gorm.DB, p domain.ThoughtPost) (*domain.ThoughtPost, error) {
	p.ID = 0
	p.Likes = 0
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.CreatedAt = p.CreatedAt.UTC()
	if err := db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// GetThoughtPost fetches a post by id, or ErrNotFound.
func GetThoughtPost(ctx context.Context, db *gorm.DB, id int64) (*domain.ThoughtPost, error) {
	var p domain.ThoughtPost
	if err := db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// ListThoughtPosts returns up to limit posts, newest first.
func ListThoughtPosts(ctx context.Context, db *gorm.DB, limit int) ([]domain.ThoughtPost, error) {
	out := []domain.ThoughtPost{}
	err := db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Limit(clampLimit(limit, DefaultThoughtLimit)).
		Find(&out).Error
	return out, err
}

// LikeThoughtPost increments likes in a single UPDATE so concurrent likes are
// never lost. Returns ErrNotFound when the post does not exist.
func LikeThoughtPost(ctx context.Context, db *gorm.DB, id int64) (*domain.ThoughtPost, error) {
	res := db.WithContext(ctx).
		Model(&domain.ThoughtPost{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + ?", 1))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetThoughtPost(ctx, db, id)
}
