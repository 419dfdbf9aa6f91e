// This file provides GORM repository functions for ChatConversation.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only
// persistence and query composition.
//
// Functions:
//
//   - CreateConversation(ctx, db, c) -> *domain.ChatConversation, error
//     Inserts a conversation; the messages are stored as one JSON column.
//
//   - GetConversation(ctx, db, id) -> *domain.ChatConversation, error
//     Fetches by primary key, or ErrNotFound.
//
//   - GetConversationByUser(ctx, db, userID) -> *domain.ChatConversation, error
//     Fetches the user's most recently created conversation, or ErrNotFound.
//
//   - UpdateConversationMessages(ctx, db, id, revision, msgs) -> *domain.ChatConversation, error
//     Replaces the message list when the stored revision still matches,
//     bumping revision and updated_at.
package repo

import (
	"context"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// CreateConversation inserts c. CreatedAt/UpdatedAt default to now (UTC).
func CreateConversation(ctx context.Context, db *gorm.DB, c domain.ChatConversation) (*domain.ChatConversation, error) {
	c.ID = 0
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	c.CreatedAt, c.UpdatedAt = c.CreatedAt.UTC(), c.UpdatedAt.UTC()
	c.Messages = datatypes.NewJSONSlice(domain.CloneMessages(c.Messages))
	if err := db.WithContext(ctx).Create(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetConversation fetches a conversation by id.
func GetConversation(ctx context.Context, db *gorm.DB, id int64) (*domain.ChatConversation, error) {
	var c domain.ChatConversation
	if err := db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// GetConversationByUser fetches the newest conversation owned by userID.
func GetConversationByUser(ctx context.Context, db *gorm.DB, userID int64) (*domain.ChatConversation, error) {
	var c domain.ChatConversation
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id desc").
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateConversationMessages replaces the messages of conversation id in a
// single UPDATE guarded by revision. If no row is affected it returns
// ErrNotFound for a missing conversation and ErrConflict for a stale revision.
func UpdateConversationMessages(ctx context.Context, db *gorm.DB, id, revision int64, msgs []domain.ChatMessage) (*domain.ChatConversation, error) {
	res := db.WithContext(ctx).
		Model(&domain.ChatConversation{}).
		Where("id = ? AND revision = ?", id, revision).
		Updates(map[string]any{
			"messages":   datatypes.NewJSONSlice(domain.CloneMessages(msgs)),
			"revision":   gorm.Expr("revision + ?", 1),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		if _, err := GetConversation(ctx, db, id); err != nil {
			return nil, err
		}
		return nil, ErrConflict
	}
	return GetConversation(ctx, db, id)
}
