// This file provides small aggregate queries used for conditional responses
// (ETag generation) in the HTTP layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-wellness-backend/internal/domain"
)

// ThoughtPostsStats returns aggregate metadata for the community board: the
// number of posts, the sum of their likes and the newest CreatedAt.
//
// When the board is empty, count and totalLikes are 0 and latest is nil.
// Likes are part of the fingerprint so a like invalidates cached feeds.
func ThoughtPostsStats(ctx context.Context, db *gorm.DB) (count, totalLikes int64, latest *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.ThoughtPost{})

	if err = q.Count(&count).Error; err != nil {
		return 0, 0, nil, err
	}
	if count == 0 {
		return 0, 0, nil, nil
	}

	var sum struct{ Total int64 }
	if err = db.WithContext(ctx).Model(&domain.ThoughtPost{}).
		Select("COALESCE(SUM(likes), 0) AS total").Scan(&sum).Error; err != nil {
		return 0, 0, nil, err
	}

	// Get latest created_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		CreatedAt time.Time
	}
	if err = db.WithContext(ctx).Model(&domain.ThoughtPost{}).
		Select("created_at").Order("created_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, 0, nil, err
	}
	return count, sum.Total, &row.CreatedAt, nil
}
