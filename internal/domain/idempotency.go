package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Idempotency records the outcome of a previously processed unsafe request,
// keyed by (scope, key). Scope identifies the target resource, for example
// "chat:42:message". A retry carrying the same key inside the TTL window is
// answered from Response, the body the first request returned, instead of
// being executed again. ExpiresAt is set by the caller from its own clock.
type Idempotency struct {
	ID         int64          `gorm:"primaryKey;autoIncrement"`
	Scope      string         `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_scope_key,priority:1"`
	Key        string         `gorm:"type:TEXT NOT NULL;uniqueIndex:ux_scope_key,priority:2"`
	ResourceID int64          `gorm:"type:INTEGER NOT NULL"`
	Status     int            `gorm:"type:INTEGER NOT NULL"`
	Response   datatypes.JSON `gorm:"type:json"`
	CreatedAt  time.Time      `gorm:"type:DATETIME NOT NULL;autoCreateTime"`
	ExpiresAt  time.Time      `gorm:"type:DATETIME NOT NULL;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
