// Package domain defines the persistence models shared by the repo and
// services packages. This file holds the record behind Idempotency-Key
// replays.
package domain

import "time"

// Idempotency records the outcome of a keyed create request, identified by
// (scope, key). A retry with the same key within the retention window gets
// the original resource id back instead of creating a second record.
type Idempotency struct {
	ID         string    `gorm:"type:char(36);primaryKey"`
	Scope      string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_idempotency_scope_key,priority:1"`
	Key        string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_idempotency_scope_key,priority:2"`
	ResourceID string    `gorm:"type:char(36);not null"`
	Status     int       `gorm:"not null"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime"`
	ExpiresAt  time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
