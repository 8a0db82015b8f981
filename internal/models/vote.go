package models

import (
	"time"
)

// Vote is one user's signed (+1/-1) opinion on one place or one collection.
// Exactly one of PlaceID / CollectionID is set. The partial unique indexes
// enforce at most one vote per (user, target); PG treats rows with a NULL
// target column as outside the index, which is what we want.
type Vote struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index;uniqueIndex:idx_user_place;uniqueIndex:idx_user_collection" json:"user_id"`
	PlaceID      *uint     `gorm:"index;uniqueIndex:idx_user_place" json:"place_id"`
	CollectionID *uint     `gorm:"index;uniqueIndex:idx_user_collection" json:"collection_id"`
	Value        int       `gorm:"not null" json:"value"` // 1 or -1
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
