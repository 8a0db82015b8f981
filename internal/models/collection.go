package models

import (
	"time"
)

const (
	CollectionStatusActive   = "active"
	CollectionStatusInactive = "inactive"
)

// Collection is a named, ordered curation of places by one creator.
// Slug and CreatorID are immutable after creation; membership lives in
// CollectionPlace and is fully replaced on every save.
type Collection struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`
	NameTR      string    `gorm:"not null" json:"name_tr"`
	NameEN      string    `json:"name_en"`
	Description string    `gorm:"type:text" json:"description"`
	Tags        []string  `gorm:"serializer:json" json:"tags"`
	CreatorID   uint      `gorm:"not null;index" json:"creator_id"`
	Creator     User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"creator"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	Category    Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	LocationID  *uint     `gorm:"index" json:"location_id"` // nil for city-agnostic collections
	Location    *Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location"`
	Status      string    `gorm:"size:20;default:'active'" json:"status"`

	VoteScore int `gorm:"default:0;index" json:"vote_score"`
	VoteCount int `gorm:"default:0" json:"vote_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated on detail queries, not a column.
	Places []CollectionPlace `gorm:"foreignKey:CollectionID" json:"places,omitempty"`
}
