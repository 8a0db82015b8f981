package models

import (
	"html/template"
	"time"
)

// CollectionPlace ties one place into one collection at an explicit rank.
// DisplayOrder is 0-based and dense within a collection; the save workflow
// re-derives it from list index on every write, so rows have no lifecycle of
// their own.
type CollectionPlace struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	CollectionID     uint      `gorm:"not null;index;uniqueIndex:idx_collection_order" json:"collection_id"`
	PlaceID          uint      `gorm:"not null;index" json:"place_id"`
	Place            Place     `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"place"`
	DisplayOrder     int       `gorm:"not null;uniqueIndex:idx_collection_order" json:"display_order"`
	Note             string    `gorm:"type:text" json:"note"`
	RecommendedItems []string  `gorm:"serializer:json" json:"recommended_items"`
	CreatedAt        time.Time `json:"created_at"`

	// Sanitized render of Note, filled on detail reads.
	NoteHTML template.HTML `gorm:"-" json:"note_html,omitempty"`
}
