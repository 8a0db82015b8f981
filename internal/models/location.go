package models

import (
	"time"
)

// Location is the city taxonomy places and collections hang off.
// Read-mostly: seeded at startup, managed outside the curation flow.
type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Slug      string    `gorm:"not null;uniqueIndex" json:"slug"`
	NameTR    string    `gorm:"not null" json:"name_tr"`
	NameEN    string    `json:"name_en"`
	Type      string    `gorm:"size:20;default:'city'" json:"type"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
