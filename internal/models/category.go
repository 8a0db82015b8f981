package models

import (
	"time"
)

type Category struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Slug         string    `gorm:"not null;uniqueIndex" json:"slug"`
	NameTR       string    `gorm:"not null" json:"name_tr"`
	NameEN       string    `json:"name_en"`
	Icon         string    `gorm:"size:8" json:"icon"` // emoji
	DisplayOrder int       `gorm:"default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
