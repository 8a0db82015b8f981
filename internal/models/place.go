package models

import (
	"time"
)

const (
	PlaceStatusPending  = "pending"
	PlaceStatusApproved = "approved"
	PlaceStatusRejected = "rejected"
)

// Place is a point of interest. A place sourced from the lookup
// collaborator carries ExternalPlaceID and is globally deduplicated on it;
// a freeform place has IsFreeform set and only a name.
type Place struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Slug            string    `gorm:"uniqueIndex;not null" json:"slug"`
	NameTR          string    `gorm:"not null" json:"name_tr"`
	NameEN          string    `json:"name_en"`
	ExternalPlaceID *string   `gorm:"uniqueIndex" json:"external_place_id"`
	IsFreeform      bool      `gorm:"default:false" json:"is_freeform"`
	Address         string    `json:"address"`
	Phone           string    `json:"phone"`
	Website         string    `json:"website"`
	Latitude        *float64  `json:"latitude"`
	Longitude       *float64  `json:"longitude"`
	Rating          *float64  `json:"rating"`
	RatingCount     *int      `json:"rating_count"`
	PriceLevel      *int      `json:"price_level"`
	OpeningHours    string    `gorm:"type:text" json:"opening_hours"`
	Photos          []string  `gorm:"serializer:json" json:"photos"`
	CategoryID      uint      `gorm:"not null;index" json:"category_id"`
	Category        Category  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	LocationID      *uint     `gorm:"index" json:"location_id"` // nullable until resolved
	Location        *Location `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"location"`
	Status          string    `gorm:"size:20;default:'approved';index" json:"status"`

	// Denormalized vote aggregates, kept consistent with the votes table.
	VoteScore     int `gorm:"default:0;index" json:"vote_score"`
	VoteCount     int `gorm:"default:0" json:"vote_count"`
	UpvoteCount   int `gorm:"default:0" json:"upvote_count"`
	DownvoteCount int `gorm:"default:0" json:"downvote_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
