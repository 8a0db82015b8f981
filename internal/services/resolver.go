package services

import (
	"errors"
	"strings"

	"mekanlist/internal/curation"
	"mekanlist/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ResolvePlace maps one curation list entry to a persisted place id inside
// the caller's transaction.
//
// External entries are deduplicated process-wide on the external id: an
// existing row wins unchanged (curated data is never overwritten from the
// lookup side), otherwise a new approved place is created from the fetched
// metadata. A duplicate-key failure on that insert means another save won
// the race, so the row is re-fetched once instead of failing the save.
//
// Freeform entries are always created minimal; they are only deduplicated
// within a single curation session (the list model's job), never globally.
func ResolvePlace(tx *gorm.DB, ref curation.PlaceRef, categoryID uint) (uint, error) {
	if ref.Kind == curation.KindExternal {
		return resolveExternal(tx, ref, categoryID)
	}
	return createFreeform(tx, ref, categoryID)
}

func resolveExternal(tx *gorm.DB, ref curation.PlaceRef, categoryID uint) (uint, error) {
	if ref.ExternalID == "" {
		return 0, &ValidationError{Field: "places", Message: "external entry without external_id"}
	}

	var existing models.Place
	err := tx.Select("id").Where("external_place_id = ?", ref.ExternalID).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	return createExternal(tx, ref, categoryID)
}

// createExternal inserts a new place for an external id the initial read did
// not find. A plain insert hitting the external_place_id unique index would
// abort the surrounding transaction on Postgres, so the race with a
// concurrent save is absorbed with ON CONFLICT DO NOTHING and a single
// re-fetch of the winner.
func createExternal(tx *gorm.DB, ref curation.PlaceRef, categoryID uint) (uint, error) {
	externalID := ref.ExternalID
	place := models.Place{
		Slug:            NewSlug(ref.Name),
		NameTR:          ref.Name,
		NameEN:          ref.Name,
		ExternalPlaceID: &externalID,
		Address:         ref.Address,
		Phone:           ref.Phone,
		Website:         ref.Website,
		Latitude:        ref.Latitude,
		Longitude:       ref.Longitude,
		Rating:          ref.Rating,
		RatingCount:     ref.RatingCount,
		PriceLevel:      ref.PriceLevel,
		OpeningHours:    ref.OpeningHours,
		Photos:          firstN(ref.Photos, 5),
		CategoryID:      categoryID,
		LocationID:      MatchLocation(tx, ref.ExtractedLocation),
		Status:          models.PlaceStatusApproved,
	}

	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&place)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		// Concurrent save materialized the same external place first.
		var winner models.Place
		if err := tx.Select("id").Where("external_place_id = ?", ref.ExternalID).First(&winner).Error; err == nil {
			return winner.ID, nil
		}
		return 0, &ConflictError{Resource: "place", Err: gorm.ErrDuplicatedKey}
	}
	return place.ID, nil
}

func createFreeform(tx *gorm.DB, ref curation.PlaceRef, categoryID uint) (uint, error) {
	place := models.Place{
		Slug:       NewSlug(ref.Name),
		NameTR:     ref.Name,
		NameEN:     ref.Name,
		IsFreeform: true,
		CategoryID: categoryID,
		Status:     models.PlaceStatusApproved,
	}
	if err := tx.Create(&place).Error; err != nil {
		return 0, err
	}
	return place.ID, nil
}

// MatchLocation best-effort matches extracted location text against the city
// taxonomy: exact match on a localized name first, then substring. No match
// leaves the place's location null. The taxonomy is small and read-mostly,
// so matching happens in memory.
func MatchLocation(tx *gorm.DB, text string) *uint {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return nil
	}

	var locations []models.Location
	if err := tx.Find(&locations).Error; err != nil {
		return nil
	}

	for _, loc := range locations {
		if strings.ToLower(loc.NameTR) == text || strings.ToLower(loc.NameEN) == text {
			id := loc.ID
			return &id
		}
	}
	for _, loc := range locations {
		if strings.Contains(text, strings.ToLower(loc.NameTR)) ||
			strings.Contains(text, strings.ToLower(loc.NameEN)) {
			id := loc.ID
			return &id
		}
	}
	return nil
}

func firstN(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
