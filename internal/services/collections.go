package services

import (
	"errors"
	"strings"

	"mekanlist/internal/curation"
	"mekanlist/internal/models"

	"gorm.io/gorm"
)

const (
	collectionNameMin = 3
	collectionNameMax = 100
	descriptionMax    = 500
)

// CollectionInput is the metadata half of a collection submission; the
// ordered places come in as a curation.List.
type CollectionInput struct {
	Name        string
	Description string
	CategoryID  uint
	LocationID  *uint
	Tags        []string
}

// SaveCollection runs the whole persistence workflow in one transaction:
// validate, slug, upsert the collection row, wipe the junction rows (on
// edit), then resolve every list entry in order and write its junction row.
// Any failure rolls the transaction back, so a half-written membership set
// never survives; the caller just retries the save.
//
// Concurrent saves of the same collection are last-writer-wins, both for the
// row and for the membership set (full replace, no version check).
func SaveCollection(conn *gorm.DB, userID uint, existingID *uint, in CollectionInput, list *curation.List) (*models.Collection, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	if err := list.Validate(); err != nil {
		return nil, &ValidationError{Field: "places", Message: err.Error()}
	}

	var saved models.Collection
	err := conn.Transaction(func(tx *gorm.DB) error {
		var collection models.Collection

		if existingID != nil {
			if err := tx.First(&collection, *existingID).Error; err != nil {
				return err
			}
			if collection.CreatorID != userID {
				return ErrForbidden
			}
			// Slug and creator are immutable after creation.
			collection.NameTR = in.Name
			collection.NameEN = in.Name
			collection.Description = in.Description
			collection.Tags = in.Tags
			collection.CategoryID = in.CategoryID
			collection.LocationID = in.LocationID
			collection.Status = models.CollectionStatusActive
			if err := tx.Save(&collection).Error; err != nil {
				return err
			}

			// Full replace: diffing the previous ordered list buys nothing,
			// the junction rows have no identity worth preserving.
			if err := tx.Where("collection_id = ?", collection.ID).
				Delete(&models.CollectionPlace{}).Error; err != nil {
				return err
			}
		} else {
			collection = models.Collection{
				Slug:        NewSlug(in.Name),
				NameTR:      in.Name,
				NameEN:      in.Name,
				Description: in.Description,
				Tags:        in.Tags,
				CreatorID:   userID,
				CategoryID:  in.CategoryID,
				LocationID:  in.LocationID,
				Status:      models.CollectionStatusActive,
			}
			if err := tx.Create(&collection).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return &ConflictError{Resource: "collection slug", Err: err}
				}
				return err
			}
		}

		for index, ref := range list.Items() {
			placeID, err := ResolvePlace(tx, ref, in.CategoryID)
			if err != nil {
				// Abort-and-report: a silently partial collection is worse
				// than a failed save.
				return &ResolutionError{Index: index, Name: ref.Name, Err: err}
			}

			row := models.CollectionPlace{
				CollectionID:     collection.ID,
				PlaceID:          placeID,
				DisplayOrder:     index,
				Note:             ref.Note,
				RecommendedItems: ref.RecommendedItems,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		saved = collection
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &saved, nil
}

// DeleteCollection removes a collection and its junction rows. Places are
// never deleted here; only explicit admin deletion touches them.
func DeleteCollection(conn *gorm.DB, userID uint, collectionID uint) error {
	if userID == 0 {
		return ErrAuthRequired
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		var collection models.Collection
		if err := tx.First(&collection, collectionID).Error; err != nil {
			return err
		}
		if collection.CreatorID != userID {
			return ErrForbidden
		}

		if err := tx.Where("collection_id = ?", collection.ID).
			Delete(&models.CollectionPlace{}).Error; err != nil {
			return err
		}
		if err := tx.Where("collection_id = ?", collection.ID).
			Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&collection).Error
	})
}

func validateInput(in *CollectionInput) error {
	in.Name = strings.TrimSpace(in.Name)
	nameLen := len([]rune(in.Name))
	if nameLen < collectionNameMin {
		return &ValidationError{Field: "name", Message: "name must be at least 3 characters"}
	}
	if nameLen > collectionNameMax {
		return &ValidationError{Field: "name", Message: "name must be at most 100 characters"}
	}
	if in.CategoryID == 0 {
		return &ValidationError{Field: "category_id", Message: "category is required"}
	}
	if len([]rune(in.Description)) > descriptionMax {
		return &ValidationError{Field: "description", Message: "description must be at most 500 characters"}
	}
	return nil
}
