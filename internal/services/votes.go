package services

import (
	"errors"

	"mekanlist/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoteState is the per-(user, target) vote state machine position.
type VoteState string

const (
	VoteNone VoteState = "none"
	VoteUp   VoteState = "up"
	VoteDown VoteState = "down"
)

// VoteResult reports the state after a transition together with the
// recomputed aggregates of the target.
type VoteResult struct {
	State     VoteState `json:"new_state"`
	Score     int       `json:"score"`
	Count     int       `json:"vote_count"`
	Upvotes   int       `json:"upvote_count"`
	Downvotes int       `json:"downvote_count"`
}

func stateFor(value int) VoteState {
	if value > 0 {
		return VoteUp
	}
	return VoteDown
}

func valueFor(direction VoteState) (int, error) {
	switch direction {
	case VoteUp:
		return 1, nil
	case VoteDown:
		return -1, nil
	default:
		return 0, &ValidationError{Field: "direction", Message: "direction must be up or down"}
	}
}

// CastPlaceVote applies one vote action on a place:
// none→up/down inserts, repeat of the same direction toggles the vote off,
// opposite direction flips the stored row. The whole check/decide/write
// sequence plus the aggregate recount runs in one transaction so two rapid
// clicks cannot duplicate or lose votes.
func CastPlaceVote(conn *gorm.DB, userID, placeID uint, direction VoteState) (*VoteResult, error) {
	return castVote(conn, userID, voteTarget{placeID: &placeID}, direction)
}

// CastCollectionVote is CastPlaceVote for collection targets.
func CastCollectionVote(conn *gorm.DB, userID, collectionID uint, direction VoteState) (*VoteResult, error) {
	return castVote(conn, userID, voteTarget{collectionID: &collectionID}, direction)
}

type voteTarget struct {
	placeID      *uint
	collectionID *uint
}

func (t voteTarget) where(tx *gorm.DB) *gorm.DB {
	if t.placeID != nil {
		return tx.Where("place_id = ?", *t.placeID)
	}
	return tx.Where("collection_id = ?", *t.collectionID)
}

func castVote(conn *gorm.DB, userID uint, target voteTarget, direction VoteState) (*VoteResult, error) {
	if userID == 0 {
		return nil, ErrAuthRequired
	}
	value, err := valueFor(direction)
	if err != nil {
		return nil, err
	}

	// Target must exist before any vote state is touched.
	if target.placeID != nil {
		var place models.Place
		if err := conn.Select("id").First(&place, *target.placeID).Error; err != nil {
			return nil, err
		}
	} else {
		var collection models.Collection
		if err := conn.Select("id").First(&collection, *target.collectionID).Error; err != nil {
			return nil, err
		}
	}

	var result VoteResult
	err = conn.Transaction(func(tx *gorm.DB) error {
		var existing models.Vote
		findErr := target.where(tx.Where("user_id = ?", userID)).First(&existing).Error

		switch {
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			state, err := insertVote(tx, userID, target, value)
			if err != nil {
				return err
			}
			result.State = state

		case findErr != nil:
			return findErr

		case existing.Value == value:
			// Same direction again: toggle off.
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			result.State = VoteNone

		default:
			// Opposite direction: flip in place, never two rows.
			if err := tx.Model(&existing).Update("value", value).Error; err != nil {
				return err
			}
			result.State = stateFor(value)
		}

		// Re-derive the denormalized aggregates from the authoritative vote
		// rows inside the same transaction, so readers never see drift.
		up, down, err := recountTarget(tx, target)
		if err != nil {
			return err
		}
		result.Upvotes = up
		result.Downvotes = down
		result.Count = up + down
		result.Score = up - down
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

// insertVote writes a fresh vote row for a user who currently has none on the
// target. A double-click races two inserts into the (user, target) unique
// index; DO NOTHING + re-read treats the loser as "the vote already landed"
// instead of toggling it straight back off.
func insertVote(tx *gorm.DB, userID uint, target voteTarget, value int) (VoteState, error) {
	vote := models.Vote{
		UserID:       userID,
		PlaceID:      target.placeID,
		CollectionID: target.collectionID,
		Value:        value,
	}
	res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote)
	if res.Error != nil {
		return VoteNone, res.Error
	}
	if res.RowsAffected == 0 {
		var landed models.Vote
		if err := target.where(tx.Where("user_id = ?", userID)).First(&landed).Error; err != nil {
			return VoteNone, &ConflictError{Resource: "vote", Err: gorm.ErrDuplicatedKey}
		}
		return stateFor(landed.Value), nil
	}
	return stateFor(value), nil
}

// recountTarget counts the vote rows for a target and writes the aggregate
// columns back onto the place or collection row.
func recountTarget(tx *gorm.DB, target voteTarget) (up, down int, err error) {
	var upvotes, downvotes int64
	if err = target.where(tx.Model(&models.Vote{}).Where("value = 1")).Count(&upvotes).Error; err != nil {
		return 0, 0, err
	}
	if err = target.where(tx.Model(&models.Vote{}).Where("value = -1")).Count(&downvotes).Error; err != nil {
		return 0, 0, err
	}
	up, down = int(upvotes), int(downvotes)

	if target.placeID != nil {
		err = tx.Model(&models.Place{}).Where("id = ?", *target.placeID).Updates(map[string]interface{}{
			"vote_score":     up - down,
			"vote_count":     up + down,
			"upvote_count":   up,
			"downvote_count": down,
		}).Error
	} else {
		err = tx.Model(&models.Collection{}).Where("id = ?", *target.collectionID).Updates(map[string]interface{}{
			"vote_score": up - down,
			"vote_count": up + down,
		}).Error
	}
	return up, down, err
}
