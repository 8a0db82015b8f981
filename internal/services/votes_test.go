package services

import (
	"errors"
	"testing"

	"mekanlist/internal/models"

	"gorm.io/gorm"
)

func TestPlaceVoteLifecycle(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn, "ayse@example.com")
	category := seedCategory(t, conn, "kebap")
	place := seedPlace(t, conn, "Şükrü'nün Yeri", category.ID)

	// none -> up
	result, err := CastPlaceVote(conn, user.ID, place.ID, VoteUp)
	if err != nil {
		t.Fatalf("upvote failed: %v", err)
	}
	if result.State != VoteUp || result.Score != 1 || result.Count != 1 || result.Upvotes != 1 {
		t.Fatalf("after upvote: %+v", result)
	}
	assertPlaceAggregates(t, conn, place.ID, 1, 1, 1, 0)

	// up -> up toggles off and restores the aggregates exactly
	result, err = CastPlaceVote(conn, user.ID, place.ID, VoteUp)
	if err != nil {
		t.Fatalf("toggle off failed: %v", err)
	}
	if result.State != VoteNone || result.Score != 0 || result.Count != 0 {
		t.Fatalf("after toggle off: %+v", result)
	}
	assertPlaceAggregates(t, conn, place.ID, 0, 0, 0, 0)
	if got := countRows(t, conn, &models.Vote{}); got != 0 {
		t.Fatalf("vote rows after toggle off = %d", got)
	}

	// none -> down
	result, err = CastPlaceVote(conn, user.ID, place.ID, VoteDown)
	if err != nil {
		t.Fatalf("downvote failed: %v", err)
	}
	if result.State != VoteDown || result.Score != -1 || result.Downvotes != 1 {
		t.Fatalf("after downvote: %+v", result)
	}

	// down -> up flips the stored row, never adds a second one
	result, err = CastPlaceVote(conn, user.ID, place.ID, VoteUp)
	if err != nil {
		t.Fatalf("flip failed: %v", err)
	}
	if result.State != VoteUp || result.Score != 1 || result.Count != 1 {
		t.Fatalf("after flip: %+v", result)
	}
	if got := countRows(t, conn, &models.Vote{}); got != 1 {
		t.Fatalf("vote rows after flip = %d, want 1", got)
	}
	assertPlaceAggregates(t, conn, place.ID, 1, 1, 1, 0)
}

func TestVotesFromSeveralUsersAggregate(t *testing.T) {
	conn := newTestDB(t)
	ayse := seedUser(t, conn, "ayse@example.com")
	mehmet := seedUser(t, conn, "mehmet@example.com")
	zeynep := seedUser(t, conn, "zeynep@example.com")
	category := seedCategory(t, conn, "kafe")
	place := seedPlace(t, conn, "Kronotrop", category.ID)

	if _, err := CastPlaceVote(conn, ayse.ID, place.ID, VoteUp); err != nil {
		t.Fatal(err)
	}
	if _, err := CastPlaceVote(conn, mehmet.ID, place.ID, VoteUp); err != nil {
		t.Fatal(err)
	}
	result, err := CastPlaceVote(conn, zeynep.ID, place.ID, VoteDown)
	if err != nil {
		t.Fatal(err)
	}

	if result.Score != 1 || result.Count != 3 || result.Upvotes != 2 || result.Downvotes != 1 {
		t.Fatalf("aggregates: %+v", result)
	}
	assertPlaceAggregates(t, conn, place.ID, 1, 3, 2, 1)
}

func TestCollectionVoteUpdatesCollectionAggregates(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn, "ayse@example.com")
	category := seedCategory(t, conn, "kafe")

	in := CollectionInput{Name: "Oylanan Liste", CategoryID: category.ID}
	created, err := SaveCollection(conn, user.ID, nil, in,
		mustList(t, freeformEntry("Bir"), freeformEntry("İki")))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	result, err := CastCollectionVote(conn, user.ID, created.ID, VoteUp)
	if err != nil {
		t.Fatalf("vote failed: %v", err)
	}
	if result.State != VoteUp || result.Score != 1 {
		t.Fatalf("after vote: %+v", result)
	}

	var collection models.Collection
	conn.First(&collection, created.ID)
	if collection.VoteScore != 1 || collection.VoteCount != 1 {
		t.Errorf("collection aggregates score=%d count=%d, want 1/1", collection.VoteScore, collection.VoteCount)
	}
}

func TestVoteRequiresAuth(t *testing.T) {
	conn := newTestDB(t)
	category := seedCategory(t, conn, "kafe")
	place := seedPlace(t, conn, "Kronotrop", category.ID)

	if _, err := CastPlaceVote(conn, 0, place.ID, VoteUp); !errors.Is(err, ErrAuthRequired) {
		t.Fatalf("expected ErrAuthRequired, got %v", err)
	}
}

func TestVoteOnMissingTarget(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn, "ayse@example.com")

	if _, err := CastPlaceVote(conn, user.ID, 9999, VoteUp); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestVoteRejectsBadDirection(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn, "ayse@example.com")
	category := seedCategory(t, conn, "kafe")
	place := seedPlace(t, conn, "Kronotrop", category.ID)

	_, err := CastPlaceVote(conn, user.ID, place.ID, VoteNone)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestInsertVoteAbsorbsRacingDuplicate(t *testing.T) {
	conn := newTestDB(t)
	user := seedUser(t, conn, "ayse@example.com")
	category := seedCategory(t, conn, "kafe")
	place := seedPlace(t, conn, "Kronotrop", category.ID)

	// The row a racing click landed between this click's read and its write.
	landed := models.Vote{UserID: user.ID, PlaceID: &place.ID, Value: 1}
	if err := conn.Create(&landed).Error; err != nil {
		t.Fatalf("seed landed vote: %v", err)
	}

	// The losing insert resolves to the vote that landed, never a toggle-off.
	state, err := insertVote(conn, user.ID, voteTarget{placeID: &place.ID}, 1)
	if err != nil {
		t.Fatalf("losing insert failed: %v", err)
	}
	if state != VoteUp {
		t.Errorf("state after losing insert = %q, want up", state)
	}
	if got := countRows(t, conn, &models.Vote{}); got != 1 {
		t.Errorf("two clicks netted %d vote rows, want 1", got)
	}

	// Even an opposite-direction loser reports the landed vote unchanged.
	state, err = insertVote(conn, user.ID, voteTarget{placeID: &place.ID}, -1)
	if err != nil {
		t.Fatalf("opposite losing insert failed: %v", err)
	}
	if state != VoteUp {
		t.Errorf("state after opposite losing insert = %q, want up", state)
	}
	var stored models.Vote
	if err := conn.Where("user_id = ? AND place_id = ?", user.ID, place.ID).First(&stored).Error; err != nil {
		t.Fatalf("load stored vote: %v", err)
	}
	if stored.Value != 1 {
		t.Errorf("stored vote value = %d, want the landed 1", stored.Value)
	}
}

func TestRecountRepairsDriftedAggregates(t *testing.T) {
	conn := newTestDB(t)
	ayse := seedUser(t, conn, "ayse@example.com")
	mehmet := seedUser(t, conn, "mehmet@example.com")
	category := seedCategory(t, conn, "kafe")
	place := seedPlace(t, conn, "Kronotrop", category.ID)

	if _, err := CastPlaceVote(conn, ayse.ID, place.ID, VoteUp); err != nil {
		t.Fatal(err)
	}
	if _, err := CastPlaceVote(conn, mehmet.ID, place.ID, VoteDown); err != nil {
		t.Fatal(err)
	}

	// Corrupt the denormalized columns, then recount from the vote rows.
	conn.Model(&models.Place{}).Where("id = ?", place.ID).Updates(map[string]interface{}{
		"vote_score": 99, "vote_count": 99, "upvote_count": 99, "downvote_count": 99,
	})

	up, down, err := recountTarget(conn, voteTarget{placeID: &place.ID})
	if err != nil {
		t.Fatalf("recount failed: %v", err)
	}
	if up != 1 || down != 1 {
		t.Fatalf("recount returned up=%d down=%d, want 1/1", up, down)
	}
	assertPlaceAggregates(t, conn, place.ID, 0, 2, 1, 1)
}

func assertPlaceAggregates(t *testing.T, conn *gorm.DB, placeID uint, score, count, up, down int) {
	t.Helper()
	var place models.Place
	if err := conn.First(&place, placeID).Error; err != nil {
		t.Fatalf("load place: %v", err)
	}
	if place.VoteScore != score || place.VoteCount != count ||
		place.UpvoteCount != up || place.DownvoteCount != down {
		t.Errorf("place aggregates score=%d count=%d up=%d down=%d, want %d/%d/%d/%d",
			place.VoteScore, place.VoteCount, place.UpvoteCount, place.DownvoteCount,
			score, count, up, down)
	}
}
