package handlers

import (
	"net/http"

	"mekanlist/internal/db"
	"mekanlist/internal/services"
	"mekanlist/internal/utils"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

// Vote handles upvote actions on places and collections.
func (h *VoteHandler) Vote(c *gin.Context) {
	h.cast(c, services.VoteUp)
}

// Downvote handles downvote actions.
func (h *VoteHandler) Downvote(c *gin.Context) {
	h.cast(c, services.VoteDown)
}

func (h *VoteHandler) cast(c *gin.Context, direction services.VoteState) {
	user := CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
		return
	}

	itemType := c.Param("type") // "place" or "collection"
	id := uint(utils.StringToInt(c.Param("id")))
	if id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "field": "id", "message": "bad id"})
		return
	}

	var result *services.VoteResult
	var err error

	switch itemType {
	case "place":
		result, err = services.CastPlaceVote(db.DB, user.ID, id, direction)
	case "collection":
		result, err = services.CastCollectionVote(db.DB, user.ID, id, direction)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "field": "type", "message": "bad vote target"})
		return
	}
	if err != nil {
		RenderError(c, err)
		return
	}

	if itemType == "place" {
		services.GetAggregateService().SchedulePlace(id)
	} else {
		services.GetAggregateService().ScheduleCollection(id)
	}
	invalidateLeaderboards()

	c.JSON(http.StatusOK, result)
}
