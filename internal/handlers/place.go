package handlers

import (
	"net/http"
	"strings"

	"mekanlist/internal/db"
	"mekanlist/internal/models"
	"mekanlist/internal/services"

	"github.com/gin-gonic/gin"
)

type PlaceHandler struct{}

func NewPlaceHandler() *PlaceHandler {
	return &PlaceHandler{}
}

// Search proxies the autocomplete call of the lookup collaborator so the
// provider key never reaches the client.
func (h *PlaceHandler) Search(c *gin.Context) {
	input := strings.TrimSpace(c.Query("q"))
	if len(input) < 2 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"field":   "q",
			"message": "query must be at least 2 characters",
		})
		return
	}

	suggestions, err := services.GetLookupService().Autocomplete(input)
	if err != nil {
		RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

// Details proxies the full-metadata call for one external place id. The
// editor calls this when a suggestion is picked, before the entry joins the
// curation list.
func (h *PlaceHandler) Details(c *gin.Context) {
	externalID := c.Query("external_id")
	if externalID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "validation",
			"field":   "external_id",
			"message": "external_id is required",
		})
		return
	}

	details, err := services.GetLookupService().Details(externalID)
	if err != nil {
		RenderError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}

// Detail renders one persisted place with its vote aggregates and the
// collections it appears in.
func (h *PlaceHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	var place models.Place
	err := db.DB.Preload("Category").Preload("Location").
		Where("slug = ?", slug).First(&place).Error
	if err != nil {
		RenderError(c, err)
		return
	}

	var memberships []models.CollectionPlace
	db.DB.Where("place_id = ?", place.ID).Find(&memberships)

	collectionIDs := make([]uint, 0, len(memberships))
	for _, m := range memberships {
		collectionIDs = append(collectionIDs, m.CollectionID)
	}

	var collections []models.Collection
	if len(collectionIDs) > 0 {
		db.DB.Where("id IN ? AND status = ?", collectionIDs, models.CollectionStatusActive).
			Order("vote_score DESC").
			Find(&collections)
	}

	c.JSON(http.StatusOK, gin.H{
		"place":       place,
		"collections": collections,
	})
}
