package handlers

import (
	"net/http"
	"time"

	"mekanlist/internal/curation"
	"mekanlist/internal/db"
	"mekanlist/internal/models"
	"mekanlist/internal/services"
	"mekanlist/internal/utils"

	"github.com/gin-gonic/gin"
)

type CollectionHandler struct{}

func NewCollectionHandler() *CollectionHandler {
	return &CollectionHandler{}
}

// collectionRequest is the submission contract for a collection save.
type collectionRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description"`
	CategoryID  uint                `json:"category_id" binding:"required"`
	LocationID  *uint               `json:"location_id"`
	Tags        []string            `json:"tags"`
	Places      []curation.PlaceRef `json:"places" binding:"required,dive"`
}

func (r *collectionRequest) toInput() services.CollectionInput {
	return services.CollectionInput{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		LocationID:  r.LocationID,
		Tags:        r.Tags,
	}
}

// buildList replays the submitted entries through the curation list so the
// editor rules (bounds, session dedup) hold even for hand-crafted payloads.
func buildList(refs []curation.PlaceRef) (*curation.List, error) {
	list, err := curation.NewListFrom(refs)
	if err != nil {
		return nil, &services.ValidationError{Field: "places", Message: err.Error()}
	}
	return list, nil
}

func (h *CollectionHandler) Create(c *gin.Context) {
	user := CurrentUser(c)

	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
		return
	}

	list, err := buildList(req.Places)
	if err != nil {
		RenderError(c, err)
		return
	}

	collection, err := services.SaveCollection(db.DB, user.ID, nil, req.toInput(), list)
	if err != nil {
		RenderError(c, err)
		return
	}

	invalidateLeaderboards()
	c.JSON(http.StatusCreated, gin.H{"collection_id": collection.ID, "slug": collection.Slug})
}

func (h *CollectionHandler) Update(c *gin.Context) {
	user := CurrentUser(c)
	slug := c.Param("slug")

	var existing models.Collection
	if err := db.DB.Where("slug = ?", slug).First(&existing).Error; err != nil {
		RenderError(c, err)
		return
	}

	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation", "message": err.Error()})
		return
	}

	list, err := buildList(req.Places)
	if err != nil {
		RenderError(c, err)
		return
	}

	collection, err := services.SaveCollection(db.DB, user.ID, &existing.ID, req.toInput(), list)
	if err != nil {
		RenderError(c, err)
		return
	}

	utils.GetCache().Delete("collection:detail:" + slug)
	invalidateLeaderboards()
	c.JSON(http.StatusOK, gin.H{"collection_id": collection.ID, "slug": collection.Slug})
}

func (h *CollectionHandler) Delete(c *gin.Context) {
	user := CurrentUser(c)
	slug := c.Param("slug")

	var existing models.Collection
	if err := db.DB.Where("slug = ?", slug).First(&existing).Error; err != nil {
		RenderError(c, err)
		return
	}

	if err := services.DeleteCollection(db.DB, user.ID, existing.ID); err != nil {
		RenderError(c, err)
		return
	}

	utils.GetCache().Delete("collection:detail:" + slug)
	invalidateLeaderboards()
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Detail renders one collection with its ordered places; the description and
// the curator notes come back as sanitized HTML. Cached for a minute and
// invalidated on edit/delete; fresh votes show up on the next refresh.
func (h *CollectionHandler) Detail(c *gin.Context) {
	slug := c.Param("slug")

	cacheKey := "collection:detail:" + slug
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	var collection models.Collection
	err := db.DB.Preload("Creator").Preload("Category").Preload("Location").
		Where("slug = ?", slug).First(&collection).Error
	if err != nil {
		RenderError(c, err)
		return
	}

	var rows []models.CollectionPlace
	db.DB.Preload("Place").Preload("Place.Category").Preload("Place.Location").
		Where("collection_id = ?", collection.ID).
		Order("display_order ASC").
		Find(&rows)
	for i := range rows {
		if rows[i].Note != "" {
			rows[i].NoteHTML = utils.RenderMarkdown(rows[i].Note)
		}
	}
	collection.Places = rows

	data := gin.H{
		"collection":       collection,
		"description_html": utils.RenderMarkdown(collection.Description),
	}
	utils.GetCache().Set(cacheKey, data, 1*time.Minute)
	c.JSON(http.StatusOK, data)
}

// Mine lists the session user's own collections, newest first.
func (h *CollectionHandler) Mine(c *gin.Context) {
	user := CurrentUser(c)

	var collections []models.Collection
	db.DB.Preload("Category").Preload("Location").
		Where("creator_id = ?", user.ID).
		Order("created_at DESC").
		Find(&collections)

	c.JSON(http.StatusOK, gin.H{"collections": collections})
}
