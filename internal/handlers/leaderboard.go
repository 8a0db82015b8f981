package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"mekanlist/internal/db"
	"mekanlist/internal/models"
	"mekanlist/internal/utils"

	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct{}

func NewLeaderboardHandler() *LeaderboardHandler {
	return &LeaderboardHandler{}
}

const perPage = 30

func pageParam(c *gin.Context) int {
	page := 1
	if p := c.Query("page"); p != "" {
		if pageNum, err := strconv.Atoi(p); err == nil && pageNum > 0 {
			page = pageNum
		}
	}
	return page
}

// Places is the city leaderboard: approved places ranked by community
// vote score, filterable by city and category slug. Pages are cached for a
// minute; fresh votes show up on the next refresh.
func (h *LeaderboardHandler) Places(c *gin.Context) {
	citySlug := c.Query("city")
	categorySlug := c.Query("category")
	page := pageParam(c)

	cacheKey := fmt.Sprintf("leaderboard:places:%s:%s:page:%d", citySlug, categorySlug, page)
	if cached := utils.GetCache().Get(cacheKey); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	query := db.DB.Model(&models.Place{}).Where("status = ?", models.PlaceStatusApproved)

	if citySlug != "" {
		var city models.Location
		if err := db.DB.Where("slug = ?", citySlug).First(&city).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "unknown city"})
			return
		}
		query = query.Where("location_id = ?", city.ID)
	}
	if categorySlug != "" {
		var category models.Category
		if err := db.DB.Where("slug = ?", categorySlug).First(&category).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "unknown category"})
			return
		}
		query = query.Where("category_id = ?", category.ID)
	}

	var total int64
	query.Count(&total)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var places []models.Place
	query.Preload("Category").Preload("Location").
		Order("vote_score DESC, vote_count DESC, created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&places)

	data := gin.H{
		"places":       places,
		"page":         page,
		"total_pages":  totalPages,
		"total_places": total,
	}

	utils.GetCache().Set(cacheKey, data, 1*time.Minute)
	c.JSON(http.StatusOK, data)
}

// Collections ranks active collections by their own vote score.
func (h *LeaderboardHandler) Collections(c *gin.Context) {
	citySlug := c.Query("city")
	categorySlug := c.Query("category")
	page := pageParam(c)

	query := db.DB.Model(&models.Collection{}).Where("status = ?", models.CollectionStatusActive)

	if citySlug != "" {
		var city models.Location
		if err := db.DB.Where("slug = ?", citySlug).First(&city).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "unknown city"})
			return
		}
		query = query.Where("location_id = ?", city.ID)
	}
	if categorySlug != "" {
		var category models.Category
		if err := db.DB.Where("slug = ?", categorySlug).First(&category).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found", "message": "unknown category"})
			return
		}
		query = query.Where("category_id = ?", category.ID)
	}

	var total int64
	query.Count(&total)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))
	if totalPages == 0 {
		totalPages = 1
	}

	var collections []models.Collection
	query.Preload("Creator").Preload("Category").Preload("Location").
		Order("vote_score DESC, vote_count DESC, created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&collections)

	c.JSON(http.StatusOK, gin.H{
		"collections": collections,
		"page":        page,
		"total_pages": totalPages,
	})
}

// invalidateLeaderboards drops the first cached page after writes; deeper
// pages age out on their own within the TTL.
func invalidateLeaderboards() {
	utils.GetCache().Delete("leaderboard:places:::page:1")
}
