package handlers

import (
	"net/http"
	"time"

	"mekanlist/internal/db"
	"mekanlist/internal/models"
	"mekanlist/internal/utils"

	"github.com/gin-gonic/gin"
)

type TaxonomyHandler struct{}

func NewTaxonomyHandler() *TaxonomyHandler {
	return &TaxonomyHandler{}
}

func (h *TaxonomyHandler) Categories(c *gin.Context) {
	if cached := utils.GetCache().Get("taxonomy:categories"); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	var categories []models.Category
	db.DB.Order("display_order ASC, id ASC").Find(&categories)

	data := gin.H{"categories": categories}
	utils.GetCache().Set("taxonomy:categories", data, 10*time.Minute)
	c.JSON(http.StatusOK, data)
}

func (h *TaxonomyHandler) Locations(c *gin.Context) {
	if cached := utils.GetCache().Get("taxonomy:locations"); cached != nil {
		if data, ok := cached.(gin.H); ok {
			c.JSON(http.StatusOK, data)
			return
		}
	}

	var locations []models.Location
	db.DB.Order("id ASC").Find(&locations)

	data := gin.H{"locations": locations}
	utils.GetCache().Set("taxonomy:locations", data, 10*time.Minute)
	c.JSON(http.StatusOK, data)
}
