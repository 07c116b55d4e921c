package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/Mostakim52/khuje-nao/internal/services"
)

// ReportFoundItem records an item found without a matching lost report.
func ReportFoundItem(c *gin.Context) {
	var input struct {
		Description string `json:"description"`
		Location    string `json:"location"`
		ImagePath   string `json:"image_path"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	id, err := services.ReportFoundItem(input.Description, input.Location, input.ImagePath)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Found item reported successfully", "id": id})
}

// GetFoundItems lists resolved items, newest first.
func GetFoundItems(c *gin.Context) {
	limit, skip := pagination(c, 10)

	items, err := services.FoundItems(limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
