package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	"github.com/Mostakim52/khuje-nao/internal/services"
	"github.com/Mostakim52/khuje-nao/internal/storage"
	apperrors "github.com/Mostakim52/khuje-nao/pkg/errors"
)

// Media is the blob-storage collaborator for item images. Wired in main;
// tests swap in a fake.
var Media storage.MediaStore

const feedCacheTTL = 30 * time.Second

// ReportLostItem handles the multipart lost-item submission. The image is
// optional; when present it goes to the media store and only the returned URL
// is persisted.
func ReportLostItem(c *gin.Context) {
	description := c.PostForm("description")
	location := c.PostForm("location")
	reportedBy := c.PostForm("reported_by")

	imageURL := ""
	file, header, err := c.Request.FormFile("image")
	if err == nil {
		defer file.Close()

		contentType, ok := storage.AllowedImage(header.Filename)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be png, jpg or jpeg"})
			return
		}

		if Media == nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Media store not configured"})
			return
		}

		imageURL, err = Media.Upload(c.Request.Context(), file, header.Filename, contentType)
		if err != nil {
			respondError(c, apperrors.Upstream("Image upload failed: "+err.Error()))
			return
		}
	}

	id, err := services.ReportLostItem(description, location, imageURL, reportedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Lost item reported successfully", "id": id})
}

// GetLostItems serves the public feed. First page comes out of the Redis
// cache when available.
func GetLostItems(c *gin.Context) {
	limit, skip := pagination(c, 10)

	// Keyed per limit: a cached small page must never be replayed to a
	// caller asking for a larger one.
	cacheKey := fmt.Sprintf("feed:lost:0:%d", limit)
	if skip == 0 && database.Redis != nil {
		var cached []models.LostItem
		if err := database.CacheGet(cacheKey, &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	items, err := services.PublicFeed(limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}

	if skip == 0 && database.Redis != nil {
		go database.CacheSet(cacheKey, items, feedCacheTTL)
	}

	c.JSON(http.StatusOK, items)
}

// GetLostItemsAdmin serves the moderation queue.
func GetLostItemsAdmin(c *gin.Context) {
	limit, skip := pagination(c, 10)

	items, err := services.AdminQueue(limit, skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ApproveItem publishes a pending item into the feed.
func ApproveItem(c *gin.Context) {
	itemID := c.Param("id")

	if err := services.ApproveItem(itemID); err != nil {
		respondError(c, err)
		return
	}

	if database.Redis != nil {
		go database.CacheInvalidate("feed:lost:*")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item approved successfully"})
}

// MarkItemFound resolves a lost item into the found set.
func MarkItemFound(c *gin.Context) {
	itemID := c.Param("id")

	id, err := services.MarkItemAsFound(itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	if database.Redis != nil {
		go database.CacheInvalidate("feed:lost:*")
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item marked as found", "id": id})
}

// SearchLostItems is the free-text description search.
func SearchLostItems(c *gin.Context) {
	items, err := services.SearchLostItems(c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// ActivityFeed is an alias of the public feed with a limit-only contract.
func ActivityFeed(c *gin.Context) {
	limit, _ := pagination(c, 10)

	items, err := services.PublicFeed(limit, 0)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
