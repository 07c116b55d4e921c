package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	apperrors "github.com/Mostakim52/khuje-nao/pkg/errors"
	"github.com/Mostakim52/khuje-nao/pkg/logger"
	"github.com/Mostakim52/khuje-nao/pkg/utils"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound = apperrors.NotFound("Item not found")
	// An already-resolved item is served as 404 on purpose: from the caller's
	// point of view it no longer exists in the active set.
	ErrAlreadyFound = apperrors.NotFound("Item already marked as found")
)

// ReportLostItem persists a new lost-item report. The item starts unapproved
// and unfound, so it is visible to moderators but not in the public feed.
func ReportLostItem(description, location, imageURL, reportedBy string) (string, error) {
	if strings.TrimSpace(description) == "" || strings.TrimSpace(location) == "" || strings.TrimSpace(reportedBy) == "" {
		return "", apperrors.BadRequest("description, location and reported_by are required")
	}

	item := models.LostItem{
		ID:          utils.GenerateID(),
		Description: description,
		Location:    location,
		ImageURL:    imageURL,
		ReportedBy:  reportedBy,
		IsFound:     false,
		IsApproved:  false,
		CreatedAt:   time.Now(),
	}

	if err := database.DB.Create(&item).Error; err != nil {
		return "", apperrors.Internal("Failed to save lost item")
	}
	return item.ID, nil
}

// ReportFoundItem writes directly into the found set, for items found without
// a matching lost report.
func ReportFoundItem(description, location, imageURL string) (string, error) {
	if strings.TrimSpace(description) == "" || strings.TrimSpace(location) == "" {
		return "", apperrors.BadRequest("description and location are required")
	}

	item := models.FoundItem{
		ID:          utils.GenerateID(),
		Description: description,
		Location:    location,
		ImageURL:    imageURL,
		FoundAt:     time.Now(),
	}

	if err := database.DB.Create(&item).Error; err != nil {
		return "", apperrors.Internal("Failed to save found item")
	}
	return item.ID, nil
}

// ApproveItem flips is_approved. Re-approving an approved item is a silent
// success; approval never transitions back.
func ApproveItem(itemID string) error {
	var item models.LostItem
	if err := database.DB.Select("id").First(&item, "id = ?", itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItemNotFound
		}
		return apperrors.Internal("Failed to load item")
	}

	if err := database.DB.Model(&models.LostItem{}).Where("id = ?", itemID).Update("is_approved", true).Error; err != nil {
		return apperrors.Internal("Failed to approve item")
	}
	return nil
}

// MarkItemAsFound resolves a lost item: a conditional update on is_found is
// the guard (only one caller can win it), then the row is copied into the
// found set and removed from lost_items. The copy and the delete span two
// tables without a shared transaction boundary in all backends, so a failed
// delete after a successful copy can leave a duplicate found row; callers get
// at-least-once semantics there. Returns the original item id.
func MarkItemAsFound(itemID string) (string, error) {
	res := database.DB.Model(&models.LostItem{}).
		Where("id = ? AND is_found = ?", itemID, false).
		Update("is_found", true)
	if res.Error != nil {
		return "", apperrors.Internal("Failed to update item")
	}
	if res.RowsAffected == 0 {
		var count int64
		if err := database.DB.Model(&models.LostItem{}).Where("id = ?", itemID).Count(&count).Error; err != nil {
			return "", apperrors.Internal("Failed to load item")
		}
		if count == 0 {
			return "", ErrItemNotFound
		}
		return "", ErrAlreadyFound
	}

	var item models.LostItem
	if err := database.DB.First(&item, "id = ?", itemID).Error; err != nil {
		return "", apperrors.Internal("Failed to load item")
	}

	found := models.FoundItem{
		ID:          utils.GenerateID(),
		Description: item.Description,
		Location:    item.Location,
		ImageURL:    item.ImageURL,
		ReportedBy:  item.ReportedBy,
		FoundAt:     time.Now(),
	}
	if err := database.DB.Create(&found).Error; err != nil {
		return "", apperrors.Internal("Failed to record found item")
	}

	if err := database.DB.Delete(&models.LostItem{}, "id = ?", itemID).Error; err != nil {
		// The found row already exists and the CAS keeps the item out of the
		// feed, so we log and report success rather than failing the caller.
		logger.Error().Err(err).Str("item_id", itemID).Msg("Failed to delete lost item after conversion")
	}

	return itemID, nil
}
