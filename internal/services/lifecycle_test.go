package services

import (
	"testing"

	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestReportLostItem_StartsPendingAndUnfound(t *testing.T) {
	SetupTestDB()

	id, err := ReportLostItem("Lost phone", "Library", "", "u1_lifecycle")
	assert.NoError(t, err)
	assert.NotEmpty(t, id)

	var item models.LostItem
	assert.NoError(t, database.DB.First(&item, "id = ?", id).Error)
	assert.False(t, item.IsApproved)
	assert.False(t, item.IsFound)
	assert.False(t, item.CreatedAt.IsZero())
}

func TestReportLostItem_Validation(t *testing.T) {
	SetupTestDB()

	_, err := ReportLostItem("", "Library", "", "u1_lifecycle")
	assert.Error(t, err)

	_, err = ReportLostItem("Lost phone", "  ", "", "u1_lifecycle")
	assert.Error(t, err)

	_, err = ReportLostItem("Lost phone", "Library", "", "")
	assert.Error(t, err)
}

func TestReportFoundItem(t *testing.T) {
	SetupTestDB()

	id, err := ReportFoundItem("Found keys", "Cafeteria", "")
	assert.NoError(t, err)

	var item models.FoundItem
	assert.NoError(t, database.DB.First(&item, "id = ?", id).Error)
	assert.Equal(t, "Found keys", item.Description)
	assert.False(t, item.FoundAt.IsZero())

	_, err = ReportFoundItem("", "Cafeteria", "")
	assert.Error(t, err)
}

func TestApproveItem(t *testing.T) {
	SetupTestDB()

	id, _ := ReportLostItem("Lost wallet approve", "Gate 2", "", "u2_lifecycle")

	assert.NoError(t, ApproveItem(id))

	var item models.LostItem
	database.DB.First(&item, "id = ?", id)
	assert.True(t, item.IsApproved)

	// Re-approving succeeds silently
	assert.NoError(t, ApproveItem(id))

	assert.ErrorIs(t, ApproveItem("missing-item-id"), ErrItemNotFound)
}

func TestMarkItemAsFound_ConvertsAndRemoves(t *testing.T) {
	SetupTestDB()

	id, _ := ReportLostItem("Lost calculator", "Lab 4", "img.png", "u3_lifecycle")

	confirmed, err := MarkItemAsFound(id)
	assert.NoError(t, err)
	assert.Equal(t, id, confirmed)

	// Source item is gone from the active set
	var count int64
	database.DB.Model(&models.LostItem{}).Where("id = ?", id).Count(&count)
	assert.Equal(t, int64(0), count)

	// Exactly one found record carries the copied fields
	var found []models.FoundItem
	database.DB.Where("reported_by = ?", "u3_lifecycle").Find(&found)
	assert.Len(t, found, 1)
	assert.Equal(t, "Lost calculator", found[0].Description)
	assert.Equal(t, "Lab 4", found[0].Location)
	assert.Equal(t, "img.png", found[0].ImageURL)
	assert.False(t, found[0].FoundAt.IsZero())
}

func TestMarkItemAsFound_MissingAndRepeat(t *testing.T) {
	SetupTestDB()

	_, err := MarkItemAsFound("missing-item-id")
	assert.ErrorIs(t, err, ErrItemNotFound)

	id, _ := ReportLostItem("Lost umbrella", "Bus stop", "", "u4_lifecycle")
	_, err = MarkItemAsFound(id)
	assert.NoError(t, err)

	// Second call must not produce another found record
	_, err = MarkItemAsFound(id)
	assert.Error(t, err)

	var found int64
	database.DB.Model(&models.FoundItem{}).Where("reported_by = ?", "u4_lifecycle").Count(&found)
	assert.Equal(t, int64(1), found)
}
