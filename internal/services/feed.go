package services

import (
	"strings"

	"github.com/Mostakim52/khuje-nao/internal/config"
	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	apperrors "github.com/Mostakim52/khuje-nao/pkg/errors"
)

// SearchResultCap bounds free-text search responses. The search is a linear
// LIKE scan, not an index, so the cap keeps worst-case responses small.
const SearchResultCap = 20

const defaultPageSize = 10

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// PublicFeed returns approved, still-lost items, newest first. Only rows with
// is_approved AND NOT is_found ever reach the public view.
func PublicFeed(limit, offset int) ([]models.LostItem, error) {
	limit, offset = normalizePage(limit, offset)

	var items []models.LostItem
	err := database.DB.
		Where("is_approved = ? AND is_found = ?", true, false).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch feed")
	}

	for i := range items {
		items[i].ImageURL = ResolveImageURL(items[i].ImageURL)
	}
	return items, nil
}

// AdminQueue returns items awaiting moderation, newest first.
func AdminQueue(limit, offset int) ([]models.LostItem, error) {
	limit, offset = normalizePage(limit, offset)

	var items []models.LostItem
	err := database.DB.
		Where("is_approved = ?", false).
		Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch moderation queue")
	}

	for i := range items {
		items[i].ImageURL = ResolveImageURL(items[i].ImageURL)
	}
	return items, nil
}

// FoundItems returns the found set, most recently resolved first.
func FoundItems(limit, offset int) ([]models.FoundItem, error) {
	limit, offset = normalizePage(limit, offset)

	var items []models.FoundItem
	err := database.DB.
		Order("found_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Internal("Failed to fetch found items")
	}

	for i := range items {
		items[i].ImageURL = ResolveImageURL(items[i].ImageURL)
	}
	return items, nil
}

// likeEscaper neutralizes LIKE metacharacters so user input matches
// literally. The queries below declare backslash as the escape character.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchLostItems is a case-insensitive substring match on description,
// restricted to publicly visible items.
func SearchLostItems(query string) ([]models.LostItem, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.BadRequest("query is required")
	}

	pattern := "%" + likeEscaper.Replace(strings.ToLower(query)) + "%"

	var items []models.LostItem
	err := database.DB.
		Where("is_approved = ? AND is_found = ?", true, false).
		Where(`LOWER(description) LIKE ? ESCAPE '\'`, pattern).
		Order("created_at DESC, id DESC").
		Limit(SearchResultCap).
		Find(&items).Error
	if err != nil {
		return nil, apperrors.Internal("Search failed")
	}

	for i := range items {
		items[i].ImageURL = ResolveImageURL(items[i].ImageURL)
	}
	return items, nil
}

// ResolveImageURL turns a stored image reference into a fully-qualified URL.
// Media-store uploads are stored as full URLs already; bare paths from older
// rows get prefixed with the public media domain.
func ResolveImageURL(ref string) string {
	if ref == "" || strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if config.AppConfig == nil || config.AppConfig.R2PublicURL == "" {
		return ref
	}
	return strings.TrimRight(config.AppConfig.R2PublicURL, "/") + "/" + strings.TrimLeft(ref, "/")
}
