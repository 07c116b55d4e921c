package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/Mostakim52/khuje-nao/internal/database"
	"github.com/Mostakim52/khuje-nao/internal/models"
	apperrors "github.com/Mostakim52/khuje-nao/pkg/errors"
	"github.com/Mostakim52/khuje-nao/pkg/utils"
	"gorm.io/gorm"
)

var ErrMessageNotFound = apperrors.NotFound("Message not found")

const defaultMessagePageSize = 50

// SendMessage persists a direct message and returns its id.
func SendMessage(text, authorID, receiverID string, createdAt time.Time) (string, error) {
	if strings.TrimSpace(text) == "" || strings.TrimSpace(authorID) == "" || createdAt.IsZero() {
		return "", apperrors.BadRequest("text, author_id and created_at are required")
	}

	msg := models.Message{
		ID:         utils.GenerateID(),
		AuthorID:   authorID,
		ReceiverID: receiverID,
		Text:       text,
		CreatedAt:  createdAt,
	}

	if err := database.DB.Create(&msg).Error; err != nil {
		return "", apperrors.Internal("Failed to save message")
	}
	return msg.ID, nil
}

// GetMessages returns the conversation between two users, newest first.
//
// The gateway cannot express the symmetric OR with a single sorted, paginated
// query on every backend, so both directions are fetched independently, merged
// and sorted in-process, and only then windowed. Paginating the branches
// before the merge would drop messages whenever traffic is skewed toward one
// direction.
func GetMessages(userA, userB string, limit, offset int) ([]models.Message, error) {
	if limit <= 0 {
		limit = defaultMessagePageSize
	}
	if offset < 0 {
		offset = 0
	}

	var sent, received []models.Message
	if err := database.DB.
		Where("author_id = ? AND receiver_id = ?", userA, userB).
		Find(&sent).Error; err != nil {
		return nil, apperrors.Internal("Failed to fetch messages")
	}
	if err := database.DB.
		Where("author_id = ? AND receiver_id = ?", userB, userA).
		Find(&received).Error; err != nil {
		return nil, apperrors.Internal("Failed to fetch messages")
	}

	merged := append(sent, received...)
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedAt.After(merged[j].CreatedAt)
	})

	if offset >= len(merged) {
		return []models.Message{}, nil
	}
	merged = merged[offset:]
	if len(merged) > limit {
		merged = merged[:limit]
	}
	return merged, nil
}

// GetChatsForUser folds every message touching the user into one summary per
// counterpart, keeping the latest message each. The comparison is a strict
// greater-than, so on equal timestamps the first-seen entry wins.
func GetChatsForUser(userID string) ([]models.ChatSummary, error) {
	var msgs []models.Message
	if err := database.DB.
		Where("author_id = ? OR receiver_id = ?", userID, userID).
		Find(&msgs).Error; err != nil {
		return nil, apperrors.Internal("Failed to fetch chats")
	}

	chats := make(map[string]models.ChatSummary)
	for _, m := range msgs {
		counterpart := m.ReceiverID
		if m.AuthorID != userID {
			counterpart = m.AuthorID
		}
		if counterpart == "" {
			continue
		}

		existing, ok := chats[counterpart]
		if !ok || m.CreatedAt.After(existing.LatestMessageTime) {
			chats[counterpart] = models.ChatSummary{
				ChatID:            counterpart,
				LatestMessage:     m.Text,
				LatestMessageTime: m.CreatedAt,
			}
		}
	}

	list := make([]models.ChatSummary, 0, len(chats))
	for _, c := range chats {
		list = append(list, c)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].LatestMessageTime.After(list[j].LatestMessageTime)
	})
	return list, nil
}

// GetMessageByID loads a single message.
func GetMessageByID(messageID string) (*models.Message, error) {
	var msg models.Message
	if err := database.DB.First(&msg, "id = ?", messageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, apperrors.Internal("Failed to load message")
	}
	return &msg, nil
}

// UpdateMessage replaces a message's text.
func UpdateMessage(messageID, text string) error {
	if strings.TrimSpace(text) == "" {
		return apperrors.BadRequest("text is required")
	}
	res := database.DB.Model(&models.Message{}).Where("id = ?", messageID).Update("text", text)
	if res.Error != nil {
		return apperrors.Internal("Failed to update message")
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// DeleteMessage removes a message.
func DeleteMessage(messageID string) error {
	res := database.DB.Delete(&models.Message{}, "id = ?", messageID)
	if res.Error != nil {
		return apperrors.Internal("Failed to delete message")
	}
	if res.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
