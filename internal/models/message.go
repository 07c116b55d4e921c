package models

import "time"

// Message is a directed message between two users. Immutable after delivery
// except through the explicit edit/delete endpoints.
type Message struct {
	ID         string    `gorm:"primaryKey;type:text" json:"id"`
	AuthorID   string    `gorm:"column:author_id;index" json:"author_id"`
	ReceiverID string    `gorm:"column:receiver_id;index" json:"receiver_id"`
	Text       string    `gorm:"type:text" json:"text"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

// ChatSummary is the derived "one row per counterpart" view returned by the
// chat directory. Never persisted; recomputed on every query.
type ChatSummary struct {
	ChatID            string    `json:"chat_id"`
	LatestMessage     string    `json:"latest_message"`
	LatestMessageTime time.Time `json:"latest_message_time"`
}
