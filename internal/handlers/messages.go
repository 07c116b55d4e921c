package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/Mostakim52/khuje-nao/internal/services"
)

// SendMessage delivers a direct message. created_at comes from the client in
// RFC3339 so offline-composed messages keep their original timestamps.
func SendMessage(c *gin.Context) {
	var input struct {
		Text       string `json:"text"`
		AuthorID   string `json:"author_id"`
		ReceiverID string `json:"receiver_id"`
		CreatedAt  string `json:"created_at"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if input.CreatedAt == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text, author_id and created_at are required"})
		return
	}
	createdAt, err := time.Parse(time.RFC3339, input.CreatedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "created_at must be RFC3339"})
		return
	}

	id, err := services.SendMessage(input.Text, input.AuthorID, input.ReceiverID, createdAt)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Message sent", "id": id})
}

// GetMessages returns the conversation between two users.
func GetMessages(c *gin.Context) {
	var input struct {
		AuthorID   string `json:"author_id"`
		ReceiverID string `json:"receiver_id"`
		Limit      int    `json:"limit"`
		Skip       int    `json:"skip"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if input.AuthorID == "" || input.ReceiverID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "author_id and receiver_id are required"})
		return
	}

	msgs, err := services.GetMessages(input.AuthorID, input.ReceiverID, input.Limit, input.Skip)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// GetChats returns the chat directory for a user.
func GetChats(c *gin.Context) {
	var input struct {
		UserID string `json:"user_id"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.UserID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	chats, err := services.GetChatsForUser(input.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, chats)
}

// UpdateMessage edits a delivered message's text.
func UpdateMessage(c *gin.Context) {
	var input struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if err := services.UpdateMessage(c.Param("id"), input.Text); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message updated"})
}

// DeleteMessage removes a delivered message.
func DeleteMessage(c *gin.Context) {
	if err := services.DeleteMessage(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message deleted"})
}
