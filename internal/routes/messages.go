package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/Mostakim52/khuje-nao/internal/handlers"
	"github.com/Mostakim52/khuje-nao/internal/middleware"
)

func RegisterMessageRoutes(r gin.IRouter) {
	r.POST("/send_message", middleware.ChatRateLimit(), handlers.SendMessage)
	r.POST("/get_messages", handlers.GetMessages)
	r.POST("/get_chats", handlers.GetChats)

	r.PUT("/messages/:id", handlers.UpdateMessage)
	r.DELETE("/messages/:id", handlers.DeleteMessage)
}
