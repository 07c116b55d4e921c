package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/Mostakim52/khuje-nao/internal/handlers"
	"github.com/Mostakim52/khuje-nao/internal/middleware"
)

func RegisterItemRoutes(r gin.IRouter) {
	// Public feed and search
	r.GET("/lost-items", handlers.GetLostItems)
	r.GET("/search-lost-items", handlers.SearchLostItems)
	r.GET("/activity-feed", handlers.ActivityFeed)
	r.GET("/found-items", handlers.GetFoundItems)

	// Submissions
	report := r.Group("")
	report.Use(middleware.ReportRateLimit())
	{
		report.POST("/lost-items", handlers.ReportLostItem)
		report.POST("/found-items", handlers.ReportFoundItem)
	}

	// Resolution by the reporting community
	r.POST("/lost-items/:id/found", handlers.MarkItemFound)

	// Moderation
	admin := r.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	{
		admin.GET("/lost-items-admin", handlers.GetLostItemsAdmin)
		admin.POST("/lost-items/:id/approve", handlers.ApproveItem)
	}
}
