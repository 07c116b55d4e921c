package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/Mostakim52/khuje-nao/internal/handlers"
	"github.com/Mostakim52/khuje-nao/internal/middleware"
)

func RegisterAuthRoutes(r gin.IRouter) {
	r.POST("/register", handlers.Register)
	r.POST("/login", handlers.Login)
	r.POST("/token-login", handlers.TokenLogin)

	r.POST("/request-otp", handlers.RequestOTP)
	r.POST("/verify-otp", handlers.VerifyOTP)

	profile := r.Group("/profile")
	profile.Use(middleware.AuthMiddleware())
	{
		profile.GET("", handlers.GetProfile)
		profile.POST("", handlers.SaveProfile)
	}
}
