package main

import (
	"context"
	"log"

	"github.com/btbrandon/Orbital-2024/config"
	"github.com/btbrandon/Orbital-2024/database"
	"github.com/btbrandon/Orbital-2024/handlers"
	"github.com/btbrandon/Orbital-2024/middleware"
	"github.com/btbrandon/Orbital-2024/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	config.Load()

	// Connect to database
	database.Connect()

	// Connect to Redis (optional, won't crash if unavailable)
	database.ConnectRedis()

	// Firebase push (optional as well)
	services.InitFirebase(context.Background())

	// Setup router
	r := gin.Default()
	r.Use(middleware.CORSMiddleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": config.AppConfig.AppName,
		})
	})

	// ==========================================
	// AUTH ROUTES (public)
	// ==========================================
	auth := r.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
	}

	// ==========================================
	// API ROUTES (authenticated)
	// ==========================================
	api := r.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		// User
		api.GET("/users/me", handlers.GetProfile)
		api.PUT("/users/me/password", handlers.ChangePassword)
		api.PUT("/users/me/fcm-token", handlers.UpdateFCMToken)

		// Expenses
		api.POST("/expenses", handlers.CreateExpense)
		api.GET("/expenses", handlers.GetExpenses)
		api.GET("/expenses/recent", handlers.GetRecentExpenses)
		api.PUT("/expenses/:id", handlers.UpdateExpense)
		api.DELETE("/expenses/:id", handlers.DeleteExpense)

		// Analytics
		api.GET("/analytics", handlers.GetAnalytics)

		// Friends
		api.GET("/friends", handlers.GetFriends)
		api.POST("/friends/requests", handlers.SendFriendRequest)
		api.GET("/friends/requests", handlers.GetFriendRequests)
		api.POST("/friends/requests/:id/accept", handlers.AcceptFriendRequest)
		api.POST("/friends/requests/:id/decline", handlers.DeclineFriendRequest)

		// Splitify
		api.GET("/splitify/ledger", handlers.GetLedger)
		api.POST("/splitify/bills", handlers.SplitBill)
		api.POST("/splitify/settle", handlers.SettleDebt)
		api.DELETE("/splitify/bills/:ower", handlers.DeleteBills)
	}

	// Start server
	port := config.AppConfig.Port
	log.Printf("🚀 %s server starting on port %s", config.AppConfig.AppName, port)

	addr := "0.0.0.0:" + port
	if err := r.Run(addr); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
