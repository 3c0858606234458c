package api

import (
	"net/http"

	"carelink-backend/internal/auth/delivery"
	authdomain "carelink-backend/internal/auth/domain"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *Handler) {
	authHandler := delivery.NewAuthHandler(h.authUsecase)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// SSE endpoint
		api.GET("/events", delivery.AuthMiddleware(h.authUsecase), func(c *gin.Context) {
			userID := c.GetString("userID")
			h.sseManager.ServeHTTP(c, userID)
		})

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.GoogleSignIn)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", delivery.AuthMiddleware(h.authUsecase), authHandler.Me)
		}

		// Consultant directory (public)
		api.GET("/consultants", authHandler.ListConsultants)

		// FCM routes (protected)
		fcm := api.Group("/fcm")
		fcm.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			fcm.POST("/register", authHandler.RegisterFCMToken)
			fcm.DELETE("/:token", authHandler.UnregisterFCMToken)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			tasks.GET("", h.taskHandler.GetTasks)
			tasks.POST("", h.taskHandler.CreateTask)
			tasks.GET("/suggestions", h.taskHandler.GetSuggestions)
			tasks.GET("/:id", h.taskHandler.GetTaskByID)
			tasks.PUT("/:id", h.taskHandler.UpdateTask)
			tasks.PATCH("/:id/completed", h.taskHandler.SetCompleted)
			tasks.DELETE("/:id", h.taskHandler.DeleteTask)
		}

		// Timer routes (protected)
		timer := api.Group("/timer")
		timer.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			timer.POST("/start", h.timesheetHandler.StartTimer)
			timer.POST("/pause", h.timesheetHandler.PauseTimer)
			timer.POST("/stop", h.timesheetHandler.StopTimer)
			timer.GET("/status", h.timesheetHandler.TimerStatus)
		}

		// Timesheet routes (protected)
		timesheet := api.Group("/timesheet")
		timesheet.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			timesheet.GET("/sessions", h.timesheetHandler.ListSessions)
		}

		// Chat routes (protected)
		chat := api.Group("/chat")
		chat.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			chat.POST("/rooms", h.chatHandler.OpenRoom)
			chat.GET("/rooms", h.chatHandler.ListRooms)
			chat.GET("/rooms/:id/messages", h.chatHandler.ListMessages)
			chat.POST("/rooms/:id/messages", h.chatHandler.SendMessage)
			chat.POST("/rooms/:id/open", h.chatHandler.EnterRoom)
			chat.POST("/rooms/close", h.chatHandler.LeaveRoom)
		}

		// Availability routes
		availability := api.Group("/availability")
		{
			availability.GET("/:id", h.bookingHandler.ListSlots)
			availability.POST("", delivery.AuthMiddleware(h.authUsecase), delivery.RequireRole(authdomain.RoleConsultant), h.bookingHandler.PublishSlot)
			availability.DELETE("/:id", delivery.AuthMiddleware(h.authUsecase), delivery.RequireRole(authdomain.RoleConsultant), h.bookingHandler.RemoveSlot)
		}

		// Booking routes (protected)
		bookings := api.Group("/bookings")
		bookings.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			bookings.GET("", h.bookingHandler.ListBookings)
			bookings.POST("", h.bookingHandler.BookSlot)
			bookings.POST("/:id/cancel", h.bookingHandler.CancelBooking)
		}

		// Coupon pricing (protected)
		coupons := api.Group("/coupons")
		coupons.Use(delivery.AuthMiddleware(h.authUsecase))
		{
			coupons.POST("/validate", h.bookingHandler.ValidateCoupon)
		}

		// Admin routes (admin only)
		admin := api.Group("/admin")
		admin.Use(delivery.AuthMiddleware(h.authUsecase), delivery.RequireRole(authdomain.RoleAdmin))
		{
			admin.GET("/stats", h.adminHandler.GetStats)
			admin.POST("/coupons", h.bookingHandler.CreateCoupon)
		}
	}
}
