package api

import (
	adminDelivery "carelink-backend/internal/admin/delivery"
	adminUsecasePkg "carelink-backend/internal/admin/usecase"
	authUsecasePkg "carelink-backend/internal/auth/usecase"
	bookingDelivery "carelink-backend/internal/booking/delivery"
	bookingUsecasePkg "carelink-backend/internal/booking/usecase"
	chatDelivery "carelink-backend/internal/chat/delivery"
	chatUsecasePkg "carelink-backend/internal/chat/usecase"
	taskDelivery "carelink-backend/internal/task/delivery"
	taskUsecasePkg "carelink-backend/internal/task/usecase"
	timesheetDelivery "carelink-backend/internal/timesheet/delivery"
	timesheetUsecasePkg "carelink-backend/internal/timesheet/usecase"
	"carelink-backend/pkg/config"
	"carelink-backend/pkg/sse"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase      authUsecasePkg.AuthUsecase
	sseManager       *sse.Manager
	config           *config.Config
	taskHandler      *taskDelivery.TaskHandler
	timesheetHandler *timesheetDelivery.TimesheetHandler
	chatHandler      *chatDelivery.ChatHandler
	bookingHandler   *bookingDelivery.BookingHandler
	adminHandler     *adminDelivery.AdminHandler
}

func NewHandler(
	authUc authUsecasePkg.AuthUsecase,
	taskUc taskUsecasePkg.TaskUsecase,
	timesheetUc timesheetUsecasePkg.TimesheetUsecase,
	chatUc chatUsecasePkg.ChatUsecase,
	bookingUc bookingUsecasePkg.BookingUsecase,
	adminUc adminUsecasePkg.AdminUsecase,
	sseManager *sse.Manager,
	cfg *config.Config,
) *Handler {
	return &Handler{
		authUsecase:      authUc,
		sseManager:       sseManager,
		config:           cfg,
		taskHandler:      taskDelivery.NewTaskHandler(taskUc),
		timesheetHandler: timesheetDelivery.NewTimesheetHandler(timesheetUc),
		chatHandler:      chatDelivery.NewChatHandler(chatUc),
		bookingHandler:   bookingDelivery.NewBookingHandler(bookingUc),
		adminHandler:     adminDelivery.NewAdminHandler(adminUc),
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h)

	return r.Run(addr)
}
