package main

import (
	"context"
	"log"
	"strings"

	api "carelink-backend/cmd/api"
	adminUsecase "carelink-backend/internal/admin/usecase"
	authdomain "carelink-backend/internal/auth/domain"
	authRepo "carelink-backend/internal/auth/repository"
	authUsecase "carelink-backend/internal/auth/usecase"
	bookingdomain "carelink-backend/internal/booking/domain"
	bookingRepo "carelink-backend/internal/booking/repository"
	bookingScheduler "carelink-backend/internal/booking/scheduler"
	bookingUsecase "carelink-backend/internal/booking/usecase"
	chatdomain "carelink-backend/internal/chat/domain"
	chatRepo "carelink-backend/internal/chat/repository"
	chatUsecase "carelink-backend/internal/chat/usecase"
	"carelink-backend/internal/notification"
	taskdomain "carelink-backend/internal/task/domain"
	taskRepo "carelink-backend/internal/task/repository"
	taskUsecase "carelink-backend/internal/task/usecase"
	timesheetdomain "carelink-backend/internal/timesheet/domain"
	timesheetRepo "carelink-backend/internal/timesheet/repository"
	timesheetUsecase "carelink-backend/internal/timesheet/usecase"
	"carelink-backend/pkg/config"
	"carelink-backend/pkg/database"
	"carelink-backend/pkg/fcm"
	"carelink-backend/pkg/meeting"
	"carelink-backend/pkg/sse"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.FCMToken{},
		&taskdomain.Task{},
		&timesheetdomain.TimeSession{},
		&chatdomain.Room{},
		&chatdomain.Message{},
		&chatdomain.RoomRead{},
		&bookingdomain.AvailabilitySlot{},
		&bookingdomain.Booking{},
		&bookingdomain.Coupon{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepository := authRepo.NewUserRepository(db)
	fcmTokenRepo := authRepo.NewFCMTokenRepository(db)
	taskRepository := taskRepo.NewGormTaskRepository(db)
	sessionRepo := timesheetRepo.NewGormSessionRepository(db)
	chatRepository := chatRepo.NewGormChatRepository(db)
	bookingRepository := bookingRepo.NewGormBookingRepository(db)

	// Initialize SSE Manager
	sseManager := sse.NewManager()
	go sseManager.Run()

	// Initialize FCM Client (optional, alerts degrade to SSE only)
	var fcmClient *fcm.Client
	if cfg.FirebaseCredentials != "" {
		fcmClient, err = fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
			fcmClient = nil
		}
	} else {
		log.Println("[WARN] No Firebase credentials configured, FCM disabled")
	}

	// Initialize meeting link service
	meetingService := meeting.NewService(cfg.MeetingBaseURL)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepository, fcmTokenRepo, cfg)
	taskUsecaseInstance := taskUsecase.NewTaskUsecase(taskRepository)
	timesheetUsecaseInstance := timesheetUsecase.NewTimesheetUsecase(sessionRepo)
	chatUsecaseInstance := chatUsecase.NewChatUsecase(chatRepository)
	bookingUsecaseInstance := bookingUsecase.NewBookingUsecase(bookingRepository, meetingService)
	adminUsecaseInstance := adminUsecase.NewAdminUsecase(db)

	// Initialize notification service; the chat usecase doubles as the
	// room directory and presence tracker
	notifService := notification.NewService(sseManager, userRepository, fcmTokenRepo, fcmClient, chatUsecaseInstance, chatUsecaseInstance)
	chatUsecaseInstance.SetNotifier(notifService)

	// Bridge message events from the legacy chat module (Pub/Sub)
	if cfg.GoogleProjectID != "" {
		topicName := cfg.ChatEventsTopic
		if parts := strings.Split(topicName, "/"); len(parts) > 1 {
			topicName = parts[len(parts)-1]
		}
		if err := notifService.ConnectBridge(cfg.GoogleProjectID, topicName, cfg.GoogleCredentials); err != nil {
			log.Printf("[ERROR] Failed to connect chat event bridge: %v", err)
		} else {
			go notifService.StartBridge(context.Background())
		}
	} else {
		log.Println("[WARN] GoogleProjectID not configured, chat event bridge disabled")
	}

	// Start booking reminder scheduler
	reminderScheduler := bookingScheduler.NewBookingReminderScheduler(bookingRepository, fcmTokenRepo, fcmClient, cfg.BookingReminderLead)
	reminderScheduler.Start()

	// Initialize HTTP handler
	handler := api.NewHandler(
		authUsecaseInstance,
		taskUsecaseInstance,
		timesheetUsecaseInstance,
		chatUsecaseInstance,
		bookingUsecaseInstance,
		adminUsecaseInstance,
		sseManager,
		cfg,
	)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
