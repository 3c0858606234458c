package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"carelink-backend/internal/booking/repository"
	"carelink-backend/pkg/fcm"

	authrepo "carelink-backend/internal/auth/repository"
)

// BookingReminderScheduler sends FCM reminders for upcoming sessions
type BookingReminderScheduler struct {
	bookingRepo repository.BookingRepository
	fcmRepo     authrepo.FCMTokenRepository
	fcmClient   *fcm.Client
	lead        time.Duration
	interval    time.Duration
	stopChan    chan struct{}
}

// NewBookingReminderScheduler creates a new scheduler. lead is how far
// ahead of the session start the reminder goes out.
func NewBookingReminderScheduler(
	bookingRepo repository.BookingRepository,
	fcmRepo authrepo.FCMTokenRepository,
	fcmClient *fcm.Client,
	lead time.Duration,
) *BookingReminderScheduler {
	return &BookingReminderScheduler{
		bookingRepo: bookingRepo,
		fcmRepo:     fcmRepo,
		fcmClient:   fcmClient,
		lead:        lead,
		interval:    1 * time.Minute,
		stopChan:    make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *BookingReminderScheduler) Start() {
	if s.fcmClient == nil {
		log.Println("[BookingScheduler] FCM client not available, scheduler disabled")
		return
	}

	log.Printf("[BookingScheduler] Starting booking reminder scheduler (lead: %s)", s.lead)

	go func() {
		// Run immediately on start
		s.checkAndSendReminders()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.checkAndSendReminders()
			case <-s.stopChan:
				log.Println("[BookingScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *BookingReminderScheduler) Stop() {
	close(s.stopChan)
}

// checkAndSendReminders finds bookings entering the reminder window and
// notifies both participants
func (s *BookingReminderScheduler) checkAndSendReminders() {
	horizon := time.Now().Add(s.lead)

	bookings, err := s.bookingRepo.FindPendingReminders(horizon)
	if err != nil {
		log.Printf("[BookingScheduler] Error finding pending reminders: %v", err)
		return
	}

	if len(bookings) == 0 {
		return
	}

	log.Printf("[BookingScheduler] Found %d bookings with pending reminders", len(bookings))

	for _, booking := range bookings {
		body := fmt.Sprintf("Your session starts at %s", booking.StartTime.Format("15:04, 02 Jan 2006"))
		notification := fcm.NotificationData{
			Title: "Upcoming session",
			Body:  body,
			Data: map[string]string{
				"type":        "booking_reminder",
				"booking_id":  booking.ID,
				"meeting_url": booking.MeetingURL,
			},
		}

		for _, userID := range []string{booking.ClientID, booking.ConsultantID} {
			s.sendToUser(userID, notification)
		}

		// Mark sent regardless of delivery outcome to avoid spamming
		if err := s.bookingRepo.MarkReminderSent(booking.ID); err != nil {
			log.Printf("[BookingScheduler] Error marking reminder sent for booking %s: %v", booking.ID, err)
		}
	}
}

func (s *BookingReminderScheduler) sendToUser(userID string, notification fcm.NotificationData) {
	tokens, err := s.fcmRepo.GetTokensByUserID(userID)
	if err != nil {
		log.Printf("[BookingScheduler] Error getting FCM tokens for user %s: %v", userID, err)
		return
	}
	if len(tokens) == 0 {
		return
	}

	var tokenStrings []string
	for _, t := range tokens {
		tokenStrings = append(tokenStrings, t.Token)
	}

	failedTokens, err := s.fcmClient.SendToDevices(context.Background(), tokenStrings, notification)
	if err != nil {
		log.Printf("[BookingScheduler] Error sending reminder to user %s: %v", userID, err)
		return
	}

	// Cleanup failed tokens
	for _, token := range failedTokens {
		s.fcmRepo.DeleteToken(token)
	}
}
