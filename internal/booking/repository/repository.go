package repository

import (
	"time"

	"carelink-backend/internal/booking/domain"
)

// BookingRepository defines the interface for booking data access.
// ClaimSlotAndBook and CancelBooking run inside a transaction so a
// slot can never be sold twice.
type BookingRepository interface {
	// CreateSlot publishes an availability slot
	CreateSlot(slot *domain.AvailabilitySlot) error

	// FindSlotByID finds a slot by its ID
	FindSlotByID(id string) (*domain.AvailabilitySlot, error)

	// FindOpenSlotsByConsultant lists a consultant's unbooked future slots
	FindOpenSlotsByConsultant(consultantID string, from time.Time) ([]*domain.AvailabilitySlot, error)

	// DeleteSlot removes an unbooked slot
	DeleteSlot(id string) error

	// ClaimSlotAndBook atomically marks the slot booked, redeems the
	// coupon if present, and stores the booking
	ClaimSlotAndBook(booking *domain.Booking, coupon *domain.Coupon) error

	// FindBookingByID finds a booking by its ID
	FindBookingByID(id string) (*domain.Booking, error)

	// FindBookingsByUserID lists bookings where the user is the client
	// or the consultant, soonest first
	FindBookingsByUserID(userID string) ([]*domain.Booking, error)

	// CancelBooking atomically cancels the booking and frees its slot
	CancelBooking(booking *domain.Booking) error

	// FindCouponByCode finds a coupon by its code
	FindCouponByCode(code string) (*domain.Coupon, error)

	// CreateCoupon stores a new coupon
	CreateCoupon(coupon *domain.Coupon) error

	// FindPendingReminders finds confirmed bookings starting before the
	// horizon whose reminder has not gone out yet
	FindPendingReminders(horizon time.Time) ([]*domain.Booking, error)

	// MarkReminderSent marks a booking's reminder as sent
	MarkReminderSent(id string) error
}
