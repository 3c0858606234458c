package usecase

import (
	"time"

	"carelink-backend/internal/booking/domain"
)

// QuoteResult is the price breakdown after validating a coupon
type QuoteResult struct {
	Price      float64 `json:"price"`
	Discount   float64 `json:"discount"`
	FinalPrice float64 `json:"final_price"`
	CouponCode string  `json:"coupon_code,omitempty"`
}

// BookingUsecase defines the interface for booking business logic
type BookingUsecase interface {
	// PublishSlot lets a consultant open an availability window
	PublishSlot(consultantID string, start, end time.Time, price float64) (*domain.AvailabilitySlot, error)

	// ListOpenSlots lists a consultant's bookable future slots
	ListOpenSlots(consultantID string) ([]*domain.AvailabilitySlot, error)

	// RemoveSlot withdraws an unbooked slot (owner only)
	RemoveSlot(consultantID, slotID string) error

	// ValidateCoupon prices a slot with the coupon applied, without
	// redeeming anything
	ValidateCoupon(code string, price float64) (*QuoteResult, error)

	// BookSlot claims the slot for the client, redeems the coupon if
	// given, and issues the meeting link
	BookSlot(clientID, slotID, couponCode string) (*domain.Booking, error)

	// ListBookings lists the user's bookings (either side)
	ListBookings(userID string) ([]*domain.Booking, error)

	// CancelBooking cancels a booking and frees its slot
	CancelBooking(userID, bookingID string) (*domain.Booking, error)

	// CreateCoupon registers a discount code (admin)
	CreateCoupon(coupon *domain.Coupon) error
}
