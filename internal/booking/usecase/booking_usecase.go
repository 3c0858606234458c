package usecase

import (
	"errors"
	"math"
	"time"

	"carelink-backend/internal/booking/domain"
	"carelink-backend/internal/booking/repository"
	"carelink-backend/pkg/meeting"

	"github.com/google/uuid"
)

var (
	ErrSlotNotFound    = errors.New("slot not found")
	ErrSlotUnavailable = errors.New("slot is no longer available")
	ErrSlotInPast      = errors.New("slot is in the past")
	ErrInvalidWindow   = errors.New("slot end must be after start")
	ErrBookingNotFound = errors.New("booking not found")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrOwnSlot         = errors.New("cannot book your own slot")
	ErrCouponInvalid   = errors.New("coupon code is not valid")
	ErrCouponExpired   = errors.New("coupon has expired")
	ErrCouponExhausted = errors.New("coupon usage limit reached")
)

// bookingUsecase implements BookingUsecase interface
type bookingUsecase struct {
	bookingRepo repository.BookingRepository
	meetings    *meeting.Service
	now         func() time.Time
}

// NewBookingUsecase creates a new instance of bookingUsecase
func NewBookingUsecase(bookingRepo repository.BookingRepository, meetings *meeting.Service) BookingUsecase {
	return &bookingUsecase{
		bookingRepo: bookingRepo,
		meetings:    meetings,
		now:         time.Now,
	}
}

func (u *bookingUsecase) PublishSlot(consultantID string, start, end time.Time, price float64) (*domain.AvailabilitySlot, error) {
	if !end.After(start) {
		return nil, ErrInvalidWindow
	}
	if start.Before(u.now()) {
		return nil, ErrSlotInPast
	}

	slot := &domain.AvailabilitySlot{
		ID:           uuid.New().String(),
		ConsultantID: consultantID,
		StartTime:    start,
		EndTime:      end,
		Price:        price,
	}
	if err := u.bookingRepo.CreateSlot(slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (u *bookingUsecase) ListOpenSlots(consultantID string) ([]*domain.AvailabilitySlot, error) {
	return u.bookingRepo.FindOpenSlotsByConsultant(consultantID, u.now())
}

func (u *bookingUsecase) RemoveSlot(consultantID, slotID string) error {
	slot, err := u.bookingRepo.FindSlotByID(slotID)
	if err != nil {
		return err
	}
	if slot == nil {
		return ErrSlotNotFound
	}
	if slot.ConsultantID != consultantID {
		return ErrUnauthorized
	}
	return u.bookingRepo.DeleteSlot(slotID)
}

func (u *bookingUsecase) ValidateCoupon(code string, price float64) (*QuoteResult, error) {
	coupon, err := u.lookupCoupon(code)
	if err != nil {
		return nil, err
	}

	discount := coupon.DiscountFor(price)
	return &QuoteResult{
		Price:      price,
		Discount:   roundCents(discount),
		FinalPrice: roundCents(price - discount),
		CouponCode: coupon.Code,
	}, nil
}

func (u *bookingUsecase) BookSlot(clientID, slotID, couponCode string) (*domain.Booking, error) {
	slot, err := u.bookingRepo.FindSlotByID(slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	if slot.ConsultantID == clientID {
		return nil, ErrOwnSlot
	}
	if slot.Booked {
		return nil, ErrSlotUnavailable
	}
	if slot.StartTime.Before(u.now()) {
		return nil, ErrSlotInPast
	}

	var coupon *domain.Coupon
	var discount float64
	if couponCode != "" {
		coupon, err = u.lookupCoupon(couponCode)
		if err != nil {
			return nil, err
		}
		discount = coupon.DiscountFor(slot.Price)
	}

	booking := &domain.Booking{
		ID:           uuid.New().String(),
		ClientID:     clientID,
		ConsultantID: slot.ConsultantID,
		SlotID:       slot.ID,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		Price:        slot.Price,
		Discount:     roundCents(discount),
		FinalPrice:   roundCents(slot.Price - discount),
		MeetingURL:   u.meetings.NewRoomLink(),
		Status:       domain.BookingStatusConfirmed,
	}
	if coupon != nil {
		booking.CouponCode = coupon.Code
	}

	if err := u.bookingRepo.ClaimSlotAndBook(booking, coupon); err != nil {
		switch {
		case errors.Is(err, repository.ErrSlotTaken):
			return nil, ErrSlotUnavailable
		case errors.Is(err, repository.ErrCouponExhausted):
			return nil, ErrCouponExhausted
		}
		return nil, err
	}

	return booking, nil
}

func (u *bookingUsecase) ListBookings(userID string) ([]*domain.Booking, error) {
	return u.bookingRepo.FindBookingsByUserID(userID)
}

func (u *bookingUsecase) CancelBooking(userID, bookingID string) (*domain.Booking, error) {
	booking, err := u.bookingRepo.FindBookingByID(bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}
	if booking.ClientID != userID && booking.ConsultantID != userID {
		return nil, ErrUnauthorized
	}

	if err := u.bookingRepo.CancelBooking(booking); err != nil {
		return nil, err
	}
	return booking, nil
}

func (u *bookingUsecase) CreateCoupon(coupon *domain.Coupon) error {
	return u.bookingRepo.CreateCoupon(coupon)
}

func (u *bookingUsecase) lookupCoupon(code string) (*domain.Coupon, error) {
	coupon, err := u.bookingRepo.FindCouponByCode(code)
	if err != nil {
		return nil, err
	}
	if coupon == nil {
		return nil, ErrCouponInvalid
	}
	if coupon.ExpiresAt != nil && coupon.ExpiresAt.Before(u.now()) {
		return nil, ErrCouponExpired
	}
	if coupon.UsageLimit > 0 && coupon.UsedCount >= coupon.UsageLimit {
		return nil, ErrCouponExhausted
	}
	return coupon, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
