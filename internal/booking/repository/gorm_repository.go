package repository

import (
	"errors"
	"time"

	"carelink-backend/internal/booking/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrSlotTaken is returned when the slot was booked by someone else
// between viewing and claiming it
var ErrSlotTaken = errors.New("slot is no longer available")

// ErrCouponExhausted is returned when redemption would exceed the
// coupon's usage limit
var ErrCouponExhausted = errors.New("coupon usage limit reached")

// gormBookingRepository implements BookingRepository using GORM
type gormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GORM-based BookingRepository
func NewGormBookingRepository(db *gorm.DB) BookingRepository {
	return &gormBookingRepository{db: db}
}

func (r *gormBookingRepository) CreateSlot(slot *domain.AvailabilitySlot) error {
	if slot.ID == "" {
		slot.ID = uuid.New().String()
	}
	slot.CreatedAt = time.Now()
	slot.UpdatedAt = time.Now()
	return r.db.Create(slot).Error
}

func (r *gormBookingRepository) FindSlotByID(id string) (*domain.AvailabilitySlot, error) {
	var slot domain.AvailabilitySlot
	err := r.db.Where("id = ?", id).First(&slot).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slot, nil
}

func (r *gormBookingRepository) FindOpenSlotsByConsultant(consultantID string, from time.Time) ([]*domain.AvailabilitySlot, error) {
	var slots []*domain.AvailabilitySlot
	err := r.db.Where("consultant_id = ? AND booked = ? AND start_time > ?", consultantID, false, from).
		Order("start_time ASC").Find(&slots).Error
	return slots, err
}

func (r *gormBookingRepository) DeleteSlot(id string) error {
	return r.db.Where("id = ? AND booked = ?", id, false).Delete(&domain.AvailabilitySlot{}).Error
}

// ClaimSlotAndBook performs the booking transaction. The guarded
// UPDATE on the slot is the double-booking gate: whoever flips
// booked=false to true first wins, the other request sees zero rows.
func (r *gormBookingRepository) ClaimSlotAndBook(booking *domain.Booking, coupon *domain.Coupon) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		claim := tx.Model(&domain.AvailabilitySlot{}).
			Where("id = ? AND booked = ?", booking.SlotID, false).
			Updates(map[string]interface{}{"booked": true, "updated_at": time.Now()})
		if claim.Error != nil {
			return claim.Error
		}
		if claim.RowsAffected == 0 {
			return ErrSlotTaken
		}

		if coupon != nil {
			redeem := tx.Model(&domain.Coupon{}).
				Where("code = ? AND (usage_limit = 0 OR used_count < usage_limit)", coupon.Code).
				Update("used_count", gorm.Expr("used_count + 1"))
			if redeem.Error != nil {
				return redeem.Error
			}
			if redeem.RowsAffected == 0 {
				return ErrCouponExhausted
			}
		}

		if booking.ID == "" {
			booking.ID = uuid.New().String()
		}
		booking.CreatedAt = time.Now()
		booking.UpdatedAt = time.Now()
		return tx.Create(booking).Error
	})
}

func (r *gormBookingRepository) FindBookingByID(id string) (*domain.Booking, error) {
	var booking domain.Booking
	err := r.db.Where("id = ?", id).First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &booking, nil
}

func (r *gormBookingRepository) FindBookingsByUserID(userID string) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	err := r.db.Where("client_id = ? OR consultant_id = ?", userID, userID).
		Order("start_time ASC").Find(&bookings).Error
	return bookings, err
}

func (r *gormBookingRepository) CancelBooking(booking *domain.Booking) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		booking.Status = domain.BookingStatusCancelled
		booking.UpdatedAt = time.Now()
		if err := tx.Save(booking).Error; err != nil {
			return err
		}

		return tx.Model(&domain.AvailabilitySlot{}).
			Where("id = ?", booking.SlotID).
			Updates(map[string]interface{}{"booked": false, "updated_at": time.Now()}).Error
	})
}

func (r *gormBookingRepository) FindCouponByCode(code string) (*domain.Coupon, error) {
	var coupon domain.Coupon
	err := r.db.Where("code = ?", code).First(&coupon).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &coupon, nil
}

func (r *gormBookingRepository) CreateCoupon(coupon *domain.Coupon) error {
	coupon.CreatedAt = time.Now()
	return r.db.Create(coupon).Error
}

func (r *gormBookingRepository) FindPendingReminders(horizon time.Time) ([]*domain.Booking, error) {
	var bookings []*domain.Booking
	err := r.db.Where("status = ? AND reminder_sent = ? AND start_time <= ? AND start_time > ?",
		domain.BookingStatusConfirmed, false, horizon, time.Now()).Find(&bookings).Error
	return bookings, err
}

func (r *gormBookingRepository) MarkReminderSent(id string) error {
	return r.db.Model(&domain.Booking{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_sent": true,
			"updated_at":    time.Now(),
		}).Error
}
