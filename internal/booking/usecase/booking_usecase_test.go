package usecase

import (
	"testing"
	"time"

	"carelink-backend/internal/booking/domain"
	"carelink-backend/internal/booking/repository"
	"carelink-backend/pkg/meeting"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestBookingUsecase(t *testing.T) *bookingUsecase {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.AvailabilitySlot{}, &domain.Booking{}, &domain.Coupon{}))

	uc := NewBookingUsecase(
		repository.NewGormBookingRepository(db),
		meeting.NewService("https://meet.example.com"),
	).(*bookingUsecase)
	uc.now = func() time.Time {
		return time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	}
	return uc
}

func publishSlot(t *testing.T, uc *bookingUsecase, consultantID string, price float64) *domain.AvailabilitySlot {
	t.Helper()
	start := uc.now().Add(48 * time.Hour)
	slot, err := uc.PublishSlot(consultantID, start, start.Add(time.Hour), price)
	require.NoError(t, err)
	return slot
}

func TestPublishSlotValidation(t *testing.T) {
	t.Parallel()

	uc := newTestBookingUsecase(t)
	now := uc.now()

	_, err := uc.PublishSlot("consultant-1", now.Add(time.Hour), now.Add(time.Hour), 80)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = uc.PublishSlot("consultant-1", now.Add(-time.Hour), now.Add(time.Hour), 80)
	assert.ErrorIs(t, err, ErrSlotInPast)
}

func TestBookSlotIssuesMeetingLink(t *testing.T) {
	t.Parallel()

	uc := newTestBookingUsecase(t)
	slot := publishSlot(t, uc, "consultant-1", 80)

	booking, err := uc.BookSlot("client-1", slot.ID, "")
	require.NoError(t, err)

	assert.Equal(t, domain.BookingStatusConfirmed, booking.Status)
	assert.Equal(t, 80.0, booking.FinalPrice)
	assert.Contains(t, booking.MeetingURL, "https://meet.example.com/carelink-")

	// The slot is gone from the open list
	slots, err := uc.ListOpenSlots("consultant-1")
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestBookSlotRejectsDoubleBooking(t *testing.T) {
	t.Parallel()

	uc := newTestBookingUsecase(t)
	slot := publishSlot(t, uc, "consultant-1", 80)

	_, err := uc.BookSlot("client-1", slot.ID, "")
	require.NoError(t, err)

	_, err = uc.BookSlot("client-2", slot.ID, "")
	assert.ErrorIs(t, err, ErrSlotUnavailable)
}

func TestBookSlotRejectsOwnSlot(t *testing.T) {
	t.Parallel()

	uc := newTestBookingUsecase(t)
	slot := publishSlot(t, uc, "consultant-1", 80)

	_, err := uc.BookSlot("consultant-1", slot.ID, "")
	assert.ErrorIs(t, err, ErrOwnSlot)
}

func TestCancelBookingFreesSlot(t *testing.T) {
	t.Parallel()

	uc := newTestBookingUsecase(t)
	slot := publishSlot(t, uc, "consultant-1", 80)

	booking, err := uc.BookSlot("client-1", slot.ID, "")
	require.NoError(t, err)

	_, err = uc.CancelBooking("stranger", booking.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)

	cancelled, err := uc.CancelBooking("client-1", booking.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, cancelled.Status)

	// Slot is bookable again
	slots, err := uc.ListOpenSlots("consultant-1")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, slot.ID, slots[0].ID)

	_, err = uc.BookSlot("client-2", slot.ID, "")
	assert.NoError(t, err)
}

func TestValidateCoupon(t *testing.T) {
	t.Parallel()

	uc := newTestBookingUsecase(t)
	now := uc.now()
	expired := now.Add(-time.Hour)
	valid := now.Add(72 * time.Hour)

	require.NoError(t, uc.CreateCoupon(&domain.Coupon{Code: "WELCOME20", PercentOff: 20, ExpiresAt: &valid}))
	require.NoError(t, uc.CreateCoupon(&domain.Coupon{Code: "TENOFF", AmountOff: 10}))
	require.NoError(t, uc.CreateCoupon(&domain.Coupon{Code: "OLD", PercentOff: 50, ExpiresAt: &expired}))
	require.NoError(t, uc.CreateCoupon(&domain.Coupon{Code: "USEDUP", PercentOff: 50, UsageLimit: 1, UsedCount: 1}))

	tests := []struct {
		name    string
		code    string
		price   float64
		want    float64
		wantErr error
	}{
		{name: "percent off", code: "WELCOME20", price: 80, want: 64},
		{name: "fixed off", code: "TENOFF", price: 80, want: 70},
		{name: "fixed off capped at price", code: "TENOFF", price: 5, want: 0},
		{name: "unknown code", code: "NOPE", price: 80, wantErr: ErrCouponInvalid},
		{name: "expired", code: "OLD", price: 80, wantErr: ErrCouponExpired},
		{name: "exhausted", code: "USEDUP", price: 80, wantErr: ErrCouponExhausted},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			quote, err := uc.ValidateCoupon(tc.code, tc.price)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, quote.FinalPrice)
		})
	}
}

func TestBookSlotRedeemsCoupon(t *testing.T) {
	t.Parallel()

	uc := newTestBookingUsecase(t)
	require.NoError(t, uc.CreateCoupon(&domain.Coupon{Code: "HALF", PercentOff: 50, UsageLimit: 1}))

	first := publishSlot(t, uc, "consultant-1", 80)
	second := publishSlot(t, uc, "consultant-1", 80)

	booking, err := uc.BookSlot("client-1", first.ID, "HALF")
	require.NoError(t, err)
	assert.Equal(t, "HALF", booking.CouponCode)
	assert.Equal(t, 40.0, booking.FinalPrice)

	// The single use is spent
	_, err = uc.BookSlot("client-2", second.ID, "HALF")
	assert.ErrorIs(t, err, ErrCouponExhausted)
}
