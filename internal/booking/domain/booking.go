package domain

import "time"

// BookingStatus represents where an appointment is in its lifecycle
type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// AvailabilitySlot is a bookable window a consultant has published
type AvailabilitySlot struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	ConsultantID string    `json:"consultant_id" gorm:"index;not null"`
	StartTime    time.Time `json:"start_time" gorm:"index;not null"`
	EndTime      time.Time `json:"end_time" gorm:"not null"`
	Price        float64   `json:"price"`
	Booked       bool      `json:"booked" gorm:"default:false"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Booking is a confirmed appointment between a client and a consultant
type Booking struct {
	ID           string        `json:"id" gorm:"primaryKey"`
	ClientID     string        `json:"client_id" gorm:"index;not null"`
	ConsultantID string        `json:"consultant_id" gorm:"index;not null"`
	SlotID       string        `json:"slot_id" gorm:"index;not null"`
	StartTime    time.Time     `json:"start_time"`
	EndTime      time.Time     `json:"end_time"`
	Price        float64       `json:"price"`
	CouponCode   string        `json:"coupon_code,omitempty"`
	Discount     float64       `json:"discount"`
	FinalPrice   float64       `json:"final_price"`
	MeetingURL   string        `json:"meeting_url"`
	Status       BookingStatus `json:"status" gorm:"default:confirmed"`
	ReminderSent bool          `json:"reminder_sent" gorm:"default:false"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// Coupon is a discount code with an optional expiry and usage cap.
// Exactly one of PercentOff and AmountOff is meaningful.
type Coupon struct {
	Code       string     `json:"code" gorm:"primaryKey"`
	PercentOff int        `json:"percent_off"` // 0-100
	AmountOff  float64    `json:"amount_off"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
	UsageLimit int        `json:"usage_limit"` // 0 = unlimited
	UsedCount  int        `json:"used_count"`
	CreatedAt  time.Time  `json:"created_at"`
}

// DiscountFor returns the discount this coupon grants on a price,
// never exceeding the price itself
func (c *Coupon) DiscountFor(price float64) float64 {
	var discount float64
	if c.PercentOff > 0 {
		discount = price * float64(c.PercentOff) / 100
	} else {
		discount = c.AmountOff
	}
	if discount > price {
		discount = price
	}
	return discount
}
