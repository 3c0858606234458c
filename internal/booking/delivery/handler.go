package delivery

import (
	"errors"
	"net/http"
	"time"

	"carelink-backend/internal/booking/domain"
	"carelink-backend/internal/booking/usecase"

	"github.com/gin-gonic/gin"
)

// BookingHandler handles availability and booking HTTP requests
type BookingHandler struct {
	bookingUsecase usecase.BookingUsecase
}

// NewBookingHandler creates a new BookingHandler
func NewBookingHandler(bookingUsecase usecase.BookingUsecase) *BookingHandler {
	return &BookingHandler{
		bookingUsecase: bookingUsecase,
	}
}

// PublishSlotRequest represents the request body for opening a slot
type PublishSlotRequest struct {
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
	Price     float64   `json:"price" binding:"min=0"`
}

// BookSlotRequest represents the request body for booking a slot
type BookSlotRequest struct {
	SlotID     string `json:"slot_id" binding:"required"`
	CouponCode string `json:"coupon_code"`
}

// ValidateCouponRequest represents the request body for pricing a coupon
type ValidateCouponRequest struct {
	Code  string  `json:"code" binding:"required"`
	Price float64 `json:"price" binding:"min=0"`
}

// CreateCouponRequest represents the request body for registering a coupon
type CreateCouponRequest struct {
	Code       string     `json:"code" binding:"required"`
	PercentOff int        `json:"percent_off" binding:"min=0,max=100"`
	AmountOff  float64    `json:"amount_off" binding:"min=0"`
	ExpiresAt  *time.Time `json:"expires_at"`
	UsageLimit int        `json:"usage_limit" binding:"min=0"`
}

// PublishSlot opens an availability window for the consultant
// POST /api/availability
func (h *BookingHandler) PublishSlot(c *gin.Context) {
	consultantID := c.GetString("userID")

	var req PublishSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := h.bookingUsecase.PublishSlot(consultantID, req.StartTime, req.EndTime, req.Price)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

// ListSlots returns a consultant's open future slots
// GET /api/availability/:id (id is the consultant)
func (h *BookingHandler) ListSlots(c *gin.Context) {
	slots, err := h.bookingUsecase.ListOpenSlots(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// RemoveSlot withdraws an unbooked slot (owner only)
// DELETE /api/availability/:id (id is the slot)
func (h *BookingHandler) RemoveSlot(c *gin.Context) {
	consultantID := c.GetString("userID")
	slotID := c.Param("id")

	if err := h.bookingUsecase.RemoveSlot(consultantID, slotID); err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "slot removed"})
}

// ValidateCoupon prices a coupon without redeeming it
// POST /api/coupons/validate
func (h *BookingHandler) ValidateCoupon(c *gin.Context) {
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quote, err := h.bookingUsecase.ValidateCoupon(req.Code, req.Price)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

// CreateCoupon registers a discount code
// POST /api/admin/coupons
func (h *BookingHandler) CreateCoupon(c *gin.Context) {
	var req CreateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	coupon := &domain.Coupon{
		Code:       req.Code,
		PercentOff: req.PercentOff,
		AmountOff:  req.AmountOff,
		ExpiresAt:  req.ExpiresAt,
		UsageLimit: req.UsageLimit,
	}
	if err := h.bookingUsecase.CreateCoupon(coupon); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

// BookSlot claims a slot for the authenticated client
// POST /api/bookings
func (h *BookingHandler) BookSlot(c *gin.Context) {
	clientID := c.GetString("userID")

	var req BookSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	booking, err := h.bookingUsecase.BookSlot(clientID, req.SlotID, req.CouponCode)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

// ListBookings returns the user's bookings, either side of the table
// GET /api/bookings
func (h *BookingHandler) ListBookings(c *gin.Context) {
	userID := c.GetString("userID")

	bookings, err := h.bookingUsecase.ListBookings(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

// CancelBooking cancels a booking and frees its slot
// POST /api/bookings/:id/cancel
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	userID := c.GetString("userID")
	bookingID := c.Param("id")

	booking, err := h.bookingUsecase.CancelBooking(userID, bookingID)
	if err != nil {
		h.writeBookingError(c, err)
		return
	}

	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) writeBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrSlotNotFound), errors.Is(err, usecase.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrSlotUnavailable):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, usecase.ErrSlotInPast),
		errors.Is(err, usecase.ErrInvalidWindow),
		errors.Is(err, usecase.ErrOwnSlot),
		errors.Is(err, usecase.ErrCouponInvalid),
		errors.Is(err, usecase.ErrCouponExpired),
		errors.Is(err, usecase.ErrCouponExhausted):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
