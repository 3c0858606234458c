package usecase

import (
	"time"

	"gorm.io/gorm"

	authdomain "carelink-backend/internal/auth/domain"
	bookingdomain "carelink-backend/internal/booking/domain"
	chatdomain "carelink-backend/internal/chat/domain"
	timesheetdomain "carelink-backend/internal/timesheet/domain"
)

// adminUsecase implements AdminUsecase interface
type adminUsecase struct {
	db *gorm.DB
}

// NewAdminUsecase creates a new instance of adminUsecase
func NewAdminUsecase(db *gorm.DB) AdminUsecase {
	return &adminUsecase{db: db}
}

type groupCount struct {
	Key   string
	Count int64
}

func (u *adminUsecase) GetPlatformStats() (*PlatformStats, error) {
	stats := &PlatformStats{
		UsersByRole:      make(map[string]int64),
		BookingsByStatus: make(map[string]int64),
	}

	var userRows []groupCount
	err := u.db.Model(&authdomain.User{}).
		Select("role as key, count(*) as count").
		Group("role").
		Scan(&userRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range userRows {
		stats.UsersByRole[row.Key] = row.Count
	}

	var bookingRows []groupCount
	err = u.db.Model(&bookingdomain.Booking{}).
		Select("status as key, count(*) as count").
		Group("status").
		Scan(&bookingRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range bookingRows {
		stats.BookingsByStatus[row.Key] = row.Count
	}

	// Cancelled bookings don't count towards revenue
	err = u.db.Model(&bookingdomain.Booking{}).
		Where("status <> ?", bookingdomain.BookingStatusCancelled).
		Select("coalesce(sum(final_price), 0)").
		Scan(&stats.Revenue).Error
	if err != nil {
		return nil, err
	}

	err = u.db.Model(&bookingdomain.AvailabilitySlot{}).
		Where("booked = ? AND start_time > ?", false, time.Now()).
		Count(&stats.OpenSlots).Error
	if err != nil {
		return nil, err
	}

	if err := u.db.Model(&timesheetdomain.TimeSession{}).Count(&stats.SessionsTracked).Error; err != nil {
		return nil, err
	}

	if err := u.db.Model(&chatdomain.Message{}).Count(&stats.MessagesSent).Error; err != nil {
		return nil, err
	}

	return stats, nil
}
