package usecase

import (
	"testing"
	"time"

	authdomain "carelink-backend/internal/auth/domain"
	bookingdomain "carelink-backend/internal/booking/domain"
	chatdomain "carelink-backend/internal/chat/domain"
	timesheetdomain "carelink-backend/internal/timesheet/domain"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestGetPlatformStats(t *testing.T) {
	t.Parallel()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authdomain.User{},
		&bookingdomain.AvailabilitySlot{},
		&bookingdomain.Booking{},
		&timesheetdomain.TimeSession{},
		&chatdomain.Message{},
	))

	future := time.Now().Add(48 * time.Hour)

	require.NoError(t, db.Create(&authdomain.User{ID: "u1", Email: "a@x.com", Role: authdomain.RoleClient}).Error)
	require.NoError(t, db.Create(&authdomain.User{ID: "u2", Email: "b@x.com", Role: authdomain.RoleClient}).Error)
	require.NoError(t, db.Create(&authdomain.User{ID: "u3", Email: "c@x.com", Role: authdomain.RoleConsultant}).Error)

	require.NoError(t, db.Create(&bookingdomain.AvailabilitySlot{
		ID: "s1", ConsultantID: "u3", StartTime: future, EndTime: future.Add(time.Hour), Price: 80,
	}).Error)
	require.NoError(t, db.Create(&bookingdomain.Booking{
		ID: "b1", ClientID: "u1", ConsultantID: "u3", SlotID: "s2",
		FinalPrice: 64, Status: bookingdomain.BookingStatusConfirmed,
	}).Error)
	require.NoError(t, db.Create(&bookingdomain.Booking{
		ID: "b2", ClientID: "u2", ConsultantID: "u3", SlotID: "s3",
		FinalPrice: 80, Status: bookingdomain.BookingStatusCancelled,
	}).Error)

	require.NoError(t, db.Create(&timesheetdomain.TimeSession{
		ID: "ts1", UserID: "u1", TaskLabel: "journaling", Duration: 300,
	}).Error)
	require.NoError(t, db.Create(&chatdomain.Message{ID: "m1", RoomID: "r1", SenderID: "u1", Content: "hi"}).Error)
	require.NoError(t, db.Create(&chatdomain.Message{ID: "m2", RoomID: "r1", SenderID: "u3", Content: "hello"}).Error)

	stats, err := NewAdminUsecase(db).GetPlatformStats()
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.UsersByRole["client"])
	assert.Equal(t, int64(1), stats.UsersByRole["consultant"])
	assert.Equal(t, int64(1), stats.BookingsByStatus["confirmed"])
	assert.Equal(t, int64(1), stats.BookingsByStatus["cancelled"])
	assert.Equal(t, 64.0, stats.Revenue, "cancelled bookings earn nothing")
	assert.Equal(t, int64(1), stats.OpenSlots)
	assert.Equal(t, int64(1), stats.SessionsTracked)
	assert.Equal(t, int64(2), stats.MessagesSent)
}
