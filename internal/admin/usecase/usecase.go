package usecase

// PlatformStats is the admin dashboard aggregate
type PlatformStats struct {
	UsersByRole      map[string]int64 `json:"users_by_role"`
	BookingsByStatus map[string]int64 `json:"bookings_by_status"`
	Revenue          float64          `json:"revenue"`
	OpenSlots        int64            `json:"open_slots"`
	SessionsTracked  int64            `json:"sessions_tracked"`
	MessagesSent     int64            `json:"messages_sent"`
}

// AdminUsecase defines the interface for admin business logic
type AdminUsecase interface {
	// GetPlatformStats aggregates platform-wide counters for the dashboard
	GetPlatformStats() (*PlatformStats, error)
}
