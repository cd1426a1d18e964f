package constants

// User role
const (
	RoleCustomer   = 0
	RoleSuperAdmin = 1
	RoleHotelAdmin = 2
)

// User status
const (
	UserStatusActive   = 1
	UserStatusInactive = 0
)

// Booking status
const (
	BookingStatusConfirmed = 1
	BookingStatusCompleted = 2
	BookingStatusCancelled = 3
)

// Calendar status cho từng (phòng, ngày)
const (
	CalendarStatusAvailable   = 0
	CalendarStatusBooked      = 1
	CalendarStatusBlocked     = 2
	CalendarStatusMaintenance = 3
)

// Hotel type
const (
	HotelTypeHotel = 0
	HotelTypeVilla = 1
)

// DateLayout định dạng ngày dùng trong request/response
const DateLayout = "02/01/2006"
