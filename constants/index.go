package constants

// account roles
const (
	ROLE_ADMIN           = "ADMIN"
	ROLE_HOTEL_OWNER     = "HOTEL_OWNER"
	ROLE_TRANSPORT_OWNER = "TRANSPORT_OWNER"
	ROLE_SUPERADMIN_NAME = "superadmin"
)

// user-facing messages
const (
	ERROR_INTERNAL_ERROR       = "Internal server error"
	ERROR_PARSE_DATA_TO_LOCALS = "Cannot read validated input"
	MISSING_LOGIN_INPUT        = "Username and password are required"
	INVALID_USERNAME           = "Username does not exist"
	INVALID_PASSWORD           = "Password is incorrect"
	INVALID_EMAIL              = "Email is invalid"
	ACCOUNT_NOT_ACTIVE         = "Account is deactivated"
	NOT_ADMIN                  = "Admin permission required"
	NOT_OWNER                  = "You do not own this resource"
	CAN_NOT_HASH_PASSWORD      = "Cannot hash password"
	DATA_INPUT_IS_NOT_NUMBER   = "Route parameter must be a number"
	RECORD_NOT_FOUND           = "Record not found"
)

// room status values kept consistent with Room.IsAvailable by the handlers
const (
	ROOM_AVAILABLE   = "available"
	ROOM_OCCUPIED    = "occupied"
	ROOM_MAINTENANCE = "maintenance"
	ROOM_CLEANING    = "cleaning"
)

var RoomStatuses = []string{ROOM_AVAILABLE, ROOM_OCCUPIED, ROOM_MAINTENANCE, ROOM_CLEANING}

// bus status values
const (
	BUS_ACTIVE      = "active"
	BUS_MAINTENANCE = "maintenance"
	BUS_RETIRED     = "retired"
)

// bus schedule status values. SCHEDULE_ARRIVED replaced the legacy "completed"
// terminal state, see database.MigrateLegacyScheduleStatus.
const (
	SCHEDULE_SCHEDULED = "scheduled"
	SCHEDULE_DEPARTED  = "departed"
	SCHEDULE_ARRIVED   = "arrived"
	SCHEDULE_CANCELLED = "cancelled"

	SCHEDULE_LEGACY_COMPLETED = "completed"
)

var ScheduleStatuses = []string{SCHEDULE_SCHEDULED, SCHEDULE_DEPARTED, SCHEDULE_ARRIVED, SCHEDULE_CANCELLED}

// booking status values
const (
	BOOKING_PENDING   = "PENDING"
	BOOKING_CONFIRMED = "CONFIRMED"
	BOOKING_CANCELLED = "CANCELLED"
	BOOKING_REFUNDED  = "REFUNDED"
)

// booking item variants
const (
	ITEM_HOTEL_ROOM = "hotel_room"
	ITEM_BUS_SEAT   = "bus_seat"
)

// expense categories
var ExpenseCategories = []string{"food", "transport", "lodging", "activity", "other"}
