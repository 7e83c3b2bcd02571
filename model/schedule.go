package model

import "time"

type Route struct {
	DTO
	FromProvinceID uint     `gorm:"not null;uniqueIndex:idx_route_pair" json:"fromProvinceId"`
	ToProvinceID   uint     `gorm:"not null;uniqueIndex:idx_route_pair" json:"toProvinceId"`
	FromProvince   Province `gorm:"foreignKey:FromProvinceID" json:"fromProvince"`
	ToProvince     Province `gorm:"foreignKey:ToProvinceID" json:"toProvince"`
	DistanceKm     float64  `json:"distanceKm"`
	DurationMin    int      `json:"durationMin"`
}

type BusSchedule struct {
	DTO
	PublicCode    string    `gorm:"size:16;uniqueIndex" json:"publicCode"`
	DepartureTime time.Time `gorm:"not null" validate:"required" json:"departureTime"`
	ArrivalTime   time.Time `json:"arrivalTime"`
	Price         float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Status        string    `gorm:"not null;default:'scheduled'" json:"status"`

	// set by MigrateLegacyScheduleStatus so the rewrite can be rolled back
	LegacyStatus *string `gorm:"size:20" json:"-"`

	BusID   uint  `gorm:"not null" json:"busId"`
	RouteID uint  `gorm:"not null" json:"routeId"`
	Bus     Bus   `gorm:"foreignKey:BusID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"bus"`
	Route   Route `gorm:"foreignKey:RouteID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"route"`

	Seats []ScheduleSeat `gorm:"foreignKey:ScheduleID" json:"-"`
}

// ScheduleSeat is the sellable unit: exactly one row per (schedule, seat),
// so a seat cannot be sold twice on the same departure. State moves
// AVAILABLE -> HELD -> SOLD, with held seats expiring back to AVAILABLE.
type ScheduleSeat struct {
	DTO
	ScheduleID uint       `gorm:"not null;uniqueIndex:idx_schedule_seat" json:"scheduleId"`
	SeatID     uint       `gorm:"not null;uniqueIndex:idx_schedule_seat" json:"seatId"`
	SeatNumber string     `json:"seatNumber"`
	SeatType   string     `json:"seatType"`
	Level      int        `json:"level"`
	Status     string     `gorm:"not null;default:'AVAILABLE'" json:"status"`
	HeldBy     string     `json:"heldBy"`
	ExpiredAt  *time.Time `json:"expiredAt"`

	Schedule BusSchedule `gorm:"foreignKey:ScheduleID" json:"-"`
	Seat     BusSeat     `gorm:"foreignKey:SeatID" json:"Seat"`
}

type CreateRouteInput struct {
	FromProvinceID uint    `json:"fromProvinceId" validate:"required"`
	ToProvinceID   uint    `json:"toProvinceId" validate:"required,nefield=FromProvinceID"`
	DistanceKm     float64 `json:"distanceKm" validate:"required,gt=0"`
	DurationMin    int     `json:"durationMin" validate:"required,gt=0"`
}

type CreateScheduleInput struct {
	BusID         uint      `json:"busId" validate:"required"`
	RouteID       uint      `json:"routeId" validate:"required"`
	DepartureTime time.Time `json:"departureTime" validate:"required"`
	Price         float64   `json:"price" validate:"required,gt=0"`
}

// CreateScheduleBatchInput expands a date range and daily time slots into
// one schedule per (bus, date, slot).
type CreateScheduleBatchInput struct {
	BusIDs    []uint   `json:"busIds" validate:"required,dive,required"`
	RouteID   uint     `json:"routeId" validate:"required"`
	StartDate string   `json:"startDate" validate:"required"` // YYYY-MM-DD
	EndDate   string   `json:"endDate" validate:"required"`
	TimeSlots []string `json:"timeSlots" validate:"required,dive"` // ["06:30", "13:00"]
	Price     float64  `json:"price" validate:"required,gt=0"`
}

type UpdateScheduleInput struct {
	DepartureTime *time.Time `json:"departureTime"`
	Price         *float64   `json:"price" validate:"omitempty,gt=0"`
	Status        *string    `json:"status" validate:"omitempty,oneof=scheduled departed arrived cancelled"`
}

type FilterSchedule struct {
	Pagination
	FromProvinceID uint   `json:"fromProvinceId" query:"from"`
	ToProvinceID   uint   `json:"toProvinceId" query:"to"`
	Date           string `json:"date" query:"date"` // YYYY-MM-DD
	Status         string `json:"status" query:"status" validate:"omitempty,oneof=scheduled departed arrived cancelled"`
	BusID          uint   `json:"busId" query:"busId"`
}

type ScheduleSearchResult struct {
	BusSchedule
	CompanyName    string  `json:"companyName"`
	BusType        string  `json:"busType"`
	AvailableSeats int64   `json:"availableSeats"`
	TotalSeats     int64   `json:"totalSeats"`
	FillRate       float64 `json:"fillRate"`
}
