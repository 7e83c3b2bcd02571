package model

import "gorm.io/datatypes"

type Transportation struct {
	DTO
	Name        string `gorm:"not null" validate:"required" json:"name"`
	Slug        string `gorm:"uniqueIndex" json:"slug"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Active      *bool  `gorm:"not null;default:true" json:"isActive"`

	OwnerID uint    `gorm:"not null" json:"ownerId"`
	Owner   Account `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`

	PlaceID uint  `gorm:"uniqueIndex" json:"placeId"`
	Place   Place `gorm:"foreignKey:PlaceID" json:"place"`

	BusProperties []BusProperty `gorm:"foreignKey:TransportationID" json:"busProperties"`
}

// BusProperty is a bus type template; its layout drives seat generation.
type BusProperty struct {
	DTO
	Name         string         `gorm:"not null" validate:"required" json:"name"`
	Capacity     int            `gorm:"not null" validate:"required,min=1" json:"capacity"`
	PricePerSeat float64        `gorm:"type:decimal(10,2);not null" validate:"required,gt=0" json:"pricePerSeat"`
	Features     datatypes.JSON `json:"features"`

	SeatRows    int `gorm:"not null;default:10" json:"seatRows"`
	SeatColumns int `gorm:"not null;default:4" json:"seatColumns"`
	SeatLevels  int `gorm:"not null;default:1" json:"seatLevels"` // decks

	TransportationID uint           `gorm:"not null" json:"transportationId"`
	Transportation   Transportation `gorm:"foreignKey:TransportationID;constraint:OnDelete:CASCADE" json:"-"`
	Buses            []Bus          `gorm:"foreignKey:BusPropertyID" json:"buses"`
}

type Bus struct {
	DTO
	LicensePlate string `gorm:"uniqueIndex;not null" validate:"required" json:"licensePlate"`
	Status       string `gorm:"not null;default:'active'" json:"status"`

	BusPropertyID uint        `gorm:"not null" json:"busPropertyId"`
	BusProperty   BusProperty `gorm:"foreignKey:BusPropertyID;constraint:OnDelete:CASCADE" json:"-"`
	Seats         []BusSeat   `gorm:"foreignKey:BusID" json:"seats"`
}

// BusSeat is a named slot on a vehicle. SeatNumber repeats across buses,
// never within one.
type BusSeat struct {
	DTO
	SeatNumber string `gorm:"not null;uniqueIndex:idx_bus_seat_number" validate:"required" json:"seatNumber"`
	Type       string `gorm:"default:'standard'" json:"type"` // standard, vip, sleeper
	Level      int    `gorm:"default:1" json:"level"`
	Row        int    `json:"row"`
	Column     int    `json:"column"`

	BusID uint `gorm:"not null;uniqueIndex:idx_bus_seat_number" json:"busId"`
	Bus   Bus  `gorm:"foreignKey:BusID;constraint:OnDelete:CASCADE" json:"-"`
}

type CreateTransportationInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	PlaceID     uint   `json:"placeId" validate:"required"`
}

type EditTransportationInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Active      *bool   `json:"isActive"`
}

type CreateBusPropertyInput struct {
	TransportationID uint     `json:"transportationId" validate:"required"`
	Name             string   `json:"name" validate:"required"`
	PricePerSeat     float64  `json:"pricePerSeat" validate:"required,gt=0"`
	Features         []string `json:"features"`
	SeatRows         int      `json:"seatRows" validate:"required,min=1,max=30"`
	SeatColumns      int      `json:"seatColumns" validate:"required,min=1,max=6"`
	SeatLevels       int      `json:"seatLevels" validate:"required,min=1,max=2"`
}

type EditBusPropertyInput struct {
	Name         *string   `json:"name"`
	PricePerSeat *float64  `json:"pricePerSeat" validate:"omitempty,gt=0"`
	Features     *[]string `json:"features"`
}

type CreateBusInput struct {
	BusPropertyID uint   `json:"busPropertyId" validate:"required"`
	LicensePlate  string `json:"licensePlate" validate:"required"`
}

type EditBusInput struct {
	LicensePlate *string `json:"licensePlate"`
	Status       *string `json:"status" validate:"omitempty,oneof=active maintenance retired"`
}

type FilterTransportation struct {
	Pagination
	SearchKey string `json:"searchKey" query:"searchKey"`
	OwnerID   uint   `json:"ownerId"`
}
