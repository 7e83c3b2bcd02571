package model

import "gorm.io/datatypes"

type Property struct {
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

	RoomProperties []RoomProperty `gorm:"foreignKey:PropertyID" json:"roomProperties"`
	Facilities     []Facility     `gorm:"many2many:property_facilities;constraint:OnDelete:CASCADE" json:"facilities"`
}

type Facility struct {
	DTO
	Name string `gorm:"uniqueIndex;not null" validate:"required" json:"name"`
	Icon string `json:"icon"`
}

type Amenity struct {
	DTO
	Name string `gorm:"uniqueIndex;not null" validate:"required" json:"name"`
}

// RoomProperty is a room type template; physical Rooms hang off it.
type RoomProperty struct {
	DTO
	Name          string         `gorm:"not null" validate:"required" json:"name"`
	Description   string         `json:"description"`
	PricePerNight float64        `gorm:"type:decimal(10,2);not null" validate:"required,gt=0" json:"pricePerNight"`
	Capacity      int            `gorm:"not null" validate:"required,min=1" json:"capacity"`
	Images        datatypes.JSON `json:"images"`

	PropertyID uint      `gorm:"not null" json:"propertyId"`
	Property   Property  `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"-"`
	Rooms      []Room    `gorm:"foreignKey:RoomPropertyID" json:"rooms"`
	Amenities  []Amenity `gorm:"many2many:room_property_amenities;constraint:OnDelete:CASCADE" json:"amenities"`
}

// Room is a physical, individually bookable unit. RoomNumber repeats across
// room types but never within one (composite index, not a global unique).
type Room struct {
	DTO
	RoomNumber  string `gorm:"not null;uniqueIndex:idx_room_property_number" validate:"required" json:"roomNumber"`
	Floor       int    `json:"floor"`
	Status      string `gorm:"not null;default:'available'" validate:"required" json:"status"`
	IsAvailable bool   `gorm:"default:true" json:"isAvailable"`

	RoomPropertyID uint         `gorm:"not null;uniqueIndex:idx_room_property_number" json:"roomPropertyId"`
	RoomProperty   RoomProperty `gorm:"foreignKey:RoomPropertyID;constraint:OnDelete:CASCADE" json:"-"`
}

type CreatePropertyInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	PlaceID     uint   `json:"placeId" validate:"required"`
	FacilityIDs []uint `json:"facilityIds" validate:"omitempty,dive,required"`
}

type EditPropertyInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Phone       *string `json:"phone"`
	Active      *bool   `json:"isActive"`
	FacilityIDs *[]uint `json:"facilityIds"`
}

type CreateRoomPropertyInput struct {
	PropertyID    uint     `json:"propertyId" validate:"required"`
	Name          string   `json:"name" validate:"required"`
	Description   string   `json:"description"`
	PricePerNight float64  `json:"pricePerNight" validate:"required,gt=0"`
	Capacity      int      `json:"capacity" validate:"required,min=1"`
	Images        []string `json:"images"`
	AmenityIDs    []uint   `json:"amenityIds" validate:"omitempty,dive,required"`
}

type EditRoomPropertyInput struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	PricePerNight *float64  `json:"pricePerNight" validate:"omitempty,gt=0"`
	Capacity      *int      `json:"capacity" validate:"omitempty,min=1"`
	Images        *[]string `json:"images"`
	AmenityIDs    *[]uint   `json:"amenityIds"`
}

type CreateRoomInput struct {
	RoomPropertyID uint   `json:"roomPropertyId" validate:"required"`
	RoomNumber     string `json:"roomNumber" validate:"required"`
	Floor          int    `json:"floor"`
}

// CreateRoomBatchInput generates Count rooms numbered from StartNumber.
type CreateRoomBatchInput struct {
	RoomPropertyID uint   `json:"roomPropertyId" validate:"required"`
	Count          int    `json:"count" validate:"required,min=1,max=500"`
	StartNumber    int    `json:"startNumber" validate:"required,min=1"`
	Prefix         string `json:"prefix"`
	Floor          int    `json:"floor"`
}

type EditRoomInput struct {
	RoomNumber *string `json:"roomNumber"`
	Floor      *int    `json:"floor"`
	Status     *string `json:"status" validate:"omitempty,oneof=available occupied maintenance cleaning"`
}

type FilterProperty struct {
	Pagination
	SearchKey  string `json:"searchKey" query:"searchKey"`
	ProvinceID uint   `json:"provinceId" query:"provinceId"`
	OwnerID    uint   `json:"ownerId"`
}
