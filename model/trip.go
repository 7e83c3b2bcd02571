package model

import "time"

type Trip struct {
	DTO
	Name        string    `gorm:"not null" validate:"required" json:"name"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`

	CustomerID uint     `gorm:"not null;index" json:"customerId"`
	Customer   Customer `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"-"`

	Days   []TripDay `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"days"`
	Budget *Budget   `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"budget,omitempty"`
	Share  *TripShare `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"share,omitempty"`
}

type TripDay struct {
	DTO
	TripID   uint   `gorm:"not null;uniqueIndex:idx_trip_day_index" json:"tripId"`
	DayIndex int    `gorm:"not null;uniqueIndex:idx_trip_day_index" json:"dayIndex"`
	Note     string `json:"note"`

	Trip   Trip        `gorm:"foreignKey:TripID;constraint:OnDelete:CASCADE" json:"-"`
	Places []TripPlace `gorm:"foreignKey:TripDayID;constraint:OnDelete:CASCADE" json:"places"`
}

type TripPlace struct {
	DTO
	TripDayID  uint   `gorm:"not null;index" json:"tripDayId"`
	PlaceID    uint   `gorm:"not null" json:"placeId"`
	VisitOrder int    `gorm:"not null;default:0" json:"visitOrder"`
	Note       string `json:"note"`

	TripDay TripDay `gorm:"foreignKey:TripDayID;constraint:OnDelete:CASCADE" json:"-"`
	Place   Place   `gorm:"foreignKey:PlaceID" json:"place"`
}

type TripShare struct {
	DTO
	TripID    uint       `gorm:"not null;uniqueIndex" json:"tripId"`
	Token     string     `gorm:"uniqueIndex;size:40" json:"token"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`

	Accesses []TripShareAccess `gorm:"foreignKey:TripShareID;constraint:OnDelete:CASCADE" json:"-"`
}

// TripShareAccess records each viewer at most once per share.
type TripShareAccess struct {
	DTO
	TripShareID uint `gorm:"not null;uniqueIndex:idx_share_user" json:"tripShareId"`
	UserID      uint `gorm:"not null;uniqueIndex:idx_share_user" json:"userId"`
}

type CreateTripInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	StartDate   string `json:"startDate" validate:"required"` // YYYY-MM-DD
	EndDate     string `json:"endDate" validate:"required"`
}

type EditTripInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

type AddTripPlaceInput struct {
	PlaceID uint   `json:"placeId" validate:"required"`
	Note    string `json:"note"`
}

type ReorderTripPlacesInput struct {
	PlaceIDs []uint `json:"placeIds" validate:"required,min=1"` // TripPlace ids in new order
}

type ShareTripInput struct {
	ExpiresInDays *int `json:"expiresInDays" validate:"omitempty,min=1,max=365"`
}
