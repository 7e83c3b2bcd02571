package model

import "time"

type Booking struct {
	DTO
	PublicCode string `gorm:"unique;size:20" json:"publicCode"` // BKG-XXXXXXXX

	CustomerID *uint     `json:"customerId,omitempty"` // nil for guest checkout
	Customer   *Customer `json:"customer,omitempty"`

	TotalAmount   float64 `gorm:"type:decimal(10,2)" json:"totalAmount"`
	Status        string  `gorm:"not null;default:'PENDING'" json:"status"`
	PaymentMethod string  `json:"paymentMethod"` // CARD, CASH, TRANSFER

	CustomerName string `json:"customerName"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`

	PaidAt      *time.Time `json:"paidAt,omitempty"`
	CancelledAt *time.Time `json:"cancelledAt,omitempty"`
	ExpiresAt   *time.Time `json:"expiresAt,omitempty"` // PENDING bookings time out

	Items []BookingItem `gorm:"foreignKey:BookingID" json:"items"`
}

// BookingItem is a tagged variant: ItemType selects which of the per-variant
// foreign keys is set. Keeping real FK columns per variant (instead of one
// opaque item_id) lets the database keep referential integrity.
type BookingItem struct {
	DTO
	BookingID uint    `gorm:"not null;index" json:"bookingId"`
	Booking   Booking `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"-"`

	ItemType string `gorm:"not null" json:"itemType"` // hotel_room, bus_seat

	RoomID         *uint         `json:"roomId,omitempty"`
	Room           *Room         `gorm:"foreignKey:RoomID" json:"room,omitempty"`
	ScheduleSeatID *uint         `json:"scheduleSeatId,omitempty"`
	ScheduleSeat   *ScheduleSeat `gorm:"foreignKey:ScheduleSeatID" json:"scheduleSeat,omitempty"`

	Quantity   int     `gorm:"not null;default:1" json:"quantity"`
	UnitPrice  float64 `gorm:"type:decimal(10,2)" json:"unitPrice"`
	TotalPrice float64 `gorm:"type:decimal(10,2)" json:"totalPrice"`

	HotelDetail *BookingHotelDetail `gorm:"foreignKey:BookingItemID" json:"hotelDetail,omitempty"`
}

type BookingHotelDetail struct {
	DTO
	BookingItemID uint      `gorm:"not null;uniqueIndex" json:"bookingItemId"`
	CheckIn       time.Time `gorm:"not null" json:"checkIn"`
	CheckOut      time.Time `gorm:"not null" json:"checkOut"`
	Nights        int       `gorm:"not null" json:"nights"`
	Guests        int       `gorm:"default:1" json:"guests"`
}

type HoldSeatsInput struct {
	SeatIds        []uint `json:"seatIds" validate:"required,min=1"`
	GuestSessionId string `json:"guestSessionId"`
}

type ReleaseSeatsInput struct {
	SeatIds []uint `json:"seatIds" validate:"required,min=1"`
	HeldBy  string `json:"heldBy" validate:"required"`
}

type PurchaseSeatsInput struct {
	SeatIds       []uint `json:"seatIds" validate:"required,min=1"`
	HeldBy        string `json:"heldBy" validate:"required"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=CARD CASH TRANSFER"`
	CustomerName  string `json:"customerName"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
}

type BookRoomInput struct {
	RoomID        uint   `json:"roomId" validate:"required"`
	CheckIn       string `json:"checkIn" validate:"required"`  // YYYY-MM-DD
	CheckOut      string `json:"checkOut" validate:"required"` // YYYY-MM-DD
	Guests        int    `json:"guests" validate:"omitempty,min=1"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=CARD CASH TRANSFER"`
	CustomerName  string `json:"customerName"`
	Phone         string `json:"phone"`
	Email         string `json:"email" validate:"omitempty,email"`
}

type FilterBooking struct {
	Pagination
	Status    string `json:"status" query:"status" validate:"omitempty,oneof=PENDING CONFIRMED CANCELLED REFUNDED"`
	ItemType  string `json:"itemType" query:"itemType" validate:"omitempty,oneof=hotel_room bus_seat"`
	StartDate string `json:"startDate" query:"startDate"`
	EndDate   string `json:"endDate" query:"endDate"`
}
