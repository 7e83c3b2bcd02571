package handler

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/helper"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

// BookingTimeout is how long an unpaid booking blocks its inventory.
const BookingTimeout = 15 * time.Minute

// BookRoom creates a pending hotel booking. The room row is locked so two
// concurrent requests for overlapping stays cannot both pass the conflict
// check.
func BookRoom(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("inputBookRoom").(model.BookRoomInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	checkIn, err := utils.ParseDate(input.CheckIn)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid check-in date", err, "checkIn")
	}
	checkOut, err := utils.ParseDate(input.CheckOut)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid check-out date", err, "checkOut")
	}
	if !checkIn.Before(checkOut) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Check-out must be after check-in", nil, "checkOut")
	}
	if checkIn.Before(time.Now().Truncate(24 * time.Hour)) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Check-in date is in the past", nil, "checkIn")
	}

	tx := db.Begin()

	var room model.Room
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("RoomProperty.Property").
		First(&room, input.RoomID).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusNotFound, "Room does not exist", err, "roomId")
	}
	if room.Status == constants.ROOM_MAINTENANCE {
		tx.Rollback()
		return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Room is under maintenance", nil, "roomId")
	}

	conflicts, err := helper.RoomRangeConflicts(tx, room.ID, checkIn, checkOut)
	if err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if conflicts > 0 {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, "Room is already booked for those dates", nil)
	}

	nights := helper.Nights(checkIn, checkOut)
	total := float64(nights) * room.RoomProperty.PricePerNight

	guests := input.Guests
	if guests == 0 {
		guests = 1
	}

	expiresAt := time.Now().Add(BookingTimeout)
	booking := model.Booking{
		PublicCode:    "BKG-" + uuid.New().String()[:8],
		TotalAmount:   total,
		Status:        constants.BOOKING_PENDING,
		PaymentMethod: input.PaymentMethod,
		CustomerName:  input.CustomerName,
		Phone:         input.Phone,
		Email:         input.Email,
		ExpiresAt:     &expiresAt,
	}

	customer, isLoggedIn := c.Locals("customer").(*model.Customer)
	if isLoggedIn && customer != nil {
		booking.CustomerID = &customer.ID
		if booking.Email == "" {
			booking.Email = customer.Email
		}
	}

	if err := tx.Create(&booking).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot create booking", err)
	}

	item := model.BookingItem{
		BookingID:  booking.ID,
		ItemType:   constants.ITEM_HOTEL_ROOM,
		RoomID:     utils.Ptr(room.ID),
		Quantity:   nights,
		UnitPrice:  room.RoomProperty.PricePerNight,
		TotalPrice: total,
	}
	if err := tx.Create(&item).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot create booking item", err)
	}

	detail := model.BookingHotelDetail{
		BookingItemID: item.ID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Nights:        nights,
		Guests:        guests,
	}
	if err := tx.Create(&detail).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot create booking detail", err)
	}

	tx.Commit()

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"booking":   booking,
		"item":      item,
		"detail":    detail,
		"expiresAt": expiresAt,
	})
}

// ConfirmBooking marks a pending booking as paid and emails the
// confirmation with its QR code.
func ConfirmBooking(c *fiber.Ctx) error {
	db := database.DB
	code := c.Params("code")

	tx := db.Begin()

	var booking model.Booking
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items.HotelDetail").
		Preload("Items.Room.RoomProperty.Property").
		Preload("Items.ScheduleSeat.Schedule.Route.FromProvince").
		Preload("Items.ScheduleSeat.Schedule.Route.ToProvince").
		Where("public_code = ?", code).
		First(&booking).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if booking.Status != constants.BOOKING_PENDING {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict,
			fmt.Sprintf("Booking is %s, only pending bookings can be confirmed", booking.Status), nil)
	}
	if booking.ExpiresAt != nil && booking.ExpiresAt.Before(time.Now()) {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, "Booking has expired", nil)
	}

	now := time.Now()
	if err := tx.Model(&booking).Updates(map[string]any{
		"status":     constants.BOOKING_CONFIRMED,
		"paid_at":    now,
		"expires_at": nil,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx.Commit()

	booking.Status = constants.BOOKING_CONFIRMED
	booking.PaidAt = &now
	booking.ExpiresAt = nil

	if booking.Email != "" {
		utils.SendBookingConfirmationEmail(booking.Email, utils.BookingConfirmationData{
			BookingCode:   booking.PublicCode,
			Summary:       bookingSummary(booking),
			When:          bookingWhen(booking),
			TotalAmount:   booking.TotalAmount,
			PaymentMethod: booking.PaymentMethod,
			DetailLink:    fmt.Sprintf("%s/bookings/%s", c.BaseURL(), booking.PublicCode),
			CancelLink:    fmt.Sprintf("%s/api/v1/bookings/%s/cancel", c.BaseURL(), booking.PublicCode),
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"booking":   booking,
		"emailSent": booking.Email != "",
	})
}

func bookingSummary(booking model.Booking) string {
	var parts []string
	seatCount := 0
	for _, item := range booking.Items {
		switch item.ItemType {
		case constants.ITEM_BUS_SEAT:
			seatCount++
		case constants.ITEM_HOTEL_ROOM:
			if item.Room != nil && item.HotelDetail != nil {
				parts = append(parts, fmt.Sprintf("%s, %d nights",
					item.Room.RoomProperty.Name, item.HotelDetail.Nights))
			}
		}
	}
	if seatCount > 0 {
		label := fmt.Sprintf("%d seats", seatCount)
		for _, item := range booking.Items {
			if item.ScheduleSeat != nil {
				route := item.ScheduleSeat.Schedule.Route
				label = fmt.Sprintf("%s, %s -> %s", label, route.FromProvince.Name, route.ToProvince.Name)
				break
			}
		}
		parts = append(parts, label)
	}
	return strings.Join(parts, "; ")
}

func bookingWhen(booking model.Booking) string {
	for _, item := range booking.Items {
		if item.ScheduleSeat != nil {
			return item.ScheduleSeat.Schedule.DepartureTime.Format("02/01/2006 15:04")
		}
		if item.HotelDetail != nil {
			return item.HotelDetail.CheckIn.Format("02/01/2006")
		}
	}
	return ""
}

// CancelBooking releases the booking's inventory: sold seats go back to
// available, room date ranges stop blocking new stays.
func CancelBooking(c *fiber.Ctx) error {
	db := database.DB
	code := c.Params("code")

	tx := db.Begin()

	var booking model.Booking
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items").
		Where("public_code = ?", code).
		First(&booking).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	if booking.Status == constants.BOOKING_CANCELLED || booking.Status == constants.BOOKING_REFUNDED {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, "Booking is already cancelled", nil)
	}

	// only the owning customer, a guest with the code, or an admin may cancel
	customer, _ := c.Locals("customer").(*model.Customer)
	if booking.CustomerID != nil {
		_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
		if !isAdmin && (customer == nil || customer.ID != *booking.CustomerID) {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not booking owner"))
		}
	}

	wasPaid := booking.Status == constants.BOOKING_CONFIRMED
	newStatus := constants.BOOKING_CANCELLED
	if wasPaid {
		newStatus = constants.BOOKING_REFUNDED
	}

	now := time.Now()
	if err := tx.Model(&booking).Updates(map[string]any{
		"status":       newStatus,
		"cancelled_at": now,
		"expires_at":   nil,
	}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	affectedSchedules := make(map[uint]bool)
	for _, item := range booking.Items {
		if item.ItemType != constants.ITEM_BUS_SEAT || item.ScheduleSeatID == nil {
			continue
		}
		var seat model.ScheduleSeat
		if err := tx.First(&seat, *item.ScheduleSeatID).Error; err != nil {
			continue
		}
		if err := tx.Model(&seat).Updates(map[string]any{
			"status":     SeatAvailable,
			"held_by":    "",
			"expired_at": nil,
		}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot release seat", err)
		}
		affectedSchedules[seat.ScheduleID] = true
	}

	tx.Commit()

	for scheduleId := range affectedSchedules {
		BroadcastScheduleSeats(scheduleId)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"bookingCode": booking.PublicCode,
		"status":      newStatus,
	})
}

func GetMyBookings(c *fiber.Ctx) error {
	customer, ok := c.Locals("customer").(*model.Customer)
	if !ok || customer == nil {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Login required", nil)
	}

	var filter model.FilterBooking
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	query := database.DB.Model(&model.Booking{}).Where("customer_id = ?", customer.ID)
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var bookings []model.Booking
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Items.HotelDetail").
		Preload("Items.Room.RoomProperty.Property").
		Preload("Items.ScheduleSeat.Schedule.Route.FromProvince").
		Preload("Items.ScheduleSeat.Schedule.Route.ToProvince").
		Order("id DESC").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       bookings,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

// GetBookingDetail looks a booking up by its public code. Guests can read
// their own booking with just the code.
func GetBookingDetail(c *fiber.Ctx) error {
	code := c.Params("code")

	var booking model.Booking
	if err := database.DB.
		Preload("Items.HotelDetail").
		Preload("Items.Room.RoomProperty.Property").
		Preload("Items.ScheduleSeat.Schedule.Route.FromProvince").
		Preload("Items.ScheduleSeat.Schedule.Route.ToProvince").
		Where("public_code = ?", code).
		First(&booking).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, booking)
}

// GetBookings is the admin listing with filters.
func GetBookings(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	var filter model.FilterBooking
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	query := database.DB.Model(&model.Booking{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ItemType != "" {
		query = query.Where("id IN (?)",
			database.DB.Model(&model.BookingItem{}).Select("booking_id").Where("item_type = ?", filter.ItemType))
	}
	if filter.StartDate != "" {
		if date, err := utils.ParseDate(filter.StartDate); err == nil {
			query = query.Where("bookings.created_at >= ?", date)
		}
	}
	if filter.EndDate != "" {
		if date, err := utils.ParseDate(filter.EndDate); err == nil {
			query = query.Where("bookings.created_at < ?", date.AddDate(0, 0, 1))
		}
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var bookings []model.Booking
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Customer").
		Preload("Items").
		Order("id DESC").
		Find(&bookings).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       bookings,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

// ExpireBookings cancels unpaid bookings past their deadline and frees the
// inventory they were holding.
func ExpireBookings() {
	db := database.DB
	now := time.Now()

	var stale []model.Booking
	if err := db.
		Preload("Items").
		Where("status = ? AND expires_at < ?", constants.BOOKING_PENDING, now).
		Find(&stale).Error; err != nil || len(stale) == 0 {
		return
	}

	tx := db.Begin()
	affectedSchedules := make(map[uint]bool)

	for _, booking := range stale {
		if err := tx.Model(&model.Booking{}).
			Where("id = ? AND status = ?", booking.ID, constants.BOOKING_PENDING).
			Updates(map[string]any{
				"status":       constants.BOOKING_CANCELLED,
				"cancelled_at": now,
				"expires_at":   nil,
			}).Error; err != nil {
			tx.Rollback()
			return
		}

		for _, item := range booking.Items {
			if item.ItemType != constants.ITEM_BUS_SEAT || item.ScheduleSeatID == nil {
				continue
			}
			var seat model.ScheduleSeat
			if err := tx.First(&seat, *item.ScheduleSeatID).Error; err != nil {
				continue
			}
			if err := tx.Model(&seat).Updates(map[string]any{
				"status":     SeatAvailable,
				"held_by":    "",
				"expired_at": nil,
			}).Error; err != nil {
				tx.Rollback()
				return
			}
			affectedSchedules[seat.ScheduleID] = true
		}
	}

	tx.Commit()

	for scheduleId := range affectedSchedules {
		BroadcastScheduleSeats(scheduleId)
	}
}
