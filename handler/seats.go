package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/helper"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm/clause"
)

var (
	seatConnections = make(map[uint]map[*websocket.Conn]bool)
	seatMutex       sync.Mutex
)

const HoldTimeout = 10 * time.Minute

const (
	SeatAvailable = "AVAILABLE"
	SeatHeld      = "HELD"
	SeatSold      = "SOLD"
)

type SeatUI struct {
	Id        uint       `json:"id"`
	Label     string     `json:"label"`
	Type      string     `json:"type"`
	Level     int        `json:"level"`
	Status    string     `json:"status"`
	HeldBy    string     `json:"heldBy,omitempty"`
	ExpiredAt *time.Time `json:"expiredAt,omitempty"`
}

func seatUIsByLevel(seats []model.ScheduleSeat) map[string][]SeatUI {
	result := make(map[string][]SeatUI)
	for _, s := range seats {
		key := fmt.Sprintf("level_%d", s.Level)
		result[key] = append(result[key], SeatUI{
			Id:        s.ID,
			Label:     s.SeatNumber,
			Type:      s.SeatType,
			Level:     s.Level,
			Status:    s.Status,
			HeldBy:    s.HeldBy,
			ExpiredAt: s.ExpiredAt,
		})
	}
	return result
}

// GetScheduleSeats returns the seat map of a departure grouped by deck.
func GetScheduleSeats(c *fiber.Ctx) error {
	code := c.Params("code")

	var schedule model.BusSchedule
	if err := database.DB.Where("public_code = ?", code).First(&schedule).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	var seats []model.ScheduleSeat
	if err := database.DB.
		Preload("Seat").
		Where("schedule_id = ?", schedule.ID).
		Order("level, seat_number").
		Find(&seats).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"schedule": schedule,
		"seats":    seatUIsByLevel(seats),
	})
}

// BroadcastScheduleSeats publishes the full seat map of a schedule. Local
// sockets get it the same way remote instances do: through the per-schedule
// relay subscribed to redis, the single writer to every socket.
func BroadcastScheduleSeats(scheduleId uint) {
	db := database.DB

	var seats []model.ScheduleSeat
	if err := db.
		Where("schedule_id = ?", scheduleId).
		Order("level, seat_number").
		Find(&seats).Error; err != nil {
		log.Printf("Error loading seats for broadcast: %v", err)
		return
	}

	PublishSeatEvent(scheduleId, seatUIsByLevel(seats))
}

// BroadcastSeatChange publishes only the seats that changed.
func BroadcastSeatChange(scheduleId uint, updatedSeats []model.ScheduleSeat) {
	PublishSeatEvent(scheduleId, seatUIsByLevel(updatedSeats))
}

// PublishSeatEvent pushes the seat payload onto the schedule's redis
// channel; every instance's relay delivers it to its own sockets.
func PublishSeatEvent(scheduleId uint, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		return
	}
	if err := redisClient.Publish(context.Background(),
		fmt.Sprintf("schedule:%d", scheduleId), data).Err(); err != nil {
		log.Printf("Redis publish failed: %v", err)
	}
}

// sortedSeatIds copies and sorts so concurrent holds lock seat rows in one
// global order and cannot deadlock each other.
func sortedSeatIds(ids []uint) []uint {
	out := append([]uint(nil), ids...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func HoldSeats(c *fiber.Ctx) error {
	db := database.DB
	code := c.Params("code")

	input, ok := c.Locals("inputHoldSeats").(model.HoldSeatsInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	customer, _ := c.Locals("customer").(*model.Customer)
	heldBy := ""
	if customer != nil {
		heldBy = fmt.Sprintf("USER_%d", customer.ID)
	} else if input.GuestSessionId != "" {
		heldBy = input.GuestSessionId
	} else {
		heldBy = "GUEST_" + uuid.New().String()
	}

	tx := db.Begin()

	var schedule model.BusSchedule
	if err := tx.Where("public_code = ?", code).First(&schedule).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Schedule not found", err)
	}
	if schedule.Status != constants.SCHEDULE_SCHEDULED {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Schedule is not open for sale", nil)
	}
	if schedule.DepartureTime.Before(time.Now()) {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Schedule already departed", nil)
	}

	expTime := time.Now().Add(HoldTimeout)
	var updatedSeats []model.ScheduleSeat
	for _, seatId := range sortedSeatIds(input.SeatIds) {
		var seat model.ScheduleSeat
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND schedule_id = ? AND status = ?", seatId, schedule.ID, SeatAvailable).
			First(&seat).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusConflict, fmt.Sprintf("Seat %d not available", seatId), err)
		}

		if err := tx.Model(&seat).Updates(map[string]any{
			"status":     SeatHeld,
			"held_by":    heldBy,
			"expired_at": expTime,
		}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot hold seat", err)
		}
		seat.Status = SeatHeld
		seat.HeldBy = heldBy
		seat.ExpiredAt = &expTime
		updatedSeats = append(updatedSeats, seat)
	}

	tx.Commit()
	BroadcastSeatChange(schedule.ID, updatedSeats)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"heldSeatIds": input.SeatIds,
		"expiresAt":   expTime,
		"heldBy":      heldBy,
	})
}

func ReleaseSeats(c *fiber.Ctx) error {
	db := database.DB
	code := c.Params("code")

	input, ok := c.Locals("inputReleaseSeats").(model.ReleaseSeatsInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	var schedule model.BusSchedule
	if err := db.Where("public_code = ?", code).First(&schedule).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Schedule not found", err)
	}

	tx := db.Begin()

	var updatedSeats []model.ScheduleSeat
	for _, seatId := range sortedSeatIds(input.SeatIds) {
		var seat model.ScheduleSeat
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND schedule_id = ? AND status = ? AND held_by = ?",
				seatId, schedule.ID, SeatHeld, input.HeldBy).
			First(&seat).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusBadRequest,
				fmt.Sprintf("Seat %d is not held by this session", seatId), err)
		}

		if err := tx.Model(&seat).Updates(map[string]any{
			"status":     SeatAvailable,
			"held_by":    "",
			"expired_at": nil,
		}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot release seat", err)
		}
		seat.Status = SeatAvailable
		seat.HeldBy = ""
		seat.ExpiredAt = nil
		updatedSeats = append(updatedSeats, seat)
	}

	tx.Commit()
	BroadcastSeatChange(schedule.ID, updatedSeats)

	return utils.SuccessResponse(c, fiber.StatusOK, "Released")
}

func GetHeldSeatsBySession(c *fiber.Ctx) error {
	code := c.Params("code")
	sessionId := c.Query("sessionId")

	if sessionId == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Session ID required", nil)
	}

	var schedule model.BusSchedule
	if err := database.DB.Where("public_code = ?", code).First(&schedule).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Schedule not found", err)
	}

	var heldSeats []model.ScheduleSeat
	if err := database.DB.
		Where("schedule_id = ? AND status = ? AND held_by = ? AND expired_at > ?",
			schedule.ID, SeatHeld, sessionId, time.Now()).
		Find(&heldSeats).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Error fetching held seats", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, heldSeats)
}

// PurchaseSeats converts held seats into a pending booking. The booking has
// 15 minutes to be paid before the expiry sweep releases the seats again.
func PurchaseSeats(c *fiber.Ctx) error {
	db := database.DB
	code := c.Params("code")

	input, ok := c.Locals("inputPurchaseSeats").(model.PurchaseSeatsInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	tx := db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	var schedule model.BusSchedule
	if err := tx.Preload("Route.FromProvince").Preload("Route.ToProvince").
		Where("public_code = ?", code).First(&schedule).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Schedule not found", err)
	}

	var heldSeats []model.ScheduleSeat
	if err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Scopes(helper.SessionHeldSeats(schedule.ID, input.SeatIds, input.HeldBy, time.Now())).
		Find(&heldSeats).Error; err != nil || len(heldSeats) != len(input.SeatIds) {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusConflict, "Some seats are no longer held by this session", nil)
	}

	totalAmount := helper.CalculateSeatsTotal(schedule, heldSeats)

	expiresAt := time.Now().Add(BookingTimeout)
	booking := model.Booking{
		PublicCode:    "BKG-" + uuid.New().String()[:8],
		TotalAmount:   totalAmount,
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

	var items []model.BookingItem
	for _, seat := range heldSeats {
		price := helper.SeatPrice(schedule.Price, seat.SeatType)
		items = append(items, model.BookingItem{
			BookingID:      booking.ID,
			ItemType:       constants.ITEM_BUS_SEAT,
			ScheduleSeatID: utils.Ptr(seat.ID),
			Quantity:       1,
			UnitPrice:      price,
			TotalPrice:     price,
		})

		if err := tx.Model(&seat).Updates(map[string]any{
			"status":     SeatSold,
			"held_by":    "",
			"expired_at": nil,
		}).Error; err != nil {
			tx.Rollback()
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot mark seat as sold", err)
		}
	}

	if err := tx.Create(&items).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot create booking items", err)
	}

	tx.Commit()
	BroadcastScheduleSeats(schedule.ID)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"booking":   booking,
		"items":     items,
		"expiresAt": expiresAt,
	})
}

// ExpireSeats releases holds whose timeout elapsed.
func ExpireSeats() {
	db := database.DB
	now := time.Now()

	var expiredSeats []model.ScheduleSeat
	if err := db.
		Where("status = ? AND expired_at < ?", SeatHeld, now).
		Find(&expiredSeats).Error; err != nil {
		return
	}
	if len(expiredSeats) == 0 {
		return
	}

	tx := db.Begin()
	affectedSchedules := make(map[uint]bool)

	for _, seat := range expiredSeats {
		if err := tx.Model(&model.ScheduleSeat{}).
			Where("id = ? AND status = ?", seat.ID, SeatHeld).
			Updates(map[string]any{
				"status":     SeatAvailable,
				"held_by":    "",
				"expired_at": nil,
			}).Error; err != nil {
			tx.Rollback()
			return
		}
		affectedSchedules[seat.ScheduleID] = true
	}

	tx.Commit()

	for scheduleId := range affectedSchedules {
		BroadcastScheduleSeats(scheduleId)
	}
}

func StartExpireSeatWorker() {
	ticker := time.NewTicker(30 * time.Second)
	go func() {
		for range ticker.C {
			ExpireSeats()
			ExpireBookings()
		}
	}()
}
