package handler

import (
	"errors"
	"fmt"
	"time"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/helper"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func GetRoutes(c *fiber.Ctx) error {
	var routes []model.Route
	if err := database.DB.
		Preload("FromProvince").
		Preload("ToProvince").
		Order("id").
		Find(&routes).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, routes)
}

func CreateRoute(c *fiber.Ctx) error {
	_, isAdmin, _, isTransportOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isTransportOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not a transport owner"))
	}

	input, ok := c.Locals("inputCreateRoute").(model.CreateRouteInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	route := model.Route{
		FromProvinceID: input.FromProvinceID,
		ToProvinceID:   input.ToProvinceID,
		DistanceKm:     input.DistanceKm,
		DurationMin:    input.DurationMin,
	}

	if err := database.DB.Create(&route).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Route already exists for this province pair", err)
	}

	database.DB.Preload("FromProvince").Preload("ToProvince").First(&route, route.ID)
	return utils.SuccessResponse(c, fiber.StatusCreated, route)
}

func DeleteRoute(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	routeId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	var count int64
	database.DB.Model(&model.BusSchedule{}).
		Where("route_id = ? AND status IN ?", routeId, []string{constants.SCHEDULE_SCHEDULED, constants.SCHEDULE_DEPARTED}).
		Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Route still has active schedules", nil)
	}

	if err := database.DB.Delete(&model.Route{}, routeId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, "Deleted")
}

// CreateSchedule creates one departure and materializes its sellable seats.
func CreateSchedule(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	input, ok := c.Locals("inputCreateSchedule").(model.CreateScheduleInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var bus model.Bus
	if err := db.Preload("BusProperty").First(&bus, input.BusID).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Bus does not exist", err, "busId")
	}
	if bus.Status != constants.BUS_ACTIVE {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Bus is not in service", nil, "busId")
	}
	if !helper.OwnsTransportation(db, accountInfo.AccountId, isAdmin, bus.BusProperty.TransportationID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not company owner"))
	}

	var route model.Route
	if err := db.First(&route, input.RouteID).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Route does not exist", err, "routeId")
	}

	if input.DepartureTime.Before(time.Now()) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Departure time is in the past", nil, "departureTime")
	}

	tx := db.Begin()

	schedule := model.BusSchedule{
		PublicCode:    "SCH-" + uuid.New().String()[:8],
		DepartureTime: input.DepartureTime,
		ArrivalTime:   input.DepartureTime.Add(time.Duration(route.DurationMin) * time.Minute),
		Price:         input.Price,
		Status:        constants.SCHEDULE_SCHEDULED,
		BusID:         input.BusID,
		RouteID:       input.RouteID,
	}
	if err := tx.Create(&schedule).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.CreateScheduleSeats(tx, schedule.ID, schedule.BusID); err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot create schedule seats", err)
	}

	tx.Commit()
	return utils.SuccessResponse(c, fiber.StatusCreated, schedule)
}

// CreateScheduleBatch expands date range x daily time slots x buses into one
// schedule each. Everything succeeds or nothing does.
func CreateScheduleBatch(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	input, ok := c.Locals("inputCreateScheduleBatch").(model.CreateScheduleBatchInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	startDate, err := utils.ParseDate(input.StartDate)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid start date", err, "startDate")
	}
	endDate, err := utils.ParseDate(input.EndDate)
	if err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid end date", err, "endDate")
	}
	if endDate.Before(startDate) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "End date before start date", nil, "endDate")
	}

	slots := make([]time.Duration, 0, len(input.TimeSlots))
	for _, slot := range input.TimeSlots {
		t, err := time.Parse("15:04", slot)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid time slot %q", slot), err, "timeSlots")
		}
		slots = append(slots, time.Duration(t.Hour())*time.Hour+time.Duration(t.Minute())*time.Minute)
	}

	db := database.DB

	var route model.Route
	if err := db.First(&route, input.RouteID).Error; err != nil {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Route does not exist", err, "routeId")
	}

	var buses []model.Bus
	if err := db.Preload("BusProperty").Where("id IN ?", input.BusIDs).Find(&buses).Error; err != nil || len(buses) != len(input.BusIDs) {
		return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Some buses do not exist", err, "busIds")
	}
	for _, bus := range buses {
		if !helper.OwnsTransportation(db, accountInfo.AccountId, isAdmin, bus.BusProperty.TransportationID) {
			return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not company owner"))
		}
		if bus.Status != constants.BUS_ACTIVE {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest,
				fmt.Sprintf("Bus %s is not in service", bus.LicensePlate), nil, "busIds")
		}
	}

	tx := db.Begin()

	var created []model.BusSchedule
	for date := startDate; !date.After(endDate); date = date.AddDate(0, 0, 1) {
		for _, slot := range slots {
			departure := date.Add(slot)
			if departure.Before(time.Now()) {
				continue
			}
			for _, bus := range buses {
				schedule := model.BusSchedule{
					PublicCode:    "SCH-" + uuid.New().String()[:8],
					DepartureTime: departure,
					ArrivalTime:   departure.Add(time.Duration(route.DurationMin) * time.Minute),
					Price:         input.Price,
					Status:        constants.SCHEDULE_SCHEDULED,
					BusID:         bus.ID,
					RouteID:       input.RouteID,
				}
				if err := tx.Create(&schedule).Error; err != nil {
					tx.Rollback()
					return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
				}
				if err := helper.CreateScheduleSeats(tx, schedule.ID, bus.ID); err != nil {
					tx.Rollback()
					return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot create schedule seats", err)
				}
				created = append(created, schedule)
			}
		}
	}

	if len(created) == 0 {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "No schedules fall inside the given window", nil)
	}

	tx.Commit()
	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"count":     len(created),
		"schedules": created,
	})
}

func UpdateSchedule(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	scheduleId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}
	input, ok := c.Locals("inputUpdateSchedule").(model.UpdateScheduleInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var schedule model.BusSchedule
	if err := db.Preload("Bus.BusProperty").Preload("Route").First(&schedule, scheduleId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}
	if !helper.OwnsTransportation(db, accountInfo.AccountId, isAdmin, schedule.Bus.BusProperty.TransportationID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not company owner"))
	}

	// sold seats pin departure time and price
	var soldCount int64
	db.Model(&model.ScheduleSeat{}).
		Where("schedule_id = ? AND status = ?", schedule.ID, SeatSold).
		Count(&soldCount)

	if input.DepartureTime != nil {
		if soldCount > 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Cannot reschedule after seats were sold", nil, "departureTime")
		}
		schedule.DepartureTime = *input.DepartureTime
		schedule.ArrivalTime = input.DepartureTime.Add(time.Duration(schedule.Route.DurationMin) * time.Minute)
	}
	if input.Price != nil {
		if soldCount > 0 {
			return utils.ErrorResponseHaveKey(c, fiber.StatusConflict, "Cannot reprice after seats were sold", nil, "price")
		}
		schedule.Price = *input.Price
	}
	if input.Status != nil {
		schedule.Status = *input.Status
	}

	if err := db.Save(&schedule).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, schedule)
}

// SearchSchedules is the consumer lookup: from province, to province, date.
func SearchSchedules(c *fiber.Ctx) error {
	var filter model.FilterSchedule
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid query", err)
	}

	db := database.DB
	query := db.Model(&model.BusSchedule{}).
		Joins("JOIN routes ON routes.id = bus_schedules.route_id")

	if filter.FromProvinceID != 0 {
		query = query.Where("routes.from_province_id = ?", filter.FromProvinceID)
	}
	if filter.ToProvinceID != 0 {
		query = query.Where("routes.to_province_id = ?", filter.ToProvinceID)
	}
	if filter.Date != "" {
		date, err := utils.ParseDate(filter.Date)
		if err != nil {
			return utils.ErrorResponseHaveKey(c, fiber.StatusBadRequest, "Invalid date", err, "date")
		}
		query = query.Where("bus_schedules.departure_time >= ? AND bus_schedules.departure_time < ?",
			date, date.AddDate(0, 0, 1))
	}
	if filter.Status != "" {
		query = query.Where("bus_schedules.status = ?", filter.Status)
	} else {
		query = query.Where("bus_schedules.status = ?", constants.SCHEDULE_SCHEDULED)
	}
	if filter.BusID != 0 {
		query = query.Where("bus_schedules.bus_id = ?", filter.BusID)
	}

	var totalCount int64
	if err := query.Count(&totalCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var schedules []model.BusSchedule
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).
		Preload("Bus.BusProperty.Transportation").
		Preload("Route.FromProvince").
		Preload("Route.ToProvince").
		Order("bus_schedules.departure_time").
		Find(&schedules).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	results := make([]model.ScheduleSearchResult, 0, len(schedules))
	for _, s := range schedules {
		var total, available int64
		db.Model(&model.ScheduleSeat{}).Where("schedule_id = ?", s.ID).Count(&total)
		db.Model(&model.ScheduleSeat{}).Where("schedule_id = ? AND status = ?", s.ID, SeatAvailable).Count(&available)

		fillRate := 0.0
		if total > 0 {
			fillRate = float64(total-available) / float64(total) * 100
		}
		results = append(results, model.ScheduleSearchResult{
			BusSchedule:    s,
			CompanyName:    s.Bus.BusProperty.Transportation.Name,
			BusType:        s.Bus.BusProperty.Name,
			AvailableSeats: available,
			TotalSeats:     total,
			FillRate:       fillRate,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       results,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetScheduleDetail(c *fiber.Ctx) error {
	code := c.Params("code")

	var schedule model.BusSchedule
	if err := database.DB.
		Preload("Bus.BusProperty.Transportation").
		Preload("Route.FromProvince").
		Preload("Route.ToProvince").
		Where("public_code = ?", code).
		First(&schedule).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, schedule)
}

// CancelSchedule cancels a departure and refunds its sold seats' bookings.
func CancelSchedule(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)

	scheduleId, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("parse data to locals fail"))
	}

	db := database.DB

	var schedule model.BusSchedule
	if err := db.Preload("Bus.BusProperty").First(&schedule, scheduleId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.RECORD_NOT_FOUND, err)
	}
	if !helper.OwnsTransportation(db, accountInfo.AccountId, isAdmin, schedule.Bus.BusProperty.TransportationID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not company owner"))
	}
	if schedule.Status == constants.SCHEDULE_DEPARTED || schedule.Status == constants.SCHEDULE_ARRIVED {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Schedule already departed", nil)
	}

	tx := db.Begin()

	if err := tx.Model(&schedule).Update("status", constants.SCHEDULE_CANCELLED).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// mark bookings holding sold seats on this departure for refund
	var soldSeatIds []uint
	tx.Model(&model.ScheduleSeat{}).
		Where("schedule_id = ? AND status = ?", schedule.ID, SeatSold).
		Pluck("id", &soldSeatIds)

	if len(soldSeatIds) > 0 {
		var bookingIds []uint
		tx.Model(&model.BookingItem{}).
			Where("schedule_seat_id IN ?", soldSeatIds).
			Distinct().
			Pluck("booking_id", &bookingIds)

		if len(bookingIds) > 0 {
			if err := tx.Model(&model.Booking{}).
				Where("id IN ? AND status = ?", bookingIds, constants.BOOKING_CONFIRMED).
				Update("status", constants.BOOKING_REFUNDED).Error; err != nil {
				tx.Rollback()
				return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
			}
		}
	}

	if err := tx.Model(&model.ScheduleSeat{}).
		Where("schedule_id = ?", schedule.ID).
		Updates(map[string]any{
			"status":     SeatAvailable,
			"held_by":    "",
			"expired_at": nil,
		}).Error; err != nil {
		tx.Rollback()
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	tx.Commit()
	BroadcastScheduleSeats(schedule.ID)

	return utils.SuccessResponse(c, fiber.StatusOK, schedule)
}
