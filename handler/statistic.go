package handler

import (
	"errors"
	"time"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/helper"
	"travel_booking/model"
	"travel_booking/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func revenueBetween(start, end time.Time) float64 {
	var revenue float64
	database.DB.Model(&model.Booking{}).
		Where("status = ? AND paid_at >= ? AND paid_at < ?", constants.BOOKING_CONFIRMED, start, end).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&revenue)
	return revenue
}

// GetAdminStatistics is the platform dashboard: today's numbers with growth
// against yesterday, plus totals.
func GetAdminStatistics(c *fiber.Ctx) error {
	_, isAdmin, _, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_ADMIN, errors.New("not admin"))
	}

	db := database.DB

	today := time.Now().Truncate(24 * time.Hour)
	yesterday := today.AddDate(0, 0, -1)
	tomorrow := today.AddDate(0, 0, 1)

	todayRevenue := revenueBetween(today, tomorrow)
	yesterdayRevenue := revenueBetween(yesterday, today)

	var todayBookings, yesterdayBookings int64
	db.Model(&model.Booking{}).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Count(&todayBookings)
	db.Model(&model.Booking{}).
		Where("created_at >= ? AND created_at < ?", yesterday, today).
		Count(&yesterdayBookings)

	var totalCustomers, totalProperties, totalCompanies, totalPlaces int64
	db.Model(&model.Customer{}).Count(&totalCustomers)
	db.Model(&model.Property{}).Count(&totalProperties)
	db.Model(&model.Transportation{}).Count(&totalCompanies)
	db.Model(&model.Place{}).Count(&totalPlaces)

	var newCustomersToday int64
	db.Model(&model.Customer{}).
		Where("created_at >= ? AND created_at < ?", today, tomorrow).
		Count(&newCustomersToday)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"todayRevenue":      todayRevenue,
		"revenueGrowth":     utils.CalculateGrowth(todayRevenue, yesterdayRevenue),
		"todayBookings":     todayBookings,
		"bookingGrowth":     utils.CalculateGrowth(float64(todayBookings), float64(yesterdayBookings)),
		"newCustomersToday": newCustomersToday,
		"totalCustomers":    totalCustomers,
		"totalProperties":   totalProperties,
		"totalCompanies":    totalCompanies,
		"totalPlaces":       totalPlaces,
	})
}

// GetHotelOwnerStatistics reports occupancy across the owner's properties
// for the next 30 nights.
func GetHotelOwnerStatistics(c *fiber.Ctx) error {
	accountInfo, isAdmin, isHotelOwner, _ := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isHotelOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not a hotel owner"))
	}

	db := database.DB

	roomQuery := db.Model(&model.Room{}).
		Joins("JOIN room_properties ON room_properties.id = rooms.room_property_id").
		Joins("JOIN properties ON properties.id = room_properties.property_id")
	if !isAdmin {
		roomQuery = roomQuery.Where("properties.owner_id = ?", accountInfo.AccountId)
	}

	var totalRooms int64
	roomQuery.Count(&totalRooms)

	windowStart := time.Now().Truncate(24 * time.Hour)
	windowEnd := windowStart.AddDate(0, 0, 30)

	bookedQuery := db.Model(&model.BookingHotelDetail{}).
		Joins("JOIN booking_items ON booking_items.id = booking_hotel_details.booking_item_id").
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Joins("JOIN rooms ON rooms.id = booking_items.room_id").
		Joins("JOIN room_properties ON room_properties.id = rooms.room_property_id").
		Joins("JOIN properties ON properties.id = room_properties.property_id").
		Where("bookings.status IN ?", []string{constants.BOOKING_PENDING, constants.BOOKING_CONFIRMED}).
		Where("booking_hotel_details.check_in < ? AND booking_hotel_details.check_out > ?", windowEnd, windowStart)
	if !isAdmin {
		bookedQuery = bookedQuery.Where("properties.owner_id = ?", accountInfo.AccountId)
	}

	var bookedNights int64
	bookedQuery.Select("COALESCE(SUM(booking_hotel_details.nights), 0)").Scan(&bookedNights)

	occupancy := 0.0
	if totalRooms > 0 {
		occupancy = float64(bookedNights) / float64(totalRooms*30) * 100
	}

	revenueQuery := db.Model(&model.Booking{}).
		Joins("JOIN booking_items ON booking_items.booking_id = bookings.id").
		Joins("JOIN rooms ON rooms.id = booking_items.room_id").
		Joins("JOIN room_properties ON room_properties.id = rooms.room_property_id").
		Joins("JOIN properties ON properties.id = room_properties.property_id").
		Where("bookings.status = ?", constants.BOOKING_CONFIRMED)
	if !isAdmin {
		revenueQuery = revenueQuery.Where("properties.owner_id = ?", accountInfo.AccountId)
	}

	var revenue float64
	revenueQuery.Select("COALESCE(SUM(booking_items.total_price), 0)").Scan(&revenue)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totalRooms":       totalRooms,
		"bookedNights30d":  bookedNights,
		"occupancyPercent": occupancy,
		"totalRevenue":     revenue,
	})
}

// GetTransportOwnerStatistics reports fill rates across the owner's
// upcoming departures.
func GetTransportOwnerStatistics(c *fiber.Ctx) error {
	accountInfo, isAdmin, _, isTransportOwner := helper.GetInfoAccountFromToken(c)
	if !isAdmin && !isTransportOwner {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.NOT_OWNER, errors.New("not a transport owner"))
	}

	db := database.DB

	ownedSchedules := func() *gorm.DB {
		q := db.Model(&model.BusSchedule{}).
			Joins("JOIN buses ON buses.id = bus_schedules.bus_id").
			Joins("JOIN bus_properties ON bus_properties.id = buses.bus_property_id").
			Joins("JOIN transportations ON transportations.id = bus_properties.transportation_id")
		if !isAdmin {
			q = q.Where("transportations.owner_id = ?", accountInfo.AccountId)
		}
		return q
	}

	var upcoming int64
	ownedSchedules().
		Where("bus_schedules.status = ? AND bus_schedules.departure_time > ?", constants.SCHEDULE_SCHEDULED, time.Now()).
		Count(&upcoming)

	var scheduleIds []uint
	ownedSchedules().Pluck("bus_schedules.id", &scheduleIds)

	var totalSeats, soldSeats int64
	if len(scheduleIds) > 0 {
		db.Model(&model.ScheduleSeat{}).Where("schedule_id IN ?", scheduleIds).Count(&totalSeats)
		db.Model(&model.ScheduleSeat{}).Where("schedule_id IN ? AND status = ?", scheduleIds, SeatSold).Count(&soldSeats)
	}

	fillRate := 0.0
	if totalSeats > 0 {
		fillRate = float64(soldSeats) / float64(totalSeats) * 100
	}

	var revenue float64
	if len(scheduleIds) > 0 {
		db.Model(&model.BookingItem{}).
			Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
			Joins("JOIN schedule_seats ON schedule_seats.id = booking_items.schedule_seat_id").
			Where("bookings.status = ? AND schedule_seats.schedule_id IN ?", constants.BOOKING_CONFIRMED, scheduleIds).
			Select("COALESCE(SUM(booking_items.total_price), 0)").
			Scan(&revenue)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"upcomingSchedules": upcoming,
		"totalSeats":        totalSeats,
		"soldSeats":         soldSeats,
		"fillRatePercent":   fillRate,
		"totalRevenue":      revenue,
	})
}
