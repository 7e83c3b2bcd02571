package helper

import (
	"time"
	"travel_booking/constants"
	"travel_booking/model"

	"gorm.io/gorm"
)

// RangesOverlap reports whether two half-open [start, end) ranges intersect.
// Back-to-back stays (checkout day == next check-in day) do not conflict.
func RangesOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// Nights counts whole nights in [checkIn, checkOut).
func Nights(checkIn, checkOut time.Time) int {
	return int(checkOut.Sub(checkIn).Hours() / 24)
}

// RoomRangeConflicts counts live bookings of the room whose stay overlaps the
// proposed [checkIn, checkOut). Caller must hold the room row lock so the
// check-then-insert is race free.
func RoomRangeConflicts(tx *gorm.DB, roomId uint, checkIn, checkOut time.Time) (int64, error) {
	var count int64
	err := tx.Model(&model.BookingHotelDetail{}).
		Joins("JOIN booking_items ON booking_items.id = booking_hotel_details.booking_item_id").
		Joins("JOIN bookings ON bookings.id = booking_items.booking_id").
		Where("booking_items.room_id = ?", roomId).
		Where("bookings.status IN ?", []string{constants.BOOKING_PENDING, constants.BOOKING_CONFIRMED}).
		Where("booking_hotel_details.check_in < ? AND booking_hotel_details.check_out > ?", checkOut, checkIn).
		Count(&count).Error
	return count, err
}

// SessionHeldSeats scopes a seat query to the session's live holds. A hold
// whose expiry passed is excluded, so a lapsed hold cannot be purchased in
// the window before the sweep frees it.
func SessionHeldSeats(scheduleId uint, seatIds []uint, heldBy string, now time.Time) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("schedule_id = ? AND id IN ? AND status = ? AND held_by = ? AND expired_at > ?",
			scheduleId, seatIds, "HELD", heldBy, now)
	}
}

// CalculateSeatsTotal sums seat prices for the schedule: base price with a
// per-seat-type modifier.
func CalculateSeatsTotal(schedule model.BusSchedule, seats []model.ScheduleSeat) float64 {
	var total float64
	for _, s := range seats {
		total += SeatPrice(schedule.Price, s.SeatType)
	}
	return total
}

func SeatPrice(basePrice float64, seatType string) float64 {
	switch seatType {
	case "vip":
		return basePrice * 1.2
	case "sleeper":
		return basePrice * 1.5
	default:
		return basePrice
	}
}
