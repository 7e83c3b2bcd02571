package helper

import (
	"path/filepath"
	"testing"
	"time"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func seedRoomBooking(t *testing.T, db *gorm.DB, roomId uint, status string, checkIn, checkOut time.Time) {
	t.Helper()
	booking := model.Booking{
		PublicCode:  "BKG-" + checkIn.Format("0102") + status,
		Status:      status,
		TotalAmount: 100,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("create booking: %v", err)
	}
	item := model.BookingItem{
		BookingID:  booking.ID,
		ItemType:   constants.ITEM_HOTEL_ROOM,
		RoomID:     &roomId,
		UnitPrice:  100,
		TotalPrice: 100,
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("create booking item: %v", err)
	}
	detail := model.BookingHotelDetail{
		BookingItemID: item.ID,
		CheckIn:       checkIn,
		CheckOut:      checkOut,
		Guests:        2,
	}
	if err := db.Create(&detail).Error; err != nil {
		t.Fatalf("create hotel detail: %v", err)
	}
}

func TestRoomRangeConflicts(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	const roomId = uint(42)
	seedRoomBooking(t, db, roomId, constants.BOOKING_CONFIRMED, day(5), day(8))

	// overlapping stay conflicts
	count, err := RoomRangeConflicts(db, roomId, day(7), day(10))
	if err != nil {
		t.Fatalf("conflict query: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 conflict, got %d", count)
	}

	// back-to-back stay does not: checkout day frees the room
	count, err = RoomRangeConflicts(db, roomId, day(8), day(11))
	if err != nil {
		t.Fatalf("conflict query: %v", err)
	}
	if count != 0 {
		t.Fatalf("abutting stay should not conflict, got %d", count)
	}

	// other rooms are unaffected
	count, err = RoomRangeConflicts(db, roomId+1, day(6), day(7))
	if err != nil {
		t.Fatalf("conflict query: %v", err)
	}
	if count != 0 {
		t.Fatalf("different room should not conflict, got %d", count)
	}

	// cancelled bookings do not block the room
	seedRoomBooking(t, db, roomId, constants.BOOKING_CANCELLED, day(10), day(12))
	count, err = RoomRangeConflicts(db, roomId, day(10), day(12))
	if err != nil {
		t.Fatalf("conflict query: %v", err)
	}
	if count != 0 {
		t.Fatalf("cancelled booking should not conflict, got %d", count)
	}

	// a pending hold still blocks
	seedRoomBooking(t, db, roomId, constants.BOOKING_PENDING, day(15), day(17))
	count, err = RoomRangeConflicts(db, roomId, day(16), day(20))
	if err != nil {
		t.Fatalf("conflict query: %v", err)
	}
	if count != 1 {
		t.Fatalf("pending booking should conflict, got %d", count)
	}
}

func TestSessionHeldSeatsExcludesExpired(t *testing.T) {
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	now := time.Now()
	future := now.Add(5 * time.Minute)
	past := now.Add(-time.Minute)

	seats := []model.ScheduleSeat{
		{ScheduleID: 1, SeatID: 1, SeatNumber: "A1", Status: "HELD", HeldBy: "SES_1", ExpiredAt: &future},
		{ScheduleID: 1, SeatID: 2, SeatNumber: "A2", Status: "HELD", HeldBy: "SES_1", ExpiredAt: &past},
		{ScheduleID: 1, SeatID: 3, SeatNumber: "A3", Status: "HELD", HeldBy: "SES_2", ExpiredAt: &future},
		{ScheduleID: 1, SeatID: 4, SeatNumber: "A4", Status: "SOLD", HeldBy: "SES_1", ExpiredAt: nil},
	}
	for i := range seats {
		if err := db.Create(&seats[i]).Error; err != nil {
			t.Fatalf("seed seat %s: %v", seats[i].SeatNumber, err)
		}
	}

	ids := []uint{seats[0].ID, seats[1].ID, seats[2].ID, seats[3].ID}

	var held []model.ScheduleSeat
	if err := db.Scopes(SessionHeldSeats(1, ids, "SES_1", now)).Find(&held).Error; err != nil {
		t.Fatalf("query held seats: %v", err)
	}

	if len(held) != 1 {
		t.Fatalf("live holds = %d, want 1 (lapsed, foreign and sold seats excluded)", len(held))
	}
	if held[0].SeatNumber != "A1" {
		t.Fatalf("live hold = %s, want A1", held[0].SeatNumber)
	}
}
