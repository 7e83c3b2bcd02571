package database

import (
	"path/filepath"
	"testing"
	"travel_booking/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDBWithFK(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestRoomNumberScopedToRoomType(t *testing.T) {
	db := openTestDB(t)

	first := model.Room{RoomNumber: "101", Status: "available", RoomPropertyID: 1}
	if err := db.Create(&first).Error; err != nil {
		t.Fatalf("create room: %v", err)
	}

	// same number under a different room type is a different physical room
	other := model.Room{RoomNumber: "101", Status: "available", RoomPropertyID: 2}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("room number should repeat across room types: %v", err)
	}

	dup := model.Room{RoomNumber: "101", Status: "available", RoomPropertyID: 1}
	if err := db.Create(&dup).Error; err == nil {
		t.Fatal("duplicate room number within one room type must be rejected")
	}
}

func TestBusSeatUniquePerBus(t *testing.T) {
	db := openTestDB(t)

	if err := db.Create(&model.BusSeat{SeatNumber: "A1", BusID: 1, Row: 1, Column: 1}).Error; err != nil {
		t.Fatalf("create seat: %v", err)
	}
	if err := db.Create(&model.BusSeat{SeatNumber: "A1", BusID: 2, Row: 1, Column: 1}).Error; err != nil {
		t.Fatalf("seat number should repeat across buses: %v", err)
	}
	if err := db.Create(&model.BusSeat{SeatNumber: "A1", BusID: 1, Row: 1, Column: 1}).Error; err == nil {
		t.Fatal("duplicate seat number on one bus must be rejected")
	}
}

func TestScheduleSeatUniquePerSchedule(t *testing.T) {
	db := openTestDB(t)

	if err := db.Create(&model.ScheduleSeat{ScheduleID: 1, SeatID: 1, SeatNumber: "A1", Status: "AVAILABLE"}).Error; err != nil {
		t.Fatalf("create schedule seat: %v", err)
	}
	// the same physical seat on another departure is a fresh sellable unit
	if err := db.Create(&model.ScheduleSeat{ScheduleID: 2, SeatID: 1, SeatNumber: "A1", Status: "AVAILABLE"}).Error; err != nil {
		t.Fatalf("seat should be sellable on another schedule: %v", err)
	}
	if err := db.Create(&model.ScheduleSeat{ScheduleID: 1, SeatID: 1, SeatNumber: "A1", Status: "AVAILABLE"}).Error; err == nil {
		t.Fatal("one seat must map to at most one sellable unit per schedule")
	}
}

func TestSeatStatusGuardPreventsDoubleSell(t *testing.T) {
	db := openTestDB(t)

	seat := model.ScheduleSeat{ScheduleID: 1, SeatID: 1, SeatNumber: "A1", Status: "AVAILABLE"}
	if err := db.Create(&seat).Error; err != nil {
		t.Fatalf("create seat: %v", err)
	}

	// first session takes the hold
	res := db.Model(&model.ScheduleSeat{}).
		Where("id = ? AND status = ?", seat.ID, "AVAILABLE").
		Updates(map[string]any{"status": "HELD", "held_by": "USER_1"})
	if res.Error != nil || res.RowsAffected != 1 {
		t.Fatalf("first hold should take the seat, affected=%d err=%v", res.RowsAffected, res.Error)
	}

	// second session races for the same seat and loses
	res = db.Model(&model.ScheduleSeat{}).
		Where("id = ? AND status = ?", seat.ID, "AVAILABLE").
		Updates(map[string]any{"status": "HELD", "held_by": "USER_2"})
	if res.Error != nil {
		t.Fatalf("second hold errored: %v", res.Error)
	}
	if res.RowsAffected != 0 {
		t.Fatal("held seat must not be holdable by another session")
	}

	// purchase is guarded the same way: only the holder's session matches
	res = db.Model(&model.ScheduleSeat{}).
		Where("id = ? AND status = ? AND held_by = ?", seat.ID, "HELD", "USER_2").
		Update("status", "SOLD")
	if res.RowsAffected != 0 {
		t.Fatal("foreign hold must not be purchasable")
	}
	res = db.Model(&model.ScheduleSeat{}).
		Where("id = ? AND status = ? AND held_by = ?", seat.ID, "HELD", "USER_1").
		Update("status", "SOLD")
	if res.Error != nil || res.RowsAffected != 1 {
		t.Fatalf("holder purchase should succeed, affected=%d err=%v", res.RowsAffected, res.Error)
	}

	// sold is terminal
	res = db.Model(&model.ScheduleSeat{}).
		Where("id = ? AND status = ?", seat.ID, "AVAILABLE").
		Updates(map[string]any{"status": "HELD", "held_by": "USER_3"})
	if res.RowsAffected != 0 {
		t.Fatal("sold seat must not be holdable")
	}
}

func TestProvinceDeleteNullsPlace(t *testing.T) {
	db := openTestDBWithFK(t)

	province := model.Province{Name: "Kampot"}
	if err := db.Create(&province).Error; err != nil {
		t.Fatalf("create province: %v", err)
	}
	place := model.Place{Name: "Bokor", Slug: "bokor", ProvinceID: &province.ID}
	if err := db.Create(&place).Error; err != nil {
		t.Fatalf("create place: %v", err)
	}

	if err := db.Delete(&model.Province{}, province.ID).Error; err != nil {
		t.Fatalf("delete province: %v", err)
	}

	var got model.Place
	if err := db.First(&got, place.ID).Error; err != nil {
		t.Fatalf("place must survive province deletion: %v", err)
	}
	if got.ProvinceID != nil {
		t.Fatalf("place province_id should be nulled, got %v", *got.ProvinceID)
	}
}

func TestTripDeleteCascades(t *testing.T) {
	db := openTestDBWithFK(t)

	customer := model.Customer{UserName: "dara", Email: "dara@example.com", Phone: "012345678", Password: "x"}
	if err := db.Create(&customer).Error; err != nil {
		t.Fatalf("create customer: %v", err)
	}
	place := model.Place{Name: "Angkor Wat", Slug: "angkor-wat"}
	if err := db.Create(&place).Error; err != nil {
		t.Fatalf("create place: %v", err)
	}

	trip := model.Trip{Name: "Weekend", CustomerID: customer.ID}
	if err := db.Create(&trip).Error; err != nil {
		t.Fatalf("create trip: %v", err)
	}
	day := model.TripDay{TripID: trip.ID, DayIndex: 1}
	if err := db.Create(&day).Error; err != nil {
		t.Fatalf("create trip day: %v", err)
	}
	visit := model.TripPlace{TripDayID: day.ID, PlaceID: place.ID, VisitOrder: 1}
	if err := db.Create(&visit).Error; err != nil {
		t.Fatalf("create trip place: %v", err)
	}

	if err := db.Delete(&model.Trip{}, trip.ID).Error; err != nil {
		t.Fatalf("delete trip: %v", err)
	}

	var days, visits int64
	db.Model(&model.TripDay{}).Where("trip_id = ?", trip.ID).Count(&days)
	db.Model(&model.TripPlace{}).Where("trip_day_id = ?", day.ID).Count(&visits)
	if days != 0 || visits != 0 {
		t.Fatalf("trip deletion must cascade, left %d days and %d places", days, visits)
	}

	// the referenced catalog place is untouched
	var gotPlace model.Place
	if err := db.First(&gotPlace, place.ID).Error; err != nil {
		t.Fatalf("catalog place must survive trip deletion: %v", err)
	}
}

func TestTripDayIndexUniquePerTrip(t *testing.T) {
	db := openTestDB(t)

	if err := db.Create(&model.TripDay{TripID: 1, DayIndex: 1}).Error; err != nil {
		t.Fatalf("create trip day: %v", err)
	}
	if err := db.Create(&model.TripDay{TripID: 2, DayIndex: 1}).Error; err != nil {
		t.Fatalf("day index should repeat across trips: %v", err)
	}
	if err := db.Create(&model.TripDay{TripID: 1, DayIndex: 1}).Error; err == nil {
		t.Fatal("duplicate day index within one trip must be rejected")
	}
}

func TestTripShareAccessRecordedOnce(t *testing.T) {
	db := openTestDB(t)

	access := model.TripShareAccess{TripShareID: 1, UserID: 7}
	if err := db.Where(&access).FirstOrCreate(&access).Error; err != nil {
		t.Fatalf("first access: %v", err)
	}

	again := model.TripShareAccess{TripShareID: 1, UserID: 7}
	if err := db.Where(&again).FirstOrCreate(&again).Error; err != nil {
		t.Fatalf("repeat access: %v", err)
	}
	if again.ID != access.ID {
		t.Fatalf("repeat view must reuse the existing row, got %d and %d", access.ID, again.ID)
	}

	var count int64
	db.Model(&model.TripShareAccess{}).Where("trip_share_id = ?", 1).Count(&count)
	if count != 1 {
		t.Fatalf("expected a single access row, got %d", count)
	}
}
