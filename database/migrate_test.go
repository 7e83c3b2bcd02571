package database

import (
	"path/filepath"
	"testing"
	"time"
	"travel_booking/constants"
	"travel_booking/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
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

func TestLegacyScheduleStatusMigration(t *testing.T) {
	db := openTestDB(t)

	departure := time.Now().Add(-48 * time.Hour)
	legacy := model.BusSchedule{
		PublicCode:    "SCH-legacy01",
		DepartureTime: departure,
		Price:         150000,
		Status:        constants.SCHEDULE_ARRIVED,
		BusID:         1,
		RouteID:       1,
	}
	if err := db.Create(&legacy).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	// force the retired value past the column default
	if err := db.Model(&model.BusSchedule{}).Where("id = ?", legacy.ID).
		Update("status", constants.SCHEDULE_LEGACY_COMPLETED).Error; err != nil {
		t.Fatalf("set legacy status: %v", err)
	}

	untouched := model.BusSchedule{
		PublicCode:    "SCH-arrived1",
		DepartureTime: departure,
		Price:         150000,
		Status:        constants.SCHEDULE_ARRIVED,
		BusID:         1,
		RouteID:       1,
	}
	if err := db.Create(&untouched).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}

	if err := MigrateLegacyScheduleStatus(db); err != nil {
		t.Fatalf("forward migration: %v", err)
	}

	var got model.BusSchedule
	if err := db.First(&got, legacy.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != constants.SCHEDULE_ARRIVED {
		t.Fatalf("expected status %q, got %q", constants.SCHEDULE_ARRIVED, got.Status)
	}
	if got.LegacyStatus == nil || *got.LegacyStatus != constants.SCHEDULE_LEGACY_COMPLETED {
		t.Fatalf("legacy_status should record the rewritten value, got %v", got.LegacyStatus)
	}

	got = model.BusSchedule{}
	if err := db.First(&got, untouched.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != constants.SCHEDULE_ARRIVED || got.LegacyStatus != nil {
		t.Fatalf("schedule already arrived must not be tagged, got status=%q legacy=%v", got.Status, got.LegacyStatus)
	}
}

func TestLegacyScheduleStatusRollback(t *testing.T) {
	db := openTestDB(t)

	s := model.BusSchedule{
		PublicCode:    "SCH-roll0001",
		DepartureTime: time.Now().Add(-24 * time.Hour),
		Price:         90000,
		Status:        constants.SCHEDULE_ARRIVED,
		BusID:         1,
		RouteID:       1,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create schedule: %v", err)
	}
	if err := db.Model(&model.BusSchedule{}).Where("id = ?", s.ID).
		Update("status", constants.SCHEDULE_LEGACY_COMPLETED).Error; err != nil {
		t.Fatalf("set legacy status: %v", err)
	}

	if err := MigrateLegacyScheduleStatus(db); err != nil {
		t.Fatalf("forward migration: %v", err)
	}
	if err := RollbackLegacyScheduleStatus(db); err != nil {
		t.Fatalf("rollback: %v", err)
	}

	var got model.BusSchedule
	if err := db.First(&got, s.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != constants.SCHEDULE_LEGACY_COMPLETED {
		t.Fatalf("rollback should restore %q, got %q", constants.SCHEDULE_LEGACY_COMPLETED, got.Status)
	}
	if got.LegacyStatus != nil {
		t.Fatalf("rollback should clear legacy_status, got %v", got.LegacyStatus)
	}

	// idempotent: a second forward pass reproduces the same end state
	if err := MigrateLegacyScheduleStatus(db); err != nil {
		t.Fatalf("second forward migration: %v", err)
	}
	if err := db.First(&got, s.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got.Status != constants.SCHEDULE_ARRIVED {
		t.Fatalf("expected %q after re-migration, got %q", constants.SCHEDULE_ARRIVED, got.Status)
	}
}
