package database

import (
	"travel_booking/constants"
	"travel_booking/model"

	"gorm.io/gorm"
)

// MigrateLegacyScheduleStatus rewrites the retired "completed" terminal state
// to "arrived". The old value is kept in legacy_status so the rewrite is
// reversible row by row; schedules that were already "arrived" are untouched.
func MigrateLegacyScheduleStatus(db *gorm.DB) error {
	return db.Model(&model.BusSchedule{}).
		Where("status = ?", constants.SCHEDULE_LEGACY_COMPLETED).
		Updates(map[string]any{
			"status":        constants.SCHEDULE_ARRIVED,
			"legacy_status": constants.SCHEDULE_LEGACY_COMPLETED,
		}).Error
}

// RollbackLegacyScheduleStatus restores "completed" exactly where the forward
// pass produced "arrived" from it.
func RollbackLegacyScheduleStatus(db *gorm.DB) error {
	return db.Model(&model.BusSchedule{}).
		Where("status = ? AND legacy_status = ?", constants.SCHEDULE_ARRIVED, constants.SCHEDULE_LEGACY_COMPLETED).
		Updates(map[string]any{
			"status":        constants.SCHEDULE_LEGACY_COMPLETED,
			"legacy_status": nil,
		}).Error
}
