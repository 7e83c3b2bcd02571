package helper

import (
	"log"
	"time"
	"travel_booking/constants"
	"travel_booking/database"
	"travel_booking/model"

	"github.com/robfig/cron/v3"
)

var scheduler *cron.Cron

func StartScheduleStatusScheduler() {
	scheduler = cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DefaultLogger),
	))

	_, err := scheduler.AddFunc("*/5 * * * *", AdvanceScheduleStatuses)
	if err != nil {
		log.Printf("failed to start schedule sweeper: %v", err)
		return
	}

	scheduler.Start()
	log.Println("Bus schedule status sweeper started (every 5 minutes)")
}

// AdvanceScheduleStatuses moves schedules along scheduled -> departed ->
// arrived as their departure and arrival times pass. Cancelled schedules are
// left alone.
func AdvanceScheduleStatuses() {
	now := time.Now()
	db := database.DB

	departed := db.Model(&model.BusSchedule{}).
		Where("status = ? AND departure_time < ?", constants.SCHEDULE_SCHEDULED, now).
		Update("status", constants.SCHEDULE_DEPARTED)
	if departed.Error != nil {
		log.Printf("failed to mark departed schedules: %v", departed.Error)
		return
	}

	arrived := db.Model(&model.BusSchedule{}).
		Where("status = ? AND arrival_time < ?", constants.SCHEDULE_DEPARTED, now).
		Update("status", constants.SCHEDULE_ARRIVED)
	if arrived.Error != nil {
		log.Printf("failed to mark arrived schedules: %v", arrived.Error)
		return
	}

	if departed.RowsAffected > 0 || arrived.RowsAffected > 0 {
		log.Printf("schedule sweep: %d departed, %d arrived", departed.RowsAffected, arrived.RowsAffected)
	}
}

func StopScheduleStatusScheduler() {
	if scheduler != nil {
		scheduler.Stop()
	}
}
