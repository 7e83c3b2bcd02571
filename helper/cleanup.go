package helper

import (
	"log"
	"time"
	"travel_booking/database"
	"travel_booking/model"

	"github.com/go-co-op/gocron/v2"
)

var cleanupScheduler gocron.Scheduler

// PurgeExpiredArtifacts drops trip share links and password reset tokens past
// their expiry. Bookings and seat holds are handled by the expire worker.
func PurgeExpiredArtifacts() {
	log.Println("[CRON] PurgeExpiredArtifacts triggered")

	db := database.DB
	now := time.Now()

	shares := db.Where("expires_at IS NOT NULL AND expires_at < ?", now).Delete(&model.TripShare{})
	if shares.Error != nil {
		log.Printf("failed to purge expired trip shares: %v", shares.Error)
	} else if shares.RowsAffected > 0 {
		log.Printf("purged %d expired trip shares", shares.RowsAffected)
	}

	tokens := db.Where("expires_at < ?", now).Delete(&model.PasswordResetToken{})
	if tokens.Error != nil {
		log.Printf("failed to purge expired reset tokens: %v", tokens.Error)
	} else if tokens.RowsAffected > 0 {
		log.Printf("purged %d expired reset tokens", tokens.RowsAffected)
	}
}

func StartCleanupScheduler() {
	s, err := gocron.NewScheduler()
	if err != nil {
		log.Fatal(err)
	}

	cleanupScheduler = s

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(gocron.NewAtTime(3, 30, 0)),
		),
		gocron.NewTask(PurgeExpiredArtifacts),
	)
	if err != nil {
		log.Printf("failed to register cleanup job: %v", err)
		return
	}

	s.Start()
	log.Println("Daily cleanup job registered (03:30)")
}

func StopCleanupScheduler() {
	if cleanupScheduler != nil {
		cleanupScheduler.Shutdown()
	}
}
