// services/scheduler.go - Background maintenance jobs
package services

import (
	"log"
	"time"

	"quizdash/database"
	"quizdash/models"

	"github.com/go-co-op/gocron/v2"
)

var scheduler gocron.Scheduler

// StartScheduler starts the background maintenance jobs: stale session
// cleanup and aged guest account removal.
func StartScheduler() {
	sched, err := gocron.NewScheduler()
	if err != nil {
		log.Printf("[Scheduler] Failed to create scheduler: %v", err)
		return
	}
	scheduler = sched
	sched.Start()

	// Every minute: drop sessions with no activity for 30 minutes
	_, _ = sched.NewJob(
		gocron.DurationJob(1*time.Minute),
		gocron.NewTask(func() {
			if m := GetSessionManager(); m != nil {
				m.CleanupExpired(30 * time.Minute)
			}
		}),
	)

	// Daily: remove guest accounts inactive for a week
	_, _ = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(cleanupGuestUsers),
	)
}

// StopScheduler shuts the background jobs down.
func StopScheduler() {
	if scheduler != nil {
		_ = scheduler.Shutdown()
	}
}

func cleanupGuestUsers() {
	db := database.GetDB()
	cutoff := time.Now().AddDate(0, 0, -7)

	result := db.Where("is_guest = ? AND created_at < ? AND (last_activity IS NULL OR last_activity < ?)",
		true, cutoff, cutoff).Delete(&models.User{})
	if result.Error != nil {
		log.Printf("[Scheduler] Guest cleanup failed: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("🧹 Removed %d stale guest accounts", result.RowsAffected)
	}
}
