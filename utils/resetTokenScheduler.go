package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"certportal/models"
)

// logScheduler logs scheduler events with timestamp
func logScheduler(message string) {
	log.Printf("[TOKEN-SWEEPER %s] %s", time.Now().Format(time.RFC3339), message)
}

// sweepExpiredResetTokens clears password reset tokens whose expiry has
// passed. Reset links stop working the moment the token no longer
// matches, so this is cleanup, not enforcement.
func sweepExpiredResetTokens(db *gorm.DB) {
	res := db.Model(&models.User{}).
		Where("reset_token <> '' AND reset_token_expiry < ?", time.Now()).
		Updates(map[string]interface{}{
			"reset_token":        "",
			"reset_token_expiry": nil,
		})

	if res.Error != nil {
		logScheduler("Error sweeping expired reset tokens: " + res.Error.Error())
		return
	}
	if res.RowsAffected > 0 {
		logScheduler("Cleared expired reset tokens")
	}
}

// StartResetTokenSweeper runs the expired-token sweep every hour.
func StartResetTokenSweeper(db *gorm.DB) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("@hourly", func() { sweepExpiredResetTokens(db) }); err != nil {
		logScheduler("Error registering sweep job: " + err.Error())
		return c
	}

	c.Start()
	logScheduler("Reset token sweeper started")
	return c
}
