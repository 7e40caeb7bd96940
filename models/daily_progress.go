package models

import (
	"time"

	"gorm.io/gorm"
)

// DailyProgress is one user's logged totals for a local calendar day.
type DailyProgress struct {
	gorm.Model
	UserID uint      `gorm:"uniqueIndex:idx_progress_user_date;not null" json:"user_id"`
	Date   time.Time `gorm:"uniqueIndex:idx_progress_user_date;not null" json:"date"` // local midnight

	CaloriesConsumed float64 `json:"calories_consumed"`
	CaloriesBurnt    float64 `json:"calories_burnt"`
}
