package models

import (
	"gorm.io/gorm"
)

// DailyGoal holds each user's daily calorie target, usually the maintenance
// or deficit figure picked from the calorie calculator.
type DailyGoal struct {
	gorm.Model
	UserID   uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	Calories float64 `json:"calories"` // e.g. 2200 kcal
}
