package models

import (
	"time"

	"github.com/google/uuid"
)

// User is created lazily on the first successful OTP verification.
type User struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	Phone       string     `gorm:"column:phone;uniqueIndex;not null"`
	LastLoginAt *time.Time `gorm:"column:last_login_at"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
