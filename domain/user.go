package domain

import (
	"time"

	"gorm.io/gorm"
)

// User is a teacher account. The read_notification_ids column is managed with
// raw SQL in the notification repository and intentionally has no field here.
type User struct {
	UserID    int            `gorm:"primaryKey;autoIncrement" json:"user_id"`
	Username  string         `gorm:"type:varchar(50);not null;unique" json:"username" valid:"required~Username is required"`
	Name      string         `gorm:"type:varchar(150);not null" json:"name" valid:"required~Name is required"`
	Password  string         `gorm:"type:varchar(255);not null" json:"-"`
	Role      string         `gorm:"type:role_enum;not null" json:"role"`
	AvatarURL string         `gorm:"type:varchar(255)" json:"avatar_url"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}
