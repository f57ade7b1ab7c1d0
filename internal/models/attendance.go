package models

import (
	"time"

	"gorm.io/gorm"
)

// Attendance is created once per registration and never revisited.
type Attendance struct {
	gorm.Model
	RegistrationID uint         `json:"registration_id" gorm:"not null;uniqueIndex"`
	Registration   Registration `json:"-" gorm:"foreignKey:RegistrationID"`
	Attended       bool         `json:"attended" gorm:"not null"`
	CheckInTime    *time.Time   `json:"check_in_time"`
}
