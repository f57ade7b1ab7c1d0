package models

import (
	"time"

	"gorm.io/gorm"
)

// RegistrationStatus has a single one-way transition: registered -> cancelled.
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusCancelled  RegistrationStatus = "cancelled"
)

type Registration struct {
	gorm.Model
	StudentID        uint               `json:"student_id" gorm:"not null;uniqueIndex:idx_student_event"`
	Student          Student            `json:"-" gorm:"foreignKey:StudentID"`
	EventID          uint               `json:"event_id" gorm:"not null;uniqueIndex:idx_student_event"`
	Event            Event              `json:"-" gorm:"foreignKey:EventID"`
	RegistrationTime time.Time          `json:"registration_time" gorm:"not null"`
	Status           RegistrationStatus `json:"status" gorm:"not null;default:registered"`
}
