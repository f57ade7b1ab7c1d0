package models

import (
	"time"

	"gorm.io/gorm"
)

// EventStatus represents the lifecycle of an event. Completed and cancelled
// are terminal.
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCancelled EventStatus = "cancelled"
	EventStatusCompleted EventStatus = "completed"
)

type Event struct {
	gorm.Model
	CollegeID   uint        `json:"college_id" gorm:"not null;index"`
	College     College     `json:"-" gorm:"foreignKey:CollegeID"`
	Title       string      `json:"title" gorm:"not null"`
	Description string      `json:"description"`
	TypeID      uint        `json:"type_id" gorm:"not null"`
	EventType   EventType   `json:"-" gorm:"foreignKey:TypeID"`
	Venue       string      `json:"venue"`
	StartTime   time.Time   `json:"start_time" gorm:"not null"`
	EndTime     time.Time   `json:"end_time" gorm:"not null"`
	Capacity    int         `json:"capacity" gorm:"not null"`
	CreatedByID uint        `json:"created_by" gorm:"not null"`
	CreatedBy   Admin       `json:"-" gorm:"foreignKey:CreatedByID"`
	Semester    string      `json:"semester"`
	Status      EventStatus `json:"status" gorm:"not null;default:active"`
}
