package models

import (
	"gorm.io/gorm"
)

// EventType is a global lookup table (Workshop, Hackathon, ...).
type EventType struct {
	gorm.Model
	Name string `json:"name" gorm:"not null;uniqueIndex"`
}
