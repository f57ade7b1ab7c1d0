package models

import (
	"gorm.io/gorm"
)

type CollegeStatus string

const (
	CollegeStatusActive   CollegeStatus = "active"
	CollegeStatusInactive CollegeStatus = "inactive"
)

type College struct {
	gorm.Model
	Name     string        `json:"name" gorm:"not null"`
	Location string        `json:"location"`
	Status   CollegeStatus `json:"status" gorm:"not null;default:active"`
}
