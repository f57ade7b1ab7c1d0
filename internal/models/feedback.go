package models

import (
	"time"

	"gorm.io/gorm"
)

type Feedback struct {
	gorm.Model
	RegistrationID uint         `json:"registration_id" gorm:"not null;uniqueIndex"`
	Registration   Registration `json:"-" gorm:"foreignKey:RegistrationID"`
	Rating         int          `json:"rating" gorm:"not null"`
	Comments       string       `json:"comments"`
	SubmittedAt    time.Time    `json:"submitted_at" gorm:"not null"`
}
