package models

import (
	"gorm.io/gorm"
)

type Student struct {
	gorm.Model
	CollegeID  uint    `json:"college_id" gorm:"not null;uniqueIndex:idx_student_college_email"`
	College    College `json:"-" gorm:"foreignKey:CollegeID"`
	Name       string  `json:"name" gorm:"not null"`
	Email      string  `json:"email" gorm:"not null;uniqueIndex:idx_student_college_email"`
	Department string  `json:"department"`
	Year       string  `json:"year"`
	Status     string  `json:"status" gorm:"not null;default:active"`
}
