package models

import (
	"gorm.io/gorm"
)

type Admin struct {
	gorm.Model
	CollegeID uint    `json:"college_id" gorm:"not null;uniqueIndex:idx_admin_college_email"`
	College   College `json:"-" gorm:"foreignKey:CollegeID"`
	Name      string  `json:"name" gorm:"not null"`
	Email     string  `json:"email" gorm:"not null;uniqueIndex:idx_admin_college_email"`
	Role      string  `json:"role"`
	Status    string  `json:"status" gorm:"not null;default:active"`
}
