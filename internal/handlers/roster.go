package handlers

import (
	"context"
	"fmt"

	"github.com/campushub/campus-events-api/internal/auth"
	"github.com/campushub/campus-events-api/internal/models"
	"github.com/campushub/campus-events-api/pkg/validator"
	"github.com/danielgtaylor/huma/v2"
	"gorm.io/gorm"
)

// RosterHandler manages the provisioned people of a college: admins and
// students. Email uniqueness is per college, enforced by the schema.
type RosterHandler struct {
	db          *gorm.DB
	authHandler *auth.AuthHandler
}

func NewRosterHandler(db *gorm.DB, authHandler *auth.AuthHandler) *RosterHandler {
	return &RosterHandler{db: db, authHandler: authHandler}
}

type CreateAdminRequest struct {
	Body struct {
		CollegeID uint   `json:"college_id" validate:"required"`
		Name      string `json:"name" validate:"required"`
		Email     string `json:"email" validate:"required,email"`
		Role      string `json:"role"`
	}
}

type AdminResponse struct {
	ID        uint   `json:"id"`
	CollegeID uint   `json:"college_id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
}

type CreateAdminResponse struct {
	Body AdminResponse
}

func (h *RosterHandler) HandleCreateAdmin(ctx context.Context, input *CreateAdminRequest) (*CreateAdminResponse, error) {
	if verr := validator.Validate(ctx, input.Body); verr != nil {
		return nil, huma.Error400BadRequest(fmt.Sprintf("%v", verr))
	}

	var college models.College
	if err := h.db.WithContext(ctx).First(&college, input.Body.CollegeID).Error; err != nil {
		return nil, huma.Error404NotFound("College not found")
	}

	admin := models.Admin{
		CollegeID: input.Body.CollegeID,
		Name:      input.Body.Name,
		Email:     input.Body.Email,
		Role:      input.Body.Role,
		Status:    "active",
	}
	if err := h.db.WithContext(ctx).Create(&admin).Error; err != nil {
		return nil, huma.Error409Conflict("Admin email already in use for this college")
	}

	return &CreateAdminResponse{Body: AdminResponse{
		ID:        admin.ID,
		CollegeID: admin.CollegeID,
		Name:      admin.Name,
		Email:     admin.Email,
		Role:      admin.Role,
		Status:    admin.Status,
	}}, nil
}

type CreateStudentRequest struct {
	Body struct {
		CollegeID  uint   `json:"college_id" validate:"required"`
		Name       string `json:"name" validate:"required"`
		Email      string `json:"email" validate:"required,email"`
		Department string `json:"department"`
		Year       string `json:"year"`
	}
}

type StudentResponse struct {
	ID         uint   `json:"id"`
	CollegeID  uint   `json:"college_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Year       string `json:"year"`
	Status     string `json:"status"`
}

type CreateStudentResponse struct {
	Body StudentResponse
}

func (h *RosterHandler) HandleCreateStudent(ctx context.Context, input *CreateStudentRequest) (*CreateStudentResponse, error) {
	if verr := validator.Validate(ctx, input.Body); verr != nil {
		return nil, huma.Error400BadRequest(fmt.Sprintf("%v", verr))
	}

	var college models.College
	if err := h.db.WithContext(ctx).First(&college, input.Body.CollegeID).Error; err != nil {
		return nil, huma.Error404NotFound("College not found")
	}

	student := models.Student{
		CollegeID:  input.Body.CollegeID,
		Name:       input.Body.Name,
		Email:      input.Body.Email,
		Department: input.Body.Department,
		Year:       input.Body.Year,
		Status:     "active",
	}
	if err := h.db.WithContext(ctx).Create(&student).Error; err != nil {
		return nil, huma.Error409Conflict("Student email already in use for this college")
	}

	return &CreateStudentResponse{Body: studentResponse(student)}, nil
}

func studentResponse(s models.Student) StudentResponse {
	return StudentResponse{
		ID:         s.ID,
		CollegeID:  s.CollegeID,
		Name:       s.Name,
		Email:      s.Email,
		Department: s.Department,
		Year:       s.Year,
		Status:     s.Status,
	}
}

type ListStudentsRequest struct {
	CollegeID uint `path:"id"`
}

type ListStudentsResponse struct {
	Body []StudentResponse
}

func (h *RosterHandler) HandleListStudents(ctx context.Context, input *ListStudentsRequest) (*ListStudentsResponse, error) {
	var students []models.Student
	if err := h.db.WithContext(ctx).
		Where("college_id = ?", input.CollegeID).
		Order("name asc").
		Find(&students).Error; err != nil {
		return nil, huma.Error500InternalServerError("Failed to list students")
	}

	resp := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		resp = append(resp, studentResponse(s))
	}
	return &ListStudentsResponse{Body: resp}, nil
}
