package dto

import "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"

// CreateCourseRequest represents the add-course form
type CreateCourseRequest struct {
	Name        string  `json:"name" binding:"required,notblank,max=200" example:"Web Development"`
	Duration    string  `json:"duration" binding:"max=100" example:"6 months"`
	Fees        float64 `json:"fees" binding:"gte=0" example:"25000"`
	Description string  `json:"description" binding:"required,notblank" example:"Full-stack web development"`
}

// CourseResponse wraps a single course
type CourseResponse struct {
	Error   bool           `json:"error" example:"false"`
	Message string         `json:"message" example:"Course added successfully"`
	Course  *models.Course `json:"course"`
}

// CoursesResponse wraps the course list
type CoursesResponse struct {
	Error   bool             `json:"error" example:"false"`
	Courses []*models.Course `json:"courses"`
}
