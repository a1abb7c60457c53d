package dto

import "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"

// BatchRequest is the create/edit batch form.
// Dates accept YYYY-MM-DD or RFC 3339.
type BatchRequest struct {
	BatchName  string   `json:"batchName" binding:"required,notblank,max=200" example:"B1"`
	Courses    []string `json:"courses" binding:"required,min=1,dive,notblank" example:"Web Development"`
	StartDate  string   `json:"startDate" binding:"required,date" example:"2024-01-01"`
	EndDate    string   `json:"endDate" binding:"required,date" example:"2024-06-01"`
	Instructor string   `json:"instructor" binding:"required,notblank,max=200" example:"Jane"`
}

// BatchResponse wraps a single batch
type BatchResponse struct {
	Error   bool          `json:"error" example:"false"`
	Message string        `json:"message,omitempty" example:"Batch created successfully"`
	Batch   *models.Batch `json:"batch"`
}

// BatchesResponse wraps the batch list
type BatchesResponse struct {
	Error   bool            `json:"error" example:"false"`
	Batches []*models.Batch `json:"batches"`
}
