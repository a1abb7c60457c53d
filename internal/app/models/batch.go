package models

import "time"

// Batch is a cohort of students sharing an instructor, a course set and a date range.
type Batch struct {
	ID         string    `json:"_id" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
	BatchName  string    `json:"batchName" example:"B1"`
	Courses    []string  `json:"courses" example:"Web Development"`
	StartDate  time.Time `json:"startDate" example:"2024-01-01T00:00:00Z"`
	EndDate    time.Time `json:"endDate" example:"2024-06-01T00:00:00Z"`
	Instructor string    `json:"instructor" example:"Jane"`
	// Students holds student ids in enrollment order.
	Students []string `json:"students"`
	Timestamps
}

// HasStudent reports whether id is enrolled in the batch.
func (b *Batch) HasStudent(id string) bool {
	for _, s := range b.Students {
		if s == id {
			return true
		}
	}
	return false
}
