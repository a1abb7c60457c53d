package dto

import "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"

// StudentData carries the personal fields of a new student.
type StudentData struct {
	FirstName    string `json:"firstName" binding:"required,notblank,max=100" example:"Ann"`
	LastName     string `json:"lastName" binding:"required,notblank,max=100" example:"Lee"`
	Email        string `json:"email" binding:"required,email" example:"a@x.com"`
	Mobile       string `json:"mobile" binding:"required,mobile" example:"9999999999"`
	RollNo       string `json:"rollNo" binding:"required,notblank,max=50" example:"R1"`
	EnrollmentNo string `json:"enrollmentNo" binding:"max=50" example:"EN-2024-001"`
	Batch        string `json:"batch" binding:"required,notblank" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
}

// FileRefRequest references a file previously returned by the upload endpoint.
type FileRefRequest struct {
	FileName    string `json:"fileName" binding:"max=255" example:"certificate.pdf"`
	FileURL     string `json:"fileUrl" binding:"required,url" example:"http://localhost:8080/uploads/certificates/5f2d.pdf"`
	DeleteToken string `json:"deleteToken" example:"certificates/5f2d.pdf"`
}

// ToModel converts the request to a stored file reference.
func (r FileRefRequest) ToModel() models.FileRef {
	return models.FileRef{FileName: r.FileName, FileURL: r.FileURL, DeleteToken: r.DeleteToken}
}

// AddStudentRequest is the typed add-student-to-batch payload.
type AddStudentRequest struct {
	Data         StudentData      `json:"data" binding:"required"`
	Certificates []FileRefRequest `json:"certificates" binding:"omitempty,dive"`
	Photo        *FileRefRequest  `json:"photo" binding:"omitempty"`
}

// StudentResponse wraps a single student
type StudentResponse struct {
	Error   bool            `json:"error" example:"false"`
	Message string          `json:"message" example:"Student added successfully"`
	Student *models.Student `json:"student"`
}

// StudentDetailResponse wraps a student with its batch expanded
type StudentDetailResponse struct {
	Error   bool                  `json:"error" example:"false"`
	Student *models.StudentDetail `json:"student"`
}

// StudentsResponse wraps an unpaginated student list
type StudentsResponse struct {
	Error    bool              `json:"error" example:"false"`
	Students []*models.Student `json:"students"`
}

// StudentPageResponse wraps one page of the student search
type StudentPageResponse struct {
	Error      bool              `json:"error" example:"false"`
	Students   []*models.Student `json:"students"`
	Total      int64             `json:"total" example:"42"`
	TotalPages int               `json:"totalPages" example:"5"`
	Page       int               `json:"page" example:"1"`
	Limit      int               `json:"limit" example:"10"`
}

// ImportFailure describes a spreadsheet row that could not be enrolled.
type ImportFailure struct {
	Row     int    `json:"row" example:"4"`
	Message string `json:"message" example:"A student with this roll number already exists"`
}

// ImportStudentsResponse summarises a spreadsheet import
type ImportStudentsResponse struct {
	Error    bool            `json:"error" example:"false"`
	Message  string          `json:"message" example:"Import finished"`
	Imported int             `json:"imported" example:"28"`
	Failed   []ImportFailure `json:"failed"`
}
