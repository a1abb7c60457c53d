package models

// Student is an enrolled learner. A student belongs to exactly one batch.
type Student struct {
	ID           string    `json:"_id" example:"7c9e6679-7425-40de-944b-e07fc1f90ae7"`
	Name         string    `json:"name" example:"Ann Lee"`
	Email        string    `json:"email" example:"a@x.com"`
	EnrollmentNo string    `json:"enrollmentNo,omitempty" example:"EN-2024-001"`
	RollNo       string    `json:"rollNo" example:"R1"`
	Mobile       string    `json:"mobile" example:"9999999999"`
	BatchID      string    `json:"batch" example:"0f8fad5b-d9cb-469f-a165-70867728950e"`
	ProfileImage *FileRef  `json:"profileImage,omitempty"`
	Certificates []FileRef `json:"certificates"`
	Timestamps
}

// FileTokens returns the delete tokens of every stored file owned by the student.
func (s *Student) FileTokens() []string {
	var tokens []string
	if s.ProfileImage != nil && s.ProfileImage.DeleteToken != "" {
		tokens = append(tokens, s.ProfileImage.DeleteToken)
	}
	for _, c := range s.Certificates {
		if c.DeleteToken != "" {
			tokens = append(tokens, c.DeleteToken)
		}
	}
	return tokens
}

// StudentDetail is a student with its batch reference expanded.
// The Batch field shadows Student.BatchID in JSON output.
type StudentDetail struct {
	*Student
	Batch *Batch `json:"batch"`
}

// StudentFilter selects a page of students.
type StudentFilter struct {
	// Search is matched literally and case-insensitively against the name.
	Search string
	Offset int64
	Limit  int64
}
