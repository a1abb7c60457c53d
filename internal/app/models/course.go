package models

// Course is a programme offered by the institute. Batches refer to it by name.
type Course struct {
	ID          string  `json:"_id" example:"6f1c2b9e-3d5a-4c1e-9a7b-2f0e8d6c4b1a"`
	Name        string  `json:"name" example:"Web Development"`
	Duration    string  `json:"duration" example:"6 months"`
	Fees        float64 `json:"fees" example:"25000"`
	Description string  `json:"description" example:"Full-stack web development with React and Go"`
	Timestamps
}
