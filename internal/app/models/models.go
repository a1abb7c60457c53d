package models

import "time"

// FileRef points at an object held by the file storage backend.
// DeleteToken is opaque to everything except the backend that issued it.
type FileRef struct {
	FileName    string `json:"fileName" bson:"fileName" example:"photo.webp"`
	FileURL     string `json:"fileUrl" bson:"fileUrl" example:"http://localhost:8080/uploads/photos/0b7c.webp"`
	DeleteToken string `json:"deleteToken,omitempty" bson:"deleteToken,omitempty" example:"photos/0b7c.webp"`
}

// Timestamps are shared by every stored document.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" example:"2024-01-15T10:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2024-01-15T10:00:00Z"`
}

// Touch sets UpdatedAt, and CreatedAt when it has not been set yet.
func (t *Timestamps) Touch(now time.Time) {
	now = now.UTC()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now
}
