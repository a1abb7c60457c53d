package dto

import "github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models"

// UploadFileResponse returns the stored reference of an uploaded file
type UploadFileResponse struct {
	Error   bool           `json:"error" example:"false"`
	Message string         `json:"message" example:"File uploaded successfully"`
	File    models.FileRef `json:"file"`
}

// DeleteFilesRequest lists delete tokens issued by the upload endpoint
type DeleteFilesRequest struct {
	Tokens []string `json:"tokens" binding:"required,min=1,dive,notblank"`
}

// DeleteFileResult is the outcome for one token, in request order.
type DeleteFileResult struct {
	Token   string `json:"token" example:"photos/0b7c.webp"`
	Deleted bool   `json:"deleted" example:"true"`
	Message string `json:"message,omitempty" example:"File not found"`
}

// DeleteFilesResponse reports every deletion; Error is true when any item failed.
type DeleteFilesResponse struct {
	Error   bool               `json:"error" example:"false"`
	Results []DeleteFileResult `json:"results"`
}
