package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/services"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/middleware"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
)

// FileController handles attachment uploads and deletes
type FileController struct {
	fileService services.FileService
}

// NewFileController creates a new FileController
func NewFileController(fileService services.FileService) *FileController {
	return &FileController{fileService: fileService}
}

// UploadFile stores one attachment
// @Summary Upload file
// @Description Stores a photo or certificate and returns its URL and delete token. Photos are converted to WebP.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Param folder formData string true "photos or certificates"
// @Success 201 {object} dto.UploadFileResponse "File uploaded successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing file, bad folder or too large"
// @Router /uploadFile [post]
func (c *FileController) UploadFile(ctx *gin.Context) {
	header, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file", "file is required"))
		return
	}
	file, err := header.Open()
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("Error closing uploaded file")
		}
	}()

	ref, err := c.fileService.UploadFile(ctx.Request.Context(),
		header.Filename,
		header.Header.Get("Content-Type"),
		header.Size,
		file,
		ctx.PostForm("folder"),
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.UploadFileResponse{Message: "File uploaded successfully", File: ref})
}

// DeleteFiles deletes attachments by token
// @Summary Delete files
// @Description Deletes every token independently; results are in request order and error is true when any item failed.
// @Tags files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.DeleteFilesRequest true "Delete tokens"
// @Success 200 {object} dto.DeleteFilesResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /deleteFiles [post]
func (c *FileController) DeleteFiles(ctx *gin.Context) {
	var req dto.DeleteFilesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	results := c.fileService.DeleteFiles(ctx.Request.Context(), req.Tokens)
	resp := dto.DeleteFilesResponse{Results: results}
	for _, r := range results {
		if !r.Deleted {
			resp.Error = true
			break
		}
	}
	ctx.JSON(http.StatusOK, resp)
}
