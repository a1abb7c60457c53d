package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/services"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/middleware"
)

// BatchController handles batch operations
type BatchController struct {
	batchService services.BatchService
}

// NewBatchController creates a new BatchController
func NewBatchController(batchService services.BatchService) *BatchController {
	return &BatchController{batchService: batchService}
}

// CreateBatch handles batch creation
// @Summary Create a batch
// @Description Creates a batch with no students. startDate must not be after endDate.
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BatchRequest true "Batch information"
// @Success 201 {object} dto.BatchResponse "Batch created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /createBatch [post]
func (c *BatchController) CreateBatch(ctx *gin.Context) {
	var req dto.BatchRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	batch, err := c.batchService.CreateBatch(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.BatchResponse{Message: "Batch created successfully", Batch: batch})
}

// GetAllBatches lists every batch
// @Summary List batches
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BatchesResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /getAllBatches [get]
func (c *BatchController) GetAllBatches(ctx *gin.Context) {
	batches, err := c.batchService.GetAllBatches(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BatchesResponse{Batches: batches})
}

// GetBatch retrieves one batch
// @Summary Get batch by ID
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id query string true "Batch ID"
// @Success 200 {object} dto.BatchResponse
// @Failure 400 {object} dto.ErrorResponse "Missing id"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /getBatch [get]
func (c *BatchController) GetBatch(ctx *gin.Context) {
	batch, err := c.batchService.GetBatch(ctx.Request.Context(), ctx.Query("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BatchResponse{Batch: batch})
}

// EditBatch updates a batch's details
// @Summary Edit batch
// @Description Replaces name, courses, dates and instructor. Enrolled students are untouched.
// @Tags batches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id query string true "Batch ID"
// @Param request body dto.BatchRequest true "Batch information"
// @Success 200 {object} dto.BatchResponse "Batch updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /editBatch [put]
func (c *BatchController) EditBatch(ctx *gin.Context) {
	var req dto.BatchRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	batch, err := c.batchService.UpdateBatch(ctx.Request.Context(), ctx.Query("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.BatchResponse{Message: "Batch updated successfully", Batch: batch})
}

// DeleteBatch removes an empty batch
// @Summary Delete batch
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param id query string true "Batch ID"
// @Success 200 {object} dto.MessageResponse "Batch deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Failure 409 {object} dto.ErrorResponse "Batch still has students"
// @Router /deleteBatch [delete]
func (c *BatchController) DeleteBatch(ctx *gin.Context) {
	if err := c.batchService.DeleteBatch(ctx.Request.Context(), ctx.Query("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Batch deleted successfully"))
}

// GetStudentsInBatch lists a batch's students in enrollment order
// @Summary List students of a batch
// @Tags batches
// @Produce json
// @Security BearerAuth
// @Param batchId query string true "Batch ID"
// @Success 200 {object} dto.StudentsResponse
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /getStudentsInBatch [get]
func (c *BatchController) GetStudentsInBatch(ctx *gin.Context) {
	students, err := c.batchService.GetStudentsInBatch(ctx.Request.Context(), ctx.Query("batchId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentsResponse{Students: students})
}
