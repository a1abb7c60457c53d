package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/services"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/middleware"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/apperrors"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/helpers"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/logger"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/pkg/spreadsheet"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// StudentController handles student operations
type StudentController struct {
	studentService services.StudentService
	maxLimit       int
}

// NewStudentController creates a new StudentController. maxLimit caps the page size when positive.
func NewStudentController(studentService services.StudentService, maxLimit int) *StudentController {
	return &StudentController{
		studentService: studentService,
		maxLimit:       maxLimit,
	}
}

// AddStudentToBatch enrolls a new student
// @Summary Add student to batch
// @Description Creates the student and appends it to its batch in one step. File references come from /uploadFile.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddStudentRequest true "Student information"
// @Success 201 {object} dto.StudentResponse "Student added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Failure 409 {object} dto.ErrorResponse "Roll number already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /addStudentToBatch [post]
func (c *StudentController) AddStudentToBatch(ctx *gin.Context) {
	var req dto.AddStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.AddStudent(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.StudentResponse{Message: "Student added successfully", Student: student})
}

// FetchStudents pages through students
// @Summary Search students
// @Description Case-insensitive substring search on name, in creation order.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Name contains"
// @Success 200 {object} dto.StudentPageResponse
// @Router /fetchStudents [get]
func (c *StudentController) FetchStudents(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx, c.maxLimit)

	resp, err := c.studentService.SearchStudents(ctx.Request.Context(), page, limit, ctx.Query("search"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetStudentDetails retrieves a student with its batch
// @Summary Get student details
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id query string true "Student ID"
// @Success 200 {object} dto.StudentDetailResponse
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /getStudentDetails [get]
func (c *StudentController) GetStudentDetails(ctx *gin.Context) {
	detail, err := c.studentService.GetStudentDetails(ctx.Request.Context(), ctx.Query("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.StudentDetailResponse{Student: detail})
}

// DeleteStudent removes a student and its files
// @Summary Delete student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id query string true "Student ID"
// @Success 200 {object} dto.MessageResponse "Student deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /deleteStudent [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	if err := c.studentService.DeleteStudent(ctx.Request.Context(), ctx.Query("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Student deleted successfully"))
}

// ImportStudents enrolls students from an .xlsx sheet
// @Summary Import students
// @Description First sheet, header row skipped. Columns: firstName, lastName, email, mobile, rollNo, enrollmentNo.
// @Tags students
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param batchId formData string true "Batch ID"
// @Param file formData file true ".xlsx workbook"
// @Success 200 {object} dto.ImportStudentsResponse
// @Failure 400 {object} dto.ErrorResponse "Missing or unreadable file"
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /importStudents [post]
func (c *StudentController) ImportStudents(ctx *gin.Context) {
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
			logger.Warn().Err(cerr).Msg("Error closing import file")
		}
	}()

	resp, err := c.studentService.ImportStudents(ctx.Request.Context(), ctx.PostForm("batchId"), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// ExportStudents downloads a batch's students as .xlsx
// @Summary Export students
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param batchId query string true "Batch ID"
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Batch not found"
// @Router /exportStudents [get]
func (c *StudentController) ExportStudents(ctx *gin.Context) {
	name, data, err := c.studentService.ExportStudents(ctx.Request.Context(), ctx.Query("batchId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, name))
	ctx.Data(http.StatusOK, xlsxContentType, data)
}

// ImportTemplate downloads an empty import sheet
// @Summary Import template
// @Tags students
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Success 200 {file} file
// @Router /importTemplate [get]
func (c *StudentController) ImportTemplate(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := spreadsheet.WriteImportTemplate(&buf); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", `attachment; filename="students-import-template.xlsx"`)
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
