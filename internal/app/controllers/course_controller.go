package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/models/dto"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/services"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/middleware"
)

// CourseController handles course operations
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// AddCourse handles course creation
// @Summary Add course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.CourseResponse "Course added successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 409 {object} dto.ErrorResponse "Course name already exists"
// @Router /addCourse [post]
func (c *CourseController) AddCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.CourseResponse{Message: "Course added successfully", Course: course})
}

// GetAllCourses lists every course
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CoursesResponse
// @Router /getAllCourses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	courses, err := c.courseService.GetAllCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.CoursesResponse{Courses: courses})
}

// DeleteCourse removes a course no batch refers to
// @Summary Delete course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id query string true "Course ID"
// @Success 200 {object} dto.MessageResponse "Course deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course is used by a batch"
// @Router /deleteCourse [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.courseService.DeleteCourse(ctx.Request.Context(), ctx.Query("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Course deleted successfully"))
}
