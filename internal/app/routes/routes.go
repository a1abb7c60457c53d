package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/app/controllers"
	"github.com/sinanmp/Ivanios-Sftwr-sub000/internal/middleware"
)

// Controllers groups the handlers mounted under /api.
type Controllers struct {
	Auth    *controllers.AuthController
	Batch   *controllers.BatchController
	Student *controllers.StudentController
	Course  *controllers.CourseController
	File    *controllers.FileController
}

// SetupRouter configures all application routes
func SetupRouter(router *gin.Engine, ctrl Controllers, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	// --- Public routes ---
	api.GET("/health", controllers.Health)
	api.POST("/adminLogin", ctrl.Auth.Login)

	// --- Admin routes ---
	admin := api.Group("")
	admin.Use(authMiddleware.AdminAuth())
	{
		admin.POST("/createBatch", ctrl.Batch.CreateBatch)
		admin.GET("/getAllBatches", ctrl.Batch.GetAllBatches)
		admin.GET("/getBatch", ctrl.Batch.GetBatch)
		admin.PUT("/editBatch", ctrl.Batch.EditBatch)
		admin.DELETE("/deleteBatch", ctrl.Batch.DeleteBatch)
		admin.GET("/getStudentsInBatch", ctrl.Batch.GetStudentsInBatch)

		admin.POST("/addStudentToBatch", ctrl.Student.AddStudentToBatch)
		admin.GET("/fetchStudents", ctrl.Student.FetchStudents)
		admin.GET("/getStudentDetails", ctrl.Student.GetStudentDetails)
		admin.DELETE("/deleteStudent", ctrl.Student.DeleteStudent)
		admin.POST("/importStudents", ctrl.Student.ImportStudents)
		admin.GET("/exportStudents", ctrl.Student.ExportStudents)
		admin.GET("/importTemplate", ctrl.Student.ImportTemplate)

		admin.POST("/addCourse", ctrl.Course.AddCourse)
		admin.GET("/getAllCourses", ctrl.Course.GetAllCourses)
		admin.DELETE("/deleteCourse", ctrl.Course.DeleteCourse)

		admin.POST("/uploadFile", ctrl.File.UploadFile)
		admin.POST("/deleteFiles", ctrl.File.DeleteFiles)
	}
}
