package handler

import (
	"github.com/gin-gonic/gin"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Courses     *CourseHandler
	Students    *StudentHandler
	Instructors *InstructorHandler
	Enrollments *EnrollmentHandler
	Dataset     *DatasetHandler
	Exports     *ExportHandler
}

// RegisterRoutes mounts all API routes under the given prefix.
func RegisterRoutes(r *gin.Engine, prefix string, h Handlers) {
	api := r.Group(prefix)

	courses := api.Group("/courses")
	courses.GET("", h.Courses.List)
	courses.POST("", h.Courses.Create)
	courses.GET("/:id", h.Courses.Get)
	courses.PUT("/:id", h.Courses.Update)
	courses.DELETE("/:id", h.Courses.Delete)

	students := api.Group("/students")
	students.GET("", h.Students.List)
	students.POST("", h.Students.Create)
	students.GET("/:id", h.Students.Get)
	students.PUT("/:id", h.Students.Update)
	students.DELETE("/:id", h.Students.Delete)

	instructors := api.Group("/instructors")
	instructors.GET("", h.Instructors.List)
	instructors.POST("", h.Instructors.Create)
	instructors.GET("/:id", h.Instructors.Get)
	instructors.PUT("/:id", h.Instructors.Update)
	instructors.DELETE("/:id", h.Instructors.Delete)

	enrollments := api.Group("/enrollments")
	enrollments.GET("", h.Enrollments.List)
	enrollments.POST("", h.Enrollments.Enroll)
	enrollments.PUT("/:studentId/:courseId/status", h.Enrollments.UpdateStatus)
	enrollments.PUT("/:studentId/:courseId/progress", h.Enrollments.UpdateProgress)

	dataset := api.Group("/dataset")
	dataset.POST("/import", h.Dataset.Import)
	dataset.GET("/export", h.Dataset.Export)
	dataset.POST("/save", h.Dataset.Save)
	dataset.GET("/status", h.Dataset.Status)

	api.GET("/categories", h.Dataset.Categories)
	api.GET("/settings", h.Dataset.Settings)
	api.PUT("/settings", h.Dataset.UpdateSettings)

	exports := api.Group("/exports")
	exports.GET("/courses", h.Exports.Courses)
	exports.GET("/students", h.Exports.Students)
}
