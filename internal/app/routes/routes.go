package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dcastillo/campusenroll/internal/app/controllers"
	"github.com/dcastillo/campusenroll/internal/app/models"
	"github.com/dcastillo/campusenroll/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	catalogController *controllers.CatalogController,
	enrollmentController *controllers.EnrollmentController,
	adminController *controllers.AdminController,
	logController *controllers.LogController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/register-admin", authController.RegisterAdmin)
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/me", authController.GetProfile)

		// Catalog is readable by any authenticated account
		authenticated.GET("/courses", catalogController.ListCourses)
		authenticated.GET("/instructors", catalogController.ListInstructors)
		authenticated.GET("/courses/:id/classmates", enrollmentController.GetClassmates)

		// Enrollment mutations are student-only and self-scoped
		studentOnly := authenticated.Group("")
		studentOnly.Use(authMiddleware.RoleRequired(models.RoleStudent))
		{
			studentOnly.POST("/enrollments", enrollmentController.Enroll)
			studentOnly.PUT("/enrollments", enrollmentController.Replace)
			studentOnly.GET("/enrollments/me", enrollmentController.GetMine)
		}

		// Admin management surface
		admin := authenticated.Group("/admin")
		admin.Use(authMiddleware.RoleRequired(models.RoleAdmin))
		{
			admin.GET("/dashboard", adminController.GetDashboardStats)

			admin.GET("/students", adminController.ListStudents)
			admin.DELETE("/students/:id", adminController.DeleteStudent)

			admin.POST("/instructors", adminController.CreateInstructor)
			admin.PUT("/instructors/:id", adminController.UpdateInstructor)
			admin.DELETE("/instructors/:id", adminController.DeleteInstructor)

			admin.POST("/courses", adminController.CreateCourse)
			admin.PUT("/courses/:id", adminController.UpdateCourse)
			admin.DELETE("/courses/:id", adminController.DeleteCourse)

			admin.GET("/enrollments", adminController.ListEnrollments)

			admin.GET("/logs", logController.GetRecent)
			admin.GET("/logs/dashboard", logController.GetDashboardStats)
			admin.GET("/logs/export", logController.ExportCSV)
		}
	}
}
