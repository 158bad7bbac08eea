package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/app/controllers"
	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/services"
	"github.com/vhce/collegehub/internal/middleware"
)

// SetupRouter registers all application routes.
func SetupRouter(router *gin.Engine, ctrl *controllers.Controllers, auth services.AuthService) {
	v1 := router.Group("/api/v1")

	// --- Public routes ---
	v1.POST("/login", ctrl.Auth.Login)
	v1.GET("/courses", ctrl.Courses.List)
	v1.GET("/companies", ctrl.Placements.ListCompanies)
	v1.GET("/placed-students", ctrl.Placements.ListPlacedStudents)
	v1.GET("/toppers", ctrl.Users.ToppersOverall)
	v1.GET("/toppers/classwise", ctrl.Users.ToppersClasswise)

	// The feed degrades to Global-only for anonymous viewers.
	v1.GET("/announcements", middleware.OptionalTokenAuth(auth), ctrl.Announcements.List)

	// --- Authenticated routes ---
	authed := v1.Group("")
	authed.Use(middleware.TokenAuth(auth))
	{
		authed.GET("/me", ctrl.Auth.Me)

		// Profiles readable by any signed-in user.
		authed.GET("/students/:rollNo", ctrl.Users.GetStudent)
		authed.GET("/students/:rollNo/cia-report", ctrl.Marks.CIAReport)
		authed.GET("/students/:rollNo/arrears", ctrl.Arrears.ListByStudent)
		authed.GET("/faculties/:staffNo", ctrl.Users.GetFaculty)

		// Materials.
		authed.GET("/materials/find/:identifier", ctrl.Materials.Find)
		authed.GET("/materials/course/:courseCode", ctrl.Materials.ListByCourse)
		authed.GET("/materials/progress", ctrl.Materials.Progress)

		// --- Faculty routes ---
		faculty := authed.Group("")
		faculty.Use(middleware.RoleRequired(models.RoleFaculty, models.RoleHOD, models.RoleAdmin))
		{
			faculty.GET("/faculty/courses", ctrl.Courses.MyCourses)
			faculty.GET("/students", ctrl.Users.ListStudents)
			faculty.GET("/faculties", ctrl.Users.ListFaculties)

			// Marks.
			faculty.GET("/marks/section", ctrl.Marks.SectionMarks)
			faculty.POST("/marks/sync", ctrl.Marks.Sync)
			faculty.POST("/marks/process-excel", ctrl.Marks.ProcessSheet)
			faculty.POST("/marks/bulk-sync", ctrl.Marks.BulkSync)

			// Materials.
			faculty.GET("/materials", ctrl.Materials.ListAll)
			faculty.POST("/materials", ctrl.Materials.Upload)
			faculty.DELETE("/materials/:id", ctrl.Materials.Delete)

			// Announcements.
			faculty.POST("/announcements", ctrl.Announcements.Create)
			faculty.DELETE("/announcements/:id", ctrl.Announcements.Delete)

			// Advisor self-service.
			faculty.GET("/advisor/my-class", ctrl.Advisors.MyClass)
			faculty.PUT("/advisor/students/stats", ctrl.Advisors.UpdateStudentStats)
			faculty.POST("/advisor/docs", ctrl.Advisors.UploadDoc)
			faculty.GET("/advisor/docs", ctrl.Advisors.MyDocs)
			faculty.DELETE("/advisor/docs/:id", ctrl.Advisors.DeleteDoc)

			// Arrears.
			faculty.POST("/arrears/preview", ctrl.Arrears.Preview)
			faculty.POST("/arrears/upload", ctrl.Arrears.Upload)
			faculty.DELETE("/arrears/batches/:batchID", ctrl.Arrears.Undo)
			faculty.GET("/arrears", ctrl.Arrears.ListAll)
		}

		// --- Admin routes ---
		admin := authed.Group("/admin")
		admin.Use(middleware.RoleRequired(models.RoleAdmin, models.RoleHOD))
		{
			admin.POST("/users", ctrl.Users.CreateUser)
			admin.POST("/users/bulk/:role", ctrl.Users.BulkUpload)

			admin.PUT("/students/:rollNo", ctrl.Users.UpdateStudent)
			admin.PUT("/students/:rollNo/rename", ctrl.Users.RenameStudent)
			admin.DELETE("/students/:rollNo", ctrl.Users.DeleteStudent)
			admin.POST("/students/:rollNo/photo", ctrl.Users.UploadStudentPhoto)

			admin.PUT("/faculties/:staffNo", ctrl.Users.UpdateFaculty)
			admin.PUT("/faculties/:staffNo/rename", ctrl.Users.RenameFaculty)
			admin.DELETE("/faculties/:staffNo", ctrl.Users.DeleteFaculty)
			admin.POST("/faculties/:staffNo/photo", ctrl.Users.UploadFacultyPhoto)

			admin.POST("/courses", ctrl.Courses.Create)
			admin.PUT("/courses/:id/faculty", ctrl.Courses.AssignFaculty)
			admin.DELETE("/courses/:id", ctrl.Courses.Delete)
			admin.POST("/enrollments", ctrl.Courses.Enroll)

			admin.POST("/advisors", ctrl.Advisors.Assign)
			admin.GET("/advisors", ctrl.Advisors.List)
			admin.DELETE("/advisors/:id", ctrl.Advisors.Remove)

			admin.POST("/placements/announcements", ctrl.Placements.CreateAnnouncement)
			admin.DELETE("/placements/announcements/:id", ctrl.Placements.DeleteAnnouncement)
			admin.POST("/placements/companies", ctrl.Placements.AddCompany)
			admin.DELETE("/placements/companies/:id", ctrl.Placements.DeleteCompany)
			admin.POST("/placements/students", ctrl.Placements.AddPlacedStudent)
			admin.DELETE("/placements/students/:id", ctrl.Placements.DeletePlacedStudent)
		}
	}

	// Health check endpoint (public).
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
