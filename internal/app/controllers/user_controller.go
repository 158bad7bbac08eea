package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/app/services"
	"github.com/vhce/collegehub/internal/middleware"
)

// UserController handles account provisioning and student/faculty profiles.
type UserController struct {
	users *services.UserService
}

// NewUserController creates a new UserController.
func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// CreateUser provisions one account with its role profile.
func (uc *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	if err := uc.users.CreateUser(c.Request.Context(), req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.MessageResponse{Message: "User created successfully"})
}

// BulkUpload imports a roster sheet for the role in the path.
func (uc *UserController) BulkUpload(c *gin.Context) {
	fh, data, err := formFileBytes(c, "file")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	result, err := uc.users.BulkUpload(c.Request.Context(), c.Param("role"), fh.Filename, data)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetStudent returns one student profile.
func (uc *UserController) GetStudent(c *gin.Context) {
	student, err := uc.users.GetStudent(c.Request.Context(), c.Param("rollNo"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, student)
}

// ListStudents returns student profiles filtered by the query parameters.
func (uc *UserController) ListStudents(c *gin.Context) {
	year, err := queryIntPtr(c, "year")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	semester, err := queryIntPtr(c, "semester")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	students, err := uc.users.ListStudents(c.Request.Context(), year, semester, c.Query("section"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

// UpdateStudent applies a partial student profile update.
func (uc *UserController) UpdateStudent(c *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	if err := uc.users.UpdateStudent(c.Request.Context(), c.Param("rollNo"), req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Student updated successfully"})
}

// RenameStudent changes a roll number, cascading through dependent rows.
func (uc *UserController) RenameStudent(c *gin.Context) {
	var req dto.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	if err := uc.users.RenameUser(c.Request.Context(), c.Param("rollNo"), req.NewID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Roll number updated successfully"})
}

// DeleteStudent removes a student with their account and enrollments.
func (uc *UserController) DeleteStudent(c *gin.Context) {
	if err := uc.users.DeleteStudent(c.Request.Context(), c.Param("rollNo")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Student deleted successfully"})
}

// UploadStudentPhoto stores a profile photo and returns its URL.
func (uc *UserController) UploadStudentPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		middleware.BindError(c, err)
		return
	}

	url, err := uc.users.UploadStudentPhoto(c.Request.Context(), c.Param("rollNo"), fh)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo uploaded successfully", "url": url})
}

// GetFaculty returns one faculty profile.
func (uc *UserController) GetFaculty(c *gin.Context) {
	faculty, err := uc.users.GetFaculty(c.Request.Context(), c.Param("staffNo"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, faculty)
}

// ListFaculties returns faculty profiles, optionally by designation.
func (uc *UserController) ListFaculties(c *gin.Context) {
	faculties, err := uc.users.ListFaculties(c.Request.Context(), c.Query("designation"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, faculties)
}

// UpdateFaculty applies a partial faculty profile update.
func (uc *UserController) UpdateFaculty(c *gin.Context) {
	var req dto.UpdateFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	if err := uc.users.UpdateFaculty(c.Request.Context(), c.Param("staffNo"), req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Faculty updated successfully"})
}

// RenameFaculty changes a staff number, cascading through dependent rows.
func (uc *UserController) RenameFaculty(c *gin.Context) {
	var req dto.RenameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	if err := uc.users.RenameUser(c.Request.Context(), c.Param("staffNo"), req.NewID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Staff number updated successfully"})
}

// DeleteFaculty removes a faculty member with their account.
func (uc *UserController) DeleteFaculty(c *gin.Context) {
	if err := uc.users.DeleteFaculty(c.Request.Context(), c.Param("staffNo")); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Faculty deleted successfully"})
}

// UploadFacultyPhoto stores a profile photo and returns its URL.
func (uc *UserController) UploadFacultyPhoto(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		middleware.BindError(c, err)
		return
	}

	url, err := uc.users.UploadFacultyPhoto(c.Request.Context(), c.Param("staffNo"), fh)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photo uploaded successfully", "url": url})
}

// ToppersOverall returns the top three students by CGPA, optionally of one
// year.
func (uc *UserController) ToppersOverall(c *gin.Context) {
	year, err := queryIntPtr(c, "year")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	toppers, err := uc.users.ToppersOverall(c.Request.Context(), year)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, toppers)
}

// ToppersClasswise returns a cohort ordered by CGPA.
func (uc *UserController) ToppersClasswise(c *gin.Context) {
	year, err := queryIntPtr(c, "year")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if year == nil {
		middleware.BindError(c, errMissingQuery("year"))
		return
	}

	toppers, err := uc.users.ToppersClasswise(c.Request.Context(), *year, c.Query("section"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, toppers)
}
