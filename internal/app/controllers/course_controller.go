package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/app/services"
	"github.com/vhce/collegehub/internal/middleware"
)

// CourseController handles course offerings and enrollment.
type CourseController struct {
	courses *services.CourseService
}

// NewCourseController creates a new CourseController.
func NewCourseController(courses *services.CourseService) *CourseController {
	return &CourseController{courses: courses}
}

// Create adds a course offering and enrolls the section roster.
func (cc *CourseController) Create(c *gin.Context) {
	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	course, err := cc.courses.Create(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// List returns courses filtered by the query parameters.
func (cc *CourseController) List(c *gin.Context) {
	semester, err := queryIntPtr(c, "semester")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	courses, err := cc.courses.List(c.Request.Context(), semester, c.Query("section"), c.Query("faculty_id"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// MyCourses returns the courses the authenticated faculty member teaches.
func (cc *CourseController) MyCourses(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
		return
	}

	courses, err := cc.courses.ListByFaculty(c.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, courses)
}

// AssignFaculty attaches a faculty member to a course.
func (cc *CourseController) AssignFaculty(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.AssignFacultyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	if err := cc.courses.AssignFaculty(c.Request.Context(), id, req.FacultyID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Faculty assigned successfully"})
}

// Enroll adds one student to a course offering.
func (cc *CourseController) Enroll(c *gin.Context) {
	var req dto.EnrollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	message, err := cc.courses.Enroll(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

// Delete removes a course with its enrollment rows.
func (cc *CourseController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.courses.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Course deleted successfully"})
}
