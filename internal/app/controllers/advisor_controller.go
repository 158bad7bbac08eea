package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/app/services"
	"github.com/vhce/collegehub/internal/middleware"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
)

// AdvisorController handles advisor assignments, the advisor's cohort views
// and class documents.
type AdvisorController struct {
	advisors *services.AdvisorService
}

// NewAdvisorController creates a new AdvisorController.
func NewAdvisorController(advisors *services.AdvisorService) *AdvisorController {
	return &AdvisorController{advisors: advisors}
}

// Assign makes a faculty member the advisor of a cohort.
func (ac *AdvisorController) Assign(c *gin.Context) {
	var req dto.AssignAdvisorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	advisor, err := ac.advisors.Assign(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, advisor)
}

// List returns all advisor assignments with profiles.
func (ac *AdvisorController) List(c *gin.Context) {
	advisors, err := ac.advisors.List(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, advisors)
}

// MyClass returns the cohort assigned to the authenticated faculty member.
func (ac *AdvisorController) MyClass(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrorCodeUnauthorized, "authentication required"))
		return
	}

	class, err := ac.advisors.MyClass(c.Request.Context(), user.ID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, class)
}

// UpdateStudentStats writes advisor-maintained numbers onto a student.
func (ac *AdvisorController) UpdateStudentStats(c *gin.Context) {
	var req dto.UpdateStudentStatsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	if err := ac.advisors.UpdateStudentStats(c.Request.Context(), req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Student stats updated successfully"})
}

// UploadDoc stores a class document for the advisor's cohort.
// Multipart form: year, section, doc_type, file.
func (ac *AdvisorController) UploadDoc(c *gin.Context) {
	year, err := strconv.Atoi(c.PostForm("year"))
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("form field year must be a number"))
		return
	}
	fh, err := c.FormFile("file")
	if err != nil {
		middleware.BindError(c, err)
		return
	}

	postedBy := ""
	if user, ok := middleware.CurrentUser(c); ok {
		postedBy = user.ID
	}

	doc, err := ac.advisors.UploadDoc(c.Request.Context(), year, c.PostForm("section"),
		c.PostForm("doc_type"), postedBy, fh)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// MyDocs returns the class documents of one section.
func (ac *AdvisorController) MyDocs(c *gin.Context) {
	section := c.Query("section")
	if section == "" {
		middleware.HandleAPIError(c, errMissingQuery("section"))
		return
	}

	docs, err := ac.advisors.MyDocs(c.Request.Context(), section)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// DeleteDoc removes a class document and its file.
func (ac *AdvisorController) DeleteDoc(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ac.advisors.DeleteDoc(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Document deleted successfully"})
}

// Remove deletes an advisor assignment.
func (ac *AdvisorController) Remove(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ac.advisors.Remove(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Advisor removed successfully"})
}
