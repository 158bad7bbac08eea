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

// PlacementController handles the placement showcase.
type PlacementController struct {
	placements *services.PlacementService
}

// NewPlacementController creates a new PlacementController.
func NewPlacementController(placements *services.PlacementService) *PlacementController {
	return &PlacementController{placements: placements}
}

// CreateAnnouncement posts a placement notice to the whole campus.
func (pc *PlacementController) CreateAnnouncement(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	postedBy := "placement_cell"
	if user, ok := middleware.CurrentUser(c); ok {
		postedBy = user.ID
	}

	a, err := pc.placements.CreateAnnouncement(c.Request.Context(), req, postedBy)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// DeleteAnnouncement removes a placement notice.
func (pc *PlacementController) DeleteAnnouncement(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := pc.placements.DeleteAnnouncement(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Announcement deleted successfully"})
}

// AddCompany records a recruiting company. Multipart form: name, logo_url
// or logo file.
func (pc *PlacementController) AddCompany(c *gin.Context) {
	logo, _ := c.FormFile("logo")

	company, err := pc.placements.AddCompany(c.Request.Context(),
		c.PostForm("name"), c.PostForm("logo_url"), logo)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, company)
}

// ListCompanies returns all recruiting companies.
func (pc *PlacementController) ListCompanies(c *gin.Context) {
	companies, err := pc.placements.ListCompanies(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, companies)
}

// DeleteCompany removes a company.
func (pc *PlacementController) DeleteCompany(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := pc.placements.DeleteCompany(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Company deleted successfully"})
}

// AddPlacedStudent records a placement success. Multipart form: name, dept,
// lpa, company_name, photo_url or photo file, linkedin_url.
func (pc *PlacementController) AddPlacedStudent(c *gin.Context) {
	lpa, err := strconv.ParseFloat(c.PostForm("lpa"), 64)
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("form field lpa must be a number"))
		return
	}

	req := dto.CreatePlacedStudentRequest{
		Name:        c.PostForm("name"),
		Dept:        c.PostForm("dept"),
		LPA:         lpa,
		CompanyName: c.PostForm("company_name"),
		PhotoURL:    c.PostForm("photo_url"),
	}
	if v := c.PostForm("linkedin_url"); v != "" {
		req.LinkedinURL = &v
	}
	photo, _ := c.FormFile("photo")

	placed, err := pc.placements.AddPlacedStudent(c.Request.Context(), req, photo)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, placed)
}

// ListPlacedStudents returns all placement records.
func (pc *PlacementController) ListPlacedStudents(c *gin.Context) {
	placed, err := pc.placements.ListPlacedStudents(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, placed)
}

// DeletePlacedStudent removes a placement record.
func (pc *PlacementController) DeletePlacedStudent(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := pc.placements.DeletePlacedStudent(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Placed student deleted successfully"})
}
