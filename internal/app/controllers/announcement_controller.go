package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/app/services"
	"github.com/vhce/collegehub/internal/middleware"
)

// AnnouncementController handles targeted notices.
type AnnouncementController struct {
	announcements *services.AnnouncementService
}

// NewAnnouncementController creates a new AnnouncementController.
func NewAnnouncementController(announcements *services.AnnouncementService) *AnnouncementController {
	return &AnnouncementController{announcements: announcements}
}

// Create posts an announcement on behalf of the authenticated user.
func (ac *AnnouncementController) Create(c *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	postedBy := "admin"
	if user, ok := middleware.CurrentUser(c); ok {
		postedBy = user.ID
	}

	a, err := ac.announcements.Create(c.Request.Context(), req, postedBy)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// List returns the feed for the caller. Authenticated callers get their
// role's tiers; students additionally get section and year filtering.
// Anonymous callers get Global only.
func (ac *AnnouncementController) List(c *gin.Context) {
	var audience, studentID string
	if user, ok := middleware.CurrentUser(c); ok {
		audience = string(user.Role)
		if user.Role == models.RoleStudent {
			studentID = user.ID
		}
	}

	feed, err := ac.announcements.ListForViewer(c.Request.Context(), audience, studentID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, feed)
}

// Delete removes an announcement.
func (ac *AnnouncementController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := ac.announcements.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Announcement deleted successfully"})
}
