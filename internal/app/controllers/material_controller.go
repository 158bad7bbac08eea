package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/app/services"
	"github.com/vhce/collegehub/internal/middleware"
)

// MaterialController handles course documents and the coverage view.
type MaterialController struct {
	materials *services.MaterialService
}

// NewMaterialController creates a new MaterialController.
func NewMaterialController(materials *services.MaterialService) *MaterialController {
	return &MaterialController{materials: materials}
}

// Upload stores a document or records an external link against a course.
// Multipart form: course_code, type, title, link, file.
func (mc *MaterialController) Upload(c *gin.Context) {
	params := services.UploadParams{
		CourseCode: c.PostForm("course_code"),
		Type:       c.PostForm("type"),
		Title:      c.PostForm("title"),
		Link:       c.PostForm("link"),
	}
	if user, ok := middleware.CurrentUser(c); ok {
		params.PostedBy = user.ID
	}
	if fh, err := c.FormFile("file"); err == nil {
		params.File = fh
	}

	material, err := mc.materials.Upload(c.Request.Context(), params)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, material)
}

// Find resolves materials by id, course code or subject fragment.
func (mc *MaterialController) Find(c *gin.Context) {
	materials, err := mc.materials.Find(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// ListAll returns every stored material.
func (mc *MaterialController) ListAll(c *gin.Context) {
	materials, err := mc.materials.ListAll(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// ListByCourse returns the materials of one course code.
func (mc *MaterialController) ListByCourse(c *gin.Context) {
	materials, err := mc.materials.ListByCourse(c.Request.Context(), c.Param("courseCode"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

// Delete removes a material and its stored file.
func (mc *MaterialController) Delete(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := mc.materials.Delete(c.Request.Context(), id); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Material deleted successfully"})
}

// Progress returns the syllabus coverage derived from a course's materials.
func (mc *MaterialController) Progress(c *gin.Context) {
	courseCode := c.Query("course_code")
	if courseCode == "" {
		middleware.HandleAPIError(c, errMissingQuery("course_code"))
		return
	}

	progress, err := mc.materials.Progress(c.Request.Context(), courseCode, c.Query("section"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}
