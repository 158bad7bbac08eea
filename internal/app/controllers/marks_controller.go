package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/app/services"
	"github.com/vhce/collegehub/internal/middleware"
)

// MarksController handles internal assessment marks, including the
// sheet-driven bulk flows.
type MarksController struct {
	marks *services.MarksService
}

// NewMarksController creates a new MarksController.
func NewMarksController(marks *services.MarksService) *MarksController {
	return &MarksController{marks: marks}
}

// SectionMarks returns the mark sheet of one course section.
func (mc *MarksController) SectionMarks(c *gin.Context) {
	marks, err := mc.marks.SectionMarks(c.Request.Context(), c.Query("course_code"), c.Query("section"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, marks)
}

// CIAReport returns a student's per-subject marks with computed totals.
func (mc *MarksController) CIAReport(c *gin.Context) {
	report, err := mc.marks.CIAReport(c.Request.Context(), c.Param("rollNo"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// Sync applies a full-record mark update to one enrollment row.
func (mc *MarksController) Sync(c *gin.Context) {
	var req dto.SyncMarksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	if err := mc.marks.Sync(c.Request.Context(), req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "Marks updated successfully"})
}

// ProcessSheet parses an uploaded mark sheet into preview entries.
func (mc *MarksController) ProcessSheet(c *gin.Context) {
	fh, data, err := formFileBytes(c, "file")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	sheet, err := mc.marks.ProcessSheet(c.Request.Context(), c.PostForm("course_code"), fh.Filename, data)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, sheet)
}

// BulkSync writes one mark field for many students of a course.
func (mc *MarksController) BulkSync(c *gin.Context) {
	var req dto.BulkSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BindError(c, err)
		return
	}

	result, err := mc.marks.BulkSync(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
