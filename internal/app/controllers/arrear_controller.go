package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/app/services"
	"github.com/vhce/collegehub/internal/middleware"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
)

// ArrearController handles arrear sheet imports and lookups.
type ArrearController struct {
	arrears *services.ArrearService
}

// NewArrearController creates a new ArrearController.
func NewArrearController(arrears *services.ArrearService) *ArrearController {
	return &ArrearController{arrears: arrears}
}

// Preview cross-references an arrear sheet against a cohort without writing
// anything. Multipart form: year, semester, section, file.
func (ac *ArrearController) Preview(c *gin.Context) {
	year, err := strconv.Atoi(c.PostForm("year"))
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("form field year must be a number"))
		return
	}
	semester, err := strconv.Atoi(c.PostForm("semester"))
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewBadRequestError("form field semester must be a number"))
		return
	}
	fh, data, err := formFileBytes(c, "file")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	resp, err := ac.arrears.Preview(c.Request.Context(), year, semester, c.PostForm("section"), fh.Filename, data)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Upload commits an arrear sheet; the response carries the batch id for a
// later undo. Multipart form: batch, file.
func (ac *ArrearController) Upload(c *gin.Context) {
	fh, data, err := formFileBytes(c, "file")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	result, err := ac.arrears.Upload(c.Request.Context(), c.PostForm("batch"), fh.Filename, data)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Undo reverses one import batch.
func (ac *ArrearController) Undo(c *gin.Context) {
	result, err := ac.arrears.Undo(c.Request.Context(), c.Param("batchID"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListByStudent returns one student's arrears.
func (ac *ArrearController) ListByStudent(c *gin.Context) {
	arrears, err := ac.arrears.ListByStudent(c.Request.Context(), c.Param("rollNo"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, arrears)
}

// ListAll returns every arrear record.
func (ac *ArrearController) ListAll(c *gin.Context) {
	arrears, err := ac.arrears.ListAll(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, arrears)
}
