package controllers

import (
	"fmt"
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vhce/collegehub/internal/pkg/apperrors"
)

// Controllers bundles the HTTP layer for route registration.
type Controllers struct {
	Auth          *AuthController
	Users         *UserController
	Courses       *CourseController
	Marks         *MarksController
	Materials     *MaterialController
	Announcements *AnnouncementController
	Advisors      *AdvisorController
	Placements    *PlacementController
	Arrears       *ArrearController
}

// errMissingQuery reports a required query parameter that was not sent.
func errMissingQuery(name string) error {
	return apperrors.NewBadRequestError(fmt.Sprintf("query parameter %q is required", name))
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewBadRequestError(fmt.Sprintf("invalid %s %q", name, c.Param(name)))
	}
	return id, nil
}

// queryIntPtr parses an optional integer query parameter.
func queryIntPtr(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid %s %q", name, raw))
	}
	return &v, nil
}

// formFileBytes reads an uploaded form file fully into memory. Sheets are
// small; the parsers want a byte slice anyway.
func formFileBytes(c *gin.Context, field string) (*multipart.FileHeader, []byte, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError(fmt.Sprintf("form file %q is required", field))
	}
	f, err := fh.Open()
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError(err.Error())
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, nil, apperrors.NewBadRequestError(err.Error())
	}
	return fh, data, nil
}
