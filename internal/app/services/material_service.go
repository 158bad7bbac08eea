package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/filestorage"
	"github.com/vhce/collegehub/internal/pkg/helpers"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

const (
	progressUnits   = 5
	requiredPerUnit = 2
)

// MaterialService manages uploaded course documents and the coverage
// heuristic derived from them.
type MaterialService struct {
	store   Store
	storage *filestorage.LocalStorage
}

// NewMaterialService creates a new MaterialService.
func NewMaterialService(store Store, storage *filestorage.LocalStorage) *MaterialService {
	return &MaterialService{store: store, storage: storage}
}

// UploadParams carries the multipart fields of a material upload. Exactly
// one of File or Link must be set.
type UploadParams struct {
	CourseCode string
	Type       string
	Title      string
	PostedBy   string
	Link       string
	File       *multipart.FileHeader
}

// Upload stores a document (or records an external link) against a course.
// An unknown course code is allowed; the material is kept with a zero
// course id so it still resolves by code.
func (s *MaterialService) Upload(ctx context.Context, p UploadParams) (*models.Material, error) {
	code := helpers.NormalizeCode(p.CourseCode)
	if code == "" {
		code = models.GlobalCourseCode
	}
	if p.Title == "" {
		return nil, apperrors.NewBadRequestError("title is required")
	}

	fileLink := strings.TrimSpace(p.Link)
	if p.File != nil {
		_, url, err := s.storage.SaveUpload(code, p.File)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		fileLink = url
	}
	if fileLink == "" {
		return nil, apperrors.NewBadRequestError("either a file or a link is required")
	}

	material := &models.Material{
		CourseCode: code,
		Type:       p.Type,
		Title:      p.Title,
		FileLink:   fileLink,
		PostedBy:   p.PostedBy,
	}
	if code != models.GlobalCourseCode {
		if courses, err := s.store.Courses().FindByCode(ctx, code); err == nil && len(courses) > 0 {
			material.CourseID = &courses[0].ID
		}
	}

	id, err := s.store.Materials().Create(ctx, material)
	if err != nil {
		return nil, err
	}
	material.ID = id
	return material, nil
}

// Find resolves materials by a flexible identifier. The chain: numeric
// course id, then course code exact-or-substring, then subject title
// fragment resolved through the enrollment table back to course codes.
func (s *MaterialService) Find(ctx context.Context, identifier string) ([]*models.Material, error) {
	identifier = strings.TrimSpace(identifier)

	if id, err := strconv.ParseInt(identifier, 10, 64); err == nil {
		return s.store.Materials().ListByCourseID(ctx, id)
	}

	code := helpers.NormalizeCode(identifier)
	materials, err := s.store.Materials().ListByCodePattern(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(materials) > 0 {
		return materials, nil
	}

	courses, err := s.store.Courses().FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if len(courses) > 0 {
		codes := make([]string, 0, len(courses))
		for _, c := range courses {
			codes = append(codes, c.Code)
		}
		materials, err = s.store.Materials().ListByCourseCodes(ctx, codes)
		if err != nil {
			return nil, err
		}
		if len(materials) > 0 {
			return materials, nil
		}
	}

	// Last resort: the identifier may be a subject title fragment.
	codes, err := s.store.Academic().CourseCodesBySubject(ctx, identifier)
	if err != nil {
		return nil, err
	}
	return s.store.Materials().ListByCourseCodes(ctx, codes)
}

// ListByCourse retrieves the materials of one course code.
func (s *MaterialService) ListByCourse(ctx context.Context, courseCode string) ([]*models.Material, error) {
	return s.store.Materials().ListByCourseCodes(ctx, []string{helpers.NormalizeCode(courseCode)})
}

// ListAll retrieves every stored material.
func (s *MaterialService) ListAll(ctx context.Context) ([]*models.Material, error) {
	return s.store.Materials().ListAll(ctx)
}

// Delete removes a material row and its stored file, if any.
func (s *MaterialService) Delete(ctx context.Context, id int64) error {
	material, err := s.store.Materials().GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.Materials().Delete(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteFile(material.FileLink); err != nil {
		logger.Warn().Err(err).Int64("materialID", id).Msg("Could not remove material file")
	}
	return nil
}

// Progress derives syllabus coverage for a course section from its uploaded
// materials. A unit counts as progressing when material titles mention
// "Unit N"; question bank and video deliverables are flagged separately.
func (s *MaterialService) Progress(ctx context.Context, courseCode, section string) (*dto.CourseProgress, error) {
	courseCode = helpers.NormalizeCode(courseCode)
	materials, err := s.store.Materials().ListByCourseCodes(ctx, []string{courseCode})
	if err != nil {
		return nil, err
	}

	progress := &dto.CourseProgress{
		CourseCode: courseCode,
		Section:    helpers.NormalizeCode(section),
		Units:      make([]dto.UnitProgress, progressUnits),
	}
	for i := range progress.Units {
		progress.Units[i] = dto.UnitProgress{Unit: i + 1, Required: requiredPerUnit}
	}

	for _, m := range materials {
		title := strings.ToLower(m.Title)
		mtype := strings.ToLower(m.Type)

		for n := 1; n <= progressUnits; n++ {
			if !strings.Contains(title, fmt.Sprintf("unit %d", n)) &&
				!strings.Contains(title, fmt.Sprintf("unit-%d", n)) {
				continue
			}
			unit := &progress.Units[n-1]
			unit.Completed++
			if strings.Contains(mtype, "question") || strings.Contains(title, "question bank") ||
				strings.Contains(mtype, "qb") {
				unit.QBDone = true
			}
			if strings.Contains(mtype, "video") || strings.Contains(title, "video") {
				unit.VideoDone = true
			}
		}
	}
	return progress, nil
}
