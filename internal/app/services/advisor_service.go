package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/filestorage"
	"github.com/vhce/collegehub/internal/pkg/helpers"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

const advisorDocsDir = "advisor_docs"

// AdvisorService manages class advisor assignments, the cohort views they
// unlock, and the documents advisors maintain for their class.
type AdvisorService struct {
	store   Store
	storage *filestorage.LocalStorage
}

// NewAdvisorService creates a new AdvisorService.
func NewAdvisorService(store Store, storage *filestorage.LocalStorage) *AdvisorService {
	return &AdvisorService{store: store, storage: storage}
}

// Assign makes a faculty member the advisor of a cohort. A cohort holds at
// most one advisor; reassignment requires removing the old mapping first.
func (s *AdvisorService) Assign(ctx context.Context, req dto.AssignAdvisorRequest) (*models.ClassAdvisor, error) {
	facultyID := helpers.NormalizeCode(req.FacultyID)
	if _, err := s.store.Faculties().GetByStaffNo(ctx, facultyID); err != nil {
		return nil, err
	}

	advisor := &models.ClassAdvisor{
		AdvisorNo: "ADV-" + facultyID,
		FacultyID: facultyID,
		Year:      req.Year,
		Semester:  req.Semester,
		Section:   helpers.NormalizeCode(req.Section),
	}
	id, err := s.store.Advisors().Create(ctx, advisor)
	if err != nil {
		return nil, err
	}
	advisor.ID = id
	return advisor, nil
}

// List retrieves all assignments with the advisors' profiles.
func (s *AdvisorService) List(ctx context.Context) ([]*dto.AdvisorDetail, error) {
	return s.store.Advisors().ListDetails(ctx)
}

// MyClassResponse is an advisor's cohort: the mapping plus its students.
type MyClassResponse struct {
	Advisor  *models.ClassAdvisor `json:"advisor"`
	Students []*models.Student    `json:"students"`
}

// MyClass retrieves the cohort assigned to a faculty member.
func (s *AdvisorService) MyClass(ctx context.Context, facultyID string) (*MyClassResponse, error) {
	advisor, err := s.store.Advisors().GetByFacultyID(ctx, helpers.NormalizeCode(facultyID))
	if err != nil {
		return nil, err
	}
	students, err := s.store.Students().List(ctx, &advisor.Year, nil, advisor.Section)
	if err != nil {
		return nil, err
	}
	return &MyClassResponse{Advisor: advisor, Students: students}, nil
}

// UpdateStudentStats writes the advisor-maintained headline numbers onto a
// student profile.
func (s *AdvisorService) UpdateStudentStats(ctx context.Context, req dto.UpdateStudentStatsRequest) error {
	fields := map[string]any{}
	if req.CGPA != nil {
		fields["cgpa"] = *req.CGPA
	}
	if req.AttendancePercentage != nil {
		fields["attendance_percentage"] = *req.AttendancePercentage
	}
	if len(fields) == 0 {
		return apperrors.NewBadRequestError("no stats to update")
	}
	return s.store.Students().Update(ctx, helpers.NormalizeCode(req.RollNo), fields)
}

// UploadDoc stores a class document (timetable, planner) under the cohort's
// directory and records it as a Global material.
func (s *AdvisorService) UploadDoc(ctx context.Context, year int, section, docType, postedBy string, fh *multipart.FileHeader) (*models.Material, error) {
	section = helpers.NormalizeCode(section)
	if section == "" {
		return nil, apperrors.NewBadRequestError("section is required")
	}
	if docType == "" {
		docType = "advisor_doc"
	}

	subDir := fmt.Sprintf("%s/%d/%s", advisorDocsDir, year, section)
	_, url, err := s.storage.SaveUploadTo(subDir, docType, fh)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	material := &models.Material{
		CourseCode: models.GlobalCourseCode,
		Type:       docType,
		Title:      fh.Filename,
		FileLink:   url,
		PostedBy:   postedBy,
	}
	id, err := s.store.Materials().Create(ctx, material)
	if err != nil {
		return nil, err
	}
	material.ID = id

	logger.Info().Int("year", year).Str("section", section).
		Str("type", docType).Msg("Advisor document uploaded")
	return material, nil
}

// MyDocs retrieves the class documents of one section, any year.
func (s *AdvisorService) MyDocs(ctx context.Context, section string) ([]*models.Material, error) {
	section = helpers.NormalizeCode(section)
	docs, err := s.store.Materials().ListByLinkFragment(ctx, advisorDocsDir+"/")
	if err != nil {
		return nil, err
	}

	matched := []*models.Material{}
	for _, d := range docs {
		if strings.Contains(d.FileLink, "/"+section+"/") {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

// DeleteDoc removes a class document and its file.
func (s *AdvisorService) DeleteDoc(ctx context.Context, docID int64) error {
	doc, err := s.store.Materials().GetByID(ctx, docID)
	if err != nil {
		return err
	}
	if err := s.store.Materials().Delete(ctx, docID); err != nil {
		return err
	}
	if err := s.storage.DeleteFile(doc.FileLink); err != nil {
		logger.Warn().Err(err).Int64("docID", docID).Msg("Could not remove advisor document file")
	}
	return nil
}

// Remove deletes an advisor assignment.
func (s *AdvisorService) Remove(ctx context.Context, id int64) error {
	return s.store.Advisors().Delete(ctx, id)
}
