package services

import (
	"context"
	"mime/multipart"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/filestorage"
)

// PlacementService manages the placement showcase: recruiting companies,
// placed students and placement announcements.
type PlacementService struct {
	store   Store
	storage *filestorage.LocalStorage
}

// NewPlacementService creates a new PlacementService.
func NewPlacementService(store Store, storage *filestorage.LocalStorage) *PlacementService {
	return &PlacementService{store: store, storage: storage}
}

// CreateAnnouncement posts a placement notice to the whole campus.
func (s *PlacementService) CreateAnnouncement(ctx context.Context, req dto.CreateAnnouncementRequest, postedBy string) (*models.Announcement, error) {
	a := &models.Announcement{
		Title:        req.Title,
		Content:      req.Content,
		Type:         models.AnnouncementPlacement,
		TargetYear:   req.TargetYear,
		ExternalLink: req.ExternalLink,
		CourseCode:   models.GlobalCourseCode,
		Section:      "ALL",
		PostedBy:     postedBy,
	}
	id, err := s.store.Announcements().Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

// DeleteAnnouncement removes a placement notice.
func (s *PlacementService) DeleteAnnouncement(ctx context.Context, id int64) error {
	return s.store.Announcements().Delete(ctx, id)
}

// AddCompany records a recruiting company. The logo is either uploaded or
// referenced by URL.
func (s *PlacementService) AddCompany(ctx context.Context, name, logoURL string, logo *multipart.FileHeader) (*models.Company, error) {
	if name == "" {
		return nil, apperrors.NewBadRequestError("company name is required")
	}
	if logo != nil {
		_, url, err := s.storage.SaveUpload("company", logo)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		logoURL = url
	}
	if logoURL == "" {
		return nil, apperrors.NewBadRequestError("a logo file or logo_url is required")
	}

	company := &models.Company{Name: name, LogoURL: logoURL}
	id, err := s.store.Placements().CreateCompany(ctx, company)
	if err != nil {
		return nil, err
	}
	company.ID = id
	return company, nil
}

// ListCompanies retrieves all recruiting companies.
func (s *PlacementService) ListCompanies(ctx context.Context) ([]*models.Company, error) {
	return s.store.Placements().ListCompanies(ctx)
}

// DeleteCompany removes a company.
func (s *PlacementService) DeleteCompany(ctx context.Context, id int64) error {
	return s.store.Placements().DeleteCompany(ctx, id)
}

// AddPlacedStudent records a placement success, with an optional uploaded
// photo overriding the photo URL in the request.
func (s *PlacementService) AddPlacedStudent(ctx context.Context, req dto.CreatePlacedStudentRequest, photo *multipart.FileHeader) (*models.PlacedStudent, error) {
	photoURL := req.PhotoURL
	if photo != nil {
		_, url, err := s.storage.SaveUpload("placed", photo)
		if err != nil {
			return nil, apperrors.NewBadRequestError(err.Error())
		}
		photoURL = url
	}

	placed := &models.PlacedStudent{
		Name:        req.Name,
		Dept:        req.Dept,
		LPA:         req.LPA,
		CompanyName: req.CompanyName,
		PhotoURL:    photoURL,
		LinkedinURL: req.LinkedinURL,
	}
	id, err := s.store.Placements().CreatePlacedStudent(ctx, placed)
	if err != nil {
		return nil, err
	}
	placed.ID = id
	return placed, nil
}

// ListPlacedStudents retrieves all placement records.
func (s *PlacementService) ListPlacedStudents(ctx context.Context) ([]*models.PlacedStudent, error) {
	return s.store.Placements().ListPlacedStudents(ctx)
}

// DeletePlacedStudent removes a placement record.
func (s *PlacementService) DeletePlacedStudent(ctx context.Context, id int64) error {
	return s.store.Placements().DeletePlacedStudent(ctx, id)
}
