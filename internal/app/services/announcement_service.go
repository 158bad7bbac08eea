package services

import (
	"context"
	"strings"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/helpers"
)

// studentAudiences are the announcement types a student feed includes.
var studentAudiences = map[string]struct{}{
	models.AnnouncementGlobal:    {},
	models.AnnouncementStudent:   {},
	models.AnnouncementSubject:   {},
	models.AnnouncementPlacement: {},
	models.AnnouncementLab:       {},
}

// facultyAudiences are the announcement types a faculty feed includes.
var facultyAudiences = map[string]struct{}{
	models.AnnouncementGlobal:  {},
	models.AnnouncementFaculty: {},
}

// AnnouncementService posts and filters targeted notices.
type AnnouncementService struct {
	store Store
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(store Store) *AnnouncementService {
	return &AnnouncementService{store: store}
}

// cleanAnnouncementCode canonicalizes an announcement's course code. Lab
// announcements arrive with the "(Lab)" tag glued to the code; the tag is
// noise for matching, so it is stripped before normalization.
func cleanAnnouncementCode(code string) string {
	cleaned := helpers.NormalizeCode(code)
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "(LAB)", ""))
	if cleaned == "" {
		return models.GlobalCourseCode
	}
	return cleaned
}

// Create posts an announcement. Missing targeting falls back to the widest
// audience: Global code, every section.
func (s *AnnouncementService) Create(ctx context.Context, req dto.CreateAnnouncementRequest, postedBy string) (*models.Announcement, error) {
	a := &models.Announcement{
		Title:        req.Title,
		Content:      req.Content,
		Type:         req.Type,
		TargetYear:   req.TargetYear,
		ExternalLink: req.ExternalLink,
		CourseCode:   cleanAnnouncementCode(req.CourseCode),
		Section:      helpers.NormalizeCode(req.Section),
		PostedBy:     postedBy,
	}
	if a.Section == "" {
		a.Section = "ALL"
	}

	id, err := s.store.Announcements().Create(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return a, nil
}

// ListForViewer filters the feed by audience. Students see the student
// tiers intersected with their section and target year; faculty see the
// faculty tiers; anyone else gets Global only.
func (s *AnnouncementService) ListForViewer(ctx context.Context, audience, studentID string) ([]*models.Announcement, error) {
	all, err := s.store.Announcements().ListAll(ctx)
	if err != nil {
		return nil, err
	}

	var student *models.Student
	if audience == string(models.RoleStudent) && studentID != "" {
		// Best effort; an unknown student id still gets the role-wide feed.
		student, _ = s.store.Students().GetByRollNo(ctx, helpers.NormalizeCode(studentID))
	}

	var allowed map[string]struct{}
	switch audience {
	case string(models.RoleStudent):
		allowed = studentAudiences
	case string(models.RoleFaculty), string(models.RoleHOD):
		allowed = facultyAudiences
	default:
		allowed = map[string]struct{}{models.AnnouncementGlobal: {}}
	}

	feed := []*models.Announcement{}
	for _, a := range all {
		if _, ok := allowed[a.Type]; !ok {
			continue
		}
		if student != nil {
			if !sectionMatches(a.Section, student.Section) {
				continue
			}
			if a.TargetYear != nil && *a.TargetYear != student.Year {
				continue
			}
		}
		feed = append(feed, a)
	}
	return feed, nil
}

// sectionMatches reports whether an announcement aimed at section s is
// visible to a viewer in viewerSection. "All" is visible everywhere.
func sectionMatches(s, viewerSection string) bool {
	s = helpers.NormalizeCode(s)
	return s == "" || s == "ALL" || s == helpers.NormalizeCode(viewerSection)
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id int64) error {
	return s.store.Announcements().Delete(ctx, id)
}
