package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
	"github.com/vhce/collegehub/internal/pkg/logger"
)

// AnnouncementRepository handles notice rows.
type AnnouncementRepository struct {
	db Querier
	sb squirrel.StatementBuilderType
}

// NewAnnouncementRepository creates a new AnnouncementRepository.
func NewAnnouncementRepository(db Querier) *AnnouncementRepository {
	return &AnnouncementRepository{db: db, sb: newBuilder()}
}

// Create inserts an announcement and returns its id.
func (r *AnnouncementRepository) Create(ctx context.Context, a *models.Announcement) (int64, error) {
	sql, args, err := r.sb.Insert("announcements").
		Columns("title", "content", "type", "target_year", "external_link", "course_code", "section", "posted_by").
		Values(a.Title, a.Content, a.Type, a.TargetYear, a.ExternalLink, a.CourseCode, a.Section, a.PostedBy).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create announcement query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Str("title", a.Title).Msg("Error creating announcement")
		return 0, fmt.Errorf("error creating announcement: %w", err)
	}
	return id, nil
}

// ListAll retrieves every announcement, newest first. Audience filtering is
// done by the service, which knows the viewer's role and enrollments.
func (r *AnnouncementRepository) ListAll(ctx context.Context) ([]*models.Announcement, error) {
	sql, args, err := r.sb.Select(
		"id", "title", "content", "type", "target_year", "external_link",
		"course_code", "section", "posted_by", "created_at").
		From("announcements").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list announcements query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying announcements")
		return nil, fmt.Errorf("error querying announcements: %w", err)
	}
	defer rows.Close()

	announcements := []*models.Announcement{}
	for rows.Next() {
		a := &models.Announcement{}
		var courseCode *string
		if err := rows.Scan(&a.ID, &a.Title, &a.Content, &a.Type, &a.TargetYear,
			&a.ExternalLink, &courseCode, &a.Section, &a.PostedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning announcement row: %w", err)
		}
		if courseCode != nil {
			a.CourseCode = *courseCode
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating announcement rows: %w", err)
	}
	return announcements, nil
}

// Delete removes an announcement.
func (r *AnnouncementRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("announcements").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete announcement query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("announcementID", id).Msg("Error deleting announcement")
		return fmt.Errorf("error deleting announcement: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAnnouncementNotFound
	}
	return nil
}
