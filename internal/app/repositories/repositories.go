package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vhce/collegehub/internal/db"
)

// Querier is the subset of pgx operations the repositories need. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so a Repositories value can run
// against the pool or inside a transaction without code changes.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// newBuilder returns a squirrel builder with Postgres placeholders.
func newBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// Repositories bundles all repository instances over one Querier.
type Repositories struct {
	pool *pgxpool.Pool

	Users         *UserRepository
	Students      *StudentRepository
	Faculties     *FacultyRepository
	Courses       *CourseRepository
	Academic      *AcademicRepository
	Materials     *MaterialRepository
	Announcements *AnnouncementRepository
	Advisors      *AdvisorRepository
	Placements    *PlacementRepository
	Arrears       *ArrearRepository
}

// NewRepositories creates the repository set backed by the pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	r := newRepositories(pool)
	r.pool = pool
	return r
}

func newRepositories(q Querier) *Repositories {
	return &Repositories{
		Users:         NewUserRepository(q),
		Students:      NewStudentRepository(q),
		Faculties:     NewFacultyRepository(q),
		Courses:       NewCourseRepository(q),
		Academic:      NewAcademicRepository(q),
		Materials:     NewMaterialRepository(q),
		Announcements: NewAnnouncementRepository(q),
		Advisors:      NewAdvisorRepository(q),
		Placements:    NewPlacementRepository(q),
		Arrears:       NewArrearRepository(q),
	}
}

// WithTx runs fn with a repository set bound to a single transaction.
// The transaction commits when fn returns nil and rolls back otherwise.
func (r *Repositories) WithTx(ctx context.Context, fn func(ctx context.Context, txRepos *Repositories) error) error {
	if r.pool == nil {
		// Already inside a transaction; reuse the current set.
		return fn(ctx, r)
	}

	return db.WithTransaction(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		return fn(ctx, newRepositories(tx))
	})
}
