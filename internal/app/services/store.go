package services

import (
	"context"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/app/repositories"
)

// The services depend on these narrow repository interfaces rather than the
// concrete pgx-backed types, so tests can substitute in-memory fakes. The
// real repositories satisfy them structurally.

// UserRepo persists account rows.
type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
	UpdatePassword(ctx context.Context, id, password string) error
	Rename(ctx context.Context, oldID, newID string) error
	Delete(ctx context.Context, id string) error
}

// StudentRepo persists student profiles.
type StudentRepo interface {
	Create(ctx context.Context, s *models.Student) error
	GetByRollNo(ctx context.Context, rollNo string) (*models.Student, error)
	List(ctx context.Context, year, semester *int, section string) ([]*models.Student, error)
	ListBySemesterSection(ctx context.Context, semester int, section string) ([]*models.Student, error)
	Toppers(ctx context.Context, limit uint64) ([]*models.Student, error)
	Update(ctx context.Context, rollNo string, fields map[string]any) error
	SetProfilePic(ctx context.Context, rollNo string, url *string) error
	Delete(ctx context.Context, rollNo string) error
}

// FacultyRepo persists faculty profiles.
type FacultyRepo interface {
	Create(ctx context.Context, f *models.Faculty) error
	GetByStaffNo(ctx context.Context, staffNo string) (*models.Faculty, error)
	List(ctx context.Context, designation string) ([]*models.Faculty, error)
	Update(ctx context.Context, staffNo string, fields map[string]any) error
	SetProfilePic(ctx context.Context, staffNo string, url *string) error
	Delete(ctx context.Context, staffNo string) error
}

// CourseRepo persists course offerings.
type CourseRepo interface {
	Create(ctx context.Context, c *models.Course) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Course, error)
	GetByCodeSection(ctx context.Context, code, section string) (*models.Course, error)
	FindByCode(ctx context.Context, code string) ([]*models.Course, error)
	List(ctx context.Context, semester *int, section, facultyID string) ([]*models.Course, error)
	ListBySemesterSection(ctx context.Context, semester int, section string) ([]*models.Course, error)
	AssignFaculty(ctx context.Context, courseID int64, facultyID *string) error
	DetachFaculty(ctx context.Context, facultyID string) error
	Delete(ctx context.Context, id int64) error
}

// AcademicRepo persists enrollment and mark rows.
type AcademicRepo interface {
	CreateEnrollment(ctx context.Context, ad *models.AcademicData) error
	SectionMarks(ctx context.Context, courseCode, section string) ([]*models.SectionMark, error)
	ListByStudent(ctx context.Context, rollNo string) ([]*models.AcademicData, error)
	UpdateFields(ctx context.Context, rollNo, courseCode string, fields map[string]any) error
	SetMarkColumn(ctx context.Context, courseCode, rollNo, column string, value float64) (bool, error)
	CourseCodesBySubject(ctx context.Context, fragment string) ([]string, error)
	DeleteByCourse(ctx context.Context, courseID int64) error
	DeleteByStudent(ctx context.Context, rollNo string) error
	GetStatus(ctx context.Context, rollNo, courseCode string) (string, error)
}

// MaterialRepo persists uploaded documents and links.
type MaterialRepo interface {
	Create(ctx context.Context, m *models.Material) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Material, error)
	ListByCourseCodes(ctx context.Context, codes []string) ([]*models.Material, error)
	ListByCourseID(ctx context.Context, courseID int64) ([]*models.Material, error)
	ListByCodePattern(ctx context.Context, code string) ([]*models.Material, error)
	ListByLinkFragment(ctx context.Context, fragment string) ([]*models.Material, error)
	ListAll(ctx context.Context) ([]*models.Material, error)
	Delete(ctx context.Context, id int64) error
}

// AnnouncementRepo persists notices.
type AnnouncementRepo interface {
	Create(ctx context.Context, a *models.Announcement) (int64, error)
	ListAll(ctx context.Context) ([]*models.Announcement, error)
	Delete(ctx context.Context, id int64) error
}

// AdvisorRepo persists class advisor assignments.
type AdvisorRepo interface {
	Create(ctx context.Context, a *models.ClassAdvisor) (int64, error)
	ListDetails(ctx context.Context) ([]*dto.AdvisorDetail, error)
	GetByYearSection(ctx context.Context, year int, section string) (*models.ClassAdvisor, error)
	GetByFacultyID(ctx context.Context, facultyID string) (*models.ClassAdvisor, error)
	Delete(ctx context.Context, id int64) error
}

// PlacementRepo persists companies and placement records.
type PlacementRepo interface {
	CreateCompany(ctx context.Context, c *models.Company) (int64, error)
	ListCompanies(ctx context.Context) ([]*models.Company, error)
	DeleteCompany(ctx context.Context, id int64) error
	CreatePlacedStudent(ctx context.Context, p *models.PlacedStudent) (int64, error)
	ListPlacedStudents(ctx context.Context) ([]*models.PlacedStudent, error)
	DeletePlacedStudent(ctx context.Context, id int64) error
}

// ArrearRepo persists historical arrear rows.
type ArrearRepo interface {
	Create(ctx context.Context, a *models.Arrear) error
	ListByRollNo(ctx context.Context, rollNo string) ([]*models.Arrear, error)
	ListAll(ctx context.Context) ([]*models.Arrear, error)
	CountByBatchID(ctx context.Context, batchID string) (int, error)
	DeleteMatching(ctx context.Context, batchID, rollNo, subjectCode string) (int64, error)
}

// Store is the persistence boundary of the service layer. InTx runs fn with
// a Store bound to one transaction; multi-table flows (provisioning,
// cascading deletes, bulk imports) go through it.
type Store interface {
	Users() UserRepo
	Students() StudentRepo
	Faculties() FacultyRepo
	Courses() CourseRepo
	Academic() AcademicRepo
	Materials() MaterialRepo
	Announcements() AnnouncementRepo
	Advisors() AdvisorRepo
	Placements() PlacementRepo
	Arrears() ArrearRepo
	InTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error
}

type sqlStore struct {
	repos *repositories.Repositories
}

// NewStore wraps the repository set as a Store.
func NewStore(repos *repositories.Repositories) Store {
	return &sqlStore{repos: repos}
}

func (s *sqlStore) Users() UserRepo                 { return s.repos.Users }
func (s *sqlStore) Students() StudentRepo           { return s.repos.Students }
func (s *sqlStore) Faculties() FacultyRepo          { return s.repos.Faculties }
func (s *sqlStore) Courses() CourseRepo             { return s.repos.Courses }
func (s *sqlStore) Academic() AcademicRepo          { return s.repos.Academic }
func (s *sqlStore) Materials() MaterialRepo         { return s.repos.Materials }
func (s *sqlStore) Announcements() AnnouncementRepo { return s.repos.Announcements }
func (s *sqlStore) Advisors() AdvisorRepo           { return s.repos.Advisors }
func (s *sqlStore) Placements() PlacementRepo       { return s.repos.Placements }
func (s *sqlStore) Arrears() ArrearRepo             { return s.repos.Arrears }

func (s *sqlStore) InTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error {
	return s.repos.WithTx(ctx, func(ctx context.Context, txRepos *repositories.Repositories) error {
		return fn(ctx, &sqlStore{repos: txRepos})
	})
}
