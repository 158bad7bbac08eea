package services

import (
	"context"
	"strings"

	"github.com/vhce/collegehub/internal/app/models"
	"github.com/vhce/collegehub/internal/app/models/dto"
	"github.com/vhce/collegehub/internal/pkg/apperrors"
)

// fakeState is the shared in-memory database behind the fake repositories.
type fakeState struct {
	users         map[string]*models.User
	students      map[string]*models.Student
	faculties     map[string]*models.Faculty
	courses       map[int64]*models.Course
	nextCourseID  int64
	academic      []*models.AcademicData
	nextAcadID    int64
	materials     map[int64]*models.Material
	nextMatID     int64
	announcements []*models.Announcement
	nextAnnID     int64
	advisors      []*models.ClassAdvisor
	nextAdvID     int64
	companies     []*models.Company
	placed        []*models.PlacedStudent
	arrears       []*models.Arrear
	nextArrID     int64
}

func newFakeState() *fakeState {
	return &fakeState{
		users:     map[string]*models.User{},
		students:  map[string]*models.Student{},
		faculties: map[string]*models.Faculty{},
		courses:   map[int64]*models.Course{},
		materials: map[int64]*models.Material{},
	}
}

type fakeStore struct{ st *fakeState }

func newFakeStore() *fakeStore { return &fakeStore{st: newFakeState()} }

func (f *fakeStore) Users() UserRepo                 { return &fakeUsers{f.st} }
func (f *fakeStore) Students() StudentRepo           { return &fakeStudents{f.st} }
func (f *fakeStore) Faculties() FacultyRepo          { return &fakeFaculties{f.st} }
func (f *fakeStore) Courses() CourseRepo             { return &fakeCourses{f.st} }
func (f *fakeStore) Academic() AcademicRepo          { return &fakeAcademic{f.st} }
func (f *fakeStore) Materials() MaterialRepo         { return &fakeMaterials{f.st} }
func (f *fakeStore) Announcements() AnnouncementRepo { return &fakeAnnouncements{f.st} }
func (f *fakeStore) Advisors() AdvisorRepo           { return &fakeAdvisors{f.st} }
func (f *fakeStore) Placements() PlacementRepo       { return &fakePlacements{f.st} }
func (f *fakeStore) Arrears() ArrearRepo             { return &fakeArrears{f.st} }

func (f *fakeStore) InTx(ctx context.Context, fn func(ctx context.Context, s Store) error) error {
	return fn(ctx, f)
}

type fakeUsers struct{ st *fakeState }

func (r *fakeUsers) Create(_ context.Context, u *models.User) error {
	if _, ok := r.st.users[u.ID]; ok {
		return apperrors.ErrUserIDExists
	}
	cp := *u
	r.st.users[u.ID] = &cp
	return nil
}

func (r *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.st.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUsers) Exists(_ context.Context, id string) (bool, error) {
	_, ok := r.st.users[id]
	return ok, nil
}

func (r *fakeUsers) UpdatePassword(_ context.Context, id, password string) error {
	u, ok := r.st.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = password
	return nil
}

func (r *fakeUsers) Rename(_ context.Context, oldID, newID string) error {
	u, ok := r.st.users[oldID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	if _, taken := r.st.users[newID]; taken {
		return apperrors.ErrUserIDExists
	}
	delete(r.st.users, oldID)
	u.ID = newID
	r.st.users[newID] = u
	// Mirror the schema's ON UPDATE CASCADE.
	if s, ok := r.st.students[oldID]; ok {
		delete(r.st.students, oldID)
		s.RollNo = newID
		r.st.students[newID] = s
	}
	if f, ok := r.st.faculties[oldID]; ok {
		delete(r.st.faculties, oldID)
		f.StaffNo = newID
		r.st.faculties[newID] = f
	}
	for _, ad := range r.st.academic {
		if ad.StudentRollNo == oldID {
			ad.StudentRollNo = newID
		}
	}
	for _, c := range r.st.courses {
		if c.FacultyID != nil && *c.FacultyID == oldID {
			c.FacultyID = &newID
		}
	}
	return nil
}

func (r *fakeUsers) Delete(_ context.Context, id string) error {
	if _, ok := r.st.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.st.users, id)
	return nil
}

type fakeStudents struct{ st *fakeState }

func (r *fakeStudents) Create(_ context.Context, s *models.Student) error {
	cp := *s
	r.st.students[s.RollNo] = &cp
	return nil
}

func (r *fakeStudents) GetByRollNo(_ context.Context, rollNo string) (*models.Student, error) {
	s, ok := r.st.students[rollNo]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStudents) List(_ context.Context, year, semester *int, section string) ([]*models.Student, error) {
	out := []*models.Student{}
	for _, s := range r.st.students {
		if year != nil && s.Year != *year {
			continue
		}
		if semester != nil && s.Semester != *semester {
			continue
		}
		if section != "" && s.Section != section {
			continue
		}
		cp := *s
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeStudents) ListBySemesterSection(ctx context.Context, semester int, section string) ([]*models.Student, error) {
	return r.List(ctx, nil, &semester, section)
}

func (r *fakeStudents) Toppers(_ context.Context, limit uint64) ([]*models.Student, error) {
	out := []*models.Student{}
	for _, s := range r.st.students {
		if s.CGPA > 0 {
			cp := *s
			out = append(out, &cp)
		}
	}
	sortByCGPA(out)
	if uint64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeStudents) Update(_ context.Context, rollNo string, fields map[string]any) error {
	s, ok := r.st.students[rollNo]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			s.Name = v.(string)
		case "year":
			s.Year = v.(int)
		case "semester":
			s.Semester = v.(int)
		case "section":
			s.Section = v.(string)
		case "cgpa":
			s.CGPA = v.(float64)
		case "attendance_percentage":
			s.AttendancePercentage = v.(float64)
		}
	}
	return nil
}

func (r *fakeStudents) SetProfilePic(_ context.Context, rollNo string, url *string) error {
	s, ok := r.st.students[rollNo]
	if !ok {
		return apperrors.ErrStudentNotFound
	}
	s.ProfilePic = url
	return nil
}

func (r *fakeStudents) Delete(_ context.Context, rollNo string) error {
	if _, ok := r.st.students[rollNo]; !ok {
		return apperrors.ErrStudentNotFound
	}
	delete(r.st.students, rollNo)
	return nil
}

type fakeFaculties struct{ st *fakeState }

func (r *fakeFaculties) Create(_ context.Context, f *models.Faculty) error {
	cp := *f
	r.st.faculties[f.StaffNo] = &cp
	return nil
}

func (r *fakeFaculties) GetByStaffNo(_ context.Context, staffNo string) (*models.Faculty, error) {
	f, ok := r.st.faculties[staffNo]
	if !ok {
		return nil, apperrors.ErrFacultyNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFaculties) List(_ context.Context, designation string) ([]*models.Faculty, error) {
	out := []*models.Faculty{}
	for _, f := range r.st.faculties {
		if designation != "" && f.Designation != designation {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeFaculties) Update(_ context.Context, staffNo string, fields map[string]any) error {
	f, ok := r.st.faculties[staffNo]
	if !ok {
		return apperrors.ErrFacultyNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			f.Name = v.(string)
		case "designation":
			f.Designation = v.(string)
		case "doj":
			f.DOJ = v.(string)
		}
	}
	return nil
}

func (r *fakeFaculties) SetProfilePic(_ context.Context, staffNo string, url *string) error {
	f, ok := r.st.faculties[staffNo]
	if !ok {
		return apperrors.ErrFacultyNotFound
	}
	f.ProfilePic = url
	return nil
}

func (r *fakeFaculties) Delete(_ context.Context, staffNo string) error {
	if _, ok := r.st.faculties[staffNo]; !ok {
		return apperrors.ErrFacultyNotFound
	}
	delete(r.st.faculties, staffNo)
	return nil
}

type fakeCourses struct{ st *fakeState }

func (r *fakeCourses) Create(_ context.Context, c *models.Course) (int64, error) {
	for _, existing := range r.st.courses {
		if existing.Code == c.Code && existing.Section == c.Section {
			return 0, apperrors.ErrCourseExists
		}
	}
	r.st.nextCourseID++
	cp := *c
	cp.ID = r.st.nextCourseID
	r.st.courses[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeCourses) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := r.st.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCourses) GetByCodeSection(_ context.Context, code, section string) (*models.Course, error) {
	for _, c := range r.st.courses {
		if c.Code == code && c.Section == section {
			cp := *c
			return &cp, nil
		}
	}
	return nil, apperrors.ErrCourseNotFound
}

func (r *fakeCourses) FindByCode(_ context.Context, code string) ([]*models.Course, error) {
	out := []*models.Course{}
	for _, c := range r.st.courses {
		if strings.EqualFold(c.Code, code) {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeCourses) List(_ context.Context, semester *int, section, facultyID string) ([]*models.Course, error) {
	out := []*models.Course{}
	for _, c := range r.st.courses {
		if semester != nil && c.Semester != *semester {
			continue
		}
		if section != "" && c.Section != section {
			continue
		}
		if facultyID != "" && (c.FacultyID == nil || *c.FacultyID != facultyID) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeCourses) ListBySemesterSection(ctx context.Context, semester int, section string) ([]*models.Course, error) {
	return r.List(ctx, &semester, section, "")
}

func (r *fakeCourses) AssignFaculty(_ context.Context, courseID int64, facultyID *string) error {
	c, ok := r.st.courses[courseID]
	if !ok {
		return apperrors.ErrCourseNotFound
	}
	c.FacultyID = facultyID
	return nil
}

func (r *fakeCourses) DetachFaculty(_ context.Context, facultyID string) error {
	for _, c := range r.st.courses {
		if c.FacultyID != nil && *c.FacultyID == facultyID {
			c.FacultyID = nil
		}
	}
	return nil
}

func (r *fakeCourses) Delete(_ context.Context, id int64) error {
	if _, ok := r.st.courses[id]; !ok {
		return apperrors.ErrCourseNotFound
	}
	delete(r.st.courses, id)
	return nil
}

type fakeAcademic struct{ st *fakeState }

func (r *fakeAcademic) CreateEnrollment(_ context.Context, ad *models.AcademicData) error {
	for _, existing := range r.st.academic {
		if existing.StudentRollNo == ad.StudentRollNo && existing.CourseID == ad.CourseID {
			return nil
		}
	}
	r.st.nextAcadID++
	cp := *ad
	cp.ID = r.st.nextAcadID
	cp.Status = models.StatusPursuing
	r.st.academic = append(r.st.academic, &cp)
	return nil
}

func (r *fakeAcademic) SectionMarks(_ context.Context, courseCode, section string) ([]*models.SectionMark, error) {
	out := []*models.SectionMark{}
	for _, ad := range r.st.academic {
		if ad.CourseCode != courseCode || ad.Section != section {
			continue
		}
		name := ""
		if s, ok := r.st.students[ad.StudentRollNo]; ok {
			name = s.Name
		}
		out = append(out, &models.SectionMark{
			Name:              name,
			RollNo:            ad.StudentRollNo,
			CIA1Marks:         ad.CIA1Marks,
			CIA1Retest:        ad.CIA1Retest,
			IA1Marks:          ad.IA1Marks,
			CIA2Marks:         ad.CIA2Marks,
			CIA2Retest:        ad.CIA2Retest,
			IA2Marks:          ad.IA2Marks,
			SubjectAttendance: ad.SubjectAttendance,
		})
	}
	return out, nil
}

func (r *fakeAcademic) ListByStudent(_ context.Context, rollNo string) ([]*models.AcademicData, error) {
	out := []*models.AcademicData{}
	for _, ad := range r.st.academic {
		if ad.StudentRollNo == rollNo {
			cp := *ad
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAcademic) UpdateFields(_ context.Context, rollNo, courseCode string, fields map[string]any) error {
	for _, ad := range r.st.academic {
		if ad.StudentRollNo != rollNo || ad.CourseCode != courseCode {
			continue
		}
		for k, v := range fields {
			switch k {
			case "cia1_marks":
				ad.CIA1Marks = v.(float64)
			case "cia1_retest":
				ad.CIA1Retest = v.(float64)
			case "cia2_marks":
				ad.CIA2Marks = v.(float64)
			case "cia2_retest":
				ad.CIA2Retest = v.(float64)
			case "ia1_marks":
				ad.IA1Marks = v.(float64)
			case "ia2_marks":
				ad.IA2Marks = v.(float64)
			case "subject_attendance":
				ad.SubjectAttendance = v.(float64)
			case "status":
				ad.Status = v.(string)
			}
		}
		return nil
	}
	return apperrors.ErrEnrollmentNotFound
}

func (r *fakeAcademic) SetMarkColumn(ctx context.Context, courseCode, rollNo, column string, value float64) (bool, error) {
	err := r.UpdateFields(ctx, rollNo, courseCode, map[string]any{column: value})
	if err != nil {
		return false, nil
	}
	return true, nil
}

func (r *fakeAcademic) CourseCodesBySubject(_ context.Context, fragment string) ([]string, error) {
	seen := map[string]struct{}{}
	out := []string{}
	for _, ad := range r.st.academic {
		if !strings.Contains(strings.ToLower(ad.Subject), strings.ToLower(fragment)) {
			continue
		}
		if _, dup := seen[ad.CourseCode]; dup {
			continue
		}
		seen[ad.CourseCode] = struct{}{}
		out = append(out, ad.CourseCode)
	}
	return out, nil
}

func (r *fakeAcademic) DeleteByCourse(_ context.Context, courseID int64) error {
	kept := r.st.academic[:0]
	for _, ad := range r.st.academic {
		if ad.CourseID != courseID {
			kept = append(kept, ad)
		}
	}
	r.st.academic = kept
	return nil
}

func (r *fakeAcademic) DeleteByStudent(_ context.Context, rollNo string) error {
	kept := r.st.academic[:0]
	for _, ad := range r.st.academic {
		if ad.StudentRollNo != rollNo {
			kept = append(kept, ad)
		}
	}
	r.st.academic = kept
	return nil
}

func (r *fakeAcademic) GetStatus(_ context.Context, rollNo, courseCode string) (string, error) {
	for _, ad := range r.st.academic {
		if ad.StudentRollNo == rollNo && ad.CourseCode == courseCode {
			return ad.Status, nil
		}
	}
	return "", apperrors.ErrEnrollmentNotFound
}

type fakeMaterials struct{ st *fakeState }

func (r *fakeMaterials) Create(_ context.Context, m *models.Material) (int64, error) {
	r.st.nextMatID++
	cp := *m
	cp.ID = r.st.nextMatID
	r.st.materials[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeMaterials) GetByID(_ context.Context, id int64) (*models.Material, error) {
	m, ok := r.st.materials[id]
	if !ok {
		return nil, apperrors.ErrMaterialNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMaterials) ListByCourseCodes(_ context.Context, codes []string) ([]*models.Material, error) {
	out := []*models.Material{}
	for _, m := range r.st.materials {
		for _, code := range codes {
			if m.CourseCode == code {
				cp := *m
				out = append(out, &cp)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeMaterials) ListByCourseID(_ context.Context, courseID int64) ([]*models.Material, error) {
	out := []*models.Material{}
	for _, m := range r.st.materials {
		if m.CourseID != nil && *m.CourseID == courseID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMaterials) ListByCodePattern(_ context.Context, code string) ([]*models.Material, error) {
	out := []*models.Material{}
	for _, m := range r.st.materials {
		if m.CourseCode == code || strings.Contains(strings.ToUpper(m.CourseCode), strings.ToUpper(code)) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMaterials) ListByLinkFragment(_ context.Context, fragment string) ([]*models.Material, error) {
	out := []*models.Material{}
	for _, m := range r.st.materials {
		if strings.Contains(m.FileLink, fragment) {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMaterials) ListAll(_ context.Context) ([]*models.Material, error) {
	out := []*models.Material{}
	for _, m := range r.st.materials {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMaterials) Delete(_ context.Context, id int64) error {
	if _, ok := r.st.materials[id]; !ok {
		return apperrors.ErrMaterialNotFound
	}
	delete(r.st.materials, id)
	return nil
}

type fakeAnnouncements struct{ st *fakeState }

func (r *fakeAnnouncements) Create(_ context.Context, a *models.Announcement) (int64, error) {
	r.st.nextAnnID++
	cp := *a
	cp.ID = r.st.nextAnnID
	r.st.announcements = append(r.st.announcements, &cp)
	return cp.ID, nil
}

func (r *fakeAnnouncements) ListAll(_ context.Context) ([]*models.Announcement, error) {
	out := []*models.Announcement{}
	for _, a := range r.st.announcements {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeAnnouncements) Delete(_ context.Context, id int64) error {
	for i, a := range r.st.announcements {
		if a.ID == id {
			r.st.announcements = append(r.st.announcements[:i], r.st.announcements[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAnnouncementNotFound
}

type fakeAdvisors struct{ st *fakeState }

func (r *fakeAdvisors) Create(_ context.Context, a *models.ClassAdvisor) (int64, error) {
	for _, existing := range r.st.advisors {
		if existing.Year == a.Year && existing.Section == a.Section {
			return 0, apperrors.ErrAdvisorAssigned
		}
	}
	r.st.nextAdvID++
	cp := *a
	cp.ID = r.st.nextAdvID
	r.st.advisors = append(r.st.advisors, &cp)
	return cp.ID, nil
}

func (r *fakeAdvisors) ListDetails(_ context.Context) ([]*dto.AdvisorDetail, error) {
	out := []*dto.AdvisorDetail{}
	for _, a := range r.st.advisors {
		d := &dto.AdvisorDetail{
			ID:        a.ID,
			AdvisorNo: a.AdvisorNo,
			FacultyID: a.FacultyID,
			Year:      a.Year,
			Semester:  a.Semester,
			Section:   a.Section,
		}
		if f, ok := r.st.faculties[a.FacultyID]; ok {
			d.FacultyName = f.Name
			d.Designation = f.Designation
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeAdvisors) GetByYearSection(_ context.Context, year int, section string) (*models.ClassAdvisor, error) {
	for _, a := range r.st.advisors {
		if a.Year == year && a.Section == section {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrAdvisorNotFound
}

func (r *fakeAdvisors) GetByFacultyID(_ context.Context, facultyID string) (*models.ClassAdvisor, error) {
	for _, a := range r.st.advisors {
		if a.FacultyID == facultyID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, apperrors.ErrAdvisorNotFound
}

func (r *fakeAdvisors) Delete(_ context.Context, id int64) error {
	for i, a := range r.st.advisors {
		if a.ID == id {
			r.st.advisors = append(r.st.advisors[:i], r.st.advisors[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrAdvisorNotFound
}

type fakePlacements struct{ st *fakeState }

func (r *fakePlacements) CreateCompany(_ context.Context, c *models.Company) (int64, error) {
	cp := *c
	cp.ID = int64(len(r.st.companies) + 1)
	r.st.companies = append(r.st.companies, &cp)
	return cp.ID, nil
}

func (r *fakePlacements) ListCompanies(_ context.Context) ([]*models.Company, error) {
	return append([]*models.Company{}, r.st.companies...), nil
}

func (r *fakePlacements) DeleteCompany(_ context.Context, id int64) error {
	for i, c := range r.st.companies {
		if c.ID == id {
			r.st.companies = append(r.st.companies[:i], r.st.companies[i+1:]...)
			return nil
		}
	}
	return apperrors.NewResourceNotFoundError("company not found")
}

func (r *fakePlacements) CreatePlacedStudent(_ context.Context, p *models.PlacedStudent) (int64, error) {
	cp := *p
	cp.ID = int64(len(r.st.placed) + 1)
	r.st.placed = append(r.st.placed, &cp)
	return cp.ID, nil
}

func (r *fakePlacements) ListPlacedStudents(_ context.Context) ([]*models.PlacedStudent, error) {
	return append([]*models.PlacedStudent{}, r.st.placed...), nil
}

func (r *fakePlacements) DeletePlacedStudent(_ context.Context, id int64) error {
	for i, p := range r.st.placed {
		if p.ID == id {
			r.st.placed = append(r.st.placed[:i], r.st.placed[i+1:]...)
			return nil
		}
	}
	return apperrors.NewResourceNotFoundError("placed student not found")
}

type fakeArrears struct{ st *fakeState }

func (r *fakeArrears) Create(_ context.Context, a *models.Arrear) error {
	r.st.nextArrID++
	cp := *a
	cp.ID = r.st.nextArrID
	r.st.arrears = append(r.st.arrears, &cp)
	return nil
}

func (r *fakeArrears) ListByRollNo(_ context.Context, rollNo string) ([]*models.Arrear, error) {
	out := []*models.Arrear{}
	for _, a := range r.st.arrears {
		if a.RollNo == rollNo {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeArrears) ListAll(_ context.Context) ([]*models.Arrear, error) {
	out := []*models.Arrear{}
	for _, a := range r.st.arrears {
		cp := *a
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeArrears) CountByBatchID(_ context.Context, batchID string) (int, error) {
	count := 0
	for _, a := range r.st.arrears {
		if a.BatchID == batchID {
			count++
		}
	}
	return count, nil
}

func (r *fakeArrears) DeleteMatching(_ context.Context, batchID, rollNo, subjectCode string) (int64, error) {
	var deleted int64
	kept := r.st.arrears[:0]
	for _, a := range r.st.arrears {
		if a.BatchID == batchID && a.RollNo == rollNo && a.SubjectCode == subjectCode {
			deleted++
			continue
		}
		kept = append(kept, a)
	}
	r.st.arrears = kept
	return deleted, nil
}
