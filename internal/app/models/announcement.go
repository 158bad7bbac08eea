package models

import "time"

// Announcement audience types.
const (
	AnnouncementGlobal    = "Global"
	AnnouncementStudent   = "Student"
	AnnouncementFaculty   = "Faculty"
	AnnouncementSubject   = "Subject"
	AnnouncementPlacement = "Placement"
	AnnouncementLab       = "Lab"
)

// Announcement defines a targeted notice based on the 'announcements' table.
// Section "All" is visible to every section; anything else matches exactly.
type Announcement struct {
	ID           int64     `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Content      string    `json:"content" db:"content"`
	Type         string    `json:"type" db:"type"`
	TargetYear   *int      `json:"target_year,omitempty" db:"target_year"`
	ExternalLink *string   `json:"external_link,omitempty" db:"external_link"`
	CourseCode   string    `json:"course_code" db:"course_code"`
	Section      string    `json:"section" db:"section"`
	PostedBy     string    `json:"posted_by" db:"posted_by"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
