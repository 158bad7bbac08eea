package dto

// CreateAnnouncementRequest posts a notice to an audience tier.
type CreateAnnouncementRequest struct {
	Title        string  `json:"title" binding:"required"`
	Content      string  `json:"content" binding:"required"`
	Type         string  `json:"type" binding:"required"`
	TargetYear   *int    `json:"target_year"`
	ExternalLink *string `json:"external_link"`
	CourseCode   string  `json:"course_code"`
	Section      string  `json:"section"`
}
