package dto

// UnitProgress is the completion picture for one syllabus unit of a course:
// which deliverable kinds exist and how far the unit is along.
type UnitProgress struct {
	Unit      int  `json:"unit"`
	Completed int  `json:"completed"`
	Required  int  `json:"required"`
	QBDone    bool `json:"qb_done"`
	VideoDone bool `json:"video_done"`
}

// CourseProgress summarizes material coverage for a course section.
type CourseProgress struct {
	CourseCode string         `json:"course_code"`
	Section    string         `json:"section"`
	Units      []UnitProgress `json:"units"`
}
