package models

// Company is a recruiting company shown on the placements marquee.
type Company struct {
	ID      int64  `json:"id" db:"id"`
	Name    string `json:"name" db:"name"`
	LogoURL string `json:"logo_url" db:"logo_url"`
}

// PlacedStudent is one placement success record.
type PlacedStudent struct {
	ID          int64   `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Dept        string  `json:"dept" db:"dept"`
	LPA         float64 `json:"lpa" db:"lpa"`
	CompanyName string  `json:"company_name" db:"company_name"`
	PhotoURL    string  `json:"photo_url" db:"photo_url"`
	LinkedinURL *string `json:"linkedin_url,omitempty" db:"linkedin_url"`
}
