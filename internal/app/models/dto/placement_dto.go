package dto

// CreateCompanyRequest adds a recruiting company to the marquee.
type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	LogoURL string `json:"logo_url" binding:"required"`
}

// CreatePlacedStudentRequest records one placement success.
type CreatePlacedStudentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Dept        string  `json:"dept" binding:"required"`
	LPA         float64 `json:"lpa" binding:"required"`
	CompanyName string  `json:"company_name" binding:"required"`
	PhotoURL    string  `json:"photo_url" binding:"required"`
	LinkedinURL *string `json:"linkedin_url"`
}
