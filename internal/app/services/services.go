package services

import (
	"github.com/vhce/collegehub/internal/pkg/filestorage"
)

// Services bundles the service layer for wiring into controllers.
type Services struct {
	Auth          AuthService
	Users         *UserService
	Courses       *CourseService
	Marks         *MarksService
	Materials     *MaterialService
	Announcements *AnnouncementService
	Advisors      *AdvisorService
	Placements    *PlacementService
	Arrears       *ArrearService
}

// NewServices creates every service over one Store and file storage.
func NewServices(store Store, storage *filestorage.LocalStorage) *Services {
	return &Services{
		Auth:          NewAuthService(store),
		Users:         NewUserService(store, storage),
		Courses:       NewCourseService(store),
		Marks:         NewMarksService(store),
		Materials:     NewMaterialService(store, storage),
		Announcements: NewAnnouncementService(store),
		Advisors:      NewAdvisorService(store, storage),
		Placements:    NewPlacementService(store, storage),
		Arrears:       NewArrearService(store, storage),
	}
}
