package services

import (
	"errors"
	"strings"

	"github.com/ajoroapp/ajoro-backend/internal/models"
	repo "github.com/ajoroapp/ajoro-backend/internal/repository"
)

type ProfileService struct {
	profiles repo.Profiles
}

func NewProfileService(profiles repo.Profiles) *ProfileService {
	return &ProfileService{profiles: profiles}
}

// Get returns the stored profile, or an unsaved default with the full name
// derived from the email's local part when no row exists yet.
func (s *ProfileService) Get(userID, email string) (models.Profile, error) {
	p, err := s.profiles.GetByUserID(userID)
	if errors.Is(err, repo.ErrNotFound) {
		return models.Profile{UserID: userID, FullName: models.DefaultFullName(email)}, nil
	}
	return p, err
}

func (s *ProfileService) Update(userID, fullName string, phone *string) (models.Profile, error) {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return models.Profile{}, errors.New("full name required")
	}
	if phone != nil && strings.TrimSpace(*phone) == "" {
		phone = nil
	}
	return s.profiles.Upsert(models.Profile{UserID: userID, FullName: fullName, Phone: phone})
}
