package services

import (
	"errors"

	"pawhaven/internal/domain"
	"pawhaven/internal/repos"

	"github.com/google/uuid"
)

var (
	ErrNotYourReport = errors.New("report does not belong to you")
	ErrAlreadyFound  = errors.New("pet has already been found")
)

type CommunityService struct {
	Community *repos.CommunityRepo
	Notify    Notifier
}

func (s *CommunityService) Report(ownerID, name, petType, breed, color, lastSeen, desc string, reward float64, image string) (*domain.LostPet, error) {
	lp := &domain.LostPet{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		Name:        name,
		Type:        petType,
		Breed:       breed,
		Color:       color,
		LastSeen:    lastSeen,
		Description: desc,
		Status:      "Lost",
		Reward:      reward,
		Image:       image,
	}
	if err := s.Community.CreateLostPet(lp); err != nil {
		return nil, err
	}
	return lp, nil
}

// Feed is the public board of still-missing pets, each with the count of
// sightings awaiting the owner's review.
func (s *CommunityService) Feed() ([]repos.LostPetRow, error) {
	return s.Community.Feed()
}

func (s *CommunityService) MyReports(ownerID string) ([]repos.LostPetRow, error) {
	return s.Community.ListLostPetsByOwner(ownerID)
}

func (s *CommunityService) OthersReports(ownerID string) ([]repos.LostPetRow, error) {
	return s.Community.ListLostPetsByOthers(ownerID)
}

func (s *CommunityService) MarkFound(id, ownerID string) error {
	lp, err := s.Community.GetLostPet(id)
	if err != nil {
		return err
	}
	if lp.OwnerID != ownerID {
		return ErrNotYourReport
	}
	return s.Community.MarkFound(id, ownerID)
}

// ReportSighting files a tip against a lost-pet report and pings the owner.
// Reports already marked Found no longer take tips.
func (s *CommunityService) ReportSighting(lostPetID, helperName, helperPhone string, confidence int, details, location string) error {
	lp, err := s.Community.GetLostPet(lostPetID)
	if err != nil {
		return err
	}
	if lp.Status != "Lost" {
		return ErrAlreadyFound
	}
	sg := &domain.Sighting{
		ID:          uuid.NewString(),
		LostPetID:   lostPetID,
		OwnerID:     lp.OwnerID,
		HelperName:  helperName,
		HelperPhone: helperPhone,
		Confidence:  confidence,
		Details:     details,
		Location:    location,
	}
	if err := s.Community.CreateSighting(sg); err != nil {
		return err
	}
	s.Notify.Notify(lp.OwnerID, "New sighting for "+lp.Name,
		"Someone reported seeing "+lp.Name+" near "+location+".")
	return nil
}

// Sightings lists tips for a report; only the report's owner may read them,
// since tips carry helper contact details.
func (s *CommunityService) Sightings(lostPetID, ownerID string) ([]domain.Sighting, error) {
	lp, err := s.Community.GetLostPet(lostPetID)
	if err != nil {
		return nil, err
	}
	if lp.OwnerID != ownerID {
		return nil, ErrNotYourReport
	}
	return s.Community.ListSightings(lostPetID)
}
