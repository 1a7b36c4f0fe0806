package services

import (
	"errors"

	"pawhaven/internal/domain"
	"pawhaven/internal/repos"

	"github.com/google/uuid"
)

var ErrSelfPlaydate = errors.New("cannot invite your own pet")

type PlaydateService struct {
	Playdates *repos.PlaydateRepo
	Pets      *repos.PetRepo
	Notify    Notifier
}

// Invite proposes a playdate between the requester's pet and another
// owner's pet. The invitee is resolved from the target pet.
func (s *PlaydateService) Invite(ownerID, petID, inviteePetID, date, tm, location string) (*domain.Playdate, error) {
	if _, err := s.Pets.GetOwned(petID, ownerID); err != nil {
		return nil, ErrNotYourPet
	}
	target, err := s.Pets.Get(inviteePetID)
	if err != nil {
		return nil, err
	}
	if target.OwnerID == ownerID {
		return nil, ErrSelfPlaydate
	}
	pd := &domain.Playdate{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		PetID:          petID,
		InviteeOwnerID: target.OwnerID,
		InviteePetID:   inviteePetID,
		Date:           date,
		Time:           tm,
		Location:       location,
		Status:         "Pending",
	}
	if err := s.Playdates.Create(pd); err != nil {
		return nil, err
	}
	s.Notify.Notify(target.OwnerID, "Playdate invite",
		"You have a new playdate invite for "+target.Name+" on "+date+".")
	return pd, nil
}

func (s *PlaydateService) ListFor(userID string) ([]repos.PlaydateRow, error) {
	return s.Playdates.ListForUser(userID)
}

// Respond accepts or declines a pending invite; only the invitee may answer.
func (s *PlaydateService) Respond(id, inviteeID string, accept bool) error {
	status := "Declined"
	if accept {
		status = "Accepted"
	}
	if err := s.Playdates.Respond(id, inviteeID, status); err != nil {
		return err
	}
	if pd, err := s.Playdates.Get(id); err == nil {
		s.Notify.Notify(pd.OwnerID, "Playdate "+status, "Your playdate invite was "+status+".")
	}
	return nil
}

// Cancel withdraws a pending invite; only the requester may cancel.
func (s *PlaydateService) Cancel(id, ownerID string) error {
	return s.Playdates.Cancel(id, ownerID)
}
