package services

import (
	"errors"
	"fmt"

	"pawhaven/internal/domain"
	"pawhaven/internal/repos"
	"pawhaven/internal/validate"

	"github.com/google/uuid"
)

var (
	ErrSlotTaken     = errors.New("sitter is already booked for that time")
	ErrBadInterval   = errors.New("start must be before end")
	ErrNotYourPet    = errors.New("pet does not belong to you")
	ErrBadTransition = errors.New("booking cannot move to that status")
)

type BookingService struct {
	Bookings *repos.BookingRepo
	Avail    *repos.AvailabilityRepo
	Pets     *repos.PetRepo
	Sitters  *repos.SitterRepo
	Notify   Notifier
}

// stamp re-formats a date-time string into the canonical fixed-width form.
// time.Parse accepts loose input like "9:00", which would break both the
// string-order interval guard and the stored-text overlap predicate.
func stamp(s string) (string, bool) {
	t, ok := validate.DateTime(s)
	if !ok {
		return "", false
	}
	return t.Format(validate.DateTimeLayout), true
}

// HasConflict reports whether [startAt, endAt) intersects any existing
// booking for the sitter. Intervals are half-open: a booking ending at
// 10:00 and one starting at 10:00 coexist.
func (s *BookingService) HasConflict(sitterID, startAt, endAt string) (bool, error) {
	startAt, ok1 := stamp(startAt)
	endAt, ok2 := stamp(endAt)
	if !ok1 || !ok2 || startAt >= endAt {
		return false, ErrBadInterval
	}
	b, err := s.Bookings.FindConflict(sitterID, startAt, endAt)
	if err != nil {
		return false, err
	}
	return b != nil, nil
}

// Book places a pending booking for the owner's pet. The overlap check and
// insert happen in one statement, so concurrent requests for the same slot
// cannot both win.
func (s *BookingService) Book(ownerID, petID, sitterID, availabilityID, startAt, endAt string) (*domain.Booking, error) {
	startAt, ok1 := stamp(startAt)
	endAt, ok2 := stamp(endAt)
	if !ok1 || !ok2 || startAt >= endAt {
		return nil, ErrBadInterval
	}
	if _, err := s.Pets.GetOwned(petID, ownerID); err != nil {
		return nil, ErrNotYourPet
	}
	b := &domain.Booking{
		ID:             uuid.NewString(),
		PetID:          petID,
		SitterID:       sitterID,
		AvailabilityID: availabilityID,
		StartAt:        startAt,
		EndAt:          endAt,
		Status:         domain.BookingPending,
	}
	ok, err := s.Bookings.InsertIfFree(b)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrSlotTaken
	}
	return b, nil
}

// transitions a sitter may apply to a booking.
var allowedTransitions = map[string][]string{
	domain.BookingPending:  {domain.BookingApproved, domain.BookingRejected},
	domain.BookingApproved: {domain.BookingCompleted},
}

// SetStatus moves a booking along pending -> approved|rejected -> completed.
// Only the booking's sitter may call this; the pet's owner is notified of
// approve/reject decisions.
func (s *BookingService) SetStatus(bookingID, sitterID, status string) error {
	b, err := s.Bookings.Get(bookingID)
	if err != nil {
		return err
	}
	if b.SitterID != sitterID {
		return ErrBadTransition
	}
	ok := false
	for _, next := range allowedTransitions[b.Status] {
		if next == status {
			ok = true
			break
		}
	}
	if !ok {
		return ErrBadTransition
	}
	if err := s.Bookings.UpdateStatus(bookingID, sitterID, status); err != nil {
		return err
	}
	if status == domain.BookingApproved || status == domain.BookingRejected {
		if pet, err := s.Pets.Get(b.PetID); err == nil {
			s.Notify.Notify(pet.OwnerID, "Booking "+status,
				fmt.Sprintf("Your booking for %s on %s was %s.", pet.Name, b.StartAt, status))
		}
	}
	return nil
}

// Slot is an availability window annotated with whether some booking
// already covers it.
type Slot struct {
	domain.Availability
	Booked bool
}

// SitterSlots lists a sitter's published windows, marking the ones that an
// existing booking overlaps so the UI can grey them out.
func (s *BookingService) SitterSlots(sitterID string) ([]Slot, error) {
	avs, err := s.Avail.ListBySitter(sitterID)
	if err != nil {
		return nil, err
	}
	out := make([]Slot, 0, len(avs))
	for _, a := range avs {
		start := a.Date + " " + a.StartTime
		end := a.Date + " " + a.EndTime
		c, err := s.Bookings.FindConflict(sitterID, start, end)
		if err != nil {
			return nil, err
		}
		out = append(out, Slot{Availability: a, Booked: c != nil})
	}
	return out, nil
}

func (s *BookingService) AddAvailability(sitterID, date, startTime, endTime, notes string) (*domain.Availability, error) {
	d, ok := validate.Date(date)
	if !ok {
		return nil, ErrBadInterval
	}
	st, ok1 := validate.ClockTime(startTime)
	et, ok2 := validate.ClockTime(endTime)
	if !ok1 || !ok2 || !st.Before(et) {
		return nil, ErrBadInterval
	}
	// Stored as canonical fixed-width text; SitterSlots composes these back
	// into stamps for the overlap predicate.
	a := &domain.Availability{
		ID:        uuid.NewString(),
		SitterID:  sitterID,
		Date:      d.Format(validate.DateLayout),
		StartTime: st.Format(validate.TimeLayout),
		EndTime:   et.Format(validate.TimeLayout),
		Notes:     notes,
	}
	if err := s.Avail.Create(a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *BookingService) RemoveAvailability(id, sitterID string) error {
	return s.Avail.Delete(id, sitterID)
}

func (s *BookingService) OwnerBookings(ownerID string) ([]repos.BookingRow, error) {
	return s.Bookings.ListByOwner(ownerID)
}

func (s *BookingService) SitterBookings(sitterID string) ([]repos.BookingRow, error) {
	return s.Bookings.ListBySitter(sitterID)
}
