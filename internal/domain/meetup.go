package domain

import "github.com/bookswapapp/bookswap-server/internal/errors"

// MeetupStatus tracks where the handover negotiation stands.
type MeetupStatus string

const (
	MeetupStatusNoLocation      MeetupStatus = "no_location"
	MeetupStatusChangedLocation MeetupStatus = "changed_location"
	MeetupStatusWaiting         MeetupStatus = "waiting"
	MeetupStatusAgreed          MeetupStatus = "agreed"
	MeetupStatusCompleted       MeetupStatus = "completed"
)

// Valid checks if the status is a defined meetup status.
func (s MeetupStatus) Valid() bool {
	switch s {
	case MeetupStatusNoLocation, MeetupStatusChangedLocation,
		MeetupStatusWaiting, MeetupStatusAgreed, MeetupStatusCompleted:
		return true
	default:
		return false
	}
}

// maxMeetupsPerSwap bounds how many meetup suggestions a single swap holds.
const maxMeetupsPerSwap = 10

// Meetup is one suggested time-and-place for the physical book handover.
type Meetup struct {
	ID              string       `json:"id"`
	SwapID          string       `json:"swap_id"`
	SuggestedUserID string       `json:"suggested_user_id"`
	Status          MeetupStatus `json:"status"`
	Location        *Location    `json:"location,omitempty"`
}

// NewMeetup validates and creates a meetup suggestion, reporting every
// violation at once. location may be nil while no place is proposed yet.
func NewMeetup(meetupID, swapID, suggestedUserID string, status MeetupStatus, location *Location) (*Meetup, *errors.Error) {
	var v errors.Violations
	v.Check(meetupID != "", "Meetup id is required")
	if swapID == "" {
		v.Add(errors.NotFound("Swap not found"))
	}
	if suggestedUserID == "" {
		v.Add(errors.NotFound("Suggested user not found"))
	}
	if !status.Valid() {
		v.Add(errors.Invalidf("Unsupported meetup status: %q", status))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &Meetup{
		ID:              meetupID,
		SwapID:          swapID,
		SuggestedUserID: suggestedUserID,
		Status:          status,
		Location:        location,
	}, nil
}

// UpdateLocation overwrites the proposed location. There is deliberately no
// status guard here: either party may move the pin at any point of the
// negotiation.
func (m *Meetup) UpdateLocation(location Location) {
	m.Location = &location
}

// newMeetups builds the meetup collection for a swap.
func newMeetups() Collection[*Meetup] {
	return NewCollection("meetup", func(m *Meetup) string { return m.ID }).
		WithCap(maxMeetupsPerSwap, "Max meetups count reached").
		WithImmutable(func(existing, updated *Meetup) *errors.Error {
			if updated.SwapID != existing.SwapID {
				return errors.Conflict("Meetup swap id cannot be changed")
			}
			if updated.SuggestedUserID != existing.SuggestedUserID {
				return errors.Conflict("Meetup suggested user cannot be changed")
			}
			return nil
		})
}
