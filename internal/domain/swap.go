package domain

import (
	"time"

	"github.com/bookswapapp/bookswap-server/internal/errors"
)

// Swap is the aggregate for one book exchange between two users. It owns
// both sub-swaps, the meetup suggestions, and the append-only timeline.
// The coarse status is a cached projection of the latest timeline event;
// AddTimelineUpdate does not recompute it - the application layer calls
// RecomputeStatus after a successful append, so reads between the two see
// the same value storage holds.
type Swap struct {
	ID                string    `json:"id"`
	SubSwapRequesting *SubSwap  `json:"sub_swap_requesting"`
	SubSwapAccepting  *SubSwap  `json:"sub_swap_accepting"`
	CreatedAt         time.Time `json:"created_at"`

	status   SwapStatus
	meetups  Collection[*Meetup]
	timeline Collection[*TimelineUpdate]
}

// NewSwap creates a swap proposal: the requesting user offers one of their
// books to the accepting user. Both sub-swaps are created up front; the
// accepting side has no book chosen yet. Violations for both roles are
// reported together.
func NewSwap(swapID, subSwapRequestingID, subSwapAcceptingID, requestingUserID, requestingUserBookID, acceptingUserID string) (*Swap, *errors.Error) {
	var v errors.Violations
	v.Check(swapID != "", "Swap id is required")
	v.Check(subSwapRequestingID != "", "Requesting sub swap id is required")
	v.Check(subSwapAcceptingID != "", "Accepting sub swap id is required")
	if requestingUserID == "" {
		v.Add(errors.NotFound("Requesting user not found"))
	}
	if acceptingUserID == "" {
		v.Add(errors.NotFound("Accepting user not found"))
	}
	v.Check(requestingUserBookID != "", "Requesting user book id is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &Swap{
		ID: swapID,
		// The offered book travels to the accepting party; the requesting
		// side's own reading choice stays open until the other user engages.
		SubSwapRequesting: newSubSwap(subSwapRequestingID, requestingUserID, requestingUserBookID),
		SubSwapAccepting:  newSubSwap(subSwapAcceptingID, acceptingUserID, ""),
		CreatedAt:         time.Now(),
		status:            SwapStatusRequested,
		meetups:           newMeetups(),
		timeline:          newTimelineUpdates(),
	}, nil
}

// ReconstituteSwap rehydrates a swap wholesale from storage. No invariants
// are re-run; the store supplies the complete child sets in insertion
// order.
func ReconstituteSwap(swapID string, status SwapStatus, subSwapRequesting, subSwapAccepting *SubSwap,
	meetups []*Meetup, timelineUpdates []*TimelineUpdate, createdAt time.Time) *Swap {
	s := &Swap{
		ID:                swapID,
		SubSwapRequesting: subSwapRequesting,
		SubSwapAccepting:  subSwapAccepting,
		CreatedAt:         createdAt,
		status:            status,
		meetups:           newMeetups(),
		timeline:          newTimelineUpdates(),
	}
	s.meetups.Load(meetups)
	s.timeline.Load(timelineUpdates)
	return s
}

// Status returns the cached coarse status.
func (s *Swap) Status() SwapStatus {
	return s.status
}

// DeriveStatus computes the coarse status from the latest timeline event,
// ignoring the cache. An empty timeline means the swap was just proposed.
func (s *Swap) DeriveStatus() SwapStatus {
	updates := s.timeline.Items()
	if len(updates) == 0 {
		return SwapStatusRequested
	}
	return DeriveSwapStatus(updates[len(updates)-1].Status)
}

// RecomputeStatus refreshes the cached status from the timeline.
func (s *Swap) RecomputeStatus() {
	s.status = s.DeriveStatus()
}

// Meetups returns the meetup suggestions in insertion order.
func (s *Swap) Meetups() []*Meetup {
	return s.meetups.Items()
}

// AddMeetup records a new handover suggestion. At most ten per swap.
func (s *Swap) AddMeetup(m *Meetup) *errors.Error {
	return s.meetups.Add(m)
}

// RemoveMeetup withdraws a suggestion.
func (s *Swap) RemoveMeetup(meetupID string) *errors.Error {
	return s.meetups.Remove(meetupID)
}

// UpdateMeetup replaces a suggestion in place. The swap and suggested-user
// ids are fixed at creation.
func (s *Swap) UpdateMeetup(m *Meetup) *errors.Error {
	return s.meetups.Update(m)
}

// Meetup returns the suggestion with the given id.
func (s *Swap) Meetup(meetupID string) (*Meetup, bool) {
	return s.meetups.Get(meetupID)
}

// TimelineUpdates returns the lifecycle events in append order.
func (s *Swap) TimelineUpdates() []*TimelineUpdate {
	return s.timeline.Items()
}

// AddTimelineUpdate appends a lifecycle event. Only one Requested event may
// ever exist. The cached status is not touched here; call RecomputeStatus
// once the append succeeded.
func (s *Swap) AddTimelineUpdate(tu *TimelineUpdate) *errors.Error {
	return s.timeline.Add(tu)
}

// RemoveTimelineUpdate deletes an event. The timeline is append-only in the
// normal flow; this exists for moderation.
func (s *Swap) RemoveTimelineUpdate(tuID string) *errors.Error {
	return s.timeline.Remove(tuID)
}

// SubSwapFor returns the half belonging to userID.
func (s *Swap) SubSwapFor(userID string) (*SubSwap, *errors.Error) {
	switch userID {
	case s.SubSwapRequesting.UserID:
		return s.SubSwapRequesting, nil
	case s.SubSwapAccepting.UserID:
		return s.SubSwapAccepting, nil
	default:
		return nil, errors.NotFound("User is not part of this swap")
	}
}
