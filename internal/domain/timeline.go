package domain

import (
	"strings"
	"time"

	"github.com/bookswapapp/bookswap-server/internal/errors"
)

// TimelineStatus is the fine-grained lifecycle event recorded against a
// swap. The sequence of these events is the source of truth for where the
// swap stands; SwapStatus is derived from the most recent one.
type TimelineStatus string

const (
	TimelineStatusRequested        TimelineStatus = "requested"
	TimelineStatusAccepted         TimelineStatus = "accepted"
	TimelineStatusDeclined         TimelineStatus = "declined"
	TimelineStatusCanceled         TimelineStatus = "canceled"
	TimelineStatusMeetingUp        TimelineStatus = "meeting_up"
	TimelineStatusReadingBooks     TimelineStatus = "reading_books"
	TimelineStatusFinishedBooks    TimelineStatus = "finished_books"
	TimelineStatusWaitingForFinish TimelineStatus = "waiting_for_finish"
	TimelineStatusRequestedFinish  TimelineStatus = "requested_finish"
	TimelineStatusFinished         TimelineStatus = "finished"
	TimelineStatusDisputed         TimelineStatus = "disputed"
	// TimelineStatusResolved predates TimelineStatusFinished for dispute
	// outcomes. Old timelines still carry it, so it stays a defined value.
	TimelineStatusResolved TimelineStatus = "resolved"
)

// Valid checks if the status is a defined timeline status.
func (s TimelineStatus) Valid() bool {
	switch s {
	case TimelineStatusRequested, TimelineStatusAccepted, TimelineStatusDeclined,
		TimelineStatusCanceled, TimelineStatusMeetingUp, TimelineStatusReadingBooks,
		TimelineStatusFinishedBooks, TimelineStatusWaitingForFinish,
		TimelineStatusRequestedFinish, TimelineStatusFinished,
		TimelineStatusDisputed, TimelineStatusResolved:
		return true
	default:
		return false
	}
}

// SwapStatus is the coarse status of a swap, derived from its timeline.
type SwapStatus string

const (
	SwapStatusRequested SwapStatus = "requested"
	SwapStatusOngoing   SwapStatus = "ongoing"
	SwapStatusFinished  SwapStatus = "finished"
	SwapStatusDisputed  SwapStatus = "disputed"
)

// Valid checks if the status is a defined swap status.
func (s SwapStatus) Valid() bool {
	switch s {
	case SwapStatusRequested, SwapStatusOngoing, SwapStatusFinished, SwapStatusDisputed:
		return true
	default:
		return false
	}
}

// DeriveSwapStatus projects a timeline event onto the coarse swap status.
// Total over all defined TimelineStatus values.
func DeriveSwapStatus(s TimelineStatus) SwapStatus {
	switch s {
	case TimelineStatusRequested, TimelineStatusAccepted, TimelineStatusDeclined:
		return SwapStatusRequested
	case TimelineStatusCanceled, TimelineStatusMeetingUp, TimelineStatusReadingBooks,
		TimelineStatusFinishedBooks, TimelineStatusWaitingForFinish,
		TimelineStatusRequestedFinish:
		return SwapStatusOngoing
	case TimelineStatusFinished, TimelineStatusResolved:
		return SwapStatusFinished
	case TimelineStatusDisputed:
		return SwapStatusDisputed
	default:
		return SwapStatusRequested
	}
}

// maxTimelineDescriptionLen bounds the free-text description of an event.
const maxTimelineDescriptionLen = 100

// TimelineUpdate is one append-only lifecycle event on a swap's timeline.
type TimelineUpdate struct {
	ID          string         `json:"id"`
	UserID      string         `json:"user_id"`
	SwapID      string         `json:"swap_id"`
	Status      TimelineStatus `json:"status"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewTimelineUpdate validates and creates a timeline event, reporting every
// violation at once. The description is trimmed before length checks.
func NewTimelineUpdate(tuID, userID, swapID string, status TimelineStatus, description string) (*TimelineUpdate, *errors.Error) {
	description = strings.TrimSpace(description)

	var v errors.Violations
	v.Check(tuID != "", "Timeline update id is required")
	if userID == "" {
		v.Add(errors.NotFound("User not found"))
	}
	if swapID == "" {
		v.Add(errors.NotFound("Swap not found"))
	}
	if !status.Valid() {
		v.Add(errors.Invalidf("Unsupported timeline status: %q", status))
	}
	v.Check(description != "", "Description is required")
	v.Check(len(description) <= maxTimelineDescriptionLen, "Description must be at most 100 characters")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &TimelineUpdate{
		ID:          tuID,
		UserID:      userID,
		SwapID:      swapID,
		Status:      status,
		Description: description,
		CreatedAt:   time.Now(),
	}, nil
}

// newTimelineUpdates builds the timeline collection for a swap. A timeline
// holds at most one Requested event for its whole lifetime.
func newTimelineUpdates() Collection[*TimelineUpdate] {
	return NewCollection("timeline update", func(tu *TimelineUpdate) string { return tu.ID }).
		WithAddRule(func(items []*TimelineUpdate, candidate *TimelineUpdate) *errors.Error {
			if candidate.Status != TimelineStatusRequested {
				return nil
			}
			for _, it := range items {
				if it.Status == TimelineStatusRequested {
					return errors.Conflict("Can only request once during a timeline of a swap")
				}
			}
			return nil
		})
}
