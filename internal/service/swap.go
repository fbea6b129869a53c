package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/errors"
	"github.com/bookswapapp/bookswap-server/internal/id"
	"github.com/bookswapapp/bookswap-server/internal/store"
)

// SwapService handles the swap lifecycle: proposal, the timeline, meetups,
// reading progress, and post-swap feedback or disputes.
type SwapService struct {
	store  store.Store
	logger *slog.Logger
}

// NewSwapService creates a new swap service.
func NewSwapService(store store.Store, logger *slog.Logger) *SwapService {
	return &SwapService{
		store:  store,
		logger: logger,
	}
}

// ProposeSwapRequest contains the data for proposing a swap.
type ProposeSwapRequest struct {
	RequestingUserID string `json:"requesting_user_id" validate:"required,uuid"`
	AcceptingUserID  string `json:"accepting_user_id" validate:"required,uuid"`
	UserBookID       string `json:"user_book_id" validate:"required"`
}

// ProposeSwap creates a swap: the requesting user offers one of their books
// to the accepting user. The offered copy must be available and owned by
// the requester. The swap starts with a Requested timeline entry.
func (s *SwapService) ProposeSwap(ctx context.Context, req ProposeSwapRequest) (*domain.Swap, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	// Both parties must exist.
	if _, err := s.store.GetUser(ctx, req.RequestingUserID); err != nil {
		return nil, fmt.Errorf("requesting user: %w", err)
	}
	if _, err := s.store.GetUser(ctx, req.AcceptingUserID); err != nil {
		return nil, fmt.Errorf("accepting user: %w", err)
	}

	// The offered copy must belong to the requester and be available.
	userBook, err := s.store.GetUserBook(ctx, req.UserBookID)
	if err != nil {
		return nil, fmt.Errorf("offered book: %w", err)
	}
	if userBook.OwnerID != req.RequestingUserID {
		return nil, errors.Conflict("Offered book belongs to a different user")
	}
	if !userBook.IsAvailable() {
		return nil, errors.Conflict("Offered book is already out on a swap")
	}

	swapID, err := id.Generate(id.PrefixSwap)
	if err != nil {
		return nil, fmt.Errorf("generate swap ID: %w", err)
	}

	swap, derr := domain.NewSwap(swapID,
		id.MustGenerate(id.PrefixSubSwap), id.MustGenerate(id.PrefixSubSwap),
		req.RequestingUserID, req.UserBookID, req.AcceptingUserID)
	if derr != nil {
		return nil, derr
	}

	tu, derr := domain.NewTimelineUpdate(id.MustGenerate(id.PrefixTimeline),
		req.RequestingUserID, swapID, domain.TimelineStatusRequested, "Swap proposed")
	if derr != nil {
		return nil, derr
	}
	if derr := swap.AddTimelineUpdate(tu); derr != nil {
		return nil, derr
	}
	swap.RecomputeStatus()

	if err := s.store.CreateSwap(ctx, swap); err != nil {
		return nil, fmt.Errorf("store swap: %w", err)
	}

	// The copy is committed to this swap now.
	userBook.MarkSwapped()
	if err := s.store.SaveUserBook(ctx, userBook); err != nil {
		return nil, fmt.Errorf("mark book swapped: %w", err)
	}

	s.logger.Info("swap proposed",
		"swap_id", swap.ID,
		"requesting_user_id", req.RequestingUserID,
		"accepting_user_id", req.AcceptingUserID,
		"user_book_id", req.UserBookID,
	)

	return swap, nil
}

// GetSwap retrieves a swap with all of its children.
func (s *SwapService) GetSwap(ctx context.Context, swapID string) (*domain.Swap, error) {
	return s.store.GetSwap(ctx, swapID)
}

// ListSwapsForUser returns every swap the user participates in.
func (s *SwapService) ListSwapsForUser(ctx context.Context, userID string) ([]*domain.Swap, error) {
	return s.store.ListSwapsForUser(ctx, userID)
}

// Accept records the accepting party's agreement to the proposal.
func (s *SwapService) Accept(ctx context.Context, swapID, userID string) (*domain.Swap, error) {
	return s.appendTimeline(ctx, swapID, userID, domain.TimelineStatusAccepted, "Swap accepted")
}

// Decline records the accepting party's rejection of the proposal.
func (s *SwapService) Decline(ctx context.Context, swapID, userID string) (*domain.Swap, error) {
	return s.appendTimeline(ctx, swapID, userID, domain.TimelineStatusDeclined, "Swap declined")
}

// Cancel withdraws the swap.
func (s *SwapService) Cancel(ctx context.Context, swapID, userID string) (*domain.Swap, error) {
	return s.appendTimeline(ctx, swapID, userID, domain.TimelineStatusCanceled, "Swap canceled")
}

// AddTimelineUpdateRequest contains the data for a generic timeline advance.
type AddTimelineUpdateRequest struct {
	SwapID      string                `json:"swap_id" validate:"required"`
	UserID      string                `json:"user_id" validate:"required"`
	Status      domain.TimelineStatus `json:"status" validate:"required"`
	Description string                `json:"description" validate:"required,max=100"`
}

// AddTimelineUpdate appends an arbitrary lifecycle event to the timeline.
func (s *SwapService) AddTimelineUpdate(ctx context.Context, req AddTimelineUpdateRequest) (*domain.Swap, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}
	return s.appendTimeline(ctx, req.SwapID, req.UserID, req.Status, req.Description)
}

// appendTimeline loads the swap, appends one event on behalf of a party,
// recomputes the cached status, and saves.
func (s *SwapService) appendTimeline(ctx context.Context, swapID, userID string,
	status domain.TimelineStatus, description string) (*domain.Swap, error) {
	swap, err := s.store.GetSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}
	if _, derr := swap.SubSwapFor(userID); derr != nil {
		return nil, derr
	}

	tu, derr := domain.NewTimelineUpdate(id.MustGenerate(id.PrefixTimeline),
		userID, swapID, status, description)
	if derr != nil {
		return nil, derr
	}
	if derr := swap.AddTimelineUpdate(tu); derr != nil {
		return nil, derr
	}
	swap.RecomputeStatus()

	if err := s.store.SaveSwap(ctx, swap); err != nil {
		return nil, fmt.Errorf("save swap: %w", err)
	}

	s.logger.Debug("timeline advanced",
		"swap_id", swapID,
		"user_id", userID,
		"status", string(status),
		"swap_status", string(swap.Status()),
	)
	return swap, nil
}

// SuggestMeetupRequest contains the data for suggesting a handover.
type SuggestMeetupRequest struct {
	SwapID          string   `json:"swap_id" validate:"required"`
	SuggestedUserID string   `json:"suggested_user_id" validate:"required,uuid"`
	Latitude        *float64 `json:"latitude" validate:"omitempty,latitude"`
	Longitude       *float64 `json:"longitude" validate:"omitempty,longitude"`
}

// SuggestMeetup records a new handover suggestion. With coordinates the
// meetup starts waiting for the other party; without, it has no location
// yet.
func (s *SwapService) SuggestMeetup(ctx context.Context, req SuggestMeetupRequest) (*domain.Meetup, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	swap, err := s.store.GetSwap(ctx, req.SwapID)
	if err != nil {
		return nil, err
	}
	if _, derr := swap.SubSwapFor(req.SuggestedUserID); derr != nil {
		return nil, derr
	}

	status := domain.MeetupStatusNoLocation
	var location *domain.Location
	if req.Latitude != nil && req.Longitude != nil {
		loc, derr := domain.NewLocation(*req.Latitude, *req.Longitude)
		if derr != nil {
			return nil, derr
		}
		location = &loc
		status = domain.MeetupStatusWaiting
	}

	meetup, derr := domain.NewMeetup(id.MustGenerate(id.PrefixMeetup),
		req.SwapID, req.SuggestedUserID, status, location)
	if derr != nil {
		return nil, derr
	}
	if derr := swap.AddMeetup(meetup); derr != nil {
		return nil, derr
	}

	if err := s.store.SaveSwap(ctx, swap); err != nil {
		return nil, fmt.Errorf("save swap: %w", err)
	}

	s.logger.Debug("meetup suggested",
		"swap_id", req.SwapID,
		"meetup_id", meetup.ID,
		"status", string(status),
	)
	return meetup, nil
}

// UpdateMeetupLocation moves the pin for an existing suggestion. A meetup
// that already had a location moves to changed-location; one without moves
// to waiting.
func (s *SwapService) UpdateMeetupLocation(ctx context.Context, swapID, meetupID string, lat, lon float64) (*domain.Meetup, error) {
	swap, err := s.store.GetSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}

	meetup, ok := swap.Meetup(meetupID)
	if !ok {
		return nil, errors.NotFound("Meetup not found")
	}

	location, derr := domain.NewLocation(lat, lon)
	if derr != nil {
		return nil, derr
	}

	hadLocation := meetup.Location != nil
	meetup.UpdateLocation(location)
	if hadLocation {
		meetup.Status = domain.MeetupStatusChangedLocation
	} else {
		meetup.Status = domain.MeetupStatusWaiting
	}

	if err := s.store.SaveSwap(ctx, swap); err != nil {
		return nil, fmt.Errorf("save swap: %w", err)
	}
	return meetup, nil
}

// RemoveMeetup withdraws a handover suggestion.
func (s *SwapService) RemoveMeetup(ctx context.Context, swapID, meetupID string) error {
	swap, err := s.store.GetSwap(ctx, swapID)
	if err != nil {
		return err
	}
	if derr := swap.RemoveMeetup(meetupID); derr != nil {
		return derr
	}
	if err := s.store.SaveSwap(ctx, swap); err != nil {
		return fmt.Errorf("save swap: %w", err)
	}
	return nil
}

// UpdateProgress moves one party's reading position.
func (s *SwapService) UpdateProgress(ctx context.Context, swapID, userID string, page int) (*domain.SubSwap, error) {
	swap, err := s.store.GetSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}

	subSwap, derr := swap.SubSwapFor(userID)
	if derr != nil {
		return nil, derr
	}
	if derr := subSwap.UpdateProgress(page); derr != nil {
		return nil, derr
	}

	if err := s.store.SaveSwap(ctx, swap); err != nil {
		return nil, fmt.Errorf("save swap: %w", err)
	}
	return subSwap, nil
}

// ChooseReadingBook records which of the other party's books a participant
// will read during the swap.
func (s *SwapService) ChooseReadingBook(ctx context.Context, swapID, userID, userBookID string) (*domain.SubSwap, error) {
	swap, err := s.store.GetSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}

	subSwap, derr := swap.SubSwapFor(userID)
	if derr != nil {
		return nil, derr
	}

	userBook, err := s.store.GetUserBook(ctx, userBookID)
	if err != nil {
		return nil, fmt.Errorf("user book: %w", err)
	}
	if userBook.OwnerID == userID {
		return nil, errors.Conflict("Cannot read your own book during a swap")
	}

	if derr := subSwap.SetReadingBook(userBookID); derr != nil {
		return nil, derr
	}

	if err := s.store.SaveSwap(ctx, swap); err != nil {
		return nil, fmt.Errorf("save swap: %w", err)
	}
	return subSwap, nil
}

// LeaveFeedbackRequest contains the data for post-swap feedback.
type LeaveFeedbackRequest struct {
	SwapID        string                       `json:"swap_id" validate:"required"`
	UserID        string                       `json:"user_id" validate:"required,uuid"`
	Stars         int                          `json:"stars" validate:"gte=1,lte=5"`
	Recommend     bool                         `json:"recommend"`
	Length        domain.FeedbackLength        `json:"length" validate:"required"`
	Condition     domain.FeedbackCondition     `json:"condition" validate:"required"`
	Communication domain.FeedbackCommunication `json:"communication" validate:"required"`
}

// LeaveFeedback records one party's verdict on the exchange. Each side
// leaves at most one.
func (s *SwapService) LeaveFeedback(ctx context.Context, req LeaveFeedbackRequest) (*domain.Feedback, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	swap, err := s.store.GetSwap(ctx, req.SwapID)
	if err != nil {
		return nil, err
	}
	subSwap, derr := swap.SubSwapFor(req.UserID)
	if derr != nil {
		return nil, derr
	}

	feedback, derr := domain.NewFeedback(id.MustGenerate(id.PrefixFeedback),
		subSwap.ID, req.UserID, req.Stars, req.Recommend,
		req.Length, req.Condition, req.Communication)
	if derr != nil {
		return nil, derr
	}
	if derr := subSwap.AttachFeedback(feedback); derr != nil {
		return nil, derr
	}

	if err := s.store.SaveSwap(ctx, swap); err != nil {
		return nil, fmt.Errorf("save swap: %w", err)
	}

	s.logger.Debug("feedback left",
		"swap_id", req.SwapID,
		"user_id", req.UserID,
		"stars", req.Stars,
	)
	return feedback, nil
}

// RaiseIssueRequest contains the data for raising a dispute.
type RaiseIssueRequest struct {
	SwapID      string `json:"swap_id" validate:"required"`
	UserID      string `json:"user_id" validate:"required,uuid"`
	Description string `json:"description" validate:"required,max=1000"`
}

// RaiseIssue records one party's complaint and moves the swap into dispute
// by appending a Disputed timeline entry.
func (s *SwapService) RaiseIssue(ctx context.Context, req RaiseIssueRequest) (*domain.Issue, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	swap, err := s.store.GetSwap(ctx, req.SwapID)
	if err != nil {
		return nil, err
	}
	subSwap, derr := swap.SubSwapFor(req.UserID)
	if derr != nil {
		return nil, derr
	}

	issue, derr := domain.NewIssue(id.MustGenerate(id.PrefixIssue),
		subSwap.ID, req.UserID, req.Description)
	if derr != nil {
		return nil, derr
	}
	if derr := subSwap.AttachIssue(issue); derr != nil {
		return nil, derr
	}

	tu, derr := domain.NewTimelineUpdate(id.MustGenerate(id.PrefixTimeline),
		req.UserID, req.SwapID, domain.TimelineStatusDisputed, "Issue raised")
	if derr != nil {
		return nil, derr
	}
	if derr := swap.AddTimelineUpdate(tu); derr != nil {
		return nil, derr
	}
	swap.RecomputeStatus()

	if err := s.store.SaveSwap(ctx, swap); err != nil {
		return nil, fmt.Errorf("save swap: %w", err)
	}

	s.logger.Info("issue raised",
		"swap_id", req.SwapID,
		"user_id", req.UserID,
		"issue_id", issue.ID,
	)
	return issue, nil
}
