package service

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/errors"
)

func proposeTestSwap(t *testing.T, env *testEnv) *domain.Swap {
	t.Helper()
	copy := seedSwapParties(t, env)

	swap, err := env.swaps.ProposeSwap(context.Background(), ProposeSwapRequest{
		RequestingUserID: testRequesterID,
		AcceptingUserID:  testAccepterID,
		UserBookID:       copy.ID,
	})
	require.NoError(t, err)
	return swap
}

func TestSwapService_ProposeSwap(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	swap := proposeTestSwap(t, env)

	assert.Equal(t, domain.SwapStatusRequested, swap.Status())
	assert.Equal(t, testRequesterID, swap.SubSwapRequesting.UserID)
	assert.Equal(t, testAccepterID, swap.SubSwapAccepting.UserID)
	assert.NotEmpty(t, swap.SubSwapRequesting.UserBookReadingID)
	assert.Empty(t, swap.SubSwapAccepting.UserBookReadingID)

	updates := swap.TimelineUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, domain.TimelineStatusRequested, updates[0].Status)

	// Persisted, and the offered copy is committed.
	stored, err := env.swaps.GetSwap(ctx, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusRequested, stored.Status())

	copy, err := env.books.GetCopy(ctx, swap.SubSwapRequesting.UserBookReadingID)
	require.NoError(t, err)
	assert.Equal(t, domain.UserBookStatusSwapped, copy.Status)
}

func TestSwapService_ProposeSwap_UnavailableBook(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	swap := proposeTestSwap(t, env)

	// Same copy again: it is out on the first swap.
	_, err := env.swaps.ProposeSwap(ctx, ProposeSwapRequest{
		RequestingUserID: testRequesterID,
		AcceptingUserID:  testAccepterID,
		UserBookID:       swap.SubSwapRequesting.UserBookReadingID,
	})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrConflict))
}

func TestSwapService_ProposeSwap_ForeignBook(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	seedSwapParties(t, env)

	// A copy owned by the accepter cannot be offered by the requester.
	copy, err := env.books.RegisterCopy(ctx, RegisterCopyRequest{
		OwnerID:       testAccepterID,
		GeneralBookID: testBookID,
		PageCount:     304,
	})
	require.NoError(t, err)

	_, err = env.swaps.ProposeSwap(ctx, ProposeSwapRequest{
		RequestingUserID: testRequesterID,
		AcceptingUserID:  testAccepterID,
		UserBookID:       copy.ID,
	})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrConflict))
}

func TestSwapService_ProposeSwap_InvalidRequest(t *testing.T) {
	env := setupTest(t)

	_, err := env.swaps.ProposeSwap(context.Background(), ProposeSwapRequest{})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrValidation))
}

func TestSwapService_AcceptAdvancesTimeline(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	swap := proposeTestSwap(t, env)

	accepted, err := env.swaps.Accept(ctx, swap.ID, testAccepterID)
	require.NoError(t, err)

	updates := accepted.TimelineUpdates()
	require.Len(t, updates, 2)
	assert.Equal(t, domain.TimelineStatusAccepted, updates[1].Status)
	assert.Equal(t, domain.SwapStatusRequested, accepted.Status())
}

func TestSwapService_TimelineRejectsStranger(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	swap := proposeTestSwap(t, env)

	_, err := env.swaps.Accept(ctx, swap.ID, "b0c1d2e3-f4a5-4678-9abc-def012345678")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrNotFound))
}

func TestSwapService_HappyPathToFinished(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	swap := proposeTestSwap(t, env)

	_, err := env.swaps.Accept(ctx, swap.ID, testAccepterID)
	require.NoError(t, err)

	meetup, err := env.swaps.SuggestMeetup(ctx, SuggestMeetupRequest{
		SwapID:          swap.ID,
		SuggestedUserID: testAccepterID,
	})
	require.NoError(t, err)
	assert.Equal(t, domain.MeetupStatusNoLocation, meetup.Status)

	meetup, err = env.swaps.UpdateMeetupLocation(ctx, swap.ID, meetup.ID, 52.37, 4.89)
	require.NoError(t, err)
	assert.Equal(t, domain.MeetupStatusWaiting, meetup.Status)
	require.NotNil(t, meetup.Location)

	// Moving an existing pin flags the change.
	meetup, err = env.swaps.UpdateMeetupLocation(ctx, swap.ID, meetup.ID, 48.86, 2.35)
	require.NoError(t, err)
	assert.Equal(t, domain.MeetupStatusChangedLocation, meetup.Status)

	current, err := env.swaps.AddTimelineUpdate(ctx, AddTimelineUpdateRequest{
		SwapID:      swap.ID,
		UserID:      testRequesterID,
		Status:      domain.TimelineStatusReadingBooks,
		Description: "Books handed over",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusOngoing, current.Status())

	sub, err := env.swaps.UpdateProgress(ctx, swap.ID, testRequesterID, 120)
	require.NoError(t, err)
	assert.Equal(t, 120, sub.PageAt)

	current, err = env.swaps.AddTimelineUpdate(ctx, AddTimelineUpdateRequest{
		SwapID:      swap.ID,
		UserID:      testAccepterID,
		Status:      domain.TimelineStatusFinished,
		Description: "Both books returned",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusFinished, current.Status())

	fb, err := env.swaps.LeaveFeedback(ctx, LeaveFeedbackRequest{
		SwapID:        swap.ID,
		UserID:        testAccepterID,
		Stars:         5,
		Recommend:     true,
		Length:        domain.FeedbackLengthJustRight,
		Condition:     domain.FeedbackConditionLikeNew,
		Communication: domain.FeedbackCommunicationExcellent,
	})
	require.NoError(t, err)

	stored, err := env.swaps.GetSwap(ctx, swap.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.SubSwapAccepting.Feedback)
	assert.Equal(t, fb.ID, stored.SubSwapAccepting.Feedback.ID)
}

func TestSwapService_LeaveFeedback_Twice(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	swap := proposeTestSwap(t, env)

	req := LeaveFeedbackRequest{
		SwapID:        swap.ID,
		UserID:        testRequesterID,
		Stars:         3,
		Recommend:     false,
		Length:        domain.FeedbackLengthTooLong,
		Condition:     domain.FeedbackConditionWorn,
		Communication: domain.FeedbackCommunicationFair,
	}
	_, err := env.swaps.LeaveFeedback(ctx, req)
	require.NoError(t, err)

	_, err = env.swaps.LeaveFeedback(ctx, req)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrConflict))
}

func TestSwapService_RaiseIssue_MovesToDisputed(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	swap := proposeTestSwap(t, env)

	issue, err := env.swaps.RaiseIssue(ctx, RaiseIssueRequest{
		SwapID:      swap.ID,
		UserID:      testAccepterID,
		Description: "Book never arrived",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, issue.ID)

	stored, err := env.swaps.GetSwap(ctx, swap.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.SwapStatusDisputed, stored.Status())
	require.NotNil(t, stored.SubSwapAccepting.Issue)
	assert.Equal(t, "Book never arrived", stored.SubSwapAccepting.Issue.Description)

	updates := stored.TimelineUpdates()
	assert.Equal(t, domain.TimelineStatusDisputed, updates[len(updates)-1].Status)
}

func TestSwapService_ChooseReadingBook(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	swap := proposeTestSwap(t, env)

	// The accepter picks one of the requester's copies to read.
	copy, err := env.books.RegisterCopy(ctx, RegisterCopyRequest{
		OwnerID:       testRequesterID,
		GeneralBookID: testBookID,
		PageCount:     200,
	})
	require.NoError(t, err)

	sub, err := env.swaps.ChooseReadingBook(ctx, swap.ID, testAccepterID, copy.ID)
	require.NoError(t, err)
	assert.Equal(t, copy.ID, sub.UserBookReadingID)

	// Reading your own book is a conflict.
	ownCopy, err := env.books.RegisterCopy(ctx, RegisterCopyRequest{
		OwnerID:       testAccepterID,
		GeneralBookID: testBookID,
		PageCount:     200,
	})
	require.NoError(t, err)

	_, err = env.swaps.ChooseReadingBook(ctx, swap.ID, testAccepterID, ownCopy.ID)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrConflict))
}

func TestSwapService_RemoveMeetup(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	swap := proposeTestSwap(t, env)

	meetup, err := env.swaps.SuggestMeetup(ctx, SuggestMeetupRequest{
		SwapID:          swap.ID,
		SuggestedUserID: testRequesterID,
	})
	require.NoError(t, err)

	require.NoError(t, env.swaps.RemoveMeetup(ctx, swap.ID, meetup.ID))

	stored, err := env.swaps.GetSwap(ctx, swap.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.Meetups())
}

func TestSwapService_ListSwapsForUser(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	swap := proposeTestSwap(t, env)

	for _, userID := range []string{testRequesterID, testAccepterID} {
		swaps, err := env.swaps.ListSwapsForUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, swaps, 1)
		assert.Equal(t, swap.ID, swaps[0].ID)
	}
}
