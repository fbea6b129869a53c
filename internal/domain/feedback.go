package domain

import "github.com/bookswapapp/bookswap-server/internal/errors"

// FeedbackLength rates how the book's length felt to the reader.
type FeedbackLength string

const (
	FeedbackLengthTooShort  FeedbackLength = "too_short"
	FeedbackLengthJustRight FeedbackLength = "just_right"
	FeedbackLengthTooLong   FeedbackLength = "too_long"
)

// Valid checks if the value is a defined length rating.
func (l FeedbackLength) Valid() bool {
	switch l {
	case FeedbackLengthTooShort, FeedbackLengthJustRight, FeedbackLengthTooLong:
		return true
	default:
		return false
	}
}

// FeedbackCondition rates the physical condition the book arrived in.
type FeedbackCondition string

const (
	FeedbackConditionDamaged FeedbackCondition = "damaged"
	FeedbackConditionWorn    FeedbackCondition = "worn"
	FeedbackConditionGood    FeedbackCondition = "good"
	FeedbackConditionLikeNew FeedbackCondition = "like_new"
)

// Valid checks if the value is a defined condition rating.
func (c FeedbackCondition) Valid() bool {
	switch c {
	case FeedbackConditionDamaged, FeedbackConditionWorn,
		FeedbackConditionGood, FeedbackConditionLikeNew:
		return true
	default:
		return false
	}
}

// FeedbackCommunication rates how responsive the other party was.
type FeedbackCommunication string

const (
	FeedbackCommunicationPoor      FeedbackCommunication = "poor"
	FeedbackCommunicationFair      FeedbackCommunication = "fair"
	FeedbackCommunicationGood      FeedbackCommunication = "good"
	FeedbackCommunicationExcellent FeedbackCommunication = "excellent"
)

// Valid checks if the value is a defined communication rating.
func (c FeedbackCommunication) Valid() bool {
	switch c {
	case FeedbackCommunicationPoor, FeedbackCommunicationFair,
		FeedbackCommunicationGood, FeedbackCommunicationExcellent:
		return true
	default:
		return false
	}
}

// Feedback is one party's post-swap verdict on the exchange. A sub-swap
// holds at most one; that 1:1 rule is enforced by SubSwap, not here.
type Feedback struct {
	ID            string                `json:"id"`
	SubSwapID     string                `json:"sub_swap_id"`
	UserID        string                `json:"user_id"`
	Stars         int                   `json:"stars"`
	Recommend     bool                  `json:"recommend"`
	Length        FeedbackLength        `json:"length"`
	Condition     FeedbackCondition     `json:"condition"`
	Communication FeedbackCommunication `json:"communication"`
}

// NewFeedback validates and creates feedback, reporting every violation at
// once rather than stopping at the first.
func NewFeedback(feedbackID, subSwapID, userID string, stars int, recommend bool,
	length FeedbackLength, condition FeedbackCondition, communication FeedbackCommunication) (*Feedback, *errors.Error) {
	var v errors.Violations
	v.Check(feedbackID != "", "Feedback id is required")
	if subSwapID == "" {
		v.Add(errors.NotFound("Sub swap not found"))
	}
	if userID == "" {
		v.Add(errors.NotFound("User not found"))
	}
	v.Check(stars >= 1 && stars <= 5, "Stars must be between 1 and 5")
	if !length.Valid() {
		v.Add(errors.Invalidf("Unsupported length rating: %q", length))
	}
	if !condition.Valid() {
		v.Add(errors.Invalidf("Unsupported condition rating: %q", condition))
	}
	if !communication.Valid() {
		v.Add(errors.Invalidf("Unsupported communication rating: %q", communication))
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &Feedback{
		ID:            feedbackID,
		SubSwapID:     subSwapID,
		UserID:        userID,
		Stars:         stars,
		Recommend:     recommend,
		Length:        length,
		Condition:     condition,
		Communication: communication,
	}, nil
}
