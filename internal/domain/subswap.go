package domain

import "github.com/bookswapapp/bookswap-server/internal/errors"

// SubSwap is one party's half of a swap: which of the other party's books
// they are reading, how far they are, and their post-swap feedback or
// complaint. Both halves exist from the moment the swap is proposed; the
// accepting half stays provisional (no book chosen) until that party
// engages.
type SubSwap struct {
	ID                string    `json:"id"`
	UserID            string    `json:"user_id"`
	PageAt            int       `json:"page_at"`
	UserBookReadingID string    `json:"user_book_reading_id,omitempty"`
	Feedback          *Feedback `json:"feedback,omitempty"`
	Issue             *Issue    `json:"issue,omitempty"`
}

// newSubSwap creates a fresh half of a new swap. Field validation happens
// in NewSwap, which knows which role each id plays.
func newSubSwap(subSwapID, userID, userBookReadingID string) *SubSwap {
	return &SubSwap{
		ID:                subSwapID,
		UserID:            userID,
		UserBookReadingID: userBookReadingID,
	}
}

// ReconstituteSubSwap rehydrates a sub-swap from storage without
// re-running validation.
func ReconstituteSubSwap(subSwapID, userID string, pageAt int, userBookReadingID string, feedback *Feedback, issue *Issue) *SubSwap {
	return &SubSwap{
		ID:                subSwapID,
		UserID:            userID,
		PageAt:            pageAt,
		UserBookReadingID: userBookReadingID,
		Feedback:          feedback,
		Issue:             issue,
	}
}

// UpdateProgress moves the reader's position to newPage.
func (s *SubSwap) UpdateProgress(newPage int) *errors.Error {
	if newPage < 0 {
		return errors.Validation("Page must be above 0")
	}
	s.PageAt = newPage
	return nil
}

// SetReadingBook records which of the other party's books this side reads.
func (s *SubSwap) SetReadingBook(userBookID string) *errors.Error {
	if userBookID == "" {
		return errors.NotFound("User book not found")
	}
	s.UserBookReadingID = userBookID
	return nil
}

// AttachFeedback sets this side's one-and-only feedback. A second attempt
// conflicts, as does feedback issued for a different sub-swap or user.
func (s *SubSwap) AttachFeedback(f *Feedback) *errors.Error {
	if s.Feedback != nil {
		return errors.Conflict("Feedback already left for this sub swap")
	}
	if f.SubSwapID != s.ID {
		return errors.Conflict("Feedback belongs to a different sub swap")
	}
	if f.UserID != s.UserID {
		return errors.Conflict("Feedback belongs to a different user")
	}
	s.Feedback = f
	return nil
}

// AttachIssue sets this side's one-and-only issue, with the same ownership
// checks as AttachFeedback.
func (s *SubSwap) AttachIssue(i *Issue) *errors.Error {
	if s.Issue != nil {
		return errors.Conflict("Issue already raised for this sub swap")
	}
	if i.SubSwapID != s.ID {
		return errors.Conflict("Issue belongs to a different sub swap")
	}
	if i.UserID != s.UserID {
		return errors.Conflict("Issue belongs to a different user")
	}
	s.Issue = i
	return nil
}
