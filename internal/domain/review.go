package domain

import (
	"strings"
	"time"

	"github.com/bookswapapp/bookswap-server/internal/errors"
)

// maxReviewCommentLen bounds the optional review comment.
const maxReviewCommentLen = 500

// Review is one user's rating of a general book.
type Review struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReview validates and creates a review, reporting every violation at
// once. The comment is optional and trimmed.
func NewReview(reviewID, userID, bookID string, rating int, comment string) (*Review, *errors.Error) {
	comment = strings.TrimSpace(comment)

	var v errors.Violations
	v.Check(reviewID != "", "Review id is required")
	if userID == "" {
		v.Add(errors.NotFound("User not found"))
	}
	if bookID == "" {
		v.Add(errors.NotFound("Book not found"))
	}
	v.Check(rating >= 1 && rating <= 10, "Rating must be between 1 and 10")
	v.Check(len(comment) <= maxReviewCommentLen, "Comment must be at most 500 characters")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &Review{
		ID:        reviewID,
		UserID:    userID,
		BookID:    bookID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}, nil
}

// newReviews builds the review collection for a general book. Each user
// gets one review; the user and book ids are fixed at creation.
func newReviews() Collection[*Review] {
	return NewCollection("review", func(r *Review) string { return r.ID }).
		WithAddRule(func(items []*Review, candidate *Review) *errors.Error {
			for _, it := range items {
				if it.UserID == candidate.UserID {
					return errors.Conflict("One person can only add one review")
				}
			}
			return nil
		}).
		WithImmutable(func(existing, updated *Review) *errors.Error {
			if updated.UserID != existing.UserID {
				return errors.Conflict("Review user id cannot be changed")
			}
			if updated.BookID != existing.BookID {
				return errors.Conflict("Review book id cannot be changed")
			}
			return nil
		})
}
