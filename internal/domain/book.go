package domain

import (
	"strings"

	"github.com/bookswapapp/bookswap-server/internal/errors"
)

// GeneralBook is the aggregate for one title in the shared catalog. It owns
// the genre set and the per-user reviews. Physical copies of the title are
// separate UserBook aggregates.
type GeneralBook struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`

	genres  Collection[BookGenre]
	reviews Collection[*Review]
}

func newBookCollections(b *GeneralBook) {
	b.genres = NewCollection("genre", func(g BookGenre) string { return string(g) })
	b.reviews = newReviews()
}

// NewGeneralBook validates and creates a catalog entry, reporting every
// violation at once.
func NewGeneralBook(bookID, title, author string) (*GeneralBook, *errors.Error) {
	title = strings.TrimSpace(title)
	author = strings.TrimSpace(author)

	var v errors.Violations
	if bookID == "" {
		v.Add(errors.NotFound("Book not found"))
	}
	v.Check(title != "", "Title is required")
	v.Check(author != "", "Author is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	b := &GeneralBook{ID: bookID, Title: title, Author: author}
	newBookCollections(b)
	return b, nil
}

// ReconstituteGeneralBook rehydrates a catalog entry wholesale from storage.
func ReconstituteGeneralBook(bookID, title, author string, genres []BookGenre, reviews []*Review) *GeneralBook {
	b := &GeneralBook{ID: bookID, Title: title, Author: author}
	newBookCollections(b)
	b.genres.Load(genres)
	b.reviews.Load(reviews)
	return b
}

// Genres returns the genre values in insertion order.
func (b *GeneralBook) Genres() []BookGenre { return b.genres.Items() }

// ReplaceGenres swaps the whole genre set for the distinct union of
// newGenres. Undefined values are rejected before anything changes.
func (b *GeneralBook) ReplaceGenres(newGenres []BookGenre) *errors.Error {
	for _, g := range newGenres {
		if !g.Valid() {
			return errors.Invalidf("Unsupported genre: %q", g)
		}
	}
	b.genres.ReplaceAll(newGenres)
	return nil
}

// Reviews returns the reviews in insertion order.
func (b *GeneralBook) Reviews() []*Review { return b.reviews.Items() }

// AddReview records a review. One per user per book.
func (b *GeneralBook) AddReview(r *Review) *errors.Error {
	if r.BookID != b.ID {
		return errors.Conflict("Review belongs to a different book")
	}
	return b.reviews.Add(r)
}

// RemoveReview deletes a review.
func (b *GeneralBook) RemoveReview(reviewID string) *errors.Error {
	return b.reviews.Remove(reviewID)
}

// UpdateReview replaces a review in place. Reviewer and book are fixed.
func (b *GeneralBook) UpdateReview(r *Review) *errors.Error {
	return b.reviews.Update(r)
}

// Review returns the review with the given id.
func (b *GeneralBook) Review(reviewID string) (*Review, bool) {
	return b.reviews.Get(reviewID)
}
