package domain

import (
	"strings"

	"github.com/bookswapapp/bookswap-server/internal/errors"
)

// BookmarkColour is the marker colour shown for a bookmark.
type BookmarkColour string

const (
	BookmarkColourRed    BookmarkColour = "red"
	BookmarkColourGreen  BookmarkColour = "green"
	BookmarkColourBlue   BookmarkColour = "blue"
	BookmarkColourYellow BookmarkColour = "yellow"
	BookmarkColourPurple BookmarkColour = "purple"
	BookmarkColourBlack  BookmarkColour = "black"
)

// Valid checks if the value is a defined bookmark colour.
func (c BookmarkColour) Valid() bool {
	switch c {
	case BookmarkColourRed, BookmarkColourGreen, BookmarkColourBlue,
		BookmarkColourYellow, BookmarkColourPurple, BookmarkColourBlack:
		return true
	default:
		return false
	}
}

// Bookmark marks a page in a physical copy, optionally annotated.
type Bookmark struct {
	ID          string         `json:"id"`
	UserBookID  string         `json:"user_book_id"`
	Colour      BookmarkColour `json:"colour"`
	Page        int            `json:"page"`
	Description string         `json:"description,omitempty"`
}

// NewBookmark validates and creates a bookmark, reporting every violation
// at once. The description is optional and trimmed.
func NewBookmark(bookmarkID, userBookID string, colour BookmarkColour, page int, description string) (*Bookmark, *errors.Error) {
	description = strings.TrimSpace(description)

	var v errors.Violations
	v.Check(bookmarkID != "", "Bookmark id is required")
	if userBookID == "" {
		v.Add(errors.NotFound("User book not found"))
	}
	if !colour.Valid() {
		v.Add(errors.Invalidf("Unsupported bookmark colour: %q", colour))
	}
	v.Check(page >= 0, "Page must be above 0")
	if err := v.Err(); err != nil {
		return nil, err
	}

	return &Bookmark{
		ID:          bookmarkID,
		UserBookID:  userBookID,
		Colour:      colour,
		Page:        page,
		Description: description,
	}, nil
}

// newBookmarks builds the bookmark collection for a user book. Uniqueness
// holds on id and on the (page, description) pair; the owning copy is
// fixed at creation.
func newBookmarks() Collection[*Bookmark] {
	return NewCollection("bookmark", func(b *Bookmark) string { return b.ID }).
		WithAddRule(func(items []*Bookmark, candidate *Bookmark) *errors.Error {
			for _, it := range items {
				if it.Page == candidate.Page && it.Description == candidate.Description {
					return errors.Conflict("Duplicate bookmark")
				}
			}
			return nil
		}).
		WithImmutable(func(existing, updated *Bookmark) *errors.Error {
			if updated.UserBookID != existing.UserBookID {
				return errors.Conflict("Bookmark user book id cannot be changed")
			}
			return nil
		})
}
