package domain

import "github.com/bookswapapp/bookswap-server/internal/errors"

// UserBookStatus says whether a physical copy is home or out on a swap.
type UserBookStatus string

const (
	UserBookStatusAvailable UserBookStatus = "available"
	UserBookStatusSwapped   UserBookStatus = "swapped"
)

// Valid checks if the value is a defined user book status.
func (s UserBookStatus) Valid() bool {
	switch s {
	case UserBookStatusAvailable, UserBookStatusSwapped:
		return true
	default:
		return false
	}
}

// UserBook is the aggregate for one physical copy: which catalog title it
// is, who owns it, and the bookmarks left in it.
type UserBook struct {
	ID            string         `json:"id"`
	OwnerID       string         `json:"owner_id"`
	GeneralBookID string         `json:"general_book_id"`
	Status        UserBookStatus `json:"status"`
	PageCount     int            `json:"page_count"`

	bookmarks Collection[*Bookmark]
}

// NewUserBook validates and creates a physical copy record, reporting
// every violation at once. New copies start available.
func NewUserBook(userBookID, ownerID, generalBookID string, pageCount int) (*UserBook, *errors.Error) {
	var v errors.Violations
	v.Check(userBookID != "", "User book id is required")
	if ownerID == "" {
		v.Add(errors.NotFound("Owner not found"))
	}
	if generalBookID == "" {
		v.Add(errors.NotFound("Book not found"))
	}
	v.Check(pageCount > 0, "Page count must be above 0")
	if err := v.Err(); err != nil {
		return nil, err
	}

	ub := &UserBook{
		ID:            userBookID,
		OwnerID:       ownerID,
		GeneralBookID: generalBookID,
		Status:        UserBookStatusAvailable,
		PageCount:     pageCount,
	}
	ub.bookmarks = newBookmarks()
	return ub, nil
}

// ReconstituteUserBook rehydrates a physical copy wholesale from storage.
func ReconstituteUserBook(userBookID, ownerID, generalBookID string, status UserBookStatus,
	pageCount int, bookmarks []*Bookmark) *UserBook {
	ub := &UserBook{
		ID:            userBookID,
		OwnerID:       ownerID,
		GeneralBookID: generalBookID,
		Status:        status,
		PageCount:     pageCount,
	}
	ub.bookmarks = newBookmarks()
	ub.bookmarks.Load(bookmarks)
	return ub
}

// MarkSwapped flags the copy as out on a swap.
func (ub *UserBook) MarkSwapped() {
	ub.Status = UserBookStatusSwapped
}

// MarkAvailable flags the copy as back with its owner.
func (ub *UserBook) MarkAvailable() {
	ub.Status = UserBookStatusAvailable
}

// IsAvailable reports whether the copy can enter a new swap.
func (ub *UserBook) IsAvailable() bool {
	return ub.Status == UserBookStatusAvailable
}

// Bookmarks returns the bookmarks in insertion order.
func (ub *UserBook) Bookmarks() []*Bookmark { return ub.bookmarks.Items() }

// AddBookmark places a bookmark. Duplicate (page, description) pairs
// conflict even under a fresh id.
func (ub *UserBook) AddBookmark(bm *Bookmark) *errors.Error {
	if bm.UserBookID != ub.ID {
		return errors.Conflict("Bookmark belongs to a different user book")
	}
	return ub.bookmarks.Add(bm)
}

// RemoveBookmark takes a bookmark out.
func (ub *UserBook) RemoveBookmark(bookmarkID string) *errors.Error {
	return ub.bookmarks.Remove(bookmarkID)
}

// UpdateBookmark replaces a bookmark in place. The owning copy is fixed.
func (ub *UserBook) UpdateBookmark(bm *Bookmark) *errors.Error {
	return ub.bookmarks.Update(bm)
}

// Bookmark returns the bookmark with the given id.
func (ub *UserBook) Bookmark(bookmarkID string) (*Bookmark, bool) {
	return ub.bookmarks.Get(bookmarkID)
}
