package domain

import (
	"time"

	"github.com/bookswapapp/bookswap-server/internal/errors"
)

// User is the aggregate for one account's relationship lists: books they
// want, people they follow or block, profile links, and the physical
// copies they own. Identity (email, password, display name) lives in the
// external identity service; only the id crosses into this core.
type User struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	wishlist    Collection[string]
	followed    Collection[string]
	blocked     Collection[string]
	socialMedia Collection[*SocialMediaLink]
	ownedBooks  Collection[string]
}

func newUserCollections(u *User) {
	u.wishlist = NewCollection("wishlist entry", selfKey)
	u.followed = NewCollection("followed user", selfKey)
	u.blocked = NewCollection("blocked user", selfKey)
	u.socialMedia = newSocialLinks()
	u.ownedBooks = NewCollection("owned book", selfKey)
}

// NewUser creates an empty user aggregate for an externally-minted id.
func NewUser(userID string) (*User, *errors.Error) {
	if userID == "" {
		return nil, errors.NotFound("User not found")
	}
	u := &User{ID: userID, CreatedAt: time.Now()}
	newUserCollections(u)
	return u, nil
}

// ReconstituteUser rehydrates a user wholesale from storage.
func ReconstituteUser(userID string, wishlist, followed, blocked []string,
	socialLinks []*SocialMediaLink, ownedBooks []string, createdAt time.Time) *User {
	u := &User{ID: userID, CreatedAt: createdAt}
	newUserCollections(u)
	u.wishlist.Load(wishlist)
	u.followed.Load(followed)
	u.blocked.Load(blocked)
	u.socialMedia.Load(socialLinks)
	u.ownedBooks.Load(ownedBooks)
	return u
}

// Wishlist returns the general-book ids the user wants to read.
func (u *User) Wishlist() []string { return u.wishlist.Items() }

// AddToWishlist records interest in a general book.
func (u *User) AddToWishlist(bookID string) *errors.Error {
	if bookID == "" {
		return errors.NotFound("Book not found")
	}
	return u.wishlist.Add(bookID)
}

// RemoveFromWishlist drops a general book from the wishlist.
func (u *User) RemoveFromWishlist(bookID string) *errors.Error {
	return u.wishlist.Remove(bookID)
}

// Followed returns the ids of users this user follows.
func (u *User) Followed() []string { return u.followed.Items() }

// Follow adds another user to the followed list. Following yourself is a
// conflict.
func (u *User) Follow(otherUserID string) *errors.Error {
	if otherUserID == "" {
		return errors.NotFound("User not found")
	}
	if otherUserID == u.ID {
		return errors.Conflict("Cannot follow yourself")
	}
	return u.followed.Add(otherUserID)
}

// Unfollow removes a user from the followed list.
func (u *User) Unfollow(otherUserID string) *errors.Error {
	return u.followed.Remove(otherUserID)
}

// Blocked returns the ids of users this user blocked.
func (u *User) Blocked() []string { return u.blocked.Items() }

// Block adds another user to the blocked list. Blocking yourself is a
// conflict.
func (u *User) Block(otherUserID string) *errors.Error {
	if otherUserID == "" {
		return errors.NotFound("User not found")
	}
	if otherUserID == u.ID {
		return errors.Conflict("Cannot block yourself")
	}
	return u.blocked.Add(otherUserID)
}

// Unblock removes a user from the blocked list.
func (u *User) Unblock(otherUserID string) *errors.Error {
	return u.blocked.Remove(otherUserID)
}

// SocialLinks returns the published profile links in insertion order.
func (u *User) SocialLinks() []*SocialMediaLink { return u.socialMedia.Items() }

// AddSocialLink publishes a profile link: at most ten, one per platform.
func (u *User) AddSocialLink(link *SocialMediaLink) *errors.Error {
	if link.UserID != u.ID {
		return errors.Conflict("Social media link belongs to a different user")
	}
	return u.socialMedia.Add(link)
}

// RemoveSocialLink withdraws a profile link.
func (u *User) RemoveSocialLink(linkID string) *errors.Error {
	return u.socialMedia.Remove(linkID)
}

// UpdateSocialLink replaces a profile link in place. The owner is fixed;
// platform uniqueness is re-checked against the remaining links.
func (u *User) UpdateSocialLink(link *SocialMediaLink) *errors.Error {
	return u.socialMedia.Update(link)
}

// OwnedBooks returns the user-book ids of the physical copies this user owns.
func (u *User) OwnedBooks() []string { return u.ownedBooks.Items() }

// AddOwnedBook registers a physical copy under this user.
func (u *User) AddOwnedBook(userBookID string) *errors.Error {
	if userBookID == "" {
		return errors.NotFound("User book not found")
	}
	return u.ownedBooks.Add(userBookID)
}

// RemoveOwnedBook deregisters a physical copy.
func (u *User) RemoveOwnedBook(userBookID string) *errors.Error {
	return u.ownedBooks.Remove(userBookID)
}
