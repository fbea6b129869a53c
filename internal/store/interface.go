// Package store defines the persistence contract for the swap domain.
// Aggregates are loaded and saved whole: a Get returns the aggregate with
// all of its children, and a Save replaces the stored children with the
// aggregate's current ones.
package store

import (
	"context"

	"github.com/bookswapapp/bookswap-server/internal/domain"
)

// Store is the persistence interface for all aggregates.
type Store interface {
	SwapStore
	UserStore
	BookStore
	UserBookStore

	Close() error
}

// SwapStore persists swap aggregates.
type SwapStore interface {
	// CreateSwap inserts a new swap with all of its children.
	// Returns ErrAlreadyExists if the swap ID is taken.
	CreateSwap(ctx context.Context, swap *domain.Swap) error

	// GetSwap loads a swap with both sub-swaps, meetups, and timeline.
	// Returns ErrNotFound if the swap does not exist.
	GetSwap(ctx context.Context, id string) (*domain.Swap, error)

	// SaveSwap replaces the stored swap and its children wholesale.
	// Returns ErrNotFound if the swap does not exist.
	SaveSwap(ctx context.Context, swap *domain.Swap) error

	// DeleteSwap removes a swap and all of its children.
	// Returns ErrNotFound if the swap does not exist.
	DeleteSwap(ctx context.Context, id string) error

	// ListSwapsForUser returns every swap the user participates in, as
	// either party, ordered by creation time.
	ListSwapsForUser(ctx context.Context, userID string) ([]*domain.Swap, error)
}

// UserStore persists user aggregates.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	SaveUser(ctx context.Context, user *domain.User) error
	DeleteUser(ctx context.Context, id string) error
}

// BookStore persists general-book aggregates.
type BookStore interface {
	CreateGeneralBook(ctx context.Context, book *domain.GeneralBook) error
	GetGeneralBook(ctx context.Context, id string) (*domain.GeneralBook, error)
	SaveGeneralBook(ctx context.Context, book *domain.GeneralBook) error
	DeleteGeneralBook(ctx context.Context, id string) error
	ListGeneralBooks(ctx context.Context) ([]*domain.GeneralBook, error)
}

// UserBookStore persists physical-copy aggregates.
type UserBookStore interface {
	CreateUserBook(ctx context.Context, book *domain.UserBook) error
	GetUserBook(ctx context.Context, id string) (*domain.UserBook, error)
	SaveUserBook(ctx context.Context, book *domain.UserBook) error
	DeleteUserBook(ctx context.Context, id string) error
	ListUserBooksForOwner(ctx context.Context, ownerID string) ([]*domain.UserBook, error)
}
