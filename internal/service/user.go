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

// UserService handles a user's relationship lists: wishlist, follows,
// blocks, social links, and owned copies. Identity itself lives in the
// external identity service; only ids cross into this server.
type UserService struct {
	store  store.Store
	logger *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(store store.Store, logger *slog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

// Register creates an empty user aggregate for an externally-minted id.
func (s *UserService) Register(ctx context.Context, userID string) (*domain.User, error) {
	if !id.IsExternalID(userID) {
		return nil, errors.Invalidf("User id must be a UUID: %q", userID)
	}

	user, derr := domain.NewUser(userID)
	if derr != nil {
		return nil, derr
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("store user: %w", err)
	}

	s.logger.Info("user registered", "user_id", userID)
	return user, nil
}

// GetUser retrieves a user with all relationship lists.
func (s *UserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.store.GetUser(ctx, userID)
}

// mutate loads the user, applies fn, and saves.
func (s *UserService) mutate(ctx context.Context, userID string, fn func(*domain.User) *errors.Error) (*domain.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if derr := fn(user); derr != nil {
		return nil, derr
	}
	if err := s.store.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("save user: %w", err)
	}
	return user, nil
}

// AddToWishlist records interest in a general book.
func (s *UserService) AddToWishlist(ctx context.Context, userID, bookID string) (*domain.User, error) {
	if _, err := s.store.GetGeneralBook(ctx, bookID); err != nil {
		return nil, fmt.Errorf("book: %w", err)
	}
	return s.mutate(ctx, userID, func(u *domain.User) *errors.Error {
		return u.AddToWishlist(bookID)
	})
}

// RemoveFromWishlist drops a general book from the wishlist.
func (s *UserService) RemoveFromWishlist(ctx context.Context, userID, bookID string) (*domain.User, error) {
	return s.mutate(ctx, userID, func(u *domain.User) *errors.Error {
		return u.RemoveFromWishlist(bookID)
	})
}

// Follow adds another user to the followed list.
func (s *UserService) Follow(ctx context.Context, userID, otherUserID string) (*domain.User, error) {
	if _, err := s.store.GetUser(ctx, otherUserID); err != nil {
		return nil, fmt.Errorf("followed user: %w", err)
	}
	return s.mutate(ctx, userID, func(u *domain.User) *errors.Error {
		return u.Follow(otherUserID)
	})
}

// Unfollow removes a user from the followed list.
func (s *UserService) Unfollow(ctx context.Context, userID, otherUserID string) (*domain.User, error) {
	return s.mutate(ctx, userID, func(u *domain.User) *errors.Error {
		return u.Unfollow(otherUserID)
	})
}

// Block adds another user to the blocked list.
func (s *UserService) Block(ctx context.Context, userID, otherUserID string) (*domain.User, error) {
	if _, err := s.store.GetUser(ctx, otherUserID); err != nil {
		return nil, fmt.Errorf("blocked user: %w", err)
	}
	return s.mutate(ctx, userID, func(u *domain.User) *errors.Error {
		return u.Block(otherUserID)
	})
}

// Unblock removes a user from the blocked list.
func (s *UserService) Unblock(ctx context.Context, userID, otherUserID string) (*domain.User, error) {
	return s.mutate(ctx, userID, func(u *domain.User) *errors.Error {
		return u.Unblock(otherUserID)
	})
}

// AddSocialLinkRequest contains the data for publishing a profile link.
type AddSocialLinkRequest struct {
	UserID   string                     `json:"user_id" validate:"required,uuid"`
	Platform domain.SocialMediaPlatform `json:"platform" validate:"required"`
	URL      string                     `json:"url" validate:"required,url"`
}

// AddSocialLink publishes a profile link: at most ten, one per platform.
func (s *UserService) AddSocialLink(ctx context.Context, req AddSocialLinkRequest) (*domain.SocialMediaLink, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	link, derr := domain.NewSocialMediaLink(id.MustGenerate(id.PrefixSocialLink),
		req.UserID, req.Platform, req.URL)
	if derr != nil {
		return nil, derr
	}

	if _, err := s.mutate(ctx, req.UserID, func(u *domain.User) *errors.Error {
		return u.AddSocialLink(link)
	}); err != nil {
		return nil, err
	}
	return link, nil
}

// RemoveSocialLink withdraws a profile link.
func (s *UserService) RemoveSocialLink(ctx context.Context, userID, linkID string) (*domain.User, error) {
	return s.mutate(ctx, userID, func(u *domain.User) *errors.Error {
		return u.RemoveSocialLink(linkID)
	})
}

// UpdateSocialLink replaces a profile link in place.
func (s *UserService) UpdateSocialLink(ctx context.Context, link *domain.SocialMediaLink) (*domain.User, error) {
	return s.mutate(ctx, link.UserID, func(u *domain.User) *errors.Error {
		return u.UpdateSocialLink(link)
	})
}
