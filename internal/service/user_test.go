package service

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/errors"
	"github.com/bookswapapp/bookswap-server/internal/store"
)

func TestUserService_Register(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	user, err := env.users.Register(ctx, testRequesterID)
	require.NoError(t, err)
	assert.Equal(t, testRequesterID, user.ID)

	stored, err := env.users.GetUser(ctx, testRequesterID)
	require.NoError(t, err)
	assert.Equal(t, testRequesterID, stored.ID)
}

func TestUserService_Register_RejectsNonUUID(t *testing.T) {
	env := setupTest(t)

	_, err := env.users.Register(context.Background(), "user-1")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrInvalid))
}

func TestUserService_Register_Duplicate(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, testRequesterID)
	require.NoError(t, err)

	_, err = env.users.Register(ctx, testRequesterID)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, store.ErrAlreadyExists))
}

func TestUserService_Wishlist(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	seedSwapParties(t, env)

	user, err := env.users.AddToWishlist(ctx, testAccepterID, testBookID)
	require.NoError(t, err)
	assert.Equal(t, []string{testBookID}, user.Wishlist())

	// Unknown catalog entries are rejected.
	_, err = env.users.AddToWishlist(ctx, testAccepterID, "11111111-2222-4333-8444-555555555555")
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, store.ErrNotFound))

	user, err = env.users.RemoveFromWishlist(ctx, testAccepterID, testBookID)
	require.NoError(t, err)
	assert.Empty(t, user.Wishlist())
}

func TestUserService_FollowAndBlock(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, testRequesterID)
	require.NoError(t, err)
	_, err = env.users.Register(ctx, testAccepterID)
	require.NoError(t, err)

	user, err := env.users.Follow(ctx, testRequesterID, testAccepterID)
	require.NoError(t, err)
	assert.Equal(t, []string{testAccepterID}, user.Followed())

	// Following yourself is a conflict.
	_, err = env.users.Follow(ctx, testRequesterID, testRequesterID)
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrConflict))

	user, err = env.users.Block(ctx, testRequesterID, testAccepterID)
	require.NoError(t, err)
	assert.Equal(t, []string{testAccepterID}, user.Blocked())

	user, err = env.users.Unfollow(ctx, testRequesterID, testAccepterID)
	require.NoError(t, err)
	assert.Empty(t, user.Followed())

	user, err = env.users.Unblock(ctx, testRequesterID, testAccepterID)
	require.NoError(t, err)
	assert.Empty(t, user.Blocked())
}

func TestUserService_SocialLinks(t *testing.T) {
	env := setupTest(t)
	ctx := context.Background()

	_, err := env.users.Register(ctx, testRequesterID)
	require.NoError(t, err)

	link, err := env.users.AddSocialLink(ctx, AddSocialLinkRequest{
		UserID:   testRequesterID,
		Platform: domain.PlatformInstagram,
		URL:      "https://instagram.com/reader",
	})
	require.NoError(t, err)

	// Second link on the same platform conflicts.
	_, err = env.users.AddSocialLink(ctx, AddSocialLinkRequest{
		UserID:   testRequesterID,
		Platform: domain.PlatformInstagram,
		URL:      "https://instagram.com/other",
	})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrConflict))

	// Updating keeps the id, moves the URL.
	link.URL = "https://instagram.com/renamed"
	user, err := env.users.UpdateSocialLink(ctx, link)
	require.NoError(t, err)
	links := user.SocialLinks()
	require.Len(t, links, 1)
	assert.Equal(t, "https://instagram.com/renamed", links[0].URL)

	user, err = env.users.RemoveSocialLink(ctx, testRequesterID, link.ID)
	require.NoError(t, err)
	assert.Empty(t, user.SocialLinks())
}
