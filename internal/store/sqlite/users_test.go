package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/store"
)

func makeTestUser(t *testing.T, id string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(id)
	if err != nil {
		t.Fatalf("NewUser: %v", err)
	}
	return user
}

func TestCreateAndGetUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := makeTestUser(t, "user-1")
	if err := user.AddToWishlist("book-1"); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	if err := user.AddToWishlist("book-2"); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	if err := user.Follow("user-2"); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if err := user.Block("user-3"); err != nil {
		t.Fatalf("Block: %v", err)
	}
	if err := user.AddOwnedBook("ubk-1"); err != nil {
		t.Fatalf("AddOwnedBook: %v", err)
	}

	link, derr := domain.NewSocialMediaLink("sml-1", "user-1",
		domain.PlatformInstagram, "https://instagram.com/reader")
	if derr != nil {
		t.Fatalf("NewSocialMediaLink: %v", derr)
	}
	if err := user.AddSocialLink(link); err != nil {
		t.Fatalf("AddSocialLink: %v", err)
	}

	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}

	if got.ID != "user-1" {
		t.Errorf("ID: got %q, want %q", got.ID, "user-1")
	}
	wishlist := got.Wishlist()
	if len(wishlist) != 2 || wishlist[0] != "book-1" || wishlist[1] != "book-2" {
		t.Errorf("Wishlist: got %v", wishlist)
	}
	if followed := got.Followed(); len(followed) != 1 || followed[0] != "user-2" {
		t.Errorf("Followed: got %v", followed)
	}
	if blocked := got.Blocked(); len(blocked) != 1 || blocked[0] != "user-3" {
		t.Errorf("Blocked: got %v", blocked)
	}
	if owned := got.OwnedBooks(); len(owned) != 1 || owned[0] != "ubk-1" {
		t.Errorf("OwnedBooks: got %v", owned)
	}

	links := got.SocialLinks()
	if len(links) != 1 {
		t.Fatalf("SocialLinks: got %d, want 1", len(links))
	}
	if links[0].Platform != domain.PlatformInstagram {
		t.Errorf("Platform: got %q", links[0].Platform)
	}
	if links[0].URL != "https://instagram.com/reader" {
		t.Errorf("URL: got %q", links[0].URL)
	}

	if got.CreatedAt.Unix() != user.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, user.CreatedAt)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUser(context.Background(), "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUser_Duplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser(t, "user-1")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	err := s.CreateUser(ctx, makeTestUser(t, "user-1"))
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestSaveUser_ReplacesLists(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := makeTestUser(t, "user-1")
	if err := user.AddToWishlist("book-1"); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := user.RemoveFromWishlist("book-1"); err != nil {
		t.Fatalf("RemoveFromWishlist: %v", err)
	}
	if err := user.AddToWishlist("book-9"); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	if err := s.SaveUser(ctx, user); err != nil {
		t.Fatalf("SaveUser: %v", err)
	}

	got, err := s.GetUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if wishlist := got.Wishlist(); len(wishlist) != 1 || wishlist[0] != "book-9" {
		t.Errorf("Wishlist: got %v, want [book-9]", wishlist)
	}
}

func TestDeleteUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := makeTestUser(t, "user-1")
	if err := user.Follow("user-2"); err != nil {
		t.Fatalf("Follow: %v", err)
	}
	if err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	if err := s.DeleteUser(ctx, "user-1"); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}

	if _, err := s.GetUser(ctx, "user-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM user_followed WHERE user_id = 'user-1'`).Scan(&n); err != nil {
		t.Fatalf("count user_followed: %v", err)
	}
	if n != 0 {
		t.Errorf("user_followed remaining: %d", n)
	}
}
