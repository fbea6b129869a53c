package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/store"
)

func makeTestUserBook(t *testing.T, id, ownerID string) *domain.UserBook {
	t.Helper()
	book, err := domain.NewUserBook(id, ownerID, "book-1", 320)
	if err != nil {
		t.Fatalf("NewUserBook: %v", err)
	}
	return book
}

func TestCreateAndGetUserBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := makeTestUserBook(t, "ubk-1", "user-1")
	bm, derr := domain.NewBookmark("bmk-1", "ubk-1", domain.BookmarkColourBlue, 42, "great twist")
	if derr != nil {
		t.Fatalf("NewBookmark: %v", derr)
	}
	if err := book.AddBookmark(bm); err != nil {
		t.Fatalf("AddBookmark: %v", err)
	}

	if err := s.CreateUserBook(ctx, book); err != nil {
		t.Fatalf("CreateUserBook: %v", err)
	}

	got, err := s.GetUserBook(ctx, "ubk-1")
	if err != nil {
		t.Fatalf("GetUserBook: %v", err)
	}

	if got.OwnerID != "user-1" {
		t.Errorf("OwnerID: got %q", got.OwnerID)
	}
	if got.GeneralBookID != "book-1" {
		t.Errorf("GeneralBookID: got %q", got.GeneralBookID)
	}
	if got.Status != domain.UserBookStatusAvailable {
		t.Errorf("Status: got %q, want %q", got.Status, domain.UserBookStatusAvailable)
	}
	if got.PageCount != 320 {
		t.Errorf("PageCount: got %d, want 320", got.PageCount)
	}

	bookmarks := got.Bookmarks()
	if len(bookmarks) != 1 {
		t.Fatalf("Bookmarks: got %d, want 1", len(bookmarks))
	}
	if bookmarks[0].Colour != domain.BookmarkColourBlue {
		t.Errorf("Colour: got %q", bookmarks[0].Colour)
	}
	if bookmarks[0].Page != 42 {
		t.Errorf("Page: got %d, want 42", bookmarks[0].Page)
	}
	if bookmarks[0].Description != "great twist" {
		t.Errorf("Description: got %q", bookmarks[0].Description)
	}
}

func TestGetUserBook_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserBook(context.Background(), "nonexistent")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSaveUserBook_StatusRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	book := makeTestUserBook(t, "ubk-1", "user-1")
	if err := s.CreateUserBook(ctx, book); err != nil {
		t.Fatalf("CreateUserBook: %v", err)
	}

	book.MarkSwapped()
	if err := s.SaveUserBook(ctx, book); err != nil {
		t.Fatalf("SaveUserBook: %v", err)
	}

	got, err := s.GetUserBook(ctx, "ubk-1")
	if err != nil {
		t.Fatalf("GetUserBook: %v", err)
	}
	if got.Status != domain.UserBookStatusSwapped {
		t.Errorf("Status: got %q, want %q", got.Status, domain.UserBookStatusSwapped)
	}
}

func TestListUserBooksForOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"ubk-1", "ubk-2"} {
		if err := s.CreateUserBook(ctx, makeTestUserBook(t, id, "user-1")); err != nil {
			t.Fatalf("CreateUserBook(%s): %v", id, err)
		}
	}
	if err := s.CreateUserBook(ctx, makeTestUserBook(t, "ubk-3", "user-2")); err != nil {
		t.Fatalf("CreateUserBook: %v", err)
	}

	books, err := s.ListUserBooksForOwner(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListUserBooksForOwner: %v", err)
	}
	if len(books) != 2 {
		t.Errorf("got %d books, want 2", len(books))
	}
}

func TestDeleteUserBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUserBook(ctx, makeTestUserBook(t, "ubk-1", "user-1")); err != nil {
		t.Fatalf("CreateUserBook: %v", err)
	}

	if err := s.DeleteUserBook(ctx, "ubk-1"); err != nil {
		t.Fatalf("DeleteUserBook: %v", err)
	}
	if err := s.DeleteUserBook(ctx, "ubk-1"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
