package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/errors"
	"github.com/bookswapapp/bookswap-server/internal/genre"
	"github.com/bookswapapp/bookswap-server/internal/id"
	"github.com/bookswapapp/bookswap-server/internal/store"
)

// BookService handles the shared catalog (general books with genres and
// reviews) and the physical copies users register (user books with
// bookmarks).
type BookService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		logger: logger,
	}
}

// CreateBookRequest contains the data for a new catalog entry. The book id
// comes from the external catalog service. Genres are free text and get
// normalized to the canonical taxonomy; unknown values are dropped.
type CreateBookRequest struct {
	BookID string   `json:"book_id" validate:"required,uuid"`
	Title  string   `json:"title" validate:"required,max=500"`
	Author string   `json:"author" validate:"required,max=200"`
	Genres []string `json:"genres" validate:"max=20"`
}

// CreateBook adds a title to the shared catalog.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.GeneralBook, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	book, derr := domain.NewGeneralBook(req.BookID, req.Title, req.Author)
	if derr != nil {
		return nil, derr
	}

	if genres := normalizeGenres(req.Genres); len(genres) > 0 {
		if derr := book.ReplaceGenres(genres); derr != nil {
			return nil, derr
		}
	}

	if err := s.store.CreateGeneralBook(ctx, book); err != nil {
		return nil, fmt.Errorf("store book: %w", err)
	}

	s.logger.Info("book catalogued",
		"book_id", book.ID,
		"title", book.Title,
		"genres", len(book.Genres()),
	)
	return book, nil
}

// GetBook retrieves a catalog entry.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.GeneralBook, error) {
	return s.store.GetGeneralBook(ctx, bookID)
}

// ListBooks returns the whole catalog.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.GeneralBook, error) {
	return s.store.ListGeneralBooks(ctx)
}

// ReplaceGenres swaps a book's genre set for the normalized form of the
// given free-text genres.
func (s *BookService) ReplaceGenres(ctx context.Context, bookID string, rawGenres []string) (*domain.GeneralBook, error) {
	book, err := s.store.GetGeneralBook(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if derr := book.ReplaceGenres(normalizeGenres(rawGenres)); derr != nil {
		return nil, derr
	}
	if err := s.store.SaveGeneralBook(ctx, book); err != nil {
		return nil, fmt.Errorf("save book: %w", err)
	}
	return book, nil
}

// normalizeGenres maps free-text genre names onto the canonical taxonomy,
// deduplicating while preserving first-seen order.
func normalizeGenres(raw []string) []domain.BookGenre {
	seen := make(map[domain.BookGenre]bool)
	var out []domain.BookGenre
	for _, r := range raw {
		for _, g := range genre.Normalize(r) {
			if !seen[g] {
				seen[g] = true
				out = append(out, g)
			}
		}
	}
	return out
}

// AddReviewRequest contains the data for reviewing a catalog entry.
type AddReviewRequest struct {
	BookID  string `json:"book_id" validate:"required,uuid"`
	UserID  string `json:"user_id" validate:"required,uuid"`
	Rating  int    `json:"rating" validate:"gte=1,lte=10"`
	Comment string `json:"comment" validate:"max=500"`
}

// AddReview records a review. One per user per book.
func (s *BookService) AddReview(ctx context.Context, req AddReviewRequest) (*domain.Review, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.store.GetGeneralBook(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	review, derr := domain.NewReview(id.MustGenerate(id.PrefixReview),
		req.UserID, req.BookID, req.Rating, req.Comment)
	if derr != nil {
		return nil, derr
	}
	if derr := book.AddReview(review); derr != nil {
		return nil, derr
	}

	if err := s.store.SaveGeneralBook(ctx, book); err != nil {
		return nil, fmt.Errorf("save book: %w", err)
	}
	return review, nil
}

// RemoveReview deletes a review from a catalog entry.
func (s *BookService) RemoveReview(ctx context.Context, bookID, reviewID string) error {
	book, err := s.store.GetGeneralBook(ctx, bookID)
	if err != nil {
		return err
	}
	if derr := book.RemoveReview(reviewID); derr != nil {
		return derr
	}
	if err := s.store.SaveGeneralBook(ctx, book); err != nil {
		return fmt.Errorf("save book: %w", err)
	}
	return nil
}

// UpdateReview replaces a review in place. Reviewer and book are fixed.
func (s *BookService) UpdateReview(ctx context.Context, review *domain.Review) error {
	book, err := s.store.GetGeneralBook(ctx, review.BookID)
	if err != nil {
		return err
	}
	if derr := book.UpdateReview(review); derr != nil {
		return derr
	}
	if err := s.store.SaveGeneralBook(ctx, book); err != nil {
		return fmt.Errorf("save book: %w", err)
	}
	return nil
}

// RegisterCopyRequest contains the data for registering a physical copy.
type RegisterCopyRequest struct {
	OwnerID       string `json:"owner_id" validate:"required,uuid"`
	GeneralBookID string `json:"general_book_id" validate:"required,uuid"`
	PageCount     int    `json:"page_count" validate:"gte=1"`
}

// RegisterCopy creates a user book for a physical copy and links it to the
// owner's collection.
func (s *BookService) RegisterCopy(ctx context.Context, req RegisterCopyRequest) (*domain.UserBook, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	owner, err := s.store.GetUser(ctx, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("owner: %w", err)
	}
	if _, err := s.store.GetGeneralBook(ctx, req.GeneralBookID); err != nil {
		return nil, fmt.Errorf("catalog entry: %w", err)
	}

	userBook, derr := domain.NewUserBook(id.MustGenerate(id.PrefixUserBook),
		req.OwnerID, req.GeneralBookID, req.PageCount)
	if derr != nil {
		return nil, derr
	}

	if err := s.store.CreateUserBook(ctx, userBook); err != nil {
		return nil, fmt.Errorf("store user book: %w", err)
	}

	if derr := owner.AddOwnedBook(userBook.ID); derr != nil {
		return nil, derr
	}
	if err := s.store.SaveUser(ctx, owner); err != nil {
		return nil, fmt.Errorf("save owner: %w", err)
	}

	s.logger.Info("copy registered",
		"user_book_id", userBook.ID,
		"owner_id", req.OwnerID,
		"general_book_id", req.GeneralBookID,
	)
	return userBook, nil
}

// GetCopy retrieves a physical copy with its bookmarks.
func (s *BookService) GetCopy(ctx context.Context, userBookID string) (*domain.UserBook, error) {
	return s.store.GetUserBook(ctx, userBookID)
}

// ListCopiesForOwner returns every copy registered under ownerID.
func (s *BookService) ListCopiesForOwner(ctx context.Context, ownerID string) ([]*domain.UserBook, error) {
	return s.store.ListUserBooksForOwner(ctx, ownerID)
}

// MarkCopyAvailable flags a copy as back with its owner.
func (s *BookService) MarkCopyAvailable(ctx context.Context, userBookID string) (*domain.UserBook, error) {
	userBook, err := s.store.GetUserBook(ctx, userBookID)
	if err != nil {
		return nil, err
	}
	userBook.MarkAvailable()
	if err := s.store.SaveUserBook(ctx, userBook); err != nil {
		return nil, fmt.Errorf("save user book: %w", err)
	}
	return userBook, nil
}

// AddBookmarkRequest contains the data for placing a bookmark.
type AddBookmarkRequest struct {
	UserBookID  string                `json:"user_book_id" validate:"required"`
	Colour      domain.BookmarkColour `json:"colour" validate:"required"`
	Page        int                   `json:"page" validate:"gte=0"`
	Description string                `json:"description" validate:"max=200"`
}

// AddBookmark places a bookmark in a physical copy.
func (s *BookService) AddBookmark(ctx context.Context, req AddBookmarkRequest) (*domain.Bookmark, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	userBook, err := s.store.GetUserBook(ctx, req.UserBookID)
	if err != nil {
		return nil, err
	}
	if req.Page > userBook.PageCount {
		return nil, errors.Validation("Page is past the end of the book")
	}

	bookmark, derr := domain.NewBookmark(id.MustGenerate(id.PrefixBookmark),
		req.UserBookID, req.Colour, req.Page, req.Description)
	if derr != nil {
		return nil, derr
	}
	if derr := userBook.AddBookmark(bookmark); derr != nil {
		return nil, derr
	}

	if err := s.store.SaveUserBook(ctx, userBook); err != nil {
		return nil, fmt.Errorf("save user book: %w", err)
	}
	return bookmark, nil
}

// RemoveBookmark takes a bookmark out of a copy.
func (s *BookService) RemoveBookmark(ctx context.Context, userBookID, bookmarkID string) error {
	userBook, err := s.store.GetUserBook(ctx, userBookID)
	if err != nil {
		return err
	}
	if derr := userBook.RemoveBookmark(bookmarkID); derr != nil {
		return derr
	}
	if err := s.store.SaveUserBook(ctx, userBook); err != nil {
		return fmt.Errorf("save user book: %w", err)
	}
	return nil
}

// UpdateBookmark replaces a bookmark in place. The owning copy is fixed.
func (s *BookService) UpdateBookmark(ctx context.Context, bookmark *domain.Bookmark) error {
	userBook, err := s.store.GetUserBook(ctx, bookmark.UserBookID)
	if err != nil {
		return err
	}
	if derr := userBook.UpdateBookmark(bookmark); derr != nil {
		return derr
	}
	if err := s.store.SaveUserBook(ctx, userBook); err != nil {
		return fmt.Errorf("save user book: %w", err)
	}
	return nil
}
