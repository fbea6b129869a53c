package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/store"
)

// CreateUserBook inserts a new physical copy with its bookmarks.
// Returns store.ErrAlreadyExists if the copy ID is taken.
func (s *Store) CreateUserBook(ctx context.Context, book *domain.UserBook) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO user_books (id, owner_id, general_book_id, status, page_count)
			VALUES (?, ?, ?, ?, ?)`,
			book.ID, book.OwnerID, book.GeneralBookID, string(book.Status), book.PageCount)
		if err != nil {
			return mapConstraintErr(err)
		}
		return insertBookmarks(ctx, tx, book)
	})
}

// GetUserBook loads a physical copy with its bookmarks.
// Returns store.ErrNotFound if the copy does not exist.
func (s *Store) GetUserBook(ctx context.Context, id string) (*domain.UserBook, error) {
	var (
		ownerID       string
		generalBookID string
		status        string
		pageCount     int
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT owner_id, general_book_id, status, page_count
		FROM user_books WHERE id = ?`, id).
		Scan(&ownerID, &generalBookID, &status, &pageCount)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	bookmarks, err := s.loadBookmarks(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteUserBook(id, ownerID, generalBookID,
		domain.UserBookStatus(status), pageCount, bookmarks), nil
}

// SaveUserBook replaces the stored copy and its bookmarks wholesale.
// Returns store.ErrNotFound if the copy does not exist.
func (s *Store) SaveUserBook(ctx context.Context, book *domain.UserBook) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			UPDATE user_books SET owner_id = ?, general_book_id = ?, status = ?, page_count = ?
			WHERE id = ?`,
			book.OwnerID, book.GeneralBookID, string(book.Status), book.PageCount, book.ID)
		if err != nil {
			return err
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return store.ErrNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM bookmarks WHERE user_book_id = ?`, book.ID); err != nil {
			return err
		}
		return insertBookmarks(ctx, tx, book)
	})
}

// DeleteUserBook removes a physical copy; bookmarks cascade.
// Returns store.ErrNotFound if the copy does not exist.
func (s *Store) DeleteUserBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM user_books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ListUserBooksForOwner returns every copy registered under ownerID.
func (s *Store) ListUserBooksForOwner(ctx context.Context, ownerID string) ([]*domain.UserBook, error) {
	ids, err := s.loadStringList(ctx,
		`SELECT id FROM user_books WHERE owner_id = ? ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, err
	}

	books := make([]*domain.UserBook, 0, len(ids))
	for _, id := range ids {
		book, err := s.GetUserBook(ctx, id)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

func (s *Store) loadBookmarks(ctx context.Context, userBookID string) ([]*domain.Bookmark, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, colour, page, description
		FROM bookmarks WHERE user_book_id = ? ORDER BY position ASC`, userBookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookmarks []*domain.Bookmark
	for rows.Next() {
		bm := &domain.Bookmark{UserBookID: userBookID}
		var colour string
		if err := rows.Scan(&bm.ID, &colour, &bm.Page, &bm.Description); err != nil {
			return nil, err
		}
		bm.Colour = domain.BookmarkColour(colour)
		bookmarks = append(bookmarks, bm)
	}
	return bookmarks, rows.Err()
}

func insertBookmarks(ctx context.Context, tx *sql.Tx, book *domain.UserBook) error {
	for i, bm := range book.Bookmarks() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO bookmarks (id, user_book_id, colour, page, description, position)
			VALUES (?, ?, ?, ?, ?, ?)`,
			bm.ID, book.ID, string(bm.Colour), bm.Page, bm.Description, i)
		if err != nil {
			return mapConstraintErr(err)
		}
	}
	return nil
}
