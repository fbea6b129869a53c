package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/store"
)

// CreateGeneralBook inserts a new catalog entry with genres and reviews.
// Returns store.ErrAlreadyExists if the book ID is taken.
func (s *Store) CreateGeneralBook(ctx context.Context, book *domain.GeneralBook) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO general_books (id, title, author) VALUES (?, ?, ?)`,
			book.ID, book.Title, book.Author)
		if err != nil {
			return mapConstraintErr(err)
		}
		return insertBookChildren(ctx, tx, book)
	})
}

// GetGeneralBook loads a catalog entry with genres and reviews.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) GetGeneralBook(ctx context.Context, id string) (*domain.GeneralBook, error) {
	var title, author string
	err := s.db.QueryRowContext(ctx,
		`SELECT title, author FROM general_books WHERE id = ?`, id).
		Scan(&title, &author)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.assembleBook(ctx, id, title, author)
}

// SaveGeneralBook replaces the stored catalog entry wholesale.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) SaveGeneralBook(ctx context.Context, book *domain.GeneralBook) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE general_books SET title = ?, author = ? WHERE id = ?`,
			book.Title, book.Author, book.ID)
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

		for _, table := range []string{"book_genres", "book_reviews"} {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM `+table+` WHERE book_id = ?`, book.ID); err != nil {
				return err
			}
		}
		return insertBookChildren(ctx, tx, book)
	})
}

// DeleteGeneralBook removes a catalog entry; genres and reviews cascade.
// Returns store.ErrNotFound if the book does not exist.
func (s *Store) DeleteGeneralBook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM general_books WHERE id = ?`, id)
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

// ListGeneralBooks returns the whole catalog ordered by title.
func (s *Store) ListGeneralBooks(ctx context.Context) ([]*domain.GeneralBook, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, author FROM general_books ORDER BY title ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	type bookRow struct{ id, title, author string }
	var bookRows []bookRow
	for rows.Next() {
		var r bookRow
		if err := rows.Scan(&r.id, &r.title, &r.author); err != nil {
			return nil, err
		}
		bookRows = append(bookRows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	books := make([]*domain.GeneralBook, 0, len(bookRows))
	for _, r := range bookRows {
		book, err := s.assembleBook(ctx, r.id, r.title, r.author)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

func (s *Store) assembleBook(ctx context.Context, id, title, author string) (*domain.GeneralBook, error) {
	genreSlugs, err := s.loadStringList(ctx,
		`SELECT genre FROM book_genres WHERE book_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	genres := make([]domain.BookGenre, len(genreSlugs))
	for i, g := range genreSlugs {
		genres[i] = domain.BookGenre(g)
	}

	reviews, err := s.loadReviews(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteGeneralBook(id, title, author, genres, reviews), nil
}

func insertBookChildren(ctx context.Context, tx *sql.Tx, book *domain.GeneralBook) error {
	for i, g := range book.Genres() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO book_genres (book_id, genre, position) VALUES (?, ?, ?)`,
			book.ID, string(g), i)
		if err != nil {
			return mapConstraintErr(err)
		}
	}

	for i, r := range book.Reviews() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO book_reviews (id, book_id, user_id, rating, comment, created_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, book.ID, r.UserID, r.Rating, r.Comment, formatTime(r.CreatedAt), i)
		if err != nil {
			return mapConstraintErr(err)
		}
	}
	return nil
}

func (s *Store) loadReviews(ctx context.Context, bookID string) ([]*domain.Review, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, rating, comment, created_at
		FROM book_reviews WHERE book_id = ? ORDER BY position ASC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		r := &domain.Review{BookID: bookID}
		var createdAt string
		if err := rows.Scan(&r.ID, &r.UserID, &r.Rating, &r.Comment, &createdAt); err != nil {
			return nil, err
		}
		r.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
