package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/store"
)

// CreateUser inserts a new user with all of its relationship lists.
// Returns store.ErrAlreadyExists if the user ID is taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO users (id, created_at) VALUES (?, ?)`,
			user.ID, formatTime(user.CreatedAt))
		if err != nil {
			return mapConstraintErr(err)
		}
		return insertUserChildren(ctx, tx, user)
	})
}

// GetUser loads a user with wishlist, follow lists, social links, and
// owned books. Returns store.ErrNotFound if the user does not exist.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var createdAt string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM users WHERE id = ?`, id).Scan(&createdAt)
	if err == sql.ErrNoRows {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	created, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	wishlist, err := s.loadStringList(ctx,
		`SELECT book_id FROM user_wishlist WHERE user_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	followed, err := s.loadStringList(ctx,
		`SELECT followed_id FROM user_followed WHERE user_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	blocked, err := s.loadStringList(ctx,
		`SELECT blocked_id FROM user_blocked WHERE user_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}
	ownedBooks, err := s.loadStringList(ctx,
		`SELECT user_book_id FROM user_owned_books WHERE user_id = ? ORDER BY position ASC`, id)
	if err != nil {
		return nil, err
	}

	socialLinks, err := s.loadSocialLinks(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteUser(id, wishlist, followed, blocked, socialLinks, ownedBooks, created), nil
}

// SaveUser replaces the stored user and its lists wholesale.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) SaveUser(ctx context.Context, user *domain.User) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE users SET created_at = ? WHERE id = ?`,
			formatTime(user.CreatedAt), user.ID)
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

		for _, table := range []string{
			"user_wishlist", "user_followed", "user_blocked",
			"user_social_links", "user_owned_books",
		} {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM `+table+` WHERE user_id = ?`, user.ID); err != nil {
				return err
			}
		}
		return insertUserChildren(ctx, tx, user)
	})
}

// DeleteUser removes a user; the relationship lists cascade.
// Returns store.ErrNotFound if the user does not exist.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
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

func insertUserChildren(ctx context.Context, tx *sql.Tx, user *domain.User) error {
	lists := []struct {
		query string
		items []string
	}{
		{`INSERT INTO user_wishlist (user_id, book_id, position) VALUES (?, ?, ?)`, user.Wishlist()},
		{`INSERT INTO user_followed (user_id, followed_id, position) VALUES (?, ?, ?)`, user.Followed()},
		{`INSERT INTO user_blocked (user_id, blocked_id, position) VALUES (?, ?, ?)`, user.Blocked()},
		{`INSERT INTO user_owned_books (user_id, user_book_id, position) VALUES (?, ?, ?)`, user.OwnedBooks()},
	}
	for _, list := range lists {
		for i, item := range list.items {
			if _, err := tx.ExecContext(ctx, list.query, user.ID, item, i); err != nil {
				return mapConstraintErr(err)
			}
		}
	}

	for i, link := range user.SocialLinks() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO user_social_links (id, user_id, platform, url, position)
			VALUES (?, ?, ?, ?, ?)`,
			link.ID, user.ID, string(link.Platform), link.URL, i)
		if err != nil {
			return mapConstraintErr(err)
		}
	}
	return nil
}

func (s *Store) loadStringList(ctx context.Context, query, id string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []string
	for rows.Next() {
		var item string
		if err := rows.Scan(&item); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (s *Store) loadSocialLinks(ctx context.Context, userID string) ([]*domain.SocialMediaLink, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, platform, url
		FROM user_social_links WHERE user_id = ? ORDER BY position ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var links []*domain.SocialMediaLink
	for rows.Next() {
		link := &domain.SocialMediaLink{UserID: userID}
		var platform string
		if err := rows.Scan(&link.ID, &platform, &link.URL); err != nil {
			return nil, err
		}
		link.Platform = domain.SocialMediaPlatform(platform)
		links = append(links, link)
	}
	return links, rows.Err()
}
