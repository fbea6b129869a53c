package sqlite

import (
	"context"
	"database/sql"

	"github.com/bookswapapp/bookswap-server/internal/domain"
	"github.com/bookswapapp/bookswap-server/internal/store"
)

// Sub-swap roles as stored in the sub_swaps.role column.
const (
	roleRequesting = "requesting"
	roleAccepting  = "accepting"
)

// CreateSwap inserts a new swap with both sub-swaps, meetups, and timeline.
// Returns store.ErrAlreadyExists if the swap ID is taken.
func (s *Store) CreateSwap(ctx context.Context, swap *domain.Swap) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO swaps (id, status, created_at) VALUES (?, ?, ?)`,
			swap.ID, string(swap.Status()), formatTime(swap.CreatedAt))
		if err != nil {
			return mapConstraintErr(err)
		}
		return insertSwapChildren(ctx, tx, swap)
	})
}

// GetSwap loads a swap with all of its children.
// Returns store.ErrNotFound if the swap does not exist.
func (s *Store) GetSwap(ctx context.Context, id string) (*domain.Swap, error) {
	var (
		status    string
		createdAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT status, created_at FROM swaps WHERE id = ?`, id).
		Scan(&status, &createdAt)
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

	requesting, err := s.loadSubSwap(ctx, id, roleRequesting)
	if err != nil {
		return nil, err
	}
	accepting, err := s.loadSubSwap(ctx, id, roleAccepting)
	if err != nil {
		return nil, err
	}

	meetups, err := s.loadMeetups(ctx, id)
	if err != nil {
		return nil, err
	}
	timeline, err := s.loadTimeline(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteSwap(id, domain.SwapStatus(status),
		requesting, accepting, meetups, timeline, created), nil
}

// SaveSwap replaces the stored swap and its children wholesale.
// Returns store.ErrNotFound if the swap does not exist.
func (s *Store) SaveSwap(ctx context.Context, swap *domain.Swap) error {
	return s.inTx(ctx, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE swaps SET status = ?, created_at = ? WHERE id = ?`,
			string(swap.Status()), formatTime(swap.CreatedAt), swap.ID)
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

		// Feedback and issue rows cascade with their sub-swaps.
		for _, table := range []string{"sub_swaps", "meetups", "timeline_updates"} {
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM `+table+` WHERE swap_id = ?`, swap.ID); err != nil {
				return err
			}
		}
		return insertSwapChildren(ctx, tx, swap)
	})
}

// DeleteSwap removes a swap; children cascade.
// Returns store.ErrNotFound if the swap does not exist.
func (s *Store) DeleteSwap(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM swaps WHERE id = ?`, id)
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

// ListSwapsForUser returns every swap the user participates in, as either
// party, ordered by creation time.
func (s *Store) ListSwapsForUser(ctx context.Context, userID string) ([]*domain.Swap, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT sw.id FROM swaps sw
		JOIN sub_swaps ss ON ss.swap_id = sw.id
		WHERE ss.user_id = ?
		ORDER BY sw.created_at ASC, sw.id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	swaps := make([]*domain.Swap, 0, len(ids))
	for _, id := range ids {
		swap, err := s.GetSwap(ctx, id)
		if err != nil {
			return nil, err
		}
		swaps = append(swaps, swap)
	}
	return swaps, nil
}

// insertSwapChildren writes both sub-swaps (with feedback and issue rows),
// meetups, and timeline updates for a swap.
func insertSwapChildren(ctx context.Context, tx *sql.Tx, swap *domain.Swap) error {
	if err := insertSubSwap(ctx, tx, swap.ID, roleRequesting, swap.SubSwapRequesting); err != nil {
		return err
	}
	if err := insertSubSwap(ctx, tx, swap.ID, roleAccepting, swap.SubSwapAccepting); err != nil {
		return err
	}

	for i, m := range swap.Meetups() {
		var lat, lon sql.NullFloat64
		if m.Location != nil {
			lat = sql.NullFloat64{Float64: m.Location.Latitude, Valid: true}
			lon = sql.NullFloat64{Float64: m.Location.Longitude, Valid: true}
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO meetups (id, swap_id, suggested_user_id, status, latitude, longitude, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			m.ID, swap.ID, m.SuggestedUserID, string(m.Status), lat, lon, i)
		if err != nil {
			return mapConstraintErr(err)
		}
	}

	for i, tu := range swap.TimelineUpdates() {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO timeline_updates (id, swap_id, user_id, status, description, created_at, position)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			tu.ID, swap.ID, tu.UserID, string(tu.Status), tu.Description, formatTime(tu.CreatedAt), i)
		if err != nil {
			return mapConstraintErr(err)
		}
	}
	return nil
}

func insertSubSwap(ctx context.Context, tx *sql.Tx, swapID, role string, ss *domain.SubSwap) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sub_swaps (id, swap_id, role, user_id, page_at, user_book_reading_id)
		VALUES (?, ?, ?, ?, ?, ?)`,
		ss.ID, swapID, role, ss.UserID, ss.PageAt, nullString(ss.UserBookReadingID))
	if err != nil {
		return mapConstraintErr(err)
	}

	if f := ss.Feedback; f != nil {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sub_swap_feedback (id, sub_swap_id, user_id, stars, recommend, length, condition, communication)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			f.ID, ss.ID, f.UserID, f.Stars, boolToInt(f.Recommend),
			string(f.Length), string(f.Condition), string(f.Communication))
		if err != nil {
			return mapConstraintErr(err)
		}
	}

	if i := ss.Issue; i != nil {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sub_swap_issues (id, sub_swap_id, user_id, description)
			VALUES (?, ?, ?, ?)`,
			i.ID, ss.ID, i.UserID, i.Description)
		if err != nil {
			return mapConstraintErr(err)
		}
	}
	return nil
}

func (s *Store) loadSubSwap(ctx context.Context, swapID, role string) (*domain.SubSwap, error) {
	var (
		id        string
		userID    string
		pageAt    int
		readingID sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, page_at, user_book_reading_id
		FROM sub_swaps WHERE swap_id = ? AND role = ?`, swapID, role).
		Scan(&id, &userID, &pageAt, &readingID)
	if err != nil {
		return nil, err
	}

	feedback, err := s.loadFeedback(ctx, id)
	if err != nil {
		return nil, err
	}
	issue, err := s.loadIssue(ctx, id)
	if err != nil {
		return nil, err
	}

	return domain.ReconstituteSubSwap(id, userID, pageAt, readingID.String, feedback, issue), nil
}

func (s *Store) loadFeedback(ctx context.Context, subSwapID string) (*domain.Feedback, error) {
	f := &domain.Feedback{SubSwapID: subSwapID}
	var (
		recommend     int
		length        string
		condition     string
		communication string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, stars, recommend, length, condition, communication
		FROM sub_swap_feedback WHERE sub_swap_id = ?`, subSwapID).
		Scan(&f.ID, &f.UserID, &f.Stars, &recommend, &length, &condition, &communication)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	f.Recommend = recommend != 0
	f.Length = domain.FeedbackLength(length)
	f.Condition = domain.FeedbackCondition(condition)
	f.Communication = domain.FeedbackCommunication(communication)
	return f, nil
}

func (s *Store) loadIssue(ctx context.Context, subSwapID string) (*domain.Issue, error) {
	i := &domain.Issue{SubSwapID: subSwapID}
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, description
		FROM sub_swap_issues WHERE sub_swap_id = ?`, subSwapID).
		Scan(&i.ID, &i.UserID, &i.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return i, nil
}

func (s *Store) loadMeetups(ctx context.Context, swapID string) ([]*domain.Meetup, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, suggested_user_id, status, latitude, longitude
		FROM meetups WHERE swap_id = ? ORDER BY position ASC`, swapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var meetups []*domain.Meetup
	for rows.Next() {
		m := &domain.Meetup{SwapID: swapID}
		var (
			status string
			lat    sql.NullFloat64
			lon    sql.NullFloat64
		)
		if err := rows.Scan(&m.ID, &m.SuggestedUserID, &status, &lat, &lon); err != nil {
			return nil, err
		}
		m.Status = domain.MeetupStatus(status)
		if lat.Valid && lon.Valid {
			m.Location = &domain.Location{Latitude: lat.Float64, Longitude: lon.Float64}
		}
		meetups = append(meetups, m)
	}
	return meetups, rows.Err()
}

func (s *Store) loadTimeline(ctx context.Context, swapID string) ([]*domain.TimelineUpdate, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, status, description, created_at
		FROM timeline_updates WHERE swap_id = ? ORDER BY position ASC`, swapID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updates []*domain.TimelineUpdate
	for rows.Next() {
		tu := &domain.TimelineUpdate{SwapID: swapID}
		var (
			status    string
			createdAt string
		)
		if err := rows.Scan(&tu.ID, &tu.UserID, &status, &tu.Description, &createdAt); err != nil {
			return nil, err
		}
		tu.Status = domain.TimelineStatus(status)
		tu.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, err
		}
		updates = append(updates, tu)
	}
	return updates, rows.Err()
}
