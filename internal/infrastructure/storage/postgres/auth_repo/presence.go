package auth_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"agrostock/internal/domain/presence"
	"agrostock/internal/infrastructure/storage/postgres"
)

// PresenceRepo implements presence.Repository on top of the
// online_users table. Rows are keyed by user_id.
type PresenceRepo struct {
	txm *postgres.TxManager
}

// NewPresenceRepo creates a new presence repository.
func NewPresenceRepo(txm *postgres.TxManager) *PresenceRepo {
	return &PresenceRepo{txm: txm}
}

var _ presence.Repository = (*PresenceRepo)(nil)

// Upsert records a heartbeat, inserting or refreshing the row.
func (r *PresenceRepo) Upsert(ctx context.Context, user *presence.OnlineUser) error {
	q := r.txm.GetQuerier(ctx)

	query := `
		INSERT INTO online_users (user_id, username, last_heartbeat, current_action)
		VALUES ($1, $2, now(), $3)
		ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			last_heartbeat = now(),
			current_action = COALESCE(EXCLUDED.current_action, online_users.current_action)
	`

	_, err := q.Exec(ctx, query, user.UserID, user.Username, user.CurrentAction)
	if err != nil {
		return fmt.Errorf("upsert presence: %w", err)
	}

	return nil
}

// ListOnline returns all rows inside the window, most recent first.
func (r *PresenceRepo) ListOnline(ctx context.Context, window time.Duration) ([]*presence.OnlineUser, error) {
	q := r.txm.GetQuerier(ctx)

	query := `
		SELECT user_id, username, last_heartbeat, current_action
		FROM online_users
		WHERE last_heartbeat > now() - $1::interval
		ORDER BY last_heartbeat DESC
	`

	rows, err := q.Query(ctx, query, window)
	if err != nil {
		return nil, fmt.Errorf("query online users: %w", err)
	}
	defer rows.Close()

	var users []*presence.OnlineUser
	for rows.Next() {
		var u presence.OnlineUser
		if err := rows.Scan(&u.UserID, &u.Username, &u.LastHeartbeat, &u.CurrentAction); err != nil {
			return nil, fmt.Errorf("scan online user: %w", err)
		}
		users = append(users, &u)
	}

	return users, rows.Err()
}

// CountOnline returns the number of rows inside the window.
func (r *PresenceRepo) CountOnline(ctx context.Context, window time.Duration) (int64, error) {
	q := r.txm.GetQuerier(ctx)

	var count int64
	err := q.QueryRow(ctx,
		`SELECT COUNT(*) FROM online_users WHERE last_heartbeat > now() - $1::interval`,
		window,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count online users: %w", err)
	}

	return count, nil
}

// SetAction updates the activity label and refreshes the heartbeat.
// Returns false when the user has no presence row.
func (r *PresenceRepo) SetAction(ctx context.Context, userID int64, action *string) (bool, error) {
	q := r.txm.GetQuerier(ctx)

	query := `
		UPDATE online_users
		SET current_action = $2, last_heartbeat = now()
		WHERE user_id = $1
	`

	result, err := q.Exec(ctx, query, userID, action)
	if err != nil {
		return false, fmt.Errorf("set action: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

// Get returns the presence row for one user, if any.
func (r *PresenceRepo) Get(ctx context.Context, userID int64) (*presence.OnlineUser, error) {
	q := r.txm.GetQuerier(ctx)

	query := `
		SELECT user_id, username, last_heartbeat, current_action
		FROM online_users WHERE user_id = $1
	`

	var u presence.OnlineUser
	err := q.QueryRow(ctx, query, userID).Scan(&u.UserID, &u.Username, &u.LastHeartbeat, &u.CurrentAction)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query presence: %w", err)
	}

	return &u, nil
}

// Delete removes the presence row for one user.
func (r *PresenceRepo) Delete(ctx context.Context, userID int64) error {
	q := r.txm.GetQuerier(ctx)

	_, err := q.Exec(ctx, `DELETE FROM online_users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete presence: %w", err)
	}

	return nil
}

// DeleteStale removes rows whose heartbeat fell outside the window.
func (r *PresenceRepo) DeleteStale(ctx context.Context, window time.Duration) (int64, error) {
	q := r.txm.GetQuerier(ctx)

	result, err := q.Exec(ctx,
		`DELETE FROM online_users WHERE last_heartbeat <= now() - $1::interval`,
		window,
	)
	if err != nil {
		return 0, fmt.Errorf("delete stale presence: %w", err)
	}

	return result.RowsAffected(), nil
}
