package presence

import (
	"context"
	"time"
)

// Repository defines persistence for presence rows.
type Repository interface {
	// Upsert records a heartbeat, inserting or refreshing the row
	Upsert(ctx context.Context, user *OnlineUser) error

	// ListOnline returns rows with a heartbeat inside the window,
	// most recent first
	ListOnline(ctx context.Context, window time.Duration) ([]*OnlineUser, error)

	// CountOnline returns the number of rows inside the window
	CountOnline(ctx context.Context, window time.Duration) (int64, error)

	// SetAction updates the activity label and refreshes the heartbeat
	SetAction(ctx context.Context, userID int64, action *string) (bool, error)

	// Get returns the presence row for one user, if any
	Get(ctx context.Context, userID int64) (*OnlineUser, error)

	// DeleteStale removes rows whose heartbeat fell outside the
	// window; returns the number removed
	DeleteStale(ctx context.Context, window time.Duration) (int64, error)

	// Delete removes the presence row for one user
	Delete(ctx context.Context, userID int64) error
}

// Service provides heartbeat and online-presence operations.
type Service struct {
	repo   Repository
	window time.Duration
}

// NewService creates a presence service.
func NewService(repo Repository, window time.Duration) *Service {
	if window <= 0 {
		window = DefaultOnlineWindow
	}
	return &Service{repo: repo, window: window}
}

// Heartbeat records activity for the user, carrying an optional
// action label.
func (s *Service) Heartbeat(ctx context.Context, userID int64, username string, action *string) error {
	return s.repo.Upsert(ctx, &OnlineUser{
		UserID:        userID,
		Username:      username,
		LastHeartbeat: time.Now().UTC(),
		CurrentAction: action,
	})
}

// ListOnline returns all currently online users.
func (s *Service) ListOnline(ctx context.Context) ([]*OnlineUser, error) {
	return s.repo.ListOnline(ctx, s.window)
}

// CountOnline returns how many users are currently online.
func (s *Service) CountOnline(ctx context.Context) (int64, error) {
	return s.repo.CountOnline(ctx, s.window)
}

// UpdateAction sets the user's activity label, creating the presence
// row if it does not exist yet.
func (s *Service) UpdateAction(ctx context.Context, userID int64, username string, action string) error {
	updated, err := s.repo.SetAction(ctx, userID, &action)
	if err != nil {
		return err
	}
	if !updated {
		return s.Heartbeat(ctx, userID, username, &action)
	}
	return nil
}

// ClearAction removes the user's activity label.
func (s *Service) ClearAction(ctx context.Context, userID int64) error {
	_, err := s.repo.SetAction(ctx, userID, nil)
	return err
}

// Status reports whether one user is online.
func (s *Service) Status(ctx context.Context, userID int64) (*OnlineUser, bool, error) {
	user, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, false, err
	}
	if user == nil {
		return nil, false, nil
	}
	return user, user.IsOnline(time.Now().UTC(), s.window), nil
}

// Offline removes the user's presence row, used on logout.
func (s *Service) Offline(ctx context.Context, userID int64) error {
	return s.repo.Delete(ctx, userID)
}

// Cleanup removes stale presence rows immediately.
func (s *Service) Cleanup(ctx context.Context) (int64, error) {
	return s.repo.DeleteStale(ctx, s.window)
}
