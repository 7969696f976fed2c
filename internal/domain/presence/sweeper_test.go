package presence

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memPresenceRepo is an in-memory presence store.
type memPresenceRepo struct {
	mu    sync.Mutex
	rows  map[int64]*OnlineUser
	block chan struct{} // when set, DeleteStale blocks until closed
}

func newMemPresenceRepo() *memPresenceRepo {
	return &memPresenceRepo{rows: make(map[int64]*OnlineUser)}
}

func (r *memPresenceRepo) Upsert(ctx context.Context, u *OnlineUser) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.rows[u.UserID] = &cp
	return nil
}

func (r *memPresenceRepo) ListOnline(ctx context.Context, window time.Duration) ([]*OnlineUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	var out []*OnlineUser
	for _, u := range r.rows {
		if u.IsOnline(now, window) {
			cp := *u
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memPresenceRepo) CountOnline(ctx context.Context, window time.Duration) (int64, error) {
	users, _ := r.ListOnline(ctx, window)
	return int64(len(users)), nil
}

func (r *memPresenceRepo) SetAction(ctx context.Context, userID int64, action *string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[userID]
	if !ok {
		return false, nil
	}
	u.CurrentAction = action
	u.LastHeartbeat = time.Now().UTC()
	return true, nil
}

func (r *memPresenceRepo) Get(ctx context.Context, userID int64) (*OnlineUser, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.rows[userID]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memPresenceRepo) Delete(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, userID)
	return nil
}

func (r *memPresenceRepo) DeleteStale(ctx context.Context, window time.Duration) (int64, error) {
	if r.block != nil {
		<-r.block
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	var removed int64
	for id, u := range r.rows {
		if !u.IsOnline(now, window) {
			delete(r.rows, id)
			removed++
		}
	}
	return removed, nil
}

func TestHeartbeatAndOnlineList(t *testing.T) {
	repo := newMemPresenceRepo()
	svc := NewService(repo, 90*time.Second)
	ctx := context.Background()

	require.NoError(t, svc.Heartbeat(ctx, 1, "alice", nil))
	require.NoError(t, svc.Heartbeat(ctx, 2, "bob", nil))

	// an expired heartbeat does not count as online
	repo.rows[3] = &OnlineUser{
		UserID:        3,
		Username:      "carol",
		LastHeartbeat: time.Now().UTC().Add(-5 * time.Minute),
	}

	users, err := svc.ListOnline(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	count, err := svc.CountOnline(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestUpdateActionCreatesRowWhenMissing(t *testing.T) {
	repo := newMemPresenceRepo()
	svc := NewService(repo, 90*time.Second)
	ctx := context.Background()

	require.NoError(t, svc.UpdateAction(ctx, 7, "dave", "editing sales"))

	u, online, err := svc.Status(ctx, 7)
	require.NoError(t, err)
	assert.True(t, online)
	require.NotNil(t, u.CurrentAction)
	assert.Equal(t, "editing sales", *u.CurrentAction)
}

func TestCleanupRemovesStaleRows(t *testing.T) {
	repo := newMemPresenceRepo()
	svc := NewService(repo, 90*time.Second)
	ctx := context.Background()

	require.NoError(t, svc.Heartbeat(ctx, 1, "alice", nil))
	repo.rows[2] = &OnlineUser{
		UserID:        2,
		Username:      "bob",
		LastHeartbeat: time.Now().UTC().Add(-time.Hour),
	}

	removed, err := svc.Cleanup(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, online, err := svc.Status(ctx, 1)
	require.NoError(t, err)
	assert.True(t, online)
}

func TestSweeperSkipsOverlappingTicks(t *testing.T) {
	repo := newMemPresenceRepo()
	repo.block = make(chan struct{})
	svc := NewService(repo, 90*time.Second)
	sweeper := NewSweeper(svc, time.Minute)

	ctx := context.Background()

	// first tick blocks inside DeleteStale
	done := make(chan struct{})
	go func() {
		sweeper.tick(ctx)
		close(done)
	}()

	// wait until the first tick holds the in-flight guard
	require.Eventually(t, func() bool {
		return sweeper.running.Load()
	}, time.Second, 5*time.Millisecond)

	// second tick must return immediately instead of piling up
	start := time.Now()
	sweeper.tick(ctx)
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	close(repo.block)
	<-done
	assert.False(t, sweeper.running.Load())
}

// A sweep stuck in the store must not stall the loop: Run has to keep
// reacting to cancellation while the sweep goroutine is still blocked.
func TestRunStaysResponsiveWhileSweepBlocked(t *testing.T) {
	repo := newMemPresenceRepo()
	repo.block = make(chan struct{})
	svc := NewService(repo, 90*time.Second)
	sweeper := NewSweeper(svc, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx)
		close(done)
	}()

	// wait until a tick fired and is blocked inside DeleteStale
	require.Eventually(t, func() bool {
		return sweeper.running.Load()
	}, time.Second, time.Millisecond)

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancellation while a sweep was in flight")
	}

	close(repo.block)
}
