package ledger

import (
	"sync"
	"testing"
	"time"

	"github.com/erp/orderdesk/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(opts ...StoreOption) (*Store, *fakeClock) {
	clock := &fakeClock{now: testTime}
	opts = append([]StoreOption{WithClock(clock.Now)}, opts...)
	return NewStore(opts...), clock
}

func TestStore_Create(t *testing.T) {
	s, _ := newTestStore()

	req := s.Create(Draft{
		ID:           "pr-1",
		Subtotal:     decimal.NewFromInt(1000),
		Total:        decimal.NewFromInt(1000),
		CustomerName: "Jane",
	})

	assert.Equal(t, "pr-1", req.ID)
	assert.Equal(t, RequestStatusPending, req.Status)
	assert.True(t, req.Charges.IsZero())
	assert.Equal(t, testTime, req.CreatedAt)
	assert.Equal(t, 1, s.Snapshot().Len())
}

func TestStore_Create_MostRecentFirst(t *testing.T) {
	s, clock := newTestStore()

	s.Create(Draft{ID: "first"})
	clock.Advance(time.Second)
	s.Create(Draft{ID: "second"})

	list := s.List("")
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].ID)
	assert.Equal(t, "first", list[1].ID)
}

func TestStore_UpdateCharges_RecomputesTotal(t *testing.T) {
	s, _ := newTestStore()
	s.Create(Draft{ID: "pr-1", Subtotal: decimal.NewFromInt(1000), Total: decimal.NewFromInt(1000)})

	req, err := s.UpdateCharges("pr-1", decimal.NewFromInt(200))
	require.NoError(t, err)

	assert.True(t, req.Total.Equal(decimal.NewFromInt(1200)))
	assert.True(t, req.Charges.Equal(decimal.NewFromInt(200)))
}

func TestStore_UpdateStatus_Permissive(t *testing.T) {
	s, clock := newTestStore()
	s.Create(Draft{ID: "pr-1"})
	clock.Advance(time.Minute)

	req, err := s.UpdateStatus("pr-1", RequestStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, RequestStatusCompleted, req.Status)
	assert.Equal(t, testTime.Add(time.Minute), req.UpdatedAt)

	req, err = s.UpdateStatus("pr-1", RequestStatusPending)
	require.NoError(t, err)
	assert.Equal(t, RequestStatusPending, req.Status)
}

func TestStore_UpdateStatus_Strict(t *testing.T) {
	s, _ := newTestStore(WithStrictTransitions(true))
	s.Create(Draft{ID: "pr-1"})
	require.True(t, s.Strict())

	_, err := s.UpdateStatus("pr-1", RequestStatusPaid)
	assert.ErrorIs(t, err, shared.ErrInvalidState)

	for _, next := range []RequestStatus{RequestStatusUnlocked, RequestStatusPaid, RequestStatusCompleted} {
		_, err := s.UpdateStatus("pr-1", next)
		require.NoError(t, err, "to %s", next)
	}

	_, err = s.UpdateStatus("pr-1", RequestStatusPending)
	assert.ErrorIs(t, err, shared.ErrInvalidState)
}

func TestStore_UpdateStatus_InvalidStatus(t *testing.T) {
	s, _ := newTestStore()
	s.Create(Draft{ID: "pr-1"})

	_, err := s.UpdateStatus("pr-1", "shipped")
	assert.ErrorIs(t, err, shared.ErrInvalidInput)
}

func TestStore_MissingID_NotFoundAndUnchanged(t *testing.T) {
	s, _ := newTestStore()
	s.Create(Draft{ID: "pr-1", Subtotal: decimal.NewFromInt(10), Total: decimal.NewFromInt(10)})
	before := s.Snapshot().Requests()

	_, err := s.UpdateStatus("nope", RequestStatusPaid)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = s.UpdateCharges("nope", decimal.NewFromInt(5))
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = s.Get("nope")
	assert.ErrorIs(t, err, shared.ErrNotFound)

	assert.Equal(t, before, s.Snapshot().Requests())
}

func TestStore_SnapshotIsStable(t *testing.T) {
	s, _ := newTestStore()
	s.Create(Draft{ID: "pr-1"})

	snap := s.Snapshot()
	_, err := s.UpdateStatus("pr-1", RequestStatusPaid)
	require.NoError(t, err)
	s.Create(Draft{ID: "pr-2"})

	old, _ := snap.Find("pr-1")
	assert.Equal(t, RequestStatusPending, old.Status)
	assert.Equal(t, 1, snap.Len())
	assert.Equal(t, 2, s.Snapshot().Len())
}

func TestStore_ListFiltersByStatus(t *testing.T) {
	s, _ := newTestStore()
	s.Create(Draft{ID: "a"})
	s.Create(Draft{ID: "b"})
	_, err := s.UpdateStatus("a", RequestStatusUnlocked)
	require.NoError(t, err)

	unlocked := s.List(RequestStatusUnlocked)
	require.Len(t, unlocked, 1)
	assert.Equal(t, "a", unlocked[0].ID)
	assert.Len(t, s.List(""), 2)
}

func TestStore_ConcurrentCreate(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := s.Create(Draft{Subtotal: decimal.NewFromInt(1)})
			_, _ = s.UpdateCharges(req.ID, decimal.NewFromInt(1))
		}()
	}
	wg.Wait()

	list := s.List("")
	require.Len(t, list, 50)
	for _, r := range list {
		assert.True(t, r.Total.Equal(decimal.NewFromInt(2)))
	}
}
