// internal/domain/syncer/agent_test.go
package syncer

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/offline"
	"github.com/your-org/pos-backend/internal/domain/order"
	"github.com/your-org/pos-backend/internal/pkg/notify"
)

type fakeQueue struct {
	mu         sync.Mutex
	pending    []offline.Transaction
	removed    []int64
	failRemove map[int64]error
}

func (q *fakeQueue) ListPending(ctx context.Context) ([]offline.Transaction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]offline.Transaction, len(q.pending))
	copy(out, q.pending)
	return out, nil
}

func (q *fakeQueue) Remove(ctx context.Context, localID int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if err, ok := q.failRemove[localID]; ok {
		return err
	}
	for i := range q.pending {
		if q.pending[i].LocalID == localID {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			break
		}
	}
	q.removed = append(q.removed, localID)
	return nil
}

func (q *fakeQueue) Count(ctx context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.pending)), nil
}

type fakeCommitter struct {
	mu        sync.Mutex
	committed []int64
	failFor   map[int64]error

	// entered/release let a test hold a drain open mid-commit
	entered chan struct{}
	release chan struct{}
}

func (c *fakeCommitter) CommitPending(ctx context.Context, tx *offline.Transaction) error {
	if c.entered != nil {
		c.entered <- struct{}{}
	}
	if c.release != nil {
		<-c.release
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if err, ok := c.failFor[tx.LocalID]; ok {
		return err
	}
	c.committed = append(c.committed, tx.LocalID)
	return nil
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	levels   []notify.Level
}

func (n *fakeNotifier) Notify(message string, level notify.Level) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	n.levels = append(n.levels, level)
}

func tx(id int64) offline.Transaction {
	return offline.Transaction{
		LocalID:       id,
		CashierID:     "op1",
		PaymentMethod: order.PaymentMethodCash,
		Lines:         []offline.TransactionLine{{ProductID: 1, Quantity: 1}},
	}
}

func newTestAgent(queue Queue, committer Committer, notifier notify.Notifier) *Agent {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewAgent(queue, committer, notifier, logger, &config.Config{})
}

func TestSyncEmptyQueue(t *testing.T) {
	queue := &fakeQueue{}
	agent := newTestAgent(queue, &fakeCommitter{}, &fakeNotifier{})

	result, err := agent.Sync(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.Synced)
	assert.Equal(t, "no offline transactions to sync", result.Message)
}

func TestSyncDrainsInFIFOOrder(t *testing.T) {
	queue := &fakeQueue{pending: []offline.Transaction{tx(1), tx(2), tx(3)}}
	committer := &fakeCommitter{}
	notifier := &fakeNotifier{}
	agent := newTestAgent(queue, committer, notifier)

	result, err := agent.Sync(context.Background())

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Synced)
	assert.Equal(t, 0, result.Failed)

	assert.Equal(t, []int64{1, 2, 3}, committer.committed)
	assert.Equal(t, []int64{1, 2, 3}, queue.removed)
	assert.Empty(t, queue.pending)

	require.Len(t, notifier.levels, 1)
	assert.Equal(t, notify.LevelSuccess, notifier.levels[0])
}

func TestSyncFailuresAreIndependent(t *testing.T) {
	queue := &fakeQueue{pending: []offline.Transaction{tx(1), tx(2), tx(3)}}
	committer := &fakeCommitter{failFor: map[int64]error{2: errors.New("stock conflict")}}
	notifier := &fakeNotifier{}
	agent := newTestAgent(queue, committer, notifier)

	result, err := agent.Sync(context.Background())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 2, result.Synced)
	assert.Equal(t, 1, result.Failed)
	assert.Equal(t, "2 synced, 1 failed", result.Message)

	// The failing record stays queued, the ones around it are gone.
	require.Len(t, queue.pending, 1)
	assert.Equal(t, int64(2), queue.pending[0].LocalID)
	assert.Equal(t, []int64{1, 3}, committer.committed)

	require.Len(t, notifier.levels, 1)
	assert.Equal(t, notify.LevelWarning, notifier.levels[0])
}

func TestSyncRemoveFailureCountsAsFailed(t *testing.T) {
	queue := &fakeQueue{
		pending:    []offline.Transaction{tx(1)},
		failRemove: map[int64]error{1: errors.New("local storage hiccup")},
	}
	committer := &fakeCommitter{}
	agent := newTestAgent(queue, committer, &fakeNotifier{})

	result, err := agent.Sync(context.Background())

	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.Synced)
	assert.Equal(t, 1, result.Failed)

	// The commit itself went through; the record will be replayed later and
	// flagged as synced-from-offline.
	assert.Equal(t, []int64{1}, committer.committed)
}

func TestSyncSuppressedWhileRunning(t *testing.T) {
	queue := &fakeQueue{pending: []offline.Transaction{tx(1)}}
	committer := &fakeCommitter{
		entered: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	agent := newTestAgent(queue, committer, &fakeNotifier{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := agent.Sync(context.Background())
		assert.NoError(t, err)
	}()

	// Wait until the first drain is inside the committer, then trigger again
	// while it is still held there.
	<-committer.entered

	_, err := agent.Sync(context.Background())
	require.ErrorIs(t, err, ErrSyncInProgress)

	close(committer.release)
	<-done

	// After the first drain finishes a new one may start again.
	committer.entered = nil
	result, err := agent.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Success)
}

func TestPendingCount(t *testing.T) {
	queue := &fakeQueue{pending: []offline.Transaction{tx(1), tx(2)}}
	agent := newTestAgent(queue, &fakeCommitter{}, &fakeNotifier{})

	count, err := agent.PendingCount(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

type fakeFeed struct {
	mu  sync.Mutex
	fns []func(bool)
}

func (f *fakeFeed) Subscribe(fn func(online bool)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fns = append(f.fns, fn)
	return func() {}
}

func (f *fakeFeed) fire(online bool) {
	f.mu.Lock()
	fns := make([]func(bool), len(f.fns))
	copy(fns, f.fns)
	f.mu.Unlock()
	for _, fn := range fns {
		fn(online)
	}
}

func TestWatchSyncsOnReconnect(t *testing.T) {
	queue := &fakeQueue{pending: []offline.Transaction{tx(1)}}
	committer := &fakeCommitter{}
	agent := newTestAgent(queue, committer, &fakeNotifier{})

	feed := &fakeFeed{}
	unwatch := agent.Watch(context.Background(), feed)
	defer unwatch()

	// Going offline does not trigger a drain.
	feed.fire(false)
	count, err := agent.PendingCount(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// Coming online does.
	feed.fire(true)

	require.Eventually(t, func() bool {
		count, err := agent.PendingCount(context.Background())
		return err == nil && count == 0
	}, time.Second, 10*time.Millisecond)
}
