// internal/domain/syncer/agent.go
package syncer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/pos-backend/internal/config"
	"github.com/your-org/pos-backend/internal/domain/offline"
	"github.com/your-org/pos-backend/internal/pkg/notify"
)

// ErrSyncInProgress is returned when a sync is triggered while one is running
var ErrSyncInProgress = errors.New("sync already in progress")

// Queue is the pending-transaction surface the agent drains
type Queue interface {
	ListPending(ctx context.Context) ([]offline.Transaction, error)
	Remove(ctx context.Context, localID int64) error
	Count(ctx context.Context) (int64, error)
}

// Committer replays one queued transaction against the remote backend
type Committer interface {
	CommitPending(ctx context.Context, tx *offline.Transaction) error
}

// Subscribable is the connectivity transition feed the agent watches
type Subscribable interface {
	Subscribe(fn func(online bool)) func()
}

// Result is the aggregate outcome of one drain pass
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Synced  int    `json:"synced"`
	Failed  int    `json:"failed"`
}

// Agent reconciles the offline queue against the remote backend. Records are
// drained oldest first; a failing record stays queued and does not block the
// rest. Only one drain runs at a time.
type Agent struct {
	queue      Queue
	committer  Committer
	notifier   notify.Notifier
	logger     *logrus.Logger
	retryDelay time.Duration

	running atomic.Bool
}

// NewAgent creates a sync agent
func NewAgent(queue Queue, committer Committer, notifier notify.Notifier, logger *logrus.Logger, cfg *config.Config) *Agent {
	return &Agent{
		queue:      queue,
		committer:  committer,
		notifier:   notifier,
		logger:     logger,
		retryDelay: cfg.Sync.RetryDelay,
	}
}

// Watch subscribes the agent to connectivity transitions so a drain starts
// automatically when the terminal comes back online. Returns the unsubscribe
// function.
func (a *Agent) Watch(ctx context.Context, conn Subscribable) func() {
	return conn.Subscribe(func(online bool) {
		if !online {
			return
		}
		go func() {
			if _, err := a.Sync(ctx); err != nil && !errors.Is(err, ErrSyncInProgress) {
				a.logger.WithError(err).Error("automatic sync failed")
			}
		}()
	})
}

// Sync drains the offline queue in FIFO order. A trigger while a drain is
// already running returns ErrSyncInProgress and does nothing.
func (a *Agent) Sync(ctx context.Context) (*Result, error) {
	if !a.running.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer a.running.Store(false)

	pending, err := a.queue.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return &Result{
			Success: true,
			Message: "no offline transactions to sync",
		}, nil
	}

	synced := 0
	failed := 0

	for i := range pending {
		tx := pending[i]

		if err := a.committer.CommitPending(ctx, &tx); err != nil {
			// Failures are independent: this record stays queued for a
			// later attempt, the loop continues with the next one.
			failed++
			a.logger.WithError(err).WithField("local_id", tx.LocalID).
				Warn("failed to sync offline transaction")

			if a.retryDelay > 0 {
				select {
				case <-time.After(a.retryDelay):
				case <-ctx.Done():
					return a.finish(synced, failed+len(pending)-i-1), ctx.Err()
				}
			}
			continue
		}

		if err := a.queue.Remove(ctx, tx.LocalID); err != nil {
			// The commit succeeded but the local delete did not; the record
			// will be retried. Replay marks the order as synced-from-offline,
			// which is the operator's handle for spotting the duplicate.
			failed++
			a.logger.WithError(err).WithField("local_id", tx.LocalID).
				Error("synced transaction could not be removed from queue")
			continue
		}

		synced++
		a.logger.WithField("local_id", tx.LocalID).Info("offline transaction synced")
	}

	result := a.finish(synced, failed)
	if result.Success {
		a.notifier.Notify(result.Message, notify.LevelSuccess)
	} else {
		a.notifier.Notify(result.Message, notify.LevelWarning)
	}

	return result, nil
}

// PendingCount returns the number of queued transactions for the UI badge
func (a *Agent) PendingCount(ctx context.Context) (int64, error) {
	return a.queue.Count(ctx)
}

func (a *Agent) finish(synced, failed int) *Result {
	if failed == 0 {
		return &Result{
			Success: true,
			Message: fmt.Sprintf("%d offline transaction(s) synced", synced),
			Synced:  synced,
		}
	}
	return &Result{
		Success: false,
		Message: fmt.Sprintf("%d synced, %d failed", synced, failed),
		Synced:  synced,
		Failed:  failed,
	}
}
