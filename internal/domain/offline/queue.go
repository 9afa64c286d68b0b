// internal/domain/offline/queue.go
package offline

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/pos-backend/internal/domain/order"
)

const (
	seqKey = "offline:txn:seq"
	idsKey = "offline:txn:ids"
)

func txnKey(localID int64) string {
	return fmt.Sprintf("offline:txn:%d", localID)
}

// TransactionLine is one cart line captured at checkout time. Only the
// product id and quantity are stored; replay prices the line at the current
// catalog price.
type TransactionLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Transaction is a checkout that could not reach the backend. Records are
// immutable once written; the only mutation is removal after a confirmed
// remote commit.
type Transaction struct {
	LocalID       int64               `json:"local_id"`
	CashierID     string              `json:"cashier_id"`
	PaymentMethod order.PaymentMethod `json:"payment_method"`
	Lines         []TransactionLine   `json:"lines"`
	CreatedAt     time.Time           `json:"created_at"`
}

// Queue is a durable FIFO log of pending transactions in the terminal-local
// Redis instance. It survives process restarts and is independent of network
// reachability. The mutex serializes the two writers the system has: an
// offline checkout appending and a sync drain removing.
type Queue struct {
	mu          sync.Mutex
	redisClient *redis.Client
}

// NewQueue creates a queue on the local Redis instance
func NewQueue(redisClient *redis.Client) *Queue {
	return &Queue{redisClient: redisClient}
}

// Enqueue appends a transaction under a fresh local id and returns that id.
// A failure here means local storage itself is unavailable; the caller must
// surface it before clearing the cart.
func (q *Queue) Enqueue(ctx context.Context, tx *Transaction) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	localID, err := q.redisClient.Incr(ctx, seqKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate offline transaction id: %w", err)
	}
	tx.LocalID = localID

	data, err := json.Marshal(tx)
	if err != nil {
		return 0, fmt.Errorf("failed to encode offline transaction: %w", err)
	}

	pipe := q.redisClient.TxPipeline()
	pipe.Set(ctx, txnKey(localID), data, 0)
	pipe.RPush(ctx, idsKey, localID)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("failed to store offline transaction: %w", err)
	}

	return localID, nil
}

// ListPending returns all pending transactions oldest first
func (q *Queue) ListPending(ctx context.Context) ([]Transaction, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	ids, err := q.redisClient.LRange(ctx, idsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list offline transactions: %w", err)
	}

	transactions := make([]Transaction, 0, len(ids))
	for _, idStr := range ids {
		localID, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			continue
		}

		data, err := q.redisClient.Get(ctx, txnKey(localID)).Result()
		if err == redis.Nil {
			// Stale index entry from a partially completed remove.
			q.redisClient.LRem(ctx, idsKey, 1, idStr)
			continue
		} else if err != nil {
			return nil, fmt.Errorf("failed to read offline transaction %d: %w", localID, err)
		}

		var tx Transaction
		if err := json.Unmarshal([]byte(data), &tx); err != nil {
			return nil, fmt.Errorf("failed to decode offline transaction %d: %w", localID, err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, nil
}

// Remove deletes exactly one transaction; removing an absent id is a no-op
func (q *Queue) Remove(ctx context.Context, localID int64) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	pipe := q.redisClient.TxPipeline()
	pipe.LRem(ctx, idsKey, 1, localID)
	pipe.Del(ctx, txnKey(localID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to remove offline transaction %d: %w", localID, err)
	}
	return nil
}

// Count returns the number of pending transactions, used for the UI badge
func (q *Queue) Count(ctx context.Context) (int64, error) {
	count, err := q.redisClient.LLen(ctx, idsKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to count offline transactions: %w", err)
	}
	return count, nil
}
