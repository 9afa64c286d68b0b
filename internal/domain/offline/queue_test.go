// internal/domain/offline/queue_test.go
package offline

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/pos-backend/internal/domain/order"
)

func setupTestQueue(t *testing.T) (*Queue, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })

	return NewQueue(client), mr
}

func testTransaction(cashier string) *Transaction {
	return &Transaction{
		CashierID:     cashier,
		PaymentMethod: order.PaymentMethodCash,
		Lines:         []TransactionLine{{ProductID: 1, Quantity: 2}},
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestEnqueueAssignsIncreasingIDs(t *testing.T) {
	q, _ := setupTestQueue(t)
	ctx := context.Background()

	id1, err := q.Enqueue(ctx, testTransaction("op1"))
	require.NoError(t, err)
	id2, err := q.Enqueue(ctx, testTransaction("op1"))
	require.NoError(t, err)

	assert.Equal(t, int64(1), id1)
	assert.Equal(t, int64(2), id2)
}

func TestListPendingFIFO(t *testing.T) {
	q, _ := setupTestQueue(t)
	ctx := context.Background()

	first := testTransaction("op1")
	second := testTransaction("op2")
	_, err := q.Enqueue(ctx, first)
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, second)
	require.NoError(t, err)

	pending, err := q.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)

	assert.Equal(t, "op1", pending[0].CashierID)
	assert.Equal(t, "op2", pending[1].CashierID)
	assert.Equal(t, []TransactionLine{{ProductID: 1, Quantity: 2}}, pending[0].Lines)
	assert.Equal(t, order.PaymentMethodCash, pending[0].PaymentMethod)
}

func TestRemove(t *testing.T) {
	q, _ := setupTestQueue(t)
	ctx := context.Background()

	id1, err := q.Enqueue(ctx, testTransaction("op1"))
	require.NoError(t, err)
	id2, err := q.Enqueue(ctx, testTransaction("op2"))
	require.NoError(t, err)

	require.NoError(t, q.Remove(ctx, id1))

	pending, err := q.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id2, pending[0].LocalID)

	count, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRemoveAbsentIDIsNoop(t *testing.T) {
	q, _ := setupTestQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, testTransaction("op1"))
	require.NoError(t, err)

	require.NoError(t, q.Remove(ctx, 999))
	require.NoError(t, q.Remove(ctx, 999))

	count, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCount(t *testing.T) {
	q, _ := setupTestQueue(t)
	ctx := context.Background()

	count, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	_, err = q.Enqueue(ctx, testTransaction("op1"))
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, testTransaction("op1"))
	require.NoError(t, err)

	count, err = q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestListPendingCleansStaleIndexEntries(t *testing.T) {
	q, mr := setupTestQueue(t)
	ctx := context.Background()

	id1, err := q.Enqueue(ctx, testTransaction("op1"))
	require.NoError(t, err)
	_, err = q.Enqueue(ctx, testTransaction("op2"))
	require.NoError(t, err)

	// Simulate a partially completed remove: record gone, index entry left.
	mr.Del(txnKey(id1))

	pending, err := q.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "op2", pending[0].CashierID)

	// The stale index entry was dropped along the way.
	count, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestQueueSurvivesReconnect(t *testing.T) {
	q, mr := setupTestQueue(t)
	ctx := context.Background()

	_, err := q.Enqueue(ctx, testTransaction("op1"))
	require.NoError(t, err)

	// A fresh client against the same store sees the same queue.
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	q2 := NewQueue(client)
	pending, err := q2.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "op1", pending[0].CashierID)
}
