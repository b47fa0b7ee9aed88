package queue_test

import (
	"math"
	"testing"
	"time"

	"github.com/romshark/vsched/internal/queue"

	"github.com/segmentio/ksuid"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2021, 6, 20, 10, 00, 00, 0, time.UTC)

func TestEmpty(t *testing.T) {
	q := queue.New()
	require.True(t, q.IsEmpty())
	require.Zero(t, q.Len())

	_, err := q.PeekMin()
	require.ErrorIs(t, err, queue.ErrEmpty)

	_, err = q.ExtractMin()
	require.ErrorIs(t, err, queue.ErrEmpty)
}

func TestOrderByDue(t *testing.T) {
	q := queue.New()
	e3 := entry(start.Add(3*time.Hour), 1)
	e1 := entry(start.Add(time.Hour), 2)
	e2 := entry(start.Add(2*time.Hour), 3)
	q.Insert(e3)
	q.Insert(e1)
	q.Insert(e2)

	require.Equal(t, 3, q.Len())

	m, err := q.PeekMin()
	require.NoError(t, err)
	require.Equal(t, e1.ID, m.ID)
	require.Equal(t, 3, q.Len(), "peek must not remove")

	ExpectExtracted(t, q, e1, e2, e3)
	require.True(t, q.IsEmpty())
}

func TestTieBreakBySeq(t *testing.T) {
	q := queue.New()
	a := entry(start, 10)
	b := entry(start, 11)
	c := entry(start, 12)
	q.Insert(c)
	q.Insert(a)
	q.Insert(b)

	ExpectExtracted(t, q, a, b, c)
}

func TestTieBreakSeqWrapAround(t *testing.T) {
	q := queue.New()
	a := entry(start, math.MaxUint64-1)
	b := entry(start, math.MaxUint64)
	c := entry(start, 0) // wrapped
	q.Insert(c)
	q.Insert(b)
	q.Insert(a)

	ExpectExtracted(t, q, a, b, c)
}

func TestRemove(t *testing.T) {
	q := queue.New()
	e1 := entry(start.Add(time.Hour), 1)
	e2 := entry(start.Add(2*time.Hour), 2)
	q.Insert(e1)
	q.Insert(e2)

	require.True(t, q.Has(e1.ID))
	require.True(t, q.Remove(e1.ID))
	require.False(t, q.Has(e1.ID))
	require.False(t, q.Remove(e1.ID))
	require.False(t, q.Remove(ksuid.New()))

	ExpectExtracted(t, q, e2)
}

func TestScan(t *testing.T) {
	q := queue.New()
	e1 := entry(start.Add(time.Hour), 1)
	e2 := entry(start.Add(2*time.Hour), 2)
	e3 := entry(start.Add(3*time.Hour), 3)
	q.Insert(e2)
	q.Insert(e3)
	q.Insert(e1)

	ExpectScan(t, q, ksuid.Nil, e1, e2, e3)
	ExpectScan(t, q, e1.ID, e2, e3)
	ExpectScan(t, q, e3.ID)

	count := 0
	ok := q.Scan(ksuid.Nil, func(queue.Entry) bool {
		count++
		return false
	})
	require.True(t, ok)
	require.Equal(t, 1, count)

	require.False(t, q.Scan(ksuid.New(), func(queue.Entry) bool {
		panic("this should not be invoked")
	}))
}

func entry(due time.Time, seq uint64) queue.Entry {
	return queue.Entry{ID: ksuid.New(), Due: due, Seq: seq, Fn: func() {}}
}

func ExpectExtracted(t *testing.T, q *queue.Queue, expected ...queue.Entry) {
	t.Helper()
	for i, x := range expected {
		e, err := q.ExtractMin()
		require.NoError(t, err)
		require.Equal(t, x.ID, e.ID, "unexpected entry at index %d", i)
		require.Equal(t, x.Due, e.Due, "unexpected due at index %d", i)
	}
}

func ExpectScan(
	t *testing.T, q *queue.Queue, after ksuid.KSUID, expected ...queue.Entry,
) {
	t.Helper()
	var actual []ksuid.KSUID
	ok := q.Scan(after, func(e queue.Entry) bool {
		actual = append(actual, e.ID)
		return true
	})
	require.True(t, ok)
	require.Len(t, actual, len(expected))
	for i, x := range expected {
		require.Equal(t, x.ID, actual[i], "unexpected entry at index %d", i)
	}
}
