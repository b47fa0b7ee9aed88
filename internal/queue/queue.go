package queue

import (
	"errors"
	"time"

	"github.com/huandu/skiplist"
	"github.com/segmentio/ksuid"
)

// ErrEmpty is returned by PeekMin and ExtractMin when the queue is empty.
var ErrEmpty = errors.New("queue is empty")

// Entry is a pending job descriptor.
type Entry struct {
	ID  ksuid.KSUID
	Due time.Time

	// Seq breaks ties between entries with equal Due.
	// Entries with equal Due are ordered by Seq ascending.
	Seq uint64

	// Next marks entries that are due as soon as they're inserted.
	Next bool

	Fn func()
}

// key is the sort key of an entry.
type key struct {
	due time.Time
	seq uint64
}

func compareKeys(a, b interface{}) int {
	k1, k2 := a.(key), b.(key)
	switch {
	case k1.due.After(k2.due):
		return 1
	case k1.due.Before(k2.due):
		return -1
	}
	// Serial number arithmetic keeps the order intact
	// when the sequence counter wraps around.
	if d := int64(k1.seq - k2.seq); d > 0 {
		return 1
	} else if d < 0 {
		return -1
	}
	return 0
}

func New() *Queue {
	return &Queue{
		l:   skiplist.New(skiplist.GreaterThanFunc(compareKeys)),
		ids: make(map[ksuid.KSUID]key),
	}
}

// Queue is a due time ordered queue of entries.
// Queue is not safe for concurrent use.
type Queue struct {
	l   *skiplist.SkipList
	ids map[ksuid.KSUID]key
}

// Insert adds e to the queue.
// An entry with the same Due and Seq is replaced.
func (q *Queue) Insert(e Entry) {
	k := key{due: e.Due, seq: e.Seq}
	if prev := q.l.Get(k); prev != nil {
		delete(q.ids, prev.Value.(Entry).ID)
	}
	q.l.Set(k, e)
	q.ids[e.ID] = k
}

// PeekMin returns the entry with the smallest due time without removing it.
func (q *Queue) PeekMin() (Entry, error) {
	f := q.l.Front()
	if f == nil {
		return Entry{}, ErrEmpty
	}
	return f.Value.(Entry), nil
}

// ExtractMin removes and returns the entry with the smallest due time.
func (q *Queue) ExtractMin() (Entry, error) {
	f := q.l.Front()
	if f == nil {
		return Entry{}, ErrEmpty
	}
	e := f.Value.(Entry)
	q.l.Remove(f.Key())
	delete(q.ids, e.ID)
	return e, nil
}

func (q *Queue) IsEmpty() bool {
	return q.l.Len() < 1
}

func (q *Queue) Len() int {
	return q.l.Len()
}

func (q *Queue) Has(id ksuid.KSUID) bool {
	_, ok := q.ids[id]
	return ok
}

// Remove removes the entry identified by id.
func (q *Queue) Remove(id ksuid.KSUID) (removed bool) {
	k, ok := q.ids[id]
	if !ok {
		return false
	}
	delete(q.ids, id)
	return q.l.Remove(k) != nil
}

// Scan calls fn for each entry after the given one in due order
// until either the end of the queue is reached or fn returns false.
// Starts from the front of the queue if after is zero.
func (q *Queue) Scan(
	after ksuid.KSUID,
	fn func(Entry) bool,
) (afterFound bool) {
	var start *skiplist.Element
	if after != ksuid.Nil {
		k, ok := q.ids[after]
		if !ok {
			return false
		}
		if start = q.l.Get(k); start == nil {
			return false
		}
		start = start.Next()
	} else {
		start = q.l.Front()
	}

	for e := start; e != nil; e = e.Next() {
		if !fn(e.Value.(Entry)) {
			return true
		}
	}
	return true
}
