package pendingqueue

import (
	"errors"
	"fmt"

	cdkcommon "github.com/0xPolygon/rollupchain/common"
	"github.com/ethereum/go-ethereum/common"
)

var (
	ErrEmptyQueue   = errors.New("queue is empty")
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotEmpty     = errors.New("queue is not empty")
)

// Entry is an element waiting to be included in the chain
type Entry struct {
	Element   []byte
	Timestamp uint64
}

// Reader gives read only access to a queue
type Reader interface {
	Peek() (Entry, error)
	PeekTimestamp() (uint64, error)
	IsEmpty() bool
	Len() uint64
	Front() uint64
	Back() uint64
}

var _ Reader = (*Queue)(nil)

// Queue is a FIFO of entries addressed by an ever increasing index:
// entries live in [front, back) and the queue is empty when front == back.
// Timestamps never decrease from one entry to the next, even if the clock goes back.
// It's not safe for concurrent use, the owner must serialize access.
type Queue struct {
	producer      common.Address
	clock         cdkcommon.Clock
	entries       map[uint64]Entry
	front         uint64
	back          uint64
	lastTimestamp uint64
}

// New returns an empty queue that only accepts entries from producer
func New(producer common.Address, clock cdkcommon.Clock) *Queue {
	return &Queue{
		producer: producer,
		clock:    clock,
		entries:  make(map[uint64]Entry),
	}
}

// Producer returns the only identity allowed to enqueue
func (q *Queue) Producer() common.Address {
	return q.producer
}

// NextEntry returns the entry that Enqueue would push for element, and its index, without pushing it.
// The entry is stamped with the current time, or the timestamp of the last entry if the clock is behind it.
func (q *Queue) NextEntry(caller common.Address, element []byte) (Entry, uint64, error) {
	if caller != q.producer {
		return Entry{}, 0, fmt.Errorf("%w: %s is not the queue producer", ErrUnauthorized, caller.Hex())
	}
	e := Entry{
		Element:   make([]byte, len(element)),
		Timestamp: max(q.clock.Now(), q.lastTimestamp),
	}
	copy(e.Element, element)
	return e, q.back, nil
}

// Enqueue pushes element to the back of the queue stamped with the current time
func (q *Queue) Enqueue(caller common.Address, element []byte) (Entry, uint64, error) {
	e, index, err := q.NextEntry(caller, element)
	if err != nil {
		return Entry{}, 0, err
	}
	q.Push(e)
	return e, index, nil
}

// Push appends an entry already built by NextEntry
func (q *Queue) Push(e Entry) {
	q.entries[q.back] = e
	q.back++
	q.lastTimestamp = max(q.lastTimestamp, e.Timestamp)
}

// Peek returns the front entry without removing it
func (q *Queue) Peek() (Entry, error) {
	if q.IsEmpty() {
		return Entry{}, ErrEmptyQueue
	}
	return q.entries[q.front], nil
}

// PeekTimestamp returns the timestamp of the front entry
func (q *Queue) PeekTimestamp() (uint64, error) {
	e, err := q.Peek()
	if err != nil {
		return 0, err
	}
	return e.Timestamp, nil
}

// Dequeue removes the front entry
func (q *Queue) Dequeue() error {
	if q.IsEmpty() {
		return ErrEmptyQueue
	}
	delete(q.entries, q.front)
	q.front++
	return nil
}

func (q *Queue) IsEmpty() bool {
	return q.front == q.back
}

func (q *Queue) Len() uint64 {
	return q.back - q.front
}

func (q *Queue) Front() uint64 {
	return q.front
}

func (q *Queue) Back() uint64 {
	return q.back
}

// Restore loads the pending entries of a queue whose first pending entry has index front.
// Entries must be in arrival order. It can only be called on an empty, never used queue.
func (q *Queue) Restore(front uint64, entries []Entry) error {
	if !q.IsEmpty() || q.back != 0 {
		return ErrNotEmpty
	}
	var lastTimestamp uint64
	for i, e := range entries {
		if e.Timestamp < lastTimestamp {
			return fmt.Errorf("entry %d has timestamp %d lower than the previous one %d",
				front+uint64(i), e.Timestamp, lastTimestamp)
		}
		lastTimestamp = e.Timestamp
	}
	q.front = front
	q.back = front
	for _, e := range entries {
		q.Push(e)
	}
	return nil
}
