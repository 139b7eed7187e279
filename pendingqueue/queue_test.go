package pendingqueue

import (
	"testing"

	cdkcommon "github.com/0xPolygon/rollupchain/common"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"
)

var (
	producer = common.HexToAddress("0x01")
	stranger = common.HexToAddress("0x02")
)

func TestEmptyQueue(t *testing.T) {
	q := New(producer, cdkcommon.NewManualClock(10))
	require.True(t, q.IsEmpty())
	require.Equal(t, uint64(0), q.Len())

	_, err := q.Peek()
	require.ErrorIs(t, err, ErrEmptyQueue)
	_, err = q.PeekTimestamp()
	require.ErrorIs(t, err, ErrEmptyQueue)
	require.ErrorIs(t, q.Dequeue(), ErrEmptyQueue)
}

func TestEnqueueAccessControl(t *testing.T) {
	q := New(producer, cdkcommon.NewManualClock(10))
	_, _, err := q.Enqueue(stranger, []byte{0xab, 0xcd})
	require.ErrorIs(t, err, ErrUnauthorized)
	require.True(t, q.IsEmpty())
	require.Equal(t, producer, q.Producer())
}

func TestFIFOOrder(t *testing.T) {
	clock := cdkcommon.NewManualClock(100)
	q := New(producer, clock)

	for i := 0; i < 3; i++ {
		e, index, err := q.Enqueue(producer, []byte{byte(i)})
		require.NoError(t, err)
		require.Equal(t, uint64(i), index)
		require.Equal(t, clock.Now(), e.Timestamp)
		clock.Advance(5)
	}
	require.Equal(t, uint64(3), q.Len())
	require.Equal(t, uint64(0), q.Front())
	require.Equal(t, uint64(3), q.Back())

	for i := 0; i < 3; i++ {
		e, err := q.Peek()
		require.NoError(t, err)
		require.Equal(t, []byte{byte(i)}, e.Element)
		ts, err := q.PeekTimestamp()
		require.NoError(t, err)
		require.Equal(t, uint64(100+5*i), ts)
		require.NoError(t, q.Dequeue())
	}
	require.True(t, q.IsEmpty())
	require.Equal(t, q.Front(), q.Back())
}

func TestEnqueueCopiesElement(t *testing.T) {
	q := New(producer, cdkcommon.NewManualClock(1))
	element := []byte{1, 2, 3}
	_, _, err := q.Enqueue(producer, element)
	require.NoError(t, err)
	element[0] = 9

	e, err := q.Peek()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, e.Element)
}

func TestNextEntryDoesNotMutate(t *testing.T) {
	q := New(producer, cdkcommon.NewManualClock(1))
	e, index, err := q.NextEntry(producer, []byte{1})
	require.NoError(t, err)
	require.Equal(t, uint64(0), index)
	require.True(t, q.IsEmpty())

	q.Push(e)
	require.Equal(t, uint64(1), q.Len())
}

func TestRestore(t *testing.T) {
	q := New(producer, cdkcommon.NewManualClock(1))
	err := q.Restore(7, []Entry{
		{Element: []byte{1}, Timestamp: 10},
		{Element: []byte{2}, Timestamp: 12},
	})
	require.NoError(t, err)
	require.Equal(t, uint64(7), q.Front())
	require.Equal(t, uint64(9), q.Back())
	ts, err := q.PeekTimestamp()
	require.NoError(t, err)
	require.Equal(t, uint64(10), ts)

	require.ErrorIs(t, q.Restore(0, nil), ErrNotEmpty)

	unordered := New(producer, cdkcommon.NewManualClock(1))
	err = unordered.Restore(0, []Entry{
		{Element: []byte{1}, Timestamp: 10},
		{Element: []byte{2}, Timestamp: 9},
	})
	require.Error(t, err)
}

func TestTimestampsNeverGoBack(t *testing.T) {
	clock := cdkcommon.NewManualClock(100)
	q := New(producer, clock)
	first, _, err := q.Enqueue(producer, []byte{1})
	require.NoError(t, err)
	require.Equal(t, uint64(100), first.Timestamp)

	clock.Set(40)
	second, _, err := q.Enqueue(producer, []byte{2})
	require.NoError(t, err)
	require.Equal(t, uint64(100), second.Timestamp)
	require.NoError(t, q.Dequeue())
	require.NoError(t, q.Dequeue())

	third, _, err := q.Enqueue(producer, []byte{3})
	require.NoError(t, err)
	require.Equal(t, uint64(100), third.Timestamp)

	clock.Set(150)
	fourth, _, err := q.Enqueue(producer, []byte{4})
	require.NoError(t, err)
	require.Equal(t, uint64(150), fourth.Timestamp)

	restored := New(producer, cdkcommon.NewManualClock(1))
	require.NoError(t, restored.Restore(3, []Entry{{Element: []byte{4}, Timestamp: 150}}))
	next, _, err := restored.NextEntry(producer, []byte{5})
	require.NoError(t, err)
	require.Equal(t, uint64(150), next.Timestamp)
}
