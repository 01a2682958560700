package tag

import (
	"sync"
	"testing"

	"github.com/danmuck/plcstub/internal/testutil/testlog"
	"github.com/stretchr/testify/require"
)

func TestNewNodeIsFullyInitialized(t *testing.T) {
	testlog.Start(t)
	n := NewNode(3, "Foo", 4, 10)
	require.Equal(t, int32(3), n.ID)
	require.Equal(t, "DUMMY_AQUA_DATA_Foo", n.Name)
	require.Equal(t, 40, n.Size())
	require.Equal(t, make([]byte, 40), n.Snapshot())
}

func TestFireWithoutCallback(t *testing.T) {
	testlog.Start(t)
	n := NewNode(1, "x", 1, 1)
	l := n.Lock()
	defer l.Release()
	require.False(t, l.Fire(EventReadStarted, StatusOK))
}

func TestCallbackReplaceAndClear(t *testing.T) {
	testlog.Start(t)
	n := NewNode(7, "x", 1, 1)
	var first, second []Event
	n.SetCallback(func(id int32, ev Event, status Status) {
		require.Equal(t, int32(7), id)
		first = append(first, ev)
	})
	n.SetCallback(func(id int32, ev Event, status Status) {
		second = append(second, ev)
	})

	l := n.Lock()
	require.True(t, l.Fire(EventWriteStarted, StatusOK))
	l.Release()
	require.Empty(t, first)
	require.Equal(t, []Event{EventWriteStarted}, second)

	n.SetCallback(nil)
	l = n.Lock()
	require.False(t, l.Fire(EventWriteCompleted, StatusOK))
	l.Release()
	require.Len(t, second, 1)
}

func TestSnapshotIsACopy(t *testing.T) {
	testlog.Start(t)
	n := NewNode(1, "x", 2, 2)
	snap := n.Snapshot()
	snap[0] = 0xFF

	l := n.Lock()
	require.Equal(t, byte(0), l.Buffer()[0])
	l.Release()
}

func TestLockSerializesAccess(t *testing.T) {
	testlog.Start(t)
	n := NewNode(1, "counter", 8, 1)
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				l := n.Lock()
				l.Buffer()[0]++
				l.Release()
			}
		}()
	}
	wg.Wait()
	// 1600 increments of a byte wrap to 1600 % 256.
	require.Equal(t, byte(1600%256), n.Snapshot()[0])
}

func TestEventAndStatusStrings(t *testing.T) {
	testlog.Start(t)
	require.Equal(t, "read_started", EventReadStarted.String())
	require.Equal(t, "aborted", EventAborted.String())
	require.Equal(t, "event(9)", Event(9).String())
	require.Equal(t, "bad_param", StatusBadParam.String())
	require.Equal(t, "status(-1)", Status(-1).String())
}
