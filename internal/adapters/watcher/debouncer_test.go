package watcher_test

import (
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/quire/internal/adapters/watcher"
)

type batches struct {
	mu  sync.Mutex
	got [][]string
}

func (b *batches) record(paths []string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.got = append(b.got, paths)
}

func (b *batches) snapshot() [][]string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([][]string(nil), b.got...)
}

func TestDebouncer_CoalescesAndSorts(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/project/b.qd")
		d.Add("/project/a.qd")
		d.Add("/project/b.qd")

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()

		require.Len(t, b.snapshot(), 1)
		assert.Equal(t, []string{"/project/a.qd", "/project/b.qd"}, b.snapshot()[0])
	})
}

func TestDebouncer_TimerReset(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/project/a.qd")
		time.Sleep(60 * time.Millisecond)
		d.Add("/project/b.qd")
		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, b.snapshot())

		time.Sleep(60 * time.Millisecond)
		synctest.Wait()
		require.Len(t, b.snapshot(), 1)
		assert.Len(t, b.snapshot()[0], 2)
	})
}

func TestDebouncer_Flush(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Flush()
		assert.Empty(t, b.snapshot())

		d.Add("/project/a.qd")
		d.Flush()
		require.Len(t, b.snapshot(), 1)

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Len(t, b.snapshot(), 1, "the cancelled window must not fire again")
	})
}

func TestDebouncer_Stop(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		var b batches
		d := watcher.NewDebouncer(100*time.Millisecond, b.record)

		d.Add("/project/a.qd")
		d.Stop()

		time.Sleep(150 * time.Millisecond)
		synctest.Wait()
		assert.Empty(t, b.snapshot())

		d.Flush()
		assert.Empty(t, b.snapshot())
	})
}

func TestDebouncer_NilCallback(t *testing.T) {
	synctest.Test(t, func(_ *testing.T) {
		d := watcher.NewDebouncer(50*time.Millisecond, nil)
		d.Add("/project/a.qd")
		time.Sleep(100 * time.Millisecond)
		synctest.Wait()
		d.Flush()
	})
}
