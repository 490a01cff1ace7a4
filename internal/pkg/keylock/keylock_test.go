package keylock_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"workorders/internal/pkg/keylock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdered(t *testing.T) {
	got := keylock.Ordered("stock:b/p2", "reservation:wo-1", "stock:b/p1", "stock:b/p2")

	assert.Equal(t, []string{"reservation:wo-1", "stock:b/p1", "stock:b/p2"}, got)
}

func TestLocker_UnlockIsIdempotent(t *testing.T) {
	locks := keylock.New()

	unlock := locks.Lock("a", "b")
	assert.Equal(t, 2, locks.Size())

	unlock()
	unlock()
	assert.Equal(t, 0, locks.Size())

	// keys are free again
	again := locks.Lock("a")
	again()
}

func TestLocker_SerializesSameKey(t *testing.T) {
	locks := keylock.New()
	var inside atomic.Int32
	var maxInside atomic.Int32

	var wg sync.WaitGroup
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("workorder:1")
			defer unlock()

			n := inside.Add(1)
			if n > maxInside.Load() {
				maxInside.Store(n)
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside.Load())
	assert.Equal(t, 0, locks.Size())
}

func TestLocker_DisjointKeysDoNotBlock(t *testing.T) {
	locks := keylock.New()
	unlockA := locks.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a disjoint key blocked")
	}
}

func TestLocker_OverlappingSetsInReverseOrderDoNotDeadlock(t *testing.T) {
	locks := keylock.New()

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var unlock func()
			if i%2 == 0 {
				unlock = locks.Lock("x", "y", "z")
			} else {
				unlock = locks.Lock("z", "y", "x")
			}
			unlock()
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		require.FailNow(t, "deadlock acquiring overlapping key sets")
	}
	assert.Equal(t, 0, locks.Size())
}
