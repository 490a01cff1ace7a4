// Package keylock provides named mutexes acquired in a fixed global order.
//
// A Locker hands out one mutex per key. Lock takes any number of keys,
// removes duplicates, sorts them and acquires them one by one, so two callers
// locking overlapping key sets can never deadlock. Entries are reference
// counted and dropped once no caller holds or waits for them.
//
// Example:
//
//	locks := keylock.New()
//	unlock := locks.Lock("stock:br_main/p2", "stock:br_main/p1")
//	defer unlock()
package keylock

import (
	"slices"
	"sync"
)

type entry struct {
	mu   sync.Mutex
	refs int
}

// Locker is safe for concurrent use. The zero value is not usable; call New.
type Locker struct {
	mu      sync.Mutex
	entries map[string]*entry
}

func New() *Locker {
	return &Locker{entries: make(map[string]*entry)}
}

// Lock blocks until every key is held and returns the function that releases
// them. The returned function may be called more than once.
func (l *Locker) Lock(keys ...string) (unlock func()) {
	ordered := Ordered(keys...)
	held := make([]*entry, 0, len(ordered))
	for _, key := range ordered {
		e := l.acquire(key)
		e.mu.Lock()
		held = append(held, e)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].mu.Unlock()
				l.release(ordered[i])
			}
		})
	}
}

// Size reports the number of keys currently held or awaited.
func (l *Locker) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

func (l *Locker) acquire(key string) *entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		e = &entry{}
		l.entries[key] = e
	}
	e.refs++
	return e
}

func (l *Locker) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs == 0 {
		delete(l.entries, key)
	}
}

// Ordered returns the sorted, de-duplicated key set Lock acquires.
func Ordered(keys ...string) []string {
	out := slices.Clone(keys)
	slices.Sort(out)
	return slices.Compact(out)
}
