package engine

import "sync"

// eventLocks serializes the check-capacity-then-write section per event id.
// Operations on different events proceed in parallel; the sqlite driver has
// no row locking to lean on, so the exclusion lives here.
type eventLocks struct {
	mu    sync.Mutex
	locks map[uint]*sync.Mutex
}

func newEventLocks() *eventLocks {
	return &eventLocks{locks: make(map[uint]*sync.Mutex)}
}

// lock acquires the mutex for eventID and returns its unlock function.
func (l *eventLocks) lock(eventID uint) func() {
	l.mu.Lock()
	m, ok := l.locks[eventID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[eventID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
