package services

import "sync"

// keyedLock hands out one mutex per string key. Booking commits lock the
// (route, journeyDate) key so at most one writer runs the
// re-query/validate/persist sequence for a given route and day at a time.
// Entries are refcounted and dropped when the last holder releases.
type keyedLock struct {
	mu      sync.Mutex
	entries map[string]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newKeyedLock() *keyedLock {
	return &keyedLock{entries: map[string]*lockEntry{}}
}

func (l *keyedLock) Lock(key string) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if !ok {
		e = &lockEntry{}
		l.entries[key] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
}

func (l *keyedLock) Unlock(key string) {
	l.mu.Lock()
	e, ok := l.entries[key]
	if ok {
		e.refs--
		if e.refs == 0 {
			delete(l.entries, key)
		}
	}
	l.mu.Unlock()

	if ok {
		e.mu.Unlock()
	}
}
