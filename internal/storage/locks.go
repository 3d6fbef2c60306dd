package storage

import "sync"

// Locks serializes writers per logical document. The store itself
// imposes no cross-call mutual exclusion; accessors acquire a key of
// the form "<company>/<collection>" around their read-modify-write
// cycle so two writers to one collection never interleave, while
// independent companies and collections proceed concurrently.
type Locks struct {
	mu   sync.Mutex
	keys map[string]*sync.Mutex
}

func NewLocks() *Locks { return &Locks{keys: make(map[string]*sync.Mutex)} }

// Acquire blocks until the key's writer slot is free and returns the
// release func. Key mutexes are never evicted; the key space (company
// count x 3 collections) is small.
func (l *Locks) Acquire(key string) (release func()) {
	l.mu.Lock()
	m, ok := l.keys[key]
	if !ok {
		m = &sync.Mutex{}
		l.keys[key] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
