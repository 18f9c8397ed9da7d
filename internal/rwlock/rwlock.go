// Package rwlock provides a reader-priority reader/writer lock.
//
// Unlike sync.RWMutex, which blocks new readers once a writer is
// waiting, this lock lets readers keep piggybacking on the shared hold:
// the first reader takes the writer-exclusion mutex and the last reader
// releases it. A writer can therefore starve under continuous read
// load. That trade-off is deliberate and relied upon by the registries.
package rwlock

import "sync"

// Lock is a reader-priority reader/writer lock. The zero value is
// ready to use.
type Lock struct {
	mu      sync.Mutex // protects readers
	readers int
	writer  sync.Mutex // writer exclusion, held while any reader is active
}

// AcquireRead takes a shared hold. Any number of readers may hold the
// lock at once; the first reader blocks out writers.
func (l *Lock) AcquireRead() {
	l.mu.Lock()
	l.readers++
	if l.readers == 1 {
		l.writer.Lock()
	}
	l.mu.Unlock()
}

// ReleaseRead drops a shared hold. The last reader lets writers in.
func (l *Lock) ReleaseRead() {
	l.mu.Lock()
	l.readers--
	if l.readers == 0 {
		l.writer.Unlock()
	}
	l.mu.Unlock()
}

// AcquireWrite takes the exclusive hold, excluding all readers and
// other writers.
func (l *Lock) AcquireWrite() {
	l.writer.Lock()
}

// ReleaseWrite drops the exclusive hold.
func (l *Lock) ReleaseWrite() {
	l.writer.Unlock()
}
