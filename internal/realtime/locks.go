// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package realtime

import "sync"

// OwnerLocks serializes work per owner: at most one holder per owner id at
// a time, owners never wait on each other. Entries are dropped as soon as
// nobody holds or waits for them.
type OwnerLocks struct {
	mu    sync.Mutex
	locks map[string]*ownerLock
}

type ownerLock struct {
	mu   sync.Mutex
	refs int
}

func NewOwnerLocks() *OwnerLocks {
	return &OwnerLocks{locks: make(map[string]*ownerLock)}
}

// Lock blocks until the lock of ownerID is acquired and returns the
// function releasing it.
func (l *OwnerLocks) Lock(ownerID string) (unlock func()) {
	l.mu.Lock()
	lock, ok := l.locks[ownerID]
	if !ok {
		lock = &ownerLock{}
		l.locks[ownerID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, ownerID)
		}
		l.mu.Unlock()
	}
}

// size returns the number of owners currently locked or waited on.
func (l *OwnerLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
