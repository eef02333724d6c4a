package pkg

import "sync"

// KeyLock serializes work per key. Each session id gets its own mutex so
// operations on different sessions never block each other. Entries are
// reference counted and removed once the last holder unlocks.
type KeyLock struct {
	mu    sync.Mutex
	locks map[int64]*keyLockEntry
}

type keyLockEntry struct {
	mu   sync.Mutex
	refs int
}

func NewKeyLock() *KeyLock {
	return &KeyLock{
		locks: make(map[int64]*keyLockEntry),
	}
}

func (that *KeyLock) Lock(key int64) {
	that.mu.Lock()
	entry, ok := that.locks[key]
	if !ok {
		entry = &keyLockEntry{}
		that.locks[key] = entry
	}
	entry.refs++
	that.mu.Unlock()

	entry.mu.Lock()
}

func (that *KeyLock) Unlock(key int64) {
	that.mu.Lock()
	entry, ok := that.locks[key]
	if ok {
		entry.refs--
		if entry.refs == 0 {
			delete(that.locks, key)
		}
	}
	that.mu.Unlock()

	if ok {
		entry.mu.Unlock()
	}
}
