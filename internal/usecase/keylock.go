package usecase

import "sync"

// keyLocks hands out one mutex per key so read-modify-write cycles on the
// same stored record run one at a time
type keyLocks struct {
	m sync.Map
}

// lock blocks until key is free and returns the matching unlock
func (k *keyLocks) lock(key string) func() {
	v, _ := k.m.LoadOrStore(key, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
