package service

import "sync"

// keyedMutex serializes work per key. The pull loop and the realtime
// listener may both merge revisions of the same note; locking by note ID
// keeps those merges ordered without stalling unrelated notes.
//
// Mutexes are never evicted; the map is bounded by the number of distinct
// note IDs seen by this process.
type keyedMutex struct {
	locks sync.Map // note ID -> *sync.Mutex
}

func (k *keyedMutex) lock(key string) *sync.Mutex {
	mu, _ := k.locks.LoadOrStore(key, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m
}
