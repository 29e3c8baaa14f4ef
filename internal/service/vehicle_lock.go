package service

import "sync"

// vehicleLocks serializes reservation creation per vehicle so two concurrent
// requests for the same vehicle cannot both pass the overlap check before
// either insert commits.
type vehicleLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newVehicleLocks() *vehicleLocks {
	return &vehicleLocks{locks: make(map[string]*sync.Mutex)}
}

func (v *vehicleLocks) get(key string) *sync.Mutex {
	v.mu.Lock()
	defer v.mu.Unlock()
	l, ok := v.locks[key]
	if !ok {
		l = &sync.Mutex{}
		v.locks[key] = l
	}
	return l
}

// Lock acquires the mutex for the given vehicle and returns the unlock func.
func (v *vehicleLocks) Lock(key string) func() {
	l := v.get(key)
	l.Lock()
	return l.Unlock
}
