package usecase

import (
	"sync"

	"github.com/google/uuid"
)

// lotLocker menyerialisasi semua mutasi slot per parking lot, supaya urutan
// "cek slot available -> tulis booking -> ubah status -> hitung ulang agregat"
// tidak bisa interleave antar request untuk lot yang sama.
type lotLocker struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newLotLocker() *lotLocker {
	return &lotLocker{
		locks: make(map[uuid.UUID]*sync.Mutex),
	}
}

// Lock mengunci lot dan mengembalikan fungsi unlock-nya
func (l *lotLocker) Lock(lotID uuid.UUID) func() {
	l.mu.Lock()
	lock, ok := l.locks[lotID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[lotID] = lock
	}
	l.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
