package utility

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLocker_SerializesSameKey(t *testing.T) {
	locker := NewKeyLocker()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			locker.Lock("session-a")
			v := counter
			counter = v + 1
			locker.Unlock("session-a")
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, counter)
	assert.Equal(t, 0, locker.Len())
}

func TestKeyLocker_IndependentKeys(t *testing.T) {
	locker := NewKeyLocker()

	locker.Lock("a")
	done := make(chan struct{})
	go func() {
		locker.Lock("b")
		locker.Unlock("b")
		close(done)
	}()
	<-done
	assert.Equal(t, 1, locker.Len())
	locker.Unlock("a")
	assert.Equal(t, 0, locker.Len())
}

func TestKeyLocker_UnlockUnknownKey(t *testing.T) {
	locker := NewKeyLocker()
	assert.NotPanics(t, func() { locker.Unlock("nope") })
}
