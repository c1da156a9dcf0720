package event

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestEventBus_PublishDeliversToSubscribers(t *testing.T) {
	bus := NewEventBus()
	defer bus.Shutdown()

	var (
		mu       sync.Mutex
		received []interface{}
		wg       sync.WaitGroup
	)
	wg.Add(2)
	handler := func(payload interface{}) {
		mu.Lock()
		received = append(received, payload)
		mu.Unlock()
		wg.Done()
	}
	bus.Subscribe(CommentSubmitted, handler)
	bus.Subscribe(CommentSubmitted, handler)

	require.True(t, bus.Publish(CommentSubmitted, "c1"))
	waitTimeout(t, &wg)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []interface{}{"c1", "c1"}, received)
}

func TestEventBus_UnsubscribedTopicIsIgnored(t *testing.T) {
	bus := NewEventBus()
	assert.True(t, bus.Publish(ReplySubmitted, 1))
	bus.Shutdown()
}

func TestEventBus_PublishAfterShutdown(t *testing.T) {
	bus := NewEventBus()
	bus.Shutdown()
	bus.Shutdown()

	assert.False(t, bus.Publish(SessionOpened, "s"))
}

func TestEventBus_FullChannelDropsEvent(t *testing.T) {
	bus := NewEventBusWithSize(1, 1)
	block := make(chan struct{})
	started := make(chan struct{})
	var once sync.Once
	bus.Subscribe(ContentReloaded, func(payload interface{}) {
		once.Do(func() { close(started) })
		<-block
	})

	require.True(t, bus.Publish(ContentReloaded, 1))
	<-started
	require.True(t, bus.Publish(ContentReloaded, 2))
	assert.False(t, bus.Publish(ContentReloaded, 3))

	close(block)
	bus.Shutdown()
}

func TestEventBus_HandlerPanicDoesNotStopWorker(t *testing.T) {
	bus := NewEventBusWithSize(1, 4)
	defer bus.Shutdown()

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe(SessionOpened, func(payload interface{}) {
		if payload == "boom" {
			panic("boom")
		}
		wg.Done()
	})

	bus.Publish(SessionOpened, "boom")
	bus.Publish(SessionOpened, "ok")
	waitTimeout(t, &wg)
}

func waitTimeout(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for handlers")
	}
}
