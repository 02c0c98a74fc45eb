package pubsub

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHub_PublishReachesSubscribers(t *testing.T) {
	hub := NewHub[int]()

	var got1, got2 []int
	hub.Subscribe(func(v int) { got1 = append(got1, v) })
	hub.Subscribe(func(v int) { got2 = append(got2, v) })

	hub.Publish(1)
	hub.Publish(2)

	assert.Equal(t, []int{1, 2}, got1)
	assert.Equal(t, []int{1, 2}, got2)
}

func TestHub_LateSubscriberMissesPastValues(t *testing.T) {
	hub := NewHub[string]()
	hub.Publish("before")

	var got []string
	hub.Subscribe(func(v string) { got = append(got, v) })
	hub.Publish("after")

	assert.Equal(t, []string{"after"}, got)
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub[int]()

	calls := 0
	unsubscribe := hub.Subscribe(func(int) { calls++ })
	other := hub.Subscribe(func(int) {})
	assert.Equal(t, 2, hub.Len())

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 1, hub.Len())

	hub.Publish(1)
	assert.Equal(t, 0, calls)

	other()
	assert.Equal(t, 0, hub.Len())
}

func TestHub_UnsubscribeDuringPublish(t *testing.T) {
	hub := NewHub[int]()

	var unsubscribe func()
	calls := 0
	unsubscribe = hub.Subscribe(func(int) {
		calls++
		unsubscribe()
	})

	hub.Publish(1)
	hub.Publish(2)

	assert.Equal(t, 1, calls)
}

func TestHub_ConcurrentSubscribePublish(t *testing.T) {
	hub := NewHub[int]()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			unsub := hub.Subscribe(func(int) {})
			unsub()
		}()
		go func(v int) {
			defer wg.Done()
			hub.Publish(v)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 0, hub.Len())
}
