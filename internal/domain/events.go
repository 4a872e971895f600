package domain

import (
	"sync"

	m "tracehook.dev/pkg/tracehook/internal/model"
)

const subscriberBuffer = 64

// broadcaster fans events out to subscribers. A subscriber whose buffer is
// full misses the event.
type broadcaster struct {
	mu   sync.Mutex
	subs map[chan m.Event]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[chan m.Event]struct{})}
}

func (b *broadcaster) subscribe() (<-chan m.Event, func()) {
	ch := make(chan m.Event, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	var once sync.Once

	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, ch)
			b.mu.Unlock()
			close(ch)
		})
	}
}

func (b *broadcaster) publish(ev m.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
