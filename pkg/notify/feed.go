package notify

import "sync"

// Multi fans one notice out to several notifiers, so the same workflow
// event can reach both the WebSocket hub and the SSE feed.
type Multi []Notifier

func (m Multi) Push(n Notice) {
	for _, t := range m {
		t.Push(n)
	}
}

// feedBuffer is how many notices a slow subscriber may lag before drops.
const feedBuffer = 16

// Feed is a subscribable notice stream. Each subscriber gets its own
// buffered channel; a subscriber that stops reading loses notices rather
// than blocking the workflows.
type Feed struct {
	mu   sync.Mutex
	subs map[chan Notice]struct{}
}

func NewFeed() *Feed {
	return &Feed{subs: map[chan Notice]struct{}{}}
}

func (f *Feed) Push(n Notice) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for ch := range f.subs {
		select {
		case ch <- n:
		default:
		}
	}
}

// Subscribe registers a new listener. The returned cancel func must be
// called when the listener goes away.
func (f *Feed) Subscribe() (<-chan Notice, func()) {
	ch := make(chan Notice, feedBuffer)

	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()

	cancel := func() {
		f.mu.Lock()
		delete(f.subs, ch)
		f.mu.Unlock()
	}
	return ch, cancel
}
