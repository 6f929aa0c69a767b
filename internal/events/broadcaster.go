package events

import "sync"

// Actions published on post changes.
const (
	ActionNewPost    = "newPost"
	ActionUpdatePost = "updatePost"
	ActionDeletePost = "deletePost"
)

// Event is what listeners receive. Post carries the full post for new/update
// and just the post id for delete.
type Event struct {
	Action string `json:"action"`
	Post   any    `json:"post"`
}

const subscriberBuffer = 16

// Broadcaster fans post-change events out to every connected listener.
// Delivery is at-most-once and best effort: there is no persistence or
// replay, and a subscriber whose buffer is full misses the event rather
// than blocking the publisher.
//
// One Broadcaster is constructed at startup and handed to whoever needs it;
// there is no package-level instance.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener disconnects; after cancel the channel is closed.
func (b *Broadcaster) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, subscriberBuffer)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish sends the event to all current subscribers without blocking.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// slow listener, drop
		}
	}
}
