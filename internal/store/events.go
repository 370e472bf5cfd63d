package store

import gosync "sync"

// Collection names the entity collection an Event refers to.
type Collection string

const (
	CollectionProjects    Collection = "projects"
	CollectionCheckpoints Collection = "checkpoints"
)

// Op is the kind of change an Event reports.
type Op string

const (
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// Event describes one committed change. ProjectID is always the owning
// project, so checkpoint events can be matched to the project on screen.
type Event struct {
	Collection Collection
	Op         Op
	ProjectID  string
	ID         string
}

// subscriberBuffer is the per-subscriber channel capacity.
const subscriberBuffer = 32

// broker fans committed changes out to subscribers.
type broker struct {
	mu     gosync.Mutex
	nextID int
	subs   map[int]chan Event
	closed bool
}

func newBroker() *broker {
	return &broker{subs: make(map[int]chan Event)}
}

// subscribe registers a new buffered subscriber channel.
func (b *broker) subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once gosync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// publish delivers events to every subscriber without blocking. A subscriber
// whose buffer is full misses the event; it still has an undelivered
// notification queued, which is enough to trigger a reload.
func (b *broker) publish(events ...Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		for _, ev := range events {
			select {
			case ch <- ev:
			default:
			}
		}
	}
}

// close closes every subscriber channel; later subscriptions get a closed channel.
func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
