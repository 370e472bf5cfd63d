// Package watch turns store change events into Bubble Tea messages so open
// views can reload after any write.
package watch

import (
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/project-tracker/internal/store"
)

// DefaultWindow is how long the watcher waits for more events before
// delivering a batch.
const DefaultWindow = 20 * time.Millisecond

// Subscriber is the part of store.Store the watcher needs.
type Subscriber interface {
	Subscribe() (<-chan store.Event, func())
}

// ChangeMsg is a tea.Msg carrying one batch of store events.
type ChangeMsg struct {
	Events []store.Event
}

// Touches reports whether any event in the batch hit collection c.
func (m ChangeMsg) Touches(c store.Collection) bool {
	for _, ev := range m.Events {
		if ev.Collection == c {
			return true
		}
	}
	return false
}

// TouchesProject reports whether the batch changed project id or any of its
// checkpoints.
func (m ChangeMsg) TouchesProject(id string) bool {
	for _, ev := range m.Events {
		if ev.ProjectID == id {
			return true
		}
	}
	return false
}

// ProjectDeleted reports whether project id was removed in this batch.
func (m ChangeMsg) ProjectDeleted(id string) bool {
	for _, ev := range m.Events {
		if ev.Collection == store.CollectionProjects && ev.Op == store.OpDelete && ev.ID == id {
			return true
		}
	}
	return false
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithWindow sets the batching window. Zero delivers every event on its own.
func WithWindow(d time.Duration) Option {
	return func(w *Watcher) {
		w.window = d
	}
}

// Watcher forwards events from one store subscription.
type Watcher struct {
	source   Subscriber
	window   time.Duration
	resultCh chan ChangeMsg
	stopCh   chan struct{}
	mu       gosync.Mutex
	running  bool
	stopped  bool
}

// New creates a Watcher over src. Nothing is subscribed until Start.
func New(src Subscriber, opts ...Option) *Watcher {
	w := &Watcher{
		source:   src,
		window:   DefaultWindow,
		resultCh: make(chan ChangeMsg, 16),
		stopCh:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start subscribes to the store and returns a command that waits for the
// first batch. It returns nil if the watcher already started or stopped.
func (w *Watcher) Start() tea.Cmd {
	w.mu.Lock()
	if w.running || w.stopped {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	events, cancel := w.source.Subscribe()
	go w.forward(events, cancel)

	return w.Next()
}

// Stop ends the subscription. Pending Next commands return nil.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	w.stopped = true
	close(w.stopCh)
	if !w.running {
		close(w.resultCh)
	}
}

// Next returns a tea.Cmd that waits for the next batch. Call it again after
// handling each ChangeMsg to keep listening.
func (w *Watcher) Next() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-w.resultCh
		if !ok {
			return nil
		}
		return msg
	}
}

func (w *Watcher) forward(events <-chan store.Event, cancel func()) {
	defer close(w.resultCh)
	defer cancel()

	for {
		select {
		case <-w.stopCh:
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			batch, open := w.collect(ev, events)
			if !w.send(ChangeMsg{Events: batch}) || !open {
				return
			}
		}
	}
}

// collect gathers events arriving within the window after first. The bool
// is false once the event channel has closed.
func (w *Watcher) collect(first store.Event, events <-chan store.Event) ([]store.Event, bool) {
	batch := []store.Event{first}
	if w.window <= 0 {
		return batch, true
	}

	timer := time.NewTimer(w.window)
	defer timer.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return batch, false
			}
			batch = append(batch, ev)
		case <-timer.C:
			return batch, true
		case <-w.stopCh:
			return batch, true
		}
	}
}

func (w *Watcher) send(msg ChangeMsg) bool {
	select {
	case w.resultCh <- msg:
		return true
	case <-w.stopCh:
		return false
	}
}
