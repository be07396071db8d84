package server

import (
	"sync"

	"github.com/leapstack-labs/bython/internal/engine"
)

// BuildEvent summarizes one watch rebuild for event stream clients.
type BuildEvent struct {
	RunID   string   `json:"run_id,omitempty"`
	Built   int      `json:"built"`
	Skipped int      `json:"skipped"`
	Failed  int      `json:"failed"`
	Files   []string `json:"files"`
	Error   string   `json:"error,omitempty"`
}

func newBuildEvent(res *engine.BuildResult, err error) BuildEvent {
	ev := BuildEvent{Files: []string{}}
	if err != nil {
		ev.Error = err.Error()
	}
	if res == nil {
		return ev
	}
	ev.RunID = res.RunID
	ev.Built = res.Built
	ev.Skipped = res.Skipped
	ev.Failed = res.Failed
	for _, f := range res.Files {
		ev.Files = append(ev.Files, f.Source)
	}
	return ev
}

// Notifier broadcasts build events to subscribed listeners.
// Listeners receive a ping and read the latest event with Latest; a slow
// listener misses intermediate events but never the last one.
type Notifier struct {
	mu        sync.RWMutex
	listeners map[chan struct{}]struct{}
	latest    *BuildEvent
}

// NewNotifier creates a notifier with no listeners.
func NewNotifier() *Notifier {
	return &Notifier{
		listeners: make(map[chan struct{}]struct{}),
	}
}

// Subscribe returns a channel that receives a ping per broadcast.
// The caller must call Unsubscribe when done.
func (n *Notifier) Subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	n.mu.Lock()
	n.listeners[ch] = struct{}{}
	n.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener channel and closes it.
func (n *Notifier) Unsubscribe(ch chan struct{}) {
	n.mu.Lock()
	delete(n.listeners, ch)
	n.mu.Unlock()
	close(ch)
}

// Broadcast records ev and pings every listener without blocking.
func (n *Notifier) Broadcast(ev BuildEvent) {
	n.mu.Lock()
	n.latest = &ev
	n.mu.Unlock()

	n.mu.RLock()
	defer n.mu.RUnlock()
	for ch := range n.listeners {
		select {
		case ch <- struct{}{}:
		default:
			// Already pinged; the listener reads the latest event.
		}
	}
}

// Latest returns the most recent event, if any.
func (n *Notifier) Latest() (BuildEvent, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if n.latest == nil {
		return BuildEvent{}, false
	}
	return *n.latest, true
}
