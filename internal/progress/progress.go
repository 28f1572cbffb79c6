// Package progress defines the read-only live-feed contract a GUI panel or
// CLI progress bar would consume (spec.md's "file pickers and GUI panels...
// treated as external collaborators with named interfaces only";
// SPEC_FULL.md's Progress Reporting supplement). Generate publishes to a
// Broadcaster; nothing in this repository blocks on a subscriber.
package progress

import "sync"

// EventKind names the phase an Event reports on.
type EventKind uint8

const (
	EventSolverAttempt EventKind = iota
	EventValidatorRound
	EventRetry
	EventDone
)

func (k EventKind) String() string {
	switch k {
	case EventSolverAttempt:
		return "solver_attempt"
	case EventValidatorRound:
		return "validator_round"
	case EventRetry:
		return "retry"
	case EventDone:
		return "done"
	default:
		return "unknown"
	}
}

// Event is one progress notification, granular to a solver attempt or a
// validator fixed-point round.
type Event struct {
	Kind   EventKind
	Seed   uint64
	Attempt int
	Detail string
}

// Broadcaster fans an Event out to any number of subscriber channels. It is
// grounded on the teacher's internal/core.Broadcaster: publishing never
// blocks — a full subscriber channel simply drops the event rather than
// stalling the deterministic generation pipeline.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Event]bool
}

// NewBroadcaster returns an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Event]bool)}
}

// Subscribe registers a new channel and returns it along with an unsubscribe
// function.
func (b *Broadcaster) Subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)
	b.mu.Lock()
	b.subs[ch] = true
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.subs[ch] {
			delete(b.subs, ch)
			close(ch)
		}
	}
	return ch, unsubscribe
}

// Publish fans out ev to every current subscriber without blocking on any
// of them.
func (b *Broadcaster) Publish(ev Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
			// Subscriber is behind; the generation pipeline never waits.
		}
	}
}

// SubscriberCount reports the number of live subscriptions, mirroring the
// teacher's network.Broadcaster.SubscriberCount.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
