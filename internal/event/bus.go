package event

import (
	"github.com/halcyonwm/halcyon/internal/util/multiplexer"
)

// Bus fans events out to any number of named subscribers (REPL `watch`
// sessions). Subsystems never talk to a
// subscriber directly; they call Publish and move on, which keeps the
// single-threaded event-loop turn (spec.md §5) from ever blocking on a
// slow debug consumer beyond the plexer goroutine's own send.
type Bus struct {
	aggregate multiplexer.ManyToOne[Event]
	fanout    *multiplexer.OneToMany[Event]
}

func NewBus() *Bus {
	fanout := multiplexer.NewOneToMany[Event]()
	return &Bus{
		aggregate: multiplexer.NewManyToOne(fanout.GetSender()),
		fanout:    &fanout,
	}
}

// Run starts the fan-out goroutine. Call once, before Publish.
func (b *Bus) Run() {
	go b.fanout.StartPlexer()
}

// Publish broadcasts ev to every subscriber that is ready to receive it;
// a subscriber not currently receiving misses the event. Never blocks the
// caller longer than it takes the fan-out goroutine to drain one message.
func (b *Bus) Publish(ev Event) {
	_ = b.aggregate.Send(ev)
}

func (b *Bus) Subscribe(name string) (<-chan Event, error) {
	return b.fanout.MakeReceiver(name)
}

func (b *Bus) Unsubscribe(name string) {
	b.fanout.CloseReceiver(name)
}

func (b *Bus) Close() {
	b.fanout.CloseSender()
}
