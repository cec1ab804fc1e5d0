package multiplexer

import "errors"

// ManyToOne collapses every subsystem's event.Bus.Publish call onto the
// single channel the fan-out goroutine in one-to-many.go reads from.
// Channels already do this, but a send on a closed channel panics;
// wrapping the channel behind a closed flag makes a Send after this
// plexer's own Close return an error instead. Bus.Close does not go
// through ManyToOne.Close: it closes the shared channel via
// OneToMany.CloseSender, which leaves this flag unset.
type ManyToOne[T any] struct {
	outbound chan T
	closed   bool
}

// NewManyToOne creates a new ManyToOne multiplexer.
// The given channel will be where all messages will be sent to.
func NewManyToOne[T any](receiver chan T) ManyToOne[T] {
	return ManyToOne[T]{
		outbound: receiver,
		closed:   false,
	}
}

// Send a message to this many to one plexer.
// If closed, the message won't get sent.
//
// Send and Close assume a single caller (the event loop's own
// goroutine calls Publish; Close only runs after the loop returns),
// so the closed check and the send below are not protected by a lock.
func (m *ManyToOne[T]) Send(msg T) error {
	if m.closed {
		return errors.New("multiplexer has been closed")
	}
	m.outbound <- msg
	return nil
}

// Close closes the channel and marks the plexer as closed.
func (m *ManyToOne[T]) Close() {
	close(m.outbound)
	m.closed = true
}
