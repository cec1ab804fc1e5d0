package multiplexer

import (
	"errors"
	"sync"
)

type OneToMany[T any] struct {
	inbound   chan T
	outbound  map[string]chan T // Use map here to give names to outbound channels
	lock      sync.Mutex
	closeChan chan any
	closed    bool
}

func NewOneToMany[T any]() OneToMany[T] {
	return OneToMany[T]{
		inbound:   make(chan T),
		outbound:  make(map[string]chan T),
		lock:      sync.Mutex{},
		closeChan: make(chan any),
		closed:    false,
	}
}

// GetSender gets the channel to send things into.
func (o *OneToMany[T]) GetSender() chan T {
	return o.inbound
}

// MakeReceiver creates a new receiver for the multiplexer to send messages to.
// Please do not close this manually, instead use the CloseReceiver func.
func (o *OneToMany[T]) MakeReceiver(name string) (chan T, error) {
	if o.closed {
		return nil, errors.New("multiplexer has been closed")
	}
	rec := make(chan T)

	o.lock.Lock()
	defer o.lock.Unlock()
	if _, ok := o.outbound[name]; ok {
		return nil, errors.New("receiver with that name already exists")
	}
	o.outbound[name] = rec

	return rec, nil
}

// CloseReceiver closes a receiver channel with the given name and removes it from the multiplexer.
func (o *OneToMany[T]) CloseReceiver(name string) {
	if o.closed {
		return
	}
	o.lock.Lock()
	if val, ok := o.outbound[name]; ok {
		close(val)
		delete(o.outbound, name)
	}
	o.lock.Unlock()
}

// StartPlexer starts this one to many multiplexer.
// Intended to run as a goroutine (`go plexer.StartPlexer()`).
func (o *OneToMany[T]) StartPlexer() {
	for {
		select {
		case msg, ok := <-o.inbound:
			if !ok {
				return
			}
			// Non-blocking send: a receiver that is not ready drops this
			// message instead of stalling the sender (and CloseReceiver).
			o.lock.Lock()
			for _, c := range o.outbound {
				select {
				case c <- msg:
				default:
				}
			}
			o.lock.Unlock()
		case <-o.closeChan:
			o.lock.Lock()
			for _, c := range o.outbound {
				close(c)
			}
			close(o.inbound)
			o.closed = true
			o.lock.Unlock()
			return
		}
	}
}

// CloseSender closes the sender and all receiver channels, marks the plexer as closed and stops the distribution goroutine (all by sending one signal).
func (o *OneToMany[T]) CloseSender() {
	o.closeChan <- 1
}
