package main

import "sync/atomic"

// Identity holds the bot's own user ID once the gateway reports it.
type Identity struct {
	id atomic.Value
}

func NewIdentity() *Identity {
	i := new(Identity)
	i.id.Store("")
	return i
}

func (i *Identity) Set(id string) {
	i.id.Store(id)
}

func (i *Identity) ID() string {
	return i.id.Load().(string)
}
