// Package prompt lets a handler wait for the next message a user sends in a channel.
package prompt

import (
	"context"
	"sync"

	"github.com/Jacobbrewer1/discordgo"
)

// key identifies a pending wait.
type key struct {
	channelID string
	userID    string
}

// Waiter routes incoming messages to handlers waiting for them.
//
// Only one wait per user per channel is served at a time. A message with no waiter is ignored.
type Waiter struct {
	mu      sync.Mutex
	pending map[key][]chan string
}

// NewWaiter creates a new waiter.
func NewWaiter() *Waiter {
	return &Waiter{
		pending: make(map[key][]chan string),
	}
}

// Await blocks until the user sends a message in the channel or the context is done.
func (w *Waiter) Await(ctx context.Context, channelID, userID string) (string, error) {
	k := key{channelID: channelID, userID: userID}
	ch := make(chan string, 1)

	w.mu.Lock()
	w.pending[k] = append(w.pending[k], ch)
	w.mu.Unlock()

	select {
	case content := <-ch:
		return content, nil
	case <-ctx.Done():
		w.remove(k, ch)

		// A message may have been delivered between the deadline and the removal.
		select {
		case content := <-ch:
			return content, nil
		default:
		}
		return "", ctx.Err()
	}
}

func (w *Waiter) remove(k key, ch chan string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	waiting := w.pending[k]
	for i, c := range waiting {
		if c == ch {
			waiting = append(waiting[:i], waiting[i+1:]...)
			break
		}
	}

	if len(waiting) == 0 {
		delete(w.pending, k)
		return
	}
	w.pending[k] = waiting
}

// Dispatch hands a message to the oldest waiter for its author and channel.
// It reports whether the message was consumed.
func (w *Waiter) Dispatch(channelID, userID, content string) bool {
	k := key{channelID: channelID, userID: userID}

	w.mu.Lock()
	defer w.mu.Unlock()

	waiting := w.pending[k]
	if len(waiting) == 0 {
		return false
	}

	ch := waiting[0]
	if len(waiting) == 1 {
		delete(w.pending, k)
	} else {
		w.pending[k] = waiting[1:]
	}

	ch <- content // Buffered, never blocks.
	return true
}

// MessageCreateHandler returns a gateway handler feeding messages into the waiter.
func (w *Waiter) MessageCreateHandler() func(s *discordgo.Session, m *discordgo.MessageCreate) {
	return func(_ *discordgo.Session, m *discordgo.MessageCreate) {
		if m.Author == nil || m.Author.Bot {
			return
		}
		w.Dispatch(m.ChannelID, m.Author.ID, m.Content)
	}
}
