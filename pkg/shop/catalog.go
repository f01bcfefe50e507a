package shop

import (
	"sync"
	"time"
)

// ListingTTL is how long a listing can be bought after it is posted.
const ListingTTL = 180 * time.Second

// Listing is an item posted in a channel.
type Listing struct {
	ChannelID string
	MessageID string
	Item      *Item
}

type entry struct {
	listing *Listing
	timer   *time.Timer
}

// Catalog holds the listings that can still be bought. Listings are kept in memory only.
type Catalog struct {
	mu       sync.Mutex
	ttl      time.Duration
	entries  map[string]*entry
	onExpire func(*Listing)
}

// NewCatalog creates a catalog. onExpire is called, if set, once a listing expires.
func NewCatalog(ttl time.Duration, onExpire func(*Listing)) *Catalog {
	return &Catalog{
		ttl:      ttl,
		entries:  make(map[string]*entry),
		onExpire: onExpire,
	}
}

// Put adds a listing, replacing any listing on the same message.
func (c *Catalog) Put(listing *Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[listing.MessageID]; ok {
		old.timer.Stop()
	}

	e := &entry{listing: listing}
	e.timer = time.AfterFunc(c.ttl, func() {
		c.expire(listing.MessageID, e)
	})
	c.entries[listing.MessageID] = e
}

// Get returns the listing posted as the message.
func (c *Catalog) Get(messageID string) (*Listing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[messageID]
	if !ok {
		return nil, false
	}
	return e.listing, true
}

// remove drops a listing without calling the expiry callback.
func (c *Catalog) remove(messageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[messageID]; ok {
		e.timer.Stop()
		delete(c.entries, messageID)
	}
}

// Len returns the number of live listings.
func (c *Catalog) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Catalog) expire(messageID string, e *entry) {
	c.mu.Lock()
	current, ok := c.entries[messageID]
	if !ok || current != e {
		c.mu.Unlock()
		return
	}
	delete(c.entries, messageID)
	c.mu.Unlock()

	if c.onExpire != nil {
		c.onExpire(e.listing)
	}
}
