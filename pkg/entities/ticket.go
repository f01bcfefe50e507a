package entities

import (
	"strings"
)

// TicketKind is the kind of ticket channel.
type TicketKind string

const (
	// TicketKindSupport is a support ticket opened from the ticket panel.
	TicketKindSupport TicketKind = "ticket"

	// TicketKindPurchase is a purchase ticket opened from a shop listing.
	TicketKindPurchase TicketKind = "purchase"
)

// ClosedPrefix is prepended to the channel name of a closed ticket.
const ClosedPrefix = "closed-"

// maxItemSlug is the maximum length of the item part of a purchase channel name.
const maxItemSlug = 50

// Ticket describes a ticket channel. Tickets are not persisted, the channel itself is the record.
type Ticket struct {
	// Kind is the kind of ticket.
	Kind TicketKind

	// Username is the username of the user that created the ticket.
	Username string

	// ItemTitle is the title of the purchased item. Only set for purchase tickets.
	ItemTitle string
}

// Name returns the channel name for the ticket.
// For example, a support ticket for "wolf" is "ticket-wolf" and a purchase of "Door Kit" is "purchase-door-kit-wolf".
func (t *Ticket) Name() string {
	name := string(t.Kind) + "-" + t.Username
	if t.Kind == TicketKindPurchase {
		slug := strings.ReplaceAll(strings.ToLower(t.ItemTitle), " ", "-")
		if r := []rune(slug); len(r) > maxItemSlug {
			slug = string(r[:maxItemSlug])
		}
		name = string(t.Kind) + "-" + slug + "-" + t.Username
	}
	return SanitizeChannelName(name)
}

// IsTicketChannel reports whether the channel name carries a ticket prefix.
func IsTicketChannel(name string) bool {
	return strings.HasPrefix(name, string(TicketKindSupport)+"-") ||
		strings.HasPrefix(name, string(TicketKindPurchase)+"-")
}

// SanitizeChannelName keeps only ASCII letters, digits, hyphens and underscores.
func SanitizeChannelName(name string) string {
	b := new(strings.Builder)
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}
