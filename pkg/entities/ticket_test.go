package entities

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTicket_Name(t *testing.T) {
	tests := []struct {
		name   string
		ticket Ticket
		want   string
	}{
		{
			name:   "support",
			ticket: Ticket{Kind: TicketKindSupport, Username: "wolf"},
			want:   "ticket-wolf",
		},
		{
			name:   "support strips punctuation",
			ticket: Ticket{Kind: TicketKindSupport, Username: "w.o!l f"},
			want:   "ticket-wolf",
		},
		{
			name:   "purchase",
			ticket: Ticket{Kind: TicketKindPurchase, Username: "wolf", ItemTitle: "Door Kit (v2)"},
			want:   "purchase-door-kit-v2-wolf",
		},
		{
			name: "purchase truncates long titles",
			ticket: Ticket{
				Kind:      TicketKindPurchase,
				Username:  "wolf",
				ItemTitle: strings.Repeat("a", 60),
			},
			want: "purchase-" + strings.Repeat("a", 50) + "-wolf",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.ticket.Name())
		})
	}
}

func TestIsTicketChannel(t *testing.T) {
	require.True(t, IsTicketChannel("ticket-wolf"))
	require.True(t, IsTicketChannel("purchase-door-kit-wolf"))
	require.False(t, IsTicketChannel("closed-ticket-wolf"))
	require.False(t, IsTicketChannel("general"))
}
