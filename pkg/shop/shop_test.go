package shop

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/Jacobbrewer1/discordgo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "$19.99", want: "19.99"},
		{in: "€ 5", want: "5"},
		{in: "£12", want: "12"},
		{in: "only 25 credits", want: "25"},
		{in: "10.5 or 20", want: "10.5"},
		{in: "free", want: "0"},
		{in: "", want: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.True(t, decimal.RequireFromString(tt.want).Equal(ParsePrice(tt.in)), "got %s", ParsePrice(tt.in))
		})
	}
}

func TestPriceTier(t *testing.T) {
	require.Equal(t, "💰", priceTier(decimal.Zero))
	require.Equal(t, "💰", priceTier(decimal.RequireFromString("14.99")))
	require.Equal(t, "💰💰", priceTier(decimal.NewFromInt(15)))
	require.Equal(t, "💰💰💰", priceTier(decimal.NewFromInt(30)))
}

func TestNewItem_UnknownCategory(t *testing.T) {
	item := NewItem("", "$5", "Sound", "9")
	require.Equal(t, DefaultCategory, item.Category)
	require.Equal(t, "Product", item.Title)
	require.True(t, decimal.NewFromInt(5).Equal(item.Price))
}

func TestListingEmbed(t *testing.T) {
	item := NewItem("Inventory System", "$29.99", "Actor Component", "9")
	item.Description = "Drop-in inventory"
	item.DetailedInfo = "•Grid•Stacks"
	item.MainImageURL = "https://cdn.example/main.png"
	item.Screenshots = []string{"https://cdn.example/1.png", "https://cdn.example/2.png"}

	embed := ListingEmbed(item, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))
	require.Equal(t, "🛒 Inventory System", embed.Title)
	require.Equal(t, 0x3498db, embed.Color)
	require.Equal(t, "2024-01-02T03:04:05Z", embed.Timestamp)
	require.Equal(t, "https://cdn.example/main.png", embed.Image.URL)
	require.Len(t, embed.Fields, 4)
	require.Equal(t, "**💰💰 $29.99**", embed.Fields[1].Value)
	require.Equal(t, "• Grid• Stacks", embed.Fields[2].Value)
	require.Equal(t, "[Screenshot 1](https://cdn.example/1.png) | [Screenshot 2](https://cdn.example/2.png)", embed.Fields[3].Value)
}

func TestListingComponents(t *testing.T) {
	row := ListingComponents(true)[0].(discordgo.ActionsRow)
	require.Len(t, row.Components, 2)
	for _, c := range row.Components {
		require.True(t, c.(discordgo.Button).Disabled)
	}
	require.Equal(t, PurchaseButtonID, row.Components[0].(discordgo.Button).CustomID)
}

func TestCatalog_Expiry(t *testing.T) {
	expired := make(chan *Listing, 1)
	c := NewCatalog(10*time.Millisecond, func(l *Listing) {
		expired <- l
	})

	c.Put(&Listing{ChannelID: "1", MessageID: "2", Item: NewItem("x", "1", "", "9")})

	got, ok := c.Get("2")
	require.True(t, ok)
	require.Equal(t, "1", got.ChannelID)

	select {
	case l := <-expired:
		require.Equal(t, "2", l.MessageID)
	case <-time.After(time.Second):
		t.Fatal("listing did not expire")
	}

	_, ok = c.Get("2")
	require.False(t, ok)
	require.Zero(t, c.Len())
}

func TestCatalog_RemoveSkipsCallback(t *testing.T) {
	var calls atomic.Int32
	c := NewCatalog(10*time.Millisecond, func(*Listing) {
		calls.Add(1)
	})

	c.Put(&Listing{MessageID: "2", Item: NewItem("x", "1", "", "9")})
	c.remove("2")

	time.Sleep(30 * time.Millisecond)
	require.Zero(t, calls.Load())
}
