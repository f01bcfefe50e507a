package entities

import "github.com/Jacobbrewer1/bazaar/pkg/custom"

// WelcomeConfig is the welcome configuration for a guild.
type WelcomeConfig struct {
	// ChannelID is the ID of the channel that welcome messages are sent to.
	ChannelID custom.Snowflake `json:"channel_id"`

	// Message is the custom welcome template. It holds a single {user} slot for the member mention.
	// When empty the default template is used.
	Message string `json:"message,omitempty"`

	// InfoFields are extra fields added to the welcome embed.
	InfoFields []InfoField `json:"info_fields,omitempty"`
}

// InfoField is an extra field on the welcome embed.
type InfoField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}
