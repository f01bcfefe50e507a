package entities

import "github.com/Jacobbrewer1/bazaar/pkg/custom"

// FeedbackConfig is the feedback panel configuration for a guild.
type FeedbackConfig struct {
	// PanelChannelID is the ID of the channel holding the feedback panel.
	PanelChannelID custom.Snowflake `json:"panel_channel_id"`

	// FeedbackChannelID is the ID of the channel submitted feedback is forwarded to.
	FeedbackChannelID custom.Snowflake `json:"feedback_channel_id"`
}
