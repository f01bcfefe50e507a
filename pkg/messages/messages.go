// Package messages holds the user facing replies shared across handlers.
package messages

const (
	// ErrUserErrorProcessing is the generic reply when a handler fails unexpectedly.
	ErrUserErrorProcessing = "An error occurred while processing your request. Please try again later."

	ErrAdminOnly      = "You must be an administrator to use this command."
	ErrGuildOnly      = "This command can only be used in a server."
	ErrSlowDown       = "You're doing that too fast. Please slow down and try again in a moment."
	ErrAmountPositive = "Amount must be positive!"
	ErrNoManage       = "Error: Bot doesn't have permission to create channels. Please contact an administrator."
	ErrNoArchive      = "Error: I don't have permission to archive this channel."
	ErrNotTicket      = "This command can only be used in ticket channels!"
	ErrListingExpired = "This listing has expired. Please ask the seller to post it again."
	ErrNoWelcome      = "No welcome channel is set for this server. Use /setwelcome first."
	ErrBadRating      = "Please provide a numeric rating between 1 and 5."
	ErrNoFeedback     = "Feedback channel not found. Please contact an administrator."
	ErrSelfPay        = "You can't pay yourself."

	MoreInfo          = "For more information about this item, please contact the seller directly."
	FeedbackThanks    = "Thank you for your feedback! It has been submitted successfully."
	TicketPanelPosted = "Ticket panel created in this channel!"
	RolePanelStarting = "Starting role panel setup. Please answer the following questions:"
	TestWelcomeSent   = "Test welcome message sent!"
)
