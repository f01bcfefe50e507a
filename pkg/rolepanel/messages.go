package rolepanel

const (
	msgAskTitle       = "What should be the **title** of the role panel?"
	msgAskDescription = "What should be the **description** of the role panel?"
	msgAskRoles       = "Now, let's add roles. Enter them in this format:\n" +
		"`ROLE_ID EMOJI ROLE_NAME`\n" +
		"Example: `123456789012345678 👍 Supporter`\n" +
		"Enter one role per message. Type `done` when finished."
	msgAskChannel = "In which channel should I post the role panel? Please enter the channel ID or #mention the channel."

	msgInvalidFormat   = "Invalid format. Please try again."
	msgInvalidRoleID   = "Invalid role ID. Please enter a valid ID."
	msgRoleNotFound    = "Role with ID %s not found. Please try again."
	msgDuplicateSymbol = "%s is already used on this panel. Please pick another emoji."
	msgRoleAdded       = "Added role: %s with emoji %s"

	msgTimedOut       = "Setup timed out. Please try again."
	msgNoRoles        = "No roles were added. Setup cancelled."
	msgInvalidChannel = "Invalid channel. Setup cancelled."
	msgFailed         = "Something went wrong while creating the role panel. Setup cancelled."
	msgCreated        = "Role panel created successfully in <#%s>!"
)
