package rolepanel

import (
	"errors"
	"fmt"
)

// ErrSetupAborted is the parent of every error that ends a setup without a panel.
var ErrSetupAborted = errors.New("role panel setup aborted")

var (
	// ErrTimedOut is returned when the user did not answer a prompt in time.
	ErrTimedOut = fmt.Errorf("%w: timed out waiting for a reply", ErrSetupAborted)

	// ErrNoRoles is returned when the user finished without adding a role.
	ErrNoRoles = fmt.Errorf("%w: no roles were added", ErrSetupAborted)

	// ErrInvalidChannel is returned when the target channel could not be resolved in the guild.
	ErrInvalidChannel = fmt.Errorf("%w: invalid target channel", ErrSetupAborted)
)

var (
	errInvalidFormat = errors.New("invalid format")
	errInvalidRoleID = errors.New("invalid role ID")
)
