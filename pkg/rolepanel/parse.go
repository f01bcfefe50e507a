package rolepanel

import (
	"fmt"
	"strings"

	"github.com/disgoorg/snowflake/v2"
)

// RoleEntry is a role collected during setup.
type RoleEntry struct {
	RoleID string
	Symbol string
	Label  string
}

// parseRoleLine parses a "ROLE_ID SYMBOL [LABEL]" line. The role may be given as a mention.
func parseRoleLine(line string) (*RoleEntry, error) {
	parts := strings.SplitN(strings.TrimSpace(line), " ", 3)
	if len(parts) < 2 || parts[1] == "" {
		return nil, errInvalidFormat
	}

	ref := strings.TrimSuffix(strings.TrimPrefix(parts[0], "<@&"), ">")
	id, err := snowflake.Parse(ref)
	if err != nil || id == 0 {
		return nil, fmt.Errorf("%w: %s", errInvalidRoleID, parts[0])
	}

	entry := &RoleEntry{
		RoleID: id.String(),
		Symbol: parts[1],
	}
	if len(parts) == 3 {
		entry.Label = strings.TrimSpace(parts[2])
	}
	return entry, nil
}

// parseChannelRef parses a channel mention or a raw channel ID.
func parseChannelRef(s string) (string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "<#") && strings.HasSuffix(s, ">") {
		s = s[2 : len(s)-1]
	}

	id, err := snowflake.Parse(s)
	if err != nil || id == 0 {
		return "", ErrInvalidChannel
	}
	return id.String(), nil
}
