package reactionroles

import "strings"

// APIName converts a symbol in message format to the form used to add a reaction.
// Custom emojis "<:name:id>" and "<a:name:id>" become "name:id", unicode emojis are unchanged.
func APIName(symbol string) string {
	if !strings.HasPrefix(symbol, "<") || !strings.HasSuffix(symbol, ">") {
		return symbol
	}

	inner := strings.TrimSuffix(strings.TrimPrefix(symbol, "<"), ">")
	inner = strings.TrimPrefix(inner, "a")
	return strings.TrimPrefix(inner, ":")
}
