// Package reactionroles maps reactions on role panel messages to the roles they grant.
package reactionroles

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Jacobbrewer1/bazaar/pkg/dataaccess"
)

// DocumentName is the name of the reaction role document.
const DocumentName = "reaction_roles.json"

// Bindings maps a message ID to its symbol to role ID bindings.
type Bindings map[string]map[string]string

// Map is the reaction role store.
type Map struct {
	doc *dataaccess.Document[Bindings]
}

// NewMap opens the reaction role document on the backend.
func NewMap(ctx context.Context, l *slog.Logger, backend dataaccess.Backend) *Map {
	return &Map{
		doc: dataaccess.OpenDocument(ctx, l, backend, DocumentName, func() Bindings {
			return make(Bindings)
		}),
	}
}

// Bind adds a single symbol to role binding to a message.
func (m *Map) Bind(ctx context.Context, messageID, symbol, roleID string) error {
	return m.BindPanel(ctx, messageID, map[string]string{symbol: roleID})
}

// BindPanel adds every binding of a panel message in a single write.
func (m *Map) BindPanel(ctx context.Context, messageID string, bindings map[string]string) error {
	if messageID == "" {
		return fmt.Errorf("message ID is required")
	} else if len(bindings) == 0 {
		return fmt.Errorf("no bindings given for message %s", messageID)
	}

	return m.doc.Mutate(ctx, func(b Bindings) error {
		symbols, ok := b[messageID]
		if !ok {
			symbols = make(map[string]string, len(bindings))
			b[messageID] = symbols
		}
		for symbol, roleID := range bindings {
			symbols[symbol] = roleID
		}
		return nil
	})
}

// Lookup returns the role bound to the symbol on the message.
func (m *Map) Lookup(messageID, symbol string) (string, bool) {
	var (
		roleID string
		ok     bool
	)
	m.doc.Read(func(b Bindings) {
		roleID, ok = b[messageID][symbol]
	})
	return roleID, ok
}
