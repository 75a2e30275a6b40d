package plan

import "github.com/google/uuid"

// SelectionContext tracks recipe ids already used within one
// plan-generation request so the selector can avoid repeats. It is
// request-scoped and must never be shared across concurrent requests, so
// it carries no locking.
type SelectionContext struct {
	used map[uuid.UUID]struct{}
}

// NewSelectionContext creates an empty selection context
func NewSelectionContext() *SelectionContext {
	return &SelectionContext{used: make(map[uuid.UUID]struct{})}
}

// MarkUsed records a chosen recipe id
func (c *SelectionContext) MarkUsed(id uuid.UUID) {
	c.used[id] = struct{}{}
}

// IsUsed reports whether a recipe id was already chosen in this request
func (c *SelectionContext) IsUsed(id uuid.UUID) bool {
	_, ok := c.used[id]
	return ok
}

// Len returns the number of distinct recipes used so far
func (c *SelectionContext) Len() int {
	return len(c.used)
}
