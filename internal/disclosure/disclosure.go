// Package disclosure tracks which truncated items on the page the visitor
// has expanded.
package disclosure

import "sync"

// DefaultTruncateLength is the number of characters a collapsed item shows.
const DefaultTruncateLength = 180

// Ellipsis follows truncated text.
const Ellipsis = "..."

// Controller is the expand/collapse state of one page. Indices that were
// never toggled are collapsed.
type Controller struct {
	mu       sync.Mutex
	limit    int
	expanded map[int]bool
}

// New returns a controller that truncates collapsed text to limit
// characters. A non-positive limit selects DefaultTruncateLength.
func New(limit int) *Controller {
	if limit <= 0 {
		limit = DefaultTruncateLength
	}
	return &Controller{limit: limit, expanded: map[int]bool{}}
}

// Toggle flips the state at index and returns the new value.
func (c *Controller) Toggle(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expanded[index] = !c.expanded[index]
	return c.expanded[index]
}

func (c *Controller) Expanded(index int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.expanded[index]
}

// Text returns what item index displays for text: the full text when
// expanded, otherwise the first limit characters and an ellipsis.
func (c *Controller) Text(index int, text string) string {
	if c.Expanded(index) {
		return text
	}
	return Truncate(text, c.limit)
}

// Reset collapses every item.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.expanded = map[int]bool{}
	c.mu.Unlock()
}

// Limit reports the collapsed length in characters.
func (c *Controller) Limit() int {
	return c.limit
}

// Truncate returns the first limit runes of text followed by Ellipsis. The
// ellipsis is appended even when text is already short.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) > limit {
		runes = runes[:limit]
	}
	return string(runes) + Ellipsis
}
