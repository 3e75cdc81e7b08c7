// Package nav derives which page section is in view from the scroll
// position and drives anchor navigation and the mobile menu.
package nav

import "sync"

// DefaultActivationMargin activates a section this many pixels before its
// top reaches the top of the viewport.
const DefaultActivationMargin = 200

// Section is a navigable anchor and its offset from the top of the document.
type Section struct {
	ID  string `json:"id"`
	Top int    `json:"top"`
}

// Active returns the id of the last section, in document order, whose top
// minus margin is at or above y. It returns "" when y is above every
// section.
func Active(y int, sections []Section, margin int) string {
	current := ""
	for _, s := range sections {
		if s.Top-margin <= y {
			current = s.ID
		}
	}
	return current
}

// Listener receives the active section id each time it changes.
type Listener func(active string)

// Tracker holds the section layout for one page and publishes the active
// section to subscribers as scroll samples arrive.
type Tracker struct {
	mu        sync.Mutex
	margin    int
	sections  []Section
	active    string
	nextID    int
	listeners map[int]Listener
}

// NewTracker returns a tracker over sections. A negative margin selects
// DefaultActivationMargin.
func NewTracker(sections []Section, margin int) *Tracker {
	if margin < 0 {
		margin = DefaultActivationMargin
	}
	return &Tracker{
		margin:    margin,
		sections:  append([]Section(nil), sections...),
		listeners: map[int]Listener{},
	}
}

// SetSections replaces the layout after the page is re-measured. The active
// section is not recomputed until the next sample.
func (t *Tracker) SetSections(sections []Section) {
	t.mu.Lock()
	t.sections = append(t.sections[:0:0], sections...)
	t.mu.Unlock()
}

// Sections returns a copy of the current layout.
func (t *Tracker) Sections() []Section {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Section(nil), t.sections...)
}

// Margin reports the activation margin in use.
func (t *Tracker) Margin() int {
	return t.margin
}

// Sample recomputes the active section for scroll offset y and notifies
// listeners if it changed. It returns the active section id.
func (t *Tracker) Sample(y int) string {
	t.mu.Lock()
	next := Active(y, t.sections, t.margin)
	if next == t.active {
		t.mu.Unlock()
		return next
	}
	t.active = next
	listeners := make([]Listener, 0, len(t.listeners))
	for _, l := range t.listeners {
		listeners = append(listeners, l)
	}
	t.mu.Unlock()

	for _, l := range listeners {
		l(next)
	}
	return next
}

// Current returns the most recently published active section.
func (t *Tracker) Current() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// Subscribe registers l and returns a function that removes it. The
// returned function is safe to call more than once.
func (t *Tracker) Subscribe(l Listener) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = l
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			delete(t.listeners, id)
			t.mu.Unlock()
		})
	}
}

// Subscribers reports how many listeners are registered.
func (t *Tracker) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}
