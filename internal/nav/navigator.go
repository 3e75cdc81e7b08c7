package nav

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrUnknownSection is returned when navigating to an id that is not part
// of the page.
var ErrUnknownSection = errors.New("unknown section")

// TopAnchor scrolls to the very top of the page.
const TopAnchor = ""

// Scroller moves the viewport. The web front end answers with a client
// side smooth scroll, the terminal front end moves its viewport.
type Scroller interface {
	ScrollTo(id string, top int) error
}

// ScrollFunc adapts a function to the Scroller interface.
type ScrollFunc func(id string, top int) error

func (f ScrollFunc) ScrollTo(id string, top int) error { return f(id, top) }

// Navigator owns the mobile menu flag and resolves anchor jumps against
// the tracker's layout.
type Navigator struct {
	mu       sync.Mutex
	menuOpen bool
	anchors  []string
	tracker  *Tracker
	scroller Scroller
}

// NewNavigator returns a navigator over the page's anchor ids. Offsets come
// from the tracker; an anchor that has not been measured yet scrolls with
// a zero offset and the scroller resolves it by id.
func NewNavigator(anchors []string, tracker *Tracker, scroller Scroller) *Navigator {
	return &Navigator{
		anchors:  append([]string(nil), anchors...),
		tracker:  tracker,
		scroller: scroller,
	}
}

// Anchors returns the navigable section ids in document order.
func (n *Navigator) Anchors() []string {
	return append([]string(nil), n.anchors...)
}

// ScrollTo closes the mobile menu and brings section id to the top of the
// viewport. The menu is closed even when id is unknown.
func (n *Navigator) ScrollTo(id string) error {
	n.closeMenu()

	if id == TopAnchor {
		return n.scroller.ScrollTo(TopAnchor, 0)
	}
	if !slices.Contains(n.anchors, id) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, id)
	}
	top := 0
	for _, s := range n.tracker.Sections() {
		if s.ID == id {
			top = s.Top
			break
		}
	}
	if err := n.scroller.ScrollTo(id, top); err != nil {
		return fmt.Errorf("scrolling to %q: %w", id, err)
	}
	return nil
}

// ScrollTop scrolls to the top of the page, closing the menu.
func (n *Navigator) ScrollTop() error {
	return n.ScrollTo(TopAnchor)
}

// ToggleMobileMenu flips the menu flag and returns the new value.
func (n *Navigator) ToggleMobileMenu() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.menuOpen = !n.menuOpen
	return n.menuOpen
}

func (n *Navigator) MenuOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.menuOpen
}

// Active is the section navigation links should highlight.
func (n *Navigator) Active() string {
	return n.tracker.Current()
}

func (n *Navigator) closeMenu() {
	n.mu.Lock()
	n.menuOpen = false
	n.mu.Unlock()
}
