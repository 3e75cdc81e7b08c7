// Package session keeps the interaction state of each open page. State
// lives only in memory and disappears when a page goes idle.
package session

import (
	"log/slog"
	"sync"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/disclosure"
	"github.com/Zachkp/folio/internal/nav"
)

// Options configure every page a Store creates.
type Options struct {
	Anchors          []string
	ActivationMargin int
	TruncateLength   int
	Relay            contact.Relay
	Subject          string
	Logger           *slog.Logger
}

// Page is the state one visitor's open page owns.
type Page struct {
	ID         string
	Tracker    *nav.Tracker
	Navigator  *nav.Navigator
	Disclosure *disclosure.Controller
	Contact    *contact.Controller

	mu          sync.Mutex
	pending     string
	havePending bool
}

// NewPage wires fresh controllers. Navigation requests are held until the
// front end collects them with TakeScroll.
func NewPage(id string, opts Options) *Page {
	p := &Page{
		ID:         id,
		Tracker:    nav.NewTracker(nil, opts.ActivationMargin),
		Disclosure: disclosure.New(opts.TruncateLength),
		Contact: contact.NewController(contact.Config{
			Relay:   opts.Relay,
			Subject: opts.Subject,
			Logger:  opts.Logger,
		}),
	}
	p.Navigator = nav.NewNavigator(opts.Anchors, p.Tracker, nav.ScrollFunc(p.queueScroll))
	return p
}

// queueScroll keeps only the latest pending target.
func (p *Page) queueScroll(id string, _ int) error {
	p.mu.Lock()
	p.pending, p.havePending = id, true
	p.mu.Unlock()
	return nil
}

// TakeScroll returns the pending navigation target, if any. The second
// result is false when nothing is pending.
func (p *Page) TakeScroll() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	id, ok := p.pending, p.havePending
	p.pending, p.havePending = "", false
	return id, ok
}
