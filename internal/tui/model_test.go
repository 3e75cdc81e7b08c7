package tui

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/content"
)

func newTestModel(t *testing.T, relay contact.Relay) *model {
	t.Helper()
	site, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	if relay == nil {
		relay = contact.RelayFunc(func(context.Context, contact.Submission) error { return nil })
	}
	m := New(Config{
		Site:    site,
		Relay:   relay,
		Subject: site.Subject(),
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}).(*model)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 10})
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m *model, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

// run executes cmd and feeds the resulting messages back into the model.
// Follow-up commands such as cursor blinks are dropped.
func run(m *model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			run(m, c)
		}
	case nil:
	default:
		m.Update(msg)
	}
}

func TestStartsOnFirstSection(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)
	if m.active != content.SectionAbout {
		t.Fatalf("active = %q, want %q", m.active, content.SectionAbout)
	}
	if !strings.Contains(m.View(), m.site.Profile.Name) {
		t.Fatalf("view missing brand: %q", m.View())
	}
}

func TestJumpClosesMenuAndScrolls(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)
	press(m, "m")
	if !m.navigator.MenuOpen() {
		t.Fatal("menu should be open after m")
	}
	press(m, "3")
	if m.navigator.MenuOpen() {
		t.Fatal("menu should close after jumping")
	}
	want := m.anchorLines[content.SectionNarrative]
	if m.viewport.YOffset != want {
		t.Fatalf("offset = %d, want %d", m.viewport.YOffset, want)
	}
	if m.active != content.SectionNarrative {
		t.Fatalf("active = %q, want %q", m.active, content.SectionNarrative)
	}

	press(m, "t")
	if m.viewport.YOffset != 0 || m.active != content.SectionAbout {
		t.Fatalf("after top: offset %d active %q", m.viewport.YOffset, m.active)
	}
}

func TestEscClosesMenuWithoutScrolling(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)
	press(m, "m", "esc")
	if m.navigator.MenuOpen() {
		t.Fatal("menu still open")
	}
	if m.viewport.YOffset != 0 {
		t.Fatalf("offset = %d, want 0", m.viewport.YOffset)
	}
}

func TestScrollingUpdatesActiveSection(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)
	press(m, "G")
	if m.active != content.SectionNarrative {
		t.Fatalf("active at bottom = %q, want %q", m.active, content.SectionNarrative)
	}
	if !strings.Contains(m.navBar(), navActiveStyle.Render("3 Narrative")) {
		t.Fatalf("narrative link not highlighted: %q", m.navBar())
	}
	press(m, "g")
	if m.active != content.SectionAbout {
		t.Fatalf("active at top = %q, want %q", m.active, content.SectionAbout)
	}
}

func TestRoleSelectionSkipsFixedDescriptions(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)
	if m.selected != 0 {
		t.Fatalf("initial selection = %d, want 0", m.selected)
	}
	press(m, "tab")
	if m.selected != 1 {
		t.Fatalf("selection = %d, want 1", m.selected)
	}
	press(m, "tab")
	if m.selected != 0 {
		t.Fatalf("selection = %d, want 0 (role 2 is not expandable)", m.selected)
	}
}

func TestEnterTogglesSelectedRole(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)
	press(m, "enter")
	if !m.disclosure.Expanded(0) {
		t.Fatal("role 0 should be expanded")
	}
	if m.disclosure.Expanded(1) {
		t.Fatal("role 1 should stay collapsed")
	}
	press(m, "enter")
	if m.disclosure.Expanded(0) {
		t.Fatal("role 0 should collapse again")
	}
}

func fillForm(m *model) {
	press(m, "c")
	press(m, "Ada Lovelace", "tab", "ada@example.com", "tab", "Let's talk engines.")
}

func TestSubmitFlow(t *testing.T) {
	t.Parallel()

	var sent contact.Submission
	m := newTestModel(t, contact.RelayFunc(func(_ context.Context, s contact.Submission) error {
		sent = s
		return nil
	}))

	fillForm(m)
	if m.focus != focusForm {
		t.Fatal("c should focus the form")
	}
	if !m.contact.CanSubmit() {
		t.Fatalf("form %+v should be submittable", m.contact.Form())
	}

	cmd := press(m, "ctrl+s")
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	if m.contact.Status() != (contact.Sending{}) {
		t.Fatalf("status = %v, want sending", m.contact.Status())
	}
	if m.focus != focusPage {
		t.Fatal("form should be blurred while sending")
	}

	run(m, cmd)
	if m.contact.Status() != (contact.Success{}) {
		t.Fatalf("status = %v, want success", m.contact.Status())
	}
	want := contact.Form{Name: "Ada Lovelace", Email: "ada@example.com", Message: "Let's talk engines."}
	if sent.Form != want || sent.Subject != m.site.Subject() {
		t.Fatalf("relay received %+v", sent)
	}
	for i, in := range m.inputs {
		if in.Value() != "" {
			t.Fatalf("input %d = %q after success, want empty", i, in.Value())
		}
	}

	press(m, "n")
	if m.contact.Status() != (contact.Idle{}) {
		t.Fatalf("status after n = %v, want idle", m.contact.Status())
	}
	if m.focus != focusForm {
		t.Fatal("n should reopen the form")
	}
}

func TestSubmitRejectionRefocusesForm(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, contact.RelayFunc(func(context.Context, contact.Submission) error {
		return &contact.RejectionError{StatusCode: 422, Message: "Email is not allowed"}
	}))
	fillForm(m)
	run(m, press(m, "ctrl+s"))

	if got := m.contact.Status(); got != (contact.Error{Message: "Email is not allowed"}) {
		t.Fatalf("status = %v, want rejection", got)
	}
	if m.focus != focusForm {
		t.Fatal("form should regain focus after a rejection")
	}
	if m.inputs[fieldName].Value() != "Ada Lovelace" {
		t.Fatalf("name = %q, want kept", m.inputs[fieldName].Value())
	}
	if !strings.Contains(m.statusLine(), "Email is not allowed") {
		t.Fatalf("status line %q missing rejection", m.statusLine())
	}
}

func TestSubmitIncompleteFormIsRefused(t *testing.T) {
	t.Parallel()

	called := false
	m := newTestModel(t, contact.RelayFunc(func(context.Context, contact.Submission) error {
		called = true
		return nil
	}))
	press(m, "c", "Ada", "tab", "not-an-email")
	if cmd := press(m, "ctrl+s"); cmd != nil {
		run(m, cmd)
	}
	if called {
		t.Fatal("relay called for an invalid form")
	}
	if m.contact.Status() != (contact.Idle{}) {
		t.Fatalf("status = %v, want idle", m.contact.Status())
	}
	if m.notice == "" {
		t.Fatal("expected a notice for the incomplete form")
	}
}

func TestQuitUnsubscribes(t *testing.T) {
	t.Parallel()

	m := newTestModel(t, nil)
	if m.tracker.Subscribers() != 1 {
		t.Fatalf("subscribers = %d, want 1", m.tracker.Subscribers())
	}
	cmd := press(m, "q")
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("q should quit")
	}
	if m.tracker.Subscribers() != 0 {
		t.Fatalf("subscribers = %d after quit, want 0", m.tracker.Subscribers())
	}
}
