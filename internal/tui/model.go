// Package tui renders the portfolio in a terminal. The viewport offset is
// the scroll position, so the same navigation, disclosure and contact
// controllers drive it as drive the web page.
package tui

import (
	"context"
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/disclosure"
	"github.com/Zachkp/folio/internal/nav"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Site  *content.Site
	Relay contact.Relay
	// Subject is sent with every contact message.
	Subject string
	// ActivationMargin is measured in lines.
	ActivationMargin int
	TruncateLength   int
	Logger           *slog.Logger
}

type submitResultMsg struct {
	err error
}

type model struct {
	site   *content.Site
	relay  contact.Relay
	logger *slog.Logger

	tracker     *nav.Tracker
	navigator   *nav.Navigator
	disclosure  *disclosure.Controller
	contact     *contact.Controller
	unsubscribe func()

	viewport viewport.Model
	spinner  spinner.Model
	inputs   []textinput.Model

	focus       focus
	field       int
	selected    int
	active      string
	anchorLines map[string]int
	roleLines   map[int]int
	notice      string
	ready       bool
}

// New returns a tea.Model ready to be mounted into a Program.
func New(cfg Config) tea.Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Width = 60
		in.CharLimit = 200
		inputs[i] = in
	}
	inputs[fieldName].Placeholder = "Your name"
	inputs[fieldEmail].Placeholder = "your@email.com"
	inputs[fieldMessage].Placeholder = "Your message..."
	inputs[fieldMessage].CharLimit = 2000

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	vp := viewport.New(80, 20)
	vp.MouseWheelEnabled = true

	m := &model{
		site:        cfg.Site,
		relay:       cfg.Relay,
		logger:      logger,
		tracker:     nav.NewTracker(nil, cfg.ActivationMargin),
		disclosure:  disclosure.New(cfg.TruncateLength),
		viewport:    vp,
		spinner:     spin,
		inputs:      inputs,
		selected:    firstExpandable(cfg.Site),
		anchorLines: map[string]int{},
		roleLines:   map[int]int{},
	}
	m.contact = contact.NewController(contact.Config{
		Relay:   cfg.Relay,
		Subject: cfg.Subject,
		Logger:  logger,
	})
	m.navigator = nav.NewNavigator(content.Anchors, m.tracker, nav.ScrollFunc(m.scrollTo))
	m.unsubscribe = m.tracker.Subscribe(func(active string) { m.active = active })
	m.render()
	m.sample()
	return m
}

func firstExpandable(site *content.Site) int {
	for i, job := range site.Experience {
		if job.Expandable {
			return i
		}
	}
	return -1
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case spinner.TickMsg:
		if !isSending(m.contact.Status()) {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.render()
		return m, cmd
	case submitResultMsg:
		return m, m.finishSubmit(msg.err)
	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		m.sample()
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
		if m.focus == focusForm {
			return m, m.handleFormKey(msg)
		}
		return m, m.handlePageKey(msg)
	}
	return m, nil
}

func (m *model) quit() tea.Cmd {
	m.unsubscribe()
	return tea.Quit
}

func (m *model) resize(width, height int) {
	w := width - 2
	if w < minViewportWidth {
		w = minViewportWidth
	}
	h := height - chromeHeight
	if h < 5 {
		h = 5
	}
	m.viewport.Width = w
	m.viewport.Height = h
	for i := range m.inputs {
		m.inputs[i].Width = w - 12
	}
	m.ready = true
	m.render()
	m.sample()
}

func (m *model) handlePageKey(msg tea.KeyMsg) tea.Cmd {
	m.notice = ""
	key := msg.String()

	if m.navigator.MenuOpen() {
		switch key {
		case "esc", "m":
			m.navigator.ToggleMobileMenu()
			return nil
		}
	}

	switch key {
	case "q":
		return m.quit()
	case "j", "down":
		m.viewport.LineDown(1)
	case "k", "up":
		m.viewport.LineUp(1)
	case "pgdown", " ", "f":
		m.viewport.ViewDown()
	case "pgup", "b":
		m.viewport.ViewUp()
	case "g", "home":
		m.viewport.GotoTop()
	case "G", "end":
		m.viewport.GotoBottom()
	case "1", "2", "3", "4":
		m.goTo(content.Anchors[int(key[0]-'1')])
		return nil
	case "t":
		m.goTo(nav.TopAnchor)
		return nil
	case "m":
		m.navigator.ToggleMobileMenu()
		return nil
	case "tab":
		m.selectRole(1)
		return nil
	case "shift+tab":
		m.selectRole(-1)
		return nil
	case "enter":
		if m.selected >= 0 {
			m.disclosure.Toggle(m.selected)
			m.render()
		}
		return nil
	case "c":
		m.goTo(content.SectionContact)
		return m.focusForm()
	case "n":
		if err := m.contact.Reset(); err == nil {
			m.clearInputs()
			m.render()
			return m.focusForm()
		}
		return nil
	default:
		return nil
	}
	m.sample()
	return nil
}

func (m *model) goTo(id string) {
	if err := m.navigator.ScrollTo(id); err != nil {
		m.notice = err.Error()
	}
}

// scrollTo moves the viewport to an anchor measured during render.
func (m *model) scrollTo(id string, _ int) error {
	line := 0
	if id != nav.TopAnchor {
		l, ok := m.anchorLines[id]
		if !ok {
			return nav.ErrUnknownSection
		}
		line = l
	}
	m.viewport.SetYOffset(line)
	m.sample()
	return nil
}

func (m *model) sample() {
	m.tracker.Sample(m.viewport.YOffset)
}

func (m *model) selectRole(step int) {
	n := len(m.site.Experience)
	if n == 0 {
		return
	}
	i := m.selected
	for range n {
		i = (i + step + n) % n
		if m.site.Experience[i].Expandable {
			break
		}
	}
	if !m.site.Experience[i].Expandable {
		return
	}
	m.selected = i
	m.render()
	if line, ok := m.roleLines[i]; ok {
		if line < m.viewport.YOffset || line >= m.viewport.YOffset+m.viewport.Height {
			m.viewport.SetYOffset(line)
			m.sample()
		}
	}
}

func (m *model) handleFormKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.blurForm()
		m.render()
		return nil
	case "tab", "down":
		return m.cycleField(1)
	case "shift+tab", "up":
		return m.cycleField(-1)
	case "ctrl+s":
		return m.submit()
	case "enter":
		if m.field == fieldMessage {
			return m.submit()
		}
		return m.cycleField(1)
	}

	var cmd tea.Cmd
	m.inputs[m.field], cmd = m.inputs[m.field].Update(msg)
	if err := m.contact.SetForm(m.formValues()); err != nil {
		m.notice = err.Error()
	}
	m.render()
	return cmd
}

func (m *model) formValues() contact.Form {
	return contact.Form{
		Name:    m.inputs[fieldName].Value(),
		Email:   m.inputs[fieldEmail].Value(),
		Message: m.inputs[fieldMessage].Value(),
	}
}

func (m *model) focusForm() tea.Cmd {
	switch m.contact.Status().(type) {
	case contact.Sending, contact.Success:
		return nil
	}
	m.focus = focusForm
	cmd := m.inputs[m.field].Focus()
	m.render()
	return cmd
}

func (m *model) blurForm() {
	m.focus = focusPage
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
}

func (m *model) cycleField(step int) tea.Cmd {
	m.inputs[m.field].Blur()
	m.field = (m.field + step + fieldCount) % fieldCount
	cmd := m.inputs[m.field].Focus()
	m.render()
	return cmd
}

func (m *model) clearInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.field = fieldName
}

// submit starts the relay exchange in the background. The form is
// read-only until the result arrives.
func (m *model) submit() tea.Cmd {
	sub, err := m.contact.Begin()
	if err != nil {
		if errors.Is(err, contact.ErrInvalid) {
			m.notice = "Add your name, a valid email and a message first."
		} else {
			m.notice = err.Error()
		}
		m.render()
		return nil
	}

	m.blurForm()
	m.notice = ""
	m.render()
	relay := m.relay
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return submitResultMsg{err: relay.Send(context.Background(), sub)}
	})
}

func (m *model) finishSubmit(sendErr error) tea.Cmd {
	status, err := m.contact.Complete(sendErr)
	if err != nil {
		m.logger.Warn("contact result without submission", "error", err)
		return nil
	}
	if sendErr != nil {
		m.logger.Info("contact submission failed", "error", sendErr, "status", status.String())
	}

	var cmd tea.Cmd
	switch status.(type) {
	case contact.Success:
		m.clearInputs()
	case contact.Error:
		cmd = m.focusForm()
	}
	m.render()
	return cmd
}
