package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/nav"
)

var stripEmphasis = strings.NewReplacer("**", "", "*", "", "_", "")

func (m *model) View() string {
	parts := []string{m.navBar()}
	if m.navigator.MenuOpen() {
		parts = append(parts, m.menuView())
	} else {
		parts = append(parts, m.viewport.View())
	}
	parts = append(parts, m.statusLine(), m.helpLine())
	return strings.Join(parts, "\n")
}

func (m *model) navBar() string {
	links := make([]string, 0, len(content.NavLinks)+1)
	for i, l := range content.NavLinks {
		label := fmt.Sprintf("%d %s", i+1, l.Label)
		if l.ID == m.active {
			links = append(links, navActiveStyle.Render(label))
		} else {
			links = append(links, navLinkStyle.Render(label))
		}
	}
	links = append(links, navLinkStyle.Render(fmt.Sprintf("%d Get in Touch", len(content.NavLinks)+1)))
	return brandStyle.Render(m.site.Profile.Name+".") + "   " + strings.Join(links, "  ")
}

func (m *model) menuView() string {
	var b strings.Builder
	for i, id := range content.Anchors {
		label := "Get in Touch"
		for _, l := range content.NavLinks {
			if l.ID == id {
				label = l.Label
			}
		}
		fmt.Fprintf(&b, "%d  %s\n", i+1, label)
	}
	b.WriteString(helperStyle.Render("esc to close"))
	return lipgloss.PlaceHorizontal(m.viewport.Width, lipgloss.Left, menuStyle.Render(b.String()))
}

func (m *model) statusLine() string {
	if m.notice != "" {
		return errorStyle.Render(m.notice)
	}
	switch st := m.contact.Status().(type) {
	case contact.Sending:
		return helperStyle.Render(m.spinner.View() + " Sending...")
	case contact.Error:
		return errorStyle.Render(st.Message)
	case contact.Success:
		return successStyle.Render("Message sent.")
	}
	return ""
}

func (m *model) helpLine() string {
	if m.focus == focusForm {
		return helperStyle.Render("tab next field · ctrl+s send · esc back to page")
	}
	return helperStyle.Render("j/k scroll · 1-4 jump · t top · m menu · tab/enter roles · c contact · q quit")
}

// document collects rendered lines and remembers where anchors start.
type document struct {
	lines   []string
	anchors map[string]int
	roles   map[int]int
}

func (d *document) add(s string) {
	d.lines = append(d.lines, strings.Split(s, "\n")...)
}

func (d *document) anchor(id string) {
	d.anchors[id] = len(d.lines)
}

func (m *model) wrap(s string) string {
	width := m.viewport.Width - 2
	if width < minViewportWidth-2 {
		width = minViewportWidth - 2
	}
	return wordwrap.String(strings.Join(strings.Fields(stripEmphasis.Replace(s)), " "), width)
}

// render rebuilds the page, re-measures section offsets and keeps the
// scroll position.
func (m *model) render() {
	doc := &document{anchors: map[string]int{}, roles: map[int]int{}}
	p := m.site.Profile

	doc.anchor(content.SectionAbout)
	doc.add(taglineStyle.Render(strings.ToUpper(p.Tagline)))
	doc.add(subheadingStyle.Render(m.wrap(p.Headline)))
	doc.add("")
	doc.add(m.wrap(p.Bio))
	doc.add(helperStyle.Render(p.Location))

	doc.add("")
	doc.anchor(content.SectionPerspectives)
	doc.add(headingStyle.Render("Upcoming Insights"))
	doc.add(m.wrap(content.PerspectivesIntro))
	for _, a := range m.site.Articles {
		doc.add("")
		doc.add(helperStyle.Render(strings.ToUpper(a.Tag)) + "  " + taglineStyle.Render("Coming Soon"))
		doc.add(subheadingStyle.Render(m.wrap(a.Title)))
		doc.add(helperStyle.Render(m.wrap(`"` + a.Summary + `"`)))
	}

	doc.add("")
	doc.anchor(content.SectionNarrative)
	doc.add(headingStyle.Render("Professional Narrative"))
	doc.add(m.wrap(p.NarrativeIntro))
	for i, job := range m.site.Experience {
		doc.add("")
		doc.roles[i] = len(doc.lines)
		m.renderRole(doc, i, job)
	}

	doc.add("")
	doc.add(headingStyle.Render("Education & Expertise"))
	for _, e := range p.Credentials.Education {
		doc.add("• " + e.Degree + helperStyle.Render(", "+e.School))
	}
	for _, d := range p.Credentials.Development {
		doc.add("• " + d.Program + helperStyle.Render(", "+d.School))
	}
	for _, l := range p.Credentials.Languages {
		doc.add("• " + l.Language + helperStyle.Render(" · "+l.Level))
	}
	for _, g := range p.Credentials.Skills {
		doc.add(subheadingStyle.Render(g.Category) + helperStyle.Render(": "+strings.Join(g.Skills, ", ")))
	}

	doc.add("")
	doc.anchor(content.SectionContact)
	doc.add(headingStyle.Render("Get in Touch"))
	doc.add(m.wrap(content.ContactIntro))
	doc.add("")
	m.renderContact(doc)

	doc.add("")
	doc.add(helperStyle.Render(m.wrap(`"` + content.ClosingStatement + `"`)))
	doc.add("")
	doc.add(helperStyle.Render(m.site.Profile.Social.LinkedIn + "  " + m.site.Profile.Social.GitHub))

	m.anchorLines = doc.anchors
	m.roleLines = doc.roles

	sections := make([]nav.Section, 0, len(content.Tracked))
	for _, id := range content.Tracked {
		sections = append(sections, nav.Section{ID: id, Top: doc.anchors[id]})
	}
	m.tracker.SetSections(sections)

	offset := m.viewport.YOffset
	m.viewport.SetContent(strings.Join(doc.lines, "\n"))
	m.viewport.SetYOffset(offset)
}

func (m *model) renderRole(doc *document, i int, job content.Experience) {
	marker := "○"
	if job.Active {
		marker = "●"
	}
	title := fmt.Sprintf("%s %s", marker, job.Role)
	if i == m.selected {
		title = selectedStyle.Render("› " + title)
	} else {
		title = subheadingStyle.Render("  " + title)
	}
	doc.add(title)
	doc.add(helperStyle.Render("  " + job.Company))

	text := job.Description
	if job.Expandable {
		text = m.disclosure.Text(i, job.Description)
	}
	doc.add(m.wrap(text))

	if job.Expandable {
		hint := "Read More ▼"
		if m.disclosure.Expanded(i) {
			hint = "Read Less ▲"
		}
		if i == m.selected {
			hint = "[enter] " + hint
		}
		doc.add(taglineStyle.Render(hint))
	}
	doc.add(helperStyle.Render(strings.Join(job.Tags, " · ")))
}

func (m *model) renderContact(doc *document) {
	status := m.contact.Status()
	if _, ok := status.(contact.Success); ok {
		doc.add(successStyle.Render("Thank you!"))
		doc.add(m.wrap(content.ContactSuccess))
		doc.add(taglineStyle.Render("[n] Send another message"))
		return
	}

	labels := [fieldCount]string{"Name", "Email", "Message"}
	for i, in := range m.inputs {
		doc.add(fmt.Sprintf("%-8s %s", labels[i], in.View()))
	}
	if e, ok := status.(contact.Error); ok {
		doc.add(errorStyle.Render(e.Message))
	}

	switch {
	case isSending(status):
		doc.add(m.spinner.View() + " Sending...")
	case m.contact.CanSubmit():
		doc.add(taglineStyle.Render("[ctrl+s] Send Message"))
	default:
		doc.add(helperStyle.Render("Send Message (complete the form)"))
	}
	if m.focus != focusForm && !isSending(status) {
		doc.add(helperStyle.Render("press c to write a message"))
	}
}

func isSending(s contact.Status) bool {
	_, ok := s.(contact.Sending)
	return ok
}
