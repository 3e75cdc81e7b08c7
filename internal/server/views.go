package server

import (
	"bytes"
	"embed"
	"html/template"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Zachkp/folio/internal/contact"
	"github.com/Zachkp/folio/internal/content"
	"github.com/Zachkp/folio/internal/session"
)

//go:embed templates static
var assets embed.FS

var markdown = goldmark.New(goldmark.WithExtensions(extension.Typographer))

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"markdown": renderMarkdown,
		"inline":   renderInline,
	}
}

// renderMarkdown renders trusted site content. Raw HTML in the source is
// dropped by goldmark's default renderer.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// renderInline renders a single paragraph without the wrapping <p>.
func renderInline(src string) template.HTML {
	html := strings.TrimSpace(string(renderMarkdown(src)))
	html = strings.TrimPrefix(html, "<p>")
	html = strings.TrimSuffix(html, "</p>")
	return template.HTML(html)
}

type pageView struct {
	PageID     string
	Site       *content.Site
	Nav        navView
	Experience []experienceView
	Contact    contactView
	Copy       copyView
	Year       int
}

type navView struct {
	Links    []content.NavLink
	Active   string
	MenuOpen bool
}

type experienceView struct {
	Index int
	content.Experience
	Text     string
	Expanded bool
	Last     bool
}

type contactView struct {
	Form        contact.Form
	CanSubmit   bool
	Sending     bool
	Success     bool
	Error       string
	SuccessText string
}

type copyView struct {
	PerspectivesIntro string
	ContactIntro      string
	ClosingStatement  string
	FooterBlurb       string
}

func (s *Server) pageView(p *session.Page) pageView {
	return pageView{
		PageID:     p.ID,
		Site:       s.site,
		Nav:        navViewFor(p),
		Experience: s.experienceViews(p),
		Contact:    contactViewFor(p.Contact),
		Copy: copyView{
			PerspectivesIntro: content.PerspectivesIntro,
			ContactIntro:      content.ContactIntro,
			ClosingStatement:  content.ClosingStatement,
			FooterBlurb:       content.FooterBlurb,
		},
		Year: time.Now().Year(),
	}
}

func navViewFor(p *session.Page) navView {
	return navView{
		Links:    content.NavLinks,
		Active:   p.Navigator.Active(),
		MenuOpen: p.Navigator.MenuOpen(),
	}
}

func (s *Server) experienceViews(p *session.Page) []experienceView {
	views := make([]experienceView, len(s.site.Experience))
	for i := range s.site.Experience {
		views[i] = s.experienceView(p, i)
	}
	return views
}

func (s *Server) experienceView(p *session.Page, i int) experienceView {
	job := s.site.Experience[i]
	v := experienceView{
		Index:      i,
		Experience: job,
		Text:       job.Description,
		Last:       i == len(s.site.Experience)-1,
	}
	if job.Expandable {
		v.Expanded = p.Disclosure.Expanded(i)
		v.Text = p.Disclosure.Text(i, job.Description)
	}
	return v
}

func contactViewFor(c *contact.Controller) contactView {
	v := contactView{
		Form:        c.Form(),
		CanSubmit:   c.CanSubmit(),
		SuccessText: content.ContactSuccess,
	}
	switch st := c.Status().(type) {
	case contact.Idle:
	case contact.Sending:
		v.Sending = true
	case contact.Success:
		v.Success = true
	case contact.Error:
		v.Error = st.Message
	}
	return v
}
