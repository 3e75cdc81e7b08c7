package content

// Page anchors, in document order.
const (
	SectionAbout        = "about"
	SectionPerspectives = "perspectives"
	SectionNarrative    = "narrative"
	SectionContact      = "contact"
)

// Anchors are the navigation targets.
var Anchors = []string{SectionAbout, SectionPerspectives, SectionNarrative, SectionContact}

// Tracked are the anchors that light up in the navigation bar as the page
// scrolls. Contact has its own button instead.
var Tracked = []string{SectionAbout, SectionPerspectives, SectionNarrative}

// NavLink is a labelled navigation entry.
type NavLink struct {
	ID    string
	Label string
}

var NavLinks = []NavLink{
	{ID: SectionAbout, Label: "About"},
	{ID: SectionPerspectives, Label: "Perspectives"},
	{ID: SectionNarrative, Label: "Narrative"},
}

var (
	PerspectivesIntro = `A preview of essays and analyses currently in development — exploring the
	intersections of cybersecurity governance, energy economics, data privacy, and product strategy.`

	ContactIntro = `Have a question, collaboration idea, or just want to connect? I'd love to hear from you.`

	ContactSuccess = `Your message has been sent. I'll be in touch shortly.`

	ClosingStatement = `Optimizing for a future where energy is sustainable, data is secure, and complexity is simplified.`

	FooterBlurb = `Securing and modernizing the world's most complex enterprise and energy systems.`
)

// SubjectPrefix starts the subject line of relayed contact messages.
const SubjectPrefix = "New Portfolio Inquiry"

// Subject is the default relay subject for the site owner.
func (s *Site) Subject() string {
	if s.Profile.Name == "" {
		return SubjectPrefix
	}
	return SubjectPrefix + " - " + s.Profile.Name
}
