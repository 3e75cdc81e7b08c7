// Package contact owns the contact form and its submission to an external
// form relay.
package contact

import (
	"regexp"
	"strings"
)

// Form is the visitor-editable part of the contact form.
type Form struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// emailPattern is a structural local@domain.tld check, not address grammar.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email looks like local@domain.tld.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// Valid reports whether every field is acceptable for submission.
func (f Form) Valid() bool {
	return strings.TrimSpace(f.Name) != "" &&
		ValidEmail(f.Email) &&
		strings.TrimSpace(f.Message) != ""
}

// IsZero reports whether all three fields are empty.
func (f Form) IsZero() bool {
	return f == Form{}
}
