package leads

import (
	"regexp"
	"strings"
)

const (
	msgInvalidName    = "Invalid full name. Please enter 2-50 characters, letters only."
	msgInvalidEmail   = "Invalid email address."
	msgInvalidPhone   = "Invalid phone number. Please enter a valid Indian phone number."
	msgMissingService = "Please select a service."
	msgShortMessage   = "Message must be at least 10 characters long."
	msgMissingConsent = "You must agree to be contacted."
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z\s]{2,50}$`)
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Indian mobile: optional +91 or 0 prefix, first significant digit 6-9.
	phoneRe      = regexp.MustCompile(`^(\+91|0)?[6-9][0-9]{9}$`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Validate checks every rule independently and returns the complete list of
// user-facing violations in a stable order. An empty result means the
// submission is valid. Validation has no side effects.
func (r *SubmissionRequest) Validate() []string {
	var errs []string

	if r.FullName == "" || !nameRe.MatchString(r.FullName) {
		errs = append(errs, msgInvalidName)
	}
	if r.Email == "" || !emailRe.MatchString(r.Email) {
		errs = append(errs, msgInvalidEmail)
	}
	if r.Phone == "" || !phoneRe.MatchString(whitespaceRe.ReplaceAllString(r.Phone, "")) {
		errs = append(errs, msgInvalidPhone)
	}
	if strings.TrimSpace(r.Service) == "" {
		errs = append(errs, msgMissingService)
	}
	if len(strings.TrimSpace(r.Message)) < 10 {
		errs = append(errs, msgShortMessage)
	}
	if !r.Consent {
		errs = append(errs, msgMissingConsent)
	}

	return errs
}
