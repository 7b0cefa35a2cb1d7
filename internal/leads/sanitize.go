package leads

import (
	"regexp"
	"strings"
)

var (
	jsSchemeRe  = regexp.MustCompile(`(?i)javascript:`)
	lineBreakRe = regexp.MustCompile(`[\r\n]+`)
	angleRepl   = strings.NewReplacer("<", "", ">", "")
)

// Sanitize returns a copy of the submission with every free-text field made
// safe to store and render: angle brackets and javascript: schemes removed,
// line breaks collapsed to a single space, surrounding whitespace trimmed.
// The email is lower-cased and the phone compacted to digits and prefix.
// Sanitize is idempotent and runs only after Validate has passed, so it
// never alters validity (removal targets characters Validate already
// rejects in the length-constrained fields).
func (r SubmissionRequest) Sanitize() SubmissionRequest {
	r.FullName = sanitizeText(r.FullName)
	r.Email = strings.ToLower(sanitizeText(r.Email))
	r.Phone = whitespaceRe.ReplaceAllString(sanitizeText(r.Phone), "")
	r.Service = sanitizeText(r.Service)
	r.Message = sanitizeText(r.Message)

	if trimmed := sanitizeText(r.PreferredDateTime); trimmed != "" {
		r.PreferredDateTime = trimmed
	} else {
		r.PreferredDateTime = NotSpecified
	}

	return r
}

func sanitizeText(s string) string {
	s = angleRepl.Replace(s)
	// Removing one occurrence can splice a new one together; repeat until
	// the result is stable so sanitization stays idempotent.
	for jsSchemeRe.MatchString(s) {
		s = jsSchemeRe.ReplaceAllString(s, "")
	}
	s = lineBreakRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
