package leads

import (
	"net/url"
	"regexp"
	"time"
)

// Lead status values. Every stored lead is StatusNew; follow-up happens out
// of band and the log is never rewritten.
const (
	StatusNew       = "New"
	StatusContacted = "Contacted"
	StatusClosed    = "Closed"
)

// NotSpecified is the canonical placeholder for an absent preferred
// date/time.
const NotSpecified = "Not specified"

// Lead represents one accepted contact-form submission. Leads are immutable
// once appended to the store.
type Lead struct {
	Timestamp         time.Time `json:"timestamp"`
	IP                string    `json:"ip"`
	FullName          string    `json:"fullName"`
	Email             string    `json:"email"`
	Phone             string    `json:"phone"`
	Service           string    `json:"service"`
	PreferredDateTime string    `json:"preferredDateTime"`
	Message           string    `json:"message"`
	Status            string    `json:"status"`
}

// SubmissionRequest is the contact-form payload as received from the site.
type SubmissionRequest struct {
	FullName          string `json:"fullName"`
	Email             string `json:"email"`
	Phone             string `json:"phone"`
	Service           string `json:"service"`
	PreferredDateTime string `json:"preferredDateTime"`
	Message           string `json:"message"`
	Consent           bool   `json:"consent"`
}

var countryPrefixRe = regexp.MustCompile(`^\+?91`)

// WhatsAppLink builds a wa.me deep link for an Indian mobile number by
// stripping the country-code prefix.
func WhatsAppLink(phone string) string {
	return "https://wa.me/91" + countryPrefixRe.ReplaceAllString(phone, "")
}

// WhatsAppIntroLink builds the confirmation deep link shown to the
// submitter: it targets the business number and prefills an introduction.
func WhatsAppIntroLink(businessNumber, service, fullName string) string {
	text := "Hi, I submitted a contact form for " + service + ". My name is " + fullName + "."
	return "https://wa.me/" + businessNumber + "?text=" + url.QueryEscape(text)
}
