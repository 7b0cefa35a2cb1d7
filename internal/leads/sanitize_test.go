package leads

import "testing"

func TestSanitizeNormalizes(t *testing.T) {
	req := SubmissionRequest{
		FullName: "  Asha Rao  ",
		Email:    "ASHA@Example.com",
		Phone:    "+91 98765 43210",
		Service:  "Network Setup",
		Message:  "Need help <script>alert(1)</script> with javascript:void(0) setup",
	}

	clean := req.Sanitize()

	if clean.FullName != "Asha Rao" {
		t.Errorf("name: got %q", clean.FullName)
	}
	if clean.Email != "asha@example.com" {
		t.Errorf("email not lower-cased: got %q", clean.Email)
	}
	if clean.Phone != "+919876543210" {
		t.Errorf("phone not compacted: got %q", clean.Phone)
	}
	if clean.Message != "Need help scriptalert(1)/script with void(0) setup" {
		t.Errorf("message: got %q", clean.Message)
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	req := SubmissionRequest{
		FullName:          "Asha  Rao",
		Email:             "Mixed@Case.COM",
		Phone:             " 098 765 43210 ",
		Service:           "<Repair>",
		PreferredDateTime: "",
		Message:           "javasjavascript:cript: sneaky\nmulti\r\nline message",
	}

	once := req.Sanitize()
	twice := once.Sanitize()
	if once != twice {
		t.Fatalf("sanitize not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestSanitizeSplicedScheme(t *testing.T) {
	req := SubmissionRequest{Message: "javasjavascript:cript:alert(1) padded out"}
	clean := req.Sanitize()
	if clean.Message != "alert(1) padded out" {
		t.Errorf("expected spliced scheme fully removed, got %q", clean.Message)
	}
}

func TestSanitizeCollapsesLineBreaks(t *testing.T) {
	req := SubmissionRequest{Message: "first line\nsecond line\r\nthird line"}
	clean := req.Sanitize()
	if clean.Message != "first line second line third line" {
		t.Errorf("line breaks not collapsed: got %q", clean.Message)
	}
}

func TestSanitizePreferredDateTimePlaceholder(t *testing.T) {
	req := SubmissionRequest{PreferredDateTime: "   "}
	if got := req.Sanitize().PreferredDateTime; got != NotSpecified {
		t.Errorf("expected %q, got %q", NotSpecified, got)
	}

	req.PreferredDateTime = "Monday morning"
	if got := req.Sanitize().PreferredDateTime; got != "Monday morning" {
		t.Errorf("expected preserved value, got %q", got)
	}
}
