package service

import "testing"

func TestRFCPattern(t *testing.T) {
	valid := []string{
		"ABC010203XY9",   // company, 12 chars
		"GODE561231GR8",  // individual, 13 chars
		"XAXX010101000",  // generic RFC
	}
	for _, rfc := range valid {
		if !rfcPattern.MatchString(rfc) {
			t.Errorf("expected %q to be a valid RFC", rfc)
		}
	}

	invalid := []string{
		"",
		"ABC",
		"abc010203xy9",    // lowercase
		"ABCD01020Z3XY95", // too long
		"1234567890123",   // no leading letters
	}
	for _, rfc := range invalid {
		if rfcPattern.MatchString(rfc) {
			t.Errorf("expected %q to be rejected", rfc)
		}
	}
}
