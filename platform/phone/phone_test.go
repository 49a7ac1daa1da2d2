package phone

import "testing"

func TestNormalizeE164(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"national mexican number", "55 1234 5678", "+525512345678"},
		{"already e164", "+525512345678", "+525512345678"},
		{"us number with country code", "+1 212 555 0123", "+12125550123"},
		{"invalid kept as entered", "ext. 204", "ext. 204"},
		{"whitespace trimmed", "  55 1234 5678  ", "+525512345678"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeE164(tt.input); got != tt.want {
				t.Errorf("NormalizeE164(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
