package token

import "testing"

func TestGenerateRandomTokenIsUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		tok, err := GenerateRandomToken(48)
		if err != nil {
			t.Fatalf("GenerateRandomToken: %v", err)
		}
		if tok == "" {
			t.Fatal("empty token")
		}
		if seen[tok] {
			t.Fatalf("duplicate token after %d generations", i)
		}
		seen[tok] = true
	}
}

func TestHashSHA256IsDeterministic(t *testing.T) {
	a := HashSHA256("some-refresh-token")
	b := HashSHA256("some-refresh-token")
	if a != b {
		t.Errorf("same input produced different hashes: %q vs %q", a, b)
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
	if HashSHA256("other-token") == a {
		t.Error("different inputs produced the same hash")
	}
}
