package password

import "testing"

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("s3cret-passw0rd")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "s3cret-passw0rd" {
		t.Fatal("hash equals plaintext")
	}

	if err := Compare(hash, "s3cret-passw0rd"); err != nil {
		t.Errorf("Compare with correct password: %v", err)
	}
	if err := Compare(hash, "wrong-password"); err == nil {
		t.Error("Compare accepted wrong password")
	}
}
