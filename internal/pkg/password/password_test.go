package password

import "testing"

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	if hash == "secret123" {
		t.Fatal("hash equals plaintext")
	}
	if !Verify("secret123", hash) {
		t.Error("correct password rejected")
	}
	if Verify("wrong-password", hash) {
		t.Error("wrong password accepted")
	}
	if Verify("secret123", "not-a-bcrypt-hash") {
		t.Error("malformed hash accepted")
	}
}

func TestHashIsSalted(t *testing.T) {
	a, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	b, err := Hash("secret123")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		password string
		want     bool
	}{
		{"", false},
		{"12345", false},
		{"123456", true},
		{"a-much-longer-password", true},
	}

	for _, tt := range tests {
		if got := Validate(tt.password); got != tt.want {
			t.Errorf("Validate(%q) = %v, want %v", tt.password, got, tt.want)
		}
	}
}
