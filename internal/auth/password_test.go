package auth

import "testing"

func TestValidPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"valid", "Abcdef1", true},
		{"valid minimal length", "Abcde1", true},
		{"too short", "Abc12", false},
		{"no uppercase", "abcdef1", false},
		{"no lowercase", "ABCDEF1", false},
		{"no digit", "Abcdefg", false},
		{"empty", "", false},
		{"unicode letters count", "Ümlaut1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidPassword(tt.password); got != tt.want {
				t.Errorf("ValidPassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("Secret1!")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "Secret1!" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if !VerifyPassword(hash, "Secret1!") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "Wrong1!") {
		t.Error("wrong password accepted")
	}
}
