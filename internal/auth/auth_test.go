package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("profile-123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	sub, err := VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken: %v", err)
	}
	if sub != "profile-123" {
		t.Errorf("subject = %q, want profile-123", sub)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken("profile-123")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "second-secret")
	if _, err := VerifyToken(token); err == nil {
		t.Fatal("expected verification to fail under a different secret")
	}
}

func TestMissingSecretPanics(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic when JWT_SECRET is unset")
		}
	}()
	GenerateToken("profile-123")
}

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := CheckPassword(hash, "hunter2hunter2"); err != nil {
		t.Errorf("CheckPassword with correct password: %v", err)
	}
	if err := CheckPassword(hash, "wrong-password"); err == nil {
		t.Error("CheckPassword accepted a wrong password")
	}
}
