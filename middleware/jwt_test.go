package middleware

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("idn_abc123", "System Admin", "manager")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != "idn_abc123" || claims.Name != "System Admin" || claims.Role != "manager" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseTokenRejectsWrongKey(t *testing.T) {
	t.Setenv("JWT_SECRET", "first-secret")
	token, err := GenerateToken("idn_abc123", "System Admin", "manager")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	t.Setenv("JWT_SECRET", "other-secret")
	if _, err := ParseToken(token); err == nil {
		t.Error("token signed with a different key was accepted")
	}
}
