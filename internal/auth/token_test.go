package auth

import (
	"testing"

	"github.com/spec-kit/complaint-service/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 5)

	token, exp, err := tm.GenerateToken(42, domain.RoleTeamLead)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if exp.IsZero() {
		t.Fatalf("expected expiry timestamp")
	}

	claims, err := tm.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	userID, err := claims.UserID()
	if err != nil {
		t.Fatalf("UserID: %v", err)
	}
	if userID != 42 || claims.Role != domain.RoleTeamLead {
		t.Fatalf("claims = (%d, %s), want (42, team_lead)", userID, claims.Role)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("secret-a", 5).GenerateToken(1, domain.RoleCustomer)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := NewTokenManager("secret-b", 5).ParseToken(token); err == nil {
		t.Fatalf("expected parse failure with wrong secret")
	}
}
