package session

import (
	"testing"
	"time"

	"github.com/uniewms/carrierboard/internal/freight"
)

const testSecret = "test-secret"

func TestTokenRoundTrip(t *testing.T) {
	user := freight.User{
		ID:               "u-1",
		Email:            "ops@example.com",
		Name:             "Dispatch",
		WarehouseCode:    "LAX1",
		FreightCarrierID: "c-9",
	}

	token, jti, err := GenerateToken(testSecret, user, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if jti == "" {
		t.Fatal("empty jti")
	}

	claims, err := ValidateToken(testSecret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.ID != jti {
		t.Errorf("claims jti = %q, want %q", claims.ID, jti)
	}
	if claims.Email != "ops@example.com" || claims.CarrierID != "c-9" {
		t.Errorf("claims = %+v", claims)
	}
	if claims.Subject != "u-1" {
		t.Errorf("subject = %q", claims.Subject)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	token, _, err := GenerateToken(testSecret, freight.User{Email: "a@b.c"}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken("other-secret", token); err == nil {
		t.Error("expected error for wrong secret")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	token, _, err := GenerateToken(testSecret, freight.User{Email: "a@b.c"}, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := ValidateToken(testSecret, token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestUniqueJTIs(t *testing.T) {
	_, a, _ := GenerateToken(testSecret, freight.User{Email: "a@b.c"}, time.Hour)
	_, b, _ := GenerateToken(testSecret, freight.User{Email: "a@b.c"}, time.Hour)
	if a == b {
		t.Error("JTIs should be unique")
	}
}
