package store

import (
	"context"
	"testing"
	"time"

	"github.com/uniewms/carrierboard/internal/db"
	"github.com/uniewms/carrierboard/internal/freight"
)

func TestSessionRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := freight.User{ID: "c-1", Email: "ops@example.com", Role: "freight-carrier", WarehouseCode: "LAX1"}
	if err := CreateSession(ctx, database, "jti-1", "upstream-token", user, time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	s, err := GetSession(ctx, database, "jti-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if s == nil {
		t.Fatal("expected session, got nil")
	}
	if s.APIToken != "upstream-token" {
		t.Errorf("api token = %q", s.APIToken)
	}
	if s.User.Email != "ops@example.com" || s.User.WarehouseCode != "LAX1" {
		t.Errorf("user snapshot = %+v", s.User)
	}
}

func TestGetSessionMissing(t *testing.T) {
	database := db.NewTestDB(t)

	s, err := GetSession(context.Background(), database, "nope")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if s != nil {
		t.Error("expected nil for unknown jti")
	}
}

func TestExpiredSessionIsLoggedOut(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := freight.User{ID: "c-1", Email: "ops@example.com"}
	if err := CreateSession(ctx, database, "jti-old", "tok", user, time.Now().Add(-time.Minute)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	s, err := GetSession(ctx, database, "jti-old")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if s != nil {
		t.Error("expired session should read as nil")
	}
}

func TestDeleteSession(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	user := freight.User{ID: "c-1", Email: "ops@example.com"}
	CreateSession(ctx, database, "jti-1", "tok", user, time.Now().Add(time.Hour))

	if err := DeleteSession(ctx, database, "jti-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	s, _ := GetSession(ctx, database, "jti-1")
	if s != nil {
		t.Error("session should be gone after delete")
	}
}

func TestFilterPrefsRoundTrip(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	got, err := GetFilterPrefs(ctx, database, "c-1")
	if err != nil {
		t.Fatalf("GetFilterPrefs: %v", err)
	}
	if got != (FilterPrefs{}) {
		t.Errorf("expected zero prefs, got %+v", got)
	}

	want := FilterPrefs{JobType: "FTL", DestinationState: "CA", Sort: "createdAt_desc"}
	if err := SaveFilterPrefs(ctx, database, "c-1", want); err != nil {
		t.Fatalf("SaveFilterPrefs: %v", err)
	}

	// Upsert overwrites.
	want.DestinationState = "TX"
	if err := SaveFilterPrefs(ctx, database, "c-1", want); err != nil {
		t.Fatalf("SaveFilterPrefs update: %v", err)
	}

	got, err = GetFilterPrefs(ctx, database, "c-1")
	if err != nil {
		t.Fatalf("GetFilterPrefs: %v", err)
	}
	if got != want {
		t.Errorf("prefs = %+v, want %+v", got, want)
	}
}

func TestSigningSecretStable(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	first, err := GetSigningSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetSigningSecret: %v", err)
	}
	if first == "" {
		t.Fatal("empty secret")
	}

	second, err := GetSigningSecret(ctx, database)
	if err != nil {
		t.Fatalf("GetSigningSecret: %v", err)
	}
	if first != second {
		t.Error("secret changed between calls")
	}
}
