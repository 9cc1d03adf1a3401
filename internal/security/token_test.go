package security

import (
	"testing"
	"time"

	"ptsportal/api/internal/models"
)

func TestSessionTokenRoundTrip(t *testing.T) {
	t.Parallel()

	schedule := "sched-1"
	user := models.SessionUser{
		ID:         "user-1",
		Email:      "juan_delacruz@dlsu.edu.ph",
		UserType:   models.UserTypeAdmin,
		ScheduleID: &schedule,
	}

	token, err := GenerateSessionToken("secret", user, "jti-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	claims, err := ParseSessionToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}

	if claims.UserID != user.ID {
		t.Fatalf("uid mismatch: got %q want %q", claims.UserID, user.ID)
	}
	if claims.Email != user.Email {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, user.Email)
	}
	if claims.UserType != models.UserTypeAdmin {
		t.Fatalf("role mismatch: got %q", claims.UserType)
	}
	if claims.ScheduleID == nil || *claims.ScheduleID != schedule {
		t.Fatalf("schedule mismatch: got %v", claims.ScheduleID)
	}
	if claims.ID != "jti-1" {
		t.Fatalf("token id mismatch: got %q", claims.ID)
	}

	got := claims.SessionUser()
	if got.ID != user.ID || got.Email != user.Email || got.UserType != user.UserType ||
		got.ScheduleID == nil || *got.ScheduleID != schedule {
		t.Fatalf("projection mismatch: got %+v want %+v", got, user)
	}
}

func TestSessionTokenNoSchedule(t *testing.T) {
	t.Parallel()

	user := models.SessionUser{ID: "u1", Email: "e@dlsu.edu.ph", UserType: models.UserTypeMember}

	token, err := GenerateSessionToken("secret", user, "jti-2", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	claims, err := ParseSessionToken(token, "secret")
	if err != nil {
		t.Fatalf("ParseSessionToken error: %v", err)
	}
	if claims.ScheduleID != nil {
		t.Fatalf("expected nil schedule, got %v", *claims.ScheduleID)
	}
}

func TestSessionTokenExpired(t *testing.T) {
	t.Parallel()

	user := models.SessionUser{ID: "u1", Email: "e@dlsu.edu.ph", UserType: models.UserTypeMember}

	token, err := GenerateSessionToken("secret", user, "jti-3", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	if _, err := ParseSessionToken(token, "secret"); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestSessionTokenWrongSecret(t *testing.T) {
	t.Parallel()

	user := models.SessionUser{ID: "u1", Email: "e@dlsu.edu.ph", UserType: models.UserTypeMember}

	token, err := GenerateSessionToken("right", user, "jti-4", time.Hour)
	if err != nil {
		t.Fatalf("GenerateSessionToken error: %v", err)
	}

	if _, err := ParseSessionToken(token, "wrong"); err == nil {
		t.Fatal("expected error for wrong secret")
	}
}

func TestParseSessionTokenMalformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseSessionToken("not.a.jwt", "secret"); err == nil {
		t.Fatal("expected error for malformed token")
	}
}
