package auth

import (
	"testing"
	"time"
)

func TestSession_Valid(t *testing.T) {
	now := time.Now()
	s := Session{AccessToken: "tok", ExpiresAt: now.Add(time.Hour)}
	if !s.Valid(now) {
		t.Fatalf("expected valid session")
	}
	if (Session{ExpiresAt: now.Add(time.Hour)}).Valid(now) {
		t.Fatalf("session without token must not be valid")
	}
	if (Session{AccessToken: "tok", ExpiresAt: now.Add(-time.Second)}).Valid(now) {
		t.Fatalf("expired session must not be valid")
	}
}

func TestSession_ExpiresWithin(t *testing.T) {
	now := time.Now()
	s := Session{AccessToken: "tok", ExpiresAt: now.Add(3 * time.Minute)}
	if !s.ExpiresWithin(now, 5*time.Minute) {
		t.Fatalf("expected session inside look-ahead window")
	}
	if s.ExpiresWithin(now, time.Minute) {
		t.Fatalf("session outside window reported as expiring")
	}
}

func TestProfile_IsAdmin(t *testing.T) {
	if !(Profile{RoleID: AdminRoleID}).IsAdmin() {
		t.Fatalf("expected admin")
	}
	if (Profile{RoleID: 2}).IsAdmin() {
		t.Fatalf("did not expect admin")
	}
}
