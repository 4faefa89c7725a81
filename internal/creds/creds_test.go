package creds

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestTokenRoundTrip(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "credentials.toml"))

	if _, err := s.Token(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Token on empty store: %v, want ErrNotFound", err)
	}
	if err := s.SetToken("tok-123"); err != nil {
		t.Fatalf("SetToken: %v", err)
	}
	got, err := s.Token()
	if err != nil || got != "tok-123" {
		t.Fatalf("Token = %q, %v", got, err)
	}
	if err := s.ClearToken(); err != nil {
		t.Fatalf("ClearToken: %v", err)
	}
	if _, err := s.Token(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Token after clear: %v, want ErrNotFound", err)
	}
}

func TestProfileIndependentOfToken(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "credentials.toml"))

	if err := s.SetToken("tok"); err != nil {
		t.Fatal(err)
	}
	if err := s.SetProfile(`{"userId":"u1","username":"ana"}`); err != nil {
		t.Fatal(err)
	}
	if err := s.ClearToken(); err != nil {
		t.Fatal(err)
	}
	blob, err := s.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if blob != `{"userId":"u1","username":"ana"}` {
		t.Fatalf("Profile = %q", blob)
	}
}
