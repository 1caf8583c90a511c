package repository

import "testing"

func TestSealer_RoundTrip(t *testing.T) {
	s := NewSealer("k")
	a, err := s.Seal("token")
	if err != nil {
		t.Fatalf("Seal: %v", err)
	}
	b, _ := s.Seal("token")
	if a == b {
		t.Fatalf("two seals of the same value must differ (random nonce)")
	}
	got, err := s.Open(a)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if got != "token" {
		t.Fatalf("got %q, want %q", got, "token")
	}
}

func TestSealer_OpenRejects(t *testing.T) {
	s := NewSealer("k")
	sealed, _ := NewSealer("other").Seal("token")

	for name, in := range map[string]string{
		"wrong key":   sealed,
		"not base64":  "!!!",
		"too short":   "AAAA",
		"empty input": "",
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := s.Open(in); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
