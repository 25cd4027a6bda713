package mailer

import "testing"

func TestNewValidatesOptions(t *testing.T) {
	if _, err := New(Options{From: "a@b.com"}); err == nil {
		t.Error("Expected error for missing host")
	}
	if _, err := New(Options{Host: "smtp.example.com"}); err == nil {
		t.Error("Expected error for missing from address")
	}

	m, err := New(Options{Host: "smtp.example.com", From: "a@b.com"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if m.opts.Port != 587 {
		t.Errorf("Expected default port 587, got %d", m.opts.Port)
	}
}

func TestSendRejectsBadAddresses(t *testing.T) {
	m, err := New(Options{Host: "smtp.example.com", From: "a@b.com"})
	if err != nil {
		t.Fatal(err)
	}

	// Fails at message construction, before any network I/O
	if err := m.Send("s", "b", "not-an-address"); err == nil {
		t.Error("Expected error for malformed recipient")
	}
}
