package cmd

import (
	"strings"
	"testing"
)

func TestNormalizeDir(t *testing.T) {
	cases := map[string]string{
		"/tmp/stuff\n":        "/tmp/stuff",
		"\"/tmp/my files\"\n": "/tmp/my files",
		"'/tmp/stuff'":        "/tmp/stuff",
		"  /tmp/stuff/  ": "/tmp/stuff",
	}

	for input, want := range cases {
		if got := normalizeDir(input); got != want {
			t.Errorf("normalizeDir(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestUnconfiguredSenderReportsCause(t *testing.T) {
	s := &unconfiguredSender{err: errFixture("from address is required")}

	err := s.Send("s", "b", "a@b.com")
	if err == nil {
		t.Fatal("Expected error from unconfigured sender")
	}
	if !strings.Contains(err.Error(), "from address is required") {
		t.Errorf("Expected cause surfaced, got %v", err)
	}
}

type errFixture string

func (e errFixture) Error() string { return string(e) }
