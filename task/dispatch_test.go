package task

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

// recordingLibrary captures every invocation for assertions.
type recordingLibrary struct {
	calls     []string
	lastEmail struct{ subject, body, to string }
	lastStart time.Time
	lastEnd   time.Time
	failWith  error
	panicWith string
}

func (l *recordingLibrary) record(name string) error {
	l.calls = append(l.calls, name)
	if l.panicWith != "" {
		panic(l.panicWith)
	}
	return l.failWith
}

func (l *recordingLibrary) SendEmail(subject, body, to string) error {
	l.lastEmail = struct{ subject, body, to string }{subject, body, to}
	return l.record("send_email")
}

func (l *recordingLibrary) RemindMe(subject, body, to string) error {
	l.lastEmail = struct{ subject, body, to string }{subject, body, to}
	return l.record("remind_me")
}

func (l *recordingLibrary) AddCalendarInvite(subject, body, to string, start, end time.Time) error {
	l.lastEmail = struct{ subject, body, to string }{subject, body, to}
	l.lastStart, l.lastEnd = start, end
	return l.record("add_calendar_invite")
}

func (l *recordingLibrary) ShareStockPrice(to, timeStr, symbol string) error {
	return l.record("share_stock_price")
}

func TestDispatchUnknownActionHasNoSideEffect(t *testing.T) {
	lib := &recordingLibrary{}
	d := NewDispatcher(lib)

	err := d.Dispatch(&Invocation{Action: "launch_rocket", Params: map[string]string{}})

	var unknownErr *UnknownActionError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Expected UnknownActionError, got %v", err)
	}
	if len(lib.calls) != 0 {
		t.Errorf("Expected zero side effects, got calls: %v", lib.calls)
	}
}

func TestDispatchEmptyActionName(t *testing.T) {
	lib := &recordingLibrary{}
	d := NewDispatcher(lib)

	err := d.Dispatch(&Invocation{Action: "", Params: map[string]string{}})

	var unknownErr *UnknownActionError
	if !errors.As(err, &unknownErr) {
		t.Fatalf("Expected UnknownActionError for empty name, got %v", err)
	}
}

func TestDispatchRemindMe(t *testing.T) {
	lib := &recordingLibrary{}
	d := NewDispatcher(lib)

	inv := ParseInvocation("Function: remind_me\n" +
		"- subject = \"Report Reminder\"\n" +
		"- body = \"Submit the report by Friday.\"\n" +
		"- to_email = \"a@b.com\"\n")

	if err := d.Dispatch(inv); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	if len(lib.calls) != 1 || lib.calls[0] != "remind_me" {
		t.Fatalf("Expected exactly one remind_me call, got %v", lib.calls)
	}
	if lib.lastEmail.subject != "Report Reminder" {
		t.Errorf("Unexpected subject %q", lib.lastEmail.subject)
	}
	if lib.lastEmail.body != "Submit the report by Friday." {
		t.Errorf("Unexpected body %q", lib.lastEmail.body)
	}
	if lib.lastEmail.to != "a@b.com" {
		t.Errorf("Unexpected recipient %q", lib.lastEmail.to)
	}
}

func TestDispatchCalendarInviteBindsTimes(t *testing.T) {
	lib := &recordingLibrary{}
	d := NewDispatcher(lib)

	inv := ParseInvocation("Function: add_calendar_invite\n" +
		"- subject = \"Sync\"\n" +
		"- body = \"Weekly sync\"\n" +
		"- to_email = \"a@b.com\"\n" +
		"- event_start = 2025-03-09 14:00\n" +
		"- event_end = datetime: 2025-03-09 15:00:00\n")

	if err := d.Dispatch(inv); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}

	wantStart := time.Date(2025, 3, 9, 14, 0, 0, 0, time.UTC)
	if !lib.lastStart.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, lib.lastStart)
	}
	if !lib.lastEnd.Equal(wantStart.Add(time.Hour)) {
		t.Errorf("Expected end one hour later, got %v", lib.lastEnd)
	}
}

func TestDispatchWrapsExecutionError(t *testing.T) {
	cause := fmt.Errorf("smtp connection refused")
	lib := &recordingLibrary{failWith: cause}
	d := NewDispatcher(lib)

	inv := ParseInvocation("Function: send_email\n" +
		"- subject = s\n- body = b\n- to_email = a@b.com\n")

	err := d.Dispatch(inv)

	var execErr *ActionExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Expected ActionExecutionError, got %v", err)
	}
	if execErr.Action != "send_email" {
		t.Errorf("Expected action name in error, got %s", execErr.Action)
	}
	if !errors.Is(err, cause) {
		t.Error("Expected underlying cause to be preserved")
	}
}

func TestDispatchRecoversHandlerPanic(t *testing.T) {
	lib := &recordingLibrary{panicWith: "boom"}
	d := NewDispatcher(lib)

	inv := ParseInvocation("Function: send_email\n" +
		"- subject = s\n- body = b\n- to_email = a@b.com\n")

	err := d.Dispatch(inv)

	var execErr *ActionExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("Expected panic converted to ActionExecutionError, got %v", err)
	}
}

func TestKindFromNameRoundTrip(t *testing.T) {
	kinds := []ActionKind{ActionSendEmail, ActionRemindMe, ActionAddCalendarInvite, ActionShareStockPrice}
	for _, k := range kinds {
		if got := KindFromName(k.Name()); got != k {
			t.Errorf("KindFromName(%s) = %v, want %v", k.Name(), got, k)
		}
	}
	if KindFromName("unknown") != ActionUnknown {
		t.Error("Expected unknown name to decode to ActionUnknown")
	}
}

func TestCatalogListsAllActions(t *testing.T) {
	catalog := Catalog()

	for _, name := range []string{"send_email", "remind_me", "add_calendar_invite", "share_stock_price"} {
		if !strings.Contains(catalog, name) {
			t.Errorf("Expected catalog to mention %s:\n%s", name, catalog)
		}
	}
}
