// Package action implements the catalog of side effects the dispatcher can
// trigger: outgoing mail, calendar invites, the recurring stock report, and
// directory housekeeping.
package action

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	ics "github.com/arran4/golang-ical"
)

// Sender delivers a composed plain-text message.
type Sender interface {
	Send(subject, body, to string) error
}

// Scheduler registers the recurring stock report.
type Scheduler interface {
	RegisterStockReport(to, timeStr, symbol string) error
}

// InviteFileName is where the calendar invite is written before mailing.
const InviteFileName = "invite.ics"

// Library is the concrete action catalog. It satisfies task.Library.
type Library struct {
	sender    Sender
	scheduler Scheduler
	inviteDir string // directory the .ics file is written to
}

// NewLibrary builds the action catalog. inviteDir is where calendar invite
// files are written; empty means the current directory.
func NewLibrary(sender Sender, scheduler Scheduler, inviteDir string) *Library {
	return &Library{
		sender:    sender,
		scheduler: scheduler,
		inviteDir: inviteDir,
	}
}

// SendEmail sends a plain email.
func (l *Library) SendEmail(subject, body, to string) error {
	return l.sender.Send(subject, body, to)
}

// RemindMe sends a reminder email. Same delivery as SendEmail; the distinct
// action name keeps the model's intent visible in logs and outcomes.
func (l *Library) RemindMe(subject, body, to string) error {
	return l.sender.Send(subject, body, to)
}

// AddCalendarInvite writes an .ics invite for the event and mails it.
func (l *Library) AddCalendarInvite(subject, body, to string, start, end time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodRequest)

	event := cal.AddEvent(fmt.Sprintf("%d@taskpilot", start.UTC().Unix()))
	event.SetSummary(subject)
	event.SetDescription(body)
	event.SetStartAt(start.UTC())
	event.SetEndAt(end.UTC())
	event.SetDtStampTime(time.Now().UTC())

	path := filepath.Join(l.inviteDir, InviteFileName)
	if err := os.WriteFile(path, []byte(cal.Serialize()), 0644); err != nil {
		return fmt.Errorf("failed to write calendar invite: %w", err)
	}

	if err := l.sender.Send(subject, body, to); err != nil {
		return err
	}
	return nil
}

// ShareStockPrice registers the daily stock report for the recipient.
func (l *Library) ShareStockPrice(to, timeStr, symbol string) error {
	return l.scheduler.RegisterStockReport(to, timeStr, symbol)
}
