// Package schedule manages recurring jobs: daily triggers that fire a
// payload on a background cron loop, independent of the interactive flow.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"taskpilot/quote"
)

// QuoteSource provides the price behind the stock report payload.
type QuoteSource interface {
	Fetch(ctx context.Context, symbol string) (float64, error)
}

// Sender delivers a composed message.
type Sender interface {
	Send(subject, body, to string) error
}

// Registry owns the scheduled jobs for the process lifetime. Lifecycle:
// create, register jobs, Start, Stop. Registration is also safe while the
// poller is running.
type Registry struct {
	cron   *cron.Cron
	quotes QuoteSource
	sender Sender
	out    io.Writer

	// injectable for tests
	now          func() time.Time
	catchUpDelay time.Duration

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

// NewRegistry creates an empty job registry.
func NewRegistry(quotes QuoteSource, sender Sender, out io.Writer) *Registry {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	c := cron.New(
		cron.WithParser(parser),
		cron.WithChain(cron.Recover(cron.DefaultLogger)),
	)

	return &Registry{
		cron:         c,
		quotes:       quotes,
		sender:       sender,
		out:          out,
		now:          time.Now,
		catchUpDelay: time.Second,
		entries:      make(map[string]cron.EntryID),
	}
}

// RegisterStockReport validates the trigger time and schedules a daily
// stock-price email. If the trigger time equals the current wall-clock
// minute, the payload additionally fires once after a short delay so a
// same-minute request is not deferred a full day.
func (r *Registry) RegisterStockReport(to, timeStr, symbol string) error {
	clock, err := ParseClock(timeStr)
	if err != nil {
		return err
	}

	// "HH:MM" → "MM HH * * *"
	hhmm := strings.SplitN(clock, ":", 2)
	spec := fmt.Sprintf("%s %s * * *", hhmm[1], hhmm[0])

	job := func() {
		r.runStockReport(context.Background(), to, symbol)
	}

	key := fmt.Sprintf("%s %s %s", symbol, to, clock)

	r.mu.Lock()
	// re-registering the same report replaces the previous entry, so a
	// duplicate request never doubles the daily mail
	if old, ok := r.entries[key]; ok {
		r.cron.Remove(old)
	}
	id, err := r.cron.AddFunc(spec, job)
	if err != nil {
		r.mu.Unlock()
		return fmt.Errorf("failed to schedule job: %w", err)
	}
	r.entries[key] = id
	r.mu.Unlock()

	fmt.Fprintf(r.out, "Scheduling %s stock price email to %s at %s daily\n", symbol, to, clock)

	if clock == r.now().Format("15:04") {
		fmt.Fprintln(r.out, "Trigger time matches current time, sending once now")
		go func() {
			time.Sleep(r.catchUpDelay)
			job()
		}()
	}

	return nil
}

// Jobs returns a description of every registered job.
func (r *Registry) Jobs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	jobs := make([]string, 0, len(r.entries))
	for key := range r.entries {
		jobs = append(jobs, key)
	}
	return jobs
}

// Start launches the background poller. It returns immediately; due jobs
// run on the cron goroutine.
func (r *Registry) Start() {
	r.cron.Start()
}

// Stop halts the poller and returns a context that is done once running
// jobs have finished.
func (r *Registry) Stop() context.Context {
	return r.cron.Stop()
}

// runStockReport is the payload for a scheduled stock report. Every failure
// is contained here: an unavailable quote or a delivery error is logged and
// the poller lives on.
func (r *Registry) runStockReport(ctx context.Context, to, symbol string) {
	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(r.out, "stock report for %s panicked: %v\n", symbol, rec)
		}
	}()

	price, err := r.quotes.Fetch(ctx, symbol)
	if err != nil {
		if errors.Is(err, quote.ErrUnavailable) {
			fmt.Fprintf(r.out, "Skipping email: stock price for %s unavailable\n", symbol)
		} else {
			fmt.Fprintf(r.out, "Stock fetch for %s failed: %v\n", symbol, err)
		}
		return
	}

	subject := fmt.Sprintf("%s Stock Price Update", symbol)
	body := fmt.Sprintf("The current stock price for %s is $%.2f.", symbol, price)

	if err := r.sender.Send(subject, body, to); err != nil {
		fmt.Fprintf(r.out, "Failed to send stock report to %s: %v\n", to, err)
		return
	}
	fmt.Fprintf(r.out, "Stock report for %s sent to %s\n", symbol, to)
}
