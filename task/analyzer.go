package task

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"taskpilot/llm"
)

// State tracks a task through the analysis pipeline.
type State string

const (
	StatePending   State = "Pending"
	StateAnalyzed  State = "Analyzed"
	StateConfirmed State = "Confirmed"
	StateDeclined  State = "Declined"
	StateExecuted  State = "Executed"
	StateSkipped   State = "Skipped"
)

// Outcome is the per-task result of one pass through the analyzer. Failure
// handling is carried in values rather than control flow, so a caller can
// see exactly why a task ended up skipped.
type Outcome struct {
	Task     string
	State    State
	Analysis string // verbatim model completion
	Reason   string // populated when State is Skipped
}

// ConfirmFunc asks the user a yes/no question and reports whether they
// affirmed. It blocks until input arrives.
type ConfirmFunc func(prompt string) (bool, error)

// Analyzer walks a task list through analyze → confirm → dispatch. One
// analyzer instance serves one interactive session.
type Analyzer struct {
	adapter    llm.Adapter
	dispatcher *Dispatcher
	confirm    ConfirmFunc
	out        io.Writer
}

// NewAnalyzer creates an analyzer. The confirm function is injected so the
// interactive prompt can be replaced in tests.
func NewAnalyzer(adapter llm.Adapter, dispatcher *Dispatcher, confirm ConfirmFunc, out io.Writer) *Analyzer {
	return &Analyzer{
		adapter:    adapter,
		dispatcher: dispatcher,
		confirm:    confirm,
		out:        out,
	}
}

// Run processes the tasks strictly in input order. Each task moves
// Pending → Analyzed → Confirmed/Declined → Executed/Skipped; no failure in
// one task ever blocks the ones after it.
func (a *Analyzer) Run(ctx context.Context, tasks []string) []Outcome {
	outcomes := make([]Outcome, 0, len(tasks))
	for _, t := range tasks {
		outcomes = append(outcomes, a.runOne(ctx, t))
	}
	return outcomes
}

func (a *Analyzer) runOne(ctx context.Context, taskText string) Outcome {
	outcome := Outcome{Task: taskText, State: StatePending}

	prompt := llm.BuildTaskPrompt(taskText, Catalog())
	analysis, err := a.adapter.Generate(ctx, prompt)
	if err != nil {
		outcome.State = StateSkipped
		outcome.Reason = fmt.Sprintf("model request failed: %v", err)
		color.New(color.FgRed).Fprintf(a.out, "✗ %s\n", outcome.Reason)
		return outcome
	}
	outcome.State = StateAnalyzed
	outcome.Analysis = analysis

	fmt.Fprintln(a.out, "\n=== Task Analysis ===")
	fmt.Fprintln(a.out, analysis)

	ok, err := a.confirm("\nShould I proceed with the task? (yes/no): ")
	if err != nil {
		outcome.State = StateSkipped
		outcome.Reason = fmt.Sprintf("confirmation failed: %v", err)
		return outcome
	}
	if !ok {
		outcome.State = StateSkipped
		outcome.Reason = "declined by user"
		fmt.Fprintln(a.out, "Skipping task.")
		return outcome
	}
	outcome.State = StateConfirmed

	inv := ParseInvocation(analysis)
	if err := a.dispatcher.Dispatch(inv); err != nil {
		outcome.State = StateSkipped
		outcome.Reason = err.Error()
		color.New(color.FgRed).Fprintf(a.out, "✗ %v\n", err)
		return outcome
	}

	outcome.State = StateExecuted
	color.New(color.FgGreen).Fprintf(a.out, "✓ Completed: %s\n", inv)
	return outcome
}
