package task

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"taskpilot/llm"
)

// Organizer performs the directory housekeeping work the assistant can
// propose: moving files into category folders and recompressing what it
// finds there.
type Organizer interface {
	CategorizeAndMove(dir string, exclude []string) error
	CompressImages(dir string) error
	CompressPDFs(dir string) error
}

var organizeTasks = []string{
	"Organize files into appropriate category folders",
	"Compress PDF files",
	"Compress image files",
}

// RunOrganize consults the model about the standard housekeeping tasks for
// dir and runs each one the user confirms. The model's mapping is advisory
// display only; execution is bound to the fixed task set.
func (a *Analyzer) RunOrganize(ctx context.Context, dir string, org Organizer) error {
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("directory not found: %s", dir)
	}

	prompt := llm.BuildOrganizePrompt(organizeTasks, Catalog())
	analysis, err := a.adapter.Generate(ctx, prompt)
	if err != nil {
		return fmt.Errorf("model request failed: %w", err)
	}

	fmt.Fprintln(a.out, "\n=== Function Analysis ===")
	suggested := parseOrganizeAnalysis(analysis)

	for _, taskText := range organizeTasks {
		fmt.Fprintf(a.out, "\nTask: %s\n", taskText)
		if fn, ok := suggested[taskText]; ok {
			fmt.Fprintf(a.out, "Function: %s\n", fn)
		}

		ok, err := a.confirm("Should I proceed with this task? (yes/no): ")
		if err != nil {
			return err
		}
		if !ok {
			continue
		}

		if err := a.runOrganizeTask(taskText, dir, org); err != nil {
			color.New(color.FgRed).Fprintf(a.out, "✗ %v\n", err)
		}
	}

	fmt.Fprintln(a.out, "\nAll requested operations completed!")
	return nil
}

func (a *Analyzer) runOrganizeTask(taskText, dir string, org Organizer) error {
	switch taskText {
	case organizeTasks[0]:
		return org.CategorizeAndMove(dir, []string{TaskListName})
	case organizeTasks[1]:
		pdfDir := filepath.Join(dir, "PDFs")
		if _, err := os.Stat(pdfDir); err != nil {
			return nil // nothing was filed there
		}
		return org.CompressPDFs(pdfDir)
	case organizeTasks[2]:
		imgDir := filepath.Join(dir, "Images")
		if _, err := os.Stat(imgDir); err != nil {
			return nil
		}
		return org.CompressImages(imgDir)
	}
	return nil
}

// parseOrganizeAnalysis picks the "Task N: [task] - [function] - [reason]"
// lines out of the completion. Lines that don't fit are ignored.
func parseOrganizeAnalysis(analysis string) map[string]string {
	suggestions := make(map[string]string)
	for _, line := range strings.Split(strings.TrimSpace(analysis), "\n") {
		if !strings.HasPrefix(line, "Task") {
			continue
		}
		parts := strings.Split(line, " - ")
		if len(parts) < 3 {
			continue
		}
		header := strings.SplitN(parts[0], ": ", 2)
		if len(header) != 2 {
			continue
		}
		taskText := strings.Trim(strings.TrimSpace(header[1]), "[]")
		suggestions[taskText] = strings.Trim(strings.TrimSpace(parts[1]), "[]")
	}
	return suggestions
}
