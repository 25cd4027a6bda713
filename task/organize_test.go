package task

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

type fakeOrganizer struct {
	moved      int
	images     int
	pdfs       int
	excludeLog []string
}

func (f *fakeOrganizer) CategorizeAndMove(dir string, exclude []string) error {
	f.moved++
	f.excludeLog = exclude
	return nil
}

func (f *fakeOrganizer) CompressImages(dir string) error {
	f.images++
	return nil
}

func (f *fakeOrganizer) CompressPDFs(dir string) error {
	f.pdfs++
	return nil
}

const organizeCompletion = "Task 1: [Organize files into appropriate category folders] - [categorize_and_move_files] - [moves files by extension]\n" +
	"Task 2: [Compress PDF files] - [compress_pdfs_in_folder] - [shrinks PDFs]\n" +
	"Task 3: [Compress image files] - [compress_images_in_folder] - [shrinks images]\n"

func TestRunOrganizeConfirmedAll(t *testing.T) {
	dir := t.TempDir()
	// Category folders exist so the compression steps run
	if err := os.Mkdir(filepath.Join(dir, "PDFs"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "Images"), 0755); err != nil {
		t.Fatal(err)
	}

	adapter := &scriptedAdapter{completions: []string{organizeCompletion}}
	org := &fakeOrganizer{}
	var out bytes.Buffer
	a := NewAnalyzer(adapter, NewDispatcher(&recordingLibrary{}), confirmAlways("yes"), &out)

	if err := a.RunOrganize(context.Background(), dir, org); err != nil {
		t.Fatalf("RunOrganize failed: %v", err)
	}

	if org.moved != 1 || org.pdfs != 1 || org.images != 1 {
		t.Errorf("Expected each step once, got moved=%d pdfs=%d images=%d", org.moved, org.pdfs, org.images)
	}
	if len(org.excludeLog) != 1 || org.excludeLog[0] != TaskListName {
		t.Errorf("Expected to_do.txt excluded from the move, got %v", org.excludeLog)
	}
}

func TestRunOrganizeDeclinedDoesNothing(t *testing.T) {
	adapter := &scriptedAdapter{completions: []string{organizeCompletion}}
	org := &fakeOrganizer{}
	var out bytes.Buffer
	a := NewAnalyzer(adapter, NewDispatcher(&recordingLibrary{}), confirmAlways("no"), &out)

	if err := a.RunOrganize(context.Background(), t.TempDir(), org); err != nil {
		t.Fatalf("RunOrganize failed: %v", err)
	}

	if org.moved != 0 || org.pdfs != 0 || org.images != 0 {
		t.Error("Expected no steps to run when everything is declined")
	}
}

func TestRunOrganizeMissingDir(t *testing.T) {
	adapter := &scriptedAdapter{completions: []string{organizeCompletion}}
	var out bytes.Buffer
	a := NewAnalyzer(adapter, NewDispatcher(&recordingLibrary{}), confirmAlways("yes"), &out)

	err := a.RunOrganize(context.Background(), filepath.Join(t.TempDir(), "nope"), &fakeOrganizer{})
	if err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestParseOrganizeAnalysis(t *testing.T) {
	suggestions := parseOrganizeAnalysis(organizeCompletion + "garbage line\nTask 9: broken\n")

	if len(suggestions) != 3 {
		t.Fatalf("Expected 3 suggestions, got %d: %v", len(suggestions), suggestions)
	}
	if suggestions["Organize files into appropriate category folders"] != "categorize_and_move_files" {
		t.Errorf("Unexpected mapping: %v", suggestions)
	}
}
