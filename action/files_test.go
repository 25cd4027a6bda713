package action

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"image"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCategorizeAndMove(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "report.pdf", "photo.JPG", "notes.txt", "main.go", "to_do.txt", "mystery.xyz")

	org := NewOrganizer(nil, 60, &bytes.Buffer{})
	if err := org.CategorizeAndMove(dir, []string{"to_do.txt"}); err != nil {
		t.Fatalf("CategorizeAndMove failed: %v", err)
	}

	moved := map[string]string{
		"report.pdf": "PDFs",
		"photo.JPG":  "Images",
		"notes.txt":  "Documents",
		"main.go":    "Code",
	}
	for name, category := range moved {
		if _, err := os.Stat(filepath.Join(dir, category, name)); err != nil {
			t.Errorf("Expected %s in %s/: %v", name, category, err)
		}
	}

	// Excluded and unknown-extension files stay put
	for _, name := range []string{"to_do.txt", "mystery.xyz"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("Expected %s untouched: %v", name, err)
		}
	}
}

func TestCompressImages(t *testing.T) {
	dir := t.TempDir()

	img := imaging.New(8, 8, image.White.C)
	src := filepath.Join(dir, "photo.jpg")
	if err := imaging.Save(img, src, imaging.JPEGQuality(95)); err != nil {
		t.Fatal(err)
	}
	// Non-image files are left alone
	writeFiles(t, dir, "readme.txt")

	org := NewOrganizer(nil, 60, &bytes.Buffer{})
	if err := org.CompressImages(dir); err != nil {
		t.Fatalf("CompressImages failed: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "compressed_photo.jpg")); err != nil {
		t.Errorf("Expected compressed output: %v", err)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("Expected original removed after successful compression")
	}
	if _, err := os.Stat(filepath.Join(dir, "readme.txt")); err != nil {
		t.Errorf("Expected non-image untouched: %v", err)
	}
}

func TestCompressImagesSkipsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "broken.jpg")

	org := NewOrganizer(nil, 60, &bytes.Buffer{})
	if err := org.CompressImages(dir); err != nil {
		t.Fatalf("Expected sweep to continue past broken files: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dir, "broken.jpg")); err != nil {
		t.Errorf("Expected broken file left in place: %v", err)
	}
}

func TestCompressPDFsRetriesThenSucceeds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.pdf")
	if err := os.WriteFile(path, []byte("original pdf bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			http.Error(w, "conversion busy", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"Files": []map[string]string{
				{"FileName": "doc.pdf", "FileData": base64.StdEncoding.EncodeToString([]byte("compressed"))},
			},
		})
	}))
	defer ts.Close()

	org := NewOrganizer(NewConvertClient("secret", ts.URL), 60, &bytes.Buffer{})
	if err := org.CompressPDFs(dir); err != nil {
		t.Fatalf("CompressPDFs failed: %v", err)
	}

	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "compressed" {
		t.Errorf("Expected file replaced with compressed bytes, got %q", data)
	}
}

func TestCompressPDFsGivesUpAfterCap(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "doc.pdf"), []byte("original"), 0644); err != nil {
		t.Fatal(err)
	}

	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer ts.Close()

	var out bytes.Buffer
	org := NewOrganizer(NewConvertClient("secret", ts.URL), 60, &out)
	if err := org.CompressPDFs(dir); err != nil {
		t.Fatalf("Expected per-file failure to be non-fatal: %v", err)
	}

	if attempts != pdfCompressAttempts {
		t.Errorf("Expected %d attempts, got %d", pdfCompressAttempts, attempts)
	}
	if data, _ := os.ReadFile(filepath.Join(dir, "doc.pdf")); string(data) != "original" {
		t.Error("Expected original left intact on failure")
	}
	if !bytes.Contains(out.Bytes(), []byte("moving on")) {
		t.Error("Expected give-up message in output")
	}
}

func TestCompressPDFsRequiresConfiguration(t *testing.T) {
	org := NewOrganizer(nil, 60, &bytes.Buffer{})
	if err := org.CompressPDFs(t.TempDir()); err == nil {
		t.Error("Expected error when conversion service is not configured")
	}
}

func TestNewConvertClientRequiresSecret(t *testing.T) {
	if NewConvertClient("", "") != nil {
		t.Error("Expected nil client without a secret")
	}
	c := NewConvertClient("s", "")
	if c == nil {
		t.Fatal("Expected client with a secret")
	}
	if c.baseURL != DefaultConvertBaseURL {
		t.Errorf("Expected default base URL, got %s", c.baseURL)
	}
}
