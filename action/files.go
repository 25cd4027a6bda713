package action

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fatih/color"
)

// fileCategories maps category folder names to the extensions filed there.
var fileCategories = map[string][]string{
	"PDFs":      {".pdf"},
	"Images":    {".jpg", ".jpeg", ".png", ".gif"},
	"Code":      {".py", ".js", ".html", ".css", ".cpp", ".java", ".go"},
	"Documents": {".docx", ".txt", ".xlsx", ".csv"},
}

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Organizer performs the directory housekeeping actions. It satisfies
// task.Organizer.
type Organizer struct {
	convert *ConvertClient // nil disables PDF compression
	quality int
	out     io.Writer
}

// NewOrganizer creates a directory organizer. quality is the JPEG quality
// used when recompressing images.
func NewOrganizer(convert *ConvertClient, quality int, out io.Writer) *Organizer {
	if quality <= 0 || quality > 100 {
		quality = 60
	}
	return &Organizer{
		convert: convert,
		quality: quality,
		out:     out,
	}
}

// CategorizeAndMove files each regular file in dir into its category
// folder, skipping the excluded names and anything with an unknown
// extension.
func (o *Organizer) CategorizeAndMove(dir string, exclude []string) error {
	excluded := make(map[string]bool, len(exclude))
	for _, name := range exclude {
		excluded[name] = true
	}

	fmt.Fprintln(o.out, "\n=== Starting File Organization ===")
	fmt.Fprintf(o.out, "Scanning directory: %s\n", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || excluded[entry.Name()] {
			continue
		}

		ext := strings.ToLower(filepath.Ext(entry.Name()))
		category := categoryFor(ext)
		if category == "" {
			continue
		}

		categoryPath := filepath.Join(dir, category)
		if err := os.MkdirAll(categoryPath, 0755); err != nil {
			return fmt.Errorf("failed to create %s folder: %w", category, err)
		}

		src := filepath.Join(dir, entry.Name())
		dst := filepath.Join(categoryPath, entry.Name())
		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("failed to move %s: %w", entry.Name(), err)
		}
		color.New(color.FgGreen).Fprintf(o.out, "✓ Completed: %s -> %s/\n", entry.Name(), category)
	}

	fmt.Fprintln(o.out, "=== Organization Complete ===")
	return nil
}

func categoryFor(ext string) string {
	for category, extensions := range fileCategories {
		for _, e := range extensions {
			if e == ext {
				return category
			}
		}
	}
	return ""
}

// CompressImages recompresses every supported image in dir into a
// compressed_<name> sibling and removes the original on success. A file
// that fails is reported and left untouched; the sweep continues.
func (o *Organizer) CompressImages(dir string) error {
	fmt.Fprintf(o.out, "\n=== Starting Image Compression in %s ===\n", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), "compressed_") {
			continue
		}
		if !imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}

		src := filepath.Join(dir, entry.Name())
		dst := filepath.Join(dir, "compressed_"+entry.Name())
		if err := o.compressImage(src, dst); err != nil {
			color.New(color.FgRed).Fprintf(o.out, "✗ Error compressing %s: %v\n", entry.Name(), err)
			continue
		}

		if err := os.Remove(src); err != nil {
			color.New(color.FgRed).Fprintf(o.out, "✗ Could not remove original %s: %v\n", entry.Name(), err)
			continue
		}
		color.New(color.FgGreen).Fprintf(o.out, "✓ Compressed: %s\n", entry.Name())
	}

	fmt.Fprintln(o.out, "=== Image Compression Complete ===")
	return nil
}

func (o *Organizer) compressImage(src, dst string) error {
	img, err := imaging.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open image: %w", err)
	}
	if err := imaging.Save(img, dst, imaging.JPEGQuality(o.quality)); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}

// pdfCompressAttempts is how many times one PDF is retried before moving on.
const pdfCompressAttempts = 3

// CompressPDFs compresses every PDF in dir in place through the conversion
// service, retrying each file a bounded number of times.
func (o *Organizer) CompressPDFs(dir string) error {
	if o.convert == nil {
		return fmt.Errorf("PDF compression not configured (missing ConvertAPI secret)")
	}

	fmt.Fprintf(o.out, "\n=== Starting PDF Compression in %s ===\n", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".pdf") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		var lastErr error
		for attempt := 1; attempt <= pdfCompressAttempts; attempt++ {
			fmt.Fprintf(o.out, "Compressing PDF: %s (Attempt %d/%d)\n", entry.Name(), attempt, pdfCompressAttempts)
			if lastErr = o.convert.CompressPDF(path); lastErr == nil {
				color.New(color.FgGreen).Fprintf(o.out, "✓ Successfully compressed: %s\n", entry.Name())
				break
			}
			color.New(color.FgRed).Fprintf(o.out, "✗ Error compressing %s (Attempt %d/%d): %v\n",
				entry.Name(), attempt, pdfCompressAttempts, lastErr)
		}
		if lastErr != nil {
			fmt.Fprintf(o.out, "Cannot compress %s after %d attempts, moving on\n", entry.Name(), pdfCompressAttempts)
		}
	}

	fmt.Fprintln(o.out, "=== PDF Compression Complete ===")
	return nil
}
