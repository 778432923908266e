package stamp_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	gofpdf "github.com/phpdave11/gofpdf"
	"github.com/tsawler/tabula"

	"github.com/lvillar/podsign/extract"
	"github.com/lvillar/podsign/overlay"
	"github.com/lvillar/podsign/stamp"
)

// createTestPDF generates a simple test PDF file with the given number of
// pages.
func createTestPDF(t *testing.T, filename string, numPages int) {
	t.Helper()
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetFont("Helvetica", "", 14)
	for i := 1; i <= numPages; i++ {
		pdf.AddPage()
		pdf.Text(40, 60, fmt.Sprintf("Page %d of %d", i, numPages))
	}
	if err := pdf.OutputFileAndClose(filename); err != nil {
		t.Fatalf("creating test PDF: %v", err)
	}
}

// testOverlay renders a minimal overlay document.
func testOverlay(t *testing.T) []byte {
	t.Helper()
	fields := extract.Fields{
		Subcon:   extract.Field{Value: "ABC SDN BHD", Found: true},
		Receiver: extract.Field{Value: "Jane Doe", Found: true},
	}
	var buf bytes.Buffer
	if err := overlay.Compose(&buf, nil, fields, "02/01/2026"); err != nil {
		t.Fatalf("composing overlay: %v", err)
	}
	return buf.Bytes()
}

func TestMergePreservesPageCount(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "note.pdf")
	createTestPDF(t, source, 3)

	var buf bytes.Buffer
	if err := stamp.Merge(&buf, source, testOverlay(t)); err != nil {
		t.Fatalf("merge: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Fatal("output does not start with %PDF header")
	}

	merged := filepath.Join(dir, "merged.pdf")
	if err := os.WriteFile(merged, buf.Bytes(), 0644); err != nil {
		t.Fatalf("writing merged PDF: %v", err)
	}

	n, err := stamp.PageCount(merged)
	if err != nil {
		t.Fatalf("counting merged pages: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 pages, got %d", n)
	}
}

// The merged first page is the graphical union of the source page and
// the overlay: both texts must survive, and the overlay must not leak
// onto later pages.
func TestMergeStampsOverlayOnFirstPage(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "note.pdf")
	createTestPDF(t, source, 2)

	merged := filepath.Join(dir, "merged.pdf")
	if err := stamp.MergeFiles(merged, source, testOverlay(t)); err != nil {
		t.Fatalf("merge: %v", err)
	}

	page1, _, err := tabula.Open(merged).Pages(1).Text()
	if err != nil {
		t.Fatalf("extracting page 1 text: %v", err)
	}
	for _, want := range []string{"Page 1 of 2", "ABC", "SDN BHD", "Jane", "02/01/2026"} {
		if !strings.Contains(page1, want) {
			t.Errorf("merged page 1 missing %q; got:\n%s", want, page1)
		}
	}

	page2, _, err := tabula.Open(merged).Pages(2).Text()
	if err != nil {
		t.Fatalf("extracting page 2 text: %v", err)
	}
	if !strings.Contains(page2, "Page 2 of 2") {
		t.Errorf("merged page 2 lost its content; got:\n%s", page2)
	}
	if strings.Contains(page2, "SDN BHD") {
		t.Errorf("overlay leaked onto page 2:\n%s", page2)
	}
}

func TestMergeSinglePage(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "note.pdf")
	createTestPDF(t, source, 1)

	output := filepath.Join(dir, "signed.pdf")
	if err := stamp.MergeFiles(output, source, testOverlay(t)); err != nil {
		t.Fatalf("merge: %v", err)
	}

	n, err := stamp.PageCount(output)
	if err != nil {
		t.Fatalf("counting pages: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 page, got %d", n)
	}
}

func TestMergeEmptyOverlay(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "note.pdf")
	createTestPDF(t, source, 1)

	var buf bytes.Buffer
	if err := stamp.Merge(&buf, source, nil); err == nil {
		t.Error("expected error for empty overlay")
	}
}

func TestMergeMissingSource(t *testing.T) {
	var buf bytes.Buffer
	err := stamp.Merge(&buf, filepath.Join(t.TempDir(), "absent.pdf"), testOverlay(t))
	if err == nil {
		t.Error("expected error for missing source file")
	}
}

func TestPageCount(t *testing.T) {
	dir := t.TempDir()
	source := filepath.Join(dir, "doc.pdf")
	createTestPDF(t, source, 5)

	n, err := stamp.PageCount(source)
	if err != nil {
		t.Fatalf("PageCount: %v", err)
	}
	if n != 5 {
		t.Errorf("expected 5 pages, got %d", n)
	}
}
