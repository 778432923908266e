// Package stamp merges a rendered overlay onto the first page of an
// existing PDF and reassembles the full document.
//
// Every source page is imported as a template into a fresh document via
// the gofpdi contrib importer; the overlay is drawn on top of page 1 only,
// so the remaining pages pass through with their order, count, and
// dimensions intact.
package stamp

import (
	"bytes"
	"fmt"
	"io"
	"os"

	gofpdf "github.com/phpdave11/gofpdf"
	"github.com/phpdave11/gofpdf/contrib/gofpdi"
	"github.com/tsawler/tabula"
)

// A4 fallback dimensions in points, used when the importer reports no
// size for a page.
const (
	fallbackWidth  = 595.28
	fallbackHeight = 841.89
)

// Merge overlays the single-page overlay PDF onto page 1 of the source
// document and writes the recomposed document to w. The source must have
// at least one page.
func Merge(w io.Writer, sourcePath string, overlay []byte) error {
	pdf, err := buildStamped(sourcePath, overlay)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("stamp: writing output: %w", err)
	}
	return nil
}

// MergeFiles is Merge writing to a file.
func MergeFiles(outputPath, sourcePath string, overlay []byte) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("stamp: creating %s: %w", outputPath, err)
	}
	defer f.Close()
	return Merge(f, sourcePath, overlay)
}

func buildStamped(sourcePath string, overlay []byte) (*gofpdf.Fpdf, error) {
	if len(overlay) == 0 {
		return nil, fmt.Errorf("stamp: empty overlay document")
	}
	pageCount, err := PageCount(sourcePath)
	if err != nil {
		return nil, err
	}
	if pageCount < 1 {
		return nil, fmt.Errorf("stamp: %s has no pages", sourcePath)
	}

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	imp := gofpdi.NewImporter()

	// Every template must come through the one importer: the template
	// names it writes into page content streams restart at 0 per
	// importer, so a second importer silently aliases the first one's
	// templates. The overlay stream is imported before any source page
	// for the same reason.
	rs := io.ReadSeeker(bytes.NewReader(overlay))
	overlayID := imp.ImportPageFromStream(pdf, &rs, 1, "/MediaBox")
	if pdf.Err() {
		return nil, fmt.Errorf("stamp: importing overlay: %w", pdf.Error())
	}

	for i := 1; i <= pageCount; i++ {
		tplID, pw, ph := importPage(pdf, imp, sourcePath, i)
		if pw == 0 || ph == 0 {
			pw = fallbackWidth
			ph = fallbackHeight
		}

		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: pw, Ht: ph})
		imp.UseImportedTemplate(pdf, tplID, 0, 0, pw, ph)

		if i == 1 {
			imp.UseImportedTemplate(pdf, overlayID, 0, 0, pw, ph)
		}
	}

	if pdf.Err() {
		return nil, fmt.Errorf("stamp: merging %s: %w", sourcePath, pdf.Error())
	}
	return pdf, nil
}

// importPage imports one source page into the target PDF and reports the
// template ID and page dimensions.
func importPage(pdf *gofpdf.Fpdf, imp *gofpdi.Importer, sourceFile string, pageNum int) (tplID int, w, h float64) {
	tplID = imp.ImportPage(pdf, sourceFile, pageNum, "/MediaBox")
	sizes := imp.GetPageSizes()
	if dims, ok := sizes[pageNum]; ok {
		if mb, ok := dims["/MediaBox"]; ok {
			w = mb["w"]
			h = mb["h"]
		}
	}
	return
}

// PageCount returns the number of pages in a PDF file.
func PageCount(path string) (int, error) {
	ext := tabula.Open(path)
	defer ext.Close()
	n, err := ext.PageCount()
	if err != nil {
		return 0, fmt.Errorf("stamp: counting pages in %s: %w", path, err)
	}
	return n, nil
}
