// Package podsign auto-annotates delivery-note PDFs.
//
// A Signer runs one document through a synchronous pipeline: extract the
// subcontractor and site-receiver names from the first page's text, lay
// the subcontractor name out across the overlay's two-line region,
// compose a single-page overlay (name, stylized signature, date), and
// merge it onto page 1 of the source document. All other pages pass
// through unchanged.
//
//	signer := podsign.New()
//	res, err := signer.SignFile("note.pdf")
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile(res.Filename, res.Signed, 0644)
//
// Requests are independent: a Signer holds no per-document state and may
// be shared across goroutines.
package podsign

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tsawler/tabula"

	"github.com/lvillar/podsign/extract"
	"github.com/lvillar/podsign/layout"
	"github.com/lvillar/podsign/overlay"
	"github.com/lvillar/podsign/stamp"
)

// Stamped date and filename timestamp formats.
const (
	dateFormat  = "02/01/2006"
	stampFormat = "150405"
)

// Signer runs the annotation pipeline. Configure it with functional
// options; the zero set of options gives the standard delivery-note
// behavior.
type Signer struct {
	extractor extract.Extractor
	template  *overlay.Template
	now       func() time.Time
}

// Result is the outcome of signing one document.
type Result struct {
	Fields   extract.Fields // what extraction found (or the Unknown sentinel)
	Layout   layout.Result  // how the subcontractor name was laid out
	Signed   []byte         // the recomposed output document
	Filename string         // "{stem}_signed_{HHMMSS}.pdf"
}

// New creates a Signer.
func New(opts ...Option) *Signer {
	s := &Signer{
		extractor: extract.DeliveryNote(),
		template:  overlay.DeliveryNoteA4(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignFile signs the PDF at path.
func (s *Signer) SignFile(path string) (*Result, error) {
	return s.sign(path, filepath.Base(path))
}

// Sign signs an in-memory PDF. name is the original filename, used only
// to derive the output filename.
func (s *Signer) Sign(name string, data []byte) (*Result, error) {
	tmp, err := os.CreateTemp("", "podsign-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("podsign: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("podsign: writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("podsign: closing temp file: %w", err)
	}

	return s.sign(tmp.Name(), name)
}

// ExtractFile reads page 1 of the PDF at path and runs field extraction
// without producing a signed document. On extraction failure both fields
// carry the Unknown sentinel alongside the error.
func (s *Signer) ExtractFile(path string) (extract.Fields, error) {
	text, err := firstPageText(path)
	if err != nil {
		missing := extract.Field{Value: extract.Unknown}
		return extract.Fields{Subcon: missing, Receiver: missing},
			stageError("extract", ErrExtract, err)
	}
	return s.extractor.Extract(text), nil
}

// sign is the pipeline: page text, field extraction, overlay composition,
// merge. A request either completes or fails with no partial output.
func (s *Signer) sign(path, origName string) (*Result, error) {
	text, err := firstPageText(path)
	if err != nil {
		return nil, stageError("extract", ErrExtract, err)
	}

	fields := s.extractor.Extract(text)
	now := s.now()

	var ov bytes.Buffer
	if err := overlay.Compose(&ov, s.template, fields, now.Format(dateFormat)); err != nil {
		return nil, &PipelineError{Stage: "compose", Err: err}
	}

	var out bytes.Buffer
	if err := stamp.Merge(&out, path, ov.Bytes()); err != nil {
		return nil, stageError("merge", ErrMerge, err)
	}

	return &Result{
		Fields:   fields,
		Layout:   layout.Split(fields.Subcon.Value),
		Signed:   out.Bytes(),
		Filename: signedFilename(origName, now),
	}, nil
}

// firstPageText reads the text blob of page 1. Extraction warnings are
// non-fatal and discarded; field patterns tolerate noisy text.
func firstPageText(path string) (string, error) {
	text, _, err := tabula.Open(path).Pages(1).Text()
	if err != nil {
		return "", err
	}
	return text, nil
}

// signedFilename derives the output filename from the source name and the
// processing time.
func signedFilename(origName string, t time.Time) string {
	stem := strings.TrimSuffix(origName, filepath.Ext(origName))
	return fmt.Sprintf("%s_signed_%s.pdf", stem, t.Format(stampFormat))
}
