// Package overlay renders the single-page annotation stamped onto a
// delivery note: the wrapped subcontractor name, a stylized receiver
// signature, and the processing date.
//
// Placement is data, not code. A Template maps each overlay element to a
// font and a coordinate pair, so a new document layout is a new template
// file rather than a source change. Templates use PDF user space:
// origin at the bottom-left corner, units in points.
//
// Example JSON:
//
//	{
//	  "pageWidth": 595.28,
//	  "pageHeight": 841.89,
//	  "subconLine1": {"font": {"family": "Helvetica"}, "x": 510, "y": 742},
//	  "subconLine2": {"font": {"family": "Helvetica"}, "x": 510, "y": 732},
//	  "signature": {"font": {"family": "Times", "style": "I", "size": 14}, "x": 520, "y": 665},
//	  "date": {"font": {"family": "Helvetica", "size": 10}, "x": 500, "y": 642}
//	}
package overlay

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// A4 page dimensions in points.
const (
	a4Width  = 595.28
	a4Height = 841.89
)

// Font specifies a core font face. Style is "" (regular), "B", "I" or
// "BI". A zero Size means the size is computed by the layout engine;
// only the subcontractor lines use that.
type Font struct {
	Family string  `json:"family"`
	Style  string  `json:"style,omitempty"`
	Size   float64 `json:"size,omitempty"`
}

// Placement positions one overlay element. X and Y are in points from the
// page's bottom-left corner; Y is the text baseline.
type Placement struct {
	Font Font    `json:"font"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

// Template describes the overlay page for one document layout.
type Template struct {
	PageWidth  float64 `json:"pageWidth"`
	PageHeight float64 `json:"pageHeight"`

	SubconLine1 Placement `json:"subconLine1"`
	SubconLine2 Placement `json:"subconLine2"`
	Signature   Placement `json:"signature"`
	Date        Placement `json:"date"`
}

// DeliveryNoteA4 returns the template for the standard A4 delivery note.
func DeliveryNoteA4() *Template {
	return &Template{
		PageWidth:  a4Width,
		PageHeight: a4Height,
		SubconLine1: Placement{
			Font: Font{Family: "Helvetica"},
			X:    510, Y: 742,
		},
		SubconLine2: Placement{
			Font: Font{Family: "Helvetica"},
			X:    510, Y: 732,
		},
		Signature: Placement{
			Font: Font{Family: "Times", Style: "I", Size: 14},
			X:    520, Y: 665,
		},
		Date: Placement{
			Font: Font{Family: "Helvetica", Size: 10},
			X:    500, Y: 642,
		},
	}
}

// Load reads a JSON template. Missing page dimensions default to A4.
func Load(r io.Reader) (*Template, error) {
	var tpl Template
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&tpl); err != nil {
		return nil, fmt.Errorf("overlay: decoding template: %w", err)
	}
	if tpl.PageWidth == 0 {
		tpl.PageWidth = a4Width
	}
	if tpl.PageHeight == 0 {
		tpl.PageHeight = a4Height
	}
	return &tpl, nil
}

// LoadFile reads a JSON template from disk.
func LoadFile(path string) (*Template, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("overlay: opening template %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}
