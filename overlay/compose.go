package overlay

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	gofpdf "github.com/phpdave11/gofpdf"

	"github.com/lvillar/podsign/extract"
	"github.com/lvillar/podsign/layout"
)

// Compose renders a single-page overlay PDF to w. The subcontractor name
// is wrapped and sized by the layout engine, the receiver's first name is
// drawn as the signature, and dateStr is stamped as supplied (the caller
// formats it, zero-padded day/month/year).
//
// Fields are rendered verbatim, including the Unknown sentinel: a pattern
// miss shows up on the page instead of silently producing a blank stamp.
func Compose(w io.Writer, tpl *Template, fields extract.Fields, dateStr string) error {
	if tpl == nil {
		tpl = DeliveryNoteA4()
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: tpl.PageWidth, Ht: tpl.PageHeight},
	})
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	res := layout.Split(fields.Subcon.Value)
	drawText(pdf, tpl, tpl.SubconLine1, res.FontSize, res.Line1)
	if res.Line2 != "" {
		drawText(pdf, tpl, tpl.SubconLine2, res.FontSize, res.Line2)
	}

	if name := SignatureName(fields.Receiver.Value); name != "" {
		drawText(pdf, tpl, tpl.Signature, 0, name)
	}
	drawText(pdf, tpl, tpl.Date, 0, dateStr)

	if pdf.Err() {
		return fmt.Errorf("overlay: composing: %w", pdf.Error())
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("overlay: writing: %w", err)
	}
	return nil
}

// drawText stamps text at a placement. autoSize substitutes for a zero
// template font size; template Y is measured from the bottom edge, while
// gofpdf measures from the top.
func drawText(pdf *gofpdf.Fpdf, tpl *Template, p Placement, autoSize float64, text string) {
	size := p.Font.Size
	if size == 0 {
		size = autoSize
	}
	pdf.SetFont(p.Font.Family, p.Font.Style, size)
	pdf.Text(p.X, tpl.PageHeight-p.Y, text)
}

// SignatureName derives the signature from a receiver name: the first
// whitespace-delimited token with its first letter upper-cased and the
// rest lowered. An empty or all-whitespace receiver gives "".
func SignatureName(receiver string) string {
	tokens := strings.Fields(receiver)
	if len(tokens) == 0 {
		return ""
	}
	first := strings.ToLower(tokens[0])
	r, n := utf8.DecodeRuneInString(first)
	return strings.ToUpper(string(r)) + first[n:]
}
