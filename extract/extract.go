// Package extract locates named fields inside the unstructured text of a
// delivery note's first page.
//
// Extraction is pattern-based and deliberately pluggable: an Extractor is
// one strategy for one document template, so new label variants become new
// rules rather than changes to layout or composition code.
package extract

import (
	"fmt"
	"regexp"
	"strings"
)

// Unknown is the sentinel value a field takes when its pattern does not
// match. It is a valid, renderable string: downstream stages stamp it
// verbatim so a miss is visible on the signed document.
const Unknown = "Unknown"

// Field is one extracted field. Found distinguishes a real match from the
// Unknown sentinel, so callers that care can short-circuit instead of
// rendering the placeholder.
type Field struct {
	Value string
	Found bool
}

// Fields holds the two fields a delivery note carries on page 1.
type Fields struct {
	Subcon   Field
	Receiver Field
}

// Extractor is a field-extraction strategy for one document template.
type Extractor interface {
	// Extract scans the page-1 text blob and returns the fields.
	// Fields that do not match come back as the Unknown sentinel.
	Extract(pageText string) Fields
}

// PatternExtractor extracts fields with a pair of regular expressions,
// each capturing the field value in its first group.
type PatternExtractor struct {
	subcon   *regexp.Regexp
	receiver *regexp.Regexp
}

// Default patterns for the delivery-note template. The subcon label is
// frequently mis-extracted as "Subon" (the PDF producer drops the c), so
// both spellings are accepted. The receiver value runs up to either a "/"
// or a contact-number run of 8+ digits.
const (
	deliveryNoteSubconPattern   = `(?is)(?:subon|subcon):\s*(.*?)\s*site receiver:`
	deliveryNoteReceiverPattern = `(?i)site receiver:\s*(.*?)(?:/|[0-9]{8,})`
)

// DeliveryNote returns the extractor for the standard delivery-note
// template.
func DeliveryNote() *PatternExtractor {
	return &PatternExtractor{
		subcon:   regexp.MustCompile(deliveryNoteSubconPattern),
		receiver: regexp.MustCompile(deliveryNoteReceiverPattern),
	}
}

// NewPatternExtractor compiles a custom extractor from two patterns. Each
// pattern must have at least one capturing group; group 1 is the field
// value.
func NewPatternExtractor(subconPattern, receiverPattern string) (*PatternExtractor, error) {
	sub, err := regexp.Compile(subconPattern)
	if err != nil {
		return nil, fmt.Errorf("extract: compiling subcon pattern: %w", err)
	}
	rec, err := regexp.Compile(receiverPattern)
	if err != nil {
		return nil, fmt.Errorf("extract: compiling receiver pattern: %w", err)
	}
	if sub.NumSubexp() < 1 || rec.NumSubexp() < 1 {
		return nil, fmt.Errorf("extract: patterns must capture the field value in group 1")
	}
	return &PatternExtractor{subcon: sub, receiver: rec}, nil
}

// Extract runs both patterns over the page text.
func (e *PatternExtractor) Extract(pageText string) Fields {
	return Fields{
		Subcon:   matchField(e.subcon, pageText, true),
		Receiver: matchField(e.receiver, pageText, false),
	}
}

// matchField applies one pattern. Captured values are trimmed; for fields
// that may span lines, internal line breaks collapse to single spaces.
func matchField(re *regexp.Regexp, text string, collapseBreaks bool) Field {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return Field{Value: Unknown}
	}
	v := strings.TrimSpace(m[1])
	if collapseBreaks {
		v = lineBreaks.Replace(v)
	}
	return Field{Value: v, Found: true}
}

// lineBreaks rewrites internal line breaks as single spaces.
var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")
