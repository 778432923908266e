package podsign

import (
	"time"

	"github.com/lvillar/podsign/extract"
	"github.com/lvillar/podsign/overlay"
)

// Option is a functional option for configuring a Signer via New.
type Option func(*Signer)

// WithExtractor sets the field-extraction strategy. The default is
// extract.DeliveryNote, the pattern rules for the standard delivery-note
// template.
func WithExtractor(ex extract.Extractor) Option {
	return func(s *Signer) {
		s.extractor = ex
	}
}

// WithTemplate sets the overlay placement template. The default is
// overlay.DeliveryNoteA4.
func WithTemplate(tpl *overlay.Template) Option {
	return func(s *Signer) {
		s.template = tpl
	}
}

// WithClock sets the time source used for the stamped date and the output
// filename. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		s.now = now
	}
}
