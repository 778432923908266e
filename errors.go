package podsign

import (
	"errors"
	"fmt"
)

// Sentinel errors for pipeline failure conditions.
var (
	// ErrExtract means the page text could not be read at all (corrupt or
	// unsupported PDF). A pattern that merely fails to match is not an
	// error; the field comes back as the Unknown sentinel instead.
	ErrExtract = errors.New("podsign: page text extraction failed")

	// ErrMerge means the overlay could not be merged onto the source
	// document. No output is produced.
	ErrMerge = errors.New("podsign: document merge failed")
)

// PipelineError ties a failure to the pipeline stage it occurred in.
type PipelineError struct {
	Stage string // stage name, e.g. "extract", "compose", "merge"
	Err   error  // underlying error
}

func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("podsign.%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("podsign.%s: unknown error", e.Stage)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// stageError wraps err, keeping both the stage sentinel and the cause on
// the unwrap chain.
func stageError(stage string, sentinel, err error) *PipelineError {
	return &PipelineError{Stage: stage, Err: errors.Join(sentinel, err)}
}
