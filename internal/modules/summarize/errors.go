package summarize

import "fmt"

// ParsingError reports timed-text that could not be split into any
// well-formed caption block. Individual malformed blocks are skipped;
// this error fires only when the whole input yields nothing.
type ParsingError struct {
	Reason string
}

func (e *ParsingError) Error() string {
	return fmt.Sprintf("caption parsing failed: %s", e.Reason)
}

// InvalidRequestError reports missing required prompt inputs.
type InvalidRequestError struct {
	Field string
}

func (e *InvalidRequestError) Error() string {
	return fmt.Sprintf("invalid summary request: %s is required", e.Field)
}

// ExtractionError reports a model reply with no recoverable structured
// payload. Fragment carries the offending text (truncated) for diagnostics.
type ExtractionError struct {
	Fragment string
	Err      error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("summary extraction failed: %v (fragment: %s)", e.Err, e.Fragment)
	}
	return fmt.Sprintf("summary extraction failed (fragment: %s)", e.Fragment)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// ValidationError wraps a validation outcome that could not be retried
// further.
type ValidationError struct {
	Outcome ValidationOutcome
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("summary validation failed: %s", e.Outcome.Message)
}

// GenerationError is the terminal pipeline failure: the conversation ended
// without a single parseable candidate.
type GenerationError struct {
	Attempts int
	Reason   string
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("summary generation failed after %d attempts: %s", e.Attempts, e.Reason)
}
