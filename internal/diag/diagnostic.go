package diag

import (
	"ssc/internal/source"
)

// Note attaches a secondary location to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is one finding of a pipeline phase.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}
