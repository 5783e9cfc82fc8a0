// Package diag defines the diagnostic model shared by the lexer, parser and
// checker.
//
// A Diagnostic carries a Severity, a numeric Code with a stable string ID
// (LEX/SYN/SEM/IO/PRJ/OBS ranges), a short message, the primary source.Span
// and optional Notes pointing at related locations (e.g. "first declared
// here").
//
// Phases emit through a Reporter so they do not depend on storage; BagReporter
// collects into a Bag, which can be sorted and deduplicated before rendering.
// Package diag performs no IO and no colouring; rendering lives in
// internal/diagfmt.
package diag
