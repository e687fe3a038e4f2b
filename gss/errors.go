package gss

import (
	"fmt"
	"strings"
)

// Severity distinguishes hard errors from advisories.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Error is a single diagnostic produced while parsing or transforming a
// stylesheet. Recoverable problems are collected as Errors instead of being
// returned through the error interface.
type Error struct {
	Severity   Severity
	Message    string
	Loc        Location
	SourceLine string // offending physical line of source text, if known
}

// Format renders the diagnostic the way it is shown to users. Syntax errors
// reproduce the offending line with a caret pointing at the bad column:
//
//	Parse error in input.gss at line 1 column 10:
//	a { b: c,,; d: e }
//	         ^
func (e Error) Format() string {
	var sb strings.Builder
	if e.Loc.IsUnknown() {
		sb.WriteString(e.Message)
		return sb.String()
	}
	kind := "Parse error"
	if e.Severity == SeverityWarning {
		kind = "Warning"
	}
	fmt.Fprintf(&sb, "%s in %s at line %d column %d:", kind, e.Loc.File, e.Loc.Begin.Line, e.Loc.Begin.Column)
	if e.SourceLine != "" {
		sb.WriteString("\n")
		sb.WriteString(e.SourceLine)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", e.Loc.Begin.Column-1))
		sb.WriteString("^")
	} else {
		sb.WriteString(" ")
		sb.WriteString(e.Message)
	}
	return sb.String()
}

// ParseFailure is the hard stop produced in fail-fast mode: the first syntax
// diagnostic terminates parsing instead of being collected.
type ParseFailure struct {
	Diag Error
}

func (p *ParseFailure) Error() string {
	return p.Diag.Format()
}

// ErrorManager collects diagnostics for one compile job. Errors and warnings
// are kept in separate, source-ordered sequences and are never discarded
// silently. It is not safe for concurrent use; one job owns one manager.
type ErrorManager struct {
	errs             []Error
	warns            []Error
	warningsAsErrors bool
}

// NewErrorManager returns an empty collector. When warningsAsErrors is set,
// reported warnings are escalated and treated identically to errors.
func NewErrorManager(warningsAsErrors bool) *ErrorManager {
	return &ErrorManager{warningsAsErrors: warningsAsErrors}
}

// Report records an error diagnostic.
func (m *ErrorManager) Report(e Error) {
	e.Severity = SeverityError
	m.errs = append(m.errs, e)
}

// ReportWarning records a warning, escalating it when configured to.
func (m *ErrorManager) ReportWarning(e Error) {
	if m.warningsAsErrors {
		m.Report(e)
		return
	}
	e.Severity = SeverityWarning
	m.warns = append(m.warns, e)
}

// HasErrors reports whether at least one error was collected.
func (m *ErrorManager) HasErrors() bool {
	return len(m.errs) > 0
}

// Errors returns the collected errors in the order encountered.
func (m *ErrorManager) Errors() []Error {
	return m.errs
}

// Warnings returns the collected warnings in the order encountered.
func (m *ErrorManager) Warnings() []Error {
	return m.warns
}

// Drain formats up to max diagnostics for the report, errors first, each
// sequence in the order encountered. max <= 0 means no bound. The bound is an
// explicit argument so callers control how much output a report may produce.
func (m *ErrorManager) Drain(max int) []string {
	var out []string
	emit := func(list []Error) {
		for _, e := range list {
			if max > 0 && len(out) >= max {
				return
			}
			out = append(out, e.Format())
		}
	}
	emit(m.errs)
	emit(m.warns)
	return out
}
