package diagnostic

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"pii-metamodel/internal/common"
)

// Diagnostics collects the findings of a validation or generation run,
// split by severity.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single finding.
type Diagnostic struct {
	Severity DiagnosticSeverity
	// Code identifies the kind of finding, see codes.go.
	Code    string
	Message string
	// Type is the qualified name of the holder type concerned, if any.
	Type string
	// FieldPath is the JSON path or config key concerned, if any.
	FieldPath string
	// Suggestions are "did you mean" candidates.
	Suggestions []string
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

func (d *Diagnostics) add(sev DiagnosticSeverity, code, message, typeName, fieldPath string, suggestions []string) {
	diag := Diagnostic{
		Severity:    sev,
		Code:        code,
		Message:     message,
		Type:        typeName,
		FieldPath:   fieldPath,
		Suggestions: suggestions,
	}

	switch sev {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, fieldPath string) {
	d.add(DiagnosticError, code, message, typeName, fieldPath, nil)
}

// AddErrorWithSuggestions adds an error diagnostic carrying suggested fixes.
func (d *Diagnostics) AddErrorWithSuggestions(code, message, typeName, fieldPath string, suggestions []string) {
	d.add(DiagnosticError, code, message, typeName, fieldPath, suggestions)
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, fieldPath string) {
	d.add(DiagnosticWarning, code, message, typeName, fieldPath, nil)
}

// AddWarningWithSuggestions adds a warning diagnostic carrying suggested fixes.
func (d *Diagnostics) AddWarningWithSuggestions(code, message, typeName, fieldPath string, suggestions []string) {
	d.add(DiagnosticWarning, code, message, typeName, fieldPath, suggestions)
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, fieldPath string) {
	d.add(DiagnosticInfo, code, message, typeName, fieldPath, nil)
}

// Merge appends the diagnostics of other, keeping their order.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// Error joins every error diagnostic into one error, or returns nil.
func (d *Diagnostics) Error() error {
	if d.IsValid() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Report writes one line per warning, and per info when verbose is set.
// Errors are not written; they are returned by Error.
func (d *Diagnostics) Report(w io.Writer, verbose bool) error {
	groups := [][]Diagnostic{d.Warnings}
	if verbose {
		groups = append(groups, d.Infos)
	}

	for _, group := range groups {
		for _, diag := range group {
			if _, err := fmt.Fprintf(w, "%s: %s\n", diag.Severity, diag); err != nil {
				return err
			}
		}
	}

	return nil
}

// String formats the diagnostic as "[Type] path: [code] message (did you mean x?)".
func (d Diagnostic) String() string {
	var prefix []string
	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if len(d.Suggestions) > 0 {
		msg = fmt.Sprintf("%s (did you mean %s?)", msg, strings.Join(d.Suggestions, ", "))
	}

	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
