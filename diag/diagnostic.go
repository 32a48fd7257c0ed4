// Package diag carries non-fatal findings produced while reading declarations:
// unrecognized directives, structural mismatches, duplicate names. A diagnostic
// never stops generation; hard failures are errors.
package diag

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"
)

// Severity indicates how serious a diagnostic is
type Severity string

const (
	SeverityError   Severity = "error"   // Declaration is unusable as written
	SeverityWarning Severity = "warning" // Directive ignored or reinterpreted
	SeverityInfo    Severity = "info"    // Informational
)

// Kind categorizes diagnostics for programmatic handling
type Kind string

const (
	KindDirective Kind = "directive" // Unknown or invalid attribute value
	KindStructure Kind = "structure" // Directive does not fit the declaration shape
	KindDuplicate Kind = "duplicate" // Same name declared more than once
	KindFrontend  Kind = "frontend"  // Source text could not be read as declarations
)

// Diagnostic is one finding attached to a source location.
type Diagnostic struct {
	Severity   Severity `json:"severity" yaml:"severity"`
	Kind       Kind     `json:"kind" yaml:"kind"`
	Message    string   `json:"message" yaml:"message"`
	File       string   `json:"file,omitempty" yaml:"file,omitempty"`
	Line       int      `json:"line,omitempty" yaml:"line,omitempty"`
	Item       string   `json:"item,omitempty" yaml:"item,omitempty"`
	Suggestion string   `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
}

// New creates a warning of the given kind.
func New(kind Kind, format string, args ...interface{}) Diagnostic {
	return Diagnostic{Severity: SeverityWarning, Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// At sets the source location.
func (d Diagnostic) At(file string, line int) Diagnostic {
	d.File = file
	d.Line = line
	return d
}

// For sets the declaration the diagnostic refers to.
func (d Diagnostic) For(item string) Diagnostic {
	d.Item = item
	return d
}

// WithSuggestion sets a suggested fix.
func (d Diagnostic) WithSuggestion(s string) Diagnostic {
	d.Suggestion = s
	return d
}

// WithSeverity overrides the default warning severity.
func (d Diagnostic) WithSeverity(s Severity) Diagnostic {
	d.Severity = s
	return d
}

func (d Diagnostic) location() string {
	switch {
	case d.File != "" && d.Line > 0:
		return fmt.Sprintf("%s:%d", d.File, d.Line)
	case d.File != "":
		return d.File
	}
	return ""
}

// String renders `file:line: warning: message (item)`.
func (d Diagnostic) String() string {
	var sb strings.Builder
	if loc := d.location(); loc != "" {
		sb.WriteString(loc)
		sb.WriteString(": ")
	}
	sb.WriteString(string(d.Severity))
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	if d.Item != "" {
		fmt.Fprintf(&sb, " (%s)", d.Item)
	}
	if d.Suggestion != "" {
		fmt.Fprintf(&sb, "; %s", d.Suggestion)
	}
	return sb.String()
}

// Format renders the diagnostic for a terminal. Without color it is String().
func (d Diagnostic) Format(color bool) string {
	if !color {
		return d.String()
	}

	var label string
	switch d.Severity {
	case SeverityError:
		label = pterm.Red(string(d.Severity) + ":")
	case SeverityWarning:
		label = pterm.Yellow(string(d.Severity) + ":")
	case SeverityInfo:
		label = pterm.Blue(string(d.Severity) + ":")
	default:
		label = string(d.Severity) + ":"
	}

	msg := fmt.Sprintf("%s %s", label, d.Message)
	if loc := d.location(); loc != "" {
		msg = fmt.Sprintf("%s %s", pterm.Gray(loc), msg)
	}
	if d.Item != "" {
		msg += " " + pterm.LightCyan("("+d.Item+")")
	}
	if d.Suggestion != "" {
		msg += fmt.Sprintf("\n  %s %s", pterm.Green("hint:"), d.Suggestion)
	}
	return msg
}

// List is an ordered collection of diagnostics.
type List []Diagnostic

// Add appends diagnostics.
func (l *List) Add(ds ...Diagnostic) {
	*l = append(*l, ds...)
}

// Warnf appends a warning without a location.
func (l *List) Warnf(kind Kind, format string, args ...interface{}) {
	l.Add(New(kind, format, args...))
}

// Merge appends every diagnostic of other.
func (l *List) Merge(other List) {
	*l = append(*l, other...)
}

// Len returns the number of diagnostics.
func (l List) Len() int { return len(l) }

// HasErrors reports whether any diagnostic has error severity.
func (l List) HasErrors() bool {
	for _, d := range l {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Errors returns the error-severity diagnostics.
func (l List) Errors() List { return l.filter(SeverityError) }

// Warnings returns the warning-severity diagnostics.
func (l List) Warnings() List { return l.filter(SeverityWarning) }

func (l List) filter(s Severity) List {
	var out List
	for _, d := range l {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// Sort orders by file, line, then message.
func (l List) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		a, b := l[i], l[j]
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Message < b.Message
	})
}
