// This file adds a lightweight linter for Run values. It performs static
// checks over a decoded Run and returns a list of issues (errors and
// warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration concern that is surfaced to
	// users but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Run.
//
// Path is a dotted path into the config (e.g. "source.file.path",
// "parser.options.comma"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a
// single error where one is expected.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownParserOptions lists the option keys the CSV parser understands.
// Unknown keys are warnings, not errors, for forward compatibility.
var knownParserOptions = map[string]struct{}{
	"comma":             {},
	"normalize_headers": {},
	"header_map":        {},
}

// ValidateRun performs static validation of a Run. It does not mutate the
// run; it returns a slice of Issue values and lets the caller decide whether
// warnings are fatal.
func ValidateRun(r Run) []Issue {
	var issues []Issue

	if strings.TrimSpace(r.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "job",
			Message:  "job is empty; metrics and logs will use the default name",
		})
	}

	issues = append(issues, validateSource(r.Source)...)
	issues = append(issues, validateParser(r.Parser)...)
	issues = append(issues, validateOutput(r.Output)...)

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	switch s.Kind {
	case "", "file":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q (expected \"file\")", s.Kind),
		})
	}
	if strings.TrimSpace(s.File.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.file.path",
			Message:  "input path is required",
		})
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue

	switch p.Kind {
	case "", "csv":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unknown parser kind %q (expected \"csv\")", p.Kind),
		})
	}

	if comma := p.Options.String("comma", ","); len([]rune(comma)) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.comma",
			Message:  fmt.Sprintf("delimiter must be a single character, got %q", comma),
		})
	}

	for k := range p.Options {
		if _, ok := knownParserOptions[k]; !ok {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "parser.options." + k,
				Message:  "unknown option is ignored",
			})
		}
	}
	return issues
}

func validateOutput(o Output) []Issue {
	var issues []Issue

	switch o.Kind {
	case "", "file", "stdout":
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.kind",
			Message:  fmt.Sprintf("unknown output kind %q (expected \"file\" or \"stdout\")", o.Kind),
		})
	}
	if o.Kind == "file" && strings.TrimSpace(o.File.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "output.file.path",
			Message:  "output path is required when output.kind is \"file\"",
		})
	}
	if o.Kind == "stdout" && strings.TrimSpace(o.File.Path) != "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "output.file.path",
			Message:  "path is ignored when output.kind is \"stdout\"",
		})
	}
	return issues
}
