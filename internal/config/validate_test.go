package config

import (
	"strings"
	"testing"
)

func validRun() Run {
	var r Run
	r.Job = "people"
	r.Source.Kind = "file"
	r.Source.File.Path = "people.csv"
	r.Parser.Kind = "csv"
	r.Parser.Options = Options{"comma": ";"}
	r.Output.Kind = "stdout"
	return r
}

func findIssue(issues []Issue, path string) (Issue, bool) {
	for _, iss := range issues {
		if iss.Path == path {
			return iss, true
		}
	}
	return Issue{}, false
}

func TestValidateRunClean(t *testing.T) {
	t.Parallel()

	if issues := ValidateRun(validRun()); len(issues) != 0 {
		t.Fatalf("unexpected issues: %v", issues)
	}
}

func TestValidateRun(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name         string
		mutate       func(*Run)
		wantPath     string
		wantSeverity IssueSeverity
	}{
		{
			name:         "missing_input_path",
			mutate:       func(r *Run) { r.Source.File.Path = "" },
			wantPath:     "source.file.path",
			wantSeverity: SeverityError,
		},
		{
			name:         "unknown_source_kind",
			mutate:       func(r *Run) { r.Source.Kind = "http" },
			wantPath:     "source.kind",
			wantSeverity: SeverityError,
		},
		{
			name:         "unknown_parser_kind",
			mutate:       func(r *Run) { r.Parser.Kind = "xml" },
			wantPath:     "parser.kind",
			wantSeverity: SeverityError,
		},
		{
			name:         "multichar_delimiter",
			mutate:       func(r *Run) { r.Parser.Options["comma"] = "||" },
			wantPath:     "parser.options.comma",
			wantSeverity: SeverityError,
		},
		{
			name:         "unknown_parser_option_warns",
			mutate:       func(r *Run) { r.Parser.Options["trim"] = true },
			wantPath:     "parser.options.trim",
			wantSeverity: SeverityWarning,
		},
		{
			name:         "unknown_output_kind",
			mutate:       func(r *Run) { r.Output.Kind = "s3" },
			wantPath:     "output.kind",
			wantSeverity: SeverityError,
		},
		{
			name: "file_output_without_path",
			mutate: func(r *Run) {
				r.Output.Kind = "file"
				r.Output.File.Path = ""
			},
			wantPath:     "output.file.path",
			wantSeverity: SeverityError,
		},
		{
			name: "stdout_output_with_path_warns",
			mutate: func(r *Run) {
				r.Output.Kind = "stdout"
				r.Output.File.Path = "ignored.json"
			},
			wantPath:     "output.file.path",
			wantSeverity: SeverityWarning,
		},
		{
			name:         "empty_job_warns",
			mutate:       func(r *Run) { r.Job = "" },
			wantPath:     "job",
			wantSeverity: SeverityWarning,
		},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			r := validRun()
			c.mutate(&r)

			issues := ValidateRun(r)
			iss, ok := findIssue(issues, c.wantPath)
			if !ok {
				t.Fatalf("no issue at %q; got %v", c.wantPath, issues)
			}
			if iss.Severity != c.wantSeverity {
				t.Fatalf("severity=%s want %s (%v)", iss.Severity, c.wantSeverity, iss)
			}
		})
	}
}

func TestIssueError(t *testing.T) {
	t.Parallel()

	iss := Issue{Severity: SeverityError, Path: "source.file.path", Message: "input path is required"}
	if got := iss.Error(); !strings.Contains(got, "source.file.path") || !strings.Contains(got, "error") {
		t.Fatalf("Error()=%q", got)
	}
}
