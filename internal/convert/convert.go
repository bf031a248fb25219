// Package convert orchestrates one conversion run: open the source, parse it
// into an in-memory table, optionally aggregate statistics, serialize the
// table to a JSON document, and write the document to its destination.
//
// The package is the seam between the CLI and the core: it returns tagged
// failures (see errors.go) and never terminates the process or prints to
// diagnostic streams itself.
package convert

import (
	"context"
	"io"
	"time"

	"csv2json/internal/config"
	"csv2json/internal/datasource/file"
	"csv2json/internal/metrics"
	pcsv "csv2json/internal/parser/csv"
	"csv2json/internal/record"
	"csv2json/internal/sink"
	"csv2json/internal/stats"
)

// Result carries everything a successful run produced. Document is always
// set; Stats only when the run requested it.
type Result struct {
	Headers  []string
	Rows     []*record.Record
	Document []byte
	Stats    *stats.Stats
}

// Run executes the conversion described by cfg. The table is fully
// materialized before any output begins; nothing is retried, and the first
// failure aborts the run with no partial output.
//
// stdout is the destination used when the config selects no output file. It
// is injected rather than taken from os.Stdout so tests can capture it.
func Run(ctx context.Context, cfg config.Run, stdout io.Writer) (Result, error) {
	job := cfg.Job
	if job == "" {
		job = "csv2json"
	}

	// Open.
	start := time.Now()
	src := file.NewLocal(cfg.Source.File.Path)
	rc, err := src.Open(ctx)
	metrics.RecordStep(job, "open", err, time.Since(start))
	if err != nil {
		return Result{}, &InputError{Path: src.Path(), Err: err}
	}
	defer rc.Close()

	// Parse.
	start = time.Now()
	p := pcsv.NewParser(pcsv.Options{
		Comma:            cfg.Parser.Options.Rune("comma", ','),
		NormalizeHeaders: cfg.Parser.Options.Bool("normalize_headers", false),
		HeaderMap:        headerMap(cfg.Parser.Options),
	})
	headers, rows, err := p.Parse(rc)
	metrics.RecordStep(job, "parse", err, time.Since(start))
	if err != nil {
		return Result{}, err
	}
	metrics.RecordRow(job, "rows", int64(len(rows)))

	res := Result{Headers: headers, Rows: rows}

	// Aggregate (optional).
	if cfg.Stats {
		start = time.Now()
		s := stats.Aggregate(headers, rows)
		metrics.RecordStep(job, "aggregate", nil, time.Since(start))
		metrics.RecordRow(job, "empty_cells", int64(s.EmptyCells))
		res.Stats = &s
	}

	// Serialize.
	start = time.Now()
	doc, err := sink.Document(rows)
	metrics.RecordStep(job, "serialize", err, time.Since(start))
	if err != nil {
		return Result{}, err
	}
	res.Document = doc

	// Write.
	start = time.Now()
	if path := outputPath(cfg.Output); path != "" {
		err = sink.WriteFile(path, doc)
	} else {
		err = sink.Emit(stdout, doc)
	}
	metrics.RecordStep(job, "write", err, time.Since(start))
	if err != nil {
		return Result{}, err
	}

	return res, nil
}

// outputPath resolves the file destination from the output config. An empty
// result means the document goes to stdout.
func outputPath(o config.Output) string {
	if o.Kind == "stdout" {
		return ""
	}
	return o.File.Path
}

// headerMap returns the header_map option, or nil when absent so the parser
// skips the mapping pass entirely.
func headerMap(o config.Options) map[string]string {
	m := o.StringMap("header_map")
	if len(m) == 0 {
		return nil
	}
	return m
}
