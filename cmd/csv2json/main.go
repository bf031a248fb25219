// Command csv2json converts a delimited text file into a JSON document of
// header-keyed records, optionally printing descriptive statistics about the
// table (row/column totals, empty cells, per-column distinct values).
//
// The document goes to -output when given, otherwise to stdout; everything
// diagnostic (progress, stats, errors) goes to stderr so the two streams can
// be piped independently.
//
// Example:
//
//	csv2json -input=people.csv -output=people.json -stats
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"csv2json/internal/config"
	"csv2json/internal/convert"
	"csv2json/internal/metrics"
	"csv2json/internal/metrics/prompush"
	pcsv "csv2json/internal/parser/csv"
	"csv2json/internal/sink"
	"csv2json/internal/stats"
)

var (
	flagConfig    = flag.String("config", "", "run config path (.json, .yaml, .yml); flags override its values")
	flagInput     = flag.String("input", "", "path of the delimited input file")
	flagOutput    = flag.String("output", "", "path of the JSON output file (stdout when empty)")
	flagStats     = flag.Bool("stats", false, "compute and print table statistics")
	flagDelimiter = flag.String("delimiter", "", "field delimiter (single character, default \",\")")
	flagNormalize = flag.Bool("normalize-headers", false, "fold header names to lowercase ASCII snake_case")
	flagValidate  = flag.Bool("validate", false, "validate the configuration and exit")
	flagVerbose   = flag.Bool("v", false, "enable verbose logs")

	flagMetricsBackend = flag.String("metrics-backend", "", "metrics backend to use (pushgateway, none)")
	flagPushGatewayURL = flag.String("pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
)

func main() {
	// Optional .env for PUSHGATEWAY_URL / METRICS_BACKEND; absence is fine.
	_ = godotenv.Load()

	flag.Parse()
	log.SetOutput(os.Stderr)

	cfg, err := buildConfig()
	if err != nil {
		fatalf("%v", err)
	}

	issues := config.ValidateRun(cfg)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		fatalf("configuration is invalid")
	}
	if *flagValidate {
		log.Printf("configuration is valid")
		return
	}

	setupMetrics(cfg.Job)
	defer func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}()

	runID := uuid.NewString()
	if *flagVerbose {
		log.Printf("run %s: converting %s", runID, cfg.Source.File.Path)
	}

	res, err := convert.Run(context.Background(), cfg, os.Stdout)
	if err != nil {
		reportFailure(err)
		// Flush whatever step metrics were recorded before dying.
		if ferr := metrics.Flush(); ferr != nil {
			log.Printf("metrics: flush error: %v", ferr)
		}
		os.Exit(1)
	}

	if *flagVerbose {
		log.Printf("run %s: headers: %q", runID, res.Headers)
		log.Printf("run %s: converted %d rows", runID, len(res.Rows))
		if p := cfg.Output.File.Path; p != "" {
			log.Printf("run %s: wrote %s", runID, p)
		}
	}

	if res.Stats != nil {
		printStats(res.Headers, res.Stats)
	}
}

// buildConfig merges the optional config file with command-line flags. Flags
// always win so a saved run description can be tweaked ad hoc.
func buildConfig() (config.Run, error) {
	var cfg config.Run
	if *flagConfig != "" {
		var err error
		cfg, err = config.Load(*flagConfig)
		if err != nil {
			return cfg, err
		}
	}
	if cfg.Parser.Options == nil {
		cfg.Parser.Options = config.Options{}
	}

	if *flagInput != "" {
		cfg.Source.Kind = "file"
		cfg.Source.File.Path = *flagInput
	}
	if *flagOutput != "" {
		cfg.Output.Kind = "file"
		cfg.Output.File.Path = *flagOutput
	}
	if *flagStats {
		cfg.Stats = true
	}
	if *flagDelimiter != "" {
		cfg.Parser.Options["comma"] = *flagDelimiter
	}
	if *flagNormalize {
		cfg.Parser.Options["normalize_headers"] = true
	}
	return cfg, nil
}

// setupMetrics decides the metrics backend: flag → env → none.
func setupMetrics(job string) {
	backendName := *flagMetricsBackend
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}

	switch backendName {
	case "pushgateway":
		gwURL := *flagPushGatewayURL
		if gwURL == "" {
			gwURL = os.Getenv("PUSHGATEWAY_URL")
		}
		if gwURL == "" {
			gwURL = "http://localhost:9091"
		}
		if job == "" {
			job = "csv2json"
		}

		b, err := prompush.NewBackend(job, gwURL)
		if err != nil {
			log.Printf("metrics: failed to init pushgateway backend: %v; using nop", err)
			return
		}
		if *flagVerbose {
			log.Printf("metrics: url=%v, backend=%v, job=%v", gwURL, backendName, job)
		}
		metrics.SetBackend(b)

	case "", "none":
		// metrics disabled; nop backend remains

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}
}

// reportFailure turns a tagged run failure into a human-readable message on
// stderr. Message text lives here, not in the core.
func reportFailure(err error) {
	switch convert.KindOf(err) {
	case convert.KindInputNotFound:
		var ie *convert.InputError
		errors.As(err, &ie)
		fmt.Fprintf(os.Stderr, "error: input file %s does not exist\n", ie.Path)
	case convert.KindInputUnreadable:
		var ie *convert.InputError
		errors.As(err, &ie)
		fmt.Fprintf(os.Stderr, "error: cannot read input file %s: %v\n", ie.Path, ie.Err)
	case convert.KindHeaderMalformed:
		fmt.Fprintf(os.Stderr, "error: cannot read the header row (%v); is the file empty or not delimited text?\n", err)
	case convert.KindRecordMalformed:
		var re *pcsv.RecordError
		errors.As(err, &re)
		fmt.Fprintf(os.Stderr, "error: line %d is malformed: %v\n", re.Line, re.Err)
	case convert.KindSerializationFailed:
		fmt.Fprintf(os.Stderr, "error: could not render the JSON document: %v\n", err)
	case convert.KindOutputWriteFailed:
		var we *sink.WriteError
		errors.As(err, &we)
		fmt.Fprintf(os.Stderr, "error: cannot write output file %s: %v\n", we.Path, we.Err)
	default:
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
}

// printStats renders the stats snapshot on stderr. Column order follows the
// header order of the input file.
func printStats(headers []string, s *stats.Stats) {
	fmt.Fprintf(os.Stderr, "rows:        %d\n", s.TotalRows)
	fmt.Fprintf(os.Stderr, "columns:     %d\n", s.TotalColumns)
	fmt.Fprintf(os.Stderr, "empty cells: %d\n", s.EmptyCells)
	fmt.Fprintf(os.Stderr, "unique values per column:\n")
	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if seen[h] {
			continue
		}
		seen[h] = true
		fmt.Fprintf(os.Stderr, "  %s: %d\n", h, s.ColumnUniqueCounts[h])
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}
