// Package csv implements the tabular reader: it parses delimiter-separated
// text into an ordered header list and a sequence of header-keyed records.
// The whole table is materialized in memory; this parser is for one-shot
// conversion, not for multi-GB streaming.
//
// Parsing is strict: the first data line that violates the delimited-text
// grammar (e.g. an unterminated quoted field) aborts the parse with a
// RecordError carrying the physical line number. There is no skip-and-continue
// mode.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"csv2json/internal/record"
)

// Options configures the parser. All fields are optional; sensible defaults
// are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// NormalizeHeaders folds header names to lowercase ASCII snake_case
	// (diacritics stripped). Off by default: headers are taken verbatim from
	// the file, with no trimming beyond what the delimiter grammar defines.
	NormalizeHeaders bool

	// HeaderMap maps source header names to canonical keys. Applied after
	// NormalizeHeaders when both are set. Headers without a mapping are kept
	// as-is.
	HeaderMap map[string]string
}

// Parser parses delimited text according to Options. It is safe to reuse
// across inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// HeaderError reports that the header line could not be read or split. This
// is a structural failure of the whole input, distinct from per-row failures.
type HeaderError struct{ Err error }

func (e *HeaderError) Error() string { return fmt.Sprintf("read header: %v", e.Err) }
func (e *HeaderError) Unwrap() error { return e.Err }

// RecordError reports a data line that violates the delimited-text grammar.
// Line is the 1-based physical line number counted from the start of the
// file; the header occupies line 1, so the first data line is line 2.
type RecordError struct {
	Line int
	Err  error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("malformed record at line %d: %v", e.Line, e.Err)
}
func (e *RecordError) Unwrap() error { return e.Err }

// Parse consumes delimited records from r and returns the ordered header list
// plus one Record per data line.
//
// Row construction zips header names with fields positionally up to
// min(len(headers), len(fields)): fields beyond the header count are dropped,
// and headers beyond the field count are simply absent from the Record (not
// set to ""). Duplicate header names are permitted; the later column wins
// within each row. The first malformed data line aborts the parse; no partial
// table is returned.
func (p *Parser) Parse(r io.Reader) ([]string, []*record.Record, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	// Short and long rows are handled positionally, not rejected.
	cr.FieldsPerRecord = -1

	h, err := cr.Read()
	if err != nil {
		// io.EOF here means the stream ended before any header.
		return nil, nil, &HeaderError{Err: err}
	}
	headers := p.canonicalHeaders(StripHeaderBOM(h))

	var rows []*record.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, &RecordError{Line: faultLine(err), Err: err}
		}

		n := len(headers)
		if len(row) < n {
			n = len(row)
		}
		rec := record.New(n)
		for i := 0; i < n; i++ {
			rec.Set(headers[i], row[i])
		}
		rows = append(rows, rec)
	}

	return headers, rows, nil
}

// canonicalHeaders applies the optional normalization and mapping steps to
// the raw header cells. With zero Options it returns the input unchanged.
func (p *Parser) canonicalHeaders(h []string) []string {
	if !p.opt.NormalizeHeaders && p.opt.HeaderMap == nil {
		return h
	}
	res := make([]string, len(h))
	for i, col := range h {
		c := col
		if p.opt.NormalizeHeaders {
			c = NormalizeFieldName(c)
		}
		if p.opt.HeaderMap != nil {
			if m, ok := p.opt.HeaderMap[c]; ok {
				c = m
			}
		}
		res[i] = c
	}
	return res
}

// faultLine extracts the physical line number of the offending record from an
// encoding/csv error. For failures inside multi-line quoted fields, StartLine
// points at the line the record began on, which is the number a user needs to
// locate the bad row.
func faultLine(err error) int {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		if pe.StartLine > 0 {
			return pe.StartLine
		}
		return pe.Line
	}
	return 0
}
