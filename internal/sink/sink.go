// Package sink renders a parsed table to its JSON document form and writes it
// to the chosen destination (a file, overwritten, or any io.Writer such as
// stdout).
package sink

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"csv2json/internal/record"
)

// SerializeError reports that the in-memory table could not be rendered as a
// JSON document.
type SerializeError struct{ Err error }

func (e *SerializeError) Error() string { return fmt.Sprintf("serialize document: %v", e.Err) }
func (e *SerializeError) Unwrap() error { return e.Err }

// WriteError reports that the destination path could not be written
// (permissions, missing directory, disk full).
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string { return fmt.Sprintf("write %s: %v", e.Path, e.Err) }
func (e *WriteError) Unwrap() error { return e.Err }

// Document serializes rows as a pretty-printed JSON array of per-row objects
// and returns the rendered bytes with a trailing newline. Output is
// deterministic given row order: each object's keys appear in header order,
// and absent keys are omitted rather than emitted as null.
func Document(rows []*record.Record) ([]byte, error) {
	// A header-only table is an empty array, not null.
	if rows == nil {
		rows = []*record.Record{}
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, &SerializeError{Err: err}
	}
	return append(b, '\n'), nil
}

// WriteFile writes doc to path with overwrite semantics.
func WriteFile(path string, doc []byte) error {
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// Emit writes doc to w. Used for the stdout destination, where a short write
// is surfaced as-is rather than wrapped as a path error.
func Emit(w io.Writer, doc []byte) error {
	_, err := w.Write(doc)
	return err
}
