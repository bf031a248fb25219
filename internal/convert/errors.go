package convert

import (
	"errors"
	"fmt"
	"io/fs"

	pcsv "csv2json/internal/parser/csv"
	"csv2json/internal/sink"
)

// InputError reports that the input path could not be opened or read. Whether
// the file was missing or merely unreadable is recoverable from the wrapped
// error via errors.Is.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string { return fmt.Sprintf("input %s: %v", e.Path, e.Err) }
func (e *InputError) Unwrap() error { return e.Err }

// NotFound reports whether the input path did not resolve to an existing file.
func (e *InputError) NotFound() bool { return errors.Is(e.Err, fs.ErrNotExist) }

// Kind classifies run failures so callers can present each one distinctly
// without string-matching error text.
type Kind int

const (
	KindUnknown Kind = iota
	KindInputNotFound
	KindInputUnreadable
	KindHeaderMalformed
	KindRecordMalformed
	KindSerializationFailed
	KindOutputWriteFailed
)

// KindOf maps an error returned by Run onto its taxonomy kind. Context needed
// for diagnosis (the offending line, the destination path) stays on the
// concrete error types and is reachable with errors.As.
func KindOf(err error) Kind {
	var ie *InputError
	if errors.As(err, &ie) {
		if ie.NotFound() {
			return KindInputNotFound
		}
		return KindInputUnreadable
	}
	var he *pcsv.HeaderError
	if errors.As(err, &he) {
		return KindHeaderMalformed
	}
	var re *pcsv.RecordError
	if errors.As(err, &re) {
		return KindRecordMalformed
	}
	var se *sink.SerializeError
	if errors.As(err, &se) {
		return KindSerializationFailed
	}
	var we *sink.WriteError
	if errors.As(err, &we) {
		return KindOutputWriteFailed
	}
	return KindUnknown
}
