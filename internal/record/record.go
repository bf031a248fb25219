// Package record defines the dynamic, header-driven record type used
// throughout the converter. Keys are determined at runtime from file content;
// no static schema is assumed.
//
// A Record behaves like a map[string]string with O(1) lookup, but remembers
// the order in which keys were first set so that JSON output is deterministic
// (object keys appear in header order, run after run).
package record

import (
	"bytes"
	"encoding/json"
)

// Record is an insertion-ordered string-to-string association. The zero value
// is not usable; construct with New.
type Record struct {
	keys []string
	idx  map[string]int
	vals []string
}

// New returns an empty Record with capacity for n entries.
func New(n int) *Record {
	return &Record{
		keys: make([]string, 0, n),
		idx:  make(map[string]int, n),
		vals: make([]string, 0, n),
	}
}

// Set associates key with value. Setting an existing key overwrites its value
// in place and keeps the key's original position, so duplicate header names
// resolve to last-column-wins without disturbing key order.
func (r *Record) Set(key, value string) {
	if i, ok := r.idx[key]; ok {
		r.vals[i] = value
		return
	}
	r.idx[key] = len(r.keys)
	r.keys = append(r.keys, key)
	r.vals = append(r.vals, value)
}

// Get returns the value for key and whether the key is present. Absent keys
// are distinguishable from keys holding an empty string.
func (r *Record) Get(key string) (string, bool) {
	i, ok := r.idx[key]
	if !ok {
		return "", false
	}
	return r.vals[i], true
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.idx[key]
	return ok
}

// Len returns the number of entries.
func (r *Record) Len() int { return len(r.keys) }

// Keys returns the keys in insertion order. The slice is shared; callers must
// not modify it.
func (r *Record) Keys() []string { return r.keys }

// MarshalJSON emits the entries as a JSON object in insertion order. Keys and
// values are individually json-escaped to stay safe for diacritics, embedded
// quotes, etc. Absent keys are simply not in the object; nothing is emitted
// as null.
func (r *Record) MarshalJSON() ([]byte, error) {
	if len(r.keys) == 0 {
		return []byte(`{}`), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(r.vals[i])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
