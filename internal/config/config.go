// Package config defines the serializable configuration model for a
// conversion run. It is intentionally small and explicit so that runs can be
// described in a file (JSON or YAML), loaded from disk, and passed through
// the program without additional glue code.
//
// Example (JSON):
//
//	{
//	  "job":    "people",
//	  "source": { "kind": "file", "file": { "path": "people.csv" } },
//	  "parser": { "kind": "csv", "options": { "comma": ";" } },
//	  "output": { "kind": "file", "file": { "path": "people.json" } },
//	  "stats":  true
//	}
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Run describes one full conversion: where input comes from, how it is
// parsed, where the document goes, and whether statistics are computed.
type Run struct {
	// Job is the logical run name, used for metrics labeling and logs.
	Job string `json:"job" yaml:"job"`

	// Source describes where input data comes from.
	Source Source `json:"source" yaml:"source"`

	// Parser configures how raw bytes are turned into records.
	Parser Parser `json:"parser" yaml:"parser"`

	// Output describes where the rendered document is written.
	Output Output `json:"output" yaml:"output"`

	// Stats requests the descriptive-statistics pass.
	Stats bool `json:"stats" yaml:"stats"`
}

// Source identifies the data source. Additional kinds can be added over time.
type Source struct {
	// Kind selects the source implementation. Current value: "file".
	Kind string `json:"kind" yaml:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file" yaml:"file"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input file.
	Path string `json:"path" yaml:"path"`
}

// Parser selects how to split the raw source into logical rows/columns.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind" yaml:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV, recognized keys are:
	//   comma (string), normalize_headers (bool), header_map (object)
	Options Options `json:"options" yaml:"options"`
}

// Output selects the document destination.
type Output struct {
	// Kind selects the destination: "file" or "stdout". An empty kind with a
	// file path set is treated as "file"; empty with no path means stdout.
	Kind string `json:"kind" yaml:"kind"`

	// File carries options for the "file" output kind.
	File OutputFile `json:"file" yaml:"file"`
}

// OutputFile holds configuration for the "file" output kind.
type OutputFile struct {
	// Path is the destination path. An existing file is overwritten.
	Path string `json:"path" yaml:"path"`
}

// Load reads a Run from path. Files ending in .yaml or .yml are decoded as
// YAML; everything else is decoded as JSON.
func Load(path string) (Run, error) {
	var r Run
	b, err := os.ReadFile(path)
	if err != nil {
		return r, fmt.Errorf("read config %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &r); err != nil {
			return r, fmt.Errorf("decode yaml config %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &r); err != nil {
			return r, fmt.Errorf("decode json config %s: %w", path, err)
		}
	}
	return r, nil
}

// Options is a small helper to fetch typed values from arbitrary decoded
// maps without introducing a third-party configuration-binding library. It
// performs only minimal type coercion and returns the provided defaults when
// a key is absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers decode as float64
// and YAML numbers as int, so both are accepted.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Used for single-character parser settings such as the
// field delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored. Returns an empty
// map when the key is missing or the value is not an object.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object decodes to a non-nil, empty Options map. This removes the
// need to nil-check Options at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
