// Package stats computes descriptive statistics over a parsed table: row and
// column totals, empty-cell counts, and per-column distinct-value counts.
//
// Distinct values are tracked as 64-bit xxh3 hashes rather than retained
// strings, so the aggregator's footprint stays proportional to cardinality,
// not to total value bytes. Hash collisions would undercount by one; at 64
// bits that is negligible for the table sizes this tool handles.
package stats

import (
	"strings"

	"github.com/zeebo/xxh3"

	"csv2json/internal/record"
)

// Stats is a read-only snapshot derived from one table.
type Stats struct {
	// TotalRows is the number of parsed data lines.
	TotalRows int `json:"total_rows"`

	// TotalColumns is the header count, regardless of any row's actual width.
	TotalColumns int `json:"total_columns"`

	// EmptyCells counts cells present in a row whose trimmed value is "".
	// Keys absent from short rows are not cells and are never counted.
	EmptyCells int `json:"empty_cells"`

	// ColumnUniqueCounts maps each header name to the number of distinct raw
	// (untrimmed) values observed in that column. The empty string is one
	// possible distinct value. A column absent from every row reports 0.
	ColumnUniqueCounts map[string]int `json:"column_unique_counts"`
}

// Aggregate scans rows once and returns the Stats snapshot. It is a pure,
// total function over any headers/rows pair produced by the parser; row order
// does not affect the result.
func Aggregate(headers []string, rows []*record.Record) Stats {
	// One distinct-value set per header name, present even when empty so that
	// ColumnUniqueCounts has exactly one entry per header.
	distinct := make(map[string]map[uint64]struct{}, len(headers))
	for _, h := range headers {
		if _, ok := distinct[h]; !ok {
			distinct[h] = make(map[uint64]struct{})
		}
	}

	// Iterate the pairs actually present in each row. A duplicated header
	// name holds a single cell per row, and keys absent from short rows do
	// not exist at all, so neither can skew the counts.
	empty := 0
	for _, row := range rows {
		for _, k := range row.Keys() {
			v, _ := row.Get(k)
			if strings.TrimSpace(v) == "" {
				empty++
			}
			distinct[k][xxh3.HashString(v)] = struct{}{}
		}
	}

	counts := make(map[string]int, len(distinct))
	for h, set := range distinct {
		counts[h] = len(set)
	}

	return Stats{
		TotalRows:          len(rows),
		TotalColumns:       len(headers),
		EmptyCells:         empty,
		ColumnUniqueCounts: counts,
	}
}
