package stats_test

import (
	"strings"
	"testing"

	pcsv "csv2json/internal/parser/csv"
	"csv2json/internal/record"
	"csv2json/internal/stats"
)

func table(t *testing.T, input string) ([]string, []*record.Record) {
	t.Helper()
	headers, rows, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return headers, rows
}

func TestAggregateScenario(t *testing.T) {
	t.Parallel()

	headers, rows := table(t, "name,age,job\nAlice,30,Engineer\nBob,,Designer\n")
	s := stats.Aggregate(headers, rows)

	if s.TotalRows != 2 {
		t.Fatalf("total_rows=%d want 2", s.TotalRows)
	}
	if s.TotalColumns != 3 {
		t.Fatalf("total_columns=%d want 3", s.TotalColumns)
	}
	if s.EmptyCells != 1 {
		t.Fatalf("empty_cells=%d want 1", s.EmptyCells)
	}
	for _, h := range []string{"name", "age", "job"} {
		if s.ColumnUniqueCounts[h] != 2 {
			t.Fatalf("unique[%s]=%d want 2", h, s.ColumnUniqueCounts[h])
		}
	}
}

func TestAggregateHeaderOnly(t *testing.T) {
	t.Parallel()

	headers, rows := table(t, "a,b,c\n")
	s := stats.Aggregate(headers, rows)

	if s.TotalRows != 0 || s.EmptyCells != 0 {
		t.Fatalf("rows=%d empty=%d want 0,0", s.TotalRows, s.EmptyCells)
	}
	if s.TotalColumns != 3 {
		t.Fatalf("total_columns=%d want 3", s.TotalColumns)
	}
	if len(s.ColumnUniqueCounts) != 3 {
		t.Fatalf("unique counts entries=%d want 3", len(s.ColumnUniqueCounts))
	}
	for h, n := range s.ColumnUniqueCounts {
		if n != 0 {
			t.Fatalf("unique[%s]=%d want 0", h, n)
		}
	}
}

func TestAggregateAbsentKeysAreNotEmptyCells(t *testing.T) {
	t.Parallel()

	// Second row is short: c is absent, not empty.
	headers, rows := table(t, "a,b,c\n1,2,3\n4,5\n")
	s := stats.Aggregate(headers, rows)

	if s.EmptyCells != 0 {
		t.Fatalf("empty_cells=%d want 0 (absent keys are not cells)", s.EmptyCells)
	}
	if s.ColumnUniqueCounts["c"] != 1 {
		t.Fatalf("unique[c]=%d want 1", s.ColumnUniqueCounts["c"])
	}
}

func TestAggregateColumnAbsentFromEveryRow(t *testing.T) {
	t.Parallel()

	headers, rows := table(t, "a,b\n1\n2\n")
	s := stats.Aggregate(headers, rows)

	if s.ColumnUniqueCounts["b"] != 0 {
		t.Fatalf("unique[b]=%d want 0", s.ColumnUniqueCounts["b"])
	}
	if s.TotalColumns != 2 {
		t.Fatalf("total_columns=%d want 2", s.TotalColumns)
	}
}

func TestAggregateEmptyStringIsADistinctValue(t *testing.T) {
	t.Parallel()

	headers, rows := table(t, "a\nx\n\"\"\nx\n")
	s := stats.Aggregate(headers, rows)

	// Values are "x", "" and "x": two distinct, one empty cell.
	if s.ColumnUniqueCounts["a"] != 2 {
		t.Fatalf("unique[a]=%d want 2", s.ColumnUniqueCounts["a"])
	}
	if s.EmptyCells != 1 {
		t.Fatalf("empty_cells=%d want 1", s.EmptyCells)
	}
}

func TestAggregateWhitespaceCountsAsEmptyButStaysDistinct(t *testing.T) {
	t.Parallel()

	headers := []string{"a"}
	rows := []*record.Record{rec("a", " "), rec("a", "  "), rec("a", "")}
	s := stats.Aggregate(headers, rows)

	// All three trim to "": three empty cells, but the raw values are three
	// distinct strings.
	if s.EmptyCells != 3 {
		t.Fatalf("empty_cells=%d want 3", s.EmptyCells)
	}
	if s.ColumnUniqueCounts["a"] != 3 {
		t.Fatalf("unique[a]=%d want 3", s.ColumnUniqueCounts["a"])
	}
}

func TestAggregateUniqueNeverExceedsRows(t *testing.T) {
	t.Parallel()

	headers, rows := table(t, "a,b\n1,1\n1,2\n2,2\n")
	s := stats.Aggregate(headers, rows)

	for h, n := range s.ColumnUniqueCounts {
		if n > s.TotalRows {
			t.Fatalf("unique[%s]=%d exceeds rows=%d", h, n, s.TotalRows)
		}
	}
}

func TestAggregateDuplicateHeaderSingleEntry(t *testing.T) {
	t.Parallel()

	headers, rows := table(t, "id,id\n1,2\n3,4\n")
	s := stats.Aggregate(headers, rows)

	if len(s.ColumnUniqueCounts) != 1 {
		t.Fatalf("entries=%d want 1 (per header name)", len(s.ColumnUniqueCounts))
	}
	// Each row holds one cell for "id" (the later column), values 2 and 4.
	if s.ColumnUniqueCounts["id"] != 2 {
		t.Fatalf("unique[id]=%d want 2", s.ColumnUniqueCounts["id"])
	}
	if s.EmptyCells != 0 {
		t.Fatalf("empty_cells=%d want 0", s.EmptyCells)
	}
}

func rec(pairs ...string) *record.Record {
	r := record.New(len(pairs) / 2)
	for i := 0; i+1 < len(pairs); i += 2 {
		r.Set(pairs[i], pairs[i+1])
	}
	return r
}

func BenchmarkAggregate(b *testing.B) {
	headers := []string{"a", "b", "c"}
	rows := make([]*record.Record, 0, 5000)
	for i := 0; i < 5000; i++ {
		r := record.New(3)
		r.Set("a", "constant")
		r.Set("b", strings.Repeat("x", i%32))
		r.Set("c", "")
		rows = append(rows, r)
	}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = stats.Aggregate(headers, rows)
	}
}
