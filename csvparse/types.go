// Package csvparse implements the CSV parsing engine: delimiter detection,
// line splitting, header normalization, per-column type inference, timestamp
// resolution (including combined date+time columns), and a row loop that
// drains results into a sink.PlotDataSink while reporting non-fatal
// shape problems as warnings.
package csvparse

// ColumnKind is the inferred type of a column, fixed on the first non-empty
// cell seen for that column (spec §4.4).
type ColumnKind int

const (
	KindUndefined ColumnKind = iota
	KindNumber
	KindString
	KindDateOnly
	KindTimeOnly
	KindDateTime
)

func (k ColumnKind) String() string {
	switch k {
	case KindNumber:
		return "NUMBER"
	case KindString:
		return "STRING"
	case KindDateOnly:
		return "DATE_ONLY"
	case KindTimeOnly:
		return "TIME_ONLY"
	case KindDateTime:
		return "DATETIME"
	default:
		return "UNDEFINED"
	}
}

// ColumnTypeInfo is the type fixed for one column (spec §3).
type ColumnTypeInfo struct {
	Kind           ColumnKind
	Format         string
	HasFractional  bool
}

// CombinedColumnPair records two adjacent columns — one DATE_ONLY, one
// TIME_ONLY — treated jointly as the file's time axis (spec §4.6).
type CombinedColumnPair struct {
	DateColIndex int
	TimeColIndex int
	VirtualName  string
}

// CsvParseConfig is the caller-supplied, read-only configuration for a parse
// (spec §3).
type CsvParseConfig struct {
	Delimiter byte // 0 means "detect" (spec §4.1)
	SkipRows  int

	// TimeColumnIndex selects an explicit time column, or -1 to use the
	// zero-based row index as the timestamp. Mutually exclusive with
	// CombinedColumnIndex (combined wins when both are set — spec §9 open
	// question, pinned by TestResolveTimestamp_CombinedTakesPrecedence).
	TimeColumnIndex int

	// CustomTimeFormat, when non-empty, is a Go reference-time layout string
	// used to parse TimeColumnIndex's cell (spec §6.5 supplemented feature:
	// the original's strftime-style format is adapted to Go's layout idiom).
	CustomTimeFormat string

	// CombinedColumnIndex indexes into the combined date+time pairs the
	// parser detects from the header/types, or -1 if none is selected
	// (spec §4.5 rule 1). Pairs are always auto-detected internally; this
	// field only chooses among them.
	CombinedColumnIndex int

	// TotalLines is an optional hint for progress reporting; when absent and
	// a progress callback is supplied, the parser pre-scans the stream to
	// count lines.
	TotalLines int
}

// DefaultConfig returns a CsvParseConfig with delimiter auto-detection and
// row-index timestamps.
func DefaultConfig() CsvParseConfig {
	return CsvParseConfig{
		TimeColumnIndex:     -1,
		CombinedColumnIndex: -1,
	}
}

// WarningKind classifies a non-fatal parse issue (spec §3).
type WarningKind int

const (
	WarningWrongColumnCount WarningKind = iota
	WarningInvalidTimestamp
	WarningNonMonotonicTime
	WarningDuplicateColumnNames
)

func (k WarningKind) String() string {
	switch k {
	case WarningWrongColumnCount:
		return "WRONG_COLUMN_COUNT"
	case WarningInvalidTimestamp:
		return "INVALID_TIMESTAMP"
	case WarningNonMonotonicTime:
		return "NON_MONOTONIC_TIME"
	case WarningDuplicateColumnNames:
		return "DUPLICATE_COLUMN_NAMES"
	default:
		return "UNKNOWN"
	}
}

// CsvParseWarning is a recoverable shape problem recorded during parsing
// (spec §3).
type CsvParseWarning struct {
	Kind   WarningKind
	Line   int // 1-based, counting skipped rows
	Detail string
}

// numericPoint and stringPoint mirror sink.Point/sink.StringPoint but stay
// local to CsvColumnData until the result is drained into a sink — the
// result owns its buffers until then (spec §3 Ownership).
type numericPoint struct {
	Timestamp float64
	Value     float64
}

type stringPoint struct {
	Timestamp float64
	Value     string
}

// CsvColumnData holds one column's accumulated points and detected type
// (spec §3).
type CsvColumnData struct {
	Name   string
	Type   ColumnTypeInfo
	Points []numericPoint
	Strs   []stringPoint
}

// NumericLen returns the number of numeric points appended to this column.
func (c *CsvColumnData) NumericLen() int { return len(c.Points) }

// StringLen returns the number of string points appended to this column.
func (c *CsvColumnData) StringLen() int { return len(c.Strs) }

// CsvParseResult is produced once per parse (spec §3).
type CsvParseResult struct {
	Success      bool
	Columns      []CsvColumnData
	ColumnNames  []string
	Warnings     []CsvParseWarning
	NonMonotonic bool
	LinesProcessed int
	LinesSkipped   int
	// CombinedComponentIndices holds the set of column indices consumed as
	// components of a combined date+time pair; those columns carry zero
	// points in the result (spec §3 invariant).
	CombinedComponentIndices map[int]struct{}
}

// ProgressFunc reports row-loop progress; returning false cancels the parse
// (spec §4.7, §9).
type ProgressFunc func(currentLine, totalLines int) bool
