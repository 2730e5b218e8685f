package csvparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVString_RowIndexTimestamps(t *testing.T) {
	result, err := ParseCSVString("x,y\n1.0,2.0\n3.0,4.0\n5.0,6.0\n", DefaultConfig(), nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	require.Len(t, result.Columns, 2)
	assert.Equal(t, []numericPoint{{0, 1}, {1, 3}, {2, 5}}, result.Columns[0].Points)
	assert.Equal(t, []numericPoint{{0, 2}, {1, 4}, {2, 6}}, result.Columns[1].Points)
	assert.Equal(t, 3, result.LinesProcessed)
}

func TestParseCSVString_NonMonotonicTime(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeColumnIndex = 0
	result, err := ParseCSVString("time,val\n1.0,10\n3.0,30\n2.0,20\n", cfg, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.True(t, result.NonMonotonic)
	assert.Equal(t, 3, result.LinesProcessed)

	nonMonoCount := 0
	for _, w := range result.Warnings {
		if w.Kind == WarningNonMonotonicTime {
			nonMonoCount++
		}
	}
	assert.Equal(t, 1, nonMonoCount, "NON_MONOTONIC_TIME must appear at most once")
}

func TestParseCSVString_CombinedDateTimeColumns(t *testing.T) {
	text := "Date,Time,Temp\n2024-01-15,10:30:25.000,23.5\n2024-01-15,10:30:26.000,23.6\n"
	cfg := DefaultConfig()
	cfg.CombinedColumnIndex = 0
	result, err := ParseCSVString(text, cfg, nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	tempCol := findColumn(t, result, "Temp")
	require.Len(t, tempCol.Points, 2)
	assert.InDelta(t, 1.0, tempCol.Points[1].Timestamp-tempCol.Points[0].Timestamp, 1e-3)

	assert.Contains(t, result.CombinedComponentIndices, 0)
	assert.Contains(t, result.CombinedComponentIndices, 1)
	assert.Empty(t, result.Columns[0].Points)
	assert.Empty(t, result.Columns[1].Points)
}

func TestParseCSVString_CombinedColumnsNotAutoActivated(t *testing.T) {
	// Detected Date+Time pairs must not activate on their own: without an
	// explicit CombinedColumnIndex the row index is the timestamp (spec
	// §4.5 rule 3), matching the original engine's behavior — auto-selection
	// is a GUI-only convenience, not part of the parser.
	text := "Date,Time,Temp\n2024-01-15,10:30:25.000,23.5\n2024-01-15,10:30:26.000,23.6\n"
	result, err := ParseCSVString(text, DefaultConfig(), nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	assert.Empty(t, result.CombinedComponentIndices)
	tempCol := findColumn(t, result, "Temp")
	require.Len(t, tempCol.Points, 2)
	assert.Equal(t, []numericPoint{{0, 23.5}, {1, 23.6}}, tempCol.Points)
}

func TestParseCSVString_HexAndScientificNumbers(t *testing.T) {
	result, err := ParseCSVString("val\n0xFF\n1.5e3\n-3e2\n", DefaultConfig(), nil)
	require.NoError(t, err)
	require.True(t, result.Success)

	col := result.Columns[0]
	require.Len(t, col.Points, 3)
	assert.Equal(t, []float64{255.0, 1500.0, -300.0}, []float64{col.Points[0].Value, col.Points[1].Value, col.Points[2].Value})
	assert.Empty(t, col.Strs)
}

func TestParseCSVString_EmptyInputFails(t *testing.T) {
	result, err := ParseCSVString("", DefaultConfig(), nil)
	require.NoError(t, err)
	assert.False(t, result.Success)
}

func TestParseCSVString_HeaderOnlySucceedsWithNoRows(t *testing.T) {
	result, err := ParseCSVString("a,b,c\n", DefaultConfig(), nil)
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 0, result.LinesProcessed)
}

func TestParseCSVString_WrongColumnCountIsWarnedAndSkipped(t *testing.T) {
	result, err := ParseCSVString("a,b\n1,2\n1,2,3\n4,5\n", DefaultConfig(), nil)
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.LinesProcessed)
	assert.Equal(t, 1, result.LinesSkipped)

	found := false
	for _, w := range result.Warnings {
		if w.Kind == WarningWrongColumnCount {
			found = true
		}
	}
	assert.True(t, found)
}

func TestParseCSVString_WindowsLineEndingsMatchUnix(t *testing.T) {
	unix, err := ParseCSVString("x,y\n1,2\n3,4\n", DefaultConfig(), nil)
	require.NoError(t, err)
	windows, err := ParseCSVString("x,y\r\n1,2\r\n3,4\r\n", DefaultConfig(), nil)
	require.NoError(t, err)

	assert.Equal(t, unix.Columns, windows.Columns)
}

func TestParseCSVString_ProgressCallbackCancels(t *testing.T) {
	var lines []string
	lines = append(lines, "x")
	for i := 0; i < 250; i++ {
		lines = append(lines, "1")
	}
	text := ""
	for i, l := range lines {
		if i > 0 {
			text += "\n"
		}
		text += l
	}

	calls := 0
	cfg := DefaultConfig()
	result, err := ParseCSVString(text, cfg, func(current, total int) bool {
		calls++
		return calls < 2 // cancel on the second callback (line 200)
	})
	require.NoError(t, err)
	assert.False(t, result.Success)
	assert.Less(t, result.LinesProcessed, 250)
}

func TestResolveTimestamp_CombinedTakesPrecedence(t *testing.T) {
	// spec §9 open question: when both combined_column_index and
	// time_column_index are set, combined wins.
	types := []ColumnTypeInfo{
		{Kind: KindDateOnly, Format: "2006-01-02"},
		{Kind: KindTimeOnly, Format: "15:04:05"},
		{Kind: KindNumber},
	}
	fields := []string{"2024-01-15", "10:30:25", "99"}
	pair := CombinedColumnPair{DateColIndex: 0, TimeColIndex: 1}
	cfg := DefaultConfig()
	cfg.TimeColumnIndex = 2
	cfg.CombinedColumnIndex = 0

	ts, err := resolveTimestamp(0, fields, types, &pair, cfg, true)
	require.NoError(t, err)
	assert.NotEqual(t, float64(99), ts, "combined pair must win over the explicit time column")
}

func findColumn(t *testing.T, result *CsvParseResult, name string) CsvColumnData {
	t.Helper()
	for _, c := range result.Columns {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("column %q not found", name)
	return CsvColumnData{}
}
