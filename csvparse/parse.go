package csvparse

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseCSV converts an arbitrary delimited text stream into a CsvParseResult
// (spec §6.1). progressCb may be nil. When cfg.TotalLines is 0 and
// progressCb is non-nil, the whole stream is first read into memory once to
// count its lines, and the parse then runs over that in-memory copy.
func ParseCSV(r io.Reader, cfg CsvParseConfig, progressCb ProgressFunc) (*CsvParseResult, error) {
	var data []byte
	var err error
	if progressCb != nil && cfg.TotalLines == 0 {
		data, err = io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("csvparse: reading input: %w", err)
		}
		cfg.TotalLines = strings.Count(string(data), "\n") + 1
		r = strings.NewReader(string(data))
	}
	return parseCSVReader(r, cfg, progressCb)
}

// ParseCSVString is the convenience form of ParseCSV for in-memory text
// (spec §6.1).
func ParseCSVString(text string, cfg CsvParseConfig, progressCb ProgressFunc) (*CsvParseResult, error) {
	return ParseCSV(strings.NewReader(text), cfg, progressCb)
}

func parseCSVReader(r io.Reader, cfg CsvParseConfig, progressCb ProgressFunc) (*CsvParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	result := &CsvParseResult{
		CombinedComponentIndices: make(map[int]struct{}),
	}

	for i := 0; i < cfg.SkipRows; i++ {
		if !scanner.Scan() {
			return result, nil // parse-setup error: skip_rows not satisfiable
		}
	}

	if !scanner.Scan() {
		return result, nil // empty input: success=false
	}
	headerLine := strings.TrimSuffix(scanner.Text(), "\r")

	delim := cfg.Delimiter
	if delim == 0 {
		delim = DetectDelimiter(headerLine)
	}
	delimiterIsComma := delim == ','

	names, duplicated := normalizeHeader(headerLine, delim)
	if len(names) == 0 {
		return result, nil
	}
	result.ColumnNames = names
	if duplicated {
		result.Warnings = append(result.Warnings, CsvParseWarning{
			Kind: WarningDuplicateColumnNames,
			Line: cfg.SkipRows + 1,
		})
	}

	columns := make([]CsvColumnData, len(names))
	types := make([]ColumnTypeInfo, len(names))
	for i, n := range names {
		columns[i].Name = n
	}

	var combinedPairs []CombinedColumnPair
	var activePair *CombinedColumnPair
	typesFixed := false

	lineNo := cfg.SkipRows + 1
	hasPrevTS := false
	var prevTS float64

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		fields := SplitLine(line, delim)
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(names) {
			result.Warnings = append(result.Warnings, CsvParseWarning{
				Kind:   WarningWrongColumnCount,
				Line:   lineNo,
				Detail: fmt.Sprintf("expected %d fields, got %d", len(names), len(fields)),
			})
			result.LinesSkipped++
			continue
		}

		for i, cell := range fields {
			if types[i].Kind == KindUndefined && cell != "" {
				types[i] = inferType(cell, delimiterIsComma)
			}
		}

		if !typesFixed {
			combinedPairs = detectCombinedPairs(types, names)
			activePair = selectActivePair(combinedPairs, cfg)
			typesFixed = allTypesKnown(types, fields)
		}

		ts, terr := resolveTimestamp(result.LinesProcessed, fields, types, activePair, cfg, delimiterIsComma)
		if terr != nil {
			result.Warnings = append(result.Warnings, CsvParseWarning{
				Kind:   WarningInvalidTimestamp,
				Line:   lineNo,
				Detail: terr.Error(),
			})
			result.LinesSkipped++
			continue
		}

		if hasPrevTS && ts < prevTS && !result.NonMonotonic {
			result.NonMonotonic = true
			result.Warnings = append(result.Warnings, CsvParseWarning{
				Kind: WarningNonMonotonicTime,
				Line: lineNo,
			})
		}
		hasPrevTS = true
		prevTS = ts

		combinedIdx := map[int]struct{}{}
		if activePair != nil {
			combinedIdx[activePair.DateColIndex] = struct{}{}
			combinedIdx[activePair.TimeColIndex] = struct{}{}
			result.CombinedComponentIndices[activePair.DateColIndex] = struct{}{}
			result.CombinedComponentIndices[activePair.TimeColIndex] = struct{}{}
		}

		for i, cell := range fields {
			if _, isCombined := combinedIdx[i]; isCombined {
				continue
			}
			if cell == "" || types[i].Kind == KindUndefined {
				continue
			}
			appendCell(&columns[i], types[i], cell, ts, delimiterIsComma)
		}

		result.LinesProcessed++

		if progressCb != nil && result.LinesProcessed%100 == 0 {
			if !progressCb(lineNo, cfg.TotalLines) {
				result.Success = false
				finalize(result, columns, types)
				return result, nil
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return result, fmt.Errorf("csvparse: scanning input: %w", err)
	}

	result.Success = true
	finalize(result, columns, types)
	return result, nil
}

// selectActivePair activates a detected combined date+time pair only when the
// caller explicitly set CombinedColumnIndex (spec §4.5 rule 1). With nothing
// set, resolveTimestamp falls through to rule 2 (explicit time column) or
// rule 3 (row index) — auto-selecting a pair here is a GUI-only convenience
// in the original (dataload_csv.cpp's TIME_INDEX_COMBINED handling), not part
// of the engine.
func selectActivePair(pairs []CombinedColumnPair, cfg CsvParseConfig) *CombinedColumnPair {
	idx := cfg.CombinedColumnIndex
	if idx < 0 || idx >= len(pairs) {
		return nil
	}
	return &pairs[idx]
}

func allTypesKnown(types []ColumnTypeInfo, fields []string) bool {
	for i, t := range types {
		if t.Kind == KindUndefined && fields[i] != "" {
			return false
		}
	}
	return true
}

func appendCell(col *CsvColumnData, info ColumnTypeInfo, cell string, ts float64, delimiterIsComma bool) {
	if info.Kind == KindString {
		col.Strs = append(col.Strs, stringPoint{Timestamp: ts, Value: cell})
		return
	}
	v, err := valueForCell(cell, info, delimiterIsComma)
	if err != nil {
		col.Strs = append(col.Strs, stringPoint{Timestamp: ts, Value: cell})
		return
	}
	col.Points = append(col.Points, numericPoint{Timestamp: ts, Value: v})
}

// valueForCell extracts a numeric value for a typed cell that isn't the time
// axis: NUMBER cells parse directly; DATE_ONLY/TIME_ONLY/DATETIME cells
// parse to epoch-seconds-shaped values so a value-typed date/time column
// still yields a usable numeric series when it isn't chosen as the time
// axis.
func valueForCell(cell string, info ColumnTypeInfo, delimiterIsComma bool) (float64, error) {
	switch info.Kind {
	case KindNumber:
		return parseNumber(cell, delimiterIsComma)
	default:
		return timestampForCell(cell, info, delimiterIsComma)
	}
}

func finalize(result *CsvParseResult, columns []CsvColumnData, types []ColumnTypeInfo) {
	for i := range columns {
		columns[i].Type = types[i]
	}
	result.Columns = columns
}
