package csvparse

import "fmt"

// resolveTimestamp implements the precedence in spec §4.5: combined column
// (if active) wins over an explicit time column, which wins over the
// zero-based row index.
func resolveTimestamp(
	rowIndex int,
	fields []string,
	types []ColumnTypeInfo,
	activePair *CombinedColumnPair,
	cfg CsvParseConfig,
	delimiterIsComma bool,
) (ts float64, err error) {
	if activePair != nil {
		dateCell := fields[activePair.DateColIndex]
		timeCell := fields[activePair.TimeColIndex]
		return combinedTimestamp(*activePair, dateCell, timeCell, types[activePair.DateColIndex], types[activePair.TimeColIndex])
	}

	if cfg.TimeColumnIndex >= 0 {
		if cfg.TimeColumnIndex >= len(fields) {
			return 0, fmt.Errorf("time column index %d out of range", cfg.TimeColumnIndex)
		}
		cell := fields[cfg.TimeColumnIndex]
		if cfg.CustomTimeFormat != "" {
			t, perr := parseInLayout(cfg.CustomTimeFormat, cell)
			if perr != nil {
				return 0, perr
			}
			return epochSecondsWithFraction(t), nil
		}
		info := types[cfg.TimeColumnIndex]
		switch info.Kind {
		case KindNumber, KindDateOnly, KindTimeOnly, KindDateTime:
			return timestampForCell(cell, info, delimiterIsComma)
		default:
			return 0, fmt.Errorf("column %d (STRING) cannot be used as a timestamp", cfg.TimeColumnIndex)
		}
	}

	return float64(rowIndex), nil
}
