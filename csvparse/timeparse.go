package csvparse

import (
	"fmt"
	"time"
)

func parseInLayout(layout, cell string) (time.Time, error) {
	return time.Parse(layout, cell)
}

// timestampForCell converts a cell to epoch seconds according to its
// column's detected kind (spec §4.5 "Semantics of the type-specific
// parsers"):
//
//   - NUMBER: interpreted directly as epoch seconds.
//   - DATE_ONLY: midnight UTC of the parsed date.
//   - TIME_ONLY: seconds since midnight — NOT an absolute epoch.
//   - DATETIME: UTC epoch seconds.
func timestampForCell(cell string, info ColumnTypeInfo, delimiterIsComma bool) (float64, error) {
	switch info.Kind {
	case KindNumber:
		return parseNumber(cell, delimiterIsComma)
	case KindDateOnly:
		t, err := time.Parse(info.Format, cell)
		if err != nil {
			return 0, err
		}
		return float64(t.UTC().Unix()), nil
	case KindTimeOnly:
		t, err := time.Parse(info.Format, cell)
		if err != nil {
			return 0, err
		}
		return secondsSinceMidnight(t), nil
	case KindDateTime:
		t, err := time.Parse(info.Format, cell)
		if err != nil {
			return 0, err
		}
		return epochSecondsWithFraction(t), nil
	default:
		return 0, fmt.Errorf("column type %s cannot be used as a timestamp", info.Kind)
	}
}

func secondsSinceMidnight(t time.Time) float64 {
	return float64(t.Hour()*3600+t.Minute()*60+t.Second()) + float64(t.Nanosecond())/1e9
}

func epochSecondsWithFraction(t time.Time) float64 {
	return float64(t.UTC().Unix()) + float64(t.Nanosecond())/1e9
}
