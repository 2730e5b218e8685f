package csvparse

import (
	"fmt"
	"time"
)

// detectCombinedPairs scans column types left-to-right for adjacent pairs
// where one is DATE_ONLY and the next is TIME_ONLY (either order). Pairs
// don't overlap — once two columns are paired, the scan resumes after the
// second (spec §4.6).
func detectCombinedPairs(types []ColumnTypeInfo, names []string) []CombinedColumnPair {
	var pairs []CombinedColumnPair
	i := 0
	for i < len(types)-1 {
		a, b := types[i], types[i+1]
		switch {
		case a.Kind == KindDateOnly && b.Kind == KindTimeOnly:
			pairs = append(pairs, CombinedColumnPair{
				DateColIndex: i,
				TimeColIndex: i + 1,
				VirtualName:  fmt.Sprintf("%s + %s", names[i], names[i+1]),
			})
			i += 2
		case a.Kind == KindTimeOnly && b.Kind == KindDateOnly:
			pairs = append(pairs, CombinedColumnPair{
				DateColIndex: i + 1,
				TimeColIndex: i,
				VirtualName:  fmt.Sprintf("%s + %s", names[i+1], names[i]),
			})
			i += 2
		default:
			i++
		}
	}
	return pairs
}

// combinedTimestamp composes the date and time cells of a combined pair into
// a UTC epoch seconds value (spec §4.5 rule 1).
func combinedTimestamp(pair CombinedColumnPair, dateCell, timeCell string, dateInfo, timeInfo ColumnTypeInfo) (float64, error) {
	dateTime, err := parseInLayout(dateInfo.Format, dateCell)
	if err != nil {
		return 0, fmt.Errorf("combined date cell: %w", err)
	}
	timeOfDay, err := parseInLayout(timeInfo.Format, timeCell)
	if err != nil {
		return 0, fmt.Errorf("combined time cell: %w", err)
	}
	composed := dateTime.UTC().Add(
		(time.Duration(timeOfDay.Hour())*time.Hour +
			time.Duration(timeOfDay.Minute())*time.Minute +
			time.Duration(timeOfDay.Second())*time.Second +
			time.Duration(timeOfDay.Nanosecond())*time.Nanosecond))
	return epochSecondsWithFraction(composed), nil
}
