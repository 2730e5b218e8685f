package csvparse

import (
	"fmt"
	"strconv"
	"strings"
)

// normalizeHeader produces a unique, non-empty column name vector from a raw
// header line (spec §4.3). It returns the normalized names and whether a
// DUPLICATE_COLUMN_NAMES warning should be emitted.
func normalizeHeader(line string, delim byte) (names []string, duplicated bool) {
	fields := SplitLine(line, delim)

	if allNumeric(fields) {
		names = make([]string, len(fields))
		for i := range fields {
			names[i] = fmt.Sprintf("_Column_%d", i)
		}
		return names, false
	}

	names = make([]string, len(fields))
	for i, f := range fields {
		if f == "" {
			names[i] = fmt.Sprintf("_Column_%d", i)
		} else {
			names[i] = f
		}
	}

	counts := make(map[string]int, len(names))
	for _, n := range names {
		counts[n]++
	}

	changed := false
	for name, count := range counts {
		if count <= 1 {
			continue
		}
		changed = true
		for i, n := range names {
			if n != name {
				continue
			}
			names[i] = fmt.Sprintf("%s_%02d", name, i)
		}
	}

	return names, changed
}

func allNumeric(fields []string) bool {
	if len(fields) == 0 {
		return false
	}
	for _, f := range fields {
		trimmed := strings.TrimSpace(f)
		if trimmed == "" {
			return false
		}
		if _, err := strconv.ParseFloat(trimmed, 64); err != nil {
			return false
		}
	}
	return true
}
