package csvparse

import (
	"regexp"
	"strconv"
	"strings"
)

// Go reference-time layouts tried for each kind, in priority order within
// that kind. inferType tries DATETIME, then DATE_ONLY, then TIME_ONLY, then
// NUMBER, falling back to STRING (spec §4.4).
var dateTimeLayouts = []struct {
	layout        string
	hasFractional bool
}{
	{"2006-01-02T15:04:05.999999999", true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04:05.999999999", true},
	{"2006-01-02 15:04:05", false},
}

var timeOnlyLayouts = []struct {
	layout        string
	hasFractional bool
}{
	{"15:04:05.999999999", true},
	{"15:04:05", false},
}

var dateOnlyPattern = regexp.MustCompile(`^(\d{1,4})([-/])(\d{1,2})([-/])(\d{1,4})$`)

// inferType fixes a column's ColumnTypeInfo from its first non-empty cell
// (spec §4.4). delimiterIsComma reports whether the file's delimiter is ',' —
// the European decimal-comma number form is accepted only when it isn't.
func inferType(cell string, delimiterIsComma bool) ColumnTypeInfo {
	if layout, hasFrac, ok := matchDateTime(cell); ok {
		return ColumnTypeInfo{Kind: KindDateTime, Format: layout, HasFractional: hasFrac}
	}
	if layout, ok := matchDateOnly(cell); ok {
		return ColumnTypeInfo{Kind: KindDateOnly, Format: layout}
	}
	if layout, hasFrac, ok := matchTimeOnly(cell); ok {
		return ColumnTypeInfo{Kind: KindTimeOnly, Format: layout, HasFractional: hasFrac}
	}
	if ok := matchNumber(cell, delimiterIsComma); ok {
		return ColumnTypeInfo{Kind: KindNumber}
	}
	return ColumnTypeInfo{Kind: KindString}
}

func matchDateTime(cell string) (layout string, hasFractional bool, ok bool) {
	for _, l := range dateTimeLayouts {
		if t, err := parseInLayout(l.layout, cell); err == nil {
			_ = t
			return l.layout, l.hasFractional, true
		}
	}
	return "", false, false
}

func matchTimeOnly(cell string) (layout string, hasFractional bool, ok bool) {
	for _, l := range timeOnlyLayouts {
		if _, err := parseInLayout(l.layout, cell); err == nil {
			return l.layout, l.hasFractional, true
		}
	}
	return "", false, false
}

// matchDateOnly recognizes YYYY-MM-DD and YYYY/MM/DD, and year-last dates
// in DD/MM/YYYY form. A year-last date is read day-first whether or not its
// first numeric component exceeds 12, so a month-first date such as
// 12/25/2024 is not recognized (spec §4.4 rule 2).
func matchDateOnly(cell string) (layout string, ok bool) {
	m := dateOnlyPattern.FindStringSubmatch(cell)
	if m == nil {
		return "", false
	}
	first, sep1, _, sep2, third := m[1], m[2], m[3], m[4], m[5]
	if sep1 != sep2 {
		return "", false
	}
	firstNum, err := strconv.Atoi(first)
	if err != nil {
		return "", false
	}

	if len(first) == 4 {
		layout := "2006" + sep1 + "01" + sep2 + "02"
		if _, err := parseInLayout(layout, cell); err == nil {
			return layout, true
		}
		return "", false
	}
	if len(third) == 4 {
		if firstNum > 12 {
			layout := "02" + sep1 + "01" + sep2 + "2006"
			if _, err := parseInLayout(layout, cell); err == nil {
				return layout, true
			}
			return "", false
		}
		layout := "02" + sep1 + "01" + sep2 + "2006"
		if _, err := parseInLayout(layout, cell); err == nil {
			return layout, true
		}
	}
	return "", false
}

func matchNumber(cell string, delimiterIsComma bool) bool {
	if cell == "" {
		return false
	}
	candidate := cell
	if strings.HasPrefix(candidate, "0x") || strings.HasPrefix(candidate, "0X") {
		_, err := strconv.ParseInt(candidate[2:], 16, 64)
		return err == nil
	}
	if !delimiterIsComma {
		candidate = strings.Replace(candidate, ",", ".", 1)
	}
	_, err := strconv.ParseFloat(candidate, 64)
	return err == nil
}

// parseNumber parses a NUMBER cell to its float64 value, applying the same
// hex / decimal-comma rules as matchNumber.
func parseNumber(cell string, delimiterIsComma bool) (float64, error) {
	if strings.HasPrefix(cell, "0x") || strings.HasPrefix(cell, "0X") {
		v, err := strconv.ParseInt(cell[2:], 16, 64)
		return float64(v), err
	}
	candidate := cell
	if !delimiterIsComma {
		candidate = strings.Replace(candidate, ",", ".", 1)
	}
	return strconv.ParseFloat(candidate, 64)
}
