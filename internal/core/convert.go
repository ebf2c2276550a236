package core

// convert.go casts raw CSV cell strings into typed Values.
//
// Date and datetime parsing is pinned to an explicit layout set rather than a
// guessing parser, so a given string either parses the same way everywhere or
// not at all. Numeric parsing tolerates the usual CSV artifacts: currency
// symbols, thousands separators, and accounting-style parentheses.

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// numericRegex matches integers, decimals, and scientific notation after
// cleanup.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

var dateLayouts = []string{
	"2006-01-02", "2006/01/02", "2006.01.02",
	"1/2/2006", "01/02/2006", "1-2-2006", "01-02-2006", "1.2.2006", "01.02.2006",
	"Jan 2, 2006", "2 Jan 2006",
	"20060102",
}

var dateTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"1/2/2006 15:04:05",
	"01/02/2006 15:04:05",
	"1/2/2006 15:04",
	"01/02/2006 15:04",
}

// ErrNonInteger marks a numeric string whose fractional part is not zero.
var ErrNonInteger = errors.New("non-integer value")

// ErrBadNumber marks a string that is not numeric at all.
var ErrBadNumber = errors.New("invalid number")

// ParseDate parses s against the pinned date layouts, falling back to the
// datetime layouts with the time-of-day truncated away.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// ParseDateTime parses s against the pinned datetime layouts, falling back to
// the date layouts at midnight.
func ParseDateTime(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseBool matches case-insensitively against {true,1,yes} and {false,0,no}.
func ParseBool(s string) (bool, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	default:
		return false, false
	}
}

// ParseInteger accepts a whole number or a decimal string whose fractional
// part is exactly zero ("42.0" parses, "42.5" is ErrNonInteger, "abc" is
// ErrBadNumber).
func ParseInteger(s string) (int64, error) {
	cleaned, ok := cleanNumeric(s)
	if !ok {
		return 0, ErrBadNumber
	}
	if i, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, ErrBadNumber
	}
	// float64(math.MaxInt64) rounds up to 2^63, so >= is the right bound.
	if f >= float64(math.MaxInt64) || f < math.MinInt64 {
		return 0, ErrBadNumber
	}
	i := int64(f)
	if float64(i) != f {
		return 0, ErrNonInteger
	}
	return i, nil
}

// ParseFloat accepts any numeric-parseable value.
func ParseFloat(s string) (float64, bool) {
	cleaned, ok := cleanNumeric(s)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// cleanNumeric strips currency symbols, thousands separators, and accounting
// parentheses, then validates the result against numericRegex.
func cleanNumeric(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, "€", "") // Euro
	s = strings.ReplaceAll(s, "£", "") // Pound
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if negative {
		s = "-" + s
	}

	if !numericRegex.MatchString(s) {
		return "", false
	}
	return s, true
}

// CleanCell removes common CSV artifacts from a cell value: surrounding
// whitespace, Excel formula prefixes (="value"), and stray quotes.
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	s = strings.Trim(s, `"'`)

	return s
}
