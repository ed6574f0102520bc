package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// normalizeDate converts the three capture groups of a date match into a
// canonical YYYY-MM-DD string. The groups' meaning is determined by the
// pattern's DateOrder tag. Returns false when the components do not form a
// real calendar date.
func normalizeDate(groups []string, order DateOrder, months map[string]string) (string, bool) {
	if len(groups) < 3 {
		return "", false
	}
	a, b, c := groups[0], groups[1], groups[2]

	switch order {
	case OrderYMD:
		return buildDate(a, b, c)

	case OrderMDY:
		// Month-first, falling back to day-first when that is not a real date
		// (e.g. 25/12/2024 has no month 25).
		if date, ok := buildDate(expandYear(c), a, b); ok {
			return date, true
		}
		return buildDate(expandYear(c), b, a)

	case OrderDMY:
		return buildDate(expandYear(c), b, a)

	case OrderDMonY:
		month, ok := lookupMonth(b, months)
		if !ok {
			return "", false
		}
		return buildDate(expandYear(c), month, a)

	case OrderMonDY:
		month, ok := lookupMonth(a, months)
		if !ok {
			return "", false
		}
		return buildDate(expandYear(c), month, b)
	}

	return "", false
}

// buildDate zero-pads the components and verifies they form a real calendar
// date. A date that fails validation is discarded, never coerced.
func buildDate(year, month, day string) (string, bool) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return "", false
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return "", false
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return "", false
	}
	if !validCalendarDate(y, m, d) {
		return "", false
	}
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d), true
}

// validCalendarDate bounds the components and reconstructs the date through
// time.Date: Go normalizes overflow (Feb 30 becomes Mar 1/2), so an exact
// component match proves the input was a real date.
func validCalendarDate(y, m, d int) bool {
	if y < 1900 || y > 2100 || m < 1 || m > 12 || d < 1 || d > 31 {
		return false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	return t.Year() == y && int(t.Month()) == m && t.Day() == d
}

// expandYear widens two-digit years by prefixing the current century.
func expandYear(year string) string {
	if len(year) == 2 {
		return "20" + year
	}
	return year
}

// lookupMonth resolves a month name or abbreviation to its two-digit number.
// The first three letters of any full name are sufficient.
func lookupMonth(name string, months map[string]string) (string, bool) {
	key := strings.ToLower(strings.TrimSpace(strings.TrimSuffix(name, ".")))
	if m, ok := months[key]; ok {
		return m, true
	}
	if len(key) > 3 {
		if m, ok := months[key[:3]]; ok {
			return m, true
		}
	}
	return "", false
}

// validISODate reports whether s is a calendar-valid YYYY-MM-DD string. The
// orchestrator re-checks every candidate with this before accepting it.
func validISODate(s string) bool {
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return false
	}
	y, err := strconv.Atoi(s[:4])
	if err != nil {
		return false
	}
	m, err := strconv.Atoi(s[5:7])
	if err != nil {
		return false
	}
	d, err := strconv.Atoi(s[8:])
	if err != nil {
		return false
	}
	return validCalendarDate(y, m, d)
}
