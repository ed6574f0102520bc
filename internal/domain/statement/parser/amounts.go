package parser

import (
	"math"
	"strconv"
	"strings"
)

// normalizeAmount parses a raw numeric/currency substring into a signed value
// under the config's separator convention, auto-detecting when none is set.
// Returns false for anything that does not clean up to a finite number; the
// caller must drop the candidate rather than coerce to zero.
func normalizeAmount(raw string, cfg *Config) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}

	for _, tok := range cfg.CurrencyTokens {
		s = stripTokenFold(s, tok)
	}
	s = strings.TrimSpace(s)

	negative := false

	// Accounting-style negative: (45.99)
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(s[1 : len(s)-1])
	}

	if strings.HasPrefix(s, "-") {
		negative = true
		s = strings.TrimSpace(s[1:])
	} else if strings.HasPrefix(s, "+") {
		s = strings.TrimSpace(s[1:])
	}

	switch cfg.DecimalSeparator {
	case ',':
		s = stripThousands(s, cfg.ThousandsSeparator, '.', ' ')
		s = strings.ReplaceAll(s, ",", ".")
	case '.':
		s = stripThousands(s, cfg.ThousandsSeparator, ',', ' ')
	default:
		s = autoNormalizeSeparators(s)
	}
	s = strings.TrimSpace(s)

	value, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}

	if negative {
		return -math.Abs(value), true
	}
	return value, true
}

// autoNormalizeSeparators rewrites an amount with unknown regional convention
// into canonical dot-decimal form by counting separator occurrences.
// A bare multi-digit number with no punctuation stays as-is; that case is
// inherently ambiguous and handled best-effort.
func autoNormalizeSeparators(s string) string {
	commas := strings.Count(s, ",")
	dots := strings.Count(s, ".")
	spaces := strings.Count(s, " ")

	switch {
	case commas == 1 && (dots > 0 || spaces > 0):
		// The comma is the decimal separator only when it follows every dot
		// and space: 1.234,56 / 1 234,56. Otherwise it is US grouping ahead
		// of a dot decimal: 1,234.56.
		commaAt := strings.IndexByte(s, ',')
		if commaAt > strings.LastIndexByte(s, '.') && commaAt > strings.LastIndexByte(s, ' ') {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, " ", "")
			return strings.ReplaceAll(s, ",", ".")
		}
		s = strings.ReplaceAll(s, ",", "")
		return strings.ReplaceAll(s, " ", "")

	case dots == 1 && commas > 0:
		// US: 1,234.56
		return strings.ReplaceAll(s, ",", "")

	case commas == 1:
		// Single comma, nothing else: decimal comma.
		return strings.ReplaceAll(s, ",", ".")

	case dots == 1:
		// Already canonical.
		return strings.ReplaceAll(s, " ", "")

	case commas > 1:
		// Multiple commas are thousands separators: 1,234,567
		return strings.ReplaceAll(s, ",", "")

	case dots > 1:
		// Multiple dots: treat the last group as decimals when it looks like
		// one, strip the rest. 1.234.567,?? never reaches here with a comma.
		last := strings.LastIndex(s, ".")
		head := strings.ReplaceAll(s[:last], ".", "")
		return head + s[last:]

	case spaces > 0:
		// Bare space-grouped thousands: 1 234 567
		return strings.ReplaceAll(s, " ", "")
	}

	return s
}

// stripThousands removes the configured thousands separator, or each of the
// fallback separators when none is configured.
func stripThousands(s string, configured rune, fallbacks ...rune) string {
	if configured != 0 {
		return strings.ReplaceAll(s, string(configured), "")
	}
	for _, sep := range fallbacks {
		s = strings.ReplaceAll(s, string(sep), "")
	}
	return s
}

// stripTokenFold removes every case-insensitive occurrence of token from s.
func stripTokenFold(s, token string) string {
	if token == "" {
		return s
	}
	lower := strings.ToLower(s)
	needle := strings.ToLower(token)
	for {
		idx := strings.Index(lower, needle)
		if idx < 0 {
			return s
		}
		s = s[:idx] + s[idx+len(token):]
		lower = lower[:idx] + lower[idx+len(needle):]
	}
}
