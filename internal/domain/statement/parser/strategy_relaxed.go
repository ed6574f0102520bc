package parser

import (
	"regexp"
	"strings"
)

// Deliberately loose patterns for the last-resort strategies. The date shape
// accepts any of the supported notations with lax boundaries; the amount
// shape accepts any digit run with optional decimals, sign or accounting
// parentheses.
var (
	relaxedAmountRe = regexp.MustCompile(`\(?[-+]?\d+(?:[.,]\d+)*\)?`)
)

// parseAggressiveRelaxed applies minimal structural assumptions: any date-ish
// token plus the last number-ish token on the same line. It runs late in the
// priority order, so it only sees documents every stricter strategy gave up
// on.
func parseAggressiveRelaxed(lines []string, _ string, cfg *Config) []candidate {
	var out []candidate
	for _, line := range lines {
		dates := findDates(line, cfg)
		if len(dates) == 0 {
			continue
		}
		dh := dates[0]
		rest := line[dh.end:]

		hits := relaxedAmountRe.FindAllStringIndex(rest, -1)
		if len(hits) == 0 {
			continue
		}
		last := hits[len(hits)-1]
		value, ok := normalizeAmount(rest[last[0]:last[1]], cfg)
		if !ok {
			continue
		}
		out = append(out, candidate{
			date:        dh.date,
			description: cleanDescription(rest[:last[0]]),
			amount:      value,
		})
	}
	return out
}

// parseWholeText scans the entire document rather than individual lines, for
// statements where line breaks do not align with logical records. Each date
// occurrence is paired with the first amount that follows it across a
// non-digit-heavy gap.
func parseWholeText(_ []string, fullText string, cfg *Config) []candidate {
	amountRe := buildAmountRegexp(cfg)
	flat := strings.Join(strings.Fields(fullText), " ")

	dates := findDates(flat, cfg)
	if len(dates) == 0 {
		return nil
	}

	var out []candidate
	for i, dh := range dates {
		spanEnd := len(flat)
		if i+1 < len(dates) {
			spanEnd = dates[i+1].start
		}
		span := flat[dh.end:spanEnd]

		for _, ah := range findAmounts(span, amountRe, cfg, false) {
			gap := span[:ah.start]
			if !digitLightGap(gap) {
				continue
			}
			out = append(out, candidate{
				date:        dh.date,
				description: cleanDescription(gap),
				amount:      ah.value,
			})
			break
		}
	}
	return out
}

// digitLightGap accepts a date→amount gap only when it reads like prose: a
// bounded length and fewer than three digits, so account numbers and row IDs
// between the two do not produce bogus records.
func digitLightGap(gap string) bool {
	if len(gap) > 100 {
		return false
	}
	digits := 0
	for _, r := range gap {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits < 3
}
