package parser

import (
	"regexp"
	"sort"
	"strings"
)

// Strategy is one self-contained heuristic for extracting transactions from
// statement text. Strategies are pure functions over (lines, fullText, config)
// with no state shared between invocations; the orchestrator tries them in
// priority order and commits to the first whose filtered output is non-empty.
type Strategy struct {
	Name  string
	Parse func(lines []string, fullText string, cfg *Config) []candidate
}

// defaultStrategies returns the strategy set in execution priority order.
func defaultStrategies() []Strategy {
	return []Strategy{
		{Name: "universal-adaptive", Parse: parseUniversalAdaptive},
		{Name: "currency-suffix-window", Parse: parseCurrencySuffixWindow},
		{Name: "iso-line", Parse: fixedLineStrategy(OrderYMD, isoDateRe, 0)},
		{Name: "iso-window", Parse: fixedLineStrategy(OrderYMD, isoDateRe, 3)},
		{Name: "slash-line", Parse: fixedLineStrategy(OrderMDY, slashDateRe, 0)},
		{Name: "slash-window", Parse: fixedLineStrategy(OrderMDY, slashDateRe, 3)},
		{Name: "day-monthname-line", Parse: fixedLineStrategy(OrderDMonY, dayMonthNameRe, 0)},
		{Name: "monthname-day-line", Parse: fixedLineStrategy(OrderMonDY, monthNameDayRe, 0)},
		{Name: "tabular-columns", Parse: parseTabularColumns},
		{Name: "delimited-fields", Parse: parseDelimitedFields},
		{Name: "european-dot-date", Parse: parseEuropeanDotDate},
		{Name: "aggressive-relaxed", Parse: parseAggressiveRelaxed},
		{Name: "whole-text-scan", Parse: parseWholeText},
	}
}

// Fixed date notations used by the single-format strategies. Group order per
// notation matches the DateOrder tag the strategy carries.
var (
	isoDateRe      = regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`)
	slashDateRe    = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	dotDateRe      = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{2,4})\b`)
	dayMonthNameRe = regexp.MustCompile(`\b(\d{1,2})\s+([A-Za-z]{3,9})\.?\s+(\d{2,4})\b`)
	monthNameDayRe = regexp.MustCompile(`\b([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{2,4})\b`)
)

// dateHit is a normalized date occurrence with its span in the scanned text.
type dateHit struct {
	start, end int
	date       string
}

// findDates collects every normalized date occurrence across all configured
// patterns, sorted by position with overlapping spans collapsed.
func findDates(s string, cfg *Config) []dateHit {
	var hits []dateHit
	for _, dp := range cfg.DatePatterns {
		for _, m := range dp.Regexp.FindAllStringSubmatchIndex(s, -1) {
			groups := submatchStrings(s, m)
			date, ok := normalizeDate(groups, dp.Order, cfg.MonthNames)
			if !ok {
				continue
			}
			hits = append(hits, dateHit{start: m[0], end: m[1], date: date})
		}
	}
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].start != hits[j].start {
			return hits[i].start < hits[j].start
		}
		return hits[i].end > hits[j].end
	})

	// Collapse overlaps, keeping the earliest (and longest at equal start).
	out := hits[:0]
	lastEnd := -1
	for _, h := range hits {
		if h.start < lastEnd {
			continue
		}
		out = append(out, h)
		lastEnd = h.end
	}
	return out
}

// findFirstDate returns the first calendar-valid match of a single pattern.
func findFirstDate(s string, re *regexp.Regexp, order DateOrder, cfg *Config) (dateHit, bool) {
	for _, m := range re.FindAllStringSubmatchIndex(s, -1) {
		groups := submatchStrings(s, m)
		date, ok := normalizeDate(groups, order, cfg.MonthNames)
		if !ok {
			continue
		}
		return dateHit{start: m[0], end: m[1], date: date}, true
	}
	return dateHit{}, false
}

func submatchStrings(s string, idx []int) []string {
	groups := make([]string, 0, len(idx)/2-1)
	for g := 1; g*2+1 < len(idx); g++ {
		lo, hi := idx[g*2], idx[g*2+1]
		if lo < 0 {
			groups = append(groups, "")
			continue
		}
		groups = append(groups, s[lo:hi])
	}
	return groups
}

// amountHit is a normalized amount occurrence with its span in the scanned
// text.
type amountHit struct {
	start, end int
	value      float64
}

// buildAmountRegexp compiles an amount matcher from the configured currency
// tokens: optional currency prefix/suffix, optional sign or accounting
// parentheses, grouped digits with an optional decimal part.
func buildAmountRegexp(cfg *Config) *regexp.Regexp {
	alt := currencyAlternation(cfg)
	pattern := `(?i)(?:(?:` + alt + `)\s?)?\(?[-+]?\d+(?:[., ]\d{3})*(?:[.,]\d{1,2})?\)?(?:\s?(?:` + alt + `))?`
	return regexp.MustCompile(pattern)
}

func currencyAlternation(cfg *Config) string {
	quoted := make([]string, 0, len(cfg.CurrencyTokens))
	for _, tok := range cfg.CurrencyTokens {
		if tok != "" {
			quoted = append(quoted, regexp.QuoteMeta(tok))
		}
	}
	if len(quoted) == 0 {
		// Degenerate config; match nothing as a currency marker.
		return `\b\B`
	}
	return strings.Join(quoted, "|")
}

// findAmounts returns every substring of s that normalizes to a finite amount.
// Unless loose is set, bare short integers with no decimal part, sign,
// parentheses or currency marker are skipped: they are usually reference
// numbers, not amounts.
func findAmounts(s string, re *regexp.Regexp, cfg *Config, loose bool) []amountHit {
	var hits []amountHit
	for _, m := range re.FindAllStringIndex(s, -1) {
		raw := s[m[0]:m[1]]
		if !loose && !plausibleAmount(raw, cfg) {
			continue
		}
		value, ok := normalizeAmount(raw, cfg)
		if !ok {
			continue
		}
		hits = append(hits, amountHit{start: m[0], end: m[1], value: value})
	}
	return hits
}

// plausibleAmount filters matches that are probably not monetary values: a
// naked "815" in "Flight 815" matches the digit pattern but carries none of
// the cues an amount does.
func plausibleAmount(raw string, cfg *Config) bool {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return false
	}
	if strings.ContainsAny(trimmed, "+-(),.") {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, tok := range cfg.CurrencyTokens {
		if strings.Contains(lower, strings.ToLower(tok)) {
			return true
		}
	}
	digits := 0
	for _, r := range trimmed {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	return digits >= 4
}

// cleanDescription trims and collapses runs of whitespace in a matched span.
func cleanDescription(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// splitLines breaks statement text into trimmed lines, dropping trailing
// carriage returns from CRLF input.
func splitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, len(raw))
	for i, line := range raw {
		lines[i] = strings.TrimRight(line, "\r")
	}
	return lines
}
