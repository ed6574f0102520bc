package parser

import (
	"regexp"
	"strings"
)

// parseUniversalAdaptive is the primary strategy: for every line it locates
// all date occurrences across every configured pattern, then scans the span
// between consecutive dates for amounts. One candidate is emitted per
// (date, amount) pair, with the text between them as the description.
func parseUniversalAdaptive(lines []string, _ string, cfg *Config) []candidate {
	amountRe := buildAmountRegexp(cfg)

	var out []candidate
	for _, line := range lines {
		dates := findDates(line, cfg)
		if len(dates) == 0 {
			continue
		}

		for i, dh := range dates {
			spanEnd := len(line)
			if i+1 < len(dates) {
				spanEnd = dates[i+1].start
			}
			span := line[dh.end:spanEnd]

			prev := 0
			for _, ah := range findAmounts(span, amountRe, cfg, false) {
				desc := cleanDescription(span[prev:ah.start])
				if desc == "" {
					// Amount directly after the date; use the span tail.
					desc = cleanDescription(span[ah.end:])
				}
				out = append(out, candidate{
					date:        dh.date,
					description: desc,
					amount:      ah.value,
				})
				prev = ah.end
			}
		}
	}
	return out
}

// currencyCodeSuffixRe matches digital-bank app exports ("Revolut"-style)
// where the amount always carries a trailing ISO code: "-12.50 EUR".
func currencyCodeSuffixRe(cfg *Config) *regexp.Regexp {
	codes := make([]string, 0, len(cfg.CurrencyTokens))
	for _, tok := range cfg.CurrencyTokens {
		if len(tok) == 3 && tok == strings.ToUpper(tok) && isLetters(tok) {
			codes = append(codes, tok)
		}
	}
	if len(codes) == 0 {
		codes = []string{"USD", "EUR", "GBP"}
	}
	return regexp.MustCompile(`(?i)([-+]?\d[\d.,\s]*\d|\d)\s*(` + strings.Join(codes, "|") + `)\b`)
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// parseCurrencySuffixWindow scans for a date on a line, then searches up to
// three subsequent lines for a code-suffixed amount, accumulating description
// text across the window. Covers app exports that break one logical record
// over several short lines.
func parseCurrencySuffixWindow(lines []string, _ string, cfg *Config) []candidate {
	amountRe := currencyCodeSuffixRe(cfg)

	var out []candidate
	for i := 0; i < len(lines); i++ {
		dates := findDates(lines[i], cfg)
		if len(dates) == 0 {
			continue
		}
		dh := dates[0]

		descParts := []string{strings.TrimSpace(lines[i][dh.end:])}
		for j := i; j < len(lines) && j <= i+3; j++ {
			search := lines[j]
			if j == i {
				search = lines[j][dh.end:]
			}

			loc := amountRe.FindStringSubmatchIndex(search)
			if loc == nil {
				if j > i {
					descParts = append(descParts, strings.TrimSpace(lines[j]))
				}
				continue
			}

			value, ok := normalizeAmount(search[loc[0]:loc[1]], cfg)
			if !ok {
				break
			}
			if j > i {
				// Description accumulated so far plus the text preceding the
				// amount on the matching line.
				descParts = append(descParts, strings.TrimSpace(search[:loc[0]]))
			} else {
				descParts[0] = strings.TrimSpace(search[:loc[0]])
			}
			desc := cleanDescription(strings.Join(descParts, " "))
			out = append(out, candidate{date: dh.date, description: desc, amount: value})
			i = j // resume after the consumed window
			break
		}
	}
	return out
}
