package parser

import (
	"regexp"
	"strings"
)

// fixedLineStrategy builds a strategy around one specific date notation. The
// date is located on a line, then the remainder of the line (and, when window
// is positive, up to window following lines) is searched for an amount. The
// interval between date and amount becomes the description.
func fixedLineStrategy(order DateOrder, dateRe *regexp.Regexp, window int) func([]string, string, *Config) []candidate {
	return func(lines []string, _ string, cfg *Config) []candidate {
		amountRe := buildAmountRegexp(cfg)

		var out []candidate
		for i := 0; i < len(lines); i++ {
			dh, ok := findFirstDate(lines[i], dateRe, order, cfg)
			if !ok {
				continue
			}

			rest := lines[i][dh.end:]
			if c, ok := candidateFromSpan(dh.date, rest, amountRe, cfg); ok {
				out = append(out, c)
				continue
			}

			if window == 0 {
				continue
			}
			descParts := []string{strings.TrimSpace(rest)}
			for j := i + 1; j < len(lines) && j <= i+window; j++ {
				hits := findAmounts(lines[j], amountRe, cfg, false)
				if len(hits) == 0 {
					descParts = append(descParts, strings.TrimSpace(lines[j]))
					continue
				}
				last := hits[len(hits)-1]
				descParts = append(descParts, strings.TrimSpace(lines[j][:last.start]))
				out = append(out, candidate{
					date:        dh.date,
					description: cleanDescription(strings.Join(descParts, " ")),
					amount:      last.value,
				})
				i = j
				break
			}
		}
		return out
	}
}

// candidateFromSpan extracts a single candidate from the text following a
// date on the same line, taking the last amount on the line as the value and
// the interval before it as the description.
func candidateFromSpan(date, span string, amountRe *regexp.Regexp, cfg *Config) (candidate, bool) {
	hits := findAmounts(span, amountRe, cfg, false)
	if len(hits) == 0 {
		return candidate{}, false
	}
	last := hits[len(hits)-1]
	return candidate{
		date:        date,
		description: cleanDescription(span[:last.start]),
		amount:      last.value,
	}, true
}

var columnSplitRe = regexp.MustCompile(`\t|\s{2,}`)

// parseTabularColumns handles statements rendered as fixed-width tables:
// columns separated by runs of two or more spaces or tabs. The date and
// amount are located by column content, not position, so reordered layouts
// still parse.
func parseTabularColumns(lines []string, _ string, cfg *Config) []candidate {
	amountRe := buildAmountRegexp(cfg)

	var out []candidate
	for _, line := range lines {
		cells := splitNonEmpty(columnSplitRe.Split(line, -1))
		if len(cells) < 3 {
			continue
		}

		dateIdx := -1
		var date string
		for idx, cell := range cells {
			if hits := findDates(cell, cfg); len(hits) > 0 {
				dateIdx, date = idx, hits[0].date
				break
			}
		}
		if dateIdx < 0 {
			continue
		}

		// Amount: the last cell (other than the date) that parses cleanly.
		amountIdx := -1
		var amount float64
		for idx := len(cells) - 1; idx >= 0; idx-- {
			if idx == dateIdx {
				continue
			}
			if hits := findAmounts(cells[idx], amountRe, cfg, true); len(hits) == 1 && hits[0].start == 0 && hits[0].end == len(cells[idx]) {
				amountIdx, amount = idx, hits[0].value
				break
			}
		}
		if amountIdx < 0 {
			continue
		}

		descCells := make([]string, 0, len(cells)-2)
		for idx, cell := range cells {
			if idx == dateIdx || idx == amountIdx {
				continue
			}
			descCells = append(descCells, cell)
		}
		out = append(out, candidate{
			date:        date,
			description: cleanDescription(strings.Join(descCells, " ")),
			amount:      amount,
		})
	}
	return out
}

var fieldDelimiters = []string{";", "|", "\t", ","}

// parseDelimitedFields handles CSV-like exports embedded in the text: lines
// consistently split by comma, semicolon, pipe or tab into at least three
// fields.
func parseDelimitedFields(lines []string, _ string, cfg *Config) []candidate {
	var out []candidate
	for _, line := range lines {
		delim := dominantDelimiter(line)
		if delim == "" {
			continue
		}
		fields := splitNonEmpty(strings.Split(line, delim))
		if len(fields) < 3 {
			continue
		}

		dateIdx := -1
		var date string
		for idx, field := range fields {
			if hits := findDates(field, cfg); len(hits) > 0 {
				dateIdx, date = idx, hits[0].date
				break
			}
		}
		if dateIdx < 0 {
			continue
		}

		amountIdx := -1
		var amount float64
		for idx := len(fields) - 1; idx >= 0; idx-- {
			if idx == dateIdx {
				continue
			}
			if value, ok := normalizeAmount(fields[idx], cfg); ok && hasDigit(fields[idx]) {
				amountIdx, amount = idx, value
				break
			}
		}
		if amountIdx < 0 {
			continue
		}

		descFields := make([]string, 0, len(fields)-2)
		for idx, field := range fields {
			if idx == dateIdx || idx == amountIdx {
				continue
			}
			descFields = append(descFields, field)
		}
		out = append(out, candidate{
			date:        date,
			description: cleanDescription(strings.Join(descFields, " ")),
			amount:      amount,
		})
	}
	return out
}

// dominantDelimiter picks the delimiter occurring most often on the line, at
// least twice (two delimiters = three fields). Two-field lines are rejected
// here on purpose: the strategy needs date, description and amount, so the
// len(fields) < 3 check downstream would drop them anyway. Comma is checked
// last so decimal commas inside amounts do not win over a structural
// semicolon.
func dominantDelimiter(line string) string {
	best := ""
	bestCount := 1
	for _, d := range fieldDelimiters {
		if count := strings.Count(line, d); count > bestCount {
			best, bestCount = d, count
		}
	}
	return best
}

// parseEuropeanDotDate assumes the common continental notation: dotted
// day-first dates with comma-decimal amounts (15.03.2024 ... 1.234,56).
func parseEuropeanDotDate(lines []string, _ string, cfg *Config) []candidate {
	euCfg := *cfg
	euCfg.DecimalSeparator = ','

	amountRe := buildAmountRegexp(&euCfg)

	var out []candidate
	for _, line := range lines {
		dh, ok := findFirstDate(line, dotDateRe, OrderDMY, &euCfg)
		if !ok {
			continue
		}
		if c, ok := candidateFromSpan(dh.date, line[dh.end:], amountRe, &euCfg); ok {
			out = append(out, c)
		}
	}
	return out
}

func splitNonEmpty(parts []string) []string {
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasDigit(s string) bool {
	for _, r := range s {
		if r >= '0' && r <= '9' {
			return true
		}
	}
	return false
}
