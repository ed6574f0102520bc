package parser

import (
	"regexp"
	"strings"
)

// Leading boilerplate verbs that bank systems prepend to descriptions.
var leadingVerbs = map[string]bool{
	"PURCHASE": true, "PAYMENT": true, "TRANSFER": true, "DEPOSIT": true,
	"WITHDRAWAL": true, "DEBIT": true, "CREDIT": true, "POS": true,
	"ATM": true, "ONLINE": true, "CARD": true,
}

// Trailing legal-entity suffixes stripped from provider labels.
var legalSuffixes = map[string]bool{
	"LLC": true, "INC": true, "CORP": true, "LTD": true, "CO": true,
	"PLC": true, "GMBH": true, "LIMITED": true, "COMPANY": true,
}

var (
	trailingRefRe      = regexp.MustCompile(`#\d+\s*$`)
	trailingDigitsRe   = regexp.MustCompile(`\d{4,}\s*$`)
	trailingStarsRe    = regexp.MustCompile(`\*+[A-Za-z0-9]*\s*$`)
	trailingDateRe     = regexp.MustCompile(`\d{1,2}/\d{1,2}\s*$`)
	trailingRefMarkRe  = regexp.MustCompile(`(?i)\b(?:REF|AUTH):.*$`)
	providerCharsetRe  = regexp.MustCompile(`[^A-Za-z0-9 &'\-.]`)
	collapseSpacesRe   = regexp.MustCompile(`\s+`)
)

// ExtractProvider reduces a raw transaction description to a short
// human-readable counterparty label by stripping boilerplate verbs, reference
// numbers and legal-entity suffixes. Falls back to the description's first
// token, or "Unknown" when nothing survives.
func ExtractProvider(description string) string {
	s := strings.TrimSpace(description)
	if s == "" {
		return "Unknown"
	}

	s = stripLeadingVerb(s)
	s = stripTrailingNoise(s)

	words := strings.Fields(s)
	switch {
	case len(words) > 4:
		words = words[:3]
	case len(words) > 2:
		words = words[:2]
	}
	s = strings.Join(words, " ")

	s = stripLegalSuffix(s)

	s = providerCharsetRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(collapseSpacesRe.ReplaceAllString(s, " "))

	if s == "" {
		if first := strings.Fields(description); len(first) > 0 {
			return first[0]
		}
		return "Unknown"
	}
	return s
}

func stripLeadingVerb(s string) string {
	fields := strings.Fields(s)
	if len(fields) > 1 && leadingVerbs[strings.ToUpper(fields[0])] {
		return strings.Join(fields[1:], " ")
	}
	return s
}

// stripTrailingNoise repeatedly removes reference numbers, card masks and
// MM/DD suffixes until the tail is clean.
func stripTrailingNoise(s string) string {
	patterns := []*regexp.Regexp{
		trailingRefMarkRe,
		trailingRefRe,
		trailingStarsRe,
		trailingDateRe,
		trailingDigitsRe,
	}
	for {
		before := s
		for _, re := range patterns {
			s = strings.TrimSpace(re.ReplaceAllString(s, ""))
		}
		if s == before {
			return s
		}
	}
}

func stripLegalSuffix(s string) string {
	fields := strings.Fields(s)
	if len(fields) < 2 {
		return s
	}
	last := strings.ToUpper(strings.Trim(fields[len(fields)-1], "."))
	if legalSuffixes[last] {
		return strings.Join(fields[:len(fields)-1], " ")
	}
	return s
}
