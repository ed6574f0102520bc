// Package normalizer maps extracted provider labels onto clean brand names.
// Exact brand patterns are tried first, then a fuzzy ranking catches labels
// mangled by statement truncation ("AMZN MKTP" -> "Amazon").
package normalizer

import (
	"regexp"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// BrandPattern matches a family of raw provider labels to one display name.
type BrandPattern struct {
	Pattern *regexp.Regexp
	Name    string
}

// ProviderSanitizer canonicalizes provider labels produced by the extraction
// engine.
type ProviderSanitizer struct {
	patterns   []BrandPattern
	brandNames []string
	// folded holds brandNames lowercased, index-aligned, so the fuzzy rank
	// measures real edits instead of case differences.
	folded []string
}

// NewProviderSanitizer returns a sanitizer seeded with common international
// brands.
func NewProviderSanitizer() *ProviderSanitizer {
	patterns := defaultBrandPatterns()
	names := make([]string, 0, len(patterns))
	seen := make(map[string]bool, len(patterns))
	for _, p := range patterns {
		if !seen[p.Name] {
			seen[p.Name] = true
			names = append(names, p.Name)
		}
	}
	return &ProviderSanitizer{patterns: patterns, brandNames: names, folded: foldAll(names)}
}

func foldAll(names []string) []string {
	folded := make([]string, len(names))
	for i, name := range names {
		folded[i] = strings.ToLower(name)
	}
	return folded
}

// fuzzyThreshold is the max Levenshtein distance accepted when falling back
// to fuzzy brand ranking.
const fuzzyThreshold = 2

// Sanitize returns the canonical brand name for a provider label, or a
// title-cased rendering of the label when no brand is recognized.
func (s *ProviderSanitizer) Sanitize(provider string) string {
	label := strings.TrimSpace(provider)
	if label == "" {
		return provider
	}

	upper := strings.ToUpper(label)
	for _, p := range s.patterns {
		if p.Pattern.MatchString(upper) {
			return p.Name
		}
	}

	// Fuzzy fallback for truncated or vowel-dropped labels. Both sides are
	// lowercased before ranking: the Levenshtein distance is case sensitive
	// and would otherwise count every capitalization difference as an edit.
	ranks := fuzzy.RankFindNormalizedFold(strings.ToLower(label), s.folded)
	best := -1
	for i, r := range ranks {
		if r.Distance <= fuzzyThreshold && (best < 0 || r.Distance < ranks[best].Distance) {
			best = i
		}
	}
	if best >= 0 {
		return s.brandNames[ranks[best].OriginalIndex]
	}

	return titleCase(label)
}

// AddPattern registers a custom brand pattern, tried after the defaults.
func (s *ProviderSanitizer) AddPattern(pattern, name string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return err
	}
	s.patterns = append(s.patterns, BrandPattern{Pattern: re, Name: name})
	s.brandNames = append(s.brandNames, name)
	s.folded = append(s.folded, strings.ToLower(name))
	return nil
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}
	return strings.Join(words, " ")
}

func defaultBrandPatterns() []BrandPattern {
	return []BrandPattern{
		{regexp.MustCompile(`AMAZON|AMZN`), "Amazon"},
		{regexp.MustCompile(`PAYPAL|PP\s*\*`), "PayPal"},
		{regexp.MustCompile(`NETFLIX`), "Netflix"},
		{regexp.MustCompile(`SPOTIFY`), "Spotify"},
		{regexp.MustCompile(`APPLE\.COM|APPLE\s`), "Apple"},
		{regexp.MustCompile(`GOOGLE`), "Google"},
		{regexp.MustCompile(`UBER\s*EATS`), "Uber Eats"},
		{regexp.MustCompile(`\bUBER\b`), "Uber"},
		{regexp.MustCompile(`\bBOLT\b`), "Bolt"},
		{regexp.MustCompile(`AIRBNB`), "Airbnb"},
		{regexp.MustCompile(`STARBUCKS`), "Starbucks"},
		{regexp.MustCompile(`MC\s*DONALD`), "McDonald's"},
		{regexp.MustCompile(`WALMART|WAL-MART`), "Walmart"},
		{regexp.MustCompile(`TESCO`), "Tesco"},
		{regexp.MustCompile(`LIDL`), "Lidl"},
		{regexp.MustCompile(`ALDI`), "Aldi"},
		{regexp.MustCompile(`IKEA`), "IKEA"},
		{regexp.MustCompile(`REVOLUT`), "Revolut"},
		{regexp.MustCompile(`RYANAIR`), "Ryanair"},
		{regexp.MustCompile(`VODAFONE`), "Vodafone"},
	}
}
