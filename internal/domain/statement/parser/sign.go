package parser

import (
	"math"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// signClassifier decides whether an amount represents money entering or
// leaving the account from lexical cues in the description. Both keyword
// lists are matched in a single Aho-Corasick pass each; income indicators
// take precedence over expense indicators, exactly in that order.
type signClassifier struct {
	income  *ahocorasick.Matcher
	expense *ahocorasick.Matcher
}

func newSignClassifier(cfg *Config) *signClassifier {
	return &signClassifier{
		income:  buildKeywordMatcher(cfg.IncomeKeywords),
		expense: buildKeywordMatcher(cfg.ExpenseKeywords),
	}
}

// Apply returns the final signed amount for a description. When neither list
// matches, the advisory sign from amount normalization passes through
// unchanged.
func (c *signClassifier) Apply(amount float64, description string) float64 {
	desc := strings.ToLower(description)

	if matcherHits(c.income, desc) {
		return math.Abs(amount)
	}
	if matcherHits(c.expense, desc) {
		return -math.Abs(amount)
	}
	return amount
}

// buildKeywordMatcher compiles a lowercased keyword list into an Aho-Corasick
// matcher. Returns nil for an empty list.
func buildKeywordMatcher(keywords []string) *ahocorasick.Matcher {
	patterns := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			patterns = append(patterns, kw)
		}
	}
	if len(patterns) == 0 {
		return nil
	}
	return ahocorasick.NewStringMatcher(patterns)
}

func matcherHits(m *ahocorasick.Matcher, text string) bool {
	if m == nil {
		return false
	}
	return len(m.Match([]byte(text))) > 0
}
