// Package parser extracts discrete financial transactions from the raw text of
// bank and card-provider statements. It has no prior knowledge of the statement
// layout: an ordered set of heuristic strategies is tried until one produces a
// non-empty set of valid transactions.
package parser

import (
	"regexp"
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
)

// DateOrder identifies the component order a date pattern captures.
// Strategies switch on this tag to normalize a match, never on the
// pattern's source text.
type DateOrder int

const (
	// OrderYMD captures (year, month, day), e.g. 2024-03-15.
	OrderYMD DateOrder = iota
	// OrderMDY captures (month, day, year), e.g. 03/15/2024. Falls back to
	// day-first when the month-first reading is not a real calendar date.
	OrderMDY
	// OrderDMY captures (day, month, year), e.g. 15.03.2024.
	OrderDMY
	// OrderDMonY captures (day, month name, year), e.g. 15 Mar 2024.
	OrderDMonY
	// OrderMonDY captures (month name, day, year), e.g. Mar 15, 2024.
	OrderMonDY
)

// DatePattern pairs a compiled regexp with the component order of its three
// capture groups.
type DatePattern struct {
	Regexp *regexp.Regexp
	Order  DateOrder
}

// Config controls every heuristic the engine applies. All vocabulary lists are
// plain data passed explicitly into the components so tests can substitute
// alternate vocabularies; nothing here is hidden module state.
type Config struct {
	// DatePatterns are tried in order by every strategy. List order carries no
	// priority: a strategy collects matches from all of them.
	DatePatterns []DatePattern

	// MonthNames maps a lowercased month name or three-letter abbreviation to
	// its two-digit month number ("jan" -> "01").
	MonthNames map[string]string

	// CurrencyTokens are symbols and ISO codes stripped from amount substrings.
	// Ordering matters: most specific (longest) first, so "R$" wins over "$".
	CurrencyTokens []string

	// DecimalSeparator selects the decimal convention: '.' (US), ',' (EU) or 0
	// to auto-detect per value.
	DecimalSeparator rune
	// ThousandsSeparator is stripped before parsing when DecimalSeparator is
	// set explicitly. Ignored in auto-detect mode.
	ThousandsSeparator rune

	// StrictFiltering rejects any candidate whose description contains one of
	// HeaderKeywords. When false only a small fixed set of obvious header
	// substrings is rejected.
	StrictFiltering bool

	// MinDescriptionLength and MaxDescriptionLength bound accepted
	// descriptions after trimming.
	MinDescriptionLength int
	MaxDescriptionLength int

	// HeaderKeywords are lowercased substrings that mark header or boilerplate
	// lines under strict filtering.
	HeaderKeywords []string

	// IncomeKeywords force a positive sign when found in a description.
	// Checked before ExpenseKeywords; the precedence is deliberate.
	IncomeKeywords []string
	// ExpenseKeywords force a negative sign when found in a description.
	ExpenseKeywords []string

	// MinConfidence is advisory and reserved for future candidate ranking.
	MinConfidence float64
}

// currencyCodes seeds the default token table. Symbols are resolved through
// go-money's ISO-4217 data so they stay consistent with the rest of the app.
var currencyCodes = []string{
	"USD", "EUR", "GBP", "BRL", "JPY", "CHF", "CAD", "AUD", "CNY", "MXN",
	"INR", "PLN", "SEK", "NOK", "DKK", "CZK", "RON", "HUF", "TRY", "ZAR",
}

// DefaultConfig returns the configuration the engine ships with. Callers may
// override any subset before constructing an Engine.
func DefaultConfig() *Config {
	return &Config{
		DatePatterns:         defaultDatePatterns(),
		MonthNames:           defaultMonthNames(),
		CurrencyTokens:       defaultCurrencyTokens(),
		DecimalSeparator:     0, // auto-detect
		ThousandsSeparator:   0,
		StrictFiltering:      true,
		MinDescriptionLength: 3,
		MaxDescriptionLength: 120,
		HeaderKeywords:       defaultHeaderKeywords(),
		IncomeKeywords:       defaultIncomeKeywords(),
		ExpenseKeywords:      defaultExpenseKeywords(),
		MinConfidence:        0.0,
	}
}

func defaultDatePatterns() []DatePattern {
	return []DatePattern{
		{Regexp: regexp.MustCompile(`\b(\d{4})-(\d{1,2})-(\d{1,2})\b`), Order: OrderYMD},
		{Regexp: regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`), Order: OrderMDY},
		{Regexp: regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{2,4})\b`), Order: OrderDMY},
		{Regexp: regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})-(\d{4})\b`), Order: OrderDMY},
		{Regexp: regexp.MustCompile(`\b(\d{1,2})\s+([A-Za-z]{3,9})\.?\s+(\d{2,4})\b`), Order: OrderDMonY},
		{Regexp: regexp.MustCompile(`\b([A-Za-z]{3,9})\.?\s+(\d{1,2}),?\s+(\d{2,4})\b`), Order: OrderMonDY},
	}
}

func defaultMonthNames() map[string]string {
	return map[string]string{
		"jan": "01", "feb": "02", "mar": "03", "apr": "04",
		"may": "05", "jun": "06", "jul": "07", "aug": "08",
		"sep": "09", "oct": "10", "nov": "11", "dec": "12",
		"january": "01", "february": "02", "march": "03", "april": "04",
		"june": "06", "july": "07", "august": "08", "september": "09",
		"october": "10", "november": "11", "december": "12",
	}
}

// defaultCurrencyTokens builds the strip list from go-money currency data:
// ISO codes plus their symbols, ordered longest first so multi-character
// symbols are never split by a shorter match.
func defaultCurrencyTokens() []string {
	seen := make(map[string]bool)
	tokens := make([]string, 0, len(currencyCodes)*2)

	add := func(tok string) {
		tok = strings.TrimSpace(tok)
		if tok == "" || seen[tok] {
			return
		}
		seen[tok] = true
		tokens = append(tokens, tok)
	}

	for _, code := range currencyCodes {
		add(code)
		if c := money.GetCurrency(code); c != nil {
			add(c.Grapheme)
		}
	}

	// Longest first; ties keep code-before-symbol insertion order.
	sort.SliceStable(tokens, func(i, j int) bool {
		return len(tokens[i]) > len(tokens[j])
	})
	return tokens
}

func defaultHeaderKeywords() []string {
	return []string{
		"statement period", "account number", "account summary", "sort code",
		"opening balance", "closing balance", "balance brought forward",
		"balance carried forward", "available balance", "total for period",
		"page ", "iban", "bic", "customer service", "interest rate",
		"transaction date", "posting date", "date description",
	}
}

func defaultIncomeKeywords() []string {
	return []string{
		"transfer from", "deposit", "received", "refund", "cashback",
		"salary", "credited", "top up", "interest paid", "reimbursement",
	}
}

func defaultExpenseKeywords() []string {
	return []string{
		"transfer to", "payment", "purchase", "withdrawal", "atm",
		"fee", "debit", "sent", "direct debit", "standing order",
	}
}

// obviousHeaderKeywords is the small fixed rejection set used under lenient
// filtering. Kept deliberately short: lenient mode exists for statements whose
// transaction descriptions legitimately contain words like "balance".
var obviousHeaderKeywords = []string{
	"statement period",
	"opening balance",
	"closing balance",
	"balance brought forward",
	"date description amount",
}
