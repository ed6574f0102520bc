package parser

// Transaction is one extracted statement entry. Date is always a calendar-valid
// ISO date and Amount is never NaN: candidates failing either check are dropped
// before they reach the caller.
type Transaction struct {
	Date        string  `json:"date"`        // canonical YYYY-MM-DD
	Description string  `json:"description"` // original matched span, trimmed
	Provider    string  `json:"provider"`    // short counterparty label
	Amount      float64 `json:"amount"`      // negative = expense, positive = income
}

// MonthYear returns the YYYY-MM grouping key for the transaction.
func (t Transaction) MonthYear() string {
	if len(t.Date) < 7 {
		return ""
	}
	return t.Date[:7]
}

// candidate is a raw strategy emission before sign classification, provider
// extraction and validity filtering.
type candidate struct {
	date        string
	description string
	amount      float64
}
