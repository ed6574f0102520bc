package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignClassifier_Apply(t *testing.T) {
	c := newSignClassifier(DefaultConfig())

	t.Run("income keyword forces positive", func(t *testing.T) {
		assert.Equal(t, 500.0, c.Apply(-500, "Monthly Salary"))
		assert.Equal(t, 25.0, c.Apply(25, "Refund from store"))
	})

	t.Run("expense keyword forces negative", func(t *testing.T) {
		assert.Equal(t, -45.67, c.Apply(45.67, "ATM Withdrawal"))
		assert.Equal(t, -9.99, c.Apply(-9.99, "Direct Debit Energy Co"))
	})

	t.Run("income wins over expense", func(t *testing.T) {
		// "Salary Payment" contains both an income and an expense cue; income
		// is checked first.
		assert.Equal(t, 2500.0, c.Apply(-2500, "Salary Payment"))
	})

	t.Run("no cue passes the advisory sign through", func(t *testing.T) {
		assert.Equal(t, 12.34, c.Apply(12.34, "Grocery Store"))
		assert.Equal(t, -12.34, c.Apply(-12.34, "Grocery Store"))
	})

	t.Run("matching is case insensitive", func(t *testing.T) {
		assert.Equal(t, 100.0, c.Apply(-100, "CASHBACK REWARD"))
	})
}

func TestSignClassifier_EmptyKeywordLists(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IncomeKeywords = nil
	cfg.ExpenseKeywords = nil
	c := newSignClassifier(cfg)

	// With no vocabulary every amount passes through untouched.
	assert.Equal(t, -42.0, c.Apply(-42, "Salary Payment"))
	assert.Equal(t, 42.0, c.Apply(42, "ATM Withdrawal"))
}
