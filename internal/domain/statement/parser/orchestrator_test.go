package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_Parse(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("single line statement", func(t *testing.T) {
		txs := engine.Parse("2024-03-15 Grocery Store -45.67")
		require.Len(t, txs, 1)
		assert.Equal(t, "2024-03-15", txs[0].Date)
		assert.Equal(t, "Grocery Store", txs[0].Description)
		assert.Equal(t, "Grocery Store", txs[0].Provider)
		assert.InDelta(t, -45.67, txs[0].Amount, 0.001)
	})

	t.Run("income keyword overrides sign", func(t *testing.T) {
		txs := engine.Parse("15 Mar 2024  Salary Payment  2,500.00 USD")
		require.Len(t, txs, 1)
		assert.InDelta(t, 2500.00, txs[0].Amount, 0.001)
	})

	t.Run("empty input yields empty result", func(t *testing.T) {
		assert.Empty(t, engine.Parse(""))
	})

	t.Run("prose without transactions yields empty result", func(t *testing.T) {
		txs, strategy := engine.ParseWithStrategy("Dear customer, thank you for banking with us.")
		assert.Empty(t, txs)
		assert.Empty(t, strategy)
	})

	t.Run("header lines are rejected", func(t *testing.T) {
		text := "2024-01-01 Opening Balance 1,000.00\n2024-01-02 Coffee Shop -4.50"
		txs := engine.Parse(text)
		require.Len(t, txs, 1)
		assert.Equal(t, "Coffee Shop", txs[0].Description)
	})

	t.Run("duplicate lines collapse to one transaction", func(t *testing.T) {
		text := "2024-03-15 Coffee Shop -4.50\n2024-03-15 Coffee Shop -4.50"
		txs := engine.Parse(text)
		assert.Len(t, txs, 1)
	})

	t.Run("multiline app export", func(t *testing.T) {
		text := "2024-05-01\nTesco Groceries\n-23.45 EUR"
		txs, strategy := engine.ParseWithStrategy(text)
		require.Len(t, txs, 1)
		assert.Equal(t, "currency-suffix-window", strategy)
		assert.Equal(t, "Tesco Groceries", txs[0].Description)
		assert.InDelta(t, -23.45, txs[0].Amount, 0.001)
	})

	t.Run("month-first date falls back to day-first", func(t *testing.T) {
		txs := engine.Parse("25/12/2024 Christmas Market 30.00 EUR")
		require.Len(t, txs, 1)
		assert.Equal(t, "2024-12-25", txs[0].Date)
	})
}

func TestEngine_ShortCircuit(t *testing.T) {
	var calls []string

	counting := func(name string, out []candidate) Strategy {
		return Strategy{
			Name: name,
			Parse: func(_ []string, _ string, _ *Config) []candidate {
				calls = append(calls, name)
				return out
			},
		}
	}

	winner := []candidate{{date: "2024-03-15", description: "Test Merchant", amount: -10}}
	engine := NewEngine(nil, WithStrategies([]Strategy{
		counting("empty", nil),
		counting("winner", winner),
		counting("never-reached", winner),
	}))

	txs, strategy := engine.ParseWithStrategy("irrelevant")
	require.Len(t, txs, 1)
	assert.Equal(t, "winner", strategy)
	assert.Equal(t, []string{"empty", "winner"}, calls)
}

func TestEngine_PanickingStrategyIsSkipped(t *testing.T) {
	engine := NewEngine(nil, WithStrategies([]Strategy{
		{Name: "broken", Parse: func(_ []string, _ string, _ *Config) []candidate {
			panic("boom")
		}},
		{Name: "fallback", Parse: func(_ []string, _ string, _ *Config) []candidate {
			return []candidate{{date: "2024-03-15", description: "Test Merchant", amount: -10}}
		}},
	}))

	txs, strategy := engine.ParseWithStrategy("irrelevant")
	require.Len(t, txs, 1)
	assert.Equal(t, "fallback", strategy)
}

func TestEngine_Filter(t *testing.T) {
	engine := NewEngine(nil)

	t.Run("invalid date rejected", func(t *testing.T) {
		out := engine.filter([]candidate{{date: "2024-02-30", description: "Coffee Shop", amount: -4.5}})
		assert.Empty(t, out)
	})

	t.Run("description length bounds", func(t *testing.T) {
		out := engine.filter([]candidate{
			{date: "2024-03-15", description: "AB", amount: -4.5},
			{date: "2024-03-15", description: "Coffee Shop", amount: -4.5},
		})
		require.Len(t, out, 1)
		assert.Equal(t, "Coffee Shop", out[0].Description)
	})

	t.Run("lenient mode keeps balance-adjacent descriptions", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.StrictFiltering = false
		lenient := NewEngine(cfg)

		out := lenient.filter([]candidate{
			{date: "2024-03-15", description: "Available Balance Top Up", amount: 50},
			{date: "2024-03-15", description: "Opening Balance", amount: 1000},
		})
		require.Len(t, out, 1)
		assert.Equal(t, "Available Balance Top Up", out[0].Description)
	})
}

func TestDedupe(t *testing.T) {
	t.Run("shorter description wins a collision", func(t *testing.T) {
		// Both descriptions share the same first 20 alphanumeric characters
		// ("internationalpayment"), so they collide on the dedup key.
		txs := []Transaction{
			{Date: "2024-03-15", Description: "International Payment Services Ltd", Amount: -4.5},
			{Date: "2024-03-15", Description: "International Payment Services", Amount: -4.5},
		}
		out := dedupe(txs)
		require.Len(t, out, 1)
		assert.Equal(t, "International Payment Services", out[0].Description)
	})

	t.Run("differing key prefixes stay separate", func(t *testing.T) {
		txs := []Transaction{
			{Date: "2024-03-15", Description: "Coffee Shop Downtown Branch", Amount: -4.5},
			{Date: "2024-03-15", Description: "Coffee Shop Downtown", Amount: -4.5},
		}
		assert.Len(t, dedupe(txs), 2)
	})

	t.Run("sign is ignored in the key", func(t *testing.T) {
		txs := []Transaction{
			{Date: "2024-03-15", Description: "Coffee Shop", Amount: -4.5},
			{Date: "2024-03-15", Description: "Coffee Shop", Amount: 4.5},
		}
		assert.Len(t, dedupe(txs), 1)
	})

	t.Run("different dates stay separate", func(t *testing.T) {
		txs := []Transaction{
			{Date: "2024-03-15", Description: "Coffee Shop", Amount: -4.5},
			{Date: "2024-03-16", Description: "Coffee Shop", Amount: -4.5},
		}
		assert.Len(t, dedupe(txs), 2)
	})

	t.Run("idempotent", func(t *testing.T) {
		txs := []Transaction{
			{Date: "2024-03-15", Description: "Coffee Shop", Amount: -4.5},
			{Date: "2024-03-16", Description: "Lunch Place", Amount: -12},
		}
		once := dedupe(txs)
		twice := dedupe(once)
		assert.Equal(t, once, twice)
	})
}
