package observability

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestParserMetrics(t *testing.T) {
	m := NewParserMetrics(prometheus.NewRegistry())

	m.StrategyAttempt("iso-line")
	m.StrategyAttempt("iso-line")
	m.StrategyWin("iso-line", 3)
	m.Outcome(OutcomeParsed)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.strategyAttempts.WithLabelValues("iso-line")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.strategyWins.WithLabelValues("iso-line")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.transactions))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.outcomes.WithLabelValues(OutcomeParsed)))
}

func TestParserMetrics_SeparateRegistries(t *testing.T) {
	// Two instances on private registries must not collide.
	a := NewParserMetrics(prometheus.NewRegistry())
	b := NewParserMetrics(prometheus.NewRegistry())

	a.StrategyAttempt("iso-line")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.strategyAttempts.WithLabelValues("iso-line")))
}
