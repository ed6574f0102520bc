// Package observability exposes prometheus instrumentation for the statement
// extraction pipeline.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ParserMetrics counts strategy attempts, wins and overall parse outcomes.
// It satisfies the parser engine's MetricsRecorder interface.
type ParserMetrics struct {
	strategyAttempts *prometheus.CounterVec
	strategyWins     *prometheus.CounterVec
	transactions     prometheus.Counter
	outcomes         *prometheus.CounterVec
}

// Parse outcome labels.
const (
	OutcomeParsed           = "parsed"
	OutcomeEmpty            = "empty"
	OutcomeExtractionFailed = "extraction_failed"
)

// NewParserMetrics registers the parser collectors on reg. Pass
// prometheus.DefaultRegisterer for the process-wide registry, or a private
// registry in tests.
func NewParserMetrics(reg prometheus.Registerer) *ParserMetrics {
	m := &ParserMetrics{
		strategyAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_strategy_attempts_total",
			Help: "Parse strategy invocations, by strategy name.",
		}, []string{"strategy"}),
		strategyWins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_strategy_wins_total",
			Help: "Parse strategy commits, by strategy name.",
		}, []string{"strategy"}),
		transactions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "statement_transactions_extracted_total",
			Help: "Transactions extracted across all parses.",
		}),
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "statement_parse_outcomes_total",
			Help: "Parse requests by outcome.",
		}, []string{"outcome"}),
	}
	reg.MustRegister(m.strategyAttempts, m.strategyWins, m.transactions, m.outcomes)
	return m
}

// StrategyAttempt records one strategy invocation.
func (m *ParserMetrics) StrategyAttempt(strategy string) {
	m.strategyAttempts.WithLabelValues(strategy).Inc()
}

// StrategyWin records a strategy committing its output.
func (m *ParserMetrics) StrategyWin(strategy string, accepted int) {
	m.strategyWins.WithLabelValues(strategy).Inc()
	m.transactions.Add(float64(accepted))
}

// Outcome records the final disposition of one parse request.
func (m *ParserMetrics) Outcome(outcome string) {
	m.outcomes.WithLabelValues(outcome).Inc()
}
