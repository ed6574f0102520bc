package parser

import (
	"log/slog"
	"math"
	"strings"

	"github.com/cloudflare/ahocorasick"
	"github.com/shopspring/decimal"
)

// MetricsRecorder receives parse telemetry. Implementations must be safe for
// concurrent use; the engine itself is stateless across Parse calls.
type MetricsRecorder interface {
	StrategyAttempt(strategy string)
	StrategyWin(strategy string, accepted int)
}

// Engine runs the strategy set against statement text and returns the first
// strategy's filtered, deduplicated output. A fresh Parse call shares no
// state with any other: the engine is safe for concurrent use.
type Engine struct {
	cfg        *Config
	strategies []Strategy
	sign       *signClassifier
	headers    *ahocorasick.Matcher
	obvious    *ahocorasick.Matcher
	logger     *slog.Logger
	metrics    MetricsRecorder
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for diagnostic traces.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

// WithMetrics sets the telemetry sink for strategy attempts and wins.
func WithMetrics(m MetricsRecorder) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithStrategies replaces the default strategy set. Used by tests to
// instrument call counts; production callers should rarely need it.
func WithStrategies(strategies []Strategy) Option {
	return func(e *Engine) { e.strategies = strategies }
}

// NewEngine builds an engine for the given configuration. A nil config uses
// DefaultConfig.
func NewEngine(cfg *Config, opts ...Option) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e := &Engine{
		cfg:        cfg,
		strategies: defaultStrategies(),
		sign:       newSignClassifier(cfg),
		headers:    buildKeywordMatcher(cfg.HeaderKeywords),
		obvious:    buildKeywordMatcher(obviousHeaderKeywords),
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Parse extracts transactions from statement text. Strategies run in priority
// order; the first whose filtered output is non-empty wins and later
// strategies are never invoked. An empty result is a valid outcome, not an
// error.
func (e *Engine) Parse(text string) []Transaction {
	txs, _ := e.ParseWithStrategy(text)
	return txs
}

// ParseWithStrategy is Parse plus the name of the winning strategy, for
// diagnostics. The name is empty when no strategy produced output.
func (e *Engine) ParseWithStrategy(text string) ([]Transaction, string) {
	lines := splitLines(text)

	for _, strategy := range e.strategies {
		if e.metrics != nil {
			e.metrics.StrategyAttempt(strategy.Name)
		}

		raw := e.runStrategy(strategy, lines, text)
		if len(raw) == 0 {
			e.logger.Debug("strategy produced no candidates", "strategy", strategy.Name)
			continue
		}

		accepted := e.filter(raw)
		if len(accepted) == 0 {
			e.logger.Debug("strategy candidates all filtered out",
				"strategy", strategy.Name, "raw", len(raw))
			continue
		}

		final := dedupe(accepted)
		e.logger.Debug("strategy accepted",
			"strategy", strategy.Name, "raw", len(raw), "final", len(final))
		if e.metrics != nil {
			e.metrics.StrategyWin(strategy.Name, len(final))
		}
		return final, strategy.Name
	}

	return nil, ""
}

// runStrategy executes one strategy, converting a panic into an empty result:
// a broken strategy is skipped, never fatal.
func (e *Engine) runStrategy(s Strategy, lines []string, text string) (out []candidate) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Debug("strategy panicked; skipping", "strategy", s.Name, "panic", r)
			out = nil
		}
	}()
	return s.Parse(lines, text, e.cfg)
}

// filter applies sign classification and provider extraction, then rejects
// candidates with invalid dates, out-of-bounds descriptions or header text.
func (e *Engine) filter(raw []candidate) []Transaction {
	out := make([]Transaction, 0, len(raw))
	for _, c := range raw {
		if !validISODate(c.date) {
			continue
		}
		if math.IsNaN(c.amount) {
			continue
		}

		desc := strings.TrimSpace(c.description)
		if len(desc) < e.cfg.MinDescriptionLength || len(desc) > e.cfg.MaxDescriptionLength {
			continue
		}
		if e.isHeaderText(desc) {
			continue
		}

		out = append(out, Transaction{
			Date:        c.date,
			Description: desc,
			Provider:    ExtractProvider(desc),
			Amount:      e.sign.Apply(c.amount, desc),
		})
	}
	return out
}

// isHeaderText rejects boilerplate mistaken for a transaction. Strict
// filtering uses the full configured keyword list; lenient filtering only the
// small fixed set of obvious header substrings.
func (e *Engine) isHeaderText(description string) bool {
	lower := strings.ToLower(description)
	if e.cfg.StrictFiltering {
		return matcherHits(e.headers, lower)
	}
	return matcherHits(e.obvious, lower)
}

// dedupe collapses candidates that describe the same transaction. Colliding
// keys keep whichever candidate has the shorter description, treated as the
// cleaner rendering. The operation is idempotent.
func dedupe(txs []Transaction) []Transaction {
	index := make(map[string]int, len(txs))
	out := make([]Transaction, 0, len(txs))

	for _, tx := range txs {
		key := dedupeKey(tx)
		if at, ok := index[key]; ok {
			if len(tx.Description) < len(out[at].Description) {
				out[at] = tx
			}
			continue
		}
		index[key] = len(out)
		out = append(out, tx)
	}
	return out
}

// dedupeKey is date + absolute amount at two decimals + the first 20
// alphanumeric characters of the lowercased description.
func dedupeKey(tx Transaction) string {
	amount := decimal.NewFromFloat(tx.Amount).Abs().StringFixed(2)

	var b strings.Builder
	for _, r := range strings.ToLower(tx.Description) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= 20 {
				break
			}
		}
	}
	return tx.Date + "-" + amount + "-" + b.String()
}
