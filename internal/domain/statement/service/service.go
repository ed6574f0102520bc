// Package service orchestrates statement parsing: PDF text extraction, the
// strategy engine, and provider canonicalization.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/FACorreiaa/statement-engine/internal/domain/statement/extractor"
	"github.com/FACorreiaa/statement-engine/internal/domain/statement/normalizer"
	"github.com/FACorreiaa/statement-engine/internal/domain/statement/parser"
)

// ErrExtraction wraps any failure to turn PDF bytes into text. It is the only
// hard failure this service surfaces: a parse that finds nothing returns an
// empty result, never an error.
var ErrExtraction = errors.New("statement text extraction failed")

// TextExtractor converts PDF bytes into plain text.
type TextExtractor func(data []byte) (string, error)

// OutcomeRecorder receives the final disposition of each parse request.
type OutcomeRecorder interface {
	Outcome(outcome string)
}

// Outcome labels reported to the OutcomeRecorder.
const (
	outcomeParsed           = "parsed"
	outcomeEmpty            = "empty"
	outcomeExtractionFailed = "extraction_failed"
)

// Result is the outcome of one parse request.
type Result struct {
	JobID        uuid.UUID
	Transactions []parser.Transaction
	Strategy     string // winning strategy name, empty when nothing parsed
}

// Service is the single entry point callers use to parse statements.
type Service struct {
	engine    *parser.Engine
	sanitizer *normalizer.ProviderSanitizer
	extract   TextExtractor
	outcomes  OutcomeRecorder
	logger    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithTextExtractor overrides the PDF text extractor. Tests inject fakes
// through this.
func WithTextExtractor(fn TextExtractor) Option {
	return func(s *Service) { s.extract = fn }
}

// WithSanitizer enables provider canonicalization on parsed transactions.
func WithSanitizer(sanitizer *normalizer.ProviderSanitizer) Option {
	return func(s *Service) { s.sanitizer = sanitizer }
}

// WithOutcomeRecorder sets the telemetry sink for parse outcomes.
func WithOutcomeRecorder(r OutcomeRecorder) Option {
	return func(s *Service) { s.outcomes = r }
}

// New creates a statement parsing service around the given engine.
func New(engine *parser.Engine, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		engine:  engine,
		extract: extractor.Text,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ParseStatement extracts transactions from a PDF statement. It fails only
// when text extraction fails; an otherwise unparseable statement yields a
// Result with zero transactions so the caller can present a "0 transactions
// found" outcome.
func (s *Service) ParseStatement(ctx context.Context, pdfBytes []byte) (*Result, error) {
	text, err := s.extract(pdfBytes)
	if err != nil {
		s.recordOutcome(outcomeExtractionFailed)
		return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
	}
	return s.parseText(ctx, text), nil
}

// ParseText runs the engine over pre-extracted statement text, skipping the
// PDF stage. Useful when the caller already holds a text rendering.
func (s *Service) ParseText(ctx context.Context, text string) *Result {
	return s.parseText(ctx, text)
}

func (s *Service) parseText(_ context.Context, text string) *Result {
	jobID := uuid.New()

	txs, strategy := s.engine.ParseWithStrategy(text)

	if s.sanitizer != nil {
		for i := range txs {
			txs[i].Provider = s.sanitizer.Sanitize(txs[i].Provider)
		}
	}

	if len(txs) == 0 {
		s.logger.Info("no transactions recognized", "jobID", jobID)
		s.recordOutcome(outcomeEmpty)
	} else {
		s.logger.Info("statement parsed",
			"jobID", jobID, "strategy", strategy, "transactions", len(txs))
		s.recordOutcome(outcomeParsed)
	}

	return &Result{JobID: jobID, Transactions: txs, Strategy: strategy}
}

func (s *Service) recordOutcome(outcome string) {
	if s.outcomes != nil {
		s.outcomes.Outcome(outcome)
	}
}
