package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/statement-engine/internal/domain/statement/normalizer"
	"github.com/FACorreiaa/statement-engine/internal/domain/statement/parser"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type recordingOutcomes struct {
	labels []string
}

func (r *recordingOutcomes) Outcome(outcome string) {
	r.labels = append(r.labels, outcome)
}

func TestService_ParseStatement(t *testing.T) {
	engine := parser.NewEngine(nil)

	t.Run("extraction failure surfaces ErrExtraction", func(t *testing.T) {
		outcomes := &recordingOutcomes{}
		svc := New(engine, testLogger(),
			WithTextExtractor(func([]byte) (string, error) {
				return "", errors.New("image-only scan")
			}),
			WithOutcomeRecorder(outcomes),
		)

		_, err := svc.ParseStatement(context.Background(), []byte("pdf bytes"))
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrExtraction)
		assert.Equal(t, []string{"extraction_failed"}, outcomes.labels)
	})

	t.Run("extracted text is parsed", func(t *testing.T) {
		outcomes := &recordingOutcomes{}
		svc := New(engine, testLogger(),
			WithTextExtractor(func([]byte) (string, error) {
				return "2024-03-15 Grocery Store -45.67", nil
			}),
			WithOutcomeRecorder(outcomes),
		)

		result, err := svc.ParseStatement(context.Background(), []byte("pdf bytes"))
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, "Grocery Store", result.Transactions[0].Description)
		assert.NotEmpty(t, result.Strategy)
		assert.Equal(t, []string{"parsed"}, outcomes.labels)
	})

	t.Run("unparseable text is an empty result, not an error", func(t *testing.T) {
		outcomes := &recordingOutcomes{}
		svc := New(engine, testLogger(),
			WithTextExtractor(func([]byte) (string, error) {
				return "Dear customer, nothing to see here.", nil
			}),
			WithOutcomeRecorder(outcomes),
		)

		result, err := svc.ParseStatement(context.Background(), []byte("pdf bytes"))
		require.NoError(t, err)
		assert.Empty(t, result.Transactions)
		assert.Empty(t, result.Strategy)
		assert.Equal(t, []string{"empty"}, outcomes.labels)
	})
}

func TestService_ParseText(t *testing.T) {
	engine := parser.NewEngine(nil)

	t.Run("sanitizer canonicalizes providers", func(t *testing.T) {
		svc := New(engine, testLogger(), WithSanitizer(normalizer.NewProviderSanitizer()))

		result := svc.ParseText(context.Background(), "2024-03-15 AMZN MKTP US -45.67")
		require.Len(t, result.Transactions, 1)
		assert.Equal(t, "Amazon", result.Transactions[0].Provider)
	})

	t.Run("each parse gets its own job id", func(t *testing.T) {
		svc := New(engine, testLogger())

		a := svc.ParseText(context.Background(), "2024-03-15 Coffee Shop -4.50")
		b := svc.ParseText(context.Background(), "2024-03-15 Coffee Shop -4.50")
		assert.NotEqual(t, a.JobID, b.JobID)
	})
}
