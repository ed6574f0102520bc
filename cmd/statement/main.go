// Command statement extracts transactions from a bank statement PDF (or a
// pre-extracted text file) and prints or exports them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/FACorreiaa/statement-engine/internal/domain/statement/normalizer"
	"github.com/FACorreiaa/statement-engine/internal/domain/statement/parser"
	"github.com/FACorreiaa/statement-engine/internal/domain/statement/service"
	"github.com/FACorreiaa/statement-engine/internal/domain/statement/writer"
	"github.com/FACorreiaa/statement-engine/internal/observability"
	"github.com/FACorreiaa/statement-engine/pkg/config"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		inPath  = flag.String("in", "", "statement file to parse (.pdf or .txt)")
		outPath = flag.String("out", "", "output file (defaults to stdout)")
		format  = flag.String("format", "table", "output format: table, csv, xlsx, json")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		return fmt.Errorf("missing -in")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Logging, *verbose)

	parserCfg := buildParserConfig(cfg.Parser)
	engineOpts := []parser.Option{parser.WithLogger(logger)}
	if cfg.Observability.MetricsEnabled {
		metrics := observability.NewParserMetrics(prometheus.DefaultRegisterer)
		engineOpts = append(engineOpts, parser.WithMetrics(metrics))
	}
	engine := parser.NewEngine(parserCfg, engineOpts...)

	svcOpts := []service.Option{}
	if cfg.Parser.SanitizeProviders {
		svcOpts = append(svcOpts, service.WithSanitizer(normalizer.NewProviderSanitizer()))
	}
	svc := service.New(engine, logger, svcOpts...)

	result, err := parseInput(svc, *inPath)
	if err != nil {
		return err
	}

	if len(result.Transactions) == 0 {
		logger.Warn("no transactions found", "file", *inPath)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	switch *format {
	case "table":
		return writeTable(out, result)
	case "csv":
		return writer.WriteCSV(out, result.Transactions)
	case "xlsx":
		return writer.WriteXLSX(out, result.Transactions)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Transactions)
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func parseInput(svc *service.Service, path string) (*service.Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return svc.ParseText(context.Background(), string(data)), nil
	}
	return svc.ParseStatement(context.Background(), data)
}

func newLogger(cfg config.LoggingConfig, verbose bool) *slog.Logger {
	level := cfg.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

func buildParserConfig(pc config.ParserConfig) *parser.Config {
	cfg := parser.DefaultConfig()
	cfg.StrictFiltering = pc.StrictFiltering
	cfg.MinDescriptionLength = pc.MinDescriptionLength
	cfg.MaxDescriptionLength = pc.MaxDescriptionLength
	switch pc.DecimalStyle {
	case "us":
		cfg.DecimalSeparator = '.'
		cfg.ThousandsSeparator = ','
	case "eu":
		cfg.DecimalSeparator = ','
		cfg.ThousandsSeparator = '.'
	default:
		cfg.DecimalSeparator = 0
		cfg.ThousandsSeparator = 0
	}
	return cfg
}

func writeTable(out *os.File, result *service.Result) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tDESCRIPTION\tPROVIDER\tAMOUNT")
	for _, tx := range result.Transactions {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			tx.Date, tx.Description, tx.Provider,
			decimal.NewFromFloat(tx.Amount).StringFixed(2))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	if result.Strategy != "" {
		fmt.Fprintf(out, "\n%d transactions (strategy: %s, job %s)\n",
			len(result.Transactions), result.Strategy, result.JobID)
	}
	return nil
}
