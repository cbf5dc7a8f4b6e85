// Command absa scores aspect sentiment for a review, read either as raw text
// or as annotated JSON, and writes the records to stdout as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/tsawler/absa"
	"github.com/tsawler/absa/internal/config"
	"github.com/tsawler/absa/internal/logging"
	"github.com/tsawler/absa/summary"
)

type output struct {
	Results []absa.AspectSentiment  `json:"results"`
	Summary []summary.AspectSummary `json:"summary,omitempty"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "absa:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg, err := config.Read()
	if err != nil {
		return err
	}

	fs := flag.NewFlagSet("absa", flag.ContinueOnError)
	fs.SetOutput(stderr)
	strategyKey := fs.String("strategy", cfg.Strategy, "association strategy: proximity, dependency, contrast or ensemble")
	inPath := fs.String("in", "", "input file (default stdin)")
	inputKind := fs.String("input", "text", "input kind: text or json")
	lexiconPath := fs.String("lexicon", cfg.LexiconPath, "JSON or YAML lexicon merged over the built-in one")
	withSummary := fs.Bool("summary", false, "add a per-aspect summary")
	pretty := fs.Bool("pretty", false, "indent JSON output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg.Strategy = *strategyKey
	cfg.LexiconPath = *lexiconPath
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := logging.WithStrategy(logging.New(stderr, cfg.LogLevel, cfg.LogFormat), cfg.Strategy)

	resource, err := cfg.Resource()
	if err != nil {
		return err
	}
	logger.Debug("lexicon loaded", "entries", resource.Size(), "path", cfg.LexiconPath)

	analyzer, err := absa.NewAnalyzer(resource,
		absa.WithConfig(cfg.Engine()),
		absa.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	in := stdin
	if *inPath != "" {
		f, err := os.Open(*inPath)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()
		in = f
	}

	var results []absa.AspectSentiment
	switch *inputKind {
	case "json":
		doc, aspects, err := absa.DecodeInput(in)
		if err != nil {
			return err
		}
		results, err = analyzer.Analyze(doc, aspects, cfg.Strategy)
		if err != nil {
			return err
		}
	case "text":
		raw, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		results, err = analyzer.AnalyzeText(ctx, string(raw), cfg.Strategy)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown input kind %q (valid: text, json)", *inputKind)
	}
	logger.Info("analysis complete", slog.Int("records", len(results)))

	out := output{Results: results}
	if *withSummary {
		out.Summary = summary.Summarize(results)
	}

	enc := json.NewEncoder(stdout)
	if *pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(out); err != nil {
		logging.WithError(logger, err).Error("failed to write output")
		return err
	}
	return nil
}
