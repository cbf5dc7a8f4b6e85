package absa

import (
	"context"
	"io"
	"log/slog"
)

// An AnalyzerOpt represents a setting that changes how an Analyzer is built.
type AnalyzerOpt func(a *Analyzer)

// WithConfig replaces the default engine configuration.
func WithConfig(cfg Config) AnalyzerOpt {
	return func(a *Analyzer) {
		a.cfg = cfg
	}
}

// WithLogger sets the logger used for debug traces.
func WithLogger(logger *slog.Logger) AnalyzerOpt {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithAnnotator sets the Annotator used by AnalyzeText. Without one, the
// Analyzer builds a LexicalAnnotator once and reuses it.
func WithAnnotator(annotator Annotator) AnalyzerOpt {
	return func(a *Analyzer) {
		a.annotator = annotator
	}
}

// WithExtractor sets the Extractor used when no aspects are given.
func WithExtractor(extractor Extractor) AnalyzerOpt {
	return func(a *Analyzer) {
		a.extractor = extractor
	}
}

// Analyzer ties annotation, aspect extraction and association together.
// It is safe for concurrent use once built.
type Analyzer struct {
	resource  *PolarityResource
	cfg       Config
	logger    *slog.Logger
	annotator Annotator
	extractor Extractor
}

// NewAnalyzer creates an Analyzer over resource. A nil resource selects the
// built-in lexicon.
func NewAnalyzer(resource *PolarityResource, opts ...AnalyzerOpt) (*Analyzer, error) {
	if resource == nil {
		resource = DefaultPolarityResource()
	}
	a := &Analyzer{resource: resource, cfg: DefaultConfig()}
	for _, applyOpt := range opts {
		applyOpt(a)
	}

	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if a.extractor == nil {
		a.extractor = NewAspectExtractor(resource, a.cfg)
	}
	if a.annotator == nil {
		annotator, err := NewLexicalAnnotator()
		if err != nil {
			return nil, err
		}
		a.annotator = annotator
	}
	return a, nil
}

// Strategy returns the configured strategy registered under key.
func (a *Analyzer) Strategy(key string) (Strategy, error) {
	return NewStrategy(key, a.resource, a.cfg, WithStrategyLogger(a.logger))
}

// Analyze scores aspects over an annotated document with the strategy named
// by key. A nil aspects slice asks the extractor for candidates.
func (a *Analyzer) Analyze(doc *Document, aspects []AspectCandidate, key string) ([]AspectSentiment, error) {
	strategy, err := a.Strategy(key)
	if err != nil {
		return nil, err
	}
	if aspects == nil {
		aspects = a.extractor.Extract(doc)
	}
	a.logger.Debug("associating aspects",
		"strategy", strategy.Name(),
		"sentences", len(doc.Sentences()),
		"aspects", len(aspects))
	return strategy.Associate(doc, aspects), nil
}

// AnalyzeText annotates raw text, extracts aspects and scores them.
func (a *Analyzer) AnalyzeText(ctx context.Context, text, key string) ([]AspectSentiment, error) {
	// Fail on a bad key before paying for annotation.
	if _, err := a.Strategy(key); err != nil {
		return nil, err
	}

	doc, err := AnnotateDocument(text, WithContext(ctx), UsingAnnotator(a.annotator))
	if err != nil {
		return nil, err
	}
	return a.Analyze(doc, nil, key)
}
