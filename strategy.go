package absa

import (
	"io"
	"log/slog"
	"sort"
)

// Strategy keys accepted by NewStrategy.
const (
	ProximityKey  = "proximity"
	DependencyKey = "dependency"
	ContrastKey   = "contrast"
	EnsembleKey   = "ensemble"
)

// A Strategy decides which opinion tokens count as evidence for each aspect
// and turns that evidence into one AspectSentiment per aspect.
//
// Strategies hold no mutable state and are safe for concurrent use.
type Strategy interface {
	Name() string
	Associate(doc *Document, aspects []AspectCandidate) []AspectSentiment
}

// A StrategyOpt changes how NewStrategy builds a strategy.
type StrategyOpt func(opts *strategyOpts)

type strategyOpts struct {
	logger *slog.Logger
}

// WithStrategyLogger sends fallback traces to logger at debug level.
func WithStrategyLogger(logger *slog.Logger) StrategyOpt {
	return func(opts *strategyOpts) {
		opts.logger = logger
	}
}

type strategyFactory func(e *engine) Strategy

var registry = map[string]strategyFactory{
	ProximityKey:  func(e *engine) Strategy { return newProximity(e) },
	DependencyKey: func(e *engine) Strategy { return newDependency(e) },
	ContrastKey:   func(e *engine) Strategy { return newContrast(e) },
	EnsembleKey:   func(e *engine) Strategy { return newEnsemble(e) },
}

// StrategyKeys returns the registered strategy keys in sorted order.
func StrategyKeys() []string {
	keys := make([]string, 0, len(registry))
	for k := range registry {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// NewStrategy returns the strategy registered under key. An unknown key or an
// invalid configuration yields a *ConfigError. A nil resource selects the
// built-in lexicon.
func NewStrategy(key string, resource *PolarityResource, cfg Config, opts ...StrategyOpt) (Strategy, error) {
	factory, ok := registry[key]
	if !ok {
		return nil, &ConfigError{
			Field: "strategy",
			Value: key,
			Valid: StrategyKeys(),
			Err:   ErrUnknownStrategy,
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base := strategyOpts{}
	for _, applyOpt := range opts {
		applyOpt(&base)
	}
	if base.logger == nil {
		base.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if resource == nil {
		resource = DefaultPolarityResource()
	}

	return factory(&engine{
		resource: resource,
		cfg:      cfg,
		agg:      NewAggregator(cfg),
		logger:   base.logger,
	}), nil
}

// engine carries what every strategy shares.
type engine struct {
	resource *PolarityResource
	cfg      Config
	agg      Aggregator
	logger   *slog.Logger
}

// sentenceGroup is the set of aspects placed in one sentence. Aspects whose
// anchor lies outside every sentence are collected in a group with index -1.
type sentenceGroup struct {
	index   int
	sent    Sentence
	aspects []AspectCandidate
	anchors []int // sorted, unique
}

// groupBySentence buckets aspects by sentence, in sentence order and input
// order within a sentence. Unplaced aspects come last.
func groupBySentence(doc *Document, aspects []AspectCandidate) []sentenceGroup {
	sentences := doc.Sentences()
	buckets := make([][]AspectCandidate, len(sentences))
	var unplaced []AspectCandidate

	for _, aspect := range aspects {
		idx := doc.sentenceOf(aspect)
		if idx < 0 {
			unplaced = append(unplaced, aspect)
			continue
		}
		buckets[idx] = append(buckets[idx], aspect)
	}

	var groups []sentenceGroup
	for i, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		groups = append(groups, sentenceGroup{
			index:   i,
			sent:    sentences[i],
			aspects: bucket,
			anchors: anchorsOf(bucket),
		})
	}
	if len(unplaced) > 0 {
		groups = append(groups, sentenceGroup{index: -1, aspects: unplaced})
	}
	return groups
}

func anchorsOf(aspects []AspectCandidate) []int {
	seen := make(map[int]bool, len(aspects))
	anchors := make([]int, 0, len(aspects))
	for _, a := range aspects {
		if !seen[a.Anchor] {
			seen[a.Anchor] = true
			anchors = append(anchors, a.Anchor)
		}
	}
	sort.Ints(anchors)
	return anchors
}

// evidenceFunc collects the evidence for one aspect of a placed group.
type evidenceFunc func(group sentenceGroup, aspect AspectCandidate) []OpinionEvidence

// associate runs collect over every placed aspect and builds the records.
// Unplaced aspects produce neutral records with no sentence text.
func (e *engine) associate(doc *Document, aspects []AspectCandidate, approach string, collect evidenceFunc) []AspectSentiment {
	results := make([]AspectSentiment, 0, len(aspects))
	for _, group := range groupBySentence(doc, aspects) {
		for _, aspect := range group.aspects {
			if group.index < 0 {
				e.logger.Debug("aspect anchor outside document",
					"strategy", approach, "aspect", aspect.Text, "anchor", aspect.Anchor)
				results = append(results, e.agg.Build(aspect, -1, "", nil, approach))
				continue
			}
			evidence := collect(group, aspect)
			results = append(results, e.agg.Build(aspect, group.index, group.sent.Text, evidence, approach))
		}
	}
	return results
}

// opinionTokens returns the sentence tokens that may carry polarity. Tagged
// tokens must also have an opinion tag; untagged tokens qualify on lexicon
// membership alone.
func (e *engine) opinionTokens(sent Sentence) []Token {
	var out []Token
	for _, tok := range sent.Tokens {
		if !e.resource.IsOpinion(tok.Key()) {
			continue
		}
		if tok.HasTag() && !e.cfg.isOpinionTag(tok.Tag) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// windowEvidence scores the opinion tokens within window of the aspect's
// anchor that the aspect owns among anchors. keep, when non-nil, filters
// tokens further.
func (e *engine) windowEvidence(scorer *Scorer, sent Sentence, aspect AspectCandidate, anchors []int, window int, keep func(Token) bool) []OpinionEvidence {
	var evidence []OpinionEvidence
	for _, tok := range e.opinionTokens(sent) {
		if covers(aspect, tok.Index) || distance(tok.Index, aspect.Anchor) > window {
			continue
		}
		if nearestAnchor(tok.Index, anchors) != aspect.Anchor {
			continue
		}
		if keep != nil && !keep(tok) {
			continue
		}
		evidence = append(evidence, scorer.Score(sent, tok, aspect.Anchor))
	}
	return evidence
}

// nearestAnchor returns the anchor closest to index. anchors must be sorted;
// on equal distance the left anchor wins.
func nearestAnchor(index int, anchors []int) int {
	best, bestDist := -1, -1
	for _, a := range anchors {
		d := distance(index, a)
		if bestDist < 0 || d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

// covers reports whether index is part of the aspect phrase itself.
func covers(aspect AspectCandidate, index int) bool {
	if index == aspect.Anchor {
		return true
	}
	return aspect.Start < aspect.End && index >= aspect.Start && index < aspect.End
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
