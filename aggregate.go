package absa

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/stat"
)

// Aggregator combines evidence into a score, a label and a confidence value.
type Aggregator struct {
	Thresholds         Thresholds
	ScoreScale         float64
	SufficientEvidence int

	// MagnitudeWeight is the share of confidence taken from score magnitude;
	// the rest comes from evidence count.
	MagnitudeWeight float64
}

// NewAggregator creates an aggregator from the engine configuration.
func NewAggregator(cfg Config) Aggregator {
	return Aggregator{
		Thresholds:         cfg.Thresholds,
		ScoreScale:         cfg.ScoreScale,
		SufficientEvidence: cfg.SufficientEvidence,
		MagnitudeWeight:    0.6,
	}
}

// Label classifies a score against the configured thresholds.
func (a Aggregator) Label(score float64) Label {
	switch {
	case score > a.Thresholds.Positive:
		return Positive
	case score < -a.Thresholds.Negative:
		return Negative
	default:
		return Neutral
	}
}

// Confidence returns an advisory [0,1] value combining score magnitude and
// how much evidence backs it.
func (a Aggregator) Confidence(score float64, evidence int) float64 {
	if evidence == 0 || a.ScoreScale <= 0 || a.SufficientEvidence <= 0 {
		return 0
	}
	magnitude := math.Min(1.0, math.Abs(score)/a.ScoreScale)
	support := math.Min(1.0, float64(evidence)/float64(a.SufficientEvidence))
	c := a.MagnitudeWeight*magnitude + (1-a.MagnitudeWeight)*support
	return scalar.Round(math.Min(1.0, math.Max(0.0, c)), 3)
}

// Mean returns the rounded mean of the adjusted scores, or 0 for no evidence.
func (a Aggregator) Mean(evidence []OpinionEvidence) float64 {
	if len(evidence) == 0 {
		return 0
	}
	scores := make([]float64, len(evidence))
	for i, ev := range evidence {
		scores[i] = ev.AdjustedScore
	}
	return scalar.Round(stat.Mean(scores, nil), 3)
}

// Build assembles the result for one aspect from its evidence. The evidence
// slice is copied and ordered by ascending distance.
func (a Aggregator) Build(aspect AspectCandidate, sentence int, text string, evidence []OpinionEvidence, approach string) AspectSentiment {
	score := a.Mean(evidence)
	return a.build(aspect.Text, sentence, text, score, evidence, approach)
}

func (a Aggregator) build(aspect string, sentence int, text string, score float64, evidence []OpinionEvidence, approach string) AspectSentiment {
	ordered := make([]OpinionEvidence, len(evidence))
	copy(ordered, evidence)
	sortByDistance(ordered)

	return AspectSentiment{
		Aspect:     aspect,
		Sentiment:  a.Label(score),
		Score:      score,
		Confidence: a.Confidence(score, len(ordered)),
		Sentence:   text,
		Evidences:  ordered,
		Approach:   approach,
		sentence:   sentence,
	}
}

// sortByDistance orders evidence nearest first; equal distances keep their
// existing order.
func sortByDistance(evidence []OpinionEvidence) {
	sort.SliceStable(evidence, func(i, j int) bool {
		return evidence[i].Distance < evidence[j].Distance
	})
}
