package absa

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// Scorer turns one opinion token into evidence as seen from an aspect anchor.
type Scorer struct {
	resource *PolarityResource
	decay    Decay
	window   int
}

// NewScorer creates a scorer that checks window tokens of left context.
func NewScorer(resource *PolarityResource, decay Decay, window int) *Scorer {
	return &Scorer{resource: resource, decay: decay, window: window}
}

// Score computes the distance-decayed evidence of opinion for the aspect
// anchored at anchor. The opinion must belong to sent; a token missing from
// the lexicon yields zero-score evidence.
func (s *Scorer) Score(sent Sentence, opinion Token, anchor int) OpinionEvidence {
	base, _ := s.resource.Polarity(opinion.Key())
	distance := opinion.Index - anchor
	if distance < 0 {
		distance = -distance
	}

	ev := OpinionEvidence{
		Word:      opinion.Text,
		Lemma:     opinion.Key(),
		BaseScore: base,
		Distance:  distance,
		Index:     opinion.Index,
	}

	factor := 1.0
	if pos := sent.position(opinion.Index); pos > 0 {
		start := maxInt(0, pos-s.window)
		left := sent.Tokens[start:pos]

		ev.Negated = s.checkNegation(left)
		if word, f, ok := s.nearestIntensifier(left); ok {
			ev.Intensifier = word
			factor = f
		}
	}

	adjusted := base * factor
	if ev.Negated && adjusted != 0 {
		adjusted = -adjusted
	}
	ev.AdjustedScore = scalar.Round(adjusted*s.decay.Factor(distance), 3)
	return ev
}

// checkNegation reports whether any token in the left context negates. Several
// negation words still flip the sign only once.
func (s *Scorer) checkNegation(left []Token) bool {
	for _, tok := range left {
		if s.resource.IsNegation(tok.Key()) || s.resource.IsNegation(tok.Text) {
			return true
		}
	}
	return false
}

// nearestIntensifier returns the rightmost intensifier in the left context.
func (s *Scorer) nearestIntensifier(left []Token) (string, float64, bool) {
	for i := len(left) - 1; i >= 0; i-- {
		if f, ok := s.resource.Intensifier(left[i].Key()); ok {
			return left[i].Key(), f, true
		}
	}
	return "", 1, false
}

// maxInt returns the maximum of two integers
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
