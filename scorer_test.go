package absa

import (
	"math"
	"testing"
)

// plainSentence builds an untagged sentence whose doc indices start at 0.
func plainSentence(words ...string) Sentence {
	tokens := make([]Token, len(words))
	for i, w := range words {
		tokens[i] = Token{Text: w, Head: NoHead, Index: i}
	}
	return Sentence{Tokens: tokens, Start: 0, End: len(words)}
}

func TestScorerAdjustments(t *testing.T) {
	decay := Decay{Floor: 0.35, Rate: 0.08}
	scorer := NewScorer(DefaultPolarityResource(), decay, 3)

	tests := []struct {
		words       []string
		expected    float64
		negated     bool
		intensifier string
		desc        string
	}{
		{[]string{"battery", "is", "so", "good"}, 1.6 * 0.76, false, "", "Plain opinion"},
		{[]string{"battery", "is", "not", "good"}, -1.6 * 0.76, true, "", "Negation inverts"},
		{[]string{"battery", "is", "very", "good"}, 1.6 * 1.5 * 0.76, false, "very", "Intensifier scales"},
		{[]string{"battery", "not", "very", "good"}, -1.6 * 1.5 * 0.76, true, "very", "Negation and intensifier"},
		{[]string{"battery", "very", "not", "good"}, -1.6 * 1.5 * 0.76, true, "very", "Order does not matter"},
		{[]string{"battery", "never", "not", "good"}, -1.6 * 0.76, true, "", "Several negations flip once"},
		{[]string{"battery", "slightly", "very", "good"}, 1.6 * 1.5 * 0.76, false, "very", "Rightmost intensifier wins"},
		{[]string{"battery", "not", "that", "the", "other", "good"}, 1.6 * 0.6, false, "", "Negation outside window"},
		{[]string{"battery", "is", "a", "table"}, 0, false, "", "Lexicon miss scores zero"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			sent := plainSentence(tt.words...)
			opinion := sent.Tokens[len(sent.Tokens)-1]
			ev := scorer.Score(sent, opinion, 0)

			if math.Abs(ev.AdjustedScore-tt.expected) > 0.001 {
				t.Errorf("words %v: expected %.3f, got %.3f", tt.words, tt.expected, ev.AdjustedScore)
			}
			if ev.Negated != tt.negated {
				t.Errorf("expected negated=%v, got %v", tt.negated, ev.Negated)
			}
			if ev.Intensifier != tt.intensifier {
				t.Errorf("expected intensifier %q, got %q", tt.intensifier, ev.Intensifier)
			}
			if ev.Distance != len(tt.words)-1 {
				t.Errorf("expected distance %d, got %d", len(tt.words)-1, ev.Distance)
			}
		})
	}
}

func TestScorerZeroIsNotNegative(t *testing.T) {
	scorer := NewScorer(DefaultPolarityResource(), Decay{Floor: 0.35, Rate: 0.08}, 3)
	sent := plainSentence("screen", "is", "not", "purple")

	ev := scorer.Score(sent, sent.Tokens[3], 0)
	if ev.AdjustedScore != 0 || math.Signbit(ev.AdjustedScore) {
		t.Errorf("expected +0 for a lexicon miss, got %v", ev.AdjustedScore)
	}
	if ev.BaseScore != 0 {
		t.Errorf("expected zero base score, got %v", ev.BaseScore)
	}
}

func TestScorerDistanceMonotonic(t *testing.T) {
	scorer := NewScorer(DefaultPolarityResource(), Decay{Floor: 0.40, Rate: 0.10}, 3)

	words := make([]string, 20)
	for i := range words {
		words[i] = "x"
	}
	words[19] = "terrible"
	sent := plainSentence(words...)
	opinion := sent.Tokens[19]

	prev := math.Inf(1)
	for anchor := 19; anchor >= 0; anchor-- {
		ev := scorer.Score(sent, opinion, anchor)
		if math.Abs(ev.AdjustedScore) > prev {
			t.Fatalf("distance %d: |%.3f| exceeds previous %.3f", ev.Distance, ev.AdjustedScore, prev)
		}
		prev = math.Abs(ev.AdjustedScore)
	}
	if math.Abs(prev-2.6*0.40) > 0.001 {
		t.Errorf("expected decay floor to hold at long distance, got %.3f", prev)
	}
}

func TestScorerUsesLemma(t *testing.T) {
	scorer := NewScorer(DefaultPolarityResource(), Decay{Floor: 0.35, Rate: 0.08}, 3)
	sent := Sentence{
		Tokens: []Token{
			{Text: "Screens", Lemma: "screen", Index: 10, Head: NoHead},
			{Text: "loved", Lemma: "love", Index: 11, Head: NoHead},
		},
		Start: 10, End: 12,
	}

	ev := scorer.Score(sent, sent.Tokens[1], 10)
	if ev.Word != "loved" {
		t.Errorf("expected surface word, got %q", ev.Word)
	}
	if math.Abs(ev.AdjustedScore-2.3*0.92) > 0.001 {
		t.Errorf("expected %.3f, got %.3f", 2.3*0.92, ev.AdjustedScore)
	}
}

func TestDecayFactor(t *testing.T) {
	tests := []struct {
		decay    Decay
		distance int
		expected float64
		desc     string
	}{
		{Decay{Floor: 0.35, Rate: 0.08}, 0, 1.0, "No distance"},
		{Decay{Floor: 0.35, Rate: 0.08}, 3, 0.76, "Linear region"},
		{Decay{Floor: 0.35, Rate: 0.08}, -3, 0.76, "Negative distance"},
		{Decay{Floor: 0.35, Rate: 0.08}, 12, 0.35, "Clamped at floor"},
		{Decay{Floor: 0.40, Rate: 0.10}, 5, 0.5, "Dependency defaults"},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			if got := tt.decay.Factor(tt.distance); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("expected %.3f, got %.3f", tt.expected, got)
			}
		})
	}
}
